// Package clientpackets implements every packet the client may send,
// grounded field-for-field on the original protocol's client-to-server
// grammar. Parsing is hand-written against internal/protocol's cursor
// rather than generated, since Go has no equivalent to the derive
// macro the original source used; the wire shapes produced are
// identical.
package clientpackets

import (
	"fmt"

	"github.com/nokkasiili/minigolf-server/internal/protocol"
)

// Packet is implemented by every client-to-server packet. Every
// implementation's PacketNumber returns (0, false); the number of a
// dispatched line is returned by Decode instead.
type Packet interface {
	PacketNumber() (protocol.PacketNumber, bool)
}

// --- pre-lobby handshake packets ---

type Version struct{ Value string }

func (Version) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

func parseVersion(c *protocol.Cursor) (Version, error) {
	if err := c.Tag("s "); err != nil {
		return Version{}, err
	}
	return Version{Value: c.Rest()}, nil
}

type Language struct{ Value string }

func (Language) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

type LoginType struct{ Value protocol.LoginType }

func (LoginType) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

func parseLoginType(c *protocol.Cursor) (LoginType, error) {
	if err := c.Tag("logintype\t"); err != nil {
		return LoginType{}, err
	}
	field := c.Rest()
	v, err := protocol.ParseLoginType(field)
	if err != nil {
		return LoginType{}, err
	}
	return LoginType{Value: v}, nil
}

type Login struct {
	Username string
	Password string
}

func (Login) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

func parseLogin(c *protocol.Cursor) (Login, error) {
	if err := c.Tag("login"); err != nil {
		return Login{}, err
	}
	if err := c.Char('\t'); err != nil {
		return Login{}, err
	}
	username := c.Field("\t")
	if err := c.Char('\t'); err != nil {
		return Login{}, err
	}
	password := c.Rest()
	return Login{Username: username, Password: password}, nil
}

// TTLogin is the legacy "time trial mode" login variant; its
// username/password are simplified here to the "-"-for-absent
// NonEmptyOption convention rather than the original's
// zero-byte NoneAsTab encoding, since this path carries no gameplay
// semantics beyond recognizing the literal absent case.
type TTLogin struct {
	Username protocol.NonEmptyOption
	Password protocol.NonEmptyOption
}

func (TTLogin) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

func parseTTLogin(c *protocol.Cursor) (TTLogin, error) {
	if err := c.Tag("ttlogin"); err != nil {
		return TTLogin{}, err
	}
	if err := c.Char('\t'); err != nil {
		return TTLogin{}, err
	}
	username := c.Field("\t")
	if err := c.Char('\t'); err != nil {
		return TTLogin{}, err
	}
	password := c.Rest()
	return TTLogin{
		Username: protocol.ParseNonEmptyOption(username),
		Password: protocol.ParseNonEmptyOption(password),
	}, nil
}

type Quit struct{}

func (Quit) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

// --- lobbyselect-state packets (sent before the client has picked a lobby) ---

type LobbySelectRnop struct{}

func (LobbySelectRnop) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

type LobbySelectCspt struct {
	NumTracks  int32
	TrackType  protocol.TrackType
	WaterEvent protocol.WaterEvent
}

func (LobbySelectCspt) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

func parseLobbySelectCspt(c *protocol.Cursor) (LobbySelectCspt, error) {
	if err := c.Tag("cspt\t"); err != nil {
		return LobbySelectCspt{}, err
	}
	n, tt, we, err := parseLobbyRuleFields(c)
	if err != nil {
		return LobbySelectCspt{}, err
	}
	return LobbySelectCspt{NumTracks: n, TrackType: tt, WaterEvent: we}, nil
}

type LobbySelectQmpt struct{}

func (LobbySelectQmpt) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

func parseLobbySelectQmpt(c *protocol.Cursor) (LobbySelectQmpt, error) {
	if err := c.Tag("qmpt"); err != nil {
		return LobbySelectQmpt{}, err
	}
	return LobbySelectQmpt{}, nil
}

func parseLobbySelectRnop(c *protocol.Cursor) (LobbySelectRnop, error) {
	if err := c.Tag("rnop"); err != nil {
		return LobbySelectRnop{}, err
	}
	return LobbySelectRnop{}, nil
}

type LobbySelectSelect struct{ LobbyType protocol.DLobbyType }

func (LobbySelectSelect) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

func parseLobbySelectSelect(c *protocol.Cursor) (LobbySelectSelect, error) {
	if err := c.Tag("select\t"); err != nil {
		return LobbySelectSelect{}, err
	}
	v, err := protocol.ParseDLobbyType(c.Rest())
	if err != nil {
		return LobbySelectSelect{}, err
	}
	return LobbySelectSelect{LobbyType: v}, nil
}

// --- generic lobby packets ---

type LobbyBack struct{}

func (LobbyBack) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

type LobbySelect struct{ LobbyType protocol.DLobbyType }

func (LobbySelect) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

func parseLobbySelect(c *protocol.Cursor) (LobbySelect, error) {
	if err := c.Tag("lobby\tselect\t"); err != nil {
		return LobbySelect{}, err
	}
	v, err := protocol.ParseDLobbyType(c.Rest())
	if err != nil {
		return LobbySelect{}, err
	}
	return LobbySelect{LobbyType: v}, nil
}

type LobbyTrackSetlist struct{}

func (LobbyTrackSetlist) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

// LobbyCspt is the client's ruleset choice when creating a Solo room.
type LobbyCspt struct {
	NumTracks  int32
	TrackType  protocol.TrackType
	WaterEvent protocol.WaterEvent
}

func parseLobbyRuleFields(c *protocol.Cursor) (int32, protocol.TrackType, protocol.WaterEvent, error) {
	numTracks, err := parseI32(c.Field("\t"))
	if err != nil {
		return 0, 0, 0, err
	}
	if err := c.Char('\t'); err != nil {
		return 0, 0, 0, err
	}
	trackType, err := protocol.ParseTrackType(c.Field("\t"))
	if err != nil {
		return 0, 0, 0, err
	}
	if err := c.Char('\t'); err != nil {
		return 0, 0, 0, err
	}
	waterEvent, err := protocol.ParseWaterEvent(c.Rest())
	if err != nil {
		return 0, 0, 0, err
	}
	return numTracks, trackType, waterEvent, nil
}

func (LobbyCspt) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

func parseLobbyCspt(c *protocol.Cursor) (LobbyCspt, error) {
	if err := c.Tag("lobby\tcspt\t"); err != nil {
		return LobbyCspt{}, err
	}
	n, tt, we, err := parseLobbyRuleFields(c)
	if err != nil {
		return LobbyCspt{}, err
	}
	return LobbyCspt{NumTracks: n, TrackType: tt, WaterEvent: we}, nil
}

// LobbyCmpt is the full Multi-room ruleset packet sent when creating a
// Multi room.
type LobbyCmpt struct {
	GameName                protocol.NonEmptyOption
	Password                protocol.NonEmptyOption
	Permission              int32
	MaxPlayers              int32
	NumTracks               int32
	TrackTypes              protocol.TrackType
	MaxStrokes              int32
	TimeLimit               int32
	WaterEvent              protocol.WaterEvent
	Collision               protocol.Collision
	TrackScoring            protocol.Scoring
	TrackScoringWeightedEnd protocol.WeightEnd
}

func (LobbyCmpt) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

func parseLobbyCmpt(c *protocol.Cursor) (LobbyCmpt, error) {
	if err := c.Tag("lobby\tcmpt\t"); err != nil {
		return LobbyCmpt{}, err
	}
	var p LobbyCmpt
	fields := []func() error{
		func() error { p.GameName = protocol.ParseNonEmptyOption(c.Field("\t")); return nil },
		func() error { p.Password = protocol.ParseNonEmptyOption(c.Field("\t")); return nil },
		func() (err error) { p.Permission, err = parseI32(c.Field("\t")); return },
		func() (err error) { p.MaxPlayers, err = parseI32(c.Field("\t")); return },
		func() (err error) { p.NumTracks, err = parseI32(c.Field("\t")); return },
		func() (err error) { p.TrackTypes, err = protocol.ParseTrackType(c.Field("\t")); return },
		func() (err error) { p.MaxStrokes, err = parseI32(c.Field("\t")); return },
		func() (err error) { p.TimeLimit, err = parseI32(c.Field("\t")); return },
		func() (err error) { p.WaterEvent, err = protocol.ParseWaterEvent(c.Field("\t")); return },
		func() (err error) { p.Collision, err = protocol.ParseCollision(c.Field("\t")); return },
		func() (err error) { p.TrackScoring, err = protocol.ParseScoring(c.Field("\t")); return },
	}
	for i, f := range fields {
		if i > 0 {
			if err := c.Char('\t'); err != nil {
				return LobbyCmpt{}, err
			}
		}
		if err := f(); err != nil {
			return LobbyCmpt{}, err
		}
	}
	if err := c.Char('\t'); err != nil {
		return LobbyCmpt{}, err
	}
	we, err := protocol.ParseWeightEnd(c.Rest())
	if err != nil {
		return LobbyCmpt{}, err
	}
	p.TrackScoringWeightedEnd = we
	return p, nil
}

type LobbySay struct {
	LobbyTab string
	Message  string
}

func (LobbySay) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

func parseLobbySay(c *protocol.Cursor) (LobbySay, error) {
	if err := c.Tag("lobby\tsay\t"); err != nil {
		return LobbySay{}, err
	}
	lobbyTab := c.Field("\t")
	if err := c.Char('\t'); err != nil {
		return LobbySay{}, err
	}
	return LobbySay{LobbyTab: lobbyTab, Message: c.Rest()}, nil
}

type LobbyNc struct{ NoChallenges bool }

func (LobbyNc) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

func parseLobbyNc(c *protocol.Cursor) (LobbyNc, error) {
	if err := c.Tag("lobby\tnc\t"); err != nil {
		return LobbyNc{}, err
	}
	v, err := protocol.ParseBool(c.Rest())
	if err != nil {
		return LobbyNc{}, err
	}
	return LobbyNc{NoChallenges: v}, nil
}

type LobbyCFail struct {
	Name   string
	Reason protocol.ChallengeFail
}

func (LobbyCFail) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

func parseLobbyCFail(c *protocol.Cursor) (LobbyCFail, error) {
	if err := c.Tag("cfail\t"); err != nil {
		return LobbyCFail{}, err
	}
	name := c.Field("\t")
	if err := c.Char('\t'); err != nil {
		return LobbyCFail{}, err
	}
	reason, err := protocol.ParseChallengeFail(c.Rest())
	if err != nil {
		return LobbyCFail{}, err
	}
	return LobbyCFail{Name: name, Reason: reason}, nil
}

type LobbySayP struct {
	Destination string
	Message     string
}

func (LobbySayP) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

func parseLobbySayP(c *protocol.Cursor) (LobbySayP, error) {
	if err := c.Tag("lobby\tsayp\t"); err != nil {
		return LobbySayP{}, err
	}
	dest := c.Field("\t")
	if err := c.Char('\t'); err != nil {
		return LobbySayP{}, err
	}
	return LobbySayP{Destination: dest, Message: c.Rest()}, nil
}

type LobbyJmpt struct{ NetworkID int32 }

func (LobbyJmpt) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

func parseLobbyJmpt(c *protocol.Cursor) (LobbyJmpt, error) {
	if err := c.Tag("jmpt\t"); err != nil {
		return LobbyJmpt{}, err
	}
	n, err := parseI32(c.Rest())
	if err != nil {
		return LobbyJmpt{}, err
	}
	return LobbyJmpt{NetworkID: n}, nil
}

type LobbyCspc struct{ NetworkID int32 }

func (LobbyCspc) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

func parseLobbyCspc(c *protocol.Cursor) (LobbyCspc, error) {
	if err := c.Tag("cspc\t"); err != nil {
		return LobbyCspc{}, err
	}
	n, err := parseI32(c.Rest())
	if err != nil {
		return LobbyCspc{}, err
	}
	return LobbyCspc{NetworkID: n}, nil
}

type LobbyCancel struct{ Challenged string }

func (LobbyCancel) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

func parseLobbyCancel(c *protocol.Cursor) (LobbyCancel, error) {
	if err := c.Tag("cancel\t"); err != nil {
		return LobbyCancel{}, err
	}
	return LobbyCancel{Challenged: c.Rest()}, nil
}

type LobbyAccept struct{ Challenger string }

func (LobbyAccept) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

func parseLobbyAccept(c *protocol.Cursor) (LobbyAccept, error) {
	if err := c.Tag("accept\t"); err != nil {
		return LobbyAccept{}, err
	}
	return LobbyAccept{Challenger: c.Rest()}, nil
}

type LobbyChallenge struct {
	Challenged              string
	NumTracks               int32
	TrackTypes              protocol.TrackType
	MaxStrokes              int32
	TimeLimit               int32
	WaterEvent              protocol.WaterEvent
	Collision               protocol.Collision
	TrackScoring            protocol.Scoring
	TrackScoringWeightedEnd protocol.WeightEnd
}

func (LobbyChallenge) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

func parseLobbyChallenge(c *protocol.Cursor) (LobbyChallenge, error) {
	if err := c.Tag("challenge\t"); err != nil {
		return LobbyChallenge{}, err
	}
	var p LobbyChallenge
	p.Challenged = c.Field("\t")
	if err := c.Char('\t'); err != nil {
		return LobbyChallenge{}, err
	}
	n, tt, we, err := parseLobbyRuleFields(c)
	_ = n
	_ = tt
	_ = we
	if err != nil {
		return LobbyChallenge{}, err
	}
	p.NumTracks, p.TrackTypes, p.WaterEvent = n, tt, we
	return p, nil
}

type LobbyQuit struct{}

func (LobbyQuit) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

// --- game-state packets ---

type GameRate struct {
	TrackNum uint8
	Rating   uint8
}

func (GameRate) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

type GameStartTurn struct{ ID int32 }

func (GameStartTurn) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

type GameBeginStroke struct{ Coords string }

func (GameBeginStroke) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

func parseGameBeginStroke(c *protocol.Cursor) (GameBeginStroke, error) {
	if err := c.Tag("game\tbeginstroke\t"); err != nil {
		return GameBeginStroke{}, err
	}
	return GameBeginStroke{Coords: c.Rest()}, nil
}

type GameEndStroke struct {
	Index  int
	InHole string
}

func (GameEndStroke) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

func parseGameEndStroke(c *protocol.Cursor) (GameEndStroke, error) {
	if err := c.Tag("game\tendstroke\t"); err != nil {
		return GameEndStroke{}, err
	}
	idx := c.Field("\t")
	n, err := parseI32(idx)
	if err != nil {
		return GameEndStroke{}, err
	}
	if err := c.Char('\t'); err != nil {
		return GameEndStroke{}, err
	}
	return GameEndStroke{Index: int(n), InHole: c.Rest()}, nil
}

type GameSkip struct{}

func (GameSkip) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

type GameNewGame struct{}

func (GameNewGame) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

type GameBackToPrivate struct{ Value1 int32 }

func (GameBackToPrivate) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

type GameRejectAccept struct {
	Track int32
	Value bool
}

func (GameRejectAccept) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

type GameVoteSkip struct{}

func (GameVoteSkip) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

type GameJoin struct {
	ID       int
	Username string
}

func (GameJoin) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

func parseGameJoin(c *protocol.Cursor) (GameJoin, error) {
	if err := c.Tag("join\t"); err != nil {
		return GameJoin{}, err
	}
	id := c.Field("\t")
	n, err := parseI32(id)
	if err != nil {
		return GameJoin{}, err
	}
	if err := c.Char('\t'); err != nil {
		return GameJoin{}, err
	}
	return GameJoin{ID: int(n), Username: c.Rest()}, nil
}

type GameSay struct{ Message string }

func (GameSay) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

func parseGameSay(c *protocol.Cursor) (GameSay, error) {
	if err := c.Tag("game\tsay\t"); err != nil {
		return GameSay{}, err
	}
	return GameSay{Message: c.Rest()}, nil
}

type GameBack struct{}

func (GameBack) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

// TLog is a client-side debug/telemetry packet ("s tlog ...").
type TLog struct {
	Count int32
	ID    int32
	Str   string
}

func (TLog) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

// New is the very first packet a fresh (non-resuming) connection
// sends.
type New struct{}

func (New) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

func parseNew(c *protocol.Cursor) (New, error) {
	if err := c.Tag("c new"); err != nil {
		return New{}, err
	}
	return New{}, nil
}

// Old is sent by a resuming connection carrying its previous
// connection id.
type Old struct{ ID int32 }

func (Old) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

func parseOld(c *protocol.Cursor) (Old, error) {
	if err := c.Tag("c old "); err != nil {
		return Old{}, err
	}
	n, err := parseI32(c.Rest())
	if err != nil {
		return Old{}, err
	}
	return Old{ID: n}, nil
}

// Pong answers the server's periodic keepalive Ping and is always
// intercepted first by the dispatcher, regardless of lifecycle state.
type Pong struct{}

func (Pong) PacketNumber() (protocol.PacketNumber, bool) { return 0, false }

func parsePong(c *protocol.Cursor) (Pong, error) {
	if err := c.Tag("c pong"); err != nil {
		return Pong{}, err
	}
	return Pong{}, nil
}

func parseQuit(c *protocol.Cursor) (Quit, error) {
	if err := c.Tag("quit"); err != nil {
		return Quit{}, err
	}
	return Quit{}, nil
}

func parseLobbyBack(c *protocol.Cursor) (LobbyBack, error) {
	if err := c.Tag("lobby\tback"); err != nil {
		return LobbyBack{}, err
	}
	return LobbyBack{}, nil
}

func parseLobbyTrackSetlist(c *protocol.Cursor) (LobbyTrackSetlist, error) {
	if err := c.Tag("lobby\ttracksetlist"); err != nil {
		return LobbyTrackSetlist{}, err
	}
	return LobbyTrackSetlist{}, nil
}

func parseLobbyQuit(c *protocol.Cursor) (LobbyQuit, error) {
	if err := c.Tag("lobby\tquit"); err != nil {
		return LobbyQuit{}, err
	}
	return LobbyQuit{}, nil
}

func parseGameSkip(c *protocol.Cursor) (GameSkip, error) {
	if err := c.Tag("game\tskip"); err != nil {
		return GameSkip{}, err
	}
	return GameSkip{}, nil
}

func parseGameNewGame(c *protocol.Cursor) (GameNewGame, error) {
	if err := c.Tag("game\tnewgame"); err != nil {
		return GameNewGame{}, err
	}
	return GameNewGame{}, nil
}

func parseGameVoteSkip(c *protocol.Cursor) (GameVoteSkip, error) {
	if err := c.Tag("game\tvoteskip"); err != nil {
		return GameVoteSkip{}, err
	}
	return GameVoteSkip{}, nil
}

func parseGameBack(c *protocol.Cursor) (GameBack, error) {
	if err := c.Tag("game\tback"); err != nil {
		return GameBack{}, err
	}
	return GameBack{}, nil
}

func parseGameStartTurn(c *protocol.Cursor) (GameStartTurn, error) {
	if err := c.Tag("game\tstartturn\t"); err != nil {
		return GameStartTurn{}, err
	}
	n, err := parseI32(c.Rest())
	if err != nil {
		return GameStartTurn{}, err
	}
	return GameStartTurn{ID: n}, nil
}

func parseGameBackToPrivate(c *protocol.Cursor) (GameBackToPrivate, error) {
	if err := c.Tag("game\tbacktoprivate\t"); err != nil {
		return GameBackToPrivate{}, err
	}
	n, err := parseI32(c.Rest())
	if err != nil {
		return GameBackToPrivate{}, err
	}
	return GameBackToPrivate{Value1: n}, nil
}

func parseI32(field string) (int32, error) {
	var neg bool
	s := field
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	if s == "" {
		return 0, fmt.Errorf("protocol: empty integer field")
	}
	var n int64
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("protocol: bad integer field %q", field)
		}
		n = n*10 + int64(r-'0')
	}
	if neg {
		n = -n
	}
	return int32(n), nil
}

// Decode tries every known client packet tag, longest/most-specific
// first, mirroring the declaration order of the original protocol's
// ClientToServer enum, with Pong tried first.
// Every dispatched ("d <n> <tag>...") packet is preceded by its packet
// number; Decode strips that prefix before matching a tag against the
// remainder and hands the number back separately rather than folding
// it onto each of the ~30 packet structs, so callers that care (the
// per-connection reader's skew check) read it from the return value
// instead of a type-switch. Connection-control and handshake lines
// ("c ...", "s ...", bare "logintype"/"ttlogin"/...) carry no such
// prefix and numbered is false.
func Decode(line string) (Packet, protocol.PacketNumber, bool, error) {
	c := protocol.NewCursor(line)

	var number protocol.PacketNumber
	var numbered bool
	if c.HasTag("d ") {
		n, err := protocol.ParseDispatchedPrefix(c)
		if err != nil {
			return nil, 0, false, err
		}
		number, numbered = n, true
	}
	body := protocol.NewCursor(c.Remaining())

	matchers := []func(*protocol.Cursor) (Packet, error){
		wrap(parsePong),
		wrap(parseNew),
		wrap(parseOld),
		wrap(parseVersion),
		wrap(parseLoginType),
		wrap(parseTTLogin),
		wrap(parseLogin),
		wrap(parseQuit),
		wrap(parseLobbySelectCspt),
		wrap(parseLobbySelectQmpt),
		wrap(parseLobbySelectSelect),
		wrap(parseLobbySelectRnop),
		wrap(parseLobbyCmpt),
		wrap(parseLobbyCspt),
		wrap(parseLobbyTrackSetlist),
		wrap(parseLobbyBack),
		wrap(parseLobbyQuit),
		wrap(parseLobbySelect),
		wrap(parseLobbySayP),
		wrap(parseLobbySay),
		wrap(parseLobbyNc),
		wrap(parseLobbyCFail),
		wrap(parseLobbyJmpt),
		wrap(parseLobbyCspc),
		wrap(parseLobbyCancel),
		wrap(parseLobbyAccept),
		wrap(parseLobbyChallenge),
		wrap(parseGameBeginStroke),
		wrap(parseGameEndStroke),
		wrap(parseGameBackToPrivate),
		wrap(parseGameStartTurn),
		wrap(parseGameSkip),
		wrap(parseGameNewGame),
		wrap(parseGameVoteSkip),
		wrap(parseGameSay),
		wrap(parseGameJoin),
		wrap(parseGameBack),
	}

	for _, m := range matchers {
		if pkt, err := m(body); err == nil {
			return pkt, number, numbered, nil
		}
	}
	return nil, 0, false, fmt.Errorf("clientpackets: no match for %q", line)
}

func wrap[T Packet](parse func(*protocol.Cursor) (T, error)) func(*protocol.Cursor) (Packet, error) {
	return func(c *protocol.Cursor) (Packet, error) {
		cp := protocol.NewCursor(c.Remaining())
		v, err := parse(cp)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}
