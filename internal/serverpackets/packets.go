// Package serverpackets implements every packet the server may send,
// grounded field-for-field on the original protocol's
// server-to-client grammar (internal/clientpackets is its mirror for
// the other direction). Each packet type owns an Encode method; the
// literal byte-for-byte vectors in the package tests are the contract
// a real client depends on.
package serverpackets

import (
	"strconv"
	"strings"

	"github.com/nokkasiili/minigolf-server/internal/protocol"
)

// Packet is implemented by every server-to-client packet.
type Packet interface {
	Encode() string
}

func i32(n int32) string { return strconv.FormatInt(int64(n), 10) }
func u(n int) string     { return strconv.Itoa(n) }

// --- unnumbered connection-control / handshake packets ---

// H is the very first byte the server sends: a bare numeric greeting.
type H struct{ Value int32 }

func (p H) Encode() string { return "h " + i32(p.Value) + "\n" }

// Version answers the client's version check.
type Version struct{ Value string }

func (p Version) Encode() string { return "s " + p.Value + "\n" }

// KickBan is the administrative disconnect-with-reason packet.
type KickBan struct{ Value protocol.KickStyle }

func (p KickBan) Encode() string { return "p kickban " + p.Value.String() + "\n" }

// Io carries the connection-cipher seed to the client.
type Io struct{ Seed int32 }

func (p Io) Encode() string { return "c io " + i32(p.Seed) + "\n" }

// Crt is the fixed "c crt" line of the handshake preamble.
type Crt struct{ Value int32 }

func (p Crt) Encode() string { return "c crt " + i32(p.Value) + "\n" }

// Ctr requests the client start its connection cipher.
type Ctr struct{}

func (p Ctr) Encode() string { return "c ctr\n" }

// ID assigns the connection its network id.
type ID struct{ Value int }

func (p ID) Encode() string { return "c id " + u(p.Value) + "\n" }

// Ping is the periodic keepalive.
type Ping struct{}

func (p Ping) Encode() string { return "c ping\n" }

// Rcok/Rcf acknowledge or refuse a reconnection attempt.
type Rcok struct{}

func (p Rcok) Encode() string { return "c rcok\n" }

type Rcf struct{}

func (p Rcf) Encode() string { return "c rcf\n" }

// VersOk confirms the client's version is acceptable.
type VersOk struct{}

func (p VersOk) Encode() string { return "versok\n" }

// Error is the fatal handshake-time error packet.
type Error struct{ Error protocol.ErrorType }

func (p Error) Encode() string { return "error\t" + p.Error.String() + "\n" }

// --- numbered (dispatched) packets ---

func prefix(n protocol.PacketNumber) string { return protocol.EncodeDispatchedPrefix(n) }

// BasicInfo reports account-level flags right after login.
type BasicInfo struct {
	Number           protocol.PacketNumber
	UnconfirmedEmail bool
	AccessLevel      int32
	BadwordFilter    bool
	GuestChat        bool
}

func (p BasicInfo) Encode() string {
	return prefix(p.Number) + "basicinfo\t" +
		protocol.EncodeBool(p.UnconfirmedEmail) + "\t" +
		i32(p.AccessLevel) + "\t" +
		protocol.EncodeBool(p.BadwordFilter) + "\t" +
		protocol.EncodeBool(p.GuestChat) + "\n"
}

// Broadcast is a raw server-wide announcement line.
type Broadcast struct {
	Number    protocol.PacketNumber
	Broadcast string
}

func (p Broadcast) Encode() string {
	return prefix(p.Number) + "broadcast\t" + p.Broadcast + "\n"
}

// GameGameInfo describes a room's current ruleset; field order matches
// the literal scenario
// "d 9 game\tgameinfo\t-\tf\t13\t3\t10\t1\t20\t60\t0\t1\t0\t0\tf\n".
type GameGameInfo struct {
	Number                  protocol.PacketNumber
	Name                    protocol.NonEmptyOption
	Password                bool
	Permission              int32
	Players                 int
	NumTracks               int
	TrackTypes              protocol.TrackType
	MaxStrokes              int32
	StrokeTime              int32
	WaterEvent              protocol.WaterEvent
	Collision               protocol.Collision
	TrackScoring            protocol.Scoring
	TrackScoringWeightedEnd protocol.WeightEnd
	Value2                  bool
}

func (p GameGameInfo) Encode() string {
	fields := []string{
		p.Name.Encode(),
		protocol.EncodeBool(p.Password),
		i32(p.Permission),
		u(p.Players),
		u(p.NumTracks),
		p.TrackTypes.Encode(),
		i32(p.MaxStrokes),
		i32(p.StrokeTime),
		p.WaterEvent.Encode(),
		p.Collision.Encode(),
		p.TrackScoring.Encode(),
		p.TrackScoringWeightedEnd.Encode(),
		protocol.EncodeBool(p.Value2),
	}
	return prefix(p.Number) + "game\tgameinfo\t" + strings.Join(fields, "\t") + "\n"
}

// GamePlayers carries the room's player list, when non-empty.
type GamePlayers struct {
	Number  protocol.PacketNumber
	Players []Player
}

func (p GamePlayers) Encode() string {
	list := protocol.EncodeOptionalLeadingTabList(p.Players, func(pl Player) string { return pl.encode() })
	return prefix(p.Number) + "game\tplayers" + list + "\n"
}

// GameEnd announces the end of a track rotation. winner is preserved as
// the original's placeholder single-element vector; a real scoring
// system is explicitly out of scope.
type GameEnd struct {
	Number protocol.PacketNumber
	Winner []int32
}

func (p GameEnd) Encode() string {
	parts := make([]string, len(p.Winner))
	for i, w := range p.Winner {
		parts[i] = i32(w)
	}
	return prefix(p.Number) + "game\tend\t" + strings.Join(parts, "\t") + "\n"
}

// GameOwnInfo tells a joining player their own assigned slot.
type GameOwnInfo struct {
	Number protocol.PacketNumber
	Index  int
	Name   string
	Clan   protocol.NonEmptyOption
}

func (p GameOwnInfo) Encode() string {
	return prefix(p.Number) + "game\towninfo\t" + u(p.Index) + "\t" + p.Name + "\t" + p.Clan.Encode() + "\n"
}

// GameScoringMulti carries per-track score multipliers.
type GameScoringMulti struct {
	Number             protocol.PacketNumber
	ScoringMultipliers []int32
}

func (p GameScoringMulti) Encode() string {
	parts := make([]string, len(p.ScoringMultipliers))
	for i, m := range p.ScoringMultipliers {
		parts[i] = i32(m)
	}
	return prefix(p.Number) + "game\tscoringmulti\t" + strings.Join(parts, "\t") + "\n"
}

// GameCr carries a one-shot reconnect token.
type GameCr struct {
	Number protocol.PacketNumber
	Token  string
}

func (p GameCr) Encode() string { return prefix(p.Number) + "game\tcr\t" + p.Token + "\n" }

// GameChangeScore updates every player's running score.
type GameChangeScore struct {
	Number protocol.PacketNumber
	Scores []int32
}

func (p GameChangeScore) Encode() string {
	parts := make([]string, len(p.Scores))
	for i, s := range p.Scores {
		parts[i] = i32(s)
	}
	return prefix(p.Number) + "game\tchangescore\t" + strings.Join(parts, "\t") + "\n"
}

// GameVoteSkip reports that a player slot has voted to skip the hole.
type GameVoteSkip struct {
	Number protocol.PacketNumber
	Index  int
}

func (p GameVoteSkip) Encode() string { return prefix(p.Number) + "game\tvoteskip\t" + u(p.Index) + "\n" }

// GameRfng ("ready for new game") reports a slot's new-game vote.
type GameRfng struct {
	Number protocol.PacketNumber
	Index  int
}

func (p GameRfng) Encode() string { return prefix(p.Number) + "game\trfng\t" + u(p.Index) + "\n" }

// GameResetVoteSkip clears every slot's skip vote at the start of a
// track.
type GameResetVoteSkip struct{ Number protocol.PacketNumber }

func (p GameResetVoteSkip) Encode() string {
	return prefix(p.Number) + "game\tresetvoteskip\n"
}

// GameStartTrack begins a new track/hole.
type GameStartTrack struct {
	Number        protocol.PacketNumber
	Players       string
	Seed          int32
	TrackStrings  []string
}

func (p GameStartTrack) Encode() string {
	return prefix(p.Number) + "game\tstarttrack\t" + p.Players + "\t" + i32(p.Seed) + "\t" +
		strings.Join(p.TrackStrings, "\t") + "\n"
}

// GameGame marks entry into the in-game phase of a room.
type GameGame struct{ Number protocol.PacketNumber }

func (p GameGame) Encode() string { return prefix(p.Number) + "game\tgame\n" }

// GameStartTurn announces whose turn it is.
type GameStartTurn struct {
	Number protocol.PacketNumber
	Index  int
}

func (p GameStartTurn) Encode() string {
	return prefix(p.Number) + "game\tstartturn\t" + u(p.Index) + "\n"
}

// GameStart marks the very first start of a room (turn 0).
type GameStart struct{ Number protocol.PacketNumber }

func (p GameStart) Encode() string { return prefix(p.Number) + "game\tstart\n" }

// GameSay relays a chat line within a room.
type GameSay struct {
	Number  protocol.PacketNumber
	Index   int
	Message string
}

func (p GameSay) Encode() string {
	return prefix(p.Number) + "game\tsay\t" + u(p.Index) + "\t" + p.Message + "\n"
}

// GamePart announces a slot leaving the room.
type GamePart struct {
	Number protocol.PacketNumber
	Index  int
	Reason int
}

func (p GamePart) Encode() string {
	return prefix(p.Number) + "game\tpart\t" + u(p.Index) + "\t" + u(p.Reason) + "\n"
}

// GameJoin announces a new player occupying a slot.
type GameJoin struct {
	Number protocol.PacketNumber
	Index  int
	Name   string
	Clan   protocol.NonEmptyOption
}

func (p GameJoin) Encode() string {
	return prefix(p.Number) + "game\tjoin\t" + u(p.Index) + "\t" + p.Name + "\t" + p.Clan.Encode() + "\n"
}

// GameBeginStroke relays a stroke in progress to the other players.
type GameBeginStroke struct {
	Number protocol.PacketNumber
	Index  int
	Coords string
}

func (p GameBeginStroke) Encode() string {
	return prefix(p.Number) + "game\tbeginstroke\t" + u(p.Index) + "\t" + p.Coords + "\n"
}

// StatusLogin reports the outcome of a login attempt.
type StatusLogin struct {
	Number protocol.PacketNumber
	Status *protocol.LoginStatus
}

func (p StatusLogin) Encode() string {
	s := ""
	if p.Status != nil {
		s = "\t" + p.Status.String()
	}
	return prefix(p.Number) + "status\tlogin" + s + "\n"
}

// StatusGame confirms entry into the game-state dispatch.
type StatusGame struct{ Number protocol.PacketNumber }

func (p StatusGame) Encode() string { return prefix(p.Number) + "status\tgame\n" }

// StatusLobby confirms which lobby type the client has entered.
type StatusLobby struct {
	Number protocol.PacketNumber
	Lobby  protocol.DLobbyType
}

func (p StatusLobby) Encode() string {
	return prefix(p.Number) + "status\tlobby\t" + p.Lobby.String() + "\n"
}

// StatusLobbySelect confirms the client has reached the lobby-select
// dispatch.
type StatusLobbySelect struct {
	Number protocol.PacketNumber
	Lobby  int32
}

func (p StatusLobbySelect) Encode() string {
	return prefix(p.Number) + "status\tlobbyselect\t" + i32(p.Lobby) + "\n"
}

// Tracklist is an embedded (tagless) record describing one track's
// best-score holders, only ever found inside a LobbyTrackSetlist.
type Tracklist struct {
	Name               string
	Difficulty         protocol.Difficulty
	Tracks             int32
	AllTimeBestName    protocol.NonEmptyOption
	AllTimeBestStrokes protocol.NonEmptyOption
	MonthBestName      protocol.NonEmptyOption
	MonthBestStrokes   protocol.NonEmptyOption
	WeekBestName       protocol.NonEmptyOption
	WeekBestStrokes    protocol.NonEmptyOption
	DayBestName        protocol.NonEmptyOption
	DayBestStrokes     protocol.NonEmptyOption
}

func (t Tracklist) encode() string {
	return strings.Join([]string{
		t.Name,
		t.Difficulty.Encode(),
		i32(t.Tracks),
		t.AllTimeBestName.Encode(),
		t.AllTimeBestStrokes.Encode(),
		t.MonthBestName.Encode(),
		t.MonthBestStrokes.Encode(),
		t.WeekBestName.Encode(),
		t.WeekBestStrokes.Encode(),
		t.DayBestName.Encode(),
		t.DayBestStrokes.Encode(),
	}, "\t")
}

// LobbyTrackSetlist carries the server's available track list.
type LobbyTrackSetlist struct {
	Number  protocol.PacketNumber
	Setlist []Tracklist
}

func (p LobbyTrackSetlist) Encode() string {
	list := protocol.EncodeTabList(p.Setlist, func(t Tracklist) string { return t.encode() })
	tag := "lobby\ttracksetlist"
	if len(p.Setlist) > 0 {
		tag += "\t"
	}
	return prefix(p.Number) + tag + list + "\n"
}

// LobbyNumberOfUsers reports aggregate lobby/playing counts for every
// room family.
type LobbyNumberOfUsers struct {
	Number        protocol.PacketNumber
	SingleLobby   int32
	SinglePlaying int32
	DualLobby     int32
	DualPlaying   int32
	MultiLobby    int32
	MultiPlaying  int32
}

func (p LobbyNumberOfUsers) Encode() string {
	fields := []string{
		i32(p.SingleLobby), i32(p.SinglePlaying),
		i32(p.DualLobby), i32(p.DualPlaying),
		i32(p.MultiLobby), i32(p.MultiPlaying),
	}
	return prefix(p.Number) + "lobby\tnumberofusers\t" + strings.Join(fields, "\t") + "\n"
}

// LobbyOwnJoin tells the joining client its own User record.
type LobbyOwnJoin struct {
	Number  protocol.PacketNumber
	OwnInfo protocol.User
}

func (p LobbyOwnJoin) Encode() string {
	return prefix(p.Number) + "lobby\townjoin\t" + p.OwnInfo.Encode() + "\n"
}

// LobbyJoinFromGame announces a player returning to the lobby from a
// room.
type LobbyJoinFromGame struct {
	Number protocol.PacketNumber
	User   protocol.User
}

func (p LobbyJoinFromGame) Encode() string {
	return prefix(p.Number) + "lobby\tjoinfromgame\t" + p.User.Encode() + "\n"
}

// LobbyJoin announces a new member entering a lobby.
type LobbyJoin struct {
	Number protocol.PacketNumber
	User   protocol.User
}

func (p LobbyJoin) Encode() string {
	return prefix(p.Number) + "lobby\tjoin\t" + p.User.Encode() + "\n"
}

// LobbyCFail reports a challenge failure to the challenger.
type LobbyCFail struct {
	Number protocol.PacketNumber
	Reason protocol.ChallengeFail
}

func (p LobbyCFail) Encode() string {
	return prefix(p.Number) + "cfail\t" + p.Reason.String() + "\n"
}

// LobbyAFail reports that an accept failed (the challenge vanished).
type LobbyAFail struct{ Number protocol.PacketNumber }

func (p LobbyAFail) Encode() string { return prefix(p.Number) + "afail\n" }

// LobbyCancel reports a cancelled challenge.
type LobbyCancel struct{ Number protocol.PacketNumber }

func (p LobbyCancel) Encode() string { return prefix(p.Number) + "cancel\n" }

// LobbyChallenge relays an incoming challenge to the challenged player.
type LobbyChallenge struct {
	Number                  protocol.PacketNumber
	Challenger              string
	NumTracks               int32
	TrackTypes              protocol.TrackType
	MaxStrokes              int32
	TimeLimit               int32
	WaterEvent              protocol.WaterEvent
	Collision               protocol.Collision
	TrackScoring            protocol.Scoring
	TrackScoringWeightedEnd protocol.WeightEnd
}

func (p LobbyChallenge) Encode() string {
	fields := []string{
		p.Challenger,
		i32(p.NumTracks),
		p.TrackTypes.Encode(),
		i32(p.MaxStrokes),
		i32(p.TimeLimit),
		p.WaterEvent.Encode(),
		p.Collision.Encode(),
		p.TrackScoring.Encode(),
		p.TrackScoringWeightedEnd.Encode(),
	}
	return prefix(p.Number) + "challenge\t" + strings.Join(fields, "\t") + "\n"
}

// LobbyNC reports another member's no-challenges flag change.
type LobbyNC struct {
	Number       protocol.PacketNumber
	Name         string
	NoChallenges bool
}

func (p LobbyNC) Encode() string {
	return prefix(p.Number) + "lobby\tnc\t" + p.Name + "\t" + protocol.EncodeBool(p.NoChallenges) + "\n"
}

// LobbySheriffSay relays an administrative broadcast.
type LobbySheriffSay struct {
	Number  protocol.PacketNumber
	Message string
}

func (p LobbySheriffSay) Encode() string {
	return prefix(p.Number) + "lobby\tsherifsay\t" + p.Message + "\n"
}

// LobbySay relays a chat line to everyone in a lobby.
type LobbySay struct {
	Number      protocol.PacketNumber
	Destination string
	Username    string
	Message     string
}

func (p LobbySay) Encode() string {
	return prefix(p.Number) + "lobby\tsay\t" + p.Destination + "\t" + p.Username + "\t" + p.Message + "\n"
}

// LobbySayP relays a private message; round trips exactly:
// "d 5 lobby\tsayp\tNokkasiili\tlol lol lol\n".
type LobbySayP struct {
	Number  protocol.PacketNumber
	From    string
	Message string
}

func (p LobbySayP) Encode() string {
	return prefix(p.Number) + "lobby\tsayp\t" + p.From + "\t" + p.Message + "\n"
}

// LobbyGsn notifies both sides of an active duo-challenge game session
// name pairing.
type LobbyGsn struct {
	Number     protocol.PacketNumber
	Challenger string
	Challenged string
}

func (p LobbyGsn) Encode() string {
	return prefix(p.Number) + "gsn\t" + p.Challenger + "\t" + p.Challenged + "\n"
}

// LobbyUsers carries the lobby's current user list, when non-empty.
type LobbyUsers struct {
	Number protocol.PacketNumber
	Users  []protocol.User
}

func (p LobbyUsers) Encode() string {
	list := protocol.EncodeOptionalLeadingTabList(p.Users, func(u protocol.User) string { return u.Encode() })
	return prefix(p.Number) + "lobby\tusers" + list + "\n"
}

// LobbyPart announces a member leaving the lobby.
type LobbyPart struct {
	Number protocol.PacketNumber
	Name   string
	Reason protocol.JoinLeaveReason
}

func (p LobbyPart) Encode() string {
	return prefix(p.Number) + "lobby\tpart\t" + p.Name + "\t" + p.Reason.Encode() + "\n"
}

// Game is an embedded (tagless) record describing one Multi room, used
// inside LobbyGamelistFull/Add/Change.
type Game struct {
	ID                      int
	Name                    string
	Passworded              bool
	Permission              int32
	MaxPlayers              int32
	Unused                  int32 // always 1337 on the wire, legacy client quirk
	NumTracks               int32
	TrackType               protocol.TrackType
	MaxStrokes              int32
	TimeLimit               int32
	WaterEvent              protocol.WaterEvent
	Collision               protocol.Collision
	TrackScoring            protocol.Scoring
	TrackScoringWeightedEnd protocol.WeightEnd
	NumPlayers              int32
}

func (g Game) encode() string {
	return strings.Join([]string{
		u(g.ID),
		g.Name,
		protocol.EncodeBool(g.Passworded),
		i32(g.Permission),
		i32(g.MaxPlayers),
		i32(g.Unused),
		i32(g.NumTracks),
		g.TrackType.Encode(),
		i32(g.MaxStrokes),
		i32(g.TimeLimit),
		g.WaterEvent.Encode(),
		g.Collision.Encode(),
		g.TrackScoring.Encode(),
		g.TrackScoringWeightedEnd.Encode(),
		i32(g.NumPlayers),
	}, "\t")
}

// Player is an embedded (tagless) record describing one occupied room
// slot, used inside GamePlayers.
type Player struct {
	Index int
	Name  string
	Clan  protocol.NonEmptyOption
}

func (pl Player) encode() string {
	return u(pl.Index) + "\t" + pl.Name + "\t" + pl.Clan.Encode()
}

// LobbyGamelistRemove drops one room from the Multi gamelist.
type LobbyGamelistRemove struct {
	Number protocol.PacketNumber
	ID     int
}

func (p LobbyGamelistRemove) Encode() string {
	return prefix(p.Number) + "gamelist\tremove\t" + u(p.ID) + "\n"
}

// LobbyGamelistChange reports a ruleset/roster change on an existing
// Multi room.
type LobbyGamelistChange struct {
	Number protocol.PacketNumber
	Game   Game
}

func (p LobbyGamelistChange) Encode() string {
	return prefix(p.Number) + "gamelist\tchange\t" + p.Game.encode() + "\n"
}

// LobbyGamelistAdd announces a newly created Multi room.
type LobbyGamelistAdd struct {
	Number protocol.PacketNumber
	Game   Game
}

func (p LobbyGamelistAdd) Encode() string {
	return prefix(p.Number) + "gamelist\tadd\t" + p.Game.encode() + "\n"
}

// LobbyGamelistFull is the snapshot sent when a client enters the
// Multi lobby.
type LobbyGamelistFull struct {
	Number protocol.PacketNumber
	Len    int
	Games  []Game
}

func (p LobbyGamelistFull) Encode() string {
	list := protocol.EncodeOptionalLeadingTabList(p.Games, func(g Game) string { return g.encode() })
	return prefix(p.Number) + "gamelist\tfull\t" + u(p.Len) + list + "\n"
}

// LobbySelectNop reports the three lobby-select-state lobby counts.
type LobbySelectNop struct {
	Number protocol.PacketNumber
	Single int32
	Versus int32
	Multi  int32
}

func (p LobbySelectNop) Encode() string {
	return prefix(p.Number) + "rnop\t" + i32(p.Single) + "\t" + i32(p.Versus) + "\t" + i32(p.Multi) + "\n"
}

// LobbySelectLobby confirms the lobby type chosen from the lobby-select
// state.
type LobbySelectLobby struct {
	Number protocol.PacketNumber
	Value  int32
}

func (p LobbySelectLobby) Encode() string {
	return prefix(p.Number) + "select\tlobby\t" + i32(p.Value) + "\n"
}
