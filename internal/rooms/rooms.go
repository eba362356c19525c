// Package rooms implements the per-hole game room state machine: room
// creation from the three lobby-select packet types, turn rotation,
// vote-skip tallying, and the per-tick room manager that used to be
// called handle_rooms. Like internal/clients, everything here is
// mutated only from the tick-loop goroutine; no locking.
package rooms

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/nokkasiili/minigolf-server/internal/clientpackets"
	"github.com/nokkasiili/minigolf-server/internal/clients"
	"github.com/nokkasiili/minigolf-server/internal/protocol"
	"github.com/nokkasiili/minigolf-server/internal/serverpackets"
)

// RoomID is a stable handle into a Rooms registry.
type RoomID int

// Status is the lifecycle state of a room.
type Status int

const (
	StatusWaitingPlayers Status = iota
	StatusWaitingStroke
	StatusInGame
	StatusEnded
)

// Player is one occupant of a room slot. Slots are addressed by index
// over the wire (GameJoin/GamePart/GameStartTurn all carry a slot
// index), so a room's player slice keeps a stable index for every
// occupant for the room's lifetime: a departing player leaves a nil
// hole rather than shifting everyone after it down by one.
type Player struct {
	ClientID        clients.ClientID
	InHole          bool
	InGame          bool
	WantSkip        bool
	Strokes         int
	HasSentEndStroke bool
}

// Room is one in-progress (or waiting-to-start) game.
type Room struct {
	gameType  protocol.DLobbyType
	name      string
	hasName   bool
	password  string
	hasPasswd bool

	permission int32
	maxPlayers int32

	turn      int
	curTrack  int
	numTracks int32

	trackType protocol.TrackType

	maxStrokes              int32
	timeLimit               int32
	waterEvent              protocol.WaterEvent
	collision               protocol.Collision
	trackScoring            protocol.Scoring
	trackScoringWeightedEnd protocol.WeightEnd

	status    Status
	networkID int

	players []*Player // nil entries are empty slots; index is stable
}

// GameType reports the room's lobby family (Solo, SoloIncognito, Duo, Multi).
func (r *Room) GameType() protocol.DLobbyType { return r.gameType }

// Status reports the room's current lifecycle state.
func (r *Room) Status() Status { return r.status }

// NetworkID is the peer-visible room id used in gamelist/join packets.
func (r *Room) NetworkID() int { return r.networkID }

// Name renders the display name, falling back to "#<network id>" for
// rooms that never got one (CSPT solo rooms).
func (r *Room) Name() string {
	if r.hasName {
		return r.name
	}
	return fmt.Sprintf("#%d", r.networkID)
}

// Password reports the room's challenge/join password, if any.
func (r *Room) Password() (string, bool) { return r.password, r.hasPasswd }

// MaxPlayers is the room's player cap.
func (r *Room) MaxPlayers() int32 { return r.maxPlayers }

// IsSolo reports whether this room is a Solo or SoloIncognito room.
func (r *Room) IsSolo() bool {
	return r.gameType == protocol.DLobbyTypeSolo || r.gameType == protocol.DLobbyTypeSoloIncognito
}

// Turn is the currently active slot index.
func (r *Room) Turn() int { return r.turn }

// Occupants returns every slot, including nil (empty) ones; index i
// corresponds to wire slot i.
func (r *Room) Occupants() []*Player { return r.players }

// PlayerCount reports how many non-nil slots the room has.
func (r *Room) PlayerCount() int {
	n := 0
	for _, p := range r.players {
		if p != nil {
			n++
		}
	}
	return n
}

// PlayingPlayers counts occupied slots still marked InGame.
func (r *Room) PlayingPlayers() int {
	n := 0
	for _, p := range r.players {
		if p != nil && p.InGame {
			n++
		}
	}
	return n
}

// GetIndex returns the slot index for a client, if present.
func (r *Room) GetIndex(id clients.ClientID) (int, bool) {
	for i, p := range r.players {
		if p != nil && p.ClientID == id {
			return i, true
		}
	}
	return 0, false
}

// AddPlayer seats a client in the first empty slot (or a fresh one),
// failing once the room is at MaxPlayers.
func (r *Room) AddPlayer(id clients.ClientID) (int, error) {
	for i, p := range r.players {
		if p == nil {
			r.players[i] = newPlayer(id)
			return i, nil
		}
	}
	if int32(len(r.players)) >= r.maxPlayers {
		return 0, fmt.Errorf("room %d: max players reached", r.networkID)
	}
	r.players = append(r.players, newPlayer(id))
	return len(r.players) - 1, nil
}

func newPlayer(id clients.ClientID) *Player {
	return &Player{ClientID: id, InGame: true}
}

// RemovePlayer clears a slot, preserving every other slot's index.
func (r *Room) RemovePlayer(index int) {
	if index < 0 || index >= len(r.players) {
		return
	}
	r.players[index] = nil
}

// WantSkip reports whether every in-game player has either voted to
// skip or already reached the hole.
func (r *Room) WantSkip() bool {
	skips := 0
	for _, p := range r.players {
		if p != nil && p.InGame && (p.WantSkip || p.InHole) {
			skips++
		}
	}
	return r.PlayingPlayers() == skips
}

// AllEndStrokes reports whether every in-game player has reported the
// end of their current stroke.
func (r *Room) AllEndStrokes() bool {
	n := 0
	for _, p := range r.players {
		if p != nil && p.InGame && p.HasSentEndStroke {
			n++
		}
	}
	return r.PlayingPlayers() == n
}

// AllInHole reports whether every in-game player has holed out.
func (r *Room) AllInHole() bool {
	n := 0
	for _, p := range r.players {
		if p != nil && p.InGame && p.InHole {
			n++
		}
	}
	return r.PlayingPlayers() == n
}

// ClearEndStrokeFlags resets HasSentEndStroke on every slot, called by
// the per-tick manager once it has acted on AllEndStrokes.
func (r *Room) ClearEndStrokeFlags() {
	for _, p := range r.players {
		if p != nil {
			p.HasSentEndStroke = false
		}
	}
}

// GetNextTurn scans forward from the current turn for the next slot
// that is occupied, InGame, and not yet in the hole, wrapping at most
// once around the full roster, and leaves r.turn on the slot it finds.
// When no eligible slot is found the scan has stepped r.turn once per
// slot, so it ends where it started, and ok=false is returned.
func (r *Room) GetNextTurn() (index int, ok bool) {
	if len(r.players) == 0 {
		return 0, false
	}
	for i := 0; i < len(r.players); i++ {
		r.turn = (r.turn + 1) % len(r.players)
		p := r.players[r.turn]
		if p != nil && p.InGame && !p.InHole {
			return r.turn, true
		}
	}
	return 0, false
}

// startTrackPlayersString renders the per-slot 't'/'f' occupancy
// string carried by GameStartTrack.Players. This is a distinct,
// non-inverted convention from protocol.PlayerInfo (which only governs
// GameEndStroke.InHole) -- nil slots and InGame slots both render
// here, one character per slot in index order.
func (r *Room) startTrackPlayersString() string {
	b := make([]byte, len(r.players))
	for i, p := range r.players {
		if p != nil && p.InGame {
			b[i] = 't'
		} else {
			b[i] = 'f'
		}
	}
	return string(b)
}

// Rooms is the registry of every active room, indexed by a stable id,
// plus the monotonic network-id generator every room is assigned from
// on creation.
type Rooms struct {
	byID         map[RoomID]*Room
	nextID       RoomID
	nextNetID    int64
}

// New returns an empty registry whose network-id generator starts at 1.
func New() *Rooms {
	r := &Rooms{byID: make(map[RoomID]*Room)}
	atomic.StoreInt64(&r.nextNetID, 0)
	return r
}

func (rs *Rooms) nextNetworkID() int {
	return int(atomic.AddInt64(&rs.nextNetID, 1))
}

func (rs *Rooms) insert(r *Room) RoomID {
	rs.nextID++
	id := rs.nextID
	rs.byID[id] = r
	return id
}

// Get looks up a room by its stable id.
func (rs *Rooms) Get(id RoomID) (*Room, bool) {
	r, ok := rs.byID[id]
	return r, ok
}

// Remove drops a room from the registry.
func (rs *Rooms) Remove(id RoomID) {
	delete(rs.byID, id)
}

// IDFromNetworkID resolves the wire-visible network id to a RoomID.
func (rs *Rooms) IDFromNetworkID(networkID int) (RoomID, bool) {
	for id, r := range rs.byID {
		if r.networkID == networkID {
			return id, true
		}
	}
	return 0, false
}

// HandleCSPT creates and seats a Solo room from a LobbyCspt request,
// immediately occupying its single slot with the requesting client.
func (rs *Rooms) HandleCSPT(clientID clients.ClientID, pkt clientpackets.LobbyCspt) RoomID {
	r := &Room{
		gameType:     protocol.DLobbyTypeSolo,
		maxPlayers:   1,
		numTracks:    pkt.NumTracks,
		trackType:    pkt.TrackType,
		waterEvent:   pkt.WaterEvent,
		collision:    protocol.CollisionYes,
		trackScoring: protocol.ScoringScore,
		status:       StatusWaitingPlayers,
		networkID:    rs.nextNetworkID(),
	}
	if _, err := r.AddPlayer(clientID); err != nil {
		slog.Error("rooms: add solo player", "error", err)
	}
	return rs.insert(r)
}

// HandleCMPT creates a Multi room from a LobbyCmpt request, seating the
// creator in slot 0. The room is NOT started yet: handle_rooms promotes
// it to InGame once it fills.
func (rs *Rooms) HandleCMPT(clientID clients.ClientID, pkt clientpackets.LobbyCmpt) RoomID {
	r := &Room{
		gameType:                protocol.DLobbyTypeMulti,
		name:                    pkt.GameName.Value,
		hasName:                 pkt.GameName.Present,
		password:                pkt.Password.Value,
		hasPasswd:               pkt.Password.Present,
		permission:              pkt.Permission,
		maxPlayers:              pkt.MaxPlayers,
		numTracks:               pkt.NumTracks,
		trackType:               pkt.TrackTypes,
		maxStrokes:              pkt.MaxStrokes,
		timeLimit:               pkt.TimeLimit,
		waterEvent:              pkt.WaterEvent,
		collision:               pkt.Collision,
		trackScoring:            pkt.TrackScoring,
		trackScoringWeightedEnd: pkt.TrackScoringWeightedEnd,
		status:                  StatusWaitingPlayers,
		networkID:               rs.nextNetworkID(),
	}
	if _, err := r.AddPlayer(clientID); err != nil {
		slog.Error("rooms: add multi player", "error", err)
	}
	return rs.insert(r)
}

// HandleNewChallenge creates a Duo room from a LobbyChallenge request.
// Following the original convention, name carries the challenged
// player's username and password carries the challenger's, so the
// eventual Accept/Refuse lookup can match on both without a separate
// index. The room is left unseated: both players join once the
// challenge is accepted.
func (rs *Rooms) HandleNewChallenge(pkt clientpackets.LobbyChallenge, challenger string) RoomID {
	r := &Room{
		gameType:                protocol.DLobbyTypeDuo,
		name:                    pkt.Challenged,
		hasName:                 true,
		password:                challenger,
		hasPasswd:               true,
		maxPlayers:              2,
		numTracks:               pkt.NumTracks,
		trackType:               pkt.TrackTypes,
		maxStrokes:              pkt.MaxStrokes,
		timeLimit:               pkt.TimeLimit,
		waterEvent:              pkt.WaterEvent,
		collision:               pkt.Collision,
		trackScoring:            pkt.TrackScoring,
		trackScoringWeightedEnd: pkt.TrackScoringWeightedEnd,
		status:                  StatusWaitingPlayers,
		networkID:               rs.nextNetworkID(),
	}
	return rs.insert(r)
}

// RemoveDuoGame tears down the pending Duo challenge made by challenger
// (matched against the room's password field, which carries the
// challenger), used when a challenge is refused or withdrawn.
func (rs *Rooms) RemoveDuoGame(challenger string) {
	for id, r := range rs.byID {
		if r.gameType == protocol.DLobbyTypeDuo && r.hasPasswd && r.password == challenger {
			delete(rs.byID, id)
			return
		}
	}
}

// FindDuoGame finds the pending challenge between challenged and
// challenger.
func (rs *Rooms) FindDuoGame(challenged, challenger string) (RoomID, bool) {
	for id, r := range rs.byID {
		if r.gameType == protocol.DLobbyTypeDuo &&
			r.hasName && r.name == challenged &&
			r.hasPasswd && r.password == challenger {
			return id, true
		}
	}
	return 0, false
}

// GameList returns every room still WaitingPlayers, for the Multi
// lobby's gamelist snapshot.
func (rs *Rooms) GameList() []*Room {
	var out []*Room
	for _, r := range rs.byID {
		if r.status == StatusWaitingPlayers {
			out = append(out, r)
		}
	}
	return out
}

// ToGame projects a room into the wire Game record used by gamelist
// broadcasts.
func ToGame(r *Room) serverpackets.Game {
	_, passworded := r.Password()
	return serverpackets.Game{
		ID:                      r.networkID,
		Name:                    r.Name(),
		Passworded:              passworded,
		Permission:              r.permission,
		MaxPlayers:              r.maxPlayers,
		Unused:                  1337,
		NumTracks:               r.numTracks,
		TrackType:               r.trackType,
		MaxStrokes:              r.maxStrokes,
		TimeLimit:               r.timeLimit,
		WaterEvent:              r.waterEvent,
		Collision:               r.collision,
		TrackScoring:            r.trackScoring,
		TrackScoringWeightedEnd: r.trackScoringWeightedEnd,
		NumPlayers:              int32(r.PlayerCount()),
	}
}

// ToGameGameInfo projects a room into the GameGameInfo sent to a
// client as it joins; the caller is responsible for overwriting the
// returned packet's Number with the joining client's own next packet
// number (the original zeroes it here and fixes it up at the call
// site).
func ToGameGameInfo(r *Room) serverpackets.GameGameInfo {
	return serverpackets.GameGameInfo{
		Name:                    protocol.NonEmptyOption{Value: r.name, Present: r.hasName},
		Password:                r.hasPasswd,
		Permission:              r.permission,
		Players:                 int(r.maxPlayers),
		NumTracks:               int(r.numTracks),
		TrackTypes:              r.trackType,
		MaxStrokes:              r.maxStrokes,
		StrokeTime:              r.timeLimit,
		WaterEvent:              r.waterEvent,
		Collision:               r.collision,
		TrackScoring:            r.trackScoring,
		TrackScoringWeightedEnd: r.trackScoringWeightedEnd,
	}
}

// Start transitions a room to InGame and sends the opening GameStart +
// GameStartTrack + GameStartTurn sequence to every seated client.
func (r *Room) Start(send func(clients.ClientID, serverpackets.Packet), nextNum func(clients.ClientID) protocol.PacketNumber) {
	r.status = StatusInGame
	r.curTrack++

	for _, p := range r.players {
		if p == nil {
			continue
		}
		send(p.ClientID, serverpackets.GameStart{Number: nextNum(p.ClientID)})
		send(p.ClientID, trackPacket(r, nextNum(p.ClientID)))
		send(p.ClientID, serverpackets.GameStartTurn{Number: nextNum(p.ClientID), Index: r.turn})
	}
}

// NextTrack advances to the next hole. If the rotation has exhausted
// every track, it sends the (placeholder) GameEnd{Winner:[1]} to every
// seated client and marks the room Ended. Tick does not read that
// status: it removes a room only once PlayingPlayers or PlayerCount
// reaches zero.
// Otherwise it resets every player's in-hole/want-skip flags, advances
// the turn, and broadcasts GameResetVoteSkip + GameStartTrack +
// GameStartTurn. If the turn scan fails to find an eligible slot (only
// possible if every seat has emptied out from under the room), the
// turn broadcast is skipped and an error is logged instead of the
// panic the original took here.
func (r *Room) NextTrack(send func(clients.ClientID, serverpackets.Packet), nextNum func(clients.ClientID) protocol.PacketNumber) {
	cur := r.curTrack + 1
	if int32(cur) > r.numTracks {
		for _, p := range r.players {
			if p == nil {
				continue
			}
			send(p.ClientID, serverpackets.GameEnd{Number: nextNum(p.ClientID), Winner: []int32{1}})
		}
		r.status = StatusEnded
		return
	}

	for _, p := range r.players {
		if p == nil {
			continue
		}
		p.InHole = false
		p.WantSkip = false
	}
	r.curTrack = cur

	turn, ok := r.GetNextTurn()
	if !ok {
		slog.Error("rooms: no eligible next turn", "room", r.networkID)
		return
	}

	for _, p := range r.players {
		if p == nil {
			continue
		}
		send(p.ClientID, serverpackets.GameResetVoteSkip{Number: nextNum(p.ClientID)})
		send(p.ClientID, trackPacket(r, nextNum(p.ClientID)))
		send(p.ClientID, serverpackets.GameStartTurn{Number: nextNum(p.ClientID), Index: turn})
	}
}

// trackPacket builds the GameStartTrack payload for r. Real track
// geometry is out of scope; this is the same placeholder single-hole
// layout the reference server always sent.
func trackPacket(r *Room, num protocol.PacketNumber) serverpackets.GameStartTrack {
	return serverpackets.GameStartTrack{
		Number:  num,
		Players: r.startTrackPlayersString(),
		Seed:    0,
		TrackStrings: []string{
			"V 1",
			"A Nokkis",
			"N Test",
			"T BA2Q47DCUAECYABA2VCZAGCaAGCbAGC2AB3A36DCBAFEBCWABA2W5GEB3A38D2EB3A46D2EBA2DBABDBACDE40DBWQABA2Q2D5E17DCWI3DE8DCXTDE9DCOA6E14DCWI2DBAMABANABAOABAPAE6DCWTDF2E7D2H2D5E14DBAIABAKAGI10DEG5DC2DBA2NBATDE3DCMA6E11DCE3D4E17DCDCBAMN2ED2H2D5E14D4E17DCD2BAON2E3DCKA6E16D2E17DCDABAPN2ED2H2D5E14DBAKA2DE3DBQAT4DE15DCIA6E20DBIATBA2Q4DCDABJATE11DBPAQH2D5E19DBU2ACDABAGQ3DBAHQBAIQBA2QBRATE12DCJA6E19DBTATBA2QBAFQDBASQD5E10D2H2D5E19D2EBAEQBASQBbASBYASF4E12DCLA6E19D4EB3AD5E10D2H2D5E19D4EBVASD5E12DCNA6E5DCG3DBUASE9D4EHD5E10D2H2D5E19D4EBaASBZAS5E12DCPA6E13DBWMAE4D3EBALQFDBAJQD3E10D2H2D5E13D2E4D4EBAKQ3DCDABU2AE7DB2AQ2DFGD6E13D2E5DBLATCDAI4DBKATB3A4DB2AQE8DECDA2E2CADE12D2E6DBU2ABSAT4DB3AB2AQ4DF3DCT2DCSACQPDCRAECVAFI29DBAR4DBA2Q12D,Ads:A2309B2208C4019",
			"S fttf14",
			"C 3,4",
			"I 13942,90651,1,37",
			"R 94,12,23,28,28,77,67,49,33,31,279",
			"B igo,1283637600000",
			"L igo,1283637600000",
		},
	}
}

// Tick runs one pass of the per-tick room manager: start rooms that
// just filled, garbage-collect empty ones, advance turns or tracks
// when every player has converged, and apply pending vote-skips. cs
// resolves room-player ids to live clients for sends and packet
// numbering; onGamelistRemove is invoked with a Multi room when it
// starts and when it is removed while still waiting for players.
func (rs *Rooms) Tick(cs *clients.Clients, onGamelistRemove func(r *Room)) {
	send := func(id clients.ClientID, pkt serverpackets.Packet) {
		if c, ok := cs.Get(id); ok {
			c.SendPacket(pkt)
		}
	}
	nextNum := func(id clients.ClientID) protocol.PacketNumber {
		if c, ok := cs.Get(id); ok {
			return c.NextNum()
		}
		return 0
	}

	var toRemove []RoomID
	for id, r := range rs.byID {
		if r.status == StatusWaitingPlayers && int32(r.PlayerCount()) == r.maxPlayers {
			r.Start(send, nextNum)
			if r.gameType == protocol.DLobbyTypeMulti {
				onGamelistRemove(r)
			}
		}

		if r.PlayingPlayers() == 0 {
			toRemove = append(toRemove, id)
		}

		if r.AllEndStrokes() {
			if turn, ok := r.GetNextTurn(); ok {
				for _, p := range r.players {
					if p == nil {
						continue
					}
					send(p.ClientID, serverpackets.GameStartTurn{Number: nextNum(p.ClientID), Index: turn})
				}
			} else {
				r.NextTrack(send, nextNum)
			}
			r.ClearEndStrokeFlags()
		}

		if r.WantSkip() {
			r.NextTrack(send, nextNum)
		}

		if r.PlayerCount() == 0 {
			toRemove = append(toRemove, id)
			if r.status == StatusWaitingPlayers && r.gameType == protocol.DLobbyTypeMulti {
				onGamelistRemove(r)
			}
		}
	}

	for _, id := range toRemove {
		rs.Remove(id)
	}
}
