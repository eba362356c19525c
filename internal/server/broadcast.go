package server

import (
	"github.com/nokkasiili/minigolf-server/internal/clients"
	"github.com/nokkasiili/minigolf-server/internal/protocol"
	"github.com/nokkasiili/minigolf-server/internal/rooms"
	"github.com/nokkasiili/minigolf-server/internal/serverpackets"
)

// noExclude is passed to broadcastToLobby/broadcastRoom when nobody
// should be skipped; ClientID 0 is never assigned (Clients.Insert
// starts numbering at 1).
const noExclude clients.ClientID = 0

// broadcastToLobby sends build(n), numbered per recipient, to every
// client currently in lobby except exclude.
func (s *State) broadcastToLobby(lobby protocol.DLobbyType, exclude clients.ClientID, build func(protocol.PacketNumber) serverpackets.Packet) {
	for _, c := range s.Clients.InLobby(lobby) {
		if c.ID() == exclude {
			continue
		}
		c.SendPacket(build(c.NextNum()))
	}
}

// broadcastRoom sends build(n), numbered per recipient, to every
// occupied seat of room except exclude.
func (s *State) broadcastRoom(room *rooms.Room, exclude clients.ClientID, build func(protocol.PacketNumber) serverpackets.Packet) {
	for _, p := range room.Occupants() {
		if p == nil || p.ClientID == exclude {
			continue
		}
		if c, ok := s.Clients.Get(p.ClientID); ok {
			c.SendPacket(build(c.NextNum()))
		}
	}
}

// refreshLobbyCounts pushes the six-way lobby/playing breakdown to
// every connected client. It's cheap enough to recompute and resend
// in full on every membership change rather than tracking deltas.
func (s *State) refreshLobbyCounts() {
	counts := s.Clients.CountByLobby()
	for _, c := range s.Clients.All() {
		c.SendPacket(serverpackets.LobbyNumberOfUsers{
			Number:        c.NextNum(),
			SingleLobby:   counts.SingleLobby,
			SinglePlaying: counts.SinglePlaying,
			DualLobby:     counts.DualLobby,
			DualPlaying:   counts.DualPlaying,
			MultiLobby:    counts.MultiLobby,
			MultiPlaying:  counts.MultiPlaying,
		})
	}
}

// joinLobby transitions c into lobby, broadcasting whichever of the
// join variants fits where it's coming from (nowhere yet, another
// lobby, or a finished game -- spec.md's S4.8 join/part rules), then
// refreshes the counts. SoloIncognito suppresses every one of these
// broadcasts: nobody is told an incognito player exists.
func (s *State) joinLobby(c *clients.Client, lobby protocol.DLobbyType) {
	fromLobby, wasInLobby := c.Lobby()
	_, wasInGame := c.Game()

	c.SetLobby(lobby, true)

	if lobby == protocol.DLobbyTypeSoloIncognito {
		return
	}

	switch {
	case wasInGame:
		s.broadcastToLobby(lobby, c.ID(), func(n protocol.PacketNumber) serverpackets.Packet {
			return serverpackets.LobbyJoinFromGame{Number: n, User: c.User()}
		})
	case wasInLobby && fromLobby != lobby:
		s.broadcastToLobby(fromLobby, c.ID(), func(n protocol.PacketNumber) serverpackets.Packet {
			return serverpackets.LobbyPart{Number: n, Name: c.Name(), Reason: protocol.JoinLeaveReason{Kind: protocol.JoinLeaveLeftLobby}}
		})
		s.broadcastToLobby(lobby, c.ID(), func(n protocol.PacketNumber) serverpackets.Packet {
			return serverpackets.LobbyJoin{Number: n, User: c.User()}
		})
	default:
		s.broadcastToLobby(lobby, c.ID(), func(n protocol.PacketNumber) serverpackets.Packet {
			return serverpackets.LobbyJoin{Number: n, User: c.User()}
		})
	}
	s.refreshLobbyCounts()
}

// leaveLobby clears c's lobby membership, announcing it unless c was
// incognito.
func (s *State) leaveLobby(c *clients.Client, reason protocol.JoinLeaveReason) {
	lobby, ok := c.Lobby()
	if !ok {
		return
	}
	c.SetLobby(0, false)
	if lobby == protocol.DLobbyTypeSoloIncognito {
		return
	}
	s.broadcastToLobby(lobby, c.ID(), func(n protocol.PacketNumber) serverpackets.Packet {
		return serverpackets.LobbyPart{Number: n, Name: c.Name(), Reason: reason}
	})
	s.refreshLobbyCounts()
}

// completeJoin finishes seating a client that a Rooms.HandleCSPT /
// HandleCMPT / AddPlayer call has already placed into room: it wires
// up the client's game/lobby state and sends the two packets every
// newly seated client needs (its view of the room, and its own seat).
func (s *State) completeJoin(c *clients.Client, id rooms.RoomID) {
	room, ok := s.Rooms.Get(id)
	if !ok {
		return
	}
	idx, _ := room.GetIndex(c.ID())
	c.SetGame(toRoomRef(id), true)
	if lobby, ok := c.Lobby(); !ok || lobby != room.GameType() {
		s.joinLobby(c, room.GameType())
	}

	gi := rooms.ToGameGameInfo(room)
	gi.Number = c.NextNum()
	c.SendPacket(gi)

	clan, hasClan := c.Clan()
	c.SendPacket(serverpackets.GameOwnInfo{
		Number: c.NextNum(),
		Index:  idx,
		Name:   c.Name(),
		Clan:   protocol.NonEmptyOption{Value: clan, Present: hasClan},
	})
}

// joinExistingRoom seats c into an already-running room (a jmpt/qmpt
// lookup, or a duo challenge acceptance), unlike completeJoin which
// only finishes a seat Rooms already created.
func (s *State) joinExistingRoom(c *clients.Client, id rooms.RoomID) error {
	room, ok := s.Rooms.Get(id)
	if !ok {
		return errRoomNotFound
	}
	idx, err := room.AddPlayer(c.ID())
	if err != nil {
		return err
	}
	s.completeJoin(c, id)

	clan, hasClan := c.Clan()
	s.broadcastRoom(room, c.ID(), func(n protocol.PacketNumber) serverpackets.Packet {
		return serverpackets.GameJoin{Number: n, Index: idx, Name: c.Name(), Clan: protocol.NonEmptyOption{Value: clan, Present: hasClan}}
	})
	return nil
}

// onGamelistRemove is passed to Rooms.Tick, invoked whenever a Multi
// room leaves the Multi lobby's gamelist: when it starts, and when it
// is garbage-collected while still waiting for players. Only the
// second case is recorded as a room ending.
func (s *State) onGamelistRemove(r *rooms.Room) {
	s.broadcastToLobby(protocol.DLobbyTypeMulti, noExclude, func(n protocol.PacketNumber) serverpackets.Packet {
		return serverpackets.LobbyGamelistRemove{Number: n, ID: r.NetworkID()}
	})
	if r.Status() == rooms.StatusWaitingPlayers {
		s.Events.RoomEnded(r.NetworkID())
	}
}

// removeClient tears a client out of whatever room and lobby it
// occupies, broadcasting the appropriate part notices, then drops it
// from the registry. Used by both a graceful quit and a ping-timeout
// reap.
func (s *State) removeClient(c *clients.Client) {
	if room, idx, ok := s.clientRoom(c); ok {
		room.RemovePlayer(idx)
		s.broadcastRoom(room, c.ID(), func(n protocol.PacketNumber) serverpackets.Packet {
			return serverpackets.GamePart{Number: n, Index: idx, Reason: int(protocol.JoinLeaveLostConnection)}
		})
	}
	s.leaveLobby(c, protocol.JoinLeaveReason{Kind: protocol.JoinLeaveLostConnection})
	s.Clients.Remove(c.ID())
}
