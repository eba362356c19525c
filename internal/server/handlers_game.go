package server

import (
	"log/slog"

	"github.com/nokkasiili/minigolf-server/internal/clientpackets"
	"github.com/nokkasiili/minigolf-server/internal/clients"
	"github.com/nokkasiili/minigolf-server/internal/protocol"
	"github.com/nokkasiili/minigolf-server/internal/serverpackets"
)

func (s *State) handleGameBeginStroke(c *clients.Client, pkt clientpackets.GameBeginStroke) {
	room, idx, ok := s.clientRoom(c)
	if !ok {
		return
	}
	s.broadcastRoom(room, c.ID(), func(n protocol.PacketNumber) serverpackets.Packet {
		return serverpackets.GameBeginStroke{Number: n, Index: idx, Coords: pkt.Coords}
	})
}

// handleGameEndStroke records a stroke's outcome. InHole is wire-coded
// as a PlayerInfo field (the "f" -> true inversion, see
// protocol.ParsePlayerInfo); once a seat has holed out, a later packet
// claiming it hasn't is a protocol violation from a desynced client
// and is ignored rather than trusted.
func (s *State) handleGameEndStroke(c *clients.Client, pkt clientpackets.GameEndStroke) {
	room, idx, ok := s.clientRoom(c)
	if !ok {
		return
	}
	info, err := protocol.ParsePlayerInfo(pkt.InHole)
	if err != nil || len(info) == 0 {
		slog.Debug("server: bad endstroke inhole field", "client", c.Name(), "field", pkt.InHole)
		return
	}
	player := room.Occupants()[idx]
	if player == nil {
		return
	}
	inHole := info[0]
	if player.InHole && !inHole {
		slog.Debug("server: in-hole reverted to false, ignoring", "client", c.Name())
		return
	}
	player.InHole = inHole
	player.Strokes++
	player.HasSentEndStroke = true
}

func (s *State) handleGameSkip(c *clients.Client) {
	room, idx, ok := s.clientRoom(c)
	if !ok {
		return
	}
	if player := room.Occupants()[idx]; player != nil {
		player.WantSkip = true
	}
}

func (s *State) handleGameVoteSkip(c *clients.Client) {
	room, idx, ok := s.clientRoom(c)
	if !ok {
		return
	}
	if player := room.Occupants()[idx]; player != nil {
		player.WantSkip = true
	}
	s.broadcastRoom(room, noExclude, func(n protocol.PacketNumber) serverpackets.Packet {
		return serverpackets.GameVoteSkip{Number: n, Index: idx}
	})
}

// handleGameJoin seats a late/spectating client into the room it names
// by network id -- jmpt's in-game equivalent.
func (s *State) handleGameJoin(c *clients.Client, pkt clientpackets.GameJoin) {
	id, ok := s.Rooms.IDFromNetworkID(pkt.ID)
	if !ok {
		slog.Debug("server: game join: unknown room", "id", pkt.ID)
		return
	}
	if err := s.joinExistingRoom(c, id); err != nil {
		slog.Debug("server: game join failed", "client", c.Name(), "error", err)
	}
}

// handleGameBack pulls c out of its room and back to the lobby it was
// last in, telling the rest of the room it left.
func (s *State) handleGameBack(c *clients.Client) {
	room, idx, ok := s.clientRoom(c)
	if !ok {
		return
	}
	room.RemovePlayer(idx)
	c.SetGame(0, false)
	s.broadcastRoom(room, c.ID(), func(n protocol.PacketNumber) serverpackets.Packet {
		return serverpackets.GamePart{Number: n, Index: idx, Reason: int(protocol.JoinLeaveLeftLobby)}
	})
	if lobby, ok := c.Lobby(); ok {
		c.SendPacket(serverpackets.StatusLobby{Number: c.NextNum(), Lobby: lobby})
	}
}

func (s *State) handleGameSay(c *clients.Client, pkt clientpackets.GameSay) {
	if s.Filter.ContainsBadWords(pkt.Message) {
		s.Events.ChatFlagged(c.Name(), pkt.Message)
		return
	}
	room, idx, ok := s.clientRoom(c)
	if !ok {
		return
	}
	s.broadcastRoom(room, noExclude, func(n protocol.PacketNumber) serverpackets.Packet {
		return serverpackets.GameSay{Number: n, Index: idx, Message: pkt.Message}
	})
}
