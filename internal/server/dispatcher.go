package server

import (
	"log/slog"

	"github.com/nokkasiili/minigolf-server/internal/clientpackets"
	"github.com/nokkasiili/minigolf-server/internal/clients"
	"github.com/nokkasiili/minigolf-server/internal/protocol"
)

// Dispatch drains c's inbound queue and routes every packet to the
// handler selected by c's current lifecycle position: lobbyselect (no
// lobby, no game), lobby (a lobby but no game), or game. Pong is
// intercepted first, unconditionally of lifecycle state, since it's
// the one packet type valid in all three (spec.md S4.8).
func (s *State) Dispatch(c *clients.Client) {
	for _, pkt := range c.ReceivedPackets() {
		if _, ok := pkt.(clientpackets.Pong); ok {
			c.SetPong()
			continue
		}

		_, inGame := c.Game()
		switch {
		case c.LobbySelect():
			s.dispatchLobbySelect(c, pkt)
		case !inGame:
			s.dispatchLobby(c, pkt)
		default:
			s.dispatchGame(c, pkt)
		}
	}
}

func (s *State) dispatchLobbySelect(c *clients.Client, pkt clientpackets.Packet) {
	switch p := pkt.(type) {
	case clientpackets.LobbySelectRnop:
		s.handleRnop(c)
	case clientpackets.LobbySelectCspt:
		s.handleCSPT(c, p.NumTracks, p.TrackType, p.WaterEvent)
	case clientpackets.LobbySelectQmpt:
		s.handleQmpt(c)
	case clientpackets.LobbySelectSelect:
		s.handleLobbySelectChoice(c, p.LobbyType)
	case clientpackets.Quit:
		s.handleQuit(c)
	default:
		slog.Debug("server: unexpected packet at lobbyselect", "client", c.Name(), "packet", pkt)
	}
}

func (s *State) dispatchLobby(c *clients.Client, pkt clientpackets.Packet) {
	lobby, _ := c.Lobby()
	switch p := pkt.(type) {
	case clientpackets.LobbyCmpt:
		if lobby == protocol.DLobbyTypeMulti {
			s.handleCMPT(c, p)
		}
	case clientpackets.LobbyChallenge:
		if lobby == protocol.DLobbyTypeDuo {
			s.handleChallenge(c, p)
		}
	case clientpackets.LobbyAccept:
		if lobby == protocol.DLobbyTypeDuo {
			s.handleAccept(c, p)
		}
	case clientpackets.LobbyCancel:
		if lobby == protocol.DLobbyTypeDuo {
			s.handleCancel(c, p)
		}
	case clientpackets.LobbyCFail:
		if lobby == protocol.DLobbyTypeDuo {
			s.handleCFail(c, p)
		}
	case clientpackets.LobbyJmpt:
		s.handleJmpt(c, p)
	case clientpackets.LobbyCspt:
		s.handleCSPT(c, p.NumTracks, p.TrackType, p.WaterEvent)
	case clientpackets.LobbyBack:
		s.handleLobbyBack(c)
	case clientpackets.LobbySelect:
		s.handleLobbySelectChoice(c, p.LobbyType)
	case clientpackets.LobbySay:
		s.handleLobbySay(c, p)
	case clientpackets.LobbySayP:
		s.handleLobbySayP(c, p)
	case clientpackets.LobbyNc:
		s.handleNc(c, p)
	case clientpackets.LobbyQuit:
		s.handleLobbyBack(c)
	case clientpackets.Quit:
		s.handleQuit(c)
	default:
		slog.Debug("server: unexpected packet in lobby", "client", c.Name(), "packet", pkt)
	}
}

func (s *State) dispatchGame(c *clients.Client, pkt clientpackets.Packet) {
	switch p := pkt.(type) {
	case clientpackets.GameBeginStroke:
		s.handleGameBeginStroke(c, p)
	case clientpackets.GameEndStroke:
		s.handleGameEndStroke(c, p)
	case clientpackets.GameSkip:
		s.handleGameSkip(c)
	case clientpackets.GameVoteSkip:
		s.handleGameVoteSkip(c)
	case clientpackets.GameJoin:
		s.handleGameJoin(c, p)
	case clientpackets.GameBack:
		s.handleGameBack(c)
	case clientpackets.GameSay:
		s.handleGameSay(c, p)
	case clientpackets.GameNewGame:
		// No ranked-rematch flow exists yet; returning to the lobby is
		// the safe fallback until one is built.
		s.handleGameBack(c)
	case clientpackets.GameBackToPrivate:
		// Unused by the original's own dispatch table beyond its
		// catch-all arm; parsed for completeness, otherwise a no-op.
	case clientpackets.GameStartTurn:
		// Client-side turn ack; the server already drives turn order
		// from Rooms.Tick, so there's nothing to do here.
	case clientpackets.Quit:
		s.handleQuit(c)
	default:
		slog.Debug("server: unexpected packet in game", "client", c.Name(), "packet", pkt)
	}
}
