package server

import (
	"log/slog"

	"github.com/nokkasiili/minigolf-server/internal/clientpackets"
	"github.com/nokkasiili/minigolf-server/internal/clients"
	"github.com/nokkasiili/minigolf-server/internal/protocol"
	"github.com/nokkasiili/minigolf-server/internal/rooms"
	"github.com/nokkasiili/minigolf-server/internal/serverpackets"
)

// handleRnop answers a lobbyselect-screen refresh with the
// solo/duo/multi player counts.
func (s *State) handleRnop(c *clients.Client) {
	solo, duo, multi := s.Clients.CountPlayers()
	c.SendPacket(serverpackets.LobbySelectNop{Number: c.NextNum(), Single: solo, Versus: duo, Multi: multi})
}

// handleQuit marks c for reap; the tick loop's timeout pass performs
// the actual teardown so disconnect and ping-timeout share one path.
func (s *State) handleQuit(c *clients.Client) {
	c.Disconnect()
}

// handleLobbyBack returns c to the lobbyselect screen.
func (s *State) handleLobbyBack(c *clients.Client) {
	s.leaveLobby(c, protocol.JoinLeaveReason{Kind: protocol.JoinLeaveLeftLobby})
	c.SendPacket(serverpackets.StatusLobbySelect{Number: c.NextNum(), Lobby: 300})
}

// handleLobbySelectChoice is shared by the lobbyselect-state "select"
// packet and the in-lobby "select" packet (switching families): both
// put c into lobby and send the same status/roster reply.
func (s *State) handleLobbySelectChoice(c *clients.Client, lobby protocol.DLobbyType) {
	s.joinLobby(c, lobby)
	c.SendPacket(serverpackets.StatusLobby{Number: c.NextNum(), Lobby: lobby})
	if lobby == protocol.DLobbyTypeMulti {
		s.sendGamelistFull(c)
	}
	if lobby != protocol.DLobbyTypeSoloIncognito {
		c.SendPacket(serverpackets.LobbyUsers{Number: c.NextNum(), Users: s.Clients.LobbyUserList(c.ID(), lobby)})
	}
}

func (s *State) sendGamelistFull(c *clients.Client) {
	list := s.Rooms.GameList()
	games := make([]serverpackets.Game, 0, len(list))
	for _, r := range list {
		if r.GameType() == protocol.DLobbyTypeMulti {
			games = append(games, rooms.ToGame(r))
		}
	}
	c.SendPacket(serverpackets.LobbyGamelistFull{Number: c.NextNum(), Len: len(games), Games: games})
}

// handleCSPT creates a private solo track and seats its creator,
// reachable both before any lobby is picked and from within a lobby.
func (s *State) handleCSPT(c *clients.Client, numTracks int32, trackType protocol.TrackType, waterEvent protocol.WaterEvent) {
	id := s.Rooms.HandleCSPT(c.ID(), clientpackets.LobbyCspt{NumTracks: numTracks, TrackType: trackType, WaterEvent: waterEvent})
	s.Events.RoomCreated("solo", "")
	s.completeJoin(c, id)
}

// handleCMPT creates a public Multi room and announces it to everyone
// else browsing the Multi lobby.
func (s *State) handleCMPT(c *clients.Client, pkt clientpackets.LobbyCmpt) {
	id := s.Rooms.HandleCMPT(c.ID(), pkt)
	room, ok := s.Rooms.Get(id)
	if !ok {
		return
	}
	s.Events.RoomCreated("multi", room.Name())
	s.completeJoin(c, id)
	game := rooms.ToGame(room)
	s.broadcastToLobby(protocol.DLobbyTypeMulti, c.ID(), func(n protocol.PacketNumber) serverpackets.Packet {
		return serverpackets.LobbyGamelistAdd{Number: n, Game: game}
	})
}

// handleQmpt seats c into the first Multi room with an open slot,
// creating nothing if none exists.
func (s *State) handleQmpt(c *clients.Client) {
	for _, r := range s.Rooms.GameList() {
		if r.GameType() != protocol.DLobbyTypeMulti || r.PlayerCount() >= int(r.MaxPlayers()) {
			continue
		}
		id, ok := s.Rooms.IDFromNetworkID(r.NetworkID())
		if !ok {
			continue
		}
		if err := s.joinExistingRoom(c, id); err == nil {
			return
		}
	}
	slog.Debug("server: qmpt: no open multi room", "client", c.Name())
}

// handleJmpt seats c into a specific Multi room chosen from the
// gamelist by its network id.
func (s *State) handleJmpt(c *clients.Client, pkt clientpackets.LobbyJmpt) {
	id, ok := s.Rooms.IDFromNetworkID(int(pkt.NetworkID))
	if !ok {
		slog.Debug("server: jmpt: unknown room", "network_id", pkt.NetworkID)
		return
	}
	if err := s.joinExistingRoom(c, id); err != nil {
		slog.Debug("server: jmpt failed", "client", c.Name(), "error", err)
	}
}

// handleChallenge relays c's duo challenge to the named opponent.
func (s *State) handleChallenge(c *clients.Client, pkt clientpackets.LobbyChallenge) {
	target, ok := s.Clients.ByName(pkt.Challenged)
	if !ok {
		c.SendPacket(serverpackets.LobbyCFail{Number: c.NextNum(), Reason: protocol.ChallengeFailNoUser})
		return
	}
	if target.NoChallenges() {
		c.SendPacket(serverpackets.LobbyCFail{Number: c.NextNum(), Reason: protocol.ChallengeFailNoChall})
		return
	}
	s.Rooms.HandleNewChallenge(pkt, c.Name())
	target.SendPacket(serverpackets.LobbyChallenge{
		Number:                  target.NextNum(),
		Challenger:              c.Name(),
		NumTracks:               pkt.NumTracks,
		TrackTypes:              pkt.TrackTypes,
		MaxStrokes:              pkt.MaxStrokes,
		TimeLimit:               pkt.TimeLimit,
		WaterEvent:              pkt.WaterEvent,
		Collision:               pkt.Collision,
		TrackScoring:            pkt.TrackScoring,
		TrackScoringWeightedEnd: pkt.TrackScoringWeightedEnd,
	})
}

// handleAccept seats both the accepting player (c) and the original
// challenger into the pending duo room.
func (s *State) handleAccept(c *clients.Client, pkt clientpackets.LobbyAccept) {
	challenger, ok := s.Clients.ByName(pkt.Challenger)
	if !ok {
		c.SendPacket(serverpackets.LobbyAFail{Number: c.NextNum()})
		return
	}
	id, ok := s.Rooms.FindDuoGame(c.Name(), pkt.Challenger)
	if !ok {
		c.SendPacket(serverpackets.LobbyAFail{Number: c.NextNum()})
		return
	}
	if err := s.joinExistingRoom(c, id); err != nil {
		slog.Debug("server: accept: challenged join failed", "error", err)
		return
	}
	if err := s.joinExistingRoom(challenger, id); err != nil {
		slog.Debug("server: accept: challenger join failed", "error", err)
	}
}

// handleCFail notifies the original challenger that their challenge
// was declined.
func (s *State) handleCFail(c *clients.Client, pkt clientpackets.LobbyCFail) {
	s.Rooms.RemoveDuoGame(pkt.Name)
	if challenger, ok := s.Clients.ByName(pkt.Name); ok {
		challenger.SendPacket(serverpackets.LobbyCFail{Number: challenger.NextNum(), Reason: pkt.Reason})
	}
}

// handleCancel withdraws c's own pending challenge.
func (s *State) handleCancel(c *clients.Client, pkt clientpackets.LobbyCancel) {
	s.Rooms.RemoveDuoGame(c.Name())
	if challenged, ok := s.Clients.ByName(pkt.Challenged); ok {
		challenged.SendPacket(serverpackets.LobbyCancel{Number: challenged.NextNum()})
	}
}

// handleNc toggles c's no-challenges flag and tells the rest of its
// lobby about the change.
func (s *State) handleNc(c *clients.Client, pkt clientpackets.LobbyNc) {
	c.SetNoChallenges(pkt.NoChallenges)
	lobby, ok := c.Lobby()
	if !ok {
		return
	}
	s.broadcastToLobby(lobby, c.ID(), func(n protocol.PacketNumber) serverpackets.Packet {
		return serverpackets.LobbyNC{Number: n, Name: c.Name(), NoChallenges: pkt.NoChallenges}
	})
}

// handleLobbySay relays a lobby-wide chat line, dropped silently if it
// trips the word filter.
func (s *State) handleLobbySay(c *clients.Client, pkt clientpackets.LobbySay) {
	if s.Filter.ContainsBadWords(pkt.Message) {
		s.Events.ChatFlagged(c.Name(), pkt.Message)
		return
	}
	lobby, ok := c.Lobby()
	if !ok {
		return
	}
	s.broadcastToLobby(lobby, noExclude, func(n protocol.PacketNumber) serverpackets.Packet {
		return serverpackets.LobbySay{Number: n, Destination: pkt.LobbyTab, Username: c.Name(), Message: pkt.Message}
	})
}

// handleLobbySayP relays a private whisper to its named recipient.
func (s *State) handleLobbySayP(c *clients.Client, pkt clientpackets.LobbySayP) {
	if s.Filter.ContainsBadWords(pkt.Message) {
		s.Events.ChatFlagged(c.Name(), pkt.Message)
		return
	}
	target, ok := s.Clients.ByName(pkt.Destination)
	if !ok {
		return
	}
	target.SendPacket(serverpackets.LobbySayP{Number: target.NextNum(), From: c.Name(), Message: pkt.Message})
}
