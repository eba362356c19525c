package rooms

import (
	"testing"

	"github.com/nokkasiili/minigolf-server/internal/clientpackets"
	"github.com/nokkasiili/minigolf-server/internal/clients"
	"github.com/nokkasiili/minigolf-server/internal/protocol"
	"github.com/nokkasiili/minigolf-server/internal/serverpackets"
)

func newTestClient(cs *clients.Clients, name string) clients.ClientID {
	recv := make(chan clientpackets.Packet, 32)
	send := make(chan serverpackets.Packet, 4096)
	c := clients.New(clients.NewPlayer{Name: name, Received: recv, Send: send})
	return cs.Insert(c)
}

func TestHandleCSPTSeatsCreatorImmediately(t *testing.T) {
	rs := New()
	cs := clients.NewClients()
	id := newTestClient(cs, "solo")

	roomID := rs.HandleCSPT(id, clientpackets.LobbyCspt{NumTracks: 1})
	room, ok := rs.Get(roomID)
	if !ok {
		t.Fatal("room not found after HandleCSPT")
	}
	if room.PlayerCount() != 1 {
		t.Fatalf("PlayerCount() = %d, want 1", room.PlayerCount())
	}
	if !room.IsSolo() {
		t.Fatal("CSPT room should be Solo")
	}
	if int32(len(room.Occupants())) != room.MaxPlayers() {
		t.Fatalf("solo room should seat exactly MaxPlayers slots, got %d want %d", len(room.Occupants()), room.MaxPlayers())
	}
}

func TestHandleCMPTStartsOnceFull(t *testing.T) {
	rs := New()
	cs := clients.NewClients()
	creator := newTestClient(cs, "creator")
	joiner := newTestClient(cs, "joiner")

	roomID := rs.HandleCMPT(creator, clientpackets.LobbyCmpt{
		MaxPlayers: 2,
		NumTracks:  1,
	})
	room, _ := rs.Get(roomID)
	if room.Status() != StatusWaitingPlayers {
		t.Fatalf("new room status = %v, want WaitingPlayers", room.Status())
	}

	if _, err := room.AddPlayer(joiner); err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}

	removed := false
	rs.Tick(cs, func(r *Room) { removed = true })

	if room.Status() != StatusInGame {
		t.Fatalf("full room status after Tick = %v, want InGame", room.Status())
	}
	if !removed {
		t.Fatal("expected gamelist-remove callback for a Multi room that just started")
	}
}

func TestDuoChallengeLifecycle(t *testing.T) {
	rs := New()
	roomID := rs.HandleNewChallenge(clientpackets.LobbyChallenge{
		Challenged: "bob",
		NumTracks:  1,
	}, "alice")

	if _, ok := rs.FindDuoGame("bob", "alice"); !ok {
		t.Fatal("FindDuoGame should locate the pending challenge")
	}

	rs.RemoveDuoGame("alice")
	if _, ok := rs.Get(roomID); ok {
		t.Fatal("challenge room should be gone after RemoveDuoGame")
	}
}

func TestGetNextTurnSkipsInHoleAndEmptySlots(t *testing.T) {
	rs := New()
	cs := clients.NewClients()
	a := newTestClient(cs, "a")
	b := newTestClient(cs, "b")
	c := newTestClient(cs, "c")

	roomID := rs.HandleCMPT(a, clientpackets.LobbyCmpt{MaxPlayers: 3, NumTracks: 1})
	room, _ := rs.Get(roomID)
	room.AddPlayer(b)
	room.AddPlayer(c)

	room.players[1].InHole = true // b is done with this hole

	turn, ok := room.GetNextTurn()
	if !ok {
		t.Fatal("GetNextTurn should find an eligible slot")
	}
	if turn == 1 {
		t.Fatal("GetNextTurn should skip a player who is already in the hole")
	}
}

func TestGetNextTurnReportsFailureWithoutPanicking(t *testing.T) {
	room := &Room{players: []*Player{{ClientID: 1, InGame: false}}}
	if _, ok := room.GetNextTurn(); ok {
		t.Fatal("GetNextTurn should report failure when no slot is eligible")
	}
}

func TestNextTrackEndsGameOnLastTrack(t *testing.T) {
	rs := New()
	cs := clients.NewClients()
	a := newTestClient(cs, "a")

	roomID := rs.HandleCSPT(a, clientpackets.LobbyCspt{NumTracks: 1})
	room, _ := rs.Get(roomID)
	room.curTrack = 1 // already on (and finished) the only track

	send := func(id clients.ClientID, pkt serverpackets.Packet) {
		if c, ok := cs.Get(id); ok {
			c.SendPacket(pkt)
		}
	}
	nextNum := func(id clients.ClientID) protocol.PacketNumber {
		c, _ := cs.Get(id)
		return c.NextNum()
	}
	room.NextTrack(send, nextNum)

	if room.Status() != StatusEnded {
		t.Fatalf("room status after exhausting tracks = %v, want Ended", room.Status())
	}
}

func TestWantSkipRequiresEveryInGamePlayer(t *testing.T) {
	rs := New()
	cs := clients.NewClients()
	a := newTestClient(cs, "a")
	b := newTestClient(cs, "b")

	roomID := rs.HandleCMPT(a, clientpackets.LobbyCmpt{MaxPlayers: 2, NumTracks: 1})
	room, _ := rs.Get(roomID)
	room.AddPlayer(b)

	room.players[0].WantSkip = true
	if room.WantSkip() {
		t.Fatal("WantSkip should require every in-game player to agree")
	}
	room.players[1].WantSkip = true
	if !room.WantSkip() {
		t.Fatal("WantSkip should hold once every in-game player has voted")
	}
}

func TestRoomGarbageCollectedWhenEmpty(t *testing.T) {
	rs := New()
	cs := clients.NewClients()
	a := newTestClient(cs, "a")

	roomID := rs.HandleCSPT(a, clientpackets.LobbyCspt{NumTracks: 1})
	room, _ := rs.Get(roomID)
	room.RemovePlayer(0)

	rs.Tick(cs, func(r *Room) {})

	if _, ok := rs.Get(roomID); ok {
		t.Fatal("empty room should be garbage-collected by Tick")
	}
}
