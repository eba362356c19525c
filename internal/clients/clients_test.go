package clients

import (
	"testing"
	"time"

	"github.com/nokkasiili/minigolf-server/internal/clientpackets"
	"github.com/nokkasiili/minigolf-server/internal/protocol"
	"github.com/nokkasiili/minigolf-server/internal/serverpackets"
)

func newTestClient(name string) *Client {
	recv := make(chan clientpackets.Packet, 32)
	send := make(chan serverpackets.Packet, 4096)
	return New(NewPlayer{
		NetworkID: 1,
		Name:      name,
		Language:  "en",
		Sent:      3,
		Received:  recv,
		Send:      send,
	})
}

func TestInsertGetRemove(t *testing.T) {
	cs := NewClients()
	c := newTestClient("alice")

	id := cs.Insert(c)
	if got, ok := cs.Get(id); !ok || got != c {
		t.Fatalf("Get(%d) = %v, %v; want %v, true", id, got, ok, c)
	}

	if _, ok := cs.Remove(id); !ok {
		t.Fatalf("Remove(%d) failed", id)
	}
	if _, ok := cs.Get(id); ok {
		t.Fatalf("Get(%d) after Remove should fail", id)
	}
}

func TestIDsAreStableAndNeverReused(t *testing.T) {
	cs := NewClients()
	a := cs.Insert(newTestClient("a"))
	b := cs.Insert(newTestClient("b"))
	if a == b {
		t.Fatalf("expected distinct ids, got %d and %d", a, b)
	}
	cs.Remove(a)
	c := cs.Insert(newTestClient("c"))
	if c == a {
		t.Fatalf("id %d was reused after removal", a)
	}
}

func TestLobbySelectAndTransitions(t *testing.T) {
	c := newTestClient("bob")
	if !c.LobbySelect() {
		t.Fatal("fresh client should be at lobbyselect")
	}

	c.SetLobby(protocol.DLobbyTypeMulti, true)
	if c.LobbySelect() {
		t.Fatal("client with a lobby assigned should not be at lobbyselect")
	}

	c.SetGame(RoomRef(7), true)
	if room, ok := c.Game(); !ok || room != RoomRef(7) {
		t.Fatalf("Game() = %v, %v; want 7, true", room, ok)
	}

	c.SetGame(0, false)
	if _, ok := c.Game(); ok {
		t.Fatal("Game() should report absent after clearing")
	}
}

func TestNextNumIncrements(t *testing.T) {
	c := newTestClient("carol")
	first := c.NextNum()
	second := c.NextNum()
	if second != first+1 {
		t.Fatalf("NextNum() sequence = %d, %d; want consecutive", first, second)
	}
}

func TestLobbyUserListExcludesSelfAndInGame(t *testing.T) {
	cs := NewClients()

	self := newTestClient("self")
	self.SetLobby(protocol.DLobbyTypeMulti, true)
	selfID := cs.Insert(self)

	idle := newTestClient("idle")
	idle.SetLobby(protocol.DLobbyTypeMulti, true)
	cs.Insert(idle)

	playing := newTestClient("playing")
	playing.SetLobby(protocol.DLobbyTypeMulti, true)
	playing.SetGame(RoomRef(1), true)
	cs.Insert(playing)

	elsewhere := newTestClient("elsewhere")
	elsewhere.SetLobby(protocol.DLobbyTypeDuo, true)
	cs.Insert(elsewhere)

	users := cs.LobbyUserList(selfID, protocol.DLobbyTypeMulti)
	if len(users) != 1 {
		t.Fatalf("LobbyUserList returned %d users, want 1 (idle only): %+v", len(users), users)
	}
}

func TestCountByLobbySeparatesPlayingFromIdle(t *testing.T) {
	cs := NewClients()

	idle := newTestClient("idle")
	idle.SetLobby(protocol.DLobbyTypeSolo, true)
	cs.Insert(idle)

	playing := newTestClient("playing")
	playing.SetLobby(protocol.DLobbyTypeSoloIncognito, true)
	playing.SetGame(RoomRef(9), true)
	cs.Insert(playing)

	lc := cs.CountByLobby()
	if lc.SingleLobby != 1 || lc.SinglePlaying != 1 {
		t.Fatalf("CountByLobby() = %+v; want SingleLobby=1 SinglePlaying=1 (Solo and SoloIncognito fold together)", lc)
	}
}

func TestSendPacketDoesNotBlockWhenFull(t *testing.T) {
	recv := make(chan clientpackets.Packet, 1)
	send := make(chan serverpackets.Packet, 1)
	c := New(NewPlayer{NetworkID: 1, Name: "x", Received: recv, Send: send})

	c.SendPacket(serverpackets.Ping{})
	done := make(chan struct{})
	go func() {
		c.SendPacket(serverpackets.Ping{}) // channel now full; must not block
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("SendPacket blocked on a full channel")
	}
}

func TestStatusStringMarksAnonymousAndNoChallenges(t *testing.T) {
	c := newTestClient("~anonym-1")
	if c.StatusString() != "w" {
		t.Fatalf("StatusString() = %q, want %q", c.StatusString(), "w")
	}
	c.SetNoChallenges(true)
	if c.StatusString() != "wn" {
		t.Fatalf("StatusString() with no-challenges = %q, want %q", c.StatusString(), "wn")
	}

	reg := newTestClient("someone")
	if reg.StatusString() != "r" {
		t.Fatalf("StatusString() = %q, want %q", reg.StatusString(), "r")
	}
}
