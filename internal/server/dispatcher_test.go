package server

import (
	"testing"

	"github.com/nokkasiili/minigolf-server/internal/clientpackets"
	"github.com/nokkasiili/minigolf-server/internal/clients"
	"github.com/nokkasiili/minigolf-server/internal/protocol"
	"github.com/nokkasiili/minigolf-server/internal/serverpackets"
)

func newTestClient(t *testing.T, name string) (*clients.Client, chan clientpackets.Packet, chan serverpackets.Packet) {
	t.Helper()
	recv := make(chan clientpackets.Packet, 32)
	send := make(chan serverpackets.Packet, 4096)
	c := clients.New(clients.NewPlayer{
		NetworkID: 1,
		Name:      name,
		Language:  "en",
		Received:  recv,
		Send:      send,
	})
	return c, recv, send
}

func TestDispatchPongUpdatesLastPongRegardlessOfLifecycle(t *testing.T) {
	s := NewState(nil)
	c, recv, _ := newTestClient(t, "alice")
	s.Clients.Insert(c)

	before := c.LastPong()
	recv <- clientpackets.Pong{}
	s.Dispatch(c)

	if !c.LastPong().After(before) {
		t.Fatalf("Dispatch did not update LastPong on a Pong packet")
	}
}

func TestDispatchLobbySelectMovesClientIntoLobby(t *testing.T) {
	s := NewState(nil)
	c, recv, send := newTestClient(t, "bob")
	s.Clients.Insert(c)

	if !c.LobbySelect() {
		t.Fatal("fresh client should start at lobbyselect")
	}

	recv <- clientpackets.LobbySelectSelect{LobbyType: protocol.DLobbyTypeMulti}
	s.Dispatch(c)

	if c.LobbySelect() {
		t.Fatal("client should have left lobbyselect after selecting a lobby")
	}
	lobby, ok := c.Lobby()
	if !ok || lobby != protocol.DLobbyTypeMulti {
		t.Fatalf("Lobby() = %v, %v; want DLobbyTypeMulti, true", lobby, ok)
	}

	select {
	case <-send:
	default:
		t.Fatal("expected a status reply queued on the send channel")
	}
}

func TestDispatchQuitMarksClientDisconnected(t *testing.T) {
	s := NewState(nil)
	c, recv, _ := newTestClient(t, "carol")
	s.Clients.Insert(c)

	recv <- clientpackets.Quit{}
	s.Dispatch(c)

	if !c.Disconnected() {
		t.Fatal("Quit packet should mark the client disconnected")
	}
}

func TestDispatchGameIgnoresUnreachableBackToPrivate(t *testing.T) {
	s := NewState(nil)
	c, recv, _ := newTestClient(t, "dave")
	s.Clients.Insert(c)
	c.SetLobby(protocol.DLobbyTypeMulti, true)
	c.SetGame(clients.RoomRef(1), true)

	recv <- clientpackets.GameBackToPrivate{Value1: 0}
	s.Dispatch(c)

	if room, ok := c.Game(); !ok || room != clients.RoomRef(1) {
		t.Fatalf("GameBackToPrivate should be a no-op; Game() = %v, %v", room, ok)
	}
}
