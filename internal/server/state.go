package server

import (
	"github.com/nokkasiili/minigolf-server/internal/clients"
	"github.com/nokkasiili/minigolf-server/internal/filter"
	"github.com/nokkasiili/minigolf-server/internal/rooms"
)

// EventSink receives a handful of non-authoritative audit events. It
// is an interface purely so internal/server never has to import pgx
// directly; see internal/eventlog for the Postgres-backed
// implementation. None of these calls may block the tick loop or feed
// anything back into State.
type EventSink interface {
	RoomCreated(kind, name string)
	RoomEnded(networkID int)
	ClientTimedOut(name string)
	ChatFlagged(name, line string)
}

type noopEventSink struct{}

func (noopEventSink) RoomCreated(string, string) {}
func (noopEventSink) RoomEnded(int)              {}
func (noopEventSink) ClientTimedOut(string)       {}
func (noopEventSink) ChatFlagged(string, string)  {}

// State is the tick loop's entire mutable world: every connected
// Client and every Room, plus the collaborators needed to route
// packets between them. Only the tick-loop goroutine ever touches it,
// so nothing here needs locking.
type State struct {
	Clients *clients.Clients
	Rooms   *rooms.Rooms
	Filter  *filter.Filter
	Events  EventSink
}

// NewState builds an empty world. A nil sink is replaced with a no-op.
func NewState(sink EventSink) *State {
	if sink == nil {
		sink = noopEventSink{}
	}
	return &State{
		Clients: clients.NewClients(),
		Rooms:   rooms.New(),
		Filter:  filter.New(),
		Events:  sink,
	}
}

func toRoomRef(id rooms.RoomID) clients.RoomRef { return clients.RoomRef(id) }
func toRoomID(ref clients.RoomRef) rooms.RoomID { return rooms.RoomID(ref) }

// clientRoom resolves a client's current room and its seat index in
// one call; handlers that act on the client's game use this instead of
// repeating the Game()/Get/GetIndex chain.
func (s *State) clientRoom(c *clients.Client) (*rooms.Room, int, bool) {
	ref, ok := c.Game()
	if !ok {
		return nil, 0, false
	}
	room, ok := s.Rooms.Get(toRoomID(ref))
	if !ok {
		return nil, 0, false
	}
	idx, ok := room.GetIndex(c.ID())
	if !ok {
		return nil, 0, false
	}
	return room, idx, true
}
