// Package clients owns the registry of connected players: a stable-id
// arena of Client records plus the lobby/game-aware lookups the room
// manager and dispatcher need every tick. Only the tick-loop goroutine
// in internal/server ever mutates a Clients value; everything here is
// deliberately free of locking, mirroring the original's single-owner
// RefCell/Cell fields.
package clients

import (
	"sync/atomic"
	"time"

	"github.com/nokkasiili/minigolf-server/internal/clientpackets"
	"github.com/nokkasiili/minigolf-server/internal/protocol"
	"github.com/nokkasiili/minigolf-server/internal/serverpackets"
)

// ClientID is a stable handle into a Clients registry. It never changes
// for the lifetime of a connection and is never reused.
type ClientID int

// NetworkID is the peer-visible session identifier, assigned by a
// separate monotonic generator (internal/server's idgen.go) so the
// client's own lookup handle and the number it shows to other players
// never get confused with each other.
type NetworkID int

// RoomRef is an opaque handle a Client carries for "which room, if
// any, am I in". It intentionally carries no behavior of its own: the
// room manager (internal/rooms) owns the real RoomID type, and
// internal/server is the only place that converts between the two, to
// avoid a clients<->rooms import cycle.
type RoomRef int

// NewPlayer is handed off from the initial handshake once a socket has
// been authenticated; it carries everything Insert needs plus the
// channel endpoints the per-connection reader/writer pair already
// created.
type NewPlayer struct {
	NetworkID NetworkID
	Name      string
	Clan      string
	HasClan   bool
	Language  string
	Seed      int32
	Sent      uint32

	Received <-chan clientpackets.Packet
	Send     chan<- serverpackets.Packet
}

// Client is one connected player. Every mutable field here is touched
// only from the tick-loop goroutine.
type Client struct {
	id        ClientID
	networkID NetworkID
	name      string
	clan      string
	hasClan   bool
	language  string
	seed      int32

	lobby    protocol.DLobbyType
	hasLobby bool
	game     RoomRef
	hasGame  bool

	noChallenges bool
	disconnected bool
	lastPong     time.Time

	sent uint32 // atomic: PacketNumber generator

	send     chan<- serverpackets.Packet
	received <-chan clientpackets.Packet
}

// New wraps a handshake result into a fresh, not-yet-registered Client.
func New(player NewPlayer) *Client {
	return &Client{
		networkID: player.NetworkID,
		name:      player.Name,
		clan:      player.Clan,
		hasClan:   player.HasClan,
		language:  player.Language,
		seed:      player.Seed,
		sent:      player.Sent,
		lastPong:  time.Now(),
		send:      player.Send,
		received:  player.Received,
	}
}

func (c *Client) ID() ClientID           { return c.id }
func (c *Client) setID(id ClientID)      { c.id = id }
func (c *Client) NetworkID() NetworkID   { return c.networkID }
func (c *Client) Name() string           { return c.name }
func (c *Client) Language() string       { return c.language }
func (c *Client) Seed() int32            { return c.seed }
func (c *Client) NoChallenges() bool     { return c.noChallenges }
func (c *Client) SetNoChallenges(v bool) { c.noChallenges = v }
func (c *Client) Disconnected() bool     { return c.disconnected }
func (c *Client) Disconnect()            { c.disconnected = true }
func (c *Client) LastPong() time.Time    { return c.lastPong }
func (c *Client) SetPong()               { c.lastPong = time.Now() }

// Clan returns the client's clan tag, if any.
func (c *Client) Clan() (string, bool) { return c.clan, c.hasClan }

// Lobby returns the client's current lobby type, if any.
func (c *Client) Lobby() (protocol.DLobbyType, bool) { return c.lobby, c.hasLobby }

// SetLobby assigns a lobby, or clears it when ok is false.
func (c *Client) SetLobby(lobby protocol.DLobbyType, ok bool) {
	c.lobby, c.hasLobby = lobby, ok
}

// Game returns the room the client currently occupies, if any.
func (c *Client) Game() (RoomRef, bool) { return c.game, c.hasGame }

// SetGame assigns a room, or clears it when ok is false.
func (c *Client) SetGame(room RoomRef, ok bool) {
	c.game, c.hasGame = room, ok
}

// LobbySelect reports whether the client is still at the lobbyselect
// dispatch (neither lobby nor game assigned).
func (c *Client) LobbySelect() bool {
	_, inLobby := c.Lobby()
	_, inGame := c.Game()
	return !inLobby && !inGame
}

// NextNum returns the next outbound PacketNumber for this connection.
func (c *Client) NextNum() protocol.PacketNumber {
	return protocol.PacketNumber(atomic.AddUint32(&c.sent, 1))
}

// SendPacket enqueues an outbound packet without blocking the caller
// (the tick loop). A full channel means a stalled writer; the packet
// is dropped rather than stalling every other client's broadcast, the
// same trade-off the original's try_send makes against its unbounded
// channel in the no-deadlock-guaranteed case.
func (c *Client) SendPacket(pkt serverpackets.Packet) {
	select {
	case c.send <- pkt:
	default:
	}
}

// SendPing is a convenience wrapper for the tick loop's 5s keepalive.
func (c *Client) SendPing() {
	c.SendPacket(serverpackets.Ping{})
}

// ReceivedPackets drains every packet currently queued in the inbound
// channel without blocking, mirroring the original's try_iter.
func (c *Client) ReceivedPackets() []clientpackets.Packet {
	var out []clientpackets.Packet
	for {
		select {
		case pkt, ok := <-c.received:
			if !ok {
				return out
			}
			out = append(out, pkt)
		default:
			return out
		}
	}
}

// StatusString renders the "w"/"r" + optional "n" status-letter prefix
// used in every User record: "w" for worm-prefixed (anonymous,
// "~"-leading) names, "r" for registered ones, with "n" appended when
// the client has opted out of challenges.
func (c *Client) StatusString() string {
	s := "r"
	if len(c.name) > 0 && c.name[0] == '~' {
		s = "w"
	}
	if c.noChallenges {
		s += "n"
	}
	return s
}

// User projects this client into the wire User record used by
// userlist/join broadcasts.
func (c *Client) User() protocol.User {
	return protocol.User{
		IDUsername: "3:" + c.name,
		Status:     c.StatusString(),
		Rank:       999,
		Lang:       c.language,
	}
}

// Clients is the registry of every connected client, indexed by its
// stable ClientID.
type Clients struct {
	byID   map[ClientID]*Client
	nextID ClientID
}

// NewClients returns an empty registry.
func NewClients() *Clients {
	return &Clients{byID: make(map[ClientID]*Client)}
}

// Insert adds a client and assigns it a fresh, never-reused ClientID.
func (cs *Clients) Insert(c *Client) ClientID {
	cs.nextID++
	id := cs.nextID
	c.setID(id)
	cs.byID[id] = c
	return id
}

// Remove drops a client from the registry.
func (cs *Clients) Remove(id ClientID) (*Client, bool) {
	c, ok := cs.byID[id]
	if !ok {
		return nil, false
	}
	delete(cs.byID, id)
	return c, true
}

// Get looks up a client by its stable id.
func (cs *Clients) Get(id ClientID) (*Client, bool) {
	c, ok := cs.byID[id]
	return c, ok
}

// All returns every registered client. Iteration order is unspecified.
func (cs *Clients) All() []*Client {
	out := make([]*Client, 0, len(cs.byID))
	for _, c := range cs.byID {
		out = append(out, c)
	}
	return out
}

// InLobby returns every client currently in the given lobby (whether
// or not they're also in a game).
func (cs *Clients) InLobby(lobby protocol.DLobbyType) []*Client {
	var out []*Client
	for _, c := range cs.byID {
		if l, ok := c.Lobby(); ok && l == lobby {
			out = append(out, c)
		}
	}
	return out
}

// ByName finds the first client with the given exact username.
func (cs *Clients) ByName(name string) (*Client, bool) {
	for _, c := range cs.byID {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// LobbyUserList builds the User list for everyone in lobby except
// excludeID and anyone currently in a game (matching the original's
// "only show lobby idlers" semantics), or nil if the result would be
// empty (the wire SomeAsTab<Vec<User>> convention encodes "no users"
// as a zero-length run, not a present-but-empty list).
func (cs *Clients) LobbyUserList(excludeID ClientID, lobby protocol.DLobbyType) []protocol.User {
	var out []protocol.User
	for _, c := range cs.byID {
		if l, ok := c.Lobby(); !ok || l != lobby {
			continue
		}
		if c.ID() == excludeID {
			continue
		}
		if _, inGame := c.Game(); inGame {
			continue
		}
		out = append(out, c.User())
	}
	return out
}

// CountPlayers returns the lobby-select "how many players are in each
// family" triple, folding SoloIncognito into Solo.
func (cs *Clients) CountPlayers() (solo, duo, multi int32) {
	for _, c := range cs.byID {
		l, ok := c.Lobby()
		if !ok {
			continue
		}
		switch l {
		case protocol.DLobbyTypeSolo, protocol.DLobbyTypeSoloIncognito:
			solo++
		case protocol.DLobbyTypeDuo:
			duo++
		case protocol.DLobbyTypeMulti:
			multi++
		}
	}
	return
}

// LobbyCounts is the six-way aggregate behind the
// lobby\tnumberofusers broadcast.
type LobbyCounts struct {
	SingleLobby, SinglePlaying int32
	DualLobby, DualPlaying     int32
	MultiLobby, MultiPlaying   int32
}

// CountByLobby computes LobbyCounts over every registered client.
func (cs *Clients) CountByLobby() LobbyCounts {
	var lc LobbyCounts
	for _, c := range cs.byID {
		l, ok := c.Lobby()
		if !ok {
			continue
		}
		_, playing := c.Game()
		switch l {
		case protocol.DLobbyTypeSolo, protocol.DLobbyTypeSoloIncognito:
			if playing {
				lc.SinglePlaying++
			} else {
				lc.SingleLobby++
			}
		case protocol.DLobbyTypeDuo:
			if playing {
				lc.DualPlaying++
			} else {
				lc.DualLobby++
			}
		case protocol.DLobbyTypeMulti:
			if playing {
				lc.MultiPlaying++
			} else {
				lc.MultiLobby++
			}
		}
	}
	return lc
}
