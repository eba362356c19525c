package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/nokkasiili/minigolf-server/internal/clients"
)

// TickRate is the default scheduling period every tick-driven concern
// (room advancement, dispatch, ping) runs at, used when TickOptions
// leaves TickInterval at zero.
const TickRate = 200 * time.Millisecond

const (
	defaultPingInterval = 5 * time.Second
	defaultPongTimeout  = 5 * time.Second
)

// TickOptions carries the few timing knobs config.Server exposes. A
// zero value means "use the default" for every field.
type TickOptions struct {
	TickInterval time.Duration
	PingInterval time.Duration
	PongTimeout  time.Duration
}

func (o TickOptions) withDefaults() TickOptions {
	if o.TickInterval <= 0 {
		o.TickInterval = TickRate
	}
	if o.PingInterval <= 0 {
		o.PingInterval = defaultPingInterval
	}
	if o.PongTimeout <= 0 {
		o.PongTimeout = defaultPongTimeout
	}
	return o
}

// TickLoop is the single-threaded scheduler that owns a State and
// drives every tick: accepting handshaken players, reaping dead
// connections, advancing the room manager, dispatching inbound
// packets, and pinging. Nothing outside this loop's goroutine may
// touch the State it was built with.
type TickLoop struct {
	state     *State
	newPlayer <-chan clients.NewPlayer
	opts      TickOptions
	lastPing  time.Time
}

// NewTickLoop builds a loop over state, receiving newly handshaken
// players from newPlayers. Zero-valued opts fall back to TickRate and a
// 5 second ping interval/pong timeout.
func NewTickLoop(state *State, newPlayers <-chan clients.NewPlayer, opts TickOptions) *TickLoop {
	return &TickLoop{state: state, newPlayer: newPlayers, opts: opts.withDefaults(), lastPing: time.Now()}
}

// Run drives the loop at its configured tick interval until ctx is
// canceled.
func (t *TickLoop) Run(ctx context.Context) error {
	ticker := time.NewTicker(t.opts.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case start := <-ticker.C:
			t.tick()
			if elapsed := time.Since(start); elapsed > t.opts.TickInterval {
				slog.Warn("server: tick overran budget", "elapsed", elapsed, "budget", t.opts.TickInterval)
			}
		}
	}
}

func (t *TickLoop) tick() {
	t.acceptNewPlayers()
	t.reapTimeouts()
	t.state.Rooms.Tick(t.state.Clients, t.state.onGamelistRemove)
	t.dispatchAll()
	t.pingIfDue()
}

func (t *TickLoop) acceptNewPlayers() {
	for {
		select {
		case np, ok := <-t.newPlayer:
			if !ok {
				return
			}
			c := clients.New(np)
			t.state.Clients.Insert(c)
			slog.Info("server: player joined", "name", c.Name())
		default:
			return
		}
	}
}

// reapTimeouts drops any client that either disconnected (Quit, or a
// dead socket) or hasn't answered a ping within pongTimeout.
func (t *TickLoop) reapTimeouts() {
	for _, c := range t.state.Clients.All() {
		if c.Disconnected() || time.Since(c.LastPong()) > t.opts.PongTimeout {
			name := c.Name()
			timedOut := !c.Disconnected()
			t.state.removeClient(c)
			if timedOut {
				t.state.Events.ClientTimedOut(name)
			}
		}
	}
}

func (t *TickLoop) dispatchAll() {
	for _, c := range t.state.Clients.All() {
		if c.Disconnected() {
			continue
		}
		t.state.Dispatch(c)
	}
}

func (t *TickLoop) pingIfDue() {
	if time.Since(t.lastPing) < t.opts.PingInterval {
		return
	}
	t.lastPing = time.Now()
	for _, c := range t.state.Clients.All() {
		c.SendPing()
	}
}
