// Package eventlog is an optional, non-authoritative audit sink: a
// handful of already-decided events (a room opening or closing, a
// client timing out, a chat line tripping the word filter) get a row
// each, purely for operators to query later. It never feeds anything
// back into the tick loop, the client registry, or the room manager --
// losing the database changes nothing about how the game runs.
package eventlog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a pgx connection pool for the events table.
type DB struct {
	pool *pgxpool.Pool
}

// Connect opens a pool against dsn and verifies it's reachable.
func Connect(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("eventlog: connecting: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("eventlog: pinging: %w", err)
	}
	return &DB{pool: pool}, nil
}

// Close releases the pool.
func (d *DB) Close() { d.pool.Close() }

// Pool returns the underlying pgx pool, for RunMigrations.
func (d *DB) Pool() *pgxpool.Pool { return d.pool }

// insert writes the row from its own goroutine, so callers on the tick
// loop never wait on the database.
func (d *DB) insert(ctx context.Context, kind, subject, detail string) {
	go func() {
		_, err := d.pool.Exec(ctx,
			`INSERT INTO events (kind, subject, detail) VALUES ($1, $2, $3)`,
			kind, subject, detail,
		)
		if err != nil {
			slog.Warn("eventlog: insert failed", "kind", kind, "error", err)
		}
	}()
}

// RoomCreated records a room of the given kind coming into existence.
func (d *DB) RoomCreated(kind, name string) {
	d.insert(context.Background(), "room_created", kind, name)
}

// RoomEnded records a room's teardown by its network id.
func (d *DB) RoomEnded(networkID int) {
	d.insert(context.Background(), "room_ended", fmt.Sprintf("%d", networkID), "")
}

// ClientTimedOut records a client being reaped for a dead ping.
func (d *DB) ClientTimedOut(name string) {
	d.insert(context.Background(), "client_timed_out", name, "")
}

// ChatFlagged records a chat line that tripped the word filter.
func (d *DB) ChatFlagged(name, line string) {
	d.insert(context.Background(), "chat_flagged", name, line)
}
