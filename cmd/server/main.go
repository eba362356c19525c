// Command server runs the minigolf game server: accepts TCP
// connections, runs the handshake, and drives the fixed-rate tick loop
// that owns every client and room.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nokkasiili/minigolf-server/internal/clients"
	"github.com/nokkasiili/minigolf-server/internal/config"
	"github.com/nokkasiili/minigolf-server/internal/eventlog"
	"github.com/nokkasiili/minigolf-server/internal/server"
)

const ConfigPath = "config/server.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("MINIGOLF_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("minigolf server starting", "bind", cfg.BindAddress, "port", cfg.Port)

	var sink server.EventSink
	if cfg.EventLog.Enabled {
		db, err := eventlog.Connect(ctx, cfg.EventLog.DSN)
		if err != nil {
			return fmt.Errorf("connecting event log: %w", err)
		}
		defer db.Close()
		if err := eventlog.RunMigrations(ctx, cfg.EventLog.DSN); err != nil {
			return fmt.Errorf("running event log migrations: %w", err)
		}
		slog.Info("event log connected")
		sink = db
	}

	state := server.NewState(sink)

	newPlayers := make(chan clients.NewPlayer, 64)
	idGen := server.NewIDGenerator()
	addr := fmt.Sprintf("%s:%d", cfg.BindAddress, cfg.Port)
	listener, err := server.Listen(addr, idGen, newPlayers, time.Duration(cfg.ReadTimeoutS)*time.Second)
	if err != nil {
		return fmt.Errorf("starting listener: %w", err)
	}
	defer listener.Close()
	slog.Info("listening", "addr", listener.Addr())

	tick := server.NewTickLoop(state, newPlayers, server.TickOptions{
		TickInterval: time.Duration(cfg.TickIntervalMS) * time.Millisecond,
		PingInterval: time.Duration(cfg.PingIntervalS) * time.Second,
		PongTimeout:  time.Duration(cfg.PongTimeoutS) * time.Second,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return listener.Run(gctx)
	})
	g.Go(func() error {
		return tick.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// parseLogLevel converts a string log level to slog.Level, defaulting
// to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
