// Package server wires the rest of the module into a running TCP
// service: accepting sockets, running the handshake, dispatching
// packets against the client/room state, and driving the fixed-rate
// tick loop that owns all of it.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/nokkasiili/minigolf-server/internal/cipher"
	"github.com/nokkasiili/minigolf-server/internal/clientpackets"
	"github.com/nokkasiili/minigolf-server/internal/clients"
	"github.com/nokkasiili/minigolf-server/internal/codec"
	"github.com/nokkasiili/minigolf-server/internal/serverpackets"
)

const (
	readBufferSize     = 512
	defaultReadTimeout = 10 * time.Second
	inboundDepth       = 32
	outboundDepth      = 4096
)

// Listener accepts connections and hands each off to its own worker.
type Listener struct {
	ln          net.Listener
	idGen       *IDGenerator
	newPlayer   chan<- clients.NewPlayer
	readTimeout time.Duration
}

// Listen binds addr and returns a Listener ready to Run. A zero
// readTimeout falls back to the 10 second default spec.md S4.5 names.
func Listen(addr string, idGen *IDGenerator, newPlayers chan<- clients.NewPlayer, readTimeout time.Duration) (*Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("server: bind %s: %w", addr, err)
	}
	if readTimeout <= 0 {
		readTimeout = defaultReadTimeout
	}
	return &Listener{ln: ln, idGen: idGen, newPlayer: newPlayers, readTimeout: readTimeout}, nil
}

// Addr reports the bound address.
func (l *Listener) Addr() net.Addr { return l.ln.Addr() }

// Close stops accepting new connections.
func (l *Listener) Close() error { return l.ln.Close() }

// Run accepts connections until ctx is canceled or the listener is
// closed. Each accepted connection is handled in its own goroutine and
// never blocks the accept loop.
func (l *Listener) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		l.ln.Close()
	}()

	for {
		conn, err := l.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				return nil
			}
			slog.Error("server: accept", "error", err)
			continue
		}
		slog.Info("server: accepted connection", "remote", conn.RemoteAddr())
		go l.handle(ctx, conn)
	}
}

func (l *Listener) handle(ctx context.Context, conn net.Conn) {
	w := newWorker(conn, l.readTimeout)
	defer conn.Close()

	player, err := handshake(ctx, w, l.idGen)
	if err != nil {
		slog.Debug("server: handshake failed", "remote", conn.RemoteAddr(), "error", err)
		return
	}

	select {
	case l.newPlayer <- player:
	case <-ctx.Done():
		return
	}

	w.split(ctx, player.Name)
}

// worker owns one connection's socket and the codec/cipher pipeline
// layered on top of it. After the handshake completes, its reader and
// writer halves run as two goroutines over this same worker, sharing
// the socket and the cipher pair.
type worker struct {
	conn  net.Conn
	codec *codec.Codec

	connCipher *cipher.ConnCipher
	dictCipher *cipher.DictCipher

	received chan clientpackets.Packet
	send     chan serverpackets.Packet

	buf [readBufferSize]byte

	// readNum mirrors the original's local "add_num" counter: the
	// expected packet number of the next *numbered* inbound packet.
	readNum uint32

	readTimeout time.Duration
}

func newWorker(conn net.Conn, readTimeout time.Duration) *worker {
	return &worker{
		conn:        conn,
		codec:       codec.New(),
		received:    make(chan clientpackets.Packet, inboundDepth),
		send:        make(chan serverpackets.Packet, outboundDepth),
		readNum:     3, // the handshake consumes the first few slots
		readTimeout: readTimeout,
	}
}

// enableCipher switches every subsequent readLine/writePacket call onto
// the dict+conn cipher pair, seeded from the handshake. Before this is
// called, lines pass through unmodified -- the handshake preamble is
// sent in the clear since the client cannot yet derive the permutation
// tables.
func (w *worker) enableCipher(conn *cipher.ConnCipher, dict *cipher.DictCipher) {
	w.connCipher, w.dictCipher = conn, dict
}

// writeRaw sends a pre-encoded string verbatim (used for the
// handshake preamble and for every ciphered packet once encoded).
func (w *worker) writeRaw(line string) error {
	w.conn.SetWriteDeadline(time.Now().Add(w.readTimeout))
	_, err := w.conn.Write([]byte(line))
	return err
}

// writePacket encodes pkt, layers the dictionary cipher then the
// connection cipher (mirroring the reverse order ReadLine undoes
// them in), and writes the result.
func (w *worker) writePacket(pkt serverpackets.Packet) error {
	line := pkt.Encode()
	if w.dictCipher != nil {
		line = w.dictCipher.Encrypt(line)
	}
	if w.connCipher != nil {
		line = w.connCipher.Encrypt(line)
	}
	return w.writeRaw(line)
}

// readLine blocks until one full, decrypted wire line is available.
func (w *worker) readLine(ctx context.Context) (string, error) {
	for {
		if line, ok := w.codec.Next(); ok {
			if w.connCipher != nil {
				line = w.connCipher.Decrypt(line)
			}
			if w.dictCipher != nil {
				line = w.dictCipher.Decrypt(line)
			}
			return line, nil
		}

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		w.conn.SetReadDeadline(time.Now().Add(w.readTimeout))
		n, err := w.conn.Read(w.buf[:])
		if err != nil {
			return "", err
		}
		if n == 0 {
			return "", fmt.Errorf("server: read 0 bytes")
		}
		w.codec.Accept(w.buf[:n])
	}
}

// addNum advances and returns the expected next inbound packet number.
func (w *worker) addNum() uint32 {
	w.readNum++
	return w.readNum
}

// readPacket reads one line and decodes it into a client packet,
// warning (but not failing) on a packet-number mismatch -- a gap here
// means a dropped or reordered packet, not a protocol violation worth
// disconnecting over.
func (w *worker) readPacket(ctx context.Context) (clientpackets.Packet, error) {
	line, err := w.readLine(ctx)
	if err != nil {
		return nil, err
	}
	pkt, number, numbered, err := clientpackets.Decode(line)
	if err != nil {
		return nil, err
	}
	if numbered {
		if uint32(number) != w.addNum() {
			slog.Warn("server: packet number mismatch", "got", number, "want", w.readNum)
		}
	}
	return pkt, nil
}

// split hands the live connection over to independent reader/writer
// goroutines once the handshake has produced a NewPlayer; a
// disconnect on either half tears down both.
func (w *worker) split(ctx context.Context, username string) {
	done := make(chan error, 2)

	go func() {
		done <- w.runReader(ctx)
	}()
	go func() {
		done <- w.runWriter(ctx)
	}()

	err := <-done
	if err != nil {
		slog.Debug("server: connection lost", "user", username, "error", err)
	}
	w.conn.Close()
}

func (w *worker) runReader(ctx context.Context) error {
	for {
		pkt, err := w.readPacket(ctx)
		if err != nil {
			return err
		}
		select {
		case w.received <- pkt:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *worker) runWriter(ctx context.Context) error {
	for {
		select {
		case pkt, ok := <-w.send:
			if !ok {
				return nil
			}
			if err := w.writePacket(pkt); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
