package server

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/nokkasiili/minigolf-server/internal/cipher"
	"github.com/nokkasiili/minigolf-server/internal/clientpackets"
	"github.com/nokkasiili/minigolf-server/internal/clients"
	"github.com/nokkasiili/minigolf-server/internal/protocol"
	"github.com/nokkasiili/minigolf-server/internal/serverpackets"
)

// cipherMagic is the connection-cipher magic constant.
const cipherMagic = 4

// crtValue is the fixed value of the "c crt" line of the handshake
// preamble.
const crtValue = 250

const clientVersion = "35"

// handshake drives the connection through the fixed, unencrypted
// greeting and the login conversation that follows it, returning the
// fully negotiated player ready to join the main tick loop. Any
// failure at any step simply closes the connection -- there is no
// partial-login state worth recovering.
func handshake(ctx context.Context, w *worker, idGen *IDGenerator) (clients.NewPlayer, error) {
	seed := cipher.NewRandomSeed()

	preamble := serverpackets.H{Value: 1}.Encode() +
		serverpackets.Io{Seed: seed}.Encode() +
		serverpackets.Crt{Value: crtValue}.Encode() +
		serverpackets.Ctr{}.Encode()
	if err := w.writeRaw(preamble); err != nil {
		return clients.NewPlayer{}, fmt.Errorf("server: write preamble: %w", err)
	}

	w.enableCipher(cipher.NewConnCipher(cipherMagic, seed), cipher.NewDictCipher())

	if _, err := readHandshake[clientpackets.New](ctx, w); err != nil {
		return clients.NewPlayer{}, fmt.Errorf("server: awaiting new: %w", err)
	}

	networkID := idGen.NextID()
	if err := w.writePacket(serverpackets.ID{Value: networkID}); err != nil {
		return clients.NewPlayer{}, fmt.Errorf("server: send id: %w", err)
	}

	version, err := readHandshake[clientpackets.Version](ctx, w)
	if err != nil {
		return clients.NewPlayer{}, fmt.Errorf("server: awaiting version: %w", err)
	}
	if version.Value != clientVersion {
		w.writePacket(serverpackets.Error{Error: protocol.ErrorTypeVerNotOk})
		return clients.NewPlayer{}, fmt.Errorf("server: version mismatch: got %q", version.Value)
	}
	if err := w.writePacket(serverpackets.VersOk{}); err != nil {
		return clients.NewPlayer{}, fmt.Errorf("server: send versok: %w", err)
	}

	// The client's diagnostic log line carries nothing the server
	// acts on; read and discard it.
	if _, err := w.readLine(ctx); err != nil {
		return clients.NewPlayer{}, fmt.Errorf("server: awaiting tlog: %w", err)
	}

	language, err := readLanguage(ctx, w)
	if err != nil {
		return clients.NewPlayer{}, fmt.Errorf("server: awaiting language: %w", err)
	}

	if _, err := readHandshake[clientpackets.LoginType](ctx, w); err != nil {
		return clients.NewPlayer{}, fmt.Errorf("server: awaiting logintype: %w", err)
	}

	if err := w.writePacket(serverpackets.StatusLogin{Number: 1, Status: nil}); err != nil {
		return clients.NewPlayer{}, fmt.Errorf("server: send status login: %w", err)
	}

	ttlogin, err := readHandshake[clientpackets.TTLogin](ctx, w)
	if err != nil {
		return clients.NewPlayer{}, fmt.Errorf("server: awaiting ttlogin: %w", err)
	}
	username := ttlogin.Username.Value
	if !ttlogin.Username.Present {
		username = generateUsername()
	}

	if err := w.writePacket(serverpackets.BasicInfo{
		Number:           2,
		UnconfirmedEmail: true,
		AccessLevel:      0,
		BadwordFilter:    true,
		GuestChat:        false,
	}); err != nil {
		return clients.NewPlayer{}, fmt.Errorf("server: send basicinfo: %w", err)
	}

	if err := w.writePacket(serverpackets.StatusLobbySelect{Number: 3, Lobby: 300}); err != nil {
		return clients.NewPlayer{}, fmt.Errorf("server: send status lobbyselect: %w", err)
	}

	return clients.NewPlayer{
		NetworkID: clients.NetworkID(networkID),
		Name:      username,
		Language:  language,
		Seed:      seed,
		Sent:      3,
		Received:  w.received,
		Send:      w.send,
	}, nil
}

// readHandshake reads one line and decodes it as a client packet of
// type T, failing if the decoded value is some other packet kind.
func readHandshake[T clientpackets.Packet](ctx context.Context, w *worker) (T, error) {
	var zero T
	line, err := w.readLine(ctx)
	if err != nil {
		return zero, err
	}
	pkt, _, _, err := clientpackets.Decode(line)
	if err != nil {
		return zero, err
	}
	typed, ok := pkt.(T)
	if !ok {
		return zero, fmt.Errorf("server: unexpected packet %T, wanted %T", pkt, zero)
	}
	return typed, nil
}

// readLanguage parses the one handshake line with no registered
// decoder in clientpackets, since it never appears again after login.
func readLanguage(ctx context.Context, w *worker) (string, error) {
	line, err := w.readLine(ctx)
	if err != nil {
		return "", err
	}
	c := protocol.NewCursor(line)
	if err := c.Tag("language "); err != nil {
		return "", err
	}
	return c.Rest(), nil
}

// generateUsername fabricates an identity for a client that logged in
// without a username, mirroring the "~anonym-<n>" convention guests
// receive.
func generateUsername() string {
	return fmt.Sprintf("~anonym-%d", rand.Intn(10000))
}
