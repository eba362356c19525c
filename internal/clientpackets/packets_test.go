package clientpackets

import (
	"testing"

	"github.com/nokkasiili/minigolf-server/internal/protocol"
	"github.com/stretchr/testify/require"
)

func TestDecodeDispatchedPrefix(t *testing.T) {
	pkt, number, numbered, err := Decode("d 7 game\tsay\thello there\n")
	require.NoError(t, err)
	require.True(t, numbered)
	require.Equal(t, protocol.PacketNumber(7), number)
	require.Equal(t, GameSay{Message: "hello there"}, pkt)
}

func TestDecodeUnnumberedControlLine(t *testing.T) {
	pkt, _, numbered, err := Decode("c pong\n")
	require.NoError(t, err)
	require.False(t, numbered)
	require.Equal(t, Pong{}, pkt)
}

func TestDecodeUnnumberedHandshakeLine(t *testing.T) {
	pkt, _, numbered, err := Decode("logintype\treg\n")
	require.NoError(t, err)
	require.False(t, numbered)
	require.Equal(t, LoginType{Value: protocol.LoginTypeReg}, pkt)
}

func TestDecodeRejectsUnknownLine(t *testing.T) {
	_, _, _, err := Decode("d 1 nonsense\tfield\n")
	require.Error(t, err)
}
