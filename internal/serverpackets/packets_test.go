package serverpackets

import (
	"testing"

	"github.com/nokkasiili/minigolf-server/internal/protocol"
)

func TestGameGameInfo_EncodeVector(t *testing.T) {
	p := GameGameInfo{
		Number:                  9,
		Name:                    protocol.NonEmptyOption{},
		Password:                false,
		Permission:              13,
		Players:                 3,
		NumTracks:               10,
		TrackTypes:              protocol.TrackTypeBasic,
		MaxStrokes:              20,
		StrokeTime:              60,
		WaterEvent:              protocol.WaterEventBackToStart,
		Collision:               protocol.CollisionYes,
		TrackScoring:            protocol.ScoringScore,
		TrackScoringWeightedEnd: protocol.WeightEndNone,
		Value2:                  false,
	}
	want := "d 9 game\tgameinfo\t-\tf\t13\t3\t10\t1\t20\t60\t0\t1\t0\t0\tf\n"
	if got := p.Encode(); got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

func TestLobbySayP_EncodeVector(t *testing.T) {
	p := LobbySayP{Number: 5, From: "Nokkasiili", Message: "lol lol lol"}
	want := "d 5 lobby\tsayp\tNokkasiili\tlol lol lol\n"
	if got := p.Encode(); got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

func TestLobbyNumberOfUsers_Scenario(t *testing.T) {
	// 3 Solo-lobby clients + 1 Duo-playing client.
	p := LobbyNumberOfUsers{
		Number:        1,
		SingleLobby:   3,
		SinglePlaying: 0,
		DualLobby:     0,
		DualPlaying:   1,
		MultiLobby:    0,
		MultiPlaying:  0,
	}
	want := "d 1 lobby\tnumberofusers\t3\t0\t0\t1\t0\t0\n"
	if got := p.Encode(); got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

func TestGamePlayers_EmptyIsZeroBytes(t *testing.T) {
	p := GamePlayers{Number: 2}
	want := "d 2 game\tplayers\n"
	if got := p.Encode(); got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

func TestGamePlayers_NonEmptyHasLeadingTab(t *testing.T) {
	p := GamePlayers{Number: 2, Players: []Player{{Index: 0, Name: "Nokkasiili"}}}
	want := "d 2 game\tplayers\t0\tNokkasiili\t-\n"
	if got := p.Encode(); got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}
