package protocol

import "testing"

func TestUser_RoundTrip(t *testing.T) {
	const literal = "3:~anonym-2893^wn^-1^de_DE^-^-"
	u, err := ParseUser(literal)
	if err != nil {
		t.Fatalf("ParseUser: %v", err)
	}
	if got := u.Encode(); got != literal {
		t.Fatalf("Encode() = %q, want %q", got, literal)
	}
}

func TestPlayerInfo_InvertedMapping(t *testing.T) {
	info, err := ParsePlayerInfo("ftf")
	if err != nil {
		t.Fatalf("ParsePlayerInfo: %v", err)
	}
	want := PlayerInfo{true, false, true}
	if len(info) != len(want) {
		t.Fatalf("len = %d, want %d", len(info), len(want))
	}
	for i := range want {
		if info[i] != want[i] {
			t.Errorf("index %d: got %v want %v", i, info[i], want[i])
		}
	}
	if got := info.Encode(); got != "ftf" {
		t.Errorf("Encode() = %q, want %q", got, "ftf")
	}
}

func TestJoinLeaveReason_RoundTrip(t *testing.T) {
	cases := []string{"1", "2\tMyRoom", "3\tMyRoom", "4", "5"}
	for _, lit := range cases {
		c := NewCursor(lit)
		r, err := ParseJoinLeaveReason(c)
		if err != nil {
			t.Fatalf("ParseJoinLeaveReason(%q): %v", lit, err)
		}
		if got := r.Encode(); got != lit {
			t.Errorf("Encode() = %q, want %q", got, lit)
		}
	}
}

func TestDispatchedPrefix_RoundTrip(t *testing.T) {
	c := NewCursor("d 9 game\tgameinfo\n")
	n, err := ParseDispatchedPrefix(c)
	if err != nil {
		t.Fatalf("ParseDispatchedPrefix: %v", err)
	}
	if n != 9 {
		t.Fatalf("n = %d, want 9", n)
	}
	if got := EncodeDispatchedPrefix(n); got != "d 9 " {
		t.Errorf("EncodeDispatchedPrefix() = %q, want %q", got, "d 9 ")
	}
}
