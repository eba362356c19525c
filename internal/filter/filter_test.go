package filter

import "testing"

func TestFilter_ContainsBadWords(t *testing.T) {
	f := New()
	if !f.ContainsBadWords("huora") {
		t.Error("expected huora to be flagged")
	}
	if f.ContainsBadWords("lol") {
		t.Error("did not expect lol to be flagged")
	}
	if !f.ContainsBadWords("you VITTU idiot") {
		t.Error("expected case-insensitive match")
	}
}

func TestFilter_HellExceptionsDoNotMatch(t *testing.T) {
	f := New()
	if f.ContainsBadWords("what the hell") {
		t.Error("did not expect 'hell' alone to be flagged")
	}
	if f.ContainsBadWords("he'll be there") {
		t.Error("did not expect \"he'll\" alone to be flagged")
	}
}

func TestFilter_NameFilter(t *testing.T) {
	f := New()
	if got := f.NameFilter("--Nokka$iili!!"); got != "Nokka-iili" {
		t.Errorf("NameFilter() = %q, want %q", got, "Nokka-iili")
	}
	if got := f.NameFilter("  spaced out  "); got != "spaced out" {
		t.Errorf("NameFilter() = %q, want %q", got, "spaced out")
	}
}
