package cipher

import "testing"

func TestConnCipher_RoundTrip(t *testing.T) {
	c := NewConnCipher(4, 148153586)
	input := "c new\n"
	encrypted := c.Encrypt(input)
	got := c.Decrypt(encrypted)
	if got != input {
		t.Fatalf("round trip = %q, want %q", got, input)
	}
}

func TestConnCipher_RoundTripVariety(t *testing.T) {
	c := NewConnCipher(4, 148153586)
	inputs := []string{
		"c new\n",
		"game\tbeginstroke\t70q4\n",
		"lobby\tsay\thello there\n",
		"d 5 lobby\tsayp\tNokkasiili\tlol lol lol\n",
	}
	for _, in := range inputs {
		encrypted := c.Encrypt(in)
		got := c.Decrypt(encrypted)
		if got != in {
			t.Errorf("round trip for %q = %q", in, got)
		}
	}
}
