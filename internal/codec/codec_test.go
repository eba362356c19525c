package codec

import "testing"

func TestCodec_AccumulatesAcrossReads(t *testing.T) {
	c := New()
	c.Accept([]byte("c ne"))
	if _, ok := c.Next(); ok {
		t.Fatal("Next() returned a line before one was complete")
	}
	c.Accept([]byte("w\n"))
	line, ok := c.Next()
	if !ok || line != "c new\n" {
		t.Fatalf("Next() = %q, %v, want %q, true", line, ok, "c new\n")
	}
	if _, ok := c.Next(); ok {
		t.Fatal("Next() returned a second line that wasn't sent")
	}
}

func TestCodec_MultipleLinesInOneRead(t *testing.T) {
	c := New()
	c.Accept([]byte("c new\nc pong\n"))

	first, ok := c.Next()
	if !ok || first != "c new\n" {
		t.Fatalf("first = %q, %v", first, ok)
	}
	second, ok := c.Next()
	if !ok || second != "c pong\n" {
		t.Fatalf("second = %q, %v", second, ok)
	}
}
