// Package codec turns a raw byte stream into discrete '\n'-terminated
// wire lines. It is cipher-agnostic: decryption and grammar parsing
// both happen in the caller, after a line has been handed back here.
package codec

import "bytes"

// Codec accumulates bytes read off a socket and yields complete lines.
type Codec struct {
	buf []byte
}

// New returns an empty Codec.
func New() *Codec {
	return &Codec{}
}

// Accept appends newly read bytes to the internal buffer.
func (c *Codec) Accept(b []byte) {
	c.buf = append(c.buf, b...)
}

// Next returns the next complete '\n'-terminated line (newline
// included), if one is buffered. ok is false if no full line is
// available yet; the caller should read more bytes and call Accept
// again.
func (c *Codec) Next() (line string, ok bool) {
	idx := bytes.IndexByte(c.buf, '\n')
	if idx < 0 {
		return "", false
	}
	line = string(c.buf[:idx+1])
	c.buf = c.buf[idx+1:]
	return line, true
}

// Pending reports how many unconsumed bytes are buffered, useful for
// enforcing a maximum line length against a misbehaving client.
func (c *Codec) Pending() int {
	return len(c.buf)
}
