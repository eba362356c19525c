// Package protocol implements the line-oriented wire grammar: packet
// numbering, the shared field wrapper types, and the small
// hand-written cursor every packet type's Parse/Encode pair is built
// on. There is no parser-combinator library in play here (the original
// used one); a cursor that knows the difference between a tab-delimited
// and a space-delimited packet is the natural Go shape for a fixed,
// small grammar, and matches the hand-rolled-reader idiom the rest of
// this codebase's ancestry uses for its own wire formats.
package protocol

import (
	"fmt"
	"strings"
)

// Cursor walks a single decrypted wire line field by field.
type Cursor struct {
	s string
}

// NewCursor wraps a decrypted line (trailing '\n', if any, still
// attached) for parsing.
func NewCursor(s string) *Cursor {
	return &Cursor{s: s}
}

// Remaining returns everything not yet consumed.
func (c *Cursor) Remaining() string {
	return c.s
}

// Tag consumes an exact literal prefix, failing if it isn't present.
func (c *Cursor) Tag(tag string) error {
	if !strings.HasPrefix(c.s, tag) {
		return fmt.Errorf("protocol: expected tag %q in %q", tag, c.s)
	}
	c.s = c.s[len(tag):]
	return nil
}

// HasTag reports whether the given literal is next, without consuming.
func (c *Cursor) HasTag(tag string) bool {
	return strings.HasPrefix(c.s, tag)
}

// Char consumes a single expected byte (used for the inter-field
// delimiter: '\t' for tab-delimited packets, ' ' for space-delimited
// ones).
func (c *Cursor) Char(b byte) error {
	if len(c.s) == 0 || c.s[0] != b {
		return fmt.Errorf("protocol: expected %q in %q", b, c.s)
	}
	c.s = c.s[1:]
	return nil
}

// OptChar consumes a single byte if present; absence is not an error.
func (c *Cursor) OptChar(b byte) {
	if len(c.s) > 0 && c.s[0] == b {
		c.s = c.s[1:]
	}
}

// Field consumes up to (not including) the next occurrence of any of
// stopBytes, or the rest of the cursor if none appear. It never errors:
// an absent delimiter just means this is the final field.
func (c *Cursor) Field(stopBytes string) string {
	idx := strings.IndexAny(c.s, stopBytes)
	if idx < 0 {
		field := c.s
		c.s = ""
		return field
	}
	field := c.s[:idx]
	c.s = c.s[idx:]
	return field
}

// Rest consumes everything left, stripping one trailing '\n' if
// present. Used for the final field of a line, which by grammar
// convention runs to end of packet and may itself contain spaces or
// tabs (e.g. chat message bodies).
func (c *Cursor) Rest() string {
	s := strings.TrimSuffix(c.s, "\n")
	c.s = ""
	return s
}

// AtEnd reports whether nothing but an optional trailing newline
// remains.
func (c *Cursor) AtEnd() bool {
	return c.s == "" || c.s == "\n"
}
