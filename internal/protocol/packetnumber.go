package protocol

import (
	"fmt"
	"strconv"
)

// PacketNumber is the monotonically increasing sequence number carried
// by every "d <n> <tag>\t..." dispatched packet. It lets either side
// detect a dropped or reordered packet; per spec the check that fires
// on a mismatch is a warning, never a disconnect.
type PacketNumber uint32

// ParseDispatchedPrefix consumes the "d <n> " prefix common to every
// dispatched packet and returns the parsed number.
func ParseDispatchedPrefix(c *Cursor) (PacketNumber, error) {
	if err := c.Tag("d "); err != nil {
		return 0, err
	}
	digits := c.Field(" ")
	if digits == "" {
		return 0, fmt.Errorf("protocol: missing packet number in %q", c.Remaining())
	}
	n, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("protocol: bad packet number %q: %w", digits, err)
	}
	if err := c.Char(' '); err != nil {
		return 0, err
	}
	return PacketNumber(n), nil
}

// EncodeDispatchedPrefix renders the "d <n> " prefix.
func EncodeDispatchedPrefix(n PacketNumber) string {
	return fmt.Sprintf("d %d ", n)
}
