package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseBool decodes the wire convention for plain booleans: 'f' for
// false, 't' for true.
func ParseBool(field string) (bool, error) {
	switch field {
	case "f":
		return false, nil
	case "t":
		return true, nil
	}
	return false, fmt.Errorf("protocol: bad bool %q", field)
}

// EncodeBool is the inverse of ParseBool.
func EncodeBool(v bool) string {
	if v {
		return "t"
	}
	return "f"
}

// NonEmptyOption represents a string field where the literal "-"
// stands for an absent value: any other field content is the value
// itself. Used for optional names, clan tags, and best-score holders.
type NonEmptyOption struct {
	Value   string
	Present bool
}

func ParseNonEmptyOption(field string) NonEmptyOption {
	if field == "-" {
		return NonEmptyOption{}
	}
	return NonEmptyOption{Value: field, Present: true}
}

func (o NonEmptyOption) Encode() string {
	if !o.Present {
		return "-"
	}
	return o.Value
}

// PlayerInfo is a bit vector sent as a run of 'f'/'t' characters, one
// per player slot. The mapping is intentionally inverted from the
// obvious one: 't' decodes to false and 'f' decodes to true. This
// matches a bug in the original client and must not be "fixed" here —
// flipping it would desynchronize from any real client.
type PlayerInfo []bool

func ParsePlayerInfo(field string) (PlayerInfo, error) {
	out := make(PlayerInfo, 0, len(field))
	for _, r := range field {
		switch r {
		case 'f':
			out = append(out, true)
		case 't':
			out = append(out, false)
		default:
			return nil, fmt.Errorf("protocol: bad PlayerInfo char %q", r)
		}
	}
	return out, nil
}

func (p PlayerInfo) Encode() string {
	var b strings.Builder
	for _, v := range p {
		if v {
			b.WriteByte('f')
		} else {
			b.WriteByte('t')
		}
	}
	return b.String()
}

// JoinLeaveReason is the discriminated union describing why a lobby
// join/part event is being broadcast.
type JoinLeaveReason struct {
	Kind  JoinLeaveKind
	Value string // populated for CreatedMP / JoinedMP
}

type JoinLeaveKind int

const (
	JoinLeaveStartedSP JoinLeaveKind = iota + 1
	JoinLeaveCreatedMP
	JoinLeaveJoinedMP
	JoinLeaveLeftLobby
	JoinLeaveLostConnection
)

func ParseJoinLeaveReason(c *Cursor) (JoinLeaveReason, error) {
	tag := c.Field("\t\n")
	n, err := strconv.Atoi(tag)
	if err != nil {
		return JoinLeaveReason{}, fmt.Errorf("protocol: bad join/leave reason %q", tag)
	}
	switch JoinLeaveKind(n) {
	case JoinLeaveStartedSP, JoinLeaveLeftLobby, JoinLeaveLostConnection:
		return JoinLeaveReason{Kind: JoinLeaveKind(n)}, nil
	case JoinLeaveCreatedMP, JoinLeaveJoinedMP:
		if err := c.Char('\t'); err != nil {
			return JoinLeaveReason{}, err
		}
		value := c.Field("\t\n")
		return JoinLeaveReason{Kind: JoinLeaveKind(n), Value: value}, nil
	}
	return JoinLeaveReason{}, fmt.Errorf("protocol: unknown join/leave reason %d", n)
}

func (r JoinLeaveReason) Encode() string {
	switch r.Kind {
	case JoinLeaveCreatedMP, JoinLeaveJoinedMP:
		return fmt.Sprintf("%d\t%s", r.Kind, r.Value)
	default:
		return strconv.Itoa(int(r.Kind))
	}
}

// User is the 6-field, caret-joined record describing a lobby member,
// as broadcast in join/user-list packets.
//
// Round trips exactly: "3:~anonym-2893^wn^-1^de_DE^-^-".
type User struct {
	IDUsername string // e.g. "3:~anonym-2893"
	Status     string // "w"/"r" plus optional "n"
	Rank       int32
	Lang       string
	Value2     NonEmptyOption
	Value3     NonEmptyOption
}

func ParseUser(field string) (User, error) {
	parts := strings.Split(field, "^")
	if len(parts) != 6 {
		return User{}, fmt.Errorf("protocol: malformed User %q", field)
	}
	rank, err := strconv.ParseInt(parts[2], 10, 32)
	if err != nil {
		return User{}, fmt.Errorf("protocol: bad User rank %q: %w", parts[2], err)
	}
	return User{
		IDUsername: parts[0],
		Status:     parts[1],
		Rank:       int32(rank),
		Lang:       parts[3],
		Value2:     ParseNonEmptyOption(parts[4]),
		Value3:     ParseNonEmptyOption(parts[5]),
	}, nil
}

func (u User) Encode() string {
	return strings.Join([]string{
		u.IDUsername,
		u.Status,
		strconv.Itoa(int(u.Rank)),
		u.Lang,
		u.Value2.Encode(),
		u.Value3.Encode(),
	}, "^")
}

// ParseTabList parses a tab-separated run of same-typed records where
// each record's own Parse consumes exactly its fields and leaves the
// cursor positioned at the next '\t' (the list separator) or end of
// line. Matches the original grammar's recursive Vec<T> parsing, where
// an embedded record's first field has no leading delimiter of its own
// (it borrows the list's).
func ParseTabList[T any](c *Cursor, parseOne func(*Cursor) (T, error)) ([]T, error) {
	var out []T
	if c.AtEnd() {
		return out, nil
	}
	first, err := parseOne(c)
	if err != nil {
		return nil, err
	}
	out = append(out, first)
	for c.HasTag("\t") {
		saved := c.Remaining()
		if err := c.Char('\t'); err != nil {
			break
		}
		item, err := parseOne(c)
		if err != nil {
			// Not another record: put the tab back for the caller.
			*c = *NewCursor(saved)
			break
		}
		out = append(out, item)
	}
	return out, nil
}

// EncodeTabList renders a tab-separated run of records.
func EncodeTabList[T any](items []T, encodeOne func(T) string) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = encodeOne(it)
	}
	return strings.Join(parts, "\t")
}

// ParseOptionalLeadingTabList parses the SomeAsTab<Vec<T>> convention:
// a non-empty list is preceded by a single '\t' that marks its
// presence; an empty list is zero bytes (no tab at all).
func ParseOptionalLeadingTabList[T any](c *Cursor, parseOne func(*Cursor) (T, error)) ([]T, error) {
	if c.AtEnd() {
		return nil, nil
	}
	if err := c.Char('\t'); err != nil {
		return nil, err
	}
	return ParseTabList(c, parseOne)
}

// EncodeOptionalLeadingTabList is the inverse of
// ParseOptionalLeadingTabList.
func EncodeOptionalLeadingTabList[T any](items []T, encodeOne func(T) string) string {
	if len(items) == 0 {
		return ""
	}
	return "\t" + EncodeTabList(items, encodeOne)
}
