// Package cipher implements the two independent obfuscation layers the
// legacy minigolf client expects on every connection: a fixed
// dictionary-substitution cipher applied to individual packets, and a
// per-connection byte-permutation cipher seeded during the handshake.
package cipher

import "sort"

// cipherCmds is the fixed command dictionary the dictionary cipher
// substitutes against. Order here is irrelevant; DictCipher sorts its
// own copy longest-first so that, e.g., "game\tbeginstroke\t" is tried
// before the shorter "game\t" prefix it contains.
var cipherCmds = [68]string{
	"status\t",
	"basicinfo\t",
	"numberofusers\t",
	"users\t",
	"ownjoin\t",
	"joinfromgame\t",
	"say\t",
	"logintype\t",
	"login",
	"lobbyselect\t",
	"select\t",
	"back",
	"challenge\t",
	"cancel\t",
	"accept\t",
	"cfail\t",
	"nouser",
	"nochall",
	"cother",
	"cbyother",
	"refuse",
	"afail",
	"gsn\t",
	"lobby\tnc\t",
	"lobby\t",
	"lobby",
	"tracksetlist\t",
	"tracksetlist",
	"gamelist\t",
	"full\t",
	"add\t",
	"change\t",
	"remove\t",
	"gameinfo\t",
	"players",
	"owninfo\t",
	"game\tstarttrack\t",
	"game\tstartturn\t",
	"game\tstart",
	"game\tbeginstroke\t",
	"game\tendstroke\t",
	"game\tresetvoteskip",
	"game\t",
	"game",
	"quit",
	"join\t",
	"part\t",
	"cspt\t",
	"qmpt",
	"cspc\t",
	"jmpt\t",
	"tracklist\t",
	"Tiikoni",
	"Leonardo",
	"Ennaji",
	"Hoeg",
	"Darwin",
	"Dante",
	"ConTrick",
	"Dewlor",
	"Scope",
	"SuperGenuis",
	"Zwan",
	"\tT !\t",
	"\tcr\t",
	"rnop",
	"nop\t",
	"error",
}

// DictCipher substitutes a fixed set of common protocol substrings with
// two-byte escape sequences, shrinking the wire size of the most
// frequent commands. It has no secret key; the "cipher" name matches
// what the original protocol calls it, not its cryptographic strength.
type DictCipher struct {
	cmds []string
}

// NewDictCipher builds a DictCipher with its command table sorted
// longest-first, so a longer command is always matched before a
// shorter one it contains as a prefix.
func NewDictCipher() *DictCipher {
	cmds := make([]string, len(cipherCmds))
	copy(cmds, cipherCmds[:])
	sort.Slice(cmds, func(i, j int) bool { return len(cmds[i]) > len(cmds[j]) })
	return &DictCipher{cmds: cmds}
}

// Encrypt replaces every occurrence of a dictionary command that is not
// directly preceded by the escape rune with a 2-rune escape sequence
// and prefixes the result with the chosen escape
// rune. If every rune in 1..31 already appears in input, no escape rune
// is available and input is returned unchanged.
func (c *DictCipher) Encrypt(input string) string {
	escape, ok := findUnusedRune(input)
	if !ok {
		return input
	}

	out := []rune(input)
	for i, cmd := range c.cmds {
		cmdRunes := []rune(cmd)
		from := 0
		for {
			idx := indexRunes(out[from:], cmdRunes)
			if idx < 0 {
				break
			}
			idx += from
			if idx > 0 && out[idx-1] == escape {
				from = idx + 1
				continue
			}
			replacement := []rune{escape, rune(' ' + i)}
			out = append(out[:idx], append(replacement, out[idx+len(cmdRunes):]...)...)
		}
	}

	return string(escape) + string(out)
}

// Decrypt is the inverse of Encrypt: it reads the leading escape rune,
// then walks the remainder copying literal runs through unchanged and
// replacing every (escape, commandIndex) pair with the dictionary entry
// it encodes.
func (c *DictCipher) Decrypt(input string) string {
	runes := []rune(input)
	if len(runes) == 0 {
		return input
	}
	escape := runes[0]
	rest := runes[1:]

	var out []rune
	for {
		idx := indexRune(rest, escape)
		if idx < 0 {
			out = append(out, rest...)
			break
		}
		out = append(out, rest[:idx]...)
		if idx+1 < len(rest) {
			cmdIndex := int(rest[idx+1]) - 32
			if cmdIndex >= 0 && cmdIndex < len(c.cmds) {
				out = append(out, []rune(c.cmds[cmdIndex])...)
			}
			rest = rest[idx+2:]
		} else {
			rest = rest[idx+1:]
		}
	}

	return string(out)
}

func findUnusedRune(input string) (rune, bool) {
	for c := rune(1); c < 32; c++ {
		if !containsRune(input, c) {
			return c, true
		}
	}
	return 0, false
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}

func indexRune(runes []rune, target rune) int {
	for i, r := range runes {
		if r == target {
			return i
		}
	}
	return -1
}

func indexRunes(haystack, needle []rune) int {
	if len(needle) == 0 {
		return 0
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
