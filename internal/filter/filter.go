// Package filter implements the chat profanity classifier and the
// display-name sanitizer, grounded on the original protocol server's
// filter module.
package filter

import "strings"

var badWords = []string{
	"kikkeli", "tussu", "tissi", "pimppa", "lutka", "persreikä",
	"kusipää", "nussi", "pimppi", "pippeli", "paska", "vitut", "vitun",
	"vittu", "saatana", "pillu", "perse", "perkele", "mulkku", "kulli",
	"huora", "helvetti", "helvetin", "kyrpä", "runkku", "runkkaa",
	"runkkari", "hintti", "fuck",
}

// hellExceptions lists substrings that must not, on their own, trigger
// a match against "helvetti"/"helvetin" just because they share the
// "hell" prefix in translation; these are legitimate English words.
var hellExceptions = []string{"he'll", "hell"}

const acceptedNameChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZÅÄÖÜÁÉÍÓÚÑabcdefghijklmnopqrstuvwxyzåäöüáéíóúñ0123456789- "

// Filter classifies chat text and sanitizes display names.
type Filter struct{}

// New returns a Filter using the built-in word lists.
func New() *Filter {
	return &Filter{}
}

// ContainsBadWords reports whether input contains any configured bad
// word as a case-insensitive substring. Spans that match an entry in
// hellExceptions are carved out first, so "hell" and "he'll" alone
// never trigger a match purely from being English words that overlap
// with a filtered Finnish one.
func (f *Filter) ContainsBadWords(input string) bool {
	lower := strings.ToLower(input)
	excluded := exceptionSpans(lower)

	for _, word := range badWords {
		start := 0
		for {
			idx := strings.Index(lower[start:], word)
			if idx < 0 {
				break
			}
			matchStart := start + idx
			matchEnd := matchStart + len(word)
			if !coveredByException(excluded, matchStart, matchEnd) {
				return true
			}
			start = matchEnd
		}
	}
	return false
}

type span struct{ start, end int }

func exceptionSpans(lower string) []span {
	var spans []span
	for _, exc := range hellExceptions {
		start := 0
		for {
			idx := strings.Index(lower[start:], exc)
			if idx < 0 {
				break
			}
			matchStart := start + idx
			matchEnd := matchStart + len(exc)
			spans = append(spans, span{matchStart, matchEnd})
			start = matchEnd
		}
	}
	return spans
}

func coveredByException(spans []span, start, end int) bool {
	for _, s := range spans {
		if start >= s.start && end <= s.end {
			return true
		}
	}
	return false
}

// NameFilter strips any character not in the accepted display-name
// alphabet, replacing it with '-', then trims leading/trailing '-' and
// whitespace.
func (f *Filter) NameFilter(input string) string {
	var b strings.Builder
	for _, r := range input {
		if strings.ContainsRune(acceptedNameChars, r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	return strings.TrimSpace(strings.Trim(b.String(), "-"))
}
