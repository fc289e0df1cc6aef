// Package webpage pulls words out of stored HTML for indexing.
package webpage

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/words"
	"golang.org/x/text/unicode/norm"
)

// NextWord returns the next word of html at or after byte offset pos, and the
// offset just past it. Markup between '<' and '>' is skipped. A word is a
// maximal run of letters: segments found by UAX #29 are cut at their first
// non-letter, so "don't" yields "don" then "t". ok is false once html is
// exhausted.
func NextWord(html string, pos int) (word string, next int, ok bool) {
	for pos < len(html) {
		if html[pos] == '<' {
			end := strings.IndexByte(html[pos:], '>')
			if end < 0 {
				return "", len(html), false
			}
			pos += end + 1
			continue
		}
		r, size := utf8.DecodeRuneInString(html[pos:])
		if !unicode.IsLetter(r) {
			pos += size
			continue
		}
		textEnd := strings.IndexByte(html[pos:], '<')
		if textEnd < 0 {
			textEnd = len(html)
		} else {
			textEnd += pos
		}
		// segments are contiguous, so the first one starts at pos
		segments := words.FromString(html[pos:textEnd])
		if !segments.Next() {
			pos += size
			continue
		}
		word = letterPrefix(segments.Value())
		return word, pos + len(word), true
	}
	return "", len(html), false
}

// letterPrefix 取开头连续的字母
func letterPrefix(s string) string {
	for i, r := range s {
		if !unicode.IsLetter(r) {
			return s[:i]
		}
	}
	return s
}

// Words returns every word of html in document order.
func Words(html string) []string {
	var out []string
	pos := 0
	for {
		word, next, ok := NextWord(html, pos)
		if !ok {
			return out
		}
		out = append(out, word)
		pos = next
	}
}

// Normalize folds compatibility forms (NFKC) and lower-cases word.
func Normalize(word string) string {
	return strings.ToLower(norm.NFKC.String(word))
}

// IsIndexable reports whether a normalized word is made of a-z only, the
// alphabet the persisted index accepts.
func IsIndexable(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		if word[i] < 'a' || word[i] > 'z' {
			return false
		}
	}
	return true
}
