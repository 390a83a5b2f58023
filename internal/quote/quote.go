// Package quote implements the normalization and content-addressed
// fingerprinting rules shared by every parser and the corpus builder.
package quote

import (
	"strings"
	"unicode/utf8"

	"lukechampine.com/blake3"
)

// EmDash is the literal separator the em-dash rule inserts between a quote
// and its author: U+2014 surrounded by single ASCII spaces.
const EmDash = " — "

// Fingerprint is the 32-byte Blake3 hash of a normalized quote's content.
// Fingerprint equality is treated as content equality (collisions assumed
// negligible).
type Fingerprint [32]byte

// Hash computes the fingerprint of content. content is expected to already
// be normalized; Hash does not normalize on the caller's behalf.
func Hash(content string) Fingerprint {
	return Fingerprint(blake3.Sum256([]byte(content)))
}

// WithAuthor joins a quote and an author per the em-dash rule. If author is
// empty, quote is returned unchanged.
func WithAuthor(text, author string) string {
	author = strings.TrimSpace(author)
	if author == "" {
		return text
	}
	return text + EmDash + author
}

// Normalize applies the universal normalization rules from spec.md §4.1:
// UTF-8 repair, ASCII-whitespace trimming, and collapsing interior
// whitespace runs to a single space. It returns "" for a string that
// normalizes to nothing.
func Normalize(s string) string {
	s = repairUTF8(s)

	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	started := false
	for _, r := range s {
		if isSpace(r) {
			if started {
				inSpace = true
			}
			continue
		}
		if inSpace {
			b.WriteByte(' ')
			inSpace = false
		}
		b.WriteRune(r)
		started = true
	}
	return b.String()
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// repairUTF8 replaces every byte that does not start a valid UTF-8 encoding
// with U+FFFD, one replacement per such byte (unlike strings.ToValidUTF8,
// which collapses a run of invalid bytes into one replacement). The walk is
// done by hand so the byte-by-byte handling is explicit, per spec.md §4.1.
func repairUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			b.WriteRune(utf8.RuneError)
			i++
			continue
		}
		b.WriteRune(r)
		i += size
	}
	return b.String()
}
