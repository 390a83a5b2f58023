// Package corpus assembles an immutable, deduplicated snapshot of quotes by
// walking a configured list of directories.
package corpus

import "time"

// Metadata describes the build that produced a Corpus, per spec.md §3.
type Metadata struct {
	FilesScanned      int
	CandidatesParsed  int
	DuplicatesRemoved int
	UniqueQuotes      int
	BuiltAt           time.Time
}

// Corpus is the central immutable entity: an ordered, deduplicated list of
// quotes plus the metadata describing how it was built. Once returned from
// Build, neither field is ever mutated; the empty corpus (len(Quotes)==0)
// is a valid, expected state.
type Corpus struct {
	Quotes   []string
	Metadata Metadata
}

// Size returns the number of quotes in the corpus.
func (c *Corpus) Size() int {
	if c == nil {
		return 0
	}
	return len(c.Quotes)
}

// At returns the quote at index i. The caller (the server) is expected to
// have obtained i from a Selector bound to this corpus's Size; an
// out-of-range i is treated as an invariant violation by the caller, not by
// Corpus itself.
func (c *Corpus) At(i int) string {
	return c.Quotes[i]
}
