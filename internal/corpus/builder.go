package corpus

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/papapumpkin/qotd/internal/parser"
	"github.com/papapumpkin/qotd/internal/quote"
)

// MaxFileSize is the per-file read cap (spec.md §4.2 requires >= 10 MiB;
// SPEC_FULL.md settles on 16 MiB, per Open Question #2).
const MaxFileSize = 16 * 1024 * 1024

// Builder assembles Corpus snapshots from a list of directories. It never
// fails: an empty corpus is itself a valid, logged result.
type Builder struct {
	Log zerolog.Logger
}

// NewBuilder returns a Builder that logs to log.
func NewBuilder(log zerolog.Logger) *Builder {
	return &Builder{Log: log}
}

// Build walks dirs in listed order and returns a freshly assembled Corpus.
// It never mutates any previously published Corpus and never returns an
// error: unreadable directories and unparseable files are logged as
// warnings and skipped, per spec.md §4.2.
func (b *Builder) Build(dirs []string) *Corpus {
	var (
		quotes []string
		seen   = make(map[quote.Fingerprint]struct{})
		meta   Metadata
	)

	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == dir {
					b.Log.Warn().Str("directory", dir).Err(err).Msg("corpus: cannot open directory")
					return nil
				}
				b.Log.Warn().Str("path", path).Err(err).Msg("corpus: walk error")
				return nil
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}

			meta.FilesScanned++
			b.ingestFile(path, &quotes, seen, &meta)
			return nil
		})
		if err != nil {
			b.Log.Warn().Str("directory", dir).Err(err).Msg("corpus: walk failed")
		}
	}

	meta.UniqueQuotes = len(quotes)
	meta.DuplicatesRemoved = meta.CandidatesParsed - meta.UniqueQuotes
	meta.BuiltAt = time.Now()

	c := &Corpus{Quotes: quotes, Metadata: meta}

	event := b.Log.Info()
	if meta.UniqueQuotes == 0 {
		event = b.Log.Warn()
	}
	event.
		Int("files_scanned", meta.FilesScanned).
		Int("candidates_parsed", meta.CandidatesParsed).
		Int("duplicates_removed", meta.DuplicatesRemoved).
		Int("unique_quotes", meta.UniqueQuotes).
		Msg("corpus: build complete")

	return c
}

func (b *Builder) ingestFile(path string, quotes *[]string, seen map[quote.Fingerprint]struct{}, meta *Metadata) {
	info, err := os.Stat(path)
	if err != nil {
		b.Log.Warn().Str("file", path).Err(err).Msg("corpus: cannot stat file")
		return
	}
	if info.Size() > MaxFileSize {
		b.Log.Warn().Str("file", path).Int64("size", info.Size()).Msg("corpus: file exceeds read cap, skipping")
		return
	}

	content, err := os.ReadFile(path)
	if err != nil {
		b.Log.Warn().Str("file", path).Err(err).Msg("corpus: cannot read file")
		return
	}

	format := parser.DetectFormat(path, content)
	candidates, err := parser.Parse(format, content)
	if err != nil {
		b.Log.Warn().Str("file", path).Str("format", format.String()).Err(err).Msg("corpus: parse error")
		return
	}

	for _, candidate := range candidates {
		normalized := quote.Normalize(candidate)
		if normalized == "" {
			continue
		}
		meta.CandidatesParsed++

		fp := quote.Hash(normalized)
		if _, dup := seen[fp]; dup {
			continue
		}
		seen[fp] = struct{}{}
		*quotes = append(*quotes, normalized)
	}
}
