package parser

import (
	"fmt"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/qotd/internal/quote"
)

// parseTOML accepts a top-level `quotes = [ "...", ... ]` array of strings
// or one-or-more `[[quotes]]` array-of-tables entries with a `quote` (or
// `text`) string and optional `author`, combined via the em-dash rule. Both
// shapes decode to the same `quotes` array of elements under go-toml/v2, so
// a single walk handles them (mirrors quasar's `toml.Unmarshal` idiom in
// internal/nebula/parse.go, generalized from a fixed struct to a dynamic
// map since the shape here isn't known ahead of time).
func parseTOML(content []byte) ([]string, error) {
	var root map[string]any
	if err := toml.Unmarshal(content, &root); err != nil {
		return nil, fmt.Errorf("toml: %w", err)
	}

	quotes, ok := root["quotes"]
	if !ok {
		return nil, nil
	}
	arr, ok := quotes.([]any)
	if !ok {
		return nil, nil
	}

	var out []string
	for _, item := range arr {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case map[string]any:
			text, ok := tomlString(v, "quote")
			if !ok {
				text, ok = tomlString(v, "text")
			}
			if !ok {
				continue
			}
			if author, ok := tomlString(v, "author"); ok {
				text = quote.WithAuthor(text, author)
			}
			out = append(out, text)
		}
	}
	return out, nil
}

func tomlString(obj map[string]any, key string) (string, bool) {
	v, ok := obj[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
