package parser

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/papapumpkin/qotd/internal/quote"
)

// parseYAML accepts the minimal subset of spec.md §4.1: a top-level
// sequence of scalars, a top-level sequence of mappings (each with `quote`
// or `text` plus optional `author`), or either of those nested under a
// top-level `quotes:` key. `---` separators, blank lines, and `#` comments
// are handled by the YAML decoder itself.
func parseYAML(content []byte) ([]string, error) {
	var root any
	if err := yaml.Unmarshal(content, &root); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}

	seq, ok := root.([]any)
	if !ok {
		m, ok := root.(map[string]any)
		if !ok {
			return nil, nil
		}
		inner, ok := m["quotes"]
		if !ok {
			return nil, nil
		}
		seq, ok = inner.([]any)
		if !ok {
			return nil, nil
		}
	}

	var out []string
	for _, item := range seq {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case map[string]any:
			text, ok := yamlString(v, "quote")
			if !ok {
				text, ok = yamlString(v, "text")
			}
			if !ok {
				continue
			}
			if author, ok := yamlString(v, "author"); ok {
				text = quote.WithAuthor(text, author)
			}
			out = append(out, text)
		}
	}
	return out, nil
}

func yamlString(obj map[string]any, key string) (string, bool) {
	v, ok := obj[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
