package parser

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/papapumpkin/qotd/internal/quote"
)

// parseJSON accepts three root shapes, per spec.md §4.1:
//
//	(a) an array of strings;
//	(b) an object with a "quotes" key holding an array of strings;
//	(c) an array of objects, each contributing one quote from "quote" or
//	    "text", optionally joined with "author" via the em-dash rule.
//
// Entries that are neither a string nor a qualifying object are skipped
// silently; a syntax error fails the whole file.
func parseJSON(content []byte) ([]string, error) {
	var root any
	if err := json.Unmarshal(content, &root); err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}

	switch v := root.(type) {
	case []any:
		return parseJSONArray(v), nil
	case map[string]any:
		quotes, ok := v["quotes"]
		if !ok {
			return nil, nil
		}
		arr, ok := quotes.([]any)
		if !ok {
			return nil, nil
		}
		return parseJSONArray(arr), nil
	default:
		return nil, nil
	}
}

func parseJSONArray(arr []any) []string {
	var out []string
	for _, item := range arr {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case map[string]any:
			text, ok := jsonString(v, "quote")
			if !ok {
				text, ok = jsonString(v, "text")
			}
			if !ok {
				continue
			}
			if author, ok := jsonString(v, "author"); ok {
				text = quote.WithAuthor(text, author)
			}
			out = append(out, text)
		}
	}
	return out
}

func jsonString(obj map[string]any, key string) (string, bool) {
	v, ok := obj[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
