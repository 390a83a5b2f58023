package parser

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/papapumpkin/qotd/internal/quote"
)

var csvHeaderNames = map[string]bool{
	"quote":   true,
	"text":    true,
	"content": true,
	"quotes":  true,
}

// parseCSV auto-detects the delimiter (comma vs. tab, preferring comma on a
// tie), drops a recognized header row, and treats the first column as the
// quote and an optional second column as the author, per spec.md §4.1. CSV
// quoting (a literal `"` written as `""` inside a quoted field) is handled
// by the standard library's encoding/csv reader, which implements exactly
// the minimal quoting rule the spec calls for.
func parseCSV(content []byte) ([]string, error) {
	text := string(content)
	delim := detectDelimiter(text)

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}
	if isHeaderRow(records[0]) {
		records = records[1:]
	}

	var out []string
	for _, row := range records {
		if len(row) == 0 {
			continue
		}
		text := row[0]
		if text == "" {
			continue
		}
		if len(row) > 1 && row[1] != "" {
			text = quote.WithAuthor(text, row[1])
		}
		out = append(out, text)
	}
	return out, nil
}

func detectDelimiter(text string) rune {
	line := firstNonEmptyLine([]byte(text))
	commas := strings.Count(line, ",")
	tabs := strings.Count(line, "\t")
	if tabs > commas {
		return '\t'
	}
	return ','
}

func isHeaderRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	return csvHeaderNames[strings.ToLower(strings.TrimSpace(row[0]))]
}
