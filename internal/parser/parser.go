package parser

import "fmt"

// Parse dispatches content to the parser matching format and returns the
// ordered list of candidate quote strings it produced. Candidates are
// returned pre-normalization; the caller (the corpus builder) applies the
// universal normalization rules of spec.md §4.1.
func Parse(format Format, content []byte) ([]string, error) {
	switch format {
	case FormatJSON:
		return parseJSON(content)
	case FormatCSV:
		return parseCSV(content)
	case FormatTOML:
		return parseTOML(content)
	case FormatYAML:
		return parseYAML(content)
	case FormatPlain:
		return parsePlain(content)
	default:
		return nil, fmt.Errorf("parser: unknown format %v", format)
	}
}
