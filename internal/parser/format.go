// Package parser turns a single quote file's bytes into an ordered list of
// candidate quote strings, per the format detected for that file.
//
// Each parser is a pure function from bytes to candidates; Parse is the
// single dispatch point. There is no plugin registry — the format set is
// closed at five, so an exhaustive switch is clearer than indirection.
package parser

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format identifies one of the five supported quote-file formats.
type Format int

const (
	FormatPlain Format = iota
	FormatJSON
	FormatCSV
	FormatTOML
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "plain"
	}
}

// DetectFormat implements the two-stage detection of spec.md §4.1: an
// explicit, recognized extension wins outright; otherwise content is
// sniffed in the strict priority order json, csv, toml, yaml, plain.
func DetectFormat(name string, content []byte) Format {
	if f, ok := byExtension(name); ok {
		return f
	}
	return sniff(content)
}

func byExtension(name string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON, true
	case ".csv":
		return FormatCSV, true
	case ".toml":
		return FormatTOML, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".txt":
		return FormatPlain, true
	default:
		return FormatPlain, false
	}
}

func sniff(content []byte) Format {
	if looksLikeJSON(content) {
		return FormatJSON
	}
	if looksLikeCSV(content) {
		return FormatCSV
	}
	if looksLikeTOML(content) {
		return FormatTOML
	}
	if looksLikeYAML(content) {
		return FormatYAML
	}
	return FormatPlain
}

func looksLikeJSON(content []byte) bool {
	trimmed := bytes.TrimLeft(content, " \t\r\n")
	if len(trimmed) == 0 {
		return false
	}
	return trimmed[0] == '{' || trimmed[0] == '['
}

func looksLikeCSV(content []byte) bool {
	line := firstNonEmptyLine(content)
	if line == "" {
		return false
	}
	return strings.ContainsAny(line, ",\t")
}

func looksLikeTOML(content []byte) bool {
	for _, line := range lines(content) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			return true
		}
		if strings.Contains(line, " = ") {
			return true
		}
	}
	return false
}

func looksLikeYAML(content []byte) bool {
	trimmed := strings.TrimSpace(string(content))
	if strings.HasPrefix(trimmed, "---") {
		return true
	}
	for _, line := range lines(content) {
		trimmedLine := strings.TrimSpace(line)
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, "#") {
			continue
		}
		if strings.HasPrefix(trimmedLine, "- ") {
			return true
		}
		if idx := strings.Index(trimmedLine, ":"); idx > 0 && !strings.HasPrefix(trimmedLine, "[") {
			return true
		}
	}
	return false
}

func firstNonEmptyLine(content []byte) string {
	for _, line := range lines(content) {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

func lines(content []byte) []string {
	return strings.Split(string(content), "\n")
}
