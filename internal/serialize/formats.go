// Package serialize writes a graph in one of the supported RDF syntaxes.
package serialize

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ajitpratap0/meds2rdf/internal/graph"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"

	// FormatXML produces RDF/XML (.rdf) output.
	FormatXML Format = "xml"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string

	// Aliases are alternative names accepted by ParseFormat.
	Aliases []string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatTurtle: {
		Name:        FormatTurtle,
		MIMEType:    "text/turtle",
		Extension:   ".ttl",
		Description: "Turtle - Terse RDF Triple Language",
		Aliases:     []string{"ttl"},
	},
	FormatNTriples: {
		Name:        FormatNTriples,
		MIMEType:    "application/n-triples",
		Extension:   ".nt",
		Description: "N-Triples - Line-based RDF format",
		Aliases:     []string{"nt", "n-triples"},
	},
	FormatJSONLD: {
		Name:        FormatJSONLD,
		MIMEType:    "application/ld+json",
		Extension:   ".jsonld",
		Description: "JSON-LD - JSON for Linked Data",
		Aliases:     []string{"json-ld"},
	},
	FormatXML: {
		Name:        FormatXML,
		MIMEType:    "application/rdf+xml",
		Extension:   ".rdf",
		Description: "RDF/XML - XML syntax for RDF",
		Aliases:     []string{"rdfxml", "rdf/xml", "pretty-xml"},
	},
}

type writeFunc func(w io.Writer, g *graph.Graph) error

var writers = map[Format]writeFunc{
	FormatTurtle:   writeTurtle,
	FormatNTriples: writeNTriples,
	FormatJSONLD:   writeJSONLD,
	FormatXML:      writeRDFXML,
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// Formats returns the supported format names, sorted.
func Formats() []Format {
	out := make([]Format, 0, len(FormatRegistry))
	for f := range FormatRegistry {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseFormat resolves a format name or alias, case-insensitively.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, info := range FormatRegistry {
		if string(f) == name {
			return f, nil
		}
		for _, a := range info.Aliases {
			if a == name {
				return f, nil
			}
		}
	}
	return "", fmt.Errorf("unsupported format: %s", name)
}

// FormatForPath returns the format whose extension matches path.
func FormatForPath(path string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	for f, info := range FormatRegistry {
		if info.Extension == ext {
			return f, true
		}
	}
	return "", false
}

// Write serializes g to w in the given format.
func Write(w io.Writer, g *graph.Graph, format Format) error {
	fn, ok := writers[format]
	if !ok {
		return fmt.Errorf("unsupported format: %s", format)
	}
	bw := bufio.NewWriter(w)
	if err := fn(bw, g); err != nil {
		return fmt.Errorf("writing %s: %w", format, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", format, err)
	}
	return nil
}

// escapeString escapes special characters in strings for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}

// sortedPrefixes returns the bound prefixes in lexical order.
func sortedPrefixes(ns map[string]string) []string {
	keys := make([]string, 0, len(ns))
	for k := range ns {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
