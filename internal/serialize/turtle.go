package serialize

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/cayleygraph/quad"

	"github.com/ajitpratap0/meds2rdf/internal/graph"
	"github.com/ajitpratap0/meds2rdf/internal/vocab"
)

// localNamePattern is the subset of Turtle PN_LOCAL written unescaped.
var localNamePattern = regexp.MustCompile(`^([A-Za-z0-9_]([A-Za-z0-9_.-]*[A-Za-z0-9_-])?)?$`)

// TurtleWriter writes RDF in Turtle format, abbreviating IRIs with the
// bound prefixes.
type TurtleWriter struct {
	w        io.Writer
	prefixes map[string]string
	err      error
}

// NewTurtleWriter creates a new Turtle writer with the given prefixes.
func NewTurtleWriter(w io.Writer, prefixes map[string]string) *TurtleWriter {
	return &TurtleWriter{w: w, prefixes: prefixes}
}

func (tw *TurtleWriter) printf(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.w, format, args...)
}

// WritePrefixes writes prefix declarations.
func (tw *TurtleWriter) WritePrefixes() {
	// Sort prefixes for consistent output
	for _, prefix := range sortedPrefixes(tw.prefixes) {
		tw.printf("@prefix %s: <%s> .\n", prefix, tw.prefixes[prefix])
	}
	tw.printf("\n")
}

// WriteSubject writes one subject block with its predicate-object pairs.
func (tw *TurtleWriter) WriteSubject(subject quad.IRI, triples []graph.Triple) {
	tw.printf("%s\n", tw.Term(subject))
	for i, t := range triples {
		terminator := " ;"
		if i == len(triples)-1 {
			terminator = " ."
		}
		pred := tw.Term(t.Predicate)
		if t.Predicate == vocab.RDFType {
			pred = "a"
		}
		tw.printf("    %s %s%s\n", pred, tw.Term(t.Object), terminator)
	}
	tw.printf("\n")
}

// Term formats a node or literal in Turtle syntax.
func (tw *TurtleWriter) Term(v quad.Value) string {
	switch t := v.(type) {
	case quad.IRI:
		return tw.iri(string(t))
	case quad.BNode:
		return "_:" + string(t)
	case quad.String:
		return `"` + escapeString(string(t)) + `"`
	case quad.LangString:
		return `"` + escapeString(string(t.Value)) + `"@` + t.Lang
	case quad.TypedString:
		return `"` + escapeString(string(t.Value)) + `"^^` + tw.iri(string(t.Type))
	case nil:
		return `""`
	default:
		return v.String()
	}
}

// iri abbreviates s with the longest matching namespace, or writes it in
// angle brackets.
func (tw *TurtleWriter) iri(s string) string {
	best, bestNS := "", ""
	for prefix, ns := range tw.prefixes {
		if ns == "" || !strings.HasPrefix(s, ns) || !localNamePattern.MatchString(s[len(ns):]) {
			continue
		}
		if len(ns) > len(bestNS) || (len(ns) == len(bestNS) && prefix < best) {
			best, bestNS = prefix, ns
		}
	}
	if bestNS == "" {
		return "<" + s + ">"
	}
	return best + ":" + s[len(bestNS):]
}

// Err returns the first write error.
func (tw *TurtleWriter) Err() error {
	return tw.err
}

// writeTurtle writes prefixes then one block per subject, subjects and
// their predicates in insertion order.
func writeTurtle(w io.Writer, g *graph.Graph) error {
	tw := NewTurtleWriter(w, g.Namespaces())
	tw.WritePrefixes()

	bySubject := make(map[quad.IRI][]graph.Triple)
	var order []quad.IRI
	for _, t := range g.Triples() {
		if _, seen := bySubject[t.Subject]; !seen {
			order = append(order, t.Subject)
		}
		bySubject[t.Subject] = append(bySubject[t.Subject], t)
	}
	for _, s := range order {
		tw.WriteSubject(s, bySubject[s])
	}
	return tw.Err()
}
