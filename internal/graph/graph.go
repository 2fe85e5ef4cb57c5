// Package graph provides the triple accumulator shared by every mapper in a
// conversion run.
package graph

import (
	"sync"

	"github.com/cayleygraph/quad"

	"github.com/ajitpratap0/meds2rdf/internal/vocab"
)

// Triple is a single (subject, predicate, object) assertion.
// Subjects and predicates are always IRIs; objects are IRIs or typed literals.
type Triple struct {
	Subject   quad.IRI
	Predicate quad.IRI
	Object    quad.Value
}

// Quad returns the triple as a quad in the default graph.
func (t Triple) Quad() quad.Quad {
	return quad.Quad{Subject: t.Subject, Predicate: t.Predicate, Object: t.Object}
}

func (t Triple) key() string {
	return t.Subject.String() + " " + t.Predicate.String() + " " + t.Object.String()
}

// Graph is a set of triples. Adding a triple that is already present is a
// no-op. Enumeration follows first-insertion order so serialized output is
// stable for a given input, but callers must not depend on it for meaning.
type Graph struct {
	mu       sync.RWMutex
	index    map[string]int
	triples  []Triple
	prefixes map[string]string
}

// New creates an empty graph bound to the default MEDS prefixes.
func New() *Graph {
	return &Graph{
		index:    make(map[string]int),
		prefixes: vocab.DefaultPrefixes(),
	}
}

// Add inserts a triple and reports whether it was new.
func (g *Graph) Add(s, p quad.IRI, o quad.Value) bool {
	return g.AddAll(Triple{Subject: s, Predicate: p, Object: o}) == 1
}

// AddAll inserts every triple and returns how many were new.
func (g *Graph) AddAll(triples ...Triple) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	added := 0
	for _, t := range triples {
		k := t.key()
		if _, ok := g.index[k]; ok {
			continue
		}
		g.index[k] = len(g.triples)
		g.triples = append(g.triples, t)
		added++
	}
	return added
}

// Has reports whether the exact triple is present.
func (g *Graph) Has(s, p quad.IRI, o quad.Value) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.index[Triple{Subject: s, Predicate: p, Object: o}.key()]
	return ok
}

// Len returns the number of distinct triples.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.triples)
}

// Triples returns a copy of all triples in insertion order.
func (g *Graph) Triples() []Triple {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Triple, len(g.triples))
	copy(out, g.triples)
	return out
}

// Match returns the triples matching the pattern. An empty IRI or a nil
// object acts as a wildcard.
func (g *Graph) Match(s, p quad.IRI, o quad.Value) []Triple {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []Triple
	for _, t := range g.triples {
		if s != "" && t.Subject != s {
			continue
		}
		if p != "" && t.Predicate != p {
			continue
		}
		if o != nil && t.Object.String() != o.String() {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Subjects returns the distinct subjects in first-seen order.
func (g *Graph) Subjects() []quad.IRI {
	g.mu.RLock()
	defer g.mu.RUnlock()
	seen := make(map[quad.IRI]struct{})
	var out []quad.IRI
	for _, t := range g.triples {
		if _, ok := seen[t.Subject]; ok {
			continue
		}
		seen[t.Subject] = struct{}{}
		out = append(out, t.Subject)
	}
	return out
}

// Bind registers a namespace prefix used by serializers.
func (g *Graph) Bind(prefix, namespace string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prefixes[prefix] = namespace
}

// Namespaces returns a copy of the prefix bindings.
func (g *Graph) Namespaces() map[string]string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make(map[string]string, len(g.prefixes))
	for k, v := range g.prefixes {
		out[k] = v
	}
	return out
}
