package serialize

import (
	"io"

	"github.com/cayleygraph/quad/nquads"

	"github.com/ajitpratap0/meds2rdf/internal/graph"
)

// writeNTriples writes one line per triple in insertion order. The triples
// have no graph label, so N-Quads output is N-Triples.
func writeNTriples(w io.Writer, g *graph.Graph) error {
	nw := nquads.NewWriter(w)
	for _, t := range g.Triples() {
		if err := nw.WriteQuad(t.Quad()); err != nil {
			return err
		}
	}
	return nw.Close()
}
