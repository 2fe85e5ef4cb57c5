package serialize

import (
	"io"

	"github.com/cayleygraph/quad/jsonld"

	"github.com/ajitpratap0/meds2rdf/internal/graph"
)

// writeJSONLD writes the graph compacted against its namespace bindings.
func writeJSONLD(w io.Writer, g *graph.Graph) error {
	jw := jsonld.NewWriter(w)
	if ns := g.Namespaces(); len(ns) > 0 {
		ctx := make(map[string]interface{}, len(ns))
		for prefix, iri := range ns {
			ctx[prefix] = iri
		}
		jw.SetLdContext(ctx)
	}
	for _, t := range g.Triples() {
		if err := jw.WriteQuad(t.Quad()); err != nil {
			return err
		}
	}
	return jw.Close()
}
