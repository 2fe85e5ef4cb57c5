package serialize

import (
	"fmt"
	"io"

	"github.com/cayleygraph/quad"

	"github.com/ajitpratap0/meds2rdf/internal/graph"
	"github.com/ajitpratap0/meds2rdf/internal/vocab"
	"github.com/ajitpratap0/meds2rdf/pkg/xmlutil"
)

// qnames assigns XML prefixes to predicate namespaces, reusing the graph's
// bindings and generating ns1, ns2, ... for the rest.
type qnames struct {
	byNS      map[string]string
	taken     map[string]bool
	order     []string
	generated int
}

func newQNames(bound map[string]string) *qnames {
	q := &qnames{
		byNS:  map[string]string{vocab.RDF: "rdf"},
		taken: map[string]bool{"rdf": true},
	}
	q.order = append(q.order, vocab.RDF)
	for _, prefix := range sortedPrefixes(bound) {
		ns := bound[prefix]
		if _, ok := q.byNS[ns]; !ok && !q.taken[prefix] && xmlutil.IsNCName(prefix) {
			q.byNS[ns] = prefix
			q.taken[prefix] = true
		}
	}
	return q
}

func (q *qnames) name(iri quad.IRI) (string, error) {
	ns, local, ok := xmlutil.SplitIRI(string(iri))
	if !ok {
		return "", fmt.Errorf("predicate %s has no XML qualified name", iri)
	}
	prefix, known := q.byNS[ns]
	if !known {
		prefix = q.generate()
		q.byNS[ns] = prefix
	}
	if !q.used(ns) {
		q.order = append(q.order, ns)
	}
	return prefix + ":" + local, nil
}

// generate returns the next free prefix in ns1, ns2, ...
func (q *qnames) generate() string {
	for {
		q.generated++
		prefix := fmt.Sprintf("ns%d", q.generated)
		if !q.taken[prefix] {
			q.taken[prefix] = true
			return prefix
		}
	}
}

func (q *qnames) used(ns string) bool {
	for _, n := range q.order {
		if n == ns {
			return true
		}
	}
	return false
}

// writeRDFXML writes one rdf:Description per subject. Namespaces are
// resolved in a first pass so the root element can declare them.
func writeRDFXML(w io.Writer, g *graph.Graph) error {
	q := newQNames(g.Namespaces())

	type property struct {
		name string
		obj  quad.Value
	}
	bySubject := make(map[quad.IRI][]property)
	var order []quad.IRI
	for _, t := range g.Triples() {
		name, err := q.name(t.Predicate)
		if err != nil {
			return err
		}
		if _, seen := bySubject[t.Subject]; !seen {
			order = append(order, t.Subject)
		}
		bySubject[t.Subject] = append(bySubject[t.Subject], property{name, t.Object})
	}

	var err error
	printf := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	printf("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<rdf:RDF")
	for _, ns := range q.order {
		printf("\n   xmlns:%s=\"%s\"", q.byNS[ns], xmlutil.Escape(ns))
	}
	printf(">\n")

	for _, s := range order {
		printf("  <rdf:Description %s>\n", nodeAttr("rdf:about", s))
		for _, p := range bySubject[s] {
			switch o := p.obj.(type) {
			case quad.IRI:
				printf("    <%s %s/>\n", p.name, nodeAttr("rdf:resource", o))
			case quad.BNode:
				printf("    <%s rdf:nodeID=\"%s\"/>\n", p.name, xmlutil.Escape(string(o)))
			case quad.TypedString:
				printf("    <%s rdf:datatype=\"%s\">%s</%s>\n", p.name, xmlutil.Escape(string(o.Type)), xmlutil.Escape(string(o.Value)), p.name)
			case quad.LangString:
				printf("    <%s xml:lang=\"%s\">%s</%s>\n", p.name, xmlutil.Escape(o.Lang), xmlutil.Escape(string(o.Value)), p.name)
			case quad.String:
				printf("    <%s>%s</%s>\n", p.name, xmlutil.Escape(string(o)), p.name)
			default:
				return fmt.Errorf("unsupported object %T for %s", p.obj, p.name)
			}
		}
		printf("  </rdf:Description>\n")
	}
	printf("</rdf:RDF>\n")
	return err
}

func nodeAttr(attr string, iri quad.IRI) string {
	return fmt.Sprintf("%s=\"%s\"", attr, xmlutil.Escape(string(iri)))
}
