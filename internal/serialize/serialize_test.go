package serialize

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/meds2rdf/internal/graph"
	"github.com/ajitpratap0/meds2rdf/internal/vocab"
)

const (
	subject1    = quad.IRI(vocab.InstanceNamespace + "subject/1")
	measurement = quad.IRI(vocab.InstanceNamespace + "measurement/m1")
)

func sampleGraph() *graph.Graph {
	g := graph.New()
	for prefix, ns := range vocab.DefaultPrefixes() {
		g.Bind(prefix, ns)
	}
	str := func(s string) quad.TypedString { return quad.TypedString{Value: quad.String(s), Type: vocab.XSDString} }
	g.Add(subject1, vocab.RDFType, quad.IRI(vocab.ClassSubject))
	g.Add(subject1, vocab.SubjectID, str("1"))
	g.Add(measurement, vocab.RDFType, quad.IRI(vocab.ClassMeasurement))
	g.Add(measurement, vocab.HasSubject, subject1)
	g.Add(measurement, vocab.TextValue, str("a \"quoted\"\nline <&>"))
	return g
}

func render(t *testing.T, g *graph.Graph, f Format) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, g, f))
	return buf.String()
}

func TestTurtle(t *testing.T) {
	out := render(t, sampleGraph(), FormatTurtle)

	assert.Contains(t, out, "@prefix meds: <https://albertomarfoglia.github.io/meds-ontology#> .\n")
	assert.Contains(t, out, "@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .\n")
	assert.Contains(t, out, "<https://albertomarfoglia.github.io/meds-data/subject/1>\n    a meds:Subject ;\n    meds:subjectId \"1\"^^xsd:string .\n")
	assert.Contains(t, out, "    meds:hasSubject <https://albertomarfoglia.github.io/meds-data/subject/1> ;\n")
	assert.Contains(t, out, `meds:textValue "a \"quoted\"\nline <&>"^^xsd:string .`)

	// Subjects appear in insertion order.
	assert.Less(t, strings.Index(out, "subject/1>\n"), strings.Index(out, "measurement/m1>\n"))
}

func TestTurtle_PrefixedLocalNames(t *testing.T) {
	g := graph.New()
	g.Bind("data", vocab.InstanceNamespace)
	g.Bind("subj", vocab.InstanceNamespace+"subject/")
	g.Add(subject1, quad.IRI("http://example.org/p"), quad.String("plain"))

	out := render(t, g, FormatTurtle)
	assert.Contains(t, out, "subj:1\n    <http://example.org/p> \"plain\" .\n")
}

func TestTurtleWriter_Term(t *testing.T) {
	tw := NewTurtleWriter(io.Discard, map[string]string{"ex": "http://example.org/"})

	assert.Equal(t, "ex:a", tw.Term(quad.IRI("http://example.org/a")))
	assert.Equal(t, "<http://example.org/a/b>", tw.Term(quad.IRI("http://example.org/a/b")))
	assert.Equal(t, "_:b0", tw.Term(quad.BNode("b0")))
	assert.Equal(t, `"hi"@en`, tw.Term(quad.LangString{Value: "hi", Lang: "en"}))
	assert.Equal(t, `"5"^^<http://www.w3.org/2001/XMLSchema#int>`, tw.Term(quad.TypedString{Value: "5", Type: vocab.XSDInt}))
}

func TestNTriples(t *testing.T) {
	g := sampleGraph()
	out := render(t, g, FormatNTriples)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, g.Len())
	assert.Equal(t,
		"<https://albertomarfoglia.github.io/meds-data/subject/1> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <https://albertomarfoglia.github.io/meds-ontology#Subject> .",
		lines[0])
	assert.Contains(t, lines[1], `"1"^^<http://www.w3.org/2001/XMLSchema#string> .`)
	for _, l := range lines {
		assert.True(t, strings.HasSuffix(l, " ."), l)
	}
}

func TestJSONLD(t *testing.T) {
	out := render(t, sampleGraph(), FormatJSONLD)

	assert.True(t, json.Valid([]byte(out)), out)
	assert.Contains(t, out, "subject/1")
	assert.Contains(t, out, "@context")
}

func TestRDFXML(t *testing.T) {
	out := render(t, sampleGraph(), FormatXML)

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="utf-8"?>`))
	assert.Contains(t, out, `xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"`)
	assert.Contains(t, out, `xmlns:meds="https://albertomarfoglia.github.io/meds-ontology#"`)
	assert.Contains(t, out, `<rdf:Description rdf:about="https://albertomarfoglia.github.io/meds-data/subject/1">`)
	assert.Contains(t, out, `<rdf:type rdf:resource="https://albertomarfoglia.github.io/meds-ontology#Subject"/>`)
	assert.Contains(t, out, `<meds:subjectId rdf:datatype="http://www.w3.org/2001/XMLSchema#string">1</meds:subjectId>`)
	assert.NotContains(t, out, "xmlns:dcat", "unused namespaces are not declared")

	// Well-formed, and the escaped text decodes back to the original.
	dec := xml.NewDecoder(strings.NewReader(out))
	var texts []string
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		if cd, ok := tok.(xml.CharData); ok && strings.TrimSpace(string(cd)) != "" {
			texts = append(texts, string(cd))
		}
	}
	assert.Contains(t, texts, "a \"quoted\"\nline <&>")
}

func TestRDFXML_GeneratedNamespace(t *testing.T) {
	g := graph.New()
	g.Add(subject1, quad.IRI("http://example.org/vocab#knows"), quad.String("x"))

	out := render(t, g, FormatXML)
	assert.Contains(t, out, `xmlns:ns1="http://example.org/vocab#"`)
	assert.Contains(t, out, `<ns1:knows>x</ns1:knows>`)
}

func TestRDFXML_GeneratedNamespaceSkipsBoundPrefix(t *testing.T) {
	g := graph.New()
	g.Bind("ns1", "http://example.org/a#")
	g.Add(subject1, quad.IRI("http://example.org/a#likes"), quad.String("y"))
	g.Add(subject1, quad.IRI("http://example.org/vocab#knows"), quad.String("x"))

	out := render(t, g, FormatXML)
	assert.Contains(t, out, `xmlns:ns1="http://example.org/a#"`)
	assert.Contains(t, out, `xmlns:ns2="http://example.org/vocab#"`)
	assert.Contains(t, out, `<ns1:likes>y</ns1:likes>`)
	assert.Contains(t, out, `<ns2:knows>x</ns2:knows>`)
}

func TestRDFXML_UnsplittablePredicate(t *testing.T) {
	g := graph.New()
	g.Add(subject1, quad.IRI("http://example.org/vocab/"), quad.String("x"))

	err := Write(io.Discard, g, FormatXML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "qualified name")
}

func TestWrite_EmptyGraph(t *testing.T) {
	for _, f := range Formats() {
		t.Run(string(f), func(t *testing.T) {
			assert.NoError(t, Write(io.Discard, graph.New(), f))
		})
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(io.Discard, graph.New(), Format("n3"))
	assert.EqualError(t, err, "unsupported format: n3")
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"turtle":   FormatTurtle,
		"TTL":      FormatTurtle,
		"nt":       FormatNTriples,
		"json-ld":  FormatJSONLD,
		"xml":      FormatXML,
		"rdf/xml ": FormatXML,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("csv")
	assert.Error(t, err)
}

func TestFormatForPath(t *testing.T) {
	f, ok := FormatForPath("out/graph.NT")
	require.True(t, ok)
	assert.Equal(t, FormatNTriples, f)

	_, ok = FormatForPath("graph.txt")
	assert.False(t, ok)
}

func TestFormatRegistryCoversWriters(t *testing.T) {
	for f := range writers {
		info, ok := GetFormatInfo(f)
		require.True(t, ok, f)
		assert.Equal(t, f, info.Name)
		assert.NotEmpty(t, info.MIMEType)
	}
	assert.Len(t, FormatRegistry, len(writers))
}
