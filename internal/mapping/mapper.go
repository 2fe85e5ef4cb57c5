// Package mapping turns typed MEDS rows into RDF triples.
//
// Every mapper validates mandatory fields first and collects its triples in
// a local batch that is committed to the graph only when the row maps
// successfully, so a failing row leaves the graph untouched.
package mapping

import (
	"strconv"

	"github.com/cayleygraph/quad"

	"github.com/ajitpratap0/meds2rdf/internal/graph"
	"github.com/ajitpratap0/meds2rdf/internal/vocab"
)

// Mapper holds the identifier minter and ontology resolver shared by the
// entity mappers. It is safe for concurrent use if the ID generator is.
type Mapper struct {
	mint     Minter
	base     string
	newID    func() string
	resolver *Resolver
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithIDGenerator replaces random UUIDs for opaque identifiers.
func WithIDGenerator(f func() string) Option {
	return func(m *Mapper) { m.newID = f }
}

// WithInstanceNamespace sets the base IRI for minted instances.
func WithInstanceNamespace(base string) Option {
	return func(m *Mapper) { m.base = base }
}

// WithResolver sets the ontology resolver used for code references.
func WithResolver(r *Resolver) Option {
	return func(m *Mapper) { m.resolver = r }
}

// New creates a Mapper. Defaults: vocab.InstanceNamespace, random UUIDs,
// and the built-in BioPortal prefix table.
func New(opts ...Option) *Mapper {
	m := &Mapper{base: vocab.InstanceNamespace}
	for _, opt := range opts {
		opt(m)
	}
	if m.resolver == nil {
		m.resolver = NewResolver(nil)
	}
	m.mint = NewMinter(m.base, m.newID)
	return m
}

// Resolver returns the ontology resolver in use.
func (m *Mapper) Resolver() *Resolver {
	return m.resolver
}

// InstanceNamespace returns the base IRI of minted instances.
func (m *Mapper) InstanceNamespace() string {
	return m.base
}

// SubjectIRI returns the content-derived identifier of a subject.
func (m *Mapper) SubjectIRI(subjectID int64) quad.IRI {
	return m.mint.Content(vocab.PathSubject, strconv.FormatInt(subjectID, 10))
}

// CodeIRI returns the identifier of a code: an external IRI for a known
// "PREFIX:LOCAL" reference, otherwise a content-derived internal IRI.
func (m *Mapper) CodeIRI(code string) (quad.IRI, error) {
	iri, external, err := m.resolver.Resolve(code)
	if err != nil {
		return "", err
	}
	if external {
		return iri, nil
	}
	return m.mint.Content(vocab.PathCode, code), nil
}

// batch collects one row's triples before they are committed.
type batch []graph.Triple

func (b *batch) add(s, p quad.IRI, o quad.Value) {
	*b = append(*b, graph.Triple{Subject: s, Predicate: p, Object: o})
}

func (b *batch) assert(s quad.IRI, as []Assertion) {
	for _, a := range as {
		b.add(s, a.Predicate, a.Object)
	}
}

func (b *batch) typed(s quad.IRI, class string) {
	b.add(s, vocab.RDFType, quad.IRI(class))
}

func (b *batch) derivedFrom(s, dataset quad.IRI) {
	if dataset != "" {
		b.add(s, vocab.ProvWasDerivedFrom, dataset)
	}
}

func (b batch) commit(g *graph.Graph) {
	g.AddAll(b...)
}

func stringLiteral(s string) quad.TypedString {
	return quad.TypedString{Value: quad.String(s), Type: vocab.XSDString}
}

// subject asserts the subject's type and raw identifier. Every mapper that
// references a subject calls this; repeats are no-ops in the graph.
func (m *Mapper) subject(b *batch, subjectID int64) quad.IRI {
	iri := m.SubjectIRI(subjectID)
	b.typed(iri, vocab.ClassSubject)
	b.add(iri, vocab.SubjectID, stringLiteral(strconv.FormatInt(subjectID, 10)))
	return iri
}

// code asserts a code's identity and code string, plus provenance when
// dataset is set.
func (m *Mapper) code(b *batch, code string, dataset quad.IRI) (quad.IRI, error) {
	iri, err := m.CodeIRI(code)
	if err != nil {
		return "", err
	}
	b.typed(iri, vocab.ClassCode)
	b.add(iri, vocab.CodeString, stringLiteral(code))
	b.derivedFrom(iri, dataset)
	return iri, nil
}

func mandatory[T any](p *T, entity, field string) (T, error) {
	if p == nil {
		var zero T
		return zero, &MissingFieldError{Entity: entity, Field: field}
	}
	return *p, nil
}
