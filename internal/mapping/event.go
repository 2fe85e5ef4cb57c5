package mapping

import (
	"fmt"

	"github.com/cayleygraph/quad"

	"github.com/ajitpratap0/meds2rdf/internal/graph"
	"github.com/ajitpratap0/meds2rdf/internal/models"
	"github.com/ajitpratap0/meds2rdf/internal/vocab"
)

// FactClass selects the class minted for data rows.
type FactClass string

const (
	FactMeasurement FactClass = "measurement"
	FactEvent       FactClass = "event"
)

// ParseFactClass validates a configured fact class name.
func ParseFactClass(s string) (FactClass, error) {
	switch FactClass(s) {
	case FactMeasurement, FactEvent:
		return FactClass(s), nil
	}
	return "", &InvalidValueError{Kind: "fact class", Value: s}
}

func (c FactClass) entity() string {
	if c == FactEvent {
		return "Event"
	}
	return "Measurement"
}

func (c FactClass) class() string {
	if c == FactEvent {
		return vocab.ClassEvent
	}
	return vocab.ClassMeasurement
}

func (c FactClass) path() string {
	if c == FactEvent {
		return vocab.PathEvent
	}
	return vocab.PathMeasurement
}

var factFields = []field[models.DataRow]{
	{Column{"time", vocab.Time, vocab.XSDDateTime}, func(r models.DataRow) Value { return Opt(r.Time) }},
	{Column{"numeric_value", vocab.NumericValue, vocab.XSDDouble}, func(r models.DataRow) Value { return Opt(r.NumericValue) }},
	{Column{"text_value", vocab.TextValue, vocab.XSDString}, func(r models.DataRow) Value { return Opt(r.TextValue) }},
}

// MapEvent maps a data row to a meds:Event resource.
func (m *Mapper) MapEvent(g *graph.Graph, row models.DataRow, dataset quad.IRI) (quad.IRI, error) {
	return m.mapFact(g, row, FactEvent, dataset)
}

// MapMeasurement maps a data row to a meds:Measurement resource.
func (m *Mapper) MapMeasurement(g *graph.Graph, row models.DataRow, dataset quad.IRI) (quad.IRI, error) {
	return m.mapFact(g, row, FactMeasurement, dataset)
}

func (m *Mapper) mapFact(g *graph.Graph, row models.DataRow, class FactClass, dataset quad.IRI) (quad.IRI, error) {
	subjectID, err := mandatory(row.SubjectID, class.entity(), "subject_id")
	if err != nil {
		return "", err
	}
	code, err := mandatory(row.Code, class.entity(), "code")
	if err != nil {
		return "", err
	}

	var b batch
	iri := m.mint.Opaque(class.path())
	b.typed(iri, class.class())

	b.add(iri, vocab.HasSubject, m.subject(&b, subjectID))

	codeIRI, err := m.code(&b, code, "")
	if err != nil {
		return "", fmt.Errorf("%s code: %w", class.entity(), err)
	}
	b.add(iri, vocab.CodeString, stringLiteral(code))
	b.add(iri, vocab.HasCode, codeIRI)

	b.derivedFrom(iri, dataset)
	projectRow(&b, iri, row, factFields)

	b.commit(g)
	return iri, nil
}

// MapDataTable maps every data row as class.
func (m *Mapper) MapDataTable(g *graph.Graph, rows []models.DataRow, class FactClass, dataset quad.IRI, opts ...TableOption) ([]quad.IRI, error) {
	return mapTable(models.TableData, rows, func(row models.DataRow) (quad.IRI, error) {
		return m.mapFact(g, row, class, dataset)
	}, opts)
}
