package mapping

import (
	"github.com/cayleygraph/quad"

	"github.com/ajitpratap0/meds2rdf/internal/graph"
	"github.com/ajitpratap0/meds2rdf/internal/models"
	"github.com/ajitpratap0/meds2rdf/internal/vocab"
)

// Value kinds are projected independently: a row carrying several of them
// yields one assertion per kind.
var labelFields = []field[models.LabelRow]{
	{Column{"description", vocab.CodeDescription, vocab.XSDString}, func(r models.LabelRow) Value { return Opt(r.Description) }},
	{Column{"prediction_time", vocab.PredictionTime, vocab.XSDDateTime}, func(r models.LabelRow) Value { return Opt(r.PredictionTime) }},
	{Column{"boolean_value", vocab.BooleanValue, vocab.XSDBoolean}, func(r models.LabelRow) Value { return Opt(r.BooleanValue) }},
	{Column{"integer_value", vocab.IntegerValue, vocab.XSDInt}, func(r models.LabelRow) Value { return Opt(r.IntegerValue) }},
	{Column{"float_value", vocab.FloatValue, vocab.XSDDouble}, func(r models.LabelRow) Value { return Opt(r.FloatValue) }},
	{Column{"categorical_value", vocab.CategoricalValue, vocab.XSDString}, func(r models.LabelRow) Value { return Opt(r.CategoricalValue) }},
}

// MapLabel maps a label row to a meds:LabelSample resource.
func (m *Mapper) MapLabel(g *graph.Graph, row models.LabelRow, dataset quad.IRI) (quad.IRI, error) {
	subjectID, err := mandatory(row.SubjectID, "Label", "subject_id")
	if err != nil {
		return "", err
	}

	var b batch
	iri := m.mint.Opaque(vocab.PathLabelSample)
	b.typed(iri, vocab.ClassLabelSample)
	b.add(iri, vocab.HasSubject, m.subject(&b, subjectID))
	projectRow(&b, iri, row, labelFields)
	b.derivedFrom(iri, dataset)

	b.commit(g)
	return iri, nil
}

// MapLabelTable maps every label row.
func (m *Mapper) MapLabelTable(g *graph.Graph, rows []models.LabelRow, dataset quad.IRI, opts ...TableOption) ([]quad.IRI, error) {
	return mapTable(models.TableLabels, rows, func(row models.LabelRow) (quad.IRI, error) {
		return m.MapLabel(g, row, dataset)
	}, opts)
}
