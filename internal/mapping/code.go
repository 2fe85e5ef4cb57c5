package mapping

import (
	"fmt"

	"github.com/cayleygraph/quad"

	"github.com/ajitpratap0/meds2rdf/internal/graph"
	"github.com/ajitpratap0/meds2rdf/internal/models"
	"github.com/ajitpratap0/meds2rdf/internal/vocab"
)

var codeFields = []field[models.CodeRow]{
	{Column{"description", vocab.CodeDescription, vocab.XSDString}, func(r models.CodeRow) Value { return Opt(r.Description) }},
}

// MapCode maps one row of the codes table to a Code resource. Each parent
// code is linked with meds:parentCode and receives only its identity and
// code string; it is described fully only if it has its own row.
func (m *Mapper) MapCode(g *graph.Graph, row models.CodeRow, dataset quad.IRI) (quad.IRI, error) {
	code, err := mandatory(row.Code, "Code", "code")
	if err != nil {
		return "", err
	}

	var b batch
	iri, err := m.code(&b, code, dataset)
	if err != nil {
		return "", err
	}
	projectRow(&b, iri, row, codeFields)

	for _, parent := range List(row.ParentCodes).Items() {
		parentIRI, err := m.code(&b, Text(parent), "")
		if err != nil {
			return "", fmt.Errorf("parent of %q: %w", code, err)
		}
		b.add(iri, vocab.ParentCode, parentIRI)
	}

	b.commit(g)
	return iri, nil
}

// MapCodeTable maps every row in order. By default it stops at the first
// error; see OnRowError.
func (m *Mapper) MapCodeTable(g *graph.Graph, rows []models.CodeRow, dataset quad.IRI, opts ...TableOption) ([]quad.IRI, error) {
	return mapTable(models.TableCodes, rows, func(row models.CodeRow) (quad.IRI, error) {
		return m.MapCode(g, row, dataset)
	}, opts)
}
