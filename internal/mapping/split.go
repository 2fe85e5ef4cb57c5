package mapping

import (
	"github.com/cayleygraph/quad"

	"github.com/ajitpratap0/meds2rdf/internal/graph"
	"github.com/ajitpratap0/meds2rdf/internal/models"
	"github.com/ajitpratap0/meds2rdf/internal/vocab"
)

// Split is one of the three subject split categories.
type Split string

const (
	SplitTrain   Split = "train"
	SplitTuning  Split = "tuning"
	SplitHeldOut Split = "held_out"
)

var splitIRIs = map[Split]quad.IRI{
	SplitTrain:   vocab.TrainSplit,
	SplitTuning:  vocab.TuningSplit,
	SplitHeldOut: vocab.HeldOutSplit,
}

// IRI returns the category resource for s.
func (s Split) IRI() (quad.IRI, bool) {
	iri, ok := splitIRIs[s]
	return iri, ok
}

// MapSplit asserts meds:assignedSplit from the subject to its category and
// returns the category IRI.
func (m *Mapper) MapSplit(g *graph.Graph, row models.SplitRow) (quad.IRI, error) {
	subjectID, err := mandatory(row.SubjectID, "SubjectSplit", "subject_id")
	if err != nil {
		return "", err
	}
	name, err := mandatory(row.Split, "SubjectSplit", "split")
	if err != nil {
		return "", err
	}
	splitIRI, ok := Split(name).IRI()
	if !ok {
		return "", &InvalidValueError{Kind: "split name", Value: name}
	}

	var b batch
	b.add(m.subject(&b, subjectID), vocab.AssignedSplit, splitIRI)
	b.commit(g)
	return splitIRI, nil
}

// MapSplitTable maps every split row.
func (m *Mapper) MapSplitTable(g *graph.Graph, rows []models.SplitRow, opts ...TableOption) ([]quad.IRI, error) {
	return mapTable(models.TableSplits, rows, func(row models.SplitRow) (quad.IRI, error) {
		return m.MapSplit(g, row)
	}, opts)
}
