package mapping

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/meds2rdf/internal/graph"
	"github.com/ajitpratap0/meds2rdf/internal/models"
	"github.com/ajitpratap0/meds2rdf/internal/vocab"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestMapper() *Mapper {
	return New(WithIDGenerator(sequentialIDs()))
}

func str(v string) quad.TypedString {
	return quad.TypedString{Value: quad.String(v), Type: vocab.XSDString}
}

func instance(path string) quad.IRI {
	return quad.IRI(vocab.InstanceNamespace + path)
}

func TestMapCode_Basic(t *testing.T) {
	g := graph.New()
	m := newTestMapper()

	rows := []models.CodeRow{
		{Code: models.Ptr("CODE1"), Description: models.Ptr("Test code"), ParentCodes: []string{}},
		{Code: models.Ptr("CODE2"), Description: models.Ptr("Child code"), ParentCodes: []string{"ATC:ABC"}},
	}
	iris, err := m.MapCodeTable(g, rows, "")
	require.NoError(t, err)
	require.Len(t, iris, 2)

	code1 := instance("code/CODE1")
	code2 := instance("code/CODE2")
	parent := quad.IRI(BioPortalBases[OntologyATC] + "ABC")

	assert.Equal(t, code1, iris[0])
	assert.True(t, g.Has(code1, vocab.RDFType, quad.IRI(vocab.ClassCode)))
	assert.True(t, g.Has(code1, vocab.CodeString, str("CODE1")))
	assert.True(t, g.Has(code1, vocab.CodeDescription, str("Test code")))
	assert.True(t, g.Has(code2, vocab.ParentCode, parent))
	assert.True(t, g.Has(parent, vocab.CodeString, str("ATC:ABC")))
	assert.Empty(t, g.Match(parent, vocab.CodeDescription, nil), "parents carry no description")
	assert.Empty(t, g.Match(code1, vocab.ParentCode, nil))
}

func TestMapCode_Converges(t *testing.T) {
	g := graph.New()
	m := newTestMapper()
	row := models.CodeRow{Code: models.Ptr("LAB//GLUCOSE")}

	first, err := m.MapCode(g, row, "")
	require.NoError(t, err)
	n := g.Len()
	second, err := m.MapCode(g, row, "")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, n, g.Len())
	assert.Len(t, g.Match("", vocab.RDFType, quad.IRI(vocab.ClassCode)), 1)
	assert.Len(t, g.Match(first, vocab.CodeString, nil), 1)
}

func TestMapCode_MultipleParents(t *testing.T) {
	g := graph.New()
	m := newTestMapper()
	dataset := instance("dataset_metadata/d")

	iri, err := m.MapCode(g, models.CodeRow{
		Code:        models.Ptr("LAB//GLUCOSE"),
		ParentCodes: []string{"ICD10:AAAA", "ICD10:BBB", "LAB//ROOT"},
	}, dataset)
	require.NoError(t, err)

	assert.Len(t, g.Match(iri, vocab.ParentCode, nil), 3)
	assert.True(t, g.Has(iri, vocab.ProvWasDerivedFrom, dataset))
	assert.Empty(t, g.Match(instance("code/LAB//ROOT"), vocab.ProvWasDerivedFrom, nil), "parents carry no provenance")
}

func TestMapCode_ExternalIdentifier(t *testing.T) {
	g := graph.New()
	m := newTestMapper()

	iri, err := m.MapCode(g, models.CodeRow{Code: models.Ptr("ICD10:E11")}, "")
	require.NoError(t, err)
	assert.Equal(t, quad.IRI("http://purl.bioontology.org/ontology/ICD10CM/E11"), iri)
}

func TestMapCode_Errors(t *testing.T) {
	g := graph.New()
	m := newTestMapper()

	_, err := m.MapCode(g, models.CodeRow{Description: models.Ptr("no code")}, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingField))
	assert.Contains(t, err.Error(), "Code")
	assert.Contains(t, err.Error(), "code")

	_, err = m.MapCode(g, models.CodeRow{Code: models.Ptr("BOGUS:X")}, "")
	assert.True(t, errors.Is(err, ErrUnknownPrefix))

	_, err = m.MapCode(g, models.CodeRow{Code: models.Ptr("OK"), ParentCodes: []string{"ATC:A", "BOGUS:Y"}}, "")
	assert.True(t, errors.Is(err, ErrUnknownPrefix))

	assert.Equal(t, 0, g.Len(), "failing rows must not add triples")
}

func TestMapDataTable_Measurements(t *testing.T) {
	g := graph.New()
	m := newTestMapper()
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := []models.DataRow{
		{SubjectID: models.Ptr(int64(1)), Time: &ts, Code: models.Ptr("CODE1"),
			NumericValue: models.Ptr(float32(42)), TextValue: models.Ptr("POS")},
		{SubjectID: models.Ptr(int64(2)), Time: &ts, Code: models.Ptr("CODE2")},
	}
	iris, err := m.MapDataTable(g, rows, FactMeasurement, "")
	require.NoError(t, err)
	require.Len(t, iris, 2)

	subject := instance("subject/1")
	code1 := instance("code/CODE1")

	assert.Equal(t, instance("measurement/id-1"), iris[0])
	assert.True(t, g.Has(iris[0], vocab.RDFType, quad.IRI(vocab.ClassMeasurement)))
	assert.True(t, g.Has(iris[0], vocab.HasSubject, subject))
	assert.True(t, g.Has(subject, vocab.RDFType, quad.IRI(vocab.ClassSubject)))
	assert.True(t, g.Has(subject, vocab.SubjectID, str("1")))
	assert.True(t, g.Has(iris[0], vocab.CodeString, str("CODE1")))
	assert.True(t, g.Has(iris[0], vocab.HasCode, code1))
	assert.True(t, g.Has(code1, vocab.CodeString, str("CODE1")))
	assert.True(t, g.Has(iris[0], vocab.NumericValue, quad.TypedString{Value: "42", Type: vocab.XSDDouble}))
	assert.True(t, g.Has(iris[0], vocab.TextValue, str("POS")))
	assert.True(t, g.Has(iris[0], vocab.Time, quad.TypedString{Value: "2025-01-01T00:00:00Z", Type: vocab.XSDDateTime}))

	assert.Empty(t, g.Match(iris[1], vocab.NumericValue, nil))
	assert.Empty(t, g.Match(iris[1], vocab.TextValue, nil))
	assert.Empty(t, g.Match(iris[0], vocab.ProvWasDerivedFrom, nil))
}

func TestMapEvent_ClassAndProvenance(t *testing.T) {
	g := graph.New()
	m := newTestMapper()
	dataset := instance("dataset_metadata/d")

	iri, err := m.MapEvent(g, models.DataRow{SubjectID: models.Ptr(int64(7)), Code: models.Ptr("DEMOGRAPHICS//GENDER")}, dataset)
	require.NoError(t, err)

	assert.Equal(t, instance("event/id-1"), iri)
	assert.True(t, g.Has(iri, vocab.RDFType, quad.IRI(vocab.ClassEvent)))
	assert.True(t, g.Has(iri, vocab.ProvWasDerivedFrom, dataset))
	assert.Empty(t, g.Match(iri, vocab.Time, nil))
}

func TestMapEvent_RepeatedCodesShareOneNode(t *testing.T) {
	g := graph.New()
	m := newTestMapper()
	row := models.DataRow{SubjectID: models.Ptr(int64(1)), Code: models.Ptr("LAB//GLUCOSE")}

	a, err := m.MapEvent(g, row, "")
	require.NoError(t, err)
	b, err := m.MapEvent(g, row, "")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, g.Match("", vocab.RDFType, quad.IRI(vocab.ClassCode)), 1)
	assert.Len(t, g.Match("", vocab.RDFType, quad.IRI(vocab.ClassSubject)), 1)
	assert.Len(t, g.Match("", vocab.HasCode, instance("code/LAB//GLUCOSE")), 2)
}

func TestMapEvent_MissingMandatory(t *testing.T) {
	g := graph.New()
	m := newTestMapper()

	_, err := m.MapEvent(g, models.DataRow{Code: models.Ptr("X")}, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingField))
	assert.Equal(t, "Event must have field 'subject_id'", err.Error())

	_, err = m.MapMeasurement(g, models.DataRow{SubjectID: models.Ptr(int64(1))}, "")
	assert.Equal(t, "Measurement must have field 'code'", err.Error())

	_, err = m.MapEvent(g, models.DataRow{SubjectID: models.Ptr(int64(1)), Code: models.Ptr("BOGUS:1")}, "")
	assert.True(t, errors.Is(err, ErrUnknownPrefix))

	assert.Equal(t, 0, g.Len())
}

func TestMapDataTable_StopsAtFirstError(t *testing.T) {
	g := graph.New()
	m := newTestMapper()
	rows := []models.DataRow{
		{SubjectID: models.Ptr(int64(1)), Code: models.Ptr("A")},
		{SubjectID: models.Ptr(int64(2))},
		{SubjectID: models.Ptr(int64(3)), Code: models.Ptr("C")},
	}
	iris, err := m.MapDataTable(g, rows, FactEvent, "")
	require.Error(t, err)
	assert.Len(t, iris, 1)

	var rowErr *RowError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, models.TableData, rowErr.Table)
	assert.Equal(t, 1, rowErr.Index)
	assert.True(t, errors.Is(err, ErrMissingField))
}

func TestParseFactClass(t *testing.T) {
	c, err := ParseFactClass("event")
	require.NoError(t, err)
	assert.Equal(t, FactEvent, c)

	_, err = ParseFactClass("observation")
	assert.True(t, errors.Is(err, ErrInvalidValue))
	assert.Contains(t, err.Error(), "observation")
}

func TestMapLabel(t *testing.T) {
	g := graph.New()
	m := newTestMapper()
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	iris, err := m.MapLabelTable(g, []models.LabelRow{
		{SubjectID: models.Ptr(int64(1)), PredictionTime: &ts},
		{SubjectID: models.Ptr(int64(2)), PredictionTime: &ts, BooleanValue: models.Ptr(true)},
	}, "")
	require.NoError(t, err)
	require.Len(t, iris, 2)

	assert.Equal(t, instance("label_sample/id-1"), iris[0])
	assert.Len(t, g.Match(iris[0], vocab.RDFType, quad.IRI(vocab.ClassLabelSample)), 1)
	assert.True(t, g.Has(iris[0], vocab.HasSubject, instance("subject/1")))
	assert.True(t, g.Has(iris[0], vocab.PredictionTime, quad.TypedString{Value: "2025-01-01T00:00:00Z", Type: vocab.XSDDateTime}))
	assert.True(t, g.Has(iris[1], vocab.BooleanValue, quad.TypedString{Value: "true", Type: vocab.XSDBoolean}))
	assert.Empty(t, g.Match(iris[0], vocab.BooleanValue, nil))
}

func TestMapLabel_MultipleValueKindsArePreserved(t *testing.T) {
	g := graph.New()
	m := newTestMapper()

	iri, err := m.MapLabel(g, models.LabelRow{
		SubjectID:        models.Ptr(int64(1)),
		IntegerValue:     models.Ptr(int64(3)),
		FloatValue:       models.Ptr(12.7),
		CategoricalValue: models.Ptr("SEVERE"),
	}, "")
	require.NoError(t, err)

	assert.True(t, g.Has(iri, vocab.IntegerValue, quad.TypedString{Value: "3", Type: vocab.XSDInt}))
	assert.True(t, g.Has(iri, vocab.FloatValue, quad.TypedString{Value: "12.7", Type: vocab.XSDDouble}))
	assert.True(t, g.Has(iri, vocab.CategoricalValue, str("SEVERE")))
}

func TestMapLabel_MissingSubject(t *testing.T) {
	g := graph.New()
	_, err := newTestMapper().MapLabel(g, models.LabelRow{BooleanValue: models.Ptr(true)}, "")
	require.Error(t, err)
	assert.Equal(t, "Label must have field 'subject_id'", err.Error())
	assert.Equal(t, 0, g.Len())
}

func TestMapSplit(t *testing.T) {
	g := graph.New()
	m := newTestMapper()

	_, err := m.MapSplitTable(g, []models.SplitRow{
		{SubjectID: models.Ptr(int64(1)), Split: models.Ptr("train")},
		{SubjectID: models.Ptr(int64(2)), Split: models.Ptr("held_out")},
		{SubjectID: models.Ptr(int64(3)), Split: models.Ptr("tuning")},
	})
	require.NoError(t, err)

	assert.True(t, g.Has(instance("subject/1"), vocab.AssignedSplit, quad.IRI(vocab.TrainSplit)))
	assert.False(t, g.Has(instance("subject/1"), vocab.AssignedSplit, quad.IRI(vocab.TuningSplit)))
	assert.True(t, g.Has(instance("subject/2"), vocab.AssignedSplit, quad.IRI(vocab.HeldOutSplit)))
	assert.True(t, g.Has(instance("subject/3"), vocab.AssignedSplit, quad.IRI(vocab.TuningSplit)))
	assert.True(t, g.Has(instance("subject/3"), vocab.RDFType, quad.IRI(vocab.ClassSubject)))
}

func TestMapSplit_SingleAssignment(t *testing.T) {
	g := graph.New()
	m := newTestMapper()

	iri, err := m.MapSplit(g, models.SplitRow{SubjectID: models.Ptr(int64(7)), Split: models.Ptr("train")})
	require.NoError(t, err)
	assert.Equal(t, quad.IRI(vocab.TrainSplit), iri)
	assert.Len(t, g.Match("", vocab.AssignedSplit, nil), 1)
	assert.True(t, g.Has(instance("subject/7"), vocab.AssignedSplit, quad.IRI(vocab.TrainSplit)))
}

func TestMapSplit_InvalidName(t *testing.T) {
	g := graph.New()
	m := newTestMapper()

	_, err := m.MapSplit(g, models.SplitRow{SubjectID: models.Ptr(int64(7)), Split: models.Ptr("bogus")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidValue))
	assert.Contains(t, err.Error(), "bogus")
	assert.Equal(t, "the given split name 'bogus' is not valid", err.Error())
	assert.Equal(t, 0, g.Len())

	_, err = m.MapSplit(g, models.SplitRow{SubjectID: models.Ptr(int64(7))})
	assert.True(t, errors.Is(err, ErrMissingField))
	assert.Contains(t, err.Error(), "split")
}

func TestSubjectIdentityIsShared(t *testing.T) {
	g := graph.New()
	m := newTestMapper()
	id := models.Ptr(int64(11111111))

	eventIRI, err := m.MapEvent(g, models.DataRow{SubjectID: id, Code: models.Ptr("A")}, "")
	require.NoError(t, err)
	labelIRI, err := m.MapLabel(g, models.LabelRow{SubjectID: id}, "")
	require.NoError(t, err)
	_, err = m.MapSplit(g, models.SplitRow{SubjectID: id, Split: models.Ptr("train")})
	require.NoError(t, err)

	fromEvent := g.Match(eventIRI, vocab.HasSubject, nil)
	fromLabel := g.Match(labelIRI, vocab.HasSubject, nil)
	fromSplit := g.Match("", vocab.AssignedSplit, nil)
	require.Len(t, fromEvent, 1)
	require.Len(t, fromLabel, 1)
	require.Len(t, fromSplit, 1)

	assert.Equal(t, m.SubjectIRI(11111111), fromEvent[0].Object)
	assert.Equal(t, fromEvent[0].Object, fromLabel[0].Object)
	assert.Equal(t, fromEvent[0].Object, quad.Value(fromSplit[0].Subject))
}
