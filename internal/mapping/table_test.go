package mapping

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/meds2rdf/internal/graph"
	"github.com/ajitpratap0/meds2rdf/internal/models"
	"github.com/ajitpratap0/meds2rdf/internal/vocab"
)

func splitRows() []models.SplitRow {
	return []models.SplitRow{
		{SubjectID: models.Ptr(int64(1)), Split: models.Ptr("train")},
		{SubjectID: models.Ptr(int64(2)), Split: models.Ptr("bogus")},
		{SubjectID: models.Ptr(int64(3)), Split: models.Ptr("tuning")},
	}
}

func TestMapTable_SkipPolicyContinues(t *testing.T) {
	g := graph.New()
	var failed []int

	iris, err := newTestMapper().MapSplitTable(g, splitRows(), OnRowError(func(e *RowError) error {
		failed = append(failed, e.Index)
		return nil
	}))
	require.NoError(t, err)
	assert.Len(t, iris, 2)
	assert.Equal(t, []int{1}, failed)
	assert.Len(t, g.Match("", vocab.AssignedSplit, nil), 2)
	assert.Empty(t, g.Match(newTestMapper().SubjectIRI(2), "", nil))
}

func TestMapTable_PolicyErrorStops(t *testing.T) {
	stop := errors.New("stop")

	iris, err := newTestMapper().MapSplitTable(graph.New(), splitRows(), OnRowError(func(*RowError) error {
		return stop
	}))
	assert.ErrorIs(t, err, stop)
	assert.Len(t, iris, 1)
}

func TestMapTable_DefaultPolicyReturnsRowError(t *testing.T) {
	_, err := newTestMapper().MapSplitTable(graph.New(), splitRows())

	var rowErr *RowError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, models.TableSplits, rowErr.Table)
	assert.Equal(t, 1, rowErr.Index)
}

func TestMapTable_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := graph.New()

	iris, err := newTestMapper().MapCodeTable(g, []models.CodeRow{{Code: models.Ptr("A")}}, "", WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, iris)
	assert.Zero(t, g.Len())
}
