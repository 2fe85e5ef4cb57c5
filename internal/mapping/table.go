package mapping

import (
	"context"

	"github.com/cayleygraph/quad"

	"github.com/ajitpratap0/meds2rdf/internal/models"
)

// CancelCheckInterval is how many rows a table loop maps between context
// checks.
const CancelCheckInterval = 1024

// TableOption tunes a Map*Table loop.
type TableOption func(*tableConfig)

type tableConfig struct {
	ctx     context.Context
	onError func(*RowError) error
}

// WithContext stops the loop with ctx.Err() once ctx is done.
func WithContext(ctx context.Context) TableOption {
	return func(c *tableConfig) { c.ctx = ctx }
}

// OnRowError installs the error policy. f receives every failing row;
// returning nil skips the row and continues, returning an error stops the
// loop with that error. Without a policy the loop stops at the first
// failing row and returns its *RowError.
func OnRowError(f func(*RowError) error) TableOption {
	return func(c *tableConfig) { c.onError = f }
}

// mapTable maps rows in order and returns the identifiers of the rows that
// were mapped. A failing row adds nothing to the graph.
func mapTable[R any](table models.TableKind, rows []R, mapRow func(R) (quad.IRI, error), opts []TableOption) ([]quad.IRI, error) {
	cfg := tableConfig{
		ctx:     context.Background(),
		onError: func(e *RowError) error { return e },
	}
	for _, o := range opts {
		o(&cfg)
	}

	iris := make([]quad.IRI, 0, len(rows))
	for i := range rows {
		if i%CancelCheckInterval == 0 {
			if err := cfg.ctx.Err(); err != nil {
				return iris, err
			}
		}
		iri, err := mapRow(rows[i])
		if err != nil {
			if err := cfg.onError(&RowError{Table: table, Index: i, Err: err}); err != nil {
				return iris, err
			}
			continue
		}
		iris = append(iris, iri)
	}
	return iris, nil
}
