// Package converter runs the MEDS tables of one dataset through the entity
// mappers in a fixed order and accumulates a single graph.
package converter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cayleygraph/quad"

	"github.com/ajitpratap0/meds2rdf/internal/graph"
	"github.com/ajitpratap0/meds2rdf/internal/mapping"
	"github.com/ajitpratap0/meds2rdf/internal/metrics"
	"github.com/ajitpratap0/meds2rdf/internal/models"
	"github.com/ajitpratap0/meds2rdf/internal/vocab"
)

// Options selects the optional stages and the error policy.
type Options struct {
	IncludeMetadata bool
	IncludeCodes    bool
	IncludeSplits   bool
	IncludeLabels   bool

	// FactClass is the class minted for data rows.
	FactClass mapping.FactClass

	// SkipInvalid logs and counts failing rows instead of aborting.
	SkipInvalid bool
}

// DefaultOptions includes every table, maps data rows as measurements and
// fails on the first invalid row.
func DefaultOptions() Options {
	return Options{
		IncludeMetadata: true,
		IncludeCodes:    true,
		IncludeSplits:   true,
		IncludeLabels:   true,
		FactClass:       mapping.FactMeasurement,
	}
}

// StageReport summarizes one table stage.
type StageReport struct {
	Table    models.TableKind `json:"table"`
	Rows     int              `json:"rows"`
	Mapped   int              `json:"mapped"`
	Skipped  int              `json:"skipped"`
	Triples  int              `json:"triples"`
	Duration time.Duration    `json:"duration"`
}

// Report summarizes a conversion run.
type Report struct {
	Dataset quad.IRI      `json:"dataset,omitempty"`
	Stages  []StageReport `json:"stages"`

	// MultiValueLabels counts label rows carrying more than one value kind.
	MultiValueLabels int `json:"multi_value_labels"`

	Triples  int           `json:"triples"`
	Duration time.Duration `json:"duration"`
}

// Stage returns the report for table, if that stage ran.
func (r *Report) Stage(table models.TableKind) (StageReport, bool) {
	for _, s := range r.Stages {
		if s.Table == table {
			return s, true
		}
	}
	return StageReport{}, false
}

// Skipped returns the total number of skipped rows.
func (r *Report) Skipped() int {
	n := 0
	for _, s := range r.Stages {
		n += s.Skipped
	}
	return n
}

// Converter maps loaded MEDS tables into a graph.
type Converter struct {
	mapper *mapping.Mapper
	opts   Options
	logger *slog.Logger
}

// New creates a converter.
func New(mapper *mapping.Mapper, opts Options, logger *slog.Logger) *Converter {
	if opts.FactClass == "" {
		opts.FactClass = mapping.FactMeasurement
	}
	return &Converter{mapper: mapper, opts: opts, logger: logger}
}

// Convert maps tables in the order metadata, data, codes, splits, labels.
// The dataset identifier from the metadata stage is passed to later stages
// for provenance links. On error the partial graph is still returned.
func (c *Converter) Convert(ctx context.Context, tables *models.Tables) (*graph.Graph, *Report, error) {
	start := time.Now()
	g := graph.New()
	c.bindPrefixes(g)
	report := &Report{}

	defer func() {
		report.Triples = g.Len()
		report.Duration = time.Since(start)
		metrics.ConversionSeconds.Observe(report.Duration.Seconds())
	}()

	// 1. Dataset metadata
	if c.opts.IncludeMetadata && tables.Metadata != nil {
		before := g.Len()
		report.Dataset = c.mapper.MapDatasetMetadata(g, *tables.Metadata)
		report.Stages = append(report.Stages, StageReport{
			Table: models.TableDatasetMetadata, Rows: 1, Mapped: 1, Triples: g.Len() - before,
		})
		c.record(models.TableDatasetMetadata, 1, 0, g.Len()-before)
	} else {
		c.logger.Debug("skipping stage", "table", models.TableDatasetMetadata)
	}
	dataset := report.Dataset

	// 2. Data
	st, _, err := runStage(ctx, c, g, models.TableData, tables.Data, func(opts ...mapping.TableOption) ([]quad.IRI, error) {
		return c.mapper.MapDataTable(g, tables.Data, c.opts.FactClass, dataset, opts...)
	})
	report.Stages = append(report.Stages, st)
	if err != nil {
		return g, report, err
	}

	// 3. Codes
	if c.opts.IncludeCodes {
		st, _, err := runStage(ctx, c, g, models.TableCodes, tables.Codes, func(opts ...mapping.TableOption) ([]quad.IRI, error) {
			return c.mapper.MapCodeTable(g, tables.Codes, dataset, opts...)
		})
		report.Stages = append(report.Stages, st)
		if err != nil {
			return g, report, err
		}
	}

	// 4. Subject splits
	if c.opts.IncludeSplits {
		st, _, err := runStage(ctx, c, g, models.TableSplits, tables.Splits, func(opts ...mapping.TableOption) ([]quad.IRI, error) {
			return c.mapper.MapSplitTable(g, tables.Splits, opts...)
		})
		report.Stages = append(report.Stages, st)
		if err != nil {
			return g, report, err
		}
	}

	// 5. Labels
	if c.opts.IncludeLabels {
		st, skipped, err := runStage(ctx, c, g, models.TableLabels, tables.Labels, func(opts ...mapping.TableOption) ([]quad.IRI, error) {
			return c.mapper.MapLabelTable(g, tables.Labels, dataset, opts...)
		})
		report.Stages = append(report.Stages, st)
		if err != nil {
			return g, report, err
		}
		for i, row := range tables.Labels {
			if _, ok := skipped[i]; !ok && row.ValueKinds() > 1 {
				report.MultiValueLabels++
			}
		}
		if report.MultiValueLabels > 0 {
			c.logger.Warn("label rows with more than one value kind", "rows", report.MultiValueLabels)
		}
	}

	c.logger.Info("conversion complete", "triples", g.Len(), "skipped", report.Skipped(), "duration", time.Since(start))
	return g, report, nil
}

// bindPrefixes registers the vocabulary prefixes plus one lower-case prefix
// per known ontology so serializers can abbreviate code IRIs.
func (c *Converter) bindPrefixes(g *graph.Graph) {
	for prefix, ns := range vocab.DefaultPrefixes() {
		g.Bind(prefix, ns)
	}
	g.Bind("data", c.mapper.InstanceNamespace())
	r := c.mapper.Resolver()
	for _, o := range r.Ontologies() {
		if base, ok := r.Base(o); ok {
			g.Bind(strings.ToLower(string(o)), base)
		}
	}
}

func (c *Converter) record(table models.TableKind, mapped, skipped, triples int) {
	metrics.RowsMapped.WithLabelValues(string(table)).Add(float64(mapped))
	metrics.RowsSkipped.WithLabelValues(string(table)).Add(float64(skipped))
	metrics.TriplesAdded.WithLabelValues(string(table)).Add(float64(triples))
}

// runStage runs one table loop under the converter's error policy and
// returns the stage report plus the indices of skipped rows.
func runStage[R any](ctx context.Context, c *Converter, g *graph.Graph, table models.TableKind, rows []R, mapTable func(...mapping.TableOption) ([]quad.IRI, error)) (StageReport, map[int]struct{}, error) {
	start := time.Now()
	before := g.Len()
	st := StageReport{Table: table, Rows: len(rows)}
	skipped := map[int]struct{}{}

	if rows == nil {
		c.logger.Debug("table absent", "table", table)
		return st, skipped, nil
	}

	iris, err := mapTable(
		mapping.WithContext(ctx),
		mapping.OnRowError(func(e *mapping.RowError) error {
			if !c.opts.SkipInvalid {
				return e
			}
			c.logger.Warn("skipping invalid row", "table", table, "row", e.Index, "error", e.Err)
			skipped[e.Index] = struct{}{}
			return nil
		}),
	)
	st.Mapped = len(iris)
	st.Skipped = len(skipped)
	st = finish(&st, g, before, start)
	if err != nil {
		var rowErr *mapping.RowError
		if !errors.As(err, &rowErr) {
			err = fmt.Errorf("%s stage: %w", table, err)
		}
		c.record(table, st.Mapped, st.Skipped, st.Triples)
		return st, skipped, err
	}

	c.record(table, st.Mapped, st.Skipped, st.Triples)
	c.logger.Info("table mapped", "table", table, "rows", st.Mapped, "skipped", st.Skipped, "triples", st.Triples)
	return st, skipped, nil
}

func finish(st *StageReport, g *graph.Graph, before int, start time.Time) StageReport {
	st.Triples = g.Len() - before
	st.Duration = time.Since(start)
	return *st
}
