// Package meds reads the tables of a MEDS dataset directory.
//
// Layout:
//
//	metadata/dataset.json
//	metadata/codes.parquet
//	metadata/subject_splits.parquet
//	data/**/*.parquet
//	labels/**/*.parquet
//
// Any table may be absent. Absent tables are returned as nil without error.
package meds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/parquet-go/parquet-go"
	"golang.org/x/sync/errgroup"

	"github.com/ajitpratap0/meds2rdf/internal/models"
)

// Relative locations of the tables under the dataset root.
const (
	DatasetMetadataFile = "metadata/dataset.json"
	CodesFile           = "metadata/codes.parquet"
	SplitsFile          = "metadata/subject_splits.parquet"
	DataGlob            = "data/**/*.parquet"
	LabelsGlob          = "labels/**/*.parquet"
)

// Reader loads MEDS tables from a dataset root directory.
type Reader struct {
	root   string
	logger *slog.Logger
}

// NewReader creates a reader rooted at dir.
func NewReader(dir string, logger *slog.Logger) *Reader {
	return &Reader{root: dir, logger: logger}
}

// Root returns the dataset root directory.
func (r *Reader) Root() string {
	return r.root
}

// DatasetMetadata reads metadata/dataset.json. It returns nil if the file
// does not exist.
func (r *Reader) DatasetMetadata(ctx context.Context) (*models.DatasetMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(r.root, DatasetMetadataFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		r.logger.Debug("table absent", "table", models.TableDatasetMetadata, "path", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var md models.DatasetMetadata
	if err := json.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &md, nil
}

// Data reads every parquet shard under data/ in lexical path order.
func (r *Reader) Data(ctx context.Context) ([]models.DataRow, error) {
	paths, err := r.glob(DataGlob)
	if err != nil {
		return nil, err
	}
	return readShards[models.DataRow](ctx, r, models.TableData, paths)
}

// Codes reads metadata/codes.parquet.
func (r *Reader) Codes(ctx context.Context) ([]models.CodeRow, error) {
	return readShards[models.CodeRow](ctx, r, models.TableCodes, r.single(CodesFile))
}

// Splits reads metadata/subject_splits.parquet.
func (r *Reader) Splits(ctx context.Context) ([]models.SplitRow, error) {
	return readShards[models.SplitRow](ctx, r, models.TableSplits, r.single(SplitsFile))
}

// Labels reads every parquet file under labels/ in lexical path order.
func (r *Reader) Labels(ctx context.Context) ([]models.LabelRow, error) {
	paths, err := r.glob(LabelsGlob)
	if err != nil {
		return nil, err
	}
	return readShards[models.LabelRow](ctx, r, models.TableLabels, paths)
}

// LoadOptions selects the optional tables Load reads. The data table is
// always read.
type LoadOptions struct {
	Metadata bool
	Codes    bool
	Splits   bool
	Labels   bool
}

// AllTables reads every table.
var AllTables = LoadOptions{Metadata: true, Codes: true, Splits: true, Labels: true}

// Load reads the selected tables concurrently.
func (r *Reader) Load(ctx context.Context, opts LoadOptions) (*models.Tables, error) {
	tables := &models.Tables{}
	g, gctx := errgroup.WithContext(ctx)

	if opts.Metadata {
		g.Go(func() error {
			md, err := r.DatasetMetadata(gctx)
			tables.Metadata = md
			return err
		})
	}
	g.Go(func() error {
		rows, err := r.Data(gctx)
		tables.Data = rows
		return err
	})
	if opts.Codes {
		g.Go(func() error {
			rows, err := r.Codes(gctx)
			tables.Codes = rows
			return err
		})
	}
	if opts.Splits {
		g.Go(func() error {
			rows, err := r.Splits(gctx)
			tables.Splits = rows
			return err
		})
	}
	if opts.Labels {
		g.Go(func() error {
			rows, err := r.Labels(gctx)
			tables.Labels = rows
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading %s: %w", r.root, err)
	}
	return tables, nil
}

// RowCounts reports the number of rows per parquet table from file footers
// without decoding any rows. Absent tables are omitted.
func (r *Reader) RowCounts(ctx context.Context) (map[models.TableKind]int64, error) {
	groups := []struct {
		table models.TableKind
		paths func() ([]string, error)
	}{
		{models.TableData, func() ([]string, error) { return r.glob(DataGlob) }},
		{models.TableCodes, func() ([]string, error) { return r.single(CodesFile), nil }},
		{models.TableSplits, func() ([]string, error) { return r.single(SplitsFile), nil }},
		{models.TableLabels, func() ([]string, error) { return r.glob(LabelsGlob) }},
	}

	counts := make(map[models.TableKind]int64)
	for _, grp := range groups {
		paths, err := grp.paths()
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			n, err := countRows(p)
			if err != nil {
				return nil, err
			}
			counts[grp.table] += n
		}
	}
	return counts, nil
}

func countRows(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return 0, fmt.Errorf("opening parquet %s: %w", path, err)
	}
	return pf.NumRows(), nil
}

// single returns rel as a one-element list if it exists under the root.
func (r *Reader) single(rel string) []string {
	path := filepath.Join(r.root, rel)
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return []string{path}
}

func (r *Reader) glob(pattern string) ([]string, error) {
	paths, err := doublestar.FilepathGlob(filepath.Join(r.root, pattern))
	if err != nil {
		return nil, fmt.Errorf("globbing %s: %w", pattern, err)
	}
	sort.Strings(paths)
	return paths, nil
}

func readShards[T any](ctx context.Context, r *Reader, table models.TableKind, paths []string) ([]T, error) {
	if len(paths) == 0 {
		r.logger.Debug("table absent", "table", table, "path", r.root)
		return nil, nil
	}
	var rows []T
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		shard, err := parquet.ReadFile[T](p)
		if err != nil {
			return nil, fmt.Errorf("reading %s table %s: %w", table, p, err)
		}
		rows = append(rows, shard...)
	}
	r.logger.Debug("table read", "table", table, "rows", len(rows), "files", len(paths))
	return rows, nil
}
