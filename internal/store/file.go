package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ajitpratap0/meds2rdf/internal/graph"
	"github.com/ajitpratap0/meds2rdf/internal/serialize"
)

// FileStore writes a serialized graph to a local file or to stdout.
type FileStore struct {
	path   string
	format serialize.Format
	stdout io.Writer
	logger *slog.Logger
}

// NewFileStore creates a file sink. A path of "-" writes to stdout.
func NewFileStore(path string, format serialize.Format, logger *slog.Logger) *FileStore {
	return &FileStore{path: path, format: format, stdout: os.Stdout, logger: logger}
}

// Save serializes g. Files are written to a temporary sibling first and
// renamed into place, so a failed run never leaves a truncated output.
func (f *FileStore) Save(ctx context.Context, g *graph.Graph) error {
	return observe(KindFile, f.save(ctx, g))
}

func (f *FileStore) save(ctx context.Context, g *graph.Graph) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.path == "-" {
		return serialize.Write(f.stdout, g, f.format)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := serialize.Write(tmp, g, f.format); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("renaming to %s: %w", f.path, err)
	}
	f.logger.Info("graph written", "path", f.path, "triples", g.Len(), "format", f.format)
	return nil
}

// Ping checks that the destination directory exists.
func (f *FileStore) Ping(_ context.Context) error {
	if f.path == "-" {
		return nil
	}
	dir := filepath.Dir(f.path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("output directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output directory %s is not a directory", dir)
	}
	return nil
}

// Close is a no-op for the file store.
func (f *FileStore) Close() error {
	return nil
}
