package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/ajitpratap0/meds2rdf/internal/config"
	"github.com/ajitpratap0/meds2rdf/internal/graph"
	"github.com/ajitpratap0/meds2rdf/internal/serialize"
)

// GCSStore uploads a serialized graph as one Cloud Storage object.
type GCSStore struct {
	client *storage.Client
	bucket string
	object string
	format serialize.Format
	logger *slog.Logger
}

// ParseGCSURL splits gs://bucket/object into its parts.
func ParseGCSURL(raw string) (bucket, object string, err error) {
	rest, ok := strings.CutPrefix(raw, "gs://")
	if !ok {
		return "", "", fmt.Errorf("not a gs:// URL: %q", raw)
	}
	bucket, object, _ = strings.Cut(rest, "/")
	if bucket == "" || object == "" || strings.HasSuffix(object, "/") {
		return "", "", fmt.Errorf("gs:// URL must name a bucket and an object: %q", raw)
	}
	return bucket, object, nil
}

// NewGCSStore creates a Cloud Storage sink for a gs://bucket/object URL.
// A configured emulator host disables authentication.
func NewGCSStore(ctx context.Context, url string, format serialize.Format, cfg config.GCSConfig, logger *slog.Logger) (*GCSStore, error) {
	bucket, object, err := ParseGCSURL(url)
	if err != nil {
		return nil, err
	}

	var opts []option.ClientOption
	if host := strings.TrimRight(strings.TrimSpace(cfg.EmulatorHost), "/"); host != "" {
		_ = os.Setenv("STORAGE_EMULATOR_HOST", host)
		opts = append(opts, option.WithoutAuthentication())
	} else {
		if cfg.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
		}
		opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	logger.Info("object storage initialized", "bucket", bucket, "object", object, "emulator_host", cfg.EmulatorHost)

	return &GCSStore{client: client, bucket: bucket, object: object, format: format, logger: logger}, nil
}

// Save uploads g serialized in the store's format.
func (s *GCSStore) Save(ctx context.Context, g *graph.Graph) error {
	return observe(KindGCS, s.save(ctx, g))
}

func (s *GCSStore) save(ctx context.Context, g *graph.Graph) error {
	w := s.client.Bucket(s.bucket).Object(s.object).NewWriter(ctx)
	if info, ok := serialize.GetFormatInfo(s.format); ok {
		w.ContentType = info.MIMEType
	}
	if err := serialize.Write(w, g, s.format); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}
	s.logger.Info("graph uploaded", "path", "gs://"+s.bucket+"/"+s.object, "triples", g.Len())
	return nil
}

// Ping checks that the bucket exists and is visible to the credentials.
func (s *GCSStore) Ping(ctx context.Context) error {
	if _, err := s.client.Bucket(s.bucket).Attrs(ctx); err != nil {
		return fmt.Errorf("bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Close releases the storage client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}
