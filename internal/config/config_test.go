package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// validCfg returns a fully-valid Config for mutation testing.
func validCfg() *Config {
	return &Config{
		Namespaces: NamespacesConfig{Instances: "https://example.org/meds-data/"},
		Convert: ConvertConfig{
			IncludeMetadata: true,
			FactClass:       "measurement",
		},
		Output: OutputConfig{Format: "turtle", Path: "-"},
		Neo4j: Neo4jConfig{
			User:           "neo4j",
			TimeoutSeconds: 10,
			MaxPoolSize:    50,
			BatchSize:      1000,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestValidate_ValidConfigPasses(t *testing.T) {
	if err := validCfg().Validate(); err != nil {
		t.Fatalf("expected valid config, got: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantKey string
	}{
		{"empty instances", func(c *Config) { c.Namespaces.Instances = "" }, "namespaces.instances"},
		{"instances without separator", func(c *Config) { c.Namespaces.Instances = "https://example.org/data" }, "namespaces.instances"},
		{"bad fact class", func(c *Config) { c.Convert.FactClass = "observation" }, "fact_class"},
		{"bad format", func(c *Config) { c.Output.Format = "csv" }, "output.format"},
		{"empty path", func(c *Config) { c.Output.Path = "" }, "output.path"},
		{"zero timeout", func(c *Config) { c.Neo4j.TimeoutSeconds = 0 }, "timeout_seconds"},
		{"zero pool", func(c *Config) { c.Neo4j.MaxPoolSize = 0 }, "max_pool_size"},
		{"zero batch", func(c *Config) { c.Neo4j.BatchSize = 0 }, "batch_size"},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validCfg()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantKey) {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidate_FormatAliases(t *testing.T) {
	for _, f := range []string{"ttl", "nt", "json-ld", "xml", "JSONLD"} {
		cfg := validCfg()
		cfg.Output.Format = f
		if err := cfg.Validate(); err != nil {
			t.Errorf("format %q: %v", f, err)
		}
	}
}

func TestLoad_DefaultsFromMissingFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Path != "-" || cfg.Output.Format != "turtle" {
		t.Fatalf("unexpected output defaults: %+v", cfg.Output)
	}
	if !cfg.Convert.IncludeLabels || cfg.Convert.SkipInvalid {
		t.Fatalf("unexpected convert defaults: %+v", cfg.Convert)
	}
	if cfg.Neo4j.BatchSize != DefaultNeo4jBatchSize {
		t.Fatalf("batch size = %d", cfg.Neo4j.BatchSize)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meds2rdf.yaml")
	content := `
convert:
  fact_class: event
  include_labels: false
output:
  format: nt
  path: out.nt
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MEDS2RDF_OUTPUT_PATH", "gs://bucket/graph.nt")
	t.Setenv("MEDS2RDF_NEO4J_PASSWORD", "s3cret-pass")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Convert.FactClass != "event" || cfg.Convert.IncludeLabels {
		t.Fatalf("file values not applied: %+v", cfg.Convert)
	}
	if cfg.Output.Path != "gs://bucket/graph.nt" {
		t.Fatalf("env override not applied: %q", cfg.Output.Path)
	}
	if cfg.Neo4j.Password != "s3cret-pass" {
		t.Fatal("password env not applied")
	}
	if strings.Contains(cfg.Neo4j.String(), "s3cret-pass") {
		t.Fatal("password leaked in String()")
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for explicit missing config file")
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("convert:\n  fact_class: observation\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "validating config") {
		t.Fatalf("expected validation error, got %v", err)
	}
}
