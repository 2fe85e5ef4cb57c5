package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ajitpratap0/meds2rdf/internal/mapping"
	"github.com/ajitpratap0/meds2rdf/internal/serialize"
	"github.com/ajitpratap0/meds2rdf/internal/vocab"
)

const (
	// DefaultNeo4jTimeoutSeconds bounds connecting to Neo4j.
	DefaultNeo4jTimeoutSeconds = 10

	// DefaultNeo4jMaxPoolSize is the driver connection pool size.
	DefaultNeo4jMaxPoolSize = 50

	// DefaultNeo4jBatchSize is the number of rows per UNWIND statement.
	DefaultNeo4jBatchSize = 1000
)

// Config holds all configuration for meds2rdf.
type Config struct {
	Namespaces NamespacesConfig `mapstructure:"namespaces"`
	Ontologies OntologiesConfig `mapstructure:"ontologies"`
	Convert    ConvertConfig    `mapstructure:"convert"`
	Output     OutputConfig     `mapstructure:"output"`
	Neo4j      Neo4jConfig      `mapstructure:"neo4j"`
	GCS        GCSConfig        `mapstructure:"gcs"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// NamespacesConfig holds the base IRI for minted instances.
type NamespacesConfig struct {
	Instances string `mapstructure:"instances"`
}

// OntologiesConfig points at an optional prefix table merged over the
// built-in BioPortal prefixes.
type OntologiesConfig struct {
	PrefixFile string `mapstructure:"prefix_file"`
}

// ConvertConfig selects the conversion stages and the error policy.
type ConvertConfig struct {
	IncludeMetadata bool   `mapstructure:"include_metadata"`
	IncludeCodes    bool   `mapstructure:"include_codes"`
	IncludeSplits   bool   `mapstructure:"include_splits"`
	IncludeLabels   bool   `mapstructure:"include_labels"`
	FactClass       string `mapstructure:"fact_class"`
	SkipInvalid     bool   `mapstructure:"skip_invalid"`
}

// OutputConfig selects the sink and syntax. Path is "-" for stdout, a local
// file, a gs://bucket/object URL, or a neo4j:// or bolt:// URI.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Path   string `mapstructure:"path"`
}

// Neo4jConfig holds Neo4j credentials and driver settings. The URI comes
// from output.path.
type Neo4jConfig struct {
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	Database       string `mapstructure:"database"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxPoolSize    int    `mapstructure:"max_pool_size"`
	BatchSize      int    `mapstructure:"batch_size"`
}

// String returns a safe representation of Neo4jConfig with the password masked.
func (c Neo4jConfig) String() string {
	return fmt.Sprintf("Neo4jConfig{User:%s, Password:%s, Database:%s}", c.User, maskSecret(c.Password), c.Database)
}

// maskSecret shows first 2 + last 2 chars, replacing the middle with asterisks.
func maskSecret(s string) string {
	const visible = 2
	if len(s) <= visible*2 {
		return "***"
	}
	return s[:visible] + "****" + s[len(s)-visible:]
}

// GCSConfig holds Google Cloud Storage client settings.
type GCSConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	EmulatorHost    string `mapstructure:"emulator_host"`
}

// MetricsConfig holds the optional Prometheus textfile destination.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables. A
// non-empty path selects an explicit config file.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("namespaces.instances", vocab.InstanceNamespace)

	v.SetDefault("ontologies.prefix_file", "")

	v.SetDefault("convert.include_metadata", true)
	v.SetDefault("convert.include_codes", true)
	v.SetDefault("convert.include_splits", true)
	v.SetDefault("convert.include_labels", true)
	v.SetDefault("convert.fact_class", "measurement")
	v.SetDefault("convert.skip_invalid", false)

	v.SetDefault("output.format", "turtle")
	v.SetDefault("output.path", "-")

	v.SetDefault("neo4j.user", "neo4j")
	v.SetDefault("neo4j.password", "")
	v.SetDefault("neo4j.database", "")
	v.SetDefault("neo4j.timeout_seconds", DefaultNeo4jTimeoutSeconds)
	v.SetDefault("neo4j.max_pool_size", DefaultNeo4jMaxPoolSize)
	v.SetDefault("neo4j.batch_size", DefaultNeo4jBatchSize)

	v.SetDefault("gcs.credentials_file", "")
	v.SetDefault("gcs.emulator_host", "")

	v.SetDefault("metrics.textfile", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	// Config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(homeDir(), ".meds2rdf"))
		v.AddConfigPath(".")
	}

	// Environment variables
	v.SetEnvPrefix("MEDS2RDF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Map specific env vars
	_ = v.BindEnv("neo4j.password", "MEDS2RDF_NEO4J_PASSWORD", "NEO4J_PASSWORD")
	_ = v.BindEnv("gcs.credentials_file", "MEDS2RDF_GCS_CREDENTIALS_FILE", "GOOGLE_APPLICATION_CREDENTIALS")
	_ = v.BindEnv("gcs.emulator_host", "MEDS2RDF_GCS_EMULATOR_HOST", "STORAGE_EMULATOR_HOST")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK: use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are set and consistent.
func (c *Config) Validate() error {
	if c.Namespaces.Instances == "" {
		return fmt.Errorf("namespaces.instances must not be empty")
	}
	if !strings.HasSuffix(c.Namespaces.Instances, "/") && !strings.HasSuffix(c.Namespaces.Instances, "#") {
		return fmt.Errorf("namespaces.instances must end with '/' or '#'")
	}
	if _, err := mapping.ParseFactClass(c.Convert.FactClass); err != nil {
		return fmt.Errorf("convert.fact_class: %w", err)
	}
	if _, err := serialize.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output.path must not be empty")
	}
	if c.Neo4j.TimeoutSeconds <= 0 {
		return fmt.Errorf("neo4j.timeout_seconds must be greater than 0")
	}
	if c.Neo4j.MaxPoolSize <= 0 {
		return fmt.Errorf("neo4j.max_pool_size must be greater than 0")
	}
	if c.Neo4j.BatchSize <= 0 {
		return fmt.Errorf("neo4j.batch_size must be greater than 0")
	}
	if c.Logging.Level != "" && c.Logging.Level != "info" && c.Logging.Level != "debug" {
		return fmt.Errorf("logging.level must be info or debug")
	}
	if c.Logging.Format != "" && c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be text or json")
	}
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
