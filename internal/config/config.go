// Package config loads and validates analyzer configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported pipeline engines and store providers.
const (
	EngineCoreNLP = "corenlp"
	EngineProse   = "prose"

	StoreNoop     = "noop"
	StorePostgres = "postgres"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server    ServerConfig   `mapstructure:"server"`
	Fetch     FetchConfig    `mapstructure:"fetch"`
	Cleaner   CleanerConfig  `mapstructure:"cleaner"`
	Sample    SampleConfig   `mapstructure:"sample"`
	Pipeline  PipelineConfig `mapstructure:"pipeline"`
	DB        DBConfig       `mapstructure:"db"`
	Artifacts ArtifactConfig `mapstructure:"artifacts"`
	Logging   LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig controls the optional HTTP server.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// FetchConfig governs outbound document retrieval.
type FetchConfig struct {
	UserAgent      string  `mapstructure:"user_agent"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
	RPS            float64 `mapstructure:"rps"`
	Burst          int     `mapstructure:"burst"`
}

// CleanerConfig sets the boilerplate markers. Empty values fall back
// to the Project Gutenberg defaults.
type CleanerConfig struct {
	StartMarker string `mapstructure:"start_marker"`
	EndMarker   string `mapstructure:"end_marker"`
}

// SampleConfig bounds how much text reaches the pipeline.
type SampleConfig struct {
	Lines int `mapstructure:"lines"`
}

// PipelineConfig selects and configures the annotation engine.
type PipelineConfig struct {
	Engine         string   `mapstructure:"engine"`
	ServerURL      string   `mapstructure:"server_url"`
	Annotators     []string `mapstructure:"annotators"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds"`
}

// DBConfig controls the analysis record store.
type DBConfig struct {
	Provider string `mapstructure:"provider"`
	DSN      string `mapstructure:"dsn"`
	Table    string `mapstructure:"table"`
	MaxConns int32  `mapstructure:"max_conns"`
	MinConns int32  `mapstructure:"min_conns"`
}

// ArtifactConfig controls the on-disk artifact sink.
type ArtifactConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Dir      string `mapstructure:"dir"`
	MaxBytes int64  `mapstructure:"max_bytes"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ANALYZER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("fetch.user_agent", "text-analyzer/0.1")
	v.SetDefault("fetch.timeout_seconds", 15)
	v.SetDefault("fetch.rps", 1.0)
	v.SetDefault("fetch.burst", 1)
	v.SetDefault("sample.lines", 10)
	v.SetDefault("pipeline.engine", EngineCoreNLP)
	v.SetDefault("pipeline.server_url", "http://localhost:9000")
	v.SetDefault("pipeline.timeout_seconds", 60)
	v.SetDefault("db.provider", StoreNoop)
	v.SetDefault("db.table", "analyses")
	v.SetDefault("artifacts.enabled", false)
	v.SetDefault("artifacts.dir", "artifacts")
	v.SetDefault("artifacts.max_bytes", int64(50*1024*1024))
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		return fmt.Errorf("fetch.timeout_seconds must be > 0")
	}
	if c.Sample.Lines <= 0 {
		return fmt.Errorf("sample.lines must be > 0")
	}
	switch c.Pipeline.Engine {
	case EngineCoreNLP:
		if c.Pipeline.ServerURL == "" {
			return fmt.Errorf("pipeline.server_url must be set when engine is %q", EngineCoreNLP)
		}
	case EngineProse:
	default:
		return fmt.Errorf("unknown pipeline engine: %s", c.Pipeline.Engine)
	}
	switch c.DB.Provider {
	case StoreNoop:
	case StorePostgres:
		if c.DB.DSN == "" {
			return fmt.Errorf("db.dsn must be set when db.provider is %q", StorePostgres)
		}
	default:
		return fmt.Errorf("unknown db provider: %s", c.DB.Provider)
	}
	return nil
}

// FetchTimeout converts the fetch timeout config into a duration.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// PipelineTimeout converts the pipeline timeout config into a duration.
func (c Config) PipelineTimeout() time.Duration {
	return time.Duration(c.Pipeline.TimeoutSeconds) * time.Second
}
