package model

import (
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Config holds the complete wordbank configuration
type Config struct {
	Lexicon LexiconConfig `yaml:"lexicon" mapstructure:"lexicon"`
	Batch   BatchConfig   `yaml:"batch" mapstructure:"batch"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	HTTP    HTTPConfig    `yaml:"http" mapstructure:"http"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// LexiconConfig selects the word bank and scoring window
type LexiconConfig struct {
	Path   string `yaml:"path" mapstructure:"path"`     // YAML lexicon file; empty uses the embedded financial lexicon
	Window int    `yaml:"window" mapstructure:"window"` // tokens inspected before each occurrence
}

// BatchConfig configures CSV batch scoring
type BatchConfig struct {
	TextColumn    string        `yaml:"text_column" mapstructure:"text_column"`
	ScoreColumn   string        `yaml:"score_column" mapstructure:"score_column"`
	HitsColumn    string        `yaml:"hits_column" mapstructure:"hits_column"`
	PresentColumn string        `yaml:"present_column" mapstructure:"present_column"` // empty disables the column
	Workers       int           `yaml:"workers" mapstructure:"workers"`
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// CacheConfig configures score memoisation
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"` // empty keeps the cache in memory only
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// HTTPConfig configures downloads of remote CSV input
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBytes      int64         `yaml:"max_bytes" mapstructure:"max_bytes"`
	HTTPProxy     string        `yaml:"http_proxy" mapstructure:"http_proxy"`   // empty falls back to HTTP_PROXY
	HTTPSProxy    string        `yaml:"https_proxy" mapstructure:"https_proxy"` // empty falls back to HTTPS_PROXY
	NoProxy       string        `yaml:"no_proxy" mapstructure:"no_proxy"`
	InsecureTLS   bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// LogConfig configures structured logging
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // text or json
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Lexicon: LexiconConfig{
			Window: 4,
		},
		Batch: BatchConfig{
			TextColumn:  "title",
			ScoreColumn: "sentiment_score",
			HitsColumn:  "sentiment_hits",
			Workers:     runtime.NumCPU(),
			Timeout:     10 * time.Minute,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       filepath.Join(DefaultConfigDir(), "cache"),
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
		HTTP: HTTPConfig{
			Timeout:       60 * time.Second,
			UserAgent:     "wordbank/0.1 (+https://github.com/ppiankov/wordbank)",
			MaxBytes:      256 << 20,
			RespectRobots: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultConfigDir returns ~/.wordbank, or ./.wordbank when the home directory is unknown
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wordbank"
	}
	return filepath.Join(home, ".wordbank")
}
