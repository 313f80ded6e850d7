// Package config loads the editorial hub configuration from a YAML file and
// HUB_* environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/toddlburns/yt-tracker/internal/logging"
)

// Config holds all application configuration.
type Config struct {
	Inputs    InputsConfig    `yaml:"inputs"`
	Output    OutputConfig    `yaml:"output"`
	Database  DatabaseConfig  `yaml:"database"`
	Knowledge KnowledgeConfig `yaml:"knowledge"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Logging   logging.Config  `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// InputsConfig holds source file paths.
type InputsConfig struct {
	Editorial   string `yaml:"editorial"`
	Videos      string `yaml:"videos"`
	Social      string `yaml:"social"`
	ArtistPages string `yaml:"artist_pages"`
	Scraped     string `yaml:"scraped"`
}

// OutputConfig holds output file paths.
type OutputConfig struct {
	Dataset      string `yaml:"dataset"`
	StillMissing string `yaml:"still_missing"`
	ScrapedCSV   string `yaml:"scraped_csv"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// KnowledgeConfig holds knowledge-base endpoints, search breadth, and pacing.
type KnowledgeConfig struct {
	APIEndpoint    string        `yaml:"api_endpoint"`
	EntityEndpoint string        `yaml:"entity_endpoint"`
	Timeout        time.Duration `yaml:"timeout"`
	RateLimit      float64       `yaml:"rate_limit"`
	SearchLimit    int           `yaml:"search_limit"`
	CandidateLimit int           `yaml:"candidate_limit"`
	MemberCap      int           `yaml:"member_cap"`
	CallDelay      time.Duration `yaml:"call_delay"`
	ArtistDelay    time.Duration `yaml:"artist_delay"`
}

// DiscoveryConfig holds best-of discovery and workbook layout settings.
type DiscoveryConfig struct {
	HostMarker string `yaml:"host_marker"`
	SkipRows   int    `yaml:"skip_rows"`
}

// MetricsConfig holds the Prometheus textfile destination.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Inputs: InputsConfig{
			Editorial:   "data/editorial_schedule.xlsx",
			Videos:      "data/music_videos.csv",
			Social:      "data/social_calendar.xlsx",
			ArtistPages: "data/artist_pages.csv",
			Scraped:     "data/artists_missing_birthdays.csv",
		},
		Output: OutputConfig{
			Dataset:      "site/editorial_data.js",
			StillMissing: "data/artists_still_missing_birthdays.csv",
			ScrapedCSV:   "data/artists_missing_birthdays.csv",
		},
		Database: DatabaseConfig{
			Path: "data/editorialhub.db",
		},
		Knowledge: KnowledgeConfig{
			APIEndpoint:    "https://en.wikipedia.org/w/api.php",
			EntityEndpoint: "https://www.wikidata.org/wiki/Special:EntityData",
			Timeout:        15 * time.Second,
			RateLimit:      5,
			SearchLimit:    5,
			CandidateLimit: 3,
			MemberCap:      3,
			CallDelay:      150 * time.Millisecond,
			ArtistDelay:    400 * time.Millisecond,
		},
		Discovery: DiscoveryConfig{
			HostMarker: "udiscovermusic.com",
			SkipRows:   3,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load reads config from a YAML file (if it exists) and overrides with
// environment variables. Environment variables take precedence.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFromFile(path); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is operator supplied
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) loadFromEnv() {
	strs := map[string]*string{
		"HUB_EDITORIAL_PATH":    &c.Inputs.Editorial,
		"HUB_VIDEOS_PATH":       &c.Inputs.Videos,
		"HUB_SOCIAL_PATH":       &c.Inputs.Social,
		"HUB_ARTIST_PAGES_PATH": &c.Inputs.ArtistPages,
		"HUB_SCRAPED_PATH":      &c.Inputs.Scraped,
		"HUB_OUTPUT_PATH":       &c.Output.Dataset,
		"HUB_MISSING_PATH":      &c.Output.StillMissing,
		"HUB_SCRAPED_CSV_PATH":  &c.Output.ScrapedCSV,
		"HUB_DB_PATH":           &c.Database.Path,
		"HUB_WIKI_API":          &c.Knowledge.APIEndpoint,
		"HUB_WIKIDATA_ENTITY":   &c.Knowledge.EntityEndpoint,
		"HUB_HOST_MARKER":       &c.Discovery.HostMarker,
		"HUB_LOG_LEVEL":         &c.Logging.Level,
		"HUB_LOG_FORMAT":        &c.Logging.Format,
		"HUB_LOG_FILE":          &c.Logging.FilePath,
		"HUB_METRICS_TEXTFILE":  &c.Metrics.Textfile,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"HUB_KNOWLEDGE_TIMEOUT": &c.Knowledge.Timeout,
		"HUB_CALL_DELAY":        &c.Knowledge.CallDelay,
		"HUB_ARTIST_DELAY":      &c.Knowledge.ArtistDelay,
	}
	for key, dst := range durations {
		if v := os.Getenv(key); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				*dst = d
			}
		}
	}

	if v := os.Getenv("HUB_MEMBER_CAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Knowledge.MemberCap = n
		}
	}
	if v := os.Getenv("HUB_RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Knowledge.RateLimit = f
		}
	}
}

func (c *Config) validate() error {
	if c.Inputs.Editorial == "" {
		return fmt.Errorf("editorial input path is required")
	}
	if c.Output.Dataset == "" {
		return fmt.Errorf("dataset output path is required")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	if c.Knowledge.SearchLimit < 1 || c.Knowledge.CandidateLimit < 1 || c.Knowledge.MemberCap < 1 {
		return fmt.Errorf("knowledge search_limit, candidate_limit and member_cap must be positive")
	}
	if c.Knowledge.CandidateLimit > c.Knowledge.SearchLimit {
		return fmt.Errorf("candidate_limit %d exceeds search_limit %d",
			c.Knowledge.CandidateLimit, c.Knowledge.SearchLimit)
	}
	if c.Knowledge.CallDelay < 0 || c.Knowledge.ArtistDelay < 0 || c.Knowledge.Timeout < 0 {
		return fmt.Errorf("knowledge delays and timeout must not be negative")
	}
	if c.Discovery.SkipRows < 0 {
		return fmt.Errorf("invalid skip_rows: %d", c.Discovery.SkipRows)
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("invalid log level: %q", c.Logging.Level)
	}
	if !logging.ValidFormat(c.Logging.Format) {
		return fmt.Errorf("invalid log format: %q", c.Logging.Format)
	}
	return nil
}
