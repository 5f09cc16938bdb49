package cfg

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Version is set at build time via -ldflags
var Version = "dev"

// PlaceholderAPIHost marks an API URL that was copied from the example
// environment file and never filled in.
const PlaceholderAPIHost = "your-wordpress-site.com"

// EnvFiles are read, in order, before flags are parsed. Variables already
// present in the environment win.
var EnvFiles = []string{".env.local", ".env"}

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Content API configuration
	WordPressAPIURL    string `long:"wordpress-api-url" env:"WORDPRESS_API_URL" description:"WordPress REST API base URL (e.g., https://cms.example.com/wp-json/wp/v2)"`
	RequestTimeout     int    `long:"request-timeout" env:"REQUEST_TIMEOUT" default:"10" description:"Content API request timeout in seconds"`
	PostsRevalidate    int    `long:"posts-revalidate" env:"POSTS_REVALIDATE" default:"60" description:"Seconds a fetched post list or post stays fresh"`
	TaxonomyRevalidate int    `long:"taxonomy-revalidate" env:"TAXONOMY_REVALIDATE" default:"3600" description:"Seconds a fetched category or slug list stays fresh"`

	// Application configuration
	SiteName      string `long:"site-name" env:"SITE_NAME" default:"Klyseria" description:"Site name shown in page titles and feeds"`
	SiteURL       string `long:"site-url" env:"SITE_URL" default:"http://localhost:8080" description:"Public base URL of the site, used for absolute links"`
	Port          string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	SectionsDir   string `long:"sections-dir" env:"SECTIONS_DIR" default:"./sections" description:"Directory containing section configuration files"`
	WatchSections bool   `long:"watch-sections" env:"WATCH_SECTIONS" description:"Reload section configuration files when they change"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Chapter Web/1.0" description:"User agent string for content API requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	return LoadArgs(os.Args[1:])
}

func LoadArgs(args []string) (*Cfg, error) {
	if err := loadEnvFiles(EnvFiles); err != nil {
		return nil, err
	}

	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		WordPressAPIURL:    strings.TrimRight(strings.TrimSpace(raw.WordPressAPIURL), "/"),
		RequestTimeout:     raw.RequestTimeout,
		PostsRevalidate:    raw.PostsRevalidate,
		TaxonomyRevalidate: raw.TaxonomyRevalidate,
		SiteName:           raw.SiteName,
		SiteURL:            strings.TrimRight(raw.SiteURL, "/"),
		Port:               raw.Port,
		SectionsDir:        raw.SectionsDir,
		WatchSections:      raw.WatchSections,
		UserAgent:          raw.UserAgent,
		Timezone:           raw.Timezone,
		Debug:              raw.Debug,
		Version:            GetVersion(),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	return cfg, nil
}

// APIConfigured reports whether the content API URL is set to something
// other than the example placeholder.
func (c *Cfg) APIConfigured() bool {
	return c.WordPressAPIURL != "" && !strings.Contains(c.WordPressAPIURL, PlaceholderAPIHost)
}

func (c *Cfg) GetRequestTimeout() time.Duration {
	if c.RequestTimeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.RequestTimeout) * time.Second
}

func (c *Cfg) GetPostsRevalidate() time.Duration {
	return time.Duration(c.PostsRevalidate) * time.Second
}

func (c *Cfg) GetTaxonomyRevalidate() time.Duration {
	return time.Duration(c.TaxonomyRevalidate) * time.Second
}

func (c *Cfg) validate() error {
	nonNegativeFields := map[string]int{
		"request timeout":     c.RequestTimeout,
		"posts revalidate":    c.PostsRevalidate,
		"taxonomy revalidate": c.TaxonomyRevalidate,
	}

	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	if c.SiteURL != "" && !strings.HasPrefix(c.SiteURL, "http://") && !strings.HasPrefix(c.SiteURL, "https://") {
		return fmt.Errorf("site URL must start with http:// or https://: %s", c.SiteURL)
	}

	return nil
}

func loadEnvFiles(files []string) error {
	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
