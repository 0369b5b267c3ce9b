package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// APIBaseURL is the backend REST base, including the /api prefix.
	APIBaseURL string `env:"API_BASE_URL"`

	// StateDir is where session files and the draft DB live.
	StateDir string `env:"FDADMIN_STATE_DIR"`

	// DraftDBPath is the path to the local draft SQLite DB.
	DraftDBPath string `env:"DRAFT_DB_PATH"`

	// Debug enables request logging to stderr.
	Debug bool `env:"FDADMIN_DEBUG"`

	// PageSize is the default list page size.
	PageSize int `env:"FDADMIN_PAGE_SIZE"`

	Version bool `env:"-"` // show client version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// env seeds the flag defaults, so an explicitly passed flag wins
	flag.StringVar(&cfg.APIBaseURL, "api", cfg.APIBaseURL, "backend API base URL, e.g. http://localhost:5000/api")
	flag.StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "directory for session files and the draft DB")
	flag.StringVar(&cfg.DraftDBPath, "draft-db", cfg.DraftDBPath, "path to the local draft SQLite DB")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "log outgoing requests to stderr")
	flag.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "default list page size")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	// Defaults
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "http://localhost:5000/api"
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	if cfg.StateDir == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			cfg.StateDir = filepath.Join(dir, "fooddesk")
		} else {
			home, _ := os.UserHomeDir()
			cfg.StateDir = filepath.Join(home, ".fooddesk")
		}
	}
	if cfg.DraftDBPath == "" {
		cfg.DraftDBPath = filepath.Join(cfg.StateDir, "drafts.sqlite")
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}

	return cfg
}
