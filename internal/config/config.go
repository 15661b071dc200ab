package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBase     string
	AssetBase   string
	DataDir     string
	DBPath      string
	SessionPath string
	LogPath     string

	BlogListTTL   time.Duration
	BlogTTL       time.Duration
	CommentTTL    time.Duration
	PageSize      int
	CommentLimit  int
	MaxCommentLen int
	MaxTagResults int
}

func Default() Config {
	dataDir := filepath.Join(userConfigDir(), "quill")
	return Config{
		APIBase:       "https://api.quillpad.dev",
		AssetBase:     "https://api.quillpad.dev",
		DataDir:       dataDir,
		DBPath:        filepath.Join(dataDir, "cache.db"),
		SessionPath:   filepath.Join(dataDir, "session.json"),
		LogPath:       filepath.Join(dataDir, "quill.log"),
		BlogListTTL:   60 * time.Second,
		BlogTTL:       5 * time.Minute,
		CommentTTL:    2 * time.Minute,
		PageSize:      10,
		CommentLimit:  50,
		MaxCommentLen: 500,
		MaxTagResults: 8,
	}
}

// Load builds the config from defaults, an optional .env file in the
// working directory, and QUILL_* environment variables, in that order.
func Load() Config {
	_ = godotenv.Load()

	cfg := Default()
	if v := os.Getenv("QUILL_API_BASE"); v != "" {
		cfg.APIBase = v
		cfg.AssetBase = v
	}
	if v := os.Getenv("QUILL_ASSET_BASE"); v != "" {
		cfg.AssetBase = v
	}
	if v := os.Getenv("QUILL_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PageSize = n
		}
	}
	return cfg
}

func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}
