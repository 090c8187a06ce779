package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// TMDB contains configuration for The Movie Database API. Setting
// cache_ttl_hours to 0 disables the response cache, so every fetch session
// (including refreshes) queries the upstream directly.
type TMDB struct {
	APIKey        string `toml:"api_key"`
	BaseURL       string `toml:"base_url"`
	Language      string `toml:"language"`
	WatchRegion   string `toml:"watch_region"`
	CacheDir      string `toml:"cache_dir"`
	CacheTTLHours int    `toml:"cache_ttl_hours"`
}

// Catalog controls the fetch session: which platforms load in the fast first
// phase, how many discover pages each phase walks, and the fan-out bound.
type Catalog struct {
	PrimaryPlatforms []string `toml:"primary_platforms"`
	PrimaryPages     int      `toml:"primary_pages"`
	SecondaryPages   int      `toml:"secondary_pages"`
	MaxConcurrent    int      `toml:"max_concurrent"`
	DefaultCountry   string   `toml:"default_country"`
}

// Browse controls the client-facing filtered view.
type Browse struct {
	PageSize int `toml:"page_size"`
}

type Config struct {
	ListenAddr string  `toml:"listen_addr"`
	LogDir     string  `toml:"log_dir"`
	TMDB       TMDB    `toml:"tmdb"`
	Catalog    Catalog `toml:"catalog"`
	Browse     Browse  `toml:"browse"`
}

// Default returns the built-in configuration: the Korean watch region with the
// three large platforms in the primary phase at three discover pages each.
func Default() Config {
	return Config{
		ListenAddr: ":8686",
		LogDir:     "logs",
		TMDB: TMDB{
			BaseURL:       "https://api.themoviedb.org/3",
			Language:      "ko-KR",
			WatchRegion:   "KR",
			CacheDir:      "cache",
			CacheTTLHours: 24,
		},
		Catalog: Catalog{
			PrimaryPlatforms: []string{"netflix", "disney", "tving"},
			PrimaryPages:     3,
			SecondaryPages:   2,
			MaxConcurrent:    8,
			DefaultCountry:   "us",
		},
		Browse: Browse{PageSize: 24},
	}
}

// Load reads a TOML config file over the defaults. A missing file is not an
// error; the defaults apply. TMDB_API_KEY in the environment overrides the
// file's api_key either way.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if key := os.Getenv("TMDB_API_KEY"); key != "" {
		cfg.TMDB.APIKey = key
	}
	return cfg, nil
}
