package shared

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MetricsAddr    string
	WeatherBase    string
	WeatherKey     string
	PhotosBase     string
	PhotosKey      string
	MusicBase      string
	CitiesBase     string
	CitiesKey      string
	UpstreamTTL    time.Duration // per upstream call
	RequestTimeout time.Duration // whole inbound request
	CORSOrigins    []string
	Workers        int
}

// Load reads the environment, after merging a .env file if one exists.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg(".env not loaded")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	return Config{
		AppEnv:         env("APP_ENV", "prod"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		MetricsAddr:    env("METRICS_ADDR", ""),
		WeatherBase:    env("OPENWEATHER_BASE_URL", "https://api.openweathermap.org"),
		WeatherKey:     env("OPENWEATHER_KEY", ""),
		PhotosBase:     env("UNSPLASH_BASE_URL", "https://api.unsplash.com"),
		PhotosKey:      env("UNSPLASH_KEY", ""),
		MusicBase:      env("DEEZER_BASE_URL", "https://api.deezer.com"),
		CitiesBase:     env("GEODB_BASE_URL", "https://wft-geo-db.p.rapidapi.com"),
		CitiesKey:      env("GEODB_KEY", ""),
		UpstreamTTL:    time.Duration(atoi("UPSTREAM_TIMEOUT_SECONDS", 15)) * time.Second,
		RequestTimeout: time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 20)) * time.Second,
		CORSOrigins:    splitList(env("CORS_ALLOWED_ORIGINS", "http://localhost:4321")),
		Workers:        atoi("EXPLORE_WORKERS", 4),
	}
}

// Validate reports every missing credential and inconsistent timeout at once.
func (c Config) Validate() error {
	var errs []error
	if c.WeatherKey == "" {
		errs = append(errs, errors.New("OPENWEATHER_KEY is empty"))
	}
	if c.PhotosKey == "" {
		errs = append(errs, errors.New("UNSPLASH_KEY is empty"))
	}
	if c.CitiesKey == "" {
		errs = append(errs, errors.New("GEODB_KEY is empty"))
	}
	if c.UpstreamTTL <= 0 {
		errs = append(errs, errors.New("UPSTREAM_TIMEOUT_SECONDS must be positive"))
	}
	if c.RequestTimeout <= c.UpstreamTTL {
		errs = append(errs, errors.New("REQUEST_TIMEOUT_SECONDS must exceed UPSTREAM_TIMEOUT_SECONDS"))
	}
	return errors.Join(errs...)
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
