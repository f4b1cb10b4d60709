// Command explore looks up several places concurrently and prints one JSON
// document per place on stdout, in argument order.
//
//	explore "Paris|France|FR" Kyoto "Lima|Peru"
package main

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"cityguide/internal/adapters/deezer"
	"cityguide/internal/adapters/geodb"
	"cityguide/internal/adapters/observability"
	"cityguide/internal/adapters/openweather"
	"cityguide/internal/adapters/unsplash"
	"cityguide/internal/app"
	"cityguide/internal/domain"
	"cityguide/internal/shared"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// stdout carries results, so logs go to stderr
	log.Logger = observability.NewLogger(cfg.AppEnv, "explore", os.Stderr)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if len(os.Args) < 2 {
		log.Fatal().Msg(`usage: explore "name[|country[|countryCode]]"...`)
	}

	svc := app.NewPlaceService(
		openweather.New(cfg.WeatherBase, cfg.WeatherKey),
		unsplash.New(cfg.PhotosBase, cfg.PhotosKey),
		deezer.New(cfg.MusicBase),
		geodb.New(cfg.CitiesBase, cfg.CitiesKey),
		cfg.UpstreamTTL,
	)

	queries := make([]domain.PlaceQuery, 0, len(os.Args)-1)
	for _, arg := range os.Args[1:] {
		q, ok := parseQuery(arg)
		if !ok {
			log.Warn().Str("arg", arg).Msg("skipping empty place")
			continue
		}
		queries = append(queries, q)
	}

	log.Info().Int("places", len(queries)).Int("workers", cfg.Workers).Msg("explore starting")

	results := make([]domain.CompositeResponse, len(queries))
	sem := semaphore.NewWeighted(int64(max(cfg.Workers, 1)))
	var wg sync.WaitGroup

	for i, q := range queries {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			results[i] = svc.GetPlace(ctx, q)
			log.Info().Str("place", q.Name).Msg("lookup done")
		}()
	}
	wg.Wait()

	enc := json.NewEncoder(os.Stdout)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			log.Fatal().Err(err).Msg("write result failed")
		}
	}
	log.Info().Msg("explore completed")
}

// parseQuery reads "name|country|countryCode"; only name is required.
func parseQuery(arg string) (domain.PlaceQuery, bool) {
	parts := strings.SplitN(arg, "|", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	q := domain.PlaceQuery{
		Name:        strings.TrimSpace(parts[0]),
		Country:     strings.TrimSpace(parts[1]),
		CountryCode: strings.ToUpper(strings.TrimSpace(parts[2])),
	}
	return q, q.Name != ""
}
