package main

import (
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"cityguide/internal/adapters/deezer"
	"cityguide/internal/adapters/geodb"
	server "cityguide/internal/adapters/http_server"
	"cityguide/internal/adapters/observability"
	"cityguide/internal/adapters/openweather"
	"cityguide/internal/adapters/unsplash"
	"cityguide/internal/app"
	"cityguide/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "api", os.Stdout)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// deps
	svc := app.NewPlaceService(
		openweather.New(cfg.WeatherBase, cfg.WeatherKey),
		unsplash.New(cfg.PhotosBase, cfg.PhotosKey),
		deezer.New(cfg.MusicBase),
		geodb.New(cfg.CitiesBase, cfg.CitiesKey),
		cfg.UpstreamTTL,
	)

	// http
	srv := server.New(cfg.CORSOrigins, cfg.RequestTimeout)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{P: svc})

	log.Info().Str("addr", cfg.HTTPAddr).Dur("upstream_timeout", cfg.UpstreamTTL).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
