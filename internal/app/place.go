package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"cityguide/internal/adapters/observability"
	"cityguide/internal/domain"
)

type PlaceService struct {
	weather domain.WeatherClient
	photos  domain.PhotoClient
	music   domain.MusicClient
	cities  domain.CityClient
	timeout time.Duration
}

// NewPlaceService wires the adapters. timeout bounds every single upstream call.
func NewPlaceService(w domain.WeatherClient, p domain.PhotoClient, m domain.MusicClient, c domain.CityClient, timeout time.Duration) *PlaceService {
	return &PlaceService{weather: w, photos: p, music: m, cities: c, timeout: timeout}
}

// result is the outcome of one adapter call. Each slot is written by exactly
// one goroutine and read only after the join.
type result[T any] struct {
	val T
	err error
}

func launch[T any](g *errgroup.Group, ctx context.Context, timeout time.Duration, fetch func(context.Context) (T, error)) *result[T] {
	r := &result[T]{}
	g.Go(func() error {
		cctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		r.val, r.err = fetch(cctx)
		return nil // failures stay in their slot and never cancel siblings
	})
	return r
}

func settle[T any](category, place string, r *result[T]) (T, bool) {
	if r.err != nil {
		log.Warn().Err(r.err).Str("category", category).Str("place", place).Msg("category fell back")
		observability.ObserveCategory(category, false)
		var zero T
		return zero, false
	}
	observability.ObserveCategory(category, true)
	return r.val, true
}

// GetPlace fans out to every category adapter, waits for all of them and
// assembles the response. A failed category gets its fallback; GetPlace itself never fails.
func (s *PlaceService) GetPlace(ctx context.Context, q domain.PlaceQuery) domain.CompositeResponse {
	var g errgroup.Group

	weather := launch(&g, ctx, s.timeout, func(ctx context.Context) (domain.WeatherRecord, error) {
		return s.weather.CurrentWeather(ctx, q.Name, q.CountryCode)
	})
	photos := make([]*result[[]domain.PhotoRecord], len(photoCategories))
	for i, c := range photoCategories {
		photos[i] = launch(&g, ctx, s.timeout, func(ctx context.Context) ([]domain.PhotoRecord, error) {
			return s.photos.SearchPhotos(ctx, q.Name+c.query, c.count)
		})
	}
	music := launch(&g, ctx, s.timeout, func(ctx context.Context) ([]domain.TrackRecord, error) {
		return s.music.SearchTracks(ctx, musicQuery(q))
	})

	_ = g.Wait()

	resp := domain.NewCompositeResponse(q.Name, q.Country)
	if w, ok := settle(CategoryWeather, q.Name, weather); ok {
		resp.Weather = &w
	}
	for i, c := range photoCategories {
		if v, ok := settle(c.name, q.Name, photos[i]); ok && v != nil {
			*c.field(&resp) = v
		}
	}
	if v, ok := settle(CategoryMusic, q.Name, music); ok && v != nil {
		resp.Music = v
	}
	return resp
}

// Autocomplete is a single pass-through call; its error is the caller's to handle.
func (s *PlaceService) Autocomplete(ctx context.Context, prefix string) ([]domain.CitySuggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.cities.SuggestCities(ctx, prefix)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.CitySuggestion{}
	}
	return out, nil
}
