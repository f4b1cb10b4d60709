package domain

import "context"

type WeatherClient interface {
	CurrentWeather(ctx context.Context, city, countryCode string) (WeatherRecord, error)
}

type PhotoClient interface {
	SearchPhotos(ctx context.Context, query string, count int) ([]PhotoRecord, error)
}

type MusicClient interface {
	SearchTracks(ctx context.Context, query string) ([]TrackRecord, error)
}

type CityClient interface {
	SuggestCities(ctx context.Context, prefix string) ([]CitySuggestion, error)
}
