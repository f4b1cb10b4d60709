package domain

import "errors"

// ErrUpstream marks any adapter failure: network, status, decode or a missing field.
var ErrUpstream = errors.New("upstream: adapter failed")

type PlaceQuery struct {
	Name        string
	Country     string
	CountryCode string
}

type WeatherRecord struct {
	Temperature     int     `json:"temperature"`
	FeelsLike       int     `json:"feelsLike"`
	HumidityPercent int     `json:"humidityPercent"`
	Description     string  `json:"description"`
	IconCode        string  `json:"iconCode"`
	WindSpeed       float64 `json:"windSpeed"`
}

// PhotoRecord is shared by scenery, architecture, food and dress.
type PhotoRecord struct {
	URL           string `json:"url"`
	ThumbnailURL  string `json:"thumbnailUrl"`
	DominantColor string `json:"dominantColor"`
	AltText       string `json:"altText"`
}

type TrackRecord struct {
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	PreviewURL string `json:"previewUrl"`
	CoverURL   string `json:"coverUrl"`
}

type CitySuggestion struct {
	Name        string `json:"name"`
	State       string `json:"state"`
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
}

// CompositeResponse is what /place returns. List fields are never nil;
// only Weather may be null.
type CompositeResponse struct {
	Place        string         `json:"place"`
	Country      string         `json:"country"`
	Weather      *WeatherRecord `json:"weather"`
	Scenery      []PhotoRecord  `json:"scenery"`
	Architecture []PhotoRecord  `json:"architecture"`
	FoodPhotos   []PhotoRecord  `json:"foodPhotos"`
	Dress        []PhotoRecord  `json:"dress"`
	Music        []TrackRecord  `json:"music"`
}

// NewCompositeResponse returns a response with every category at its fallback.
func NewCompositeResponse(place, country string) CompositeResponse {
	return CompositeResponse{
		Place:        place,
		Country:      country,
		Scenery:      []PhotoRecord{},
		Architecture: []PhotoRecord{},
		FoodPhotos:   []PhotoRecord{},
		Dress:        []PhotoRecord{},
		Music:        []TrackRecord{},
	}
}
