// Package openweather adapts OpenWeather current conditions to domain.WeatherRecord.
package openweather

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"cityguide/internal/adapters/upstream"
	"cityguide/internal/domain"
)

const endpoint = "/data/2.5/weather"

type Client struct {
	up  *upstream.Client
	key string
}

func New(base, key string) *Client {
	return &Client{up: upstream.New("openweather", base, nil), key: key}
}

// wire shape; pointers mark required fields so absence is detectable
type currentResponse struct {
	Main *struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		Humidity  *float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description *string `json:"description"`
		Icon        *string `json:"icon"`
	} `json:"weather"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
}

// CurrentWeather queries "city,CC" when countryCode is set, else just city.
func (c *Client) CurrentWeather(ctx context.Context, city, countryCode string) (domain.WeatherRecord, error) {
	q := city
	if countryCode != "" {
		q = city + "," + countryCode
	}
	params := url.Values{
		"q":     {q},
		"appid": {c.key},
		"units": {"metric"},
	}
	var raw currentResponse
	if err := c.up.GetJSON(ctx, endpoint, params, &raw); err != nil {
		return domain.WeatherRecord{}, err
	}
	rec, err := mapCurrent(raw)
	if err != nil {
		return domain.WeatherRecord{}, fmt.Errorf("%w: openweather: %v", domain.ErrUpstream, err)
	}
	return rec, nil
}

func mapCurrent(r currentResponse) (domain.WeatherRecord, error) {
	switch {
	case r.Main == nil || r.Main.Temp == nil || r.Main.FeelsLike == nil || r.Main.Humidity == nil:
		return domain.WeatherRecord{}, errors.New("missing main block")
	case len(r.Weather) == 0 || r.Weather[0].Description == nil || r.Weather[0].Icon == nil:
		return domain.WeatherRecord{}, errors.New("missing weather[0]")
	case r.Wind == nil || r.Wind.Speed == nil:
		return domain.WeatherRecord{}, errors.New("missing wind.speed")
	}
	return domain.WeatherRecord{
		Temperature:     int(math.Round(*r.Main.Temp)),
		FeelsLike:       int(math.Round(*r.Main.FeelsLike)),
		HumidityPercent: int(math.Round(*r.Main.Humidity)),
		Description:     titleCase(*r.Weather[0].Description),
		IconCode:        *r.Weather[0].Icon,
		WindSpeed:       *r.Wind.Speed,
	}, nil
}

// titleCase builds a fresh Caser per call: Casers are stateful.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
