// Package geodb adapts GeoDB Cities (via RapidAPI) to domain.CitySuggestion.
package geodb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"cityguide/internal/adapters/upstream"
	"cityguide/internal/domain"
)

const (
	endpoint = "/v1/geo/cities"
	// MaxSuggestions is the page size asked of the provider.
	MaxSuggestions = 8
)

type Client struct{ up *upstream.Client }

// New derives the X-RapidAPI-Host header from base.
func New(base, key string) *Client {
	host := ""
	if u, err := url.Parse(base); err == nil {
		host = u.Host
	}
	return &Client{up: upstream.New("geodb", base, map[string]string{
		"X-RapidAPI-Key":  key,
		"X-RapidAPI-Host": host,
	})}
}

type citiesResponse struct {
	Data []struct {
		Name        *string `json:"name"`
		State       string  `json:"state"`
		Region      string  `json:"region"`
		Country     *string `json:"country"`
		CountryCode *string `json:"countryCode"`
	} `json:"data"`
}

// SuggestCities returns the most populous cities whose name starts with prefix.
func (c *Client) SuggestCities(ctx context.Context, prefix string) ([]domain.CitySuggestion, error) {
	params := url.Values{
		"namePrefix": {prefix},
		"limit":      {strconv.Itoa(MaxSuggestions)},
		"sort":       {"-population"},
		"types":      {"CITY"},
	}
	var raw citiesResponse
	if err := c.up.GetJSON(ctx, endpoint, params, &raw); err != nil {
		return nil, err
	}

	out := make([]domain.CitySuggestion, 0, len(raw.Data))
	for i, d := range raw.Data {
		if d.Name == nil || d.Country == nil || d.CountryCode == nil {
			return nil, fmt.Errorf("%w: geodb: city %d missing name or country", domain.ErrUpstream, i)
		}
		state := d.State
		if state == "" {
			state = d.Region
		}
		out = append(out, domain.CitySuggestion{
			Name:        *d.Name,
			State:       state,
			Country:     *d.Country,
			CountryCode: *d.CountryCode,
		})
	}
	return out, nil
}
