// Package unsplash adapts Unsplash photo search to domain.PhotoRecord.
package unsplash

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"cityguide/internal/adapters/upstream"
	"cityguide/internal/domain"
)

const endpoint = "/search/photos"

type Client struct{ up *upstream.Client }

func New(base, key string) *Client {
	return &Client{up: upstream.New("unsplash", base, map[string]string{
		"Authorization":  "Client-ID " + key,
		"Accept-Version": "v1",
	})}
}

type searchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
			Small   string `json:"small"`
			Thumb   string `json:"thumb"`
		} `json:"urls"`
		Color          *string `json:"color"`
		AltDescription *string `json:"alt_description"`
	} `json:"results"`
}

// SearchPhotos returns at most count landscape photos matching query.
func (c *Client) SearchPhotos(ctx context.Context, query string, count int) ([]domain.PhotoRecord, error) {
	params := url.Values{
		"query":       {query},
		"per_page":    {strconv.Itoa(count)},
		"orientation": {"landscape"},
	}
	var raw searchResponse
	if err := c.up.GetJSON(ctx, endpoint, params, &raw); err != nil {
		return nil, err
	}

	out := make([]domain.PhotoRecord, 0, min(len(raw.Results), count))
	for i, r := range raw.Results {
		if len(out) == count {
			break
		}
		thumb := r.URLs.Small
		if thumb == "" {
			thumb = r.URLs.Thumb
		}
		if r.URLs.Regular == "" || thumb == "" {
			return nil, fmt.Errorf("%w: unsplash: result %d has no image urls", domain.ErrUpstream, i)
		}
		p := domain.PhotoRecord{URL: r.URLs.Regular, ThumbnailURL: thumb, AltText: query}
		if r.Color != nil {
			p.DominantColor = *r.Color
		}
		if r.AltDescription != nil && *r.AltDescription != "" {
			p.AltText = *r.AltDescription
		}
		out = append(out, p)
	}
	return out, nil
}
