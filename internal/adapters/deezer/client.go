// Package deezer adapts Deezer track search to domain.TrackRecord.
package deezer

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"cityguide/internal/adapters/upstream"
	"cityguide/internal/domain"
)

const (
	endpoint = "/search"
	// tracks asked of the provider; several usually lack a preview
	searchLimit = 10
	// MaxTracks caps the list returned to callers.
	MaxTracks = 3
)

type Client struct{ up *upstream.Client }

// New needs no key: Deezer search is public.
func New(base string) *Client {
	return &Client{up: upstream.New("deezer", base, nil)}
}

type searchResponse struct {
	Data []struct {
		Title  *string `json:"title"`
		Artist *struct {
			Name *string `json:"name"`
		} `json:"artist"`
		Preview string `json:"preview"`
		Album   struct {
			CoverMedium string `json:"cover_medium"`
		} `json:"album"`
	} `json:"data"`
	// Deezer reports quota and bad queries with a 200 and an error object.
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// SearchTracks returns up to MaxTracks playable tracks in provider order.
func (c *Client) SearchTracks(ctx context.Context, query string) ([]domain.TrackRecord, error) {
	params := url.Values{
		"q":     {query},
		"limit": {strconv.Itoa(searchLimit)},
	}
	var raw searchResponse
	if err := c.up.GetJSON(ctx, endpoint, params, &raw); err != nil {
		return nil, err
	}
	if raw.Error != nil {
		return nil, fmt.Errorf("%w: deezer: %s: %s", domain.ErrUpstream, raw.Error.Type, raw.Error.Message)
	}

	out := make([]domain.TrackRecord, 0, MaxTracks)
	for i, t := range raw.Data {
		if len(out) == MaxTracks {
			break
		}
		if t.Preview == "" {
			continue
		}
		if t.Title == nil || t.Artist == nil || t.Artist.Name == nil {
			return nil, fmt.Errorf("%w: deezer: track %d missing title or artist", domain.ErrUpstream, i)
		}
		out = append(out, domain.TrackRecord{
			Title:      *t.Title,
			Artist:     *t.Artist.Name,
			PreviewURL: t.Preview,
			CoverURL:   t.Album.CoverMedium,
		})
	}
	return out, nil
}
