// Package geocode resolves postal addresses against a Nominatim-style
// search endpoint.
package geocode

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mmcdole/movement/internal/domain"
	"github.com/mmcdole/movement/internal/future"
)

// Client implements domain.Geocoder on top of a JSON transport
type Client struct {
	endpoint string
	client   domain.JSONClient
}

// NewClient creates a geocoder querying endpoint through client
func NewClient(endpoint string, client domain.JSONClient) *Client {
	return &Client{endpoint: endpoint, client: client}
}

// Geocode implements domain.Geocoder. Every failure is a *domain.GeocodingError.
func (c *Client) Geocode(address string) *future.Future[domain.Coordinate] {
	address = strings.TrimSpace(address)
	if address == "" {
		return future.Failed[domain.Coordinate](&domain.GeocodingError{Address: address, Err: domain.ErrAddressNotFound})
	}

	reqURL, err := c.searchURL(address)
	if err != nil {
		return future.Failed[domain.Coordinate](&domain.GeocodingError{Address: address, Err: err})
	}

	promise := future.NewPromise[domain.Coordinate]()
	c.client.JSONPromise(reqURL, http.MethodGet, nil).
		OnSuccess(func(raw any) {
			coord, err := firstCoordinate(raw)
			if err != nil {
				promise.Failure(&domain.GeocodingError{Address: address, Err: err})
				return
			}
			promise.Success(coord)
		}).
		OnFailure(func(err error) {
			promise.Failure(&domain.GeocodingError{Address: address, Err: err})
		})

	return promise.Future()
}

func (c *Client) searchURL(address string) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid geocoder endpoint: %w", err)
	}
	q := u.Query()
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// firstCoordinate reads [{"lat": "37.7", "lon": "-122.4", ...}, ...]
func firstCoordinate(raw any) (domain.Coordinate, error) {
	places, ok := raw.([]any)
	if !ok {
		return domain.Coordinate{}, fmt.Errorf("expected a list of places, got %T", raw)
	}
	if len(places) == 0 {
		return domain.Coordinate{}, domain.ErrAddressNotFound
	}
	place, ok := places[0].(map[string]any)
	if !ok {
		return domain.Coordinate{}, fmt.Errorf("expected a place object, got %T", places[0])
	}

	lat, err := coordinatePart(place, "lat")
	if err != nil {
		return domain.Coordinate{}, err
	}
	lon, err := coordinatePart(place, "lon")
	if err != nil {
		return domain.Coordinate{}, err
	}
	return domain.Coordinate{Latitude: lat, Longitude: lon}, nil
}

func coordinatePart(place map[string]any, key string) (float64, error) {
	var f float64
	switch v := place[key].(type) {
	case string:
		var err error
		if f, err = strconv.ParseFloat(v, 64); err != nil {
			return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
	case float64:
		f = v
	default:
		return 0, fmt.Errorf("missing %s", key)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid %s %v", key, f)
	}
	return f, nil
}
