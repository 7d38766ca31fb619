// Package query builds the search payloads POSTed to the content endpoints.
// The payloads follow the backend's Elasticsearch query DSL; key names and
// values are part of the wire contract.
package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SearchQuery is a JSON object body for a search endpoint
type SearchQuery map[string]any

const (
	eventPageSize = 30
	newsPageSize  = 30
	videoPageSize = 10
)

var (
	eventFields = []string{"venue", "name", "timezone", "start_time", "url", "capacity", "attendee_count", "event_type_name", "description"}
	newsFields  = []string{"title", "body", "excerpt", "created_at", "url", "image_url"}
	videoFields = []string{"title", "videoId", "description", "created_at"}
)

// Events builds the query for upcoming events within radiusMiles of a point,
// sorted by date and then by plane distance.
func Events(latitude, longitude, radiusMiles float64) SearchQuery {
	location := map[string]any{
		"lat": latitude,
		"lon": longitude,
	}

	return SearchQuery{
		"sort": []any{
			map[string]any{
				"event_date": map[string]any{"order": "asc"},
			},
			map[string]any{
				"_geo_distance": map[string]any{
					"location":      location,
					"order":         "asc",
					"unit":          "mi",
					"distance_type": "plane",
				},
			},
		},
		"from":    0,
		"size":    eventPageSize,
		"_source": fields(eventFields),
		"query": map[string]any{
			"filtered": map[string]any{
				"query": map[string]any{
					"match_all": map[string]any{},
				},
				"filter": map[string]any{
					"bool": map[string]any{
						"must": []any{
							map[string]any{
								"range": map[string]any{
									"event_date": map[string]any{
										"lte": "now+6M/d",
										"gte": "now",
									},
								},
							},
							map[string]any{
								"geo_distance": map[string]any{
									"distance": FormatMiles(radiusMiles),
									"location": map[string]any{
										"lat": latitude,
										"lon": longitude,
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

// News builds the news feed query: newest first, link-outs and issue pages excluded
func News() SearchQuery {
	return SearchQuery{
		"from":    0,
		"size":    newsPageSize,
		"_source": fields(newsFields),
		"query": map[string]any{
			"query_string": map[string]any{
				"default_field": "article_type",
				"query":         "NOT ExternalLink OR NOT Issues",
			},
		},
		"sort": map[string]any{
			"created_at": map[string]any{"order": "desc"},
		},
	}
}

// Videos builds the query for the most recent videos
func Videos() SearchQuery {
	return SearchQuery{
		"from":    0,
		"size":    videoPageSize,
		"_source": fields(videoFields),
		"sort": map[string]any{
			"created_at": map[string]any{"order": "desc"},
		},
	}
}

// FormatMiles renders a distance for the geo_distance filter, e.g. "5.0mi".
// Integral values keep one decimal place.
func FormatMiles(miles float64) string {
	s := strconv.FormatFloat(miles, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s + "mi"
}

// ParseRadius reads a search radius in miles. Only positive finite values
// are accepted; NaN and infinities would not render as a DSL distance.
func ParseRadius(s string) (float64, error) {
	r, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, fmt.Errorf("invalid radius %q", s)
	}
	return r, nil
}

// fields copies the selection so callers cannot alias package state
func fields(src []string) []string {
	out := make([]string, len(src))
	copy(out, src)
	return out
}
