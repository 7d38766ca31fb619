package query

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshal(t *testing.T, q SearchQuery) string {
	t.Helper()
	b, err := json.Marshal(q)
	require.NoError(t, err)
	return string(b)
}

func TestEvents(t *testing.T) {
	q := Events(37.7749, -122.4194, 5)

	assert.JSONEq(t, `{
		"sort": [
			{"event_date": {"order": "asc"}},
			{"_geo_distance": {
				"location": {"lat": 37.7749, "lon": -122.4194},
				"order": "asc",
				"unit": "mi",
				"distance_type": "plane"
			}}
		],
		"from": 0,
		"size": 30,
		"_source": ["venue", "name", "timezone", "start_time", "url", "capacity", "attendee_count", "event_type_name", "description"],
		"query": {
			"filtered": {
				"query": {"match_all": {}},
				"filter": {
					"bool": {
						"must": [
							{"range": {"event_date": {"lte": "now+6M/d", "gte": "now"}}},
							{"geo_distance": {"distance": "5.0mi", "location": {"lat": 37.7749, "lon": -122.4194}}}
						]
					}
				}
			}
		}
	}`, marshal(t, q))
}

func TestEvents_Deterministic(t *testing.T) {
	a := Events(1, 2, 3.5)
	b := Events(1, 2, 3.5)
	assert.Equal(t, a, b)
	assert.Equal(t, marshal(t, a), marshal(t, b))
}

func TestNews(t *testing.T) {
	assert.JSONEq(t, `{
		"from": 0,
		"size": 30,
		"_source": ["title", "body", "excerpt", "created_at", "url", "image_url"],
		"query": {
			"query_string": {
				"default_field": "article_type",
				"query": "NOT ExternalLink OR NOT Issues"
			}
		},
		"sort": {"created_at": {"order": "desc"}}
	}`, marshal(t, News()))
}

func TestVideos(t *testing.T) {
	assert.JSONEq(t, `{
		"from": 0,
		"size": 10,
		"_source": ["title", "videoId", "description", "created_at"],
		"sort": {"created_at": {"order": "desc"}}
	}`, marshal(t, Videos()))
}

func TestEvents_MatchAllIsEmptyObject(t *testing.T) {
	filtered := Events(0, 0, 5)["query"].(map[string]any)["filtered"].(map[string]any)
	inner := filtered["query"].(map[string]any)

	assert.Equal(t, map[string]any{}, inner["match_all"])
}

func TestQueriesAreIndependent(t *testing.T) {
	a := News()
	a["_source"].([]string)[0] = "mutated"

	b := News()
	assert.Equal(t, "title", b["_source"].([]string)[0])
}

func TestFormatMiles(t *testing.T) {
	tests := []struct {
		miles float64
		want  string
	}{
		{5, "5.0mi"},
		{0, "0.0mi"},
		{2.5, "2.5mi"},
		{100, "100.0mi"},
		{0.25, "0.25mi"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMiles(tt.miles))
	}
}

func TestParseRadius(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "5", want: 5},
		{in: "2.5", want: 2.5},
		{in: " 10 ", want: 10},
		{in: "0", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "ten", wantErr: true},
		{in: "NaN", wantErr: true},
		{in: "Inf", wantErr: true},
		{in: "-Inf", wantErr: true},
		{in: "+Infinity", wantErr: true},
		{in: "1e400", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRadius(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
