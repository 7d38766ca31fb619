// Package deserialize converts decoded search responses into domain values.
//
// Responses carry records at hits.hits[i]._source. A record missing a
// required field is skipped; a missing optional field leaves the zero value
// (or nil) on the produced object. Record order is preserved.
package deserialize

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// sources extracts the _source objects from an Elasticsearch-style response
func sources(response map[string]any) []map[string]any {
	outer, ok := response["hits"].(map[string]any)
	if !ok {
		return nil
	}
	hits, ok := outer["hits"].([]any)
	if !ok {
		return nil
	}

	out := make([]map[string]any, 0, len(hits))
	for _, h := range hits {
		hit, ok := h.(map[string]any)
		if !ok {
			continue
		}
		source, ok := hit["_source"].(map[string]any)
		if !ok {
			continue
		}
		out = append(out, source)
	}
	return out
}

// stringField returns a trimmed, non-empty string value
func stringField(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

func optionalString(m map[string]any, key string) string {
	s, _ := stringField(m, key)
	return s
}

// intField accepts JSON numbers and numeric strings
func intField(m map[string]any, key string) (int, bool) {
	switch v := m[key].(type) {
	case float64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	}
	return 0, false
}

func optionalInt(m map[string]any, key string) *int {
	n, ok := intField(m, key)
	if !ok {
		return nil
	}
	return &n
}

// floatField accepts JSON numbers and numeric strings
func floatField(m map[string]any, key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return 0, false
}

// urlField requires an absolute URL
func urlField(m map[string]any, key string) (*url.URL, bool) {
	s, ok := stringField(m, key)
	if !ok {
		return nil, false
	}
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		return nil, false
	}
	return u, true
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// timeField parses a timestamp; values without an offset are read in loc
func timeField(m map[string]any, key string, loc *time.Location) (time.Time, bool) {
	s, ok := stringField(m, key)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
