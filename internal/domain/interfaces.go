package domain

import "github.com/mmcdole/movement/internal/future"

// JSONClient sends a JSON body to an endpoint and yields the decoded response.
// The decoded value is untyped: map[string]any, []any or a scalar.
type JSONClient interface {
	JSONPromise(url, method string, body any) *future.Future[any]
}

// Geocoder resolves a postal address or zip code to a coordinate
type Geocoder interface {
	Geocode(address string) *future.Future[Coordinate]
}

// URLProvider supplies the search endpoint for each content type
type URLProvider interface {
	EventsURL() string
	NewsFeedURL() string
	VideoURL() string
}

// EventDeserializer turns a decoded events response into events
type EventDeserializer interface {
	DeserializeEvents(response map[string]any) []Event
}

// NewsArticleDeserializer turns a decoded news response into articles
type NewsArticleDeserializer interface {
	DeserializeNewsArticles(response map[string]any) []NewsArticle
}

// VideoDeserializer turns a decoded video response into videos
type VideoDeserializer interface {
	DeserializeVideos(response map[string]any) []Video
}
