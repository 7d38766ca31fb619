package domain

import (
	"fmt"
	"net/url"
	"time"
)

// Coordinate is a WGS84 latitude/longitude pair
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// String formats the coordinate as "lat,lon"
func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Latitude, c.Longitude)
}

// Venue describes where an event takes place. Every field is optional.
type Venue struct {
	Name     string
	Address1 string
	Address2 string
	City     string
	State    string
	Zip      string
	Location *Coordinate // nil when the backend omits it
}

// Event is a campaign event returned by the events search endpoint
type Event struct {
	Name      string
	StartTime time.Time
	URL       *url.URL

	// Optional fields; zero/nil when absent
	Description   string
	Timezone      string
	EventTypeName string
	Venue         *Venue
	Capacity      *int
	AttendeeCount *int
}

// EventSearchResult pairs the geocoded search center with the events found
// around it. Events keep backend order (date, then distance).
type EventSearchResult struct {
	Center Coordinate
	Events []Event
}

// NewsArticle is an entry of the news feed
type NewsArticle struct {
	Title string
	Date  time.Time
	URL   *url.URL

	Body     string
	Excerpt  string
	ImageURL *url.URL // nil when the article has no image
}

// Video is a campaign video hosted on YouTube
type Video struct {
	Title      string
	Identifier string
	Date       time.Time

	Description string
}

// URL returns the watch URL for the video
func (v Video) URL() *url.URL {
	return &url.URL{
		Scheme:   "https",
		Host:     "www.youtube.com",
		Path:     "/watch",
		RawQuery: url.Values{"v": {v.Identifier}}.Encode(),
	}
}

// ThumbnailURL returns the default YouTube thumbnail for the video
func (v Video) ThumbnailURL() *url.URL {
	return &url.URL{
		Scheme: "https",
		Host:   "img.youtube.com",
		Path:   "/vi/" + v.Identifier + "/hqdefault.jpg",
	}
}
