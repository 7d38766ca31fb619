package domain

import "github.com/mmcdole/movement/internal/future"

// EventRepository searches for events near a postal address
type EventRepository interface {
	// FetchEvents geocodes zipCode, then searches for events within
	// radiusMiles of it
	FetchEvents(zipCode string, radiusMiles float64) *future.Future[EventSearchResult]
}

// NewsArticleRepository fetches the news feed
type NewsArticleRepository interface {
	FetchNewsArticles() *future.Future[[]NewsArticle]
}

// VideoRepository fetches the most recent videos
type VideoRepository interface {
	FetchVideos() *future.Future[[]Video]
}

// SettingsRepository persists user choices between runs
type SettingsRepository interface {
	// LastEventSearch returns the last zip code and radius used, ok=false if none
	LastEventSearch() (zipCode string, radiusMiles float64, ok bool)

	// SaveEventSearch records the zip code and radius of an event search
	SaveEventSearch(zipCode string, radiusMiles float64) error

	Close() error
}
