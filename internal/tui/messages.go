package tui

import "github.com/mmcdole/movement/internal/domain"

// ErrMsg represents a failed fetch
type ErrMsg struct {
	Err     error
	Tab     Tab
	Context string
	Seq     int // Event search sequence; zero for other tabs
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

func (e ErrMsg) Unwrap() error { return e.Err }

// NewsLoadedMsg signals that the news feed has been fetched
type NewsLoadedMsg struct {
	Articles []domain.NewsArticle
}

// EventsLoadedMsg signals that an event search has completed
type EventsLoadedMsg struct {
	Result domain.EventSearchResult
	Search EventSearch
}

// VideosLoadedMsg signals that the video list has been fetched
type VideosLoadedMsg struct {
	Videos []domain.Video
}

// StatusMsg sets a status bar message
type StatusMsg struct {
	Message string
	IsError bool
}

// runMsg carries a closure scheduled on the program's delivery queue
type runMsg struct {
	fn func()
}
