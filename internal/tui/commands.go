package tui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/movement/internal/domain"
)

// FetchTimeout bounds how long a command waits for a repository result
var FetchTimeout = 60 * time.Second

// FetchNewsCmd loads the news feed
func FetchNewsCmd(repo domain.NewsArticleRepository) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), FetchTimeout)
		defer cancel()

		articles, err := repo.FetchNewsArticles().Await(ctx)
		if err != nil {
			return ErrMsg{Err: err, Tab: TabNews, Context: "loading news"}
		}
		return NewsLoadedMsg{Articles: articles}
	}
}

// EventSearch identifies one event search. Seq orders searches so a newer
// one supersedes any still in flight.
type EventSearch struct {
	ZipCode     string
	RadiusMiles float64
	Seq         int
}

// FetchEventsCmd searches for events near a ZIP code and remembers the
// search on success
func FetchEventsCmd(repo domain.EventRepository, settings domain.SettingsRepository, logger *slog.Logger, search EventSearch) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), FetchTimeout)
		defer cancel()

		result, err := repo.FetchEvents(search.ZipCode, search.RadiusMiles).Await(ctx)
		if err != nil {
			return ErrMsg{Err: err, Tab: TabEvents, Context: "searching events", Seq: search.Seq}
		}
		if settings != nil {
			if err := settings.SaveEventSearch(search.ZipCode, search.RadiusMiles); err != nil {
				logger.Warn("failed to save event search", "zip", search.ZipCode, "error", err)
			}
		}
		return EventsLoadedMsg{Result: result, Search: search}
	}
}

// FetchVideosCmd loads the video list
func FetchVideosCmd(repo domain.VideoRepository) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), FetchTimeout)
		defer cancel()

		videos, err := repo.FetchVideos().Await(ctx)
		if err != nil {
			return ErrMsg{Err: err, Tab: TabVideos, Context: "loading videos"}
		}
		return VideosLoadedMsg{Videos: videos}
	}
}

// ClearStatusCmd clears the status bar after d
func ClearStatusCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return StatusMsg{}
	})
}
