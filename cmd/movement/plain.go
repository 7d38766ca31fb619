package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/mmcdole/movement/internal/adapter"
	"github.com/mmcdole/movement/internal/domain"
	"github.com/mmcdole/movement/internal/format"
	"github.com/mmcdole/movement/internal/query"
)

// runPlain prints one content list and exits. Used for subcommands and
// when stdout is not a terminal.
func runPlain(w io.Writer, args []string, cfg *adapter.Config, repos repositories, settings domain.SettingsRepository) error {
	command := "news"
	if len(args) > 0 {
		command = args[0]
	}

	// Geocoding and search each get a full HTTP timeout
	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.HTTP.Timeout+5*time.Second)
	defer cancel()

	switch command {
	case "news":
		articles, err := repos.news.FetchNewsArticles().Await(ctx)
		if err != nil {
			return fmt.Errorf("loading news: %w", err)
		}
		printNews(w, articles, time.Now())

	case "videos":
		videos, err := repos.videos.FetchVideos().Await(ctx)
		if err != nil {
			return fmt.Errorf("loading videos: %w", err)
		}
		printVideos(w, videos, time.Now())

	case "events":
		zip, radius, err := eventArgs(args[1:], cfg, settings)
		if err != nil {
			return err
		}
		result, err := repos.events.FetchEvents(zip, radius).Await(ctx)
		if err != nil {
			return fmt.Errorf("searching events: %w", err)
		}
		if err := settings.SaveEventSearch(zip, radius); err != nil {
			return fmt.Errorf("saving event search: %w", err)
		}
		printEvents(w, result, zip, radius)

	default:
		return fmt.Errorf("unknown command %q", command)
	}
	return nil
}

// eventArgs resolves the ZIP code and radius from arguments, then the last
// saved search, then configuration
func eventArgs(args []string, cfg *adapter.Config, settings domain.SettingsRepository) (string, float64, error) {
	zip, radius := cfg.Events.DefaultZip, cfg.Events.RadiusMiles
	if lastZip, lastRadius, ok := settings.LastEventSearch(); ok {
		zip, radius = lastZip, lastRadius
	}

	if len(args) > 0 {
		zip = args[0]
	}
	if len(args) > 1 {
		r, err := query.ParseRadius(args[1])
		if err != nil {
			return "", 0, err
		}
		radius = r
	}
	if len(args) > 2 {
		return "", 0, errors.New("usage: movement events <zip> [radius]")
	}
	if zip == "" {
		return "", 0, errors.New("a ZIP code is required: movement events <zip> [radius]")
	}
	return zip, radius, nil
}

func printNews(w io.Writer, articles []domain.NewsArticle, now time.Time) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, a := range articles {
		link := ""
		if a.URL != nil {
			link = a.URL.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", format.Abbreviated(a.Date, now), a.Title, link)
	}
	tw.Flush()
}

func printVideos(w io.Writer, videos []domain.Video, now time.Time) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, v := range videos {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", format.Abbreviated(v.Date, now), v.Title, v.URL())
	}
	tw.Flush()
}

func printEvents(w io.Writer, result domain.EventSearchResult, zip string, radius float64) {
	fmt.Fprintf(w, "%d events within %s mi of %s (%s)\n\n",
		len(result.Events), strconv.FormatFloat(radius, 'f', -1, 64), zip, result.Center)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range result.Events {
		where := ""
		if e.Venue != nil {
			where = e.Venue.City
			if e.Venue.State != "" {
				where += ", " + e.Venue.State
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", format.EventTime(e.StartTime), e.Name, where)
	}
	tw.Flush()
}
