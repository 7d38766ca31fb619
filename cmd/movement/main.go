package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/mmcdole/movement/internal/adapter"
	"github.com/mmcdole/movement/internal/adapter/geocode"
	"github.com/mmcdole/movement/internal/adapter/jsonclient"
	"github.com/mmcdole/movement/internal/deserialize"
	"github.com/mmcdole/movement/internal/dispatch"
	"github.com/mmcdole/movement/internal/domain"
	"github.com/mmcdole/movement/internal/repository"
	"github.com/mmcdole/movement/internal/store"
	"github.com/mmcdole/movement/internal/tui"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// Nominatim's usage policy allows one request per second
const geocoderRequestsPerSecond = 1

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Usage = usage
	flag.Parse()

	if showVersion {
		fmt.Printf("movement %s\n", Version)
		return
	}

	if err := run(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: movement [flags] [command]

Without a command, movement starts the interactive browser.

Commands:
  news                    print the latest news
  events <zip> [radius]   print upcoming events near a ZIP code
  videos                  print the latest videos

Flags:
`)
	flag.PrintDefaults()
}

func run(args []string) error {
	// A missing .env is the normal case
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, logCloser, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		defer logCloser.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting movement", "version", Version)

	settings, err := store.NewSettingsStore(cfg.Store.Path)
	if err != nil {
		logger.Warn("settings unavailable, using memory only", "path", cfg.Store.Path, "error", err)
		if settings, err = store.NewSettingsStore(""); err != nil {
			return fmt.Errorf("failed to open settings: %w", err)
		}
	}
	defer settings.Close()

	if len(args) > 0 || !term.IsTerminal(int(os.Stdout.Fd())) {
		queue := dispatch.NewSerialQueue(logger)
		defer queue.Close()
		return runPlain(os.Stdout, args, cfg, newRepositories(cfg, queue, logger), settings)
	}

	queue := tui.NewProgramQueue()
	defer queue.Close()
	repos := newRepositories(cfg, queue, logger)

	model := tui.NewModel(tui.Deps{
		News:               repos.news,
		Events:             repos.events,
		Videos:             repos.videos,
		Settings:           settings,
		DefaultZipCode:     cfg.Events.DefaultZip,
		DefaultRadiusMiles: cfg.Events.RadiusMiles,
		Logger:             logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	queue.Attach(p.Send)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

type repositories struct {
	news   domain.NewsArticleRepository
	events domain.EventRepository
	videos domain.VideoRepository
}

// newRepositories wires the fetch layer, delivering every result on queue
func newRepositories(cfg *adapter.Config, queue dispatch.Queue, logger *slog.Logger) repositories {
	client := jsonclient.NewClient(jsonclient.Options{
		Timeout:           cfg.HTTP.Timeout,
		RequestsPerSecond: cfg.HTTP.RequestsPerSecond,
		Burst:             cfg.HTTP.Burst,
		UserAgent:         cfg.HTTP.UserAgent,
	}, logger.With("component", "search"))

	geocoderClient := jsonclient.NewClient(jsonclient.Options{
		Timeout:           cfg.HTTP.Timeout,
		RequestsPerSecond: geocoderRequestsPerSecond,
		Burst:             1,
		UserAgent:         cfg.Geocoder.UserAgent,
	}, logger.With("component", "geocoder"))

	urls := adapter.NewURLProvider(cfg.Search)

	return repositories{
		news:   repository.NewNewsArticleRepository(urls, client, deserialize.NewsArticles{}, queue),
		videos: repository.NewVideoRepository(urls, client, deserialize.Videos{}, queue),
		events: repository.NewEventRepository(
			geocode.NewClient(cfg.Geocoder.URL, geocoderClient),
			urls, client, deserialize.Events{}, queue,
		),
	}
}
