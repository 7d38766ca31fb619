package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/movement/internal/domain"
	"github.com/mmcdole/movement/internal/format"
	"github.com/mmcdole/movement/internal/query"
	"github.com/mmcdole/movement/internal/tui/components"
	"github.com/mmcdole/movement/internal/tui/styles"
)

// Tab identifies a content list
type Tab int

const (
	TabNews Tab = iota
	TabEvents
	TabVideos
	tabCount
)

var tabTitles = [tabCount]string{"News", "Events", "Videos"}

func (t Tab) String() string {
	if t < 0 || t >= tabCount {
		return "Unknown"
	}
	return tabTitles[t]
}

// ApplicationState represents the current input mode
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateReading                   // Inspector focused
	StateZipInput
	StateHelp
)

// Layout proportions
const (
	ListColumnPercent = 40
	MinColumnWidth    = 20

	// Tab bar and footer
	ChromeHeight = 2
)

// Deps are the repositories the application fetches from
type Deps struct {
	News     domain.NewsArticleRepository
	Events   domain.EventRepository
	Videos   domain.VideoRepository
	Settings domain.SettingsRepository
	Logger   *slog.Logger

	DefaultZipCode     string
	DefaultRadiusMiles float64
}

// Model is the main Bubble Tea model for the application
type Model struct {
	State ApplicationState
	Ready bool
	Tab   Tab

	deps Deps

	Lists     [tabCount]*components.ListColumn
	Inspector components.Inspector
	Spinner   spinner.Model
	ZipInput  textinput.Model
	Help      help.Model

	// Data
	Articles     []domain.NewsArticle
	EventResult  domain.EventSearchResult
	Videos       []domain.Video
	ZipCode      string
	RadiusMiles  float64
	loaded       [tabCount]bool
	inFlight     [tabCount]bool
	eventsPrompt bool // No ZIP code known yet
	eventSeq     int  // Latest event search; older results are dropped

	Width  int
	Height int

	StatusMsg   string
	StatusIsErr bool

	now func() time.Time
}

// NewModel creates a new application model
func NewModel(deps Deps) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	zi := textinput.New()
	zi.Placeholder = "ZIP code [radius in miles]"
	zi.CharLimit = 24
	zi.Width = 30
	zi.Prompt = "ZIP: "
	zi.PromptStyle = styles.FilterPromptStyle
	zi.PlaceholderStyle = styles.DimStyle

	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	m := Model{
		State:       StateBrowsing,
		deps:        deps,
		Inspector:   components.NewInspector(),
		Spinner:     sp,
		ZipInput:    zi,
		Help:        help.New(),
		RadiusMiles: deps.DefaultRadiusMiles,
		now:         time.Now,
	}
	for t := TabNews; t < tabCount; t++ {
		m.Lists[t] = components.NewListColumn(t.String())
	}

	m.ZipCode = deps.DefaultZipCode
	if deps.Settings != nil {
		if zip, radius, ok := deps.Settings.LastEventSearch(); ok {
			m.ZipCode, m.RadiusMiles = zip, radius
		}
	}
	if m.RadiusMiles <= 0 {
		m.RadiusMiles = 50
	}
	m.eventsPrompt = m.ZipCode == ""
	if m.eventsPrompt {
		m.Lists[TabEvents].SetLoading("Press z to search for events near you")
	}

	// News is the landing tab; Init starts its fetch
	m.inFlight[TabNews] = true
	m.Lists[TabNews].SetLoading(m.loadingText(TabNews))

	m.focusList()
	return m
}

// Init fetches the news feed
func (m Model) Init() tea.Cmd {
	return tea.Batch(FetchNewsCmd(m.deps.News), m.Spinner.Tick)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runMsg:
		msg.fn()
		return m, nil

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		m.refreshLoading()
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case NewsLoadedMsg:
		m.inFlight[TabNews] = false
		m.loaded[TabNews] = true
		m.Articles = msg.Articles
		rows := make([]components.Row, len(msg.Articles))
		for i, a := range msg.Articles {
			rows[i] = components.Row{Title: a.Title, Meta: format.Abbreviated(a.Date, m.now()), Detail: a.Excerpt}
		}
		m.Lists[TabNews].SetRows(rows)
		m.updateInspector()
		return m, nil

	case EventsLoadedMsg:
		if msg.Search.Seq != m.eventSeq {
			return m, nil
		}
		m.inFlight[TabEvents] = false
		m.loaded[TabEvents] = true
		m.EventResult = msg.Result
		rows := make([]components.Row, len(msg.Result.Events))
		for i, e := range msg.Result.Events {
			rows[i] = components.Row{Title: e.Name, Meta: e.StartTime.Format("Jan 2"), Detail: eventDetail(e)}
		}
		m.Lists[TabEvents].SetRows(rows)
		m.updateInspector()
		cmd := m.setStatus(fmt.Sprintf("%d events within %s mi of %s", len(rows), formatRadius(msg.Search.RadiusMiles), msg.Search.ZipCode), false)
		return m, cmd

	case VideosLoadedMsg:
		m.inFlight[TabVideos] = false
		m.loaded[TabVideos] = true
		m.Videos = msg.Videos
		rows := make([]components.Row, len(msg.Videos))
		for i, v := range msg.Videos {
			rows[i] = components.Row{Title: v.Title, Meta: format.Abbreviated(v.Date, m.now()), Detail: v.Description}
		}
		m.Lists[TabVideos].SetRows(rows)
		m.updateInspector()
		return m, nil

	case ErrMsg:
		if msg.Tab == TabEvents && msg.Seq != m.eventSeq {
			return m, nil
		}
		if msg.Tab >= 0 && msg.Tab < tabCount {
			m.inFlight[msg.Tab] = false
			m.Lists[msg.Tab].SetError(msg.Err)
		}
		cmd := m.setStatus(msg.Error(), true)
		return m, cmd

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.State {
	case StateZipInput:
		return m.handleZipInput(msg)
	case StateHelp:
		m.State = StateBrowsing
		m.Help.ShowAll = false
		return m, nil
	case StateReading:
		if key.Matches(msg, Keys.Back) {
			m.focusList()
			return m, nil
		}
		if key.Matches(msg, Keys.Quit) {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.Inspector, cmd = m.Inspector.Update(msg)
		return m, cmd
	}

	list := m.Lists[m.Tab]

	// Typing into the filter swallows every key
	if list.IsFilterTyping() {
		_, cmd := list.Update(msg)
		m.updateInspector()
		return m, cmd
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		m.Help.ShowAll = true
		return m, nil
	case key.Matches(msg, Keys.NextTab):
		return m.switchTab((m.Tab + 1) % tabCount)
	case key.Matches(msg, Keys.PrevTab):
		return m.switchTab((m.Tab + tabCount - 1) % tabCount)
	case key.Matches(msg, Keys.News):
		return m.switchTab(TabNews)
	case key.Matches(msg, Keys.Events):
		return m.switchTab(TabEvents)
	case key.Matches(msg, Keys.Videos):
		return m.switchTab(TabVideos)
	case key.Matches(msg, Keys.ZipCode):
		return m.openZipInput()
	case key.Matches(msg, Keys.Refresh):
		cmd := m.fetch(m.Tab)
		return m, cmd
	case key.Matches(msg, Keys.Filter):
		list.ToggleFilter()
		return m, textinput.Blink
	case key.Matches(msg, Keys.Open) && m.Inspector.HasItem():
		m.State = StateReading
		list.SetFocused(false)
		m.Inspector.SetFocused(true)
		return m, nil
	}

	_, cmd := list.Update(msg)
	m.updateInspector()
	return m, cmd
}

func (m Model) handleZipInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.State = StateBrowsing
		m.ZipInput.Blur()
		return m, nil
	case tea.KeyEnter:
		zip, radius, err := parseZipInput(m.ZipInput.Value(), m.RadiusMiles)
		if err != nil {
			cmd := m.setStatus(err.Error(), true)
			return m, cmd
		}
		m.State = StateBrowsing
		m.ZipInput.Blur()
		m.ZipCode, m.RadiusMiles = zip, radius
		m.eventsPrompt = false
		m.Tab = TabEvents
		m.focusList()
		cmd := m.fetch(TabEvents)
		return m, cmd
	}

	var cmd tea.Cmd
	m.ZipInput, cmd = m.ZipInput.Update(msg)
	return m, cmd
}

func (m Model) openZipInput() (tea.Model, tea.Cmd) {
	m.State = StateZipInput
	value := m.ZipCode
	if value != "" {
		value += " " + formatRadius(m.RadiusMiles)
	}
	m.ZipInput.SetValue(value)
	m.ZipInput.CursorEnd()
	cmd := m.ZipInput.Focus()
	return m, cmd
}

func (m Model) switchTab(tab Tab) (tea.Model, tea.Cmd) {
	m.Lists[m.Tab].SetFocused(false)
	m.Tab = tab
	m.focusList()
	m.updateInspector()

	if m.loaded[tab] || m.inFlight[tab] {
		return m, nil
	}
	if tab == TabEvents && m.eventsPrompt {
		return m.openZipInput()
	}
	cmd := m.fetch(tab)
	return m, cmd
}

// fetch starts loading tab. News and videos ignore the request while a load
// is in flight; an event search always starts and supersedes the previous one.
func (m *Model) fetch(tab Tab) tea.Cmd {
	if m.inFlight[tab] && tab != TabEvents {
		return nil
	}

	var cmd tea.Cmd
	switch tab {
	case TabNews:
		cmd = FetchNewsCmd(m.deps.News)
	case TabVideos:
		cmd = FetchVideosCmd(m.deps.Videos)
	case TabEvents:
		if m.ZipCode == "" {
			m.eventsPrompt = true
			return nil
		}
		m.eventSeq++
		cmd = FetchEventsCmd(m.deps.Events, m.deps.Settings, m.deps.Logger, EventSearch{
			ZipCode:     m.ZipCode,
			RadiusMiles: m.RadiusMiles,
			Seq:         m.eventSeq,
		})
	default:
		return nil
	}

	m.inFlight[tab] = true
	m.Lists[tab].SetLoading(m.loadingText(tab))
	return cmd
}

func (m *Model) loadingText(tab Tab) string {
	text := m.Spinner.View() + " Loading " + strings.ToLower(tab.String()) + "..."
	if tab == TabEvents {
		text = fmt.Sprintf("%s Searching within %s mi of %s...", m.Spinner.View(), formatRadius(m.RadiusMiles), m.ZipCode)
	}
	return text
}

func (m *Model) refreshLoading() {
	for t := TabNews; t < tabCount; t++ {
		if m.inFlight[t] {
			m.Lists[t].SetLoading(m.loadingText(t))
		}
	}
}

func (m *Model) focusList() {
	m.State = StateBrowsing
	m.Inspector.SetFocused(false)
	for t := TabNews; t < tabCount; t++ {
		m.Lists[t].SetFocused(t == m.Tab)
	}
}

// updateInspector shows the selected item of the current tab
func (m *Model) updateInspector() {
	idx := m.Lists[m.Tab].SelectedIndex()
	var item any
	switch m.Tab {
	case TabNews:
		if idx >= 0 && idx < len(m.Articles) {
			item = m.Articles[idx]
		}
	case TabEvents:
		if idx >= 0 && idx < len(m.EventResult.Events) {
			item = m.EventResult.Events[idx]
		}
	case TabVideos:
		if idx >= 0 && idx < len(m.Videos) {
			item = m.Videos[idx]
		}
	}
	m.Inspector.SetItem(item)
}

func (m *Model) updateLayout() {
	height := max(m.Height-ChromeHeight, 3)
	listWidth := max(m.Width*ListColumnPercent/100, MinColumnWidth)
	inspectorWidth := max(m.Width-listWidth, MinColumnWidth)

	for t := TabNews; t < tabCount; t++ {
		m.Lists[t].SetSize(listWidth, height)
	}
	m.Inspector.SetSize(inspectorWidth, height)
	m.Help.Width = m.Width
}

func (m *Model) setStatus(message string, isErr bool) tea.Cmd {
	m.StatusMsg = message
	m.StatusIsErr = isErr
	return ClearStatusCmd(5 * time.Second)
}

// parseZipInput reads "ZIP [radius]". A missing radius keeps the current one.
func parseZipInput(input string, currentRadius float64) (string, float64, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 || len(fields) > 2 {
		return "", 0, errors.New("enter a ZIP code, optionally followed by a radius")
	}

	zip := fields[0]
	radius := currentRadius
	if len(fields) == 2 {
		r, err := query.ParseRadius(fields[1])
		if err != nil {
			return "", 0, err
		}
		radius = r
	}
	return zip, radius, nil
}

func formatRadius(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func eventDetail(e domain.Event) string {
	parts := []string{e.EventTypeName, e.Description}
	if v := e.Venue; v != nil {
		parts = append(parts, v.Name, v.City, v.State)
	}
	return strings.Join(parts, " ")
}

// tabBar renders the tab strip
func (m Model) tabBar() string {
	tabs := make([]string, 0, tabCount)
	for t := TabNews; t < tabCount; t++ {
		label := fmt.Sprintf("%d %s", int(t)+1, t)
		if t == m.Tab {
			tabs = append(tabs, styles.ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, styles.InactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
