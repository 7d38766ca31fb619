package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/movement/internal/domain"
	"github.com/mmcdole/movement/internal/format"
	"github.com/mmcdole/movement/internal/tui/styles"
)

// Inspector displays the selected article, event or video
type Inspector struct {
	item     any
	width    int
	height   int
	focused  bool
	viewport viewport.Model
	now      func() time.Time
}

// NewInspector creates an empty inspector
func NewInspector() Inspector {
	return Inspector{
		viewport: viewport.New(0, 0),
		now:      time.Now,
	}
}

// SetItem sets the item to display and scrolls to the top
func (i *Inspector) SetItem(item any) {
	i.item = item
	i.refresh()
	i.viewport.GotoTop()
}

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
	frameW, frameH := styles.InactiveBorder.GetFrameSize()
	i.viewport.Width = max(width-frameW-1, 0)
	i.viewport.Height = max(height-frameH, 0)
	i.refresh()
}

func (i *Inspector) SetFocused(focused bool) { i.focused = focused }

// HasItem returns true if there is an item to display
func (i Inspector) HasItem() bool {
	return i.item != nil
}

// Update scrolls the body while focused
func (i Inspector) Update(msg tea.Msg) (Inspector, tea.Cmd) {
	if !i.focused {
		return i, nil
	}
	var cmd tea.Cmd
	i.viewport, cmd = i.viewport.Update(msg)
	return i, cmd
}

func (i Inspector) View() string {
	style := styles.InactiveBorder
	if i.focused {
		style = styles.ActiveBorder
	}
	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(i.width-frameW, 0)).
		Height(max(i.height-frameH, 0)).
		Render(i.viewport.View())
}

func (i *Inspector) refresh() {
	i.viewport.SetContent(i.render(max(i.viewport.Width, 10)))
}

func (i Inspector) render(width int) string {
	wrap := lipgloss.NewStyle().Width(width)
	now := i.now()

	var lines []string
	add := func(s string) { lines = append(lines, s) }

	switch item := i.item.(type) {
	case domain.NewsArticle:
		add(wrap.Inherit(styles.TitleStyle).Render(item.Title))
		add(styles.SubtitleStyle.Render(item.Date.Format("January 2, 2006") + " · " + format.Abbreviated(item.Date, now)))
		add("")
		body := format.PlainText(item.Body)
		if body == "" {
			body = item.Excerpt
		}
		add(wrap.Render(body))
		if item.URL != nil {
			add("")
			add(styles.DimStyle.Render(item.URL.String()))
		}

	case domain.Event:
		add(wrap.Inherit(styles.TitleStyle).Render(item.Name))
		add(styles.AccentStyle.Render(format.EventTime(item.StartTime)))
		if item.EventTypeName != "" {
			add(styles.SubtitleStyle.Render(item.EventTypeName))
		}
		if v := item.Venue; v != nil {
			add("")
			for _, l := range []string{v.Name, v.Address1, v.Address2, cityLine(v)} {
				if l != "" {
					add(wrap.Render(l))
				}
			}
		}
		if item.Capacity != nil && item.AttendeeCount != nil {
			add(styles.DimStyle.Render(fmt.Sprintf("%d of %d attending", *item.AttendeeCount, *item.Capacity)))
		}
		add("")
		add(wrap.Render(format.PlainText(item.Description)))
		if item.URL != nil {
			add("")
			add(styles.DimStyle.Render("RSVP: " + item.URL.String()))
		}

	case domain.Video:
		add(wrap.Inherit(styles.TitleStyle).Render(item.Title))
		add(styles.SubtitleStyle.Render(item.Date.Format("January 2, 2006") + " · " + format.Abbreviated(item.Date, now)))
		add("")
		add(wrap.Render(item.Description))
		add("")
		add(styles.DimStyle.Render(item.URL().String()))

	default:
		add(styles.DimStyle.Render("Nothing selected"))
	}

	return strings.Join(lines, "\n")
}

func cityLine(v *domain.Venue) string {
	parts := make([]string, 0, 2)
	if v.City != "" {
		parts = append(parts, v.City)
	}
	if v.State != "" {
		parts = append(parts, v.State)
	}
	line := strings.Join(parts, ", ")
	if v.Zip != "" {
		line = strings.TrimSpace(line + " " + v.Zip)
	}
	return line
}
