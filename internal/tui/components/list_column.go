package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/movement/internal/search"
	"github.com/mmcdole/movement/internal/tui/styles"
)

// Layout constants for list columns
const (
	// Border adds 1 char on each side
	BorderWidth  = 2
	BorderHeight = 2

	// "↑ more" and "↓ more" each take 1 line
	ScrollIndicatorLines = 2
)

// Row is one entry in a list column
type Row struct {
	Title  string
	Meta   string // Right-hand annotation, e.g. "3d"
	Detail string // Searched by the filter, not rendered
}

// ListColumn is a scrollable, filterable list of rows
type ListColumn struct {
	rows []Row
	keys ListKeyMap

	cursor     int
	offset     int
	maxVisible int

	width   int
	height  int
	focused bool

	title   string
	loading string // Non-empty while loading; rendered in place of rows
	err     error

	filterActive bool
	filterInput  textinput.Model
	filtered     []search.Result
}

// NewListColumn creates an empty list column
func NewListColumn(title string) *ListColumn {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "filter"
	ti.CharLimit = 64
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return &ListColumn{
		title:       title,
		keys:        ListKeys,
		filterInput: ti,
	}
}

func (c *ListColumn) Update(msg tea.Msg) (*ListColumn, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)

	if c.filterActive && c.filterInput.Focused() {
		if isKey {
			switch {
			case key.Matches(keyMsg, c.keys.ClearFilter):
				c.ClearFilter()
				return c, nil
			case key.Matches(keyMsg, c.keys.KeepFilter):
				c.filterInput.Blur()
				return c, nil
			case keyMsg.Type == tea.KeyBackspace && c.filterInput.Value() == "":
				c.ClearFilter()
				return c, nil
			}
		}

		var cmd tea.Cmd
		c.filterInput, cmd = c.filterInput.Update(msg)
		c.applyFilter()
		return c, cmd
	}

	if !isKey {
		return c, nil
	}

	if c.filterActive {
		switch {
		case key.Matches(keyMsg, c.keys.ClearFilter):
			c.ClearFilter()
			return c, nil
		case key.Matches(keyMsg, c.keys.Filter):
			c.filterInput.Focus()
			return c, nil
		}
	}

	count := c.ItemCount()
	if count == 0 {
		return c, nil
	}

	switch {
	case key.Matches(keyMsg, c.keys.Down):
		if c.cursor < count-1 {
			c.cursor++
		}
	case key.Matches(keyMsg, c.keys.Up):
		if c.cursor > 0 {
			c.cursor--
		}
	case key.Matches(keyMsg, c.keys.First):
		c.cursor = 0
	case key.Matches(keyMsg, c.keys.Last):
		c.cursor = count - 1
	case key.Matches(keyMsg, c.keys.PageDown):
		c.cursor = min(c.cursor+max(c.maxVisible/2, 1), count-1)
	case key.Matches(keyMsg, c.keys.PageUp):
		c.cursor = max(c.cursor-max(c.maxVisible/2, 1), 0)
	}
	c.ensureVisible()

	return c, nil
}

func (c *ListColumn) View() string {
	style := styles.InactiveBorder
	if c.focused {
		style = styles.ActiveBorder
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(c.width-frameW, 0)).
		Height(max(c.height-frameH, 0)).
		Render(c.renderContent())
}

func (c *ListColumn) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.recalcMaxVisible()
	c.ensureVisible()
}

func (c *ListColumn) SetFocused(focused bool) { c.focused = focused }

func (c *ListColumn) Title() string { return c.title }

// SetRows replaces the content, keeping the cursor in range
func (c *ListColumn) SetRows(rows []Row) {
	c.rows = rows
	c.loading = ""
	c.err = nil
	c.applyFilter()
	if n := c.ItemCount(); c.cursor >= n {
		c.cursor = max(n-1, 0)
	}
	c.ensureVisible()
}

// SetLoading shows status in place of rows until SetRows or SetError
func (c *ListColumn) SetLoading(status string) { c.loading = status }

func (c *ListColumn) IsLoading() bool { return c.loading != "" }

// SetError shows err in place of rows. Existing rows are kept for the
// next successful load.
func (c *ListColumn) SetError(err error) {
	c.loading = ""
	c.err = err
}

// SelectedIndex returns the index into the rows passed to SetRows, or -1
func (c *ListColumn) SelectedIndex() int {
	if c.ItemCount() == 0 {
		return -1
	}
	return c.mapIndex(c.cursor)
}

// ItemCount returns the number of visible rows after filtering
func (c *ListColumn) ItemCount() int {
	if c.filterActive && c.filterInput.Value() != "" {
		return len(c.filtered)
	}
	return len(c.rows)
}

// ToggleFilter activates the filter input
func (c *ListColumn) ToggleFilter() {
	c.filterActive = true
	c.filterInput.Focus()
	c.recalcMaxVisible()
}

// IsFilterTyping returns true if filter is active AND input is focused
func (c *ListColumn) IsFilterTyping() bool {
	return c.filterActive && c.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all rows
func (c *ListColumn) ClearFilter() {
	c.filterActive = false
	c.filtered = nil
	c.filterInput.SetValue("")
	c.filterInput.Blur()
	c.recalcMaxVisible()
}

func (c *ListColumn) recalcMaxVisible() {
	// Interior minus title and scroll indicators
	c.maxVisible = c.height - BorderHeight - ScrollIndicatorLines - 1
	if c.filterActive {
		c.maxVisible--
	}
	if c.maxVisible < 1 {
		c.maxVisible = 1
	}
}

func (c *ListColumn) ensureVisible() {
	if c.maxVisible <= 0 {
		return
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.maxVisible {
		c.offset = c.cursor - c.maxVisible + 1
	}
}

func (c *ListColumn) applyFilter() {
	if !c.filterActive {
		return
	}
	items := make([]search.Item, len(c.rows))
	for i, r := range c.rows {
		items[i] = search.Item{Title: r.Title, Detail: r.Detail}
	}
	c.filtered = search.Filter(c.filterInput.Value(), items)
	c.cursor = 0
	c.offset = 0
}

func (c *ListColumn) mapIndex(i int) int {
	if c.filterActive && c.filterInput.Value() != "" {
		return c.filtered[i].Index
	}
	return i
}

func (c *ListColumn) matchedIndexes(i int) []int {
	if c.filterActive && c.filterInput.Value() != "" {
		return c.filtered[i].MatchedIndexes
	}
	return nil
}

// Rendering

func (c *ListColumn) renderContent() string {
	itemWidth := max(c.width-BorderWidth, 10)
	titleLine := styles.AccentStyle.Render(styles.Truncate(c.title, itemWidth))

	status := ""
	switch {
	case c.loading != "":
		status = styles.DimStyle.Render(c.loading)
	case c.err != nil:
		status = styles.ErrorStyle.Render(styles.Truncate(c.err.Error(), itemWidth))
	case c.ItemCount() == 0 && c.filterActive && c.filterInput.Value() != "":
		status = styles.DimStyle.Render("No matches")
	case c.ItemCount() == 0:
		status = styles.DimStyle.Render("Nothing here yet")
	}
	if status != "" {
		content := titleLine + "\n \n" + status + "\n "
		if c.filterActive {
			content += "\n" + c.renderFilterBar()
		}
		return content
	}

	count := c.ItemCount()
	end := min(c.offset+c.maxVisible, count)

	lines := make([]string, 0, end-c.offset)
	for i := c.offset; i < end; i++ {
		lines = append(lines, c.renderRow(c.rows[c.mapIndex(i)], c.matchedIndexes(i), i == c.cursor, itemWidth))
	}

	// Always reserve the indicator lines to prevent layout shifts
	header := " "
	if c.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	if c.filterActive {
		content += "\n" + c.renderFilterBar()
	}
	return content
}

func (c *ListColumn) renderRow(row Row, matched []int, selected bool, width int) string {
	meta := ""
	if row.Meta != "" {
		meta = " " + row.Meta
	}
	title := styles.Truncate(row.Title, max(width-2-lipgloss.Width(meta), 5))

	var parts []styles.RowPart
	if len(matched) == 0 {
		parts = append(parts, styles.RowPart{Text: title})
	} else {
		parts = highlight(title, matched)
	}

	if meta != "" {
		used := 0
		for _, p := range parts {
			used += lipgloss.Width(p.Text)
		}
		gap := width - 2 - used - lipgloss.Width(meta)
		if gap > 0 {
			parts = append(parts, styles.RowPart{Text: strings.Repeat(" ", gap)})
		}
		dim := styles.DimGray
		parts = append(parts, styles.RowPart{Text: meta, Foreground: &dim})
	}

	return styles.RenderListRow(parts, selected, width)
}

// highlight splits title into runs, marking fuzzy-matched byte offsets
func highlight(title string, matched []int) []styles.RowPart {
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	accent := styles.CampaignBlue
	var parts []styles.RowPart
	var run strings.Builder
	runHit := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		p := styles.RowPart{Text: run.String()}
		if runHit {
			p.Foreground = &accent
			p.Bold = true
		}
		parts = append(parts, p)
		run.Reset()
	}

	for i, r := range title {
		if hit[i] != runHit {
			flush()
			runHit = hit[i]
		}
		run.WriteRune(r)
	}
	flush()
	return parts
}

func (c *ListColumn) renderFilterBar() string {
	return styles.FilterPromptStyle.Render("/ ") + c.filterInput.View()
}
