package components

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newColumn(rows ...Row) *ListColumn {
	c := NewListColumn("News")
	c.SetSize(40, 10)
	c.SetFocused(true)
	c.SetRows(rows)
	return c
}

func TestListColumn_Navigation(t *testing.T) {
	c := newColumn(Row{Title: "a"}, Row{Title: "b"}, Row{Title: "c"})

	assert.Equal(t, 0, c.SelectedIndex())
	c.Update(keyPress("j"))
	c.Update(keyPress("j"))
	c.Update(keyPress("j"))
	assert.Equal(t, 2, c.SelectedIndex(), "stops at the last row")

	c.Update(keyPress("g"))
	assert.Equal(t, 0, c.SelectedIndex())
	c.Update(keyPress("k"))
	assert.Equal(t, 0, c.SelectedIndex())
	c.Update(keyPress("G"))
	assert.Equal(t, 2, c.SelectedIndex())
}

func TestListColumn_EmptySelection(t *testing.T) {
	c := newColumn()
	assert.Equal(t, -1, c.SelectedIndex())
	assert.Contains(t, c.View(), "Nothing here yet")
}

func TestListColumn_SetRowsClampsCursor(t *testing.T) {
	c := newColumn(Row{Title: "a"}, Row{Title: "b"}, Row{Title: "c"})
	c.Update(keyPress("G"))

	c.SetRows([]Row{{Title: "only"}})
	assert.Equal(t, 0, c.SelectedIndex())
}

func TestListColumn_ScrollsToCursor(t *testing.T) {
	rows := make([]Row, 30)
	for i := range rows {
		rows[i] = Row{Title: string(rune('a' + i%26))}
	}
	c := newColumn(rows...)

	for i := 0; i < 20; i++ {
		c.Update(keyPress("j"))
	}
	assert.Equal(t, 20, c.SelectedIndex())
	assert.LessOrEqual(t, c.offset, c.cursor)
	assert.Less(t, c.cursor, c.offset+c.maxVisible)
	assert.Contains(t, c.View(), "↑ more")
}

func TestListColumn_Filter(t *testing.T) {
	c := newColumn(
		Row{Title: "Rally in Burlington"},
		Row{Title: "Town hall", Detail: "healthcare discussion"},
		Row{Title: "Healthcare plan"},
	)

	c.ToggleFilter()
	require.True(t, c.IsFilterTyping())
	c.Update(keyPress("health"))

	require.Equal(t, 2, c.ItemCount())
	assert.Equal(t, 2, c.SelectedIndex(), "title match ranks first")
	c.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, c.IsFilterTyping())

	c.Update(keyPress("j"))
	assert.Equal(t, 1, c.SelectedIndex(), "detail match follows")

	c.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, 3, c.ItemCount())
}

func TestListColumn_FilterNoMatches(t *testing.T) {
	c := newColumn(Row{Title: "Rally"})
	c.ToggleFilter()
	c.Update(keyPress("zzz"))

	assert.Equal(t, 0, c.ItemCount())
	assert.Equal(t, -1, c.SelectedIndex())
	assert.Contains(t, c.View(), "No matches")
}

func TestListColumn_LoadingAndError(t *testing.T) {
	c := newColumn(Row{Title: "a"})

	c.SetLoading("Loading news...")
	assert.True(t, c.IsLoading())
	assert.Contains(t, c.View(), "Loading news...")

	c.SetError(errors.New("offline"))
	assert.False(t, c.IsLoading())
	assert.Contains(t, c.View(), "offline")

	c.SetRows([]Row{{Title: "fresh"}})
	assert.Contains(t, c.View(), "fresh")
}

func TestListColumn_PageKeys(t *testing.T) {
	rows := make([]Row, 20)
	for i := range rows {
		rows[i] = Row{Title: string(rune('a' + i))}
	}
	c := newColumn(rows...)

	c.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	first := c.SelectedIndex()
	assert.Greater(t, first, 0)

	c.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Greater(t, c.SelectedIndex(), first)

	c.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	c.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.Equal(t, 0, c.SelectedIndex())
}

func TestListKeyMap_Help(t *testing.T) {
	var descs []string
	for _, group := range ListKeys.FullHelp() {
		for _, b := range group {
			descs = append(descs, b.Help().Desc)
		}
	}
	assert.Contains(t, descs, "show all items")
	assert.Contains(t, descs, "keep matches")
	assert.Contains(t, descs, "first item")
	assert.Len(t, ListKeys.ShortHelp(), 3)
}

func TestHighlight(t *testing.T) {
	parts := highlight("Rally", []int{0, 1})

	require.Len(t, parts, 2)
	assert.Equal(t, "Ra", parts[0].Text)
	assert.True(t, parts[0].Bold)
	assert.Equal(t, "lly", parts[1].Text)
	assert.False(t, parts[1].Bold)
}
