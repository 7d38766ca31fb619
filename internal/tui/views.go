package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/movement/internal/tui/components"
	"github.com/mmcdole/movement/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "\n  " + m.Spinner.View() + " Starting..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.Lists[m.Tab].View(),
		m.Inspector.View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	right := ""
	if m.ZipCode != "" {
		right = styles.DimStyle.Render("near " + m.ZipCode + " · " + formatRadius(m.RadiusMiles) + " mi")
	}
	left := m.tabBar()
	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderFooter() string {
	switch {
	case m.State == StateZipInput:
		return m.ZipInput.View()
	case m.StatusMsg != "" && m.StatusIsErr:
		return styles.ErrorStyle.Render(styles.Truncate(m.StatusMsg, m.Width))
	case m.StatusMsg != "":
		return styles.SuccessStyle.Render(styles.Truncate(m.StatusMsg, m.Width))
	default:
		return m.Help.View(Keys)
	}
}

func (m Model) renderHelp() string {
	title := styles.TitleStyle.Render("Keyboard shortcuts")
	hint := styles.DimStyle.Render("press any key to close")
	content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.Help.View(Keys), "", m.Help.View(components.ListKeys), "", hint)
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center,
		styles.ActiveBorder.Padding(1, 2).Render(content))
}
