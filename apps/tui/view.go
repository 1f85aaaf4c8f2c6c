package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iwneis/neishelper/core/checklist"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	activeTabStyle = tabStyle.Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("63"))
	headerStyle    = lipgloss.NewStyle().Bold(true).MarginTop(1)
	checkedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Strikethrough(true)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

func (m model) View() string {
	var b strings.Builder
	state := m.store.State()

	b.WriteString(titleStyle.Render("NEIS 업무 체크리스트"))
	b.WriteString("\n\n")
	b.WriteString(m.tabsView(state))
	b.WriteString("\n\n")

	if !m.loaded {
		b.WriteString("불러오는 중...\n")
		return b.String()
	}

	overall := checklist.CountAll(m.catalog, state)
	current := checklist.CountPeriod(m.catalog, m.period(), state)
	b.WriteString(m.progressLine("전체", overall))
	b.WriteString(m.progressLine(m.period().ShortLabel(), current))

	selected := -1
	if len(m.selectable) > 0 {
		selected = m.selectable[m.cursor]
	}
	for i, r := range m.rows {
		if r.kind == rowHeader {
			b.WriteString(headerStyle.Render(r.text))
			b.WriteString("\n")
			continue
		}

		indent := "  "
		if r.kind == rowSubItem {
			indent = "      "
		}
		box, text := "[ ]", r.text
		if state.Checked(r.id) {
			box, text = "[x]", checkedStyle.Render(r.text)
		}
		line := indent + box + " " + text
		if i == selected {
			line = cursorStyle.Render(">") + line[1:]
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.confirmReset:
		b.WriteString(warnStyle.Render(fmt.Sprintf("%s 체크를 모두 해제할까요? (y/n)", m.period().Label())))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m model) tabsView(state checklist.State) string {
	tabs := make([]string, 0, len(m.periods))
	for i, p := range m.periods {
		label := fmt.Sprintf("%s %d%%", p.ShortLabel(), checklist.CountPeriod(m.catalog, p, state).Percent())
		if i == m.tab {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m model) progressLine(label string, p checklist.Progress) string {
	ratio := 0.0
	if p.Total > 0 {
		ratio = float64(p.Checked) / float64(p.Total)
	}
	return fmt.Sprintf("%-8s %s %d/%d\n", label, m.bar.ViewAs(ratio), p.Checked, p.Total)
}
