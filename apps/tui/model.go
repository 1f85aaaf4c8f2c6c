package main

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iwneis/neishelper/core/catalog"
	"github.com/iwneis/neishelper/core/checklist"
)

type rowKind int

const (
	rowHeader rowKind = iota // category header, not selectable
	rowItem
	rowSubItem
)

type (
	row struct {
		kind rowKind
		id   string
		text string
	}

	// loadedMsg reports that the store finished loading.
	loadedMsg struct{}

	model struct {
		catalog *catalog.Catalog
		store   *checklist.Store
		periods []catalog.Period

		tab        int
		rows       []row
		selectable []int // indexes of rows that can be checked
		cursor     int   // index into selectable

		loaded       bool
		confirmReset bool
		status       string

		keys  keyMap
		help  help.Model
		bar   progress.Model
		width int
	}
)

// newModel opens on the tab of `current`.
func newModel(c *catalog.Catalog, store *checklist.Store, current catalog.Period) model {
	m := model{
		catalog: c,
		store:   store,
		periods: append(append([]catalog.Period{}, catalog.ActivePeriods...), catalog.PeriodAlways),
		keys:    newKeyMap(),
		help:    help.New(),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
	}
	for i, p := range m.periods {
		if p == current {
			m.tab = i
		}
	}
	m.buildRows()
	return m
}

func (m model) period() catalog.Period {
	return m.periods[m.tab]
}

func (m *model) buildRows() {
	m.rows = nil
	m.selectable = nil
	for _, g := range catalog.GroupByCategory(m.catalog.ItemsForPeriod(m.period())) {
		m.rows = append(m.rows, row{kind: rowHeader, text: g.Label})
		for _, it := range g.Items {
			m.selectable = append(m.selectable, len(m.rows))
			m.rows = append(m.rows, row{kind: rowItem, id: it.ID, text: it.Text})
			for _, sub := range it.SubItems {
				m.selectable = append(m.selectable, len(m.rows))
				m.rows = append(m.rows, row{kind: rowSubItem, id: sub.ID, text: sub.Text})
			}
		}
	}
	m.cursor = 0
}

// current returns the row under the cursor.
func (m model) current() (row, bool) {
	if len(m.selectable) == 0 {
		return row{}, false
	}
	return m.rows[m.selectable[m.cursor]], true
}

func (m model) Init() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		store.Load(context.Background())
		return loadedMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.loaded = true
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.quit) {
		return m, tea.Quit
	}

	if m.confirmReset {
		switch {
		case key.Matches(msg, m.keys.confirm):
			ids := catalog.ScopeIDs(m.catalog.ItemsForPeriod(m.period()))
			m.store.ResetScope(ids...)
			m.confirmReset = false
			m.status = m.period().Label() + " 초기화 완료"
		case key.Matches(msg, m.keys.cancel):
			m.confirmReset = false
			m.status = ""
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.down):
		if m.cursor < len(m.selectable)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.prevTab):
		m.tab = (m.tab + len(m.periods) - 1) % len(m.periods)
		m.buildRows()
	case key.Matches(msg, m.keys.nextTab):
		m.tab = (m.tab + 1) % len(m.periods)
		m.buildRows()
	case key.Matches(msg, m.keys.toggle):
		if r, ok := m.current(); ok && m.loaded {
			m.store.Toggle(r.id)
			m.status = ""
		}
	case key.Matches(msg, m.keys.reset):
		if m.loaded {
			m.confirmReset = true
		}
	}
	return m, nil
}
