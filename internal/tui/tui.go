// Package tui provides a Bubble Tea terminal user interface for
// browsing the summary charts.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nao1215/tabstats"
	"github.com/nao1215/tabstats/internal/config"
	"github.com/nao1215/tabstats/internal/render"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500")).
			MarginBottom(1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))
)

// chartItem is one selectable chart in the menu.
type chartItem struct {
	kind tabstats.ChartKind
}

func (i chartItem) Title() string       { return i.kind.String() }
func (i chartItem) Description() string { return chartDescription(i.kind) }
func (i chartItem) FilterValue() string { return i.kind.String() }

// chartDescription returns the menu line shown under each chart name.
func chartDescription(kind tabstats.ChartKind) string {
	switch kind {
	case tabstats.DifficultyHistogram:
		return "Histogram of songs by difficulty level"
	case tabstats.DurationHistogram:
		return "Histogram of songs by duration"
	case tabstats.LanguageBarChart:
		return "Bar chart of songs by language"
	case tabstats.SourceBarChart:
		return "Bar chart of songs by source"
	case tabstats.DecadeBarChart:
		return "Bar chart of songs by decade"
	case tabstats.CumulativeLineChart:
		return "Cumulative line chart of songs played"
	case tabstats.GenderPieChart:
		return "Pie chart of songs by gender"
	default:
		return ""
	}
}

// Message types
type (
	// loadDoneMsg is sent when the three sources finished loading.
	loadDoneMsg struct {
		report *tabstats.LoadReport
	}

	// chartDoneMsg is sent when a chart was rendered to disk.
	chartDoneMsg struct {
		path string
		err  error
	}
)

// Model is the Bubble Tea model for the TUI.
type Model struct {
	settings *config.Settings
	store    *tabstats.Store
	charts   *tabstats.Charts

	menu   list.Model
	report *tabstats.LoadReport
	status string

	width  int
	height int
}

// NewModel creates a new TUI model over the given settings.
func NewModel(settings *config.Settings) Model {
	items := make([]list.Item, 0, len(tabstats.ChartKinds()))
	for _, kind := range tabstats.ChartKinds() {
		items = append(items, chartItem{kind: kind})
	}

	menu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	menu.Title = "tabstats charts"
	menu.SetShowStatusBar(false)

	store := tabstats.NewStore()
	return Model{
		settings: settings,
		store:    store,
		charts:   tabstats.NewCharts(store),
		menu:     menu,
	}
}

// Init starts loading the three sources.
func (m Model) Init() tea.Cmd {
	return m.loadSources
}

// loadSources loads the configured source files.
func (m Model) loadSources() tea.Msg {
	return loadDoneMsg{report: m.store.Load(tabstats.Paths{
		Tab:     m.settings.TabPath,
		Play:    m.settings.PlayPath,
		Request: m.settings.RequestPath,
	})}
}

// renderChart renders the selected chart into the configured directory.
func (m Model) renderChart(kind tabstats.ChartKind) tea.Cmd {
	return func() tea.Msg {
		data, err := m.charts.Build(kind)
		if err != nil {
			return chartDoneMsg{err: err}
		}
		if err := os.MkdirAll(m.settings.ChartDir, 0o755); err != nil {
			return chartDoneMsg{err: err}
		}
		path := filepath.Join(m.settings.ChartDir, kind.String()+".png")
		if err := render.WriteFile(data, path); err != nil {
			return chartDoneMsg{err: err}
		}
		return chartDoneMsg{path: path}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.menu.SetSize(msg.Width-2, msg.Height-8)
		return m, nil

	case loadDoneMsg:
		m.report = msg.report
		return m, nil

	case chartDoneMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(msg.err.Error())
		} else {
			m.status = successStyle.Render("wrote " + msg.path)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.status = dimStyle.Render("reloading sources...")
			return m, m.loadSources
		case "enter":
			if item, ok := m.menu.SelectedItem().(chartItem); ok {
				m.status = dimStyle.Render("rendering " + item.kind.String() + "...")
				return m, m.renderChart(item.kind)
			}
		}
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Ukulele Tuesday Data Analysis"))
	b.WriteString("\n")
	b.WriteString(m.sourceStatus())
	b.WriteString("\n")
	b.WriteString(m.menu.View())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("enter: render chart, r: reload, q: quit"))
	return b.String()
}

// sourceStatus renders one line per source with its load outcome.
func (m Model) sourceStatus() string {
	if m.report == nil {
		return dimStyle.Render("loading sources...")
	}

	lines := make([]string, 0, 3)
	for _, s := range []struct {
		name string
		path string
		err  error
	}{
		{"tab", m.settings.TabPath, m.report.Tab},
		{"play", m.settings.PlayPath, m.report.Play},
		{"request", m.settings.RequestPath, m.report.Request},
	} {
		if s.err != nil {
			lines = append(lines, errorStyle.Render(fmt.Sprintf("%s: %v", s.name, s.err)))
		} else {
			lines = append(lines, successStyle.Render(fmt.Sprintf("%s: %s loaded", s.name, s.path)))
		}
	}
	return strings.Join(lines, "\n")
}
