package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/tabstats"
	"github.com/nao1215/tabstats/internal/config"
)

func TestModel(t *testing.T) {
	t.Parallel()

	t.Run("Menu lists every chart kind", func(t *testing.T) {
		t.Parallel()

		m := NewModel(config.DefaultSettings())
		assert.Len(t, m.menu.Items(), len(tabstats.ChartKinds()))
		for _, item := range m.menu.Items() {
			ci, ok := item.(chartItem)
			require.True(t, ok)
			assert.NotEmpty(t, ci.Title())
			assert.NotEmpty(t, ci.Description())
		}
	})

	t.Run("Quit keys exit", func(t *testing.T) {
		t.Parallel()

		m := NewModel(config.DefaultSettings())
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	})

	t.Run("Load failures show in the view", func(t *testing.T) {
		t.Parallel()

		settings := config.DefaultSettings()
		settings.TabPath = "does-not-exist.csv"

		m := NewModel(settings)
		updated, _ := m.Update(m.loadSources())
		view := updated.View()
		assert.Contains(t, view, "tab:")
		assert.Contains(t, view, "not found")
	})
}
