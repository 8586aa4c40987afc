// Command tabstats-tui is an interactive terminal front-end for
// rendering the tabstats summary charts.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nao1215/tabstats/internal/config"
	"github.com/nao1215/tabstats/internal/tui"
)

var (
	configFlag  = flag.String("config", "", "settings file (JSON)")
	tabFlag     = flag.String("tab", "", "song-tab catalog file")
	playFlag    = flag.String("play", "", "play log file")
	requestFlag = flag.String("request", "", "request log file")
	chartsFlag  = flag.String("charts", "", "directory for rendered charts")
)

func main() {
	flag.Parse()

	path := *configFlag
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + "/.config/tabstats/settings.json"
		} else {
			path = "tabstats.json"
		}
	}
	settings, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading settings: %v\n", err)
		os.Exit(1)
	}
	if *tabFlag != "" {
		settings.TabPath = *tabFlag
	}
	if *playFlag != "" {
		settings.PlayPath = *playFlag
	}
	if *requestFlag != "" {
		settings.RequestPath = *requestFlag
	}
	if *chartsFlag != "" {
		settings.ChartDir = *chartsFlag
	}

	if _, err := tea.NewProgram(tui.NewModel(settings), tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
