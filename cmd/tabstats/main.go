// Command tabstats loads the song-tab catalog, play log, and request
// log, filters them, and prints results or renders charts.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/nao1215/tabstats"
	"github.com/nao1215/tabstats/internal/config"
	"github.com/nao1215/tabstats/internal/render"
)

var (
	configFlag  = flag.String("config", "", "settings file (JSON)")
	tabFlag     = flag.String("tab", "", "song-tab catalog file")
	playFlag    = flag.String("play", "", "play log file")
	requestFlag = flag.String("request", "", "request log file")

	filterFlag = flag.String("filter", "", "catalog filter, e.g. \"artist=Queen,year=1975\"")
	fromFlag   = flag.String("from", "", "start of catalog date range (inclusive)")
	toFlag     = flag.String("to", "", "end of catalog date range (inclusive)")
	songFlag   = flag.String("song", "", "play log rows for one song")
	artistFlag = flag.String("artist", "", "request log rows for one artist")
	countFlag  = flag.String("count", "", "count non-empty cells in one play log column")

	chartFlag  = flag.String("chart", "", "render a chart: "+strings.Join(tabstats.ChartKindNames(), ", "))
	outFlag    = flag.String("o", "", "output file for the rendered chart (default <chart>.png)")
	formatFlag = flag.String("f", "csv", "row output format: csv, tsv, ltsv")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Analyze song-tab catalog, play log, and request log files.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -tab tabdb.csv -play playdb.csv -request requestdb.csv -filter artist=Queen\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -from 2024-01-01 -to 2024-06-30\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -chart decade-bar -o decades.png\n", os.Args[0])
	}
	flag.Parse()

	settings, err := config.Load(configPath())
	if err != nil {
		fatal("reading settings: %v", err)
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

	store := tabstats.NewStore()
	report := store.Load(tabstats.Paths{
		Tab:     settings.TabPath,
		Play:    settings.PlayPath,
		Request: settings.RequestPath,
	})
	for _, e := range []error{report.Tab, report.Play, report.Request} {
		if e != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", e)
		}
	}

	if err := run(store); err != nil {
		fatal("%v", err)
	}
}

// run dispatches the selected operation against the loaded store.
func run(store *tabstats.Store) error {
	query := tabstats.NewQuery(store)

	switch {
	case *chartFlag != "":
		return renderChart(store)

	case *countFlag != "":
		n, err := query.CountSongPlays(*countFlag)
		if err != nil {
			return err
		}
		fmt.Println(n)
		return nil

	case *songFlag != "":
		rows, err := query.FilterPlaysBySong(*songFlag)
		if err != nil {
			return err
		}
		return printRows(rows)

	case *artistFlag != "":
		rows, err := query.FilterRequestsByArtist(*artistFlag)
		if err != nil {
			return err
		}
		return printRows(rows)

	case *fromFlag != "" || *toFlag != "":
		start, end, err := parseDateRange(*fromFlag, *toFlag)
		if err != nil {
			return err
		}
		rows, err := query.FilterDateRange(start, end)
		if err != nil {
			return err
		}
		return printRows(rows)

	default:
		criteria, err := parseFilter(*filterFlag)
		if err != nil {
			return err
		}
		rows, err := query.FilterTab(criteria)
		if err != nil {
			return err
		}
		return printRows(rows)
	}
}

// renderChart builds the requested chart and writes it as a PNG.
func renderChart(store *tabstats.Store) error {
	kind, err := tabstats.ParseChartKind(*chartFlag)
	if err != nil {
		return err
	}
	data, err := tabstats.NewCharts(store).Build(kind)
	if err != nil {
		return err
	}

	out := *outFlag
	if out == "" {
		out = kind.String() + ".png"
	}
	if err := render.WriteFile(data, out); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", out)
	return nil
}

// printRows writes a RowSet to stdout in the selected format.
func printRows(rows *tabstats.RowSet) error {
	var format tabstats.ExportFormat
	switch *formatFlag {
	case "csv":
		format = tabstats.ExportCSV
	case "tsv":
		format = tabstats.ExportTSV
	case "ltsv":
		format = tabstats.ExportLTSV
	default:
		return fmt.Errorf("unsupported output format %q (csv, tsv, ltsv)", *formatFlag)
	}
	return tabstats.Export(rows, os.Stdout, format, tabstats.CompressionNone)
}

// parseFilter turns "col=val,col=val" into filter criteria.
func parseFilter(s string) (map[string]string, error) {
	criteria := make(map[string]string)
	if s == "" {
		return criteria, nil
	}
	for _, pair := range strings.Split(s, ",") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 || kv[0] == "" {
			return nil, fmt.Errorf("invalid filter %q, expected col=value", pair)
		}
		criteria[kv[0]] = kv[1]
	}
	return criteria, nil
}

// parseDateRange parses the -from/-to flags, defaulting an open bound to
// the distant past or future.
func parseDateRange(from, to string) (time.Time, time.Time, error) {
	start := time.Time{}
	end := time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

	var err error
	if from != "" {
		if start, err = dateparse.ParseAny(from); err != nil {
			return start, end, fmt.Errorf("invalid -from date %q: %w", from, err)
		}
	}
	if to != "" {
		if end, err = dateparse.ParseAny(to); err != nil {
			return start, end, fmt.Errorf("invalid -to date %q: %w", to, err)
		}
	}
	return start, end, nil
}

// configPath returns the -config flag or the default location.
func configPath() string {
	if *configFlag != "" {
		return *configFlag
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "tabstats.json"
	}
	return home + "/.config/tabstats/settings.json"
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
