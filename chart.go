package tabstats

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ChartKind enumerates the charts a presentation shell can request.
type ChartKind int

const (
	// DifficultyHistogram bins catalog difficulty values into 5 bins
	DifficultyHistogram ChartKind = iota
	// DurationHistogram bins catalog duration values into 10 bins
	DurationHistogram
	// LanguageBarChart counts catalog rows per language
	LanguageBarChart
	// SourceBarChart counts catalog rows per source
	SourceBarChart
	// DecadeBarChart counts catalog rows per decade, ascending
	DecadeBarChart
	// CumulativeLineChart accumulates play counts per date column
	CumulativeLineChart
	// GenderPieChart shares catalog rows per gender
	GenderPieChart
)

// chartNames maps kinds to their shell-facing names.
var chartNames = map[ChartKind]string{
	DifficultyHistogram: "difficulty-histogram",
	DurationHistogram:   "duration-histogram",
	LanguageBarChart:    "language-bar",
	SourceBarChart:      "source-bar",
	DecadeBarChart:      "decade-bar",
	CumulativeLineChart: "cumulative-line",
	GenderPieChart:      "gender-pie",
}

// String returns the shell-facing chart name.
func (k ChartKind) String() string {
	if name, ok := chartNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseChartKind resolves a shell-facing chart name.
func ParseChartKind(name string) (ChartKind, error) {
	for kind, n := range chartNames {
		if n == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown chart kind: %q (available: %s)",
		name, strings.Join(ChartKindNames(), ", "))
}

// ChartKinds returns every chart kind in display order.
func ChartKinds() []ChartKind {
	return []ChartKind{
		DifficultyHistogram, DurationHistogram, LanguageBarChart,
		SourceBarChart, DecadeBarChart, CumulativeLineChart, GenderPieChart,
	}
}

// ChartKindNames returns every chart name in display order.
func ChartKindNames() []string {
	kinds := ChartKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return names
}

// Category is one labeled count in a bar or pie chart.
type Category struct {
	Label string
	Count int
}

// DecadeCount is the number of catalog songs from one decade.
type DecadeCount struct {
	Decade int
	Count  int
}

// PlayPoint is the play count recorded under one play log date column,
// with the running total up to and including that column.
type PlayPoint struct {
	Date       string
	Plays      int
	Cumulative int
}

// ChartData is a renderer-neutral chart payload. Exactly one of Values,
// Categories, or Points is populated, depending on the kind.
type ChartData struct {
	Kind   ChartKind
	Title  string
	XLabel string
	YLabel string

	// Values and Bins feed histograms.
	Values []float64
	Bins   int
	// Categories feed bar and pie charts, in render order.
	Categories []Category
	// Points feed the cumulative line chart, in file column order.
	Points []PlayPoint
}

// Charts derives the aggregated series each chart needs from a Store's
// loaded tables. Every method fails with ErrNotLoaded when its source
// table is unset.
type Charts struct {
	store *Store
}

// NewCharts creates a Charts builder reading from the given store.
func NewCharts(store *Store) *Charts {
	return &Charts{store: store}
}

// DifficultyValues returns the catalog's numeric difficulty values.
// The renderer bins them into 5 equal-width bins.
func (c *Charts) DifficultyValues() ([]float64, error) {
	return c.numericColumn(columnDifficulty)
}

// DurationValues returns the catalog's numeric duration values in
// minutes. The renderer bins them into 10 equal-width bins.
func (c *Charts) DurationValues() ([]float64, error) {
	return c.numericColumn(columnDuration)
}

// numericColumn returns the coercible values of a catalog column.
// Unknown-filled cells are excluded.
func (c *Charts) numericColumn(column string) ([]float64, error) {
	tab, err := c.store.Tab()
	if err != nil {
		return nil, err
	}
	cells, err := tab.column(column)
	if err != nil {
		return nil, err
	}
	values := make([]float64, 0, len(cells))
	for _, cell := range cells {
		if v, err := strconv.ParseFloat(cell, 64); err == nil {
			values = append(values, v)
		}
	}
	return values, nil
}

// CountsByColumn returns distinct cell value to occurrence count for one
// column of the given table. The mapping is unordered.
func (c *Charts) CountsByColumn(kind TableKind, column string) (map[string]int, error) {
	tbl, err := c.store.table(kind)
	if err != nil {
		return nil, err
	}
	cells, err := tbl.column(column)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, cell := range cells {
		counts[cell]++
	}
	return counts, nil
}

// CountsByDecade returns the number of catalog songs per decade (year
// floored to a multiple of 10), in ascending decade order. Rows whose
// year does not coerce to a number are excluded.
func (c *Charts) CountsByDecade() ([]DecadeCount, error) {
	tab, err := c.store.Tab()
	if err != nil {
		return nil, err
	}
	cells, err := tab.column(columnYear)
	if err != nil {
		return nil, err
	}

	byDecade := make(map[int]int)
	for _, cell := range cells {
		year, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			continue
		}
		decade := (int(year) / 10) * 10
		byDecade[decade]++
	}

	decades := make([]DecadeCount, 0, len(byDecade))
	for decade, count := range byDecade {
		decades = append(decades, DecadeCount{Decade: decade, Count: count})
	}
	sort.Slice(decades, func(i, j int) bool { return decades[i].Decade < decades[j].Decade })
	return decades, nil
}

// CumulativePlaysByDate drops the song and artist columns of the play
// log, counts non-empty cells per remaining column, and accumulates the
// counts in file column order. Column order is assumed chronological; the
// column names themselves are never parsed or sorted.
func (c *Charts) CumulativePlaysByDate() ([]PlayPoint, error) {
	play, err := c.store.Play()
	if err != nil {
		return nil, err
	}

	var points []PlayPoint
	total := 0
	for i, col := range play.header {
		if col == columnSong || col == columnArtist {
			continue
		}
		plays := 0
		for _, rec := range play.records {
			if rec[i] != "" {
				plays++
			}
		}
		total += plays
		points = append(points, PlayPoint{Date: col, Plays: plays, Cumulative: total})
	}
	return points, nil
}

// Build produces the renderer-neutral payload for one chart kind.
func (c *Charts) Build(kind ChartKind) (*ChartData, error) {
	switch kind {
	case DifficultyHistogram:
		values, err := c.DifficultyValues()
		if err != nil {
			return nil, err
		}
		return &ChartData{
			Kind:   kind,
			Title:  "Songs by Difficulty Level",
			XLabel: "Difficulty Level",
			YLabel: "Frequency",
			Values: values,
			Bins:   5,
		}, nil
	case DurationHistogram:
		values, err := c.DurationValues()
		if err != nil {
			return nil, err
		}
		return &ChartData{
			Kind:   kind,
			Title:  "Songs by Duration",
			XLabel: "Duration (minutes)",
			YLabel: "Frequency",
			Values: values,
			Bins:   10,
		}, nil
	case LanguageBarChart:
		return c.buildCountChart(kind, columnLanguage, "Songs by Language", "Language")
	case SourceBarChart:
		return c.buildCountChart(kind, columnSource, "Songs by Source", "Source")
	case GenderPieChart:
		return c.buildCountChart(kind, columnGender, "Songs by Gender", "Gender")
	case DecadeBarChart:
		decades, err := c.CountsByDecade()
		if err != nil {
			return nil, err
		}
		categories := make([]Category, len(decades))
		for i, d := range decades {
			categories[i] = Category{Label: strconv.Itoa(d.Decade), Count: d.Count}
		}
		return &ChartData{
			Kind:       kind,
			Title:      "Songs by Decade",
			XLabel:     "Decade",
			YLabel:     "Number of Songs",
			Categories: categories,
		}, nil
	case CumulativeLineChart:
		points, err := c.CumulativePlaysByDate()
		if err != nil {
			return nil, err
		}
		return &ChartData{
			Kind:   kind,
			Title:  "Cumulative Songs Played",
			XLabel: "Date",
			YLabel: "Cumulative Songs Played",
			Points: points,
		}, nil
	default:
		return nil, fmt.Errorf("unknown chart kind: %d", kind)
	}
}

// buildCountChart builds a categorical chart over one catalog column,
// ordered by descending count with label order breaking ties.
func (c *Charts) buildCountChart(kind ChartKind, column, title, xLabel string) (*ChartData, error) {
	counts, err := c.CountsByColumn(TableTab, column)
	if err != nil {
		return nil, err
	}
	categories := make([]Category, 0, len(counts))
	for label, count := range counts {
		categories = append(categories, Category{Label: label, Count: count})
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Count != categories[j].Count {
			return categories[i].Count > categories[j].Count
		}
		return categories[i].Label < categories[j].Label
	})
	return &ChartData{
		Kind:       kind,
		Title:      title,
		XLabel:     xLabel,
		YLabel:     "Number of Songs",
		Categories: categories,
	}, nil
}

// Bin is one equal-width histogram bin over [Low, High); the last bin is
// closed on both ends.
type Bin struct {
	Low   float64
	High  float64
	Count int
}

// Bins splits values into n equal-width bins between the minimum and
// maximum value. It returns nil when there are no values or n < 1.
func Bins(values []float64, n int) []Bin {
	if len(values) == 0 || n < 1 {
		return nil
	}

	low, high := values[0], values[0]
	for _, v := range values[1:] {
		if v < low {
			low = v
		}
		if v > high {
			high = v
		}
	}

	bins := make([]Bin, n)
	width := (high - low) / float64(n)
	for i := range bins {
		bins[i].Low = low + float64(i)*width
		bins[i].High = low + float64(i+1)*width
	}
	bins[n-1].High = high

	for _, v := range values {
		idx := n - 1
		if width > 0 {
			idx = int((v - low) / width)
			if idx >= n {
				idx = n - 1
			}
		}
		bins[idx].Count++
	}
	return bins
}
