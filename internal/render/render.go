// Package render draws chart payloads to PNG images with go-chart.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/nao1215/tabstats"
)

// Default image dimensions in pixels.
const (
	defaultWidth  = 800
	defaultHeight = 400
)

// ErrNoData indicates the chart payload holds nothing to draw.
var ErrNoData = errors.New("render: no data to draw")

// PNG renders a chart payload to PNG bytes.
func PNG(data *tabstats.ChartData) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch {
	case data.Kind == tabstats.GenderPieChart:
		err = renderPie(data, &buf)
	case data.Values != nil:
		err = renderHistogram(data, &buf)
	case data.Points != nil:
		err = renderLine(data, &buf)
	case data.Categories != nil:
		err = renderBars(data, &buf)
	default:
		err = ErrNoData
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile renders a chart payload to a PNG file.
func WriteFile(data *tabstats.ChartData, path string) error {
	img, err := PNG(data)
	if err != nil {
		return err
	}
	return os.WriteFile(path, img, 0o644)
}

// renderHistogram draws equal-width bins as a bar chart.
func renderHistogram(data *tabstats.ChartData, buf *bytes.Buffer) error {
	bins := tabstats.Bins(data.Values, data.Bins)
	if len(bins) == 0 {
		return ErrNoData
	}

	bars := make([]chart.Value, len(bins))
	for i, b := range bins {
		bars[i] = chart.Value{
			Value: float64(b.Count),
			Label: fmt.Sprintf("%.1f to %.1f", b.Low, b.High),
		}
	}
	bar := chart.BarChart{
		Title:    data.Title,
		Width:    defaultWidth,
		Height:   defaultHeight,
		BarWidth: 60,
		YAxis: chart.YAxis{
			Name: data.YLabel,
		},
		Bars: bars,
	}
	return bar.Render(chart.PNG, buf)
}

// renderBars draws categorical counts as a bar chart.
func renderBars(data *tabstats.ChartData, buf *bytes.Buffer) error {
	if len(data.Categories) == 0 {
		return ErrNoData
	}

	bars := make([]chart.Value, len(data.Categories))
	for i, c := range data.Categories {
		bars[i] = chart.Value{Value: float64(c.Count), Label: c.Label}
	}
	bar := chart.BarChart{
		Title:    data.Title,
		Width:    defaultWidth,
		Height:   defaultHeight,
		BarWidth: 40,
		YAxis: chart.YAxis{
			Name: data.YLabel,
		},
		Bars: bars,
	}
	return bar.Render(chart.PNG, buf)
}

// renderPie draws categorical counts as a pie chart with percentage
// share labels.
func renderPie(data *tabstats.ChartData, buf *bytes.Buffer) error {
	if len(data.Categories) == 0 {
		return ErrNoData
	}

	total := 0
	for _, c := range data.Categories {
		total += c.Count
	}
	if total == 0 {
		return ErrNoData
	}

	values := make([]chart.Value, len(data.Categories))
	for i, c := range data.Categories {
		share := 100 * float64(c.Count) / float64(total)
		values[i] = chart.Value{
			Value: float64(c.Count),
			Label: fmt.Sprintf("%s (%.1f%%)", c.Label, share),
		}
	}
	pie := chart.PieChart{
		Title:  data.Title,
		Width:  defaultHeight,
		Height: defaultHeight,
		Values: values,
	}
	return pie.Render(chart.PNG, buf)
}

// renderLine draws the cumulative play counts as a line chart. go-chart
// needs at least two points per series, so a single point is duplicated.
func renderLine(data *tabstats.ChartData, buf *bytes.Buffer) error {
	if len(data.Points) == 0 {
		return ErrNoData
	}

	xs := make([]float64, len(data.Points))
	ys := make([]float64, len(data.Points))
	ticks := make([]chart.Tick, len(data.Points))
	for i, p := range data.Points {
		xs[i] = float64(i)
		ys[i] = float64(p.Cumulative)
		ticks[i] = chart.Tick{Value: float64(i), Label: p.Date}
	}
	if len(xs) == 1 {
		xs = append(xs, 1)
		ys = append(ys, ys[0])
		ticks = append(ticks, chart.Tick{Value: 1, Label: data.Points[0].Date})
	}

	line := chart.Chart{
		Title:  data.Title,
		Width:  defaultWidth,
		Height: defaultHeight,
		XAxis: chart.XAxis{
			Name:  data.XLabel,
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name: data.YLabel,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    data.Title,
				XValues: xs,
				YValues: ys,
			},
		},
	}
	return line.Render(chart.PNG, buf)
}
