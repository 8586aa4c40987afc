package tabstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharts_HistogramValues(t *testing.T) {
	t.Parallel()

	t.Run("Difficulty values", func(t *testing.T) {
		t.Parallel()

		values, err := NewCharts(newTestStore(t)).DifficultyValues()
		require.NoError(t, err)
		assert.Equal(t, []float64{3, 2, 4}, values)
	})

	t.Run("Duration values", func(t *testing.T) {
		t.Parallel()

		values, err := NewCharts(newTestStore(t)).DurationValues()
		require.NoError(t, err)
		assert.Equal(t, []float64{4.5, 3.9, 3.5}, values)
	})

	t.Run("Unknown-filled cells are excluded", func(t *testing.T) {
		t.Parallel()

		content := `song,artist,year,type,gender,duration,language,tabber,source,date,difficulty,special books
Hallelujah,Leonard Cohen,1984,ballad,male,,english,alice,book1,2024-01-02,3,
`
		store := NewStore()
		require.NoError(t, store.LoadTab(writeSource(t, t.TempDir(), "tabdb.csv", content)))

		values, err := NewCharts(store).DurationValues()
		require.NoError(t, err)
		assert.Empty(t, values)
	})

	t.Run("Fails before load", func(t *testing.T) {
		t.Parallel()

		charts := NewCharts(NewStore())
		_, err := charts.DifficultyValues()
		assert.ErrorIs(t, err, ErrNotLoaded)
		_, err = charts.DurationValues()
		assert.ErrorIs(t, err, ErrNotLoaded)
	})
}

func TestCharts_CountsByColumn(t *testing.T) {
	t.Parallel()

	t.Run("Counts distinct values", func(t *testing.T) {
		t.Parallel()

		counts, err := NewCharts(newTestStore(t)).CountsByColumn(TableTab, "gender")
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"male": 2, "female": 1}, counts)
	})

	t.Run("Works on any loaded table", func(t *testing.T) {
		t.Parallel()

		counts, err := NewCharts(newTestStore(t)).CountsByColumn(TableRequest, "artist")
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"Leonard Cohen": 1, "Radiohead": 1}, counts)
	})

	t.Run("Unknown column fails", func(t *testing.T) {
		t.Parallel()

		_, err := NewCharts(newTestStore(t)).CountsByColumn(TableTab, "mood")
		assert.ErrorIs(t, err, ErrUnknownColumn)
	})

	t.Run("Fails before load", func(t *testing.T) {
		t.Parallel()

		_, err := NewCharts(NewStore()).CountsByColumn(TableTab, "gender")
		assert.ErrorIs(t, err, ErrNotLoaded)
	})
}

func TestCharts_CountsByDecade(t *testing.T) {
	t.Parallel()

	t.Run("Years floor to decades in ascending order", func(t *testing.T) {
		t.Parallel()

		content := `song,artist,year,type,gender,duration,language,tabber,source,date,difficulty,special books
a,x,1985,rock,male,3,english,t,web,2024-01-02,1,
b,y,1989,rock,male,3,english,t,web,2024-01-02,1,
c,z,1994,rock,male,3,english,t,web,2024-01-02,1,
`
		store := NewStore()
		require.NoError(t, store.LoadTab(writeSource(t, t.TempDir(), "tabdb.csv", content)))

		decades, err := NewCharts(store).CountsByDecade()
		require.NoError(t, err)
		assert.Equal(t, []DecadeCount{
			{Decade: 1980, Count: 2},
			{Decade: 1990, Count: 1},
		}, decades)
	})

	t.Run("Non-numeric years are excluded", func(t *testing.T) {
		t.Parallel()

		content := `song,artist,year,type,gender,duration,language,tabber,source,date,difficulty,special books
a,x,,rock,male,3,english,t,web,2024-01-02,1,
b,y,1994,rock,male,3,english,t,web,2024-01-02,1,
`
		store := NewStore()
		require.NoError(t, store.LoadTab(writeSource(t, t.TempDir(), "tabdb.csv", content)))

		decades, err := NewCharts(store).CountsByDecade()
		require.NoError(t, err)
		assert.Equal(t, []DecadeCount{{Decade: 1990, Count: 1}}, decades)
	})

	t.Run("Fails before load", func(t *testing.T) {
		t.Parallel()

		_, err := NewCharts(NewStore()).CountsByDecade()
		assert.ErrorIs(t, err, ErrNotLoaded)
	})
}

func TestCharts_CumulativePlaysByDate(t *testing.T) {
	t.Parallel()

	t.Run("Counts accumulate in column order", func(t *testing.T) {
		t.Parallel()

		content := `song,artist,2024-01-02,2024-01-09
a,v,1,1
b,w,1,1
c,x,1,1
d,y,,1
e,z,,1
`
		store := NewStore()
		require.NoError(t, store.LoadPlay(writeSource(t, t.TempDir(), "playdb.csv", content)))

		points, err := NewCharts(store).CumulativePlaysByDate()
		require.NoError(t, err)
		assert.Equal(t, []PlayPoint{
			{Date: "2024-01-02", Plays: 3, Cumulative: 3},
			{Date: "2024-01-09", Plays: 5, Cumulative: 8},
		}, points)
	})

	t.Run("Song and artist columns are dropped wherever they sit", func(t *testing.T) {
		t.Parallel()

		content := "2024-01-02,song,artist\n1,a,b\n"
		store := NewStore()
		require.NoError(t, store.LoadPlay(writeSource(t, t.TempDir(), "playdb.csv", content)))

		points, err := NewCharts(store).CumulativePlaysByDate()
		require.NoError(t, err)
		require.Len(t, points, 1)
		assert.Equal(t, "2024-01-02", points[0].Date)
	})

	t.Run("Fails before load", func(t *testing.T) {
		t.Parallel()

		_, err := NewCharts(NewStore()).CumulativePlaysByDate()
		assert.ErrorIs(t, err, ErrNotLoaded)
	})
}

func TestCharts_Build(t *testing.T) {
	t.Parallel()

	t.Run("Every kind builds from a loaded store", func(t *testing.T) {
		t.Parallel()

		charts := NewCharts(newTestStore(t))
		for _, kind := range ChartKinds() {
			data, err := charts.Build(kind)
			require.NoError(t, err, "kind %s", kind)
			assert.Equal(t, kind, data.Kind)
			assert.NotEmpty(t, data.Title)
		}
	})

	t.Run("Histogram payloads carry the bin counts", func(t *testing.T) {
		t.Parallel()

		charts := NewCharts(newTestStore(t))

		data, err := charts.Build(DifficultyHistogram)
		require.NoError(t, err)
		assert.Equal(t, 5, data.Bins)
		assert.Len(t, data.Values, 3)

		data, err = charts.Build(DurationHistogram)
		require.NoError(t, err)
		assert.Equal(t, 10, data.Bins)
	})

	t.Run("Bar charts order categories by descending count", func(t *testing.T) {
		t.Parallel()

		data, err := NewCharts(newTestStore(t)).Build(GenderPieChart)
		require.NoError(t, err)
		assert.Equal(t, []Category{
			{Label: "male", Count: 2},
			{Label: "female", Count: 1},
		}, data.Categories)
	})

	t.Run("Every kind fails before load", func(t *testing.T) {
		t.Parallel()

		charts := NewCharts(NewStore())
		for _, kind := range ChartKinds() {
			_, err := charts.Build(kind)
			assert.ErrorIs(t, err, ErrNotLoaded, "kind %s", kind)
		}
	})
}

func TestBins(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []float64
		n      int
		want   []Bin
	}{
		{
			name:   "Two equal-width bins",
			values: []float64{1, 2, 3, 4},
			n:      2,
			want: []Bin{
				{Low: 1, High: 2.5, Count: 2},
				{Low: 2.5, High: 4, Count: 2},
			},
		},
		{
			name:   "Maximum lands in the last bin",
			values: []float64{0, 10},
			n:      5,
			want: []Bin{
				{Low: 0, High: 2, Count: 1},
				{Low: 2, High: 4},
				{Low: 4, High: 6},
				{Low: 6, High: 8},
				{Low: 8, High: 10, Count: 1},
			},
		},
		{
			name:   "Identical values collapse into one bin",
			values: []float64{3, 3, 3},
			n:      4,
			want: []Bin{
				{Low: 3, High: 3},
				{Low: 3, High: 3},
				{Low: 3, High: 3},
				{Low: 3, High: 3, Count: 3},
			},
		},
		{
			name: "No values",
			n:    5,
		},
		{
			name:   "Invalid bin count",
			values: []float64{1},
			n:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Bins(tt.values, tt.n))
		})
	}
}

func TestParseChartKind(t *testing.T) {
	t.Parallel()

	t.Run("Round-trips every kind", func(t *testing.T) {
		t.Parallel()

		for _, kind := range ChartKinds() {
			parsed, err := ParseChartKind(kind.String())
			require.NoError(t, err)
			assert.Equal(t, kind, parsed)
		}
	})

	t.Run("Rejects unknown names", func(t *testing.T) {
		t.Parallel()

		_, err := ParseChartKind("scatter")
		assert.ErrorContains(t, err, "scatter")
	})
}
