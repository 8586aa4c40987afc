package tabstats

import "time"

// Query provides read-only filtering over a Store's loaded tables.
// Every operation fails with ErrNotLoaded when its table is unset, and
// none of them modifies the underlying tables.
type Query struct {
	store *Store
}

// NewQuery creates a Query reading from the given store.
func NewQuery(store *Store) *Query {
	return &Query{store: store}
}

// FilterTab returns the catalog rows where every criterion column's cell
// equals the given value (logical AND, exact equality; declared-numeric
// columns compare by numeric value). Row order follows the source file.
// Filters compose: applying two criteria in one call equals applying
// them in sequence with RowSet.Filter.
func (q *Query) FilterTab(criteria map[string]string) (*RowSet, error) {
	tab, err := q.store.Tab()
	if err != nil {
		return nil, err
	}
	return tab.RowSet().Filter(criteria)
}

// FilterDateRange returns the catalog rows whose date falls within
// [start, end] inclusive. Rows whose date cell did not parse at load are
// excluded regardless of the bounds.
func (q *Query) FilterDateRange(start, end time.Time) (*RowSet, error) {
	tab, err := q.store.Tab()
	if err != nil {
		return nil, err
	}

	matched := make([]Record, 0, len(tab.records))
	for i, rec := range tab.records {
		if !tab.dateOK[i] {
			continue
		}
		d := tab.dates[i]
		if d.Before(start) || d.After(end) {
			continue
		}
		matched = append(matched, rec)
	}
	return &RowSet{header: tab.header, records: matched, numeric: tab.numericColumns()}, nil
}

// FilterPlaysBySong returns the play log rows for one song title.
func (q *Query) FilterPlaysBySong(song string) (*RowSet, error) {
	play, err := q.store.Play()
	if err != nil {
		return nil, err
	}
	return play.RowSet().Filter(map[string]string{columnSong: song})
}

// FilterRequestsByArtist returns the request log rows for one artist.
func (q *Query) FilterRequestsByArtist(artist string) (*RowSet, error) {
	request, err := q.store.Request()
	if err != nil {
		return nil, err
	}
	return request.RowSet().Filter(map[string]string{columnArtist: artist})
}

// CountSongPlays returns the count of non-empty cells in the named play
// log column. Which column models which song or date is the data
// producer's naming convention and is not validated here.
func (q *Query) CountSongPlays(column string) (int, error) {
	play, err := q.store.Play()
	if err != nil {
		return 0, err
	}
	values, err := play.column(column)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, v := range values {
		if v != "" {
			count++
		}
	}
	return count, nil
}
