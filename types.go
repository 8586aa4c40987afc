package tabstats

import "strconv"

// Unknown is the sentinel written into empty catalog cells during load.
const Unknown = "Unknown"

// TableKind identifies one of the three data sources.
type TableKind int

const (
	// TableTab is the song-tab catalog
	TableTab TableKind = iota
	// TablePlay is the play log
	TablePlay
	// TableRequest is the request log
	TableRequest
)

// String returns the source name used in error messages.
func (k TableKind) String() string {
	switch k {
	case TableTab:
		return "tab"
	case TablePlay:
		return "play"
	case TableRequest:
		return "request"
	default:
		return "unknown"
	}
}

// Catalog column names referenced by validation and aggregation.
const (
	columnSong       = "song"
	columnArtist     = "artist"
	columnYear       = "year"
	columnGender     = "gender"
	columnDuration   = "duration"
	columnLanguage   = "language"
	columnSource     = "source"
	columnDate       = "date"
	columnDifficulty = "difficulty"
)

// tabColumns are the required catalog columns, in the order validation
// reports a missing one. Comparison is case-sensitive and exact.
var tabColumns = []string{
	columnSong, columnArtist, columnYear, "type", columnGender,
	columnDuration, columnLanguage, "tabber", columnSource,
	columnDate, columnDifficulty, "special books",
}

// logColumns are the required play/request log columns. Any further
// columns are permitted and carried through untouched.
var logColumns = []string{columnSong, columnArtist}

// numericTabColumns are the catalog columns compared by numeric value
// in equality filters. year and difficulty are also enforced
// numeric-coercible at load.
var numericTabColumns = map[string]bool{
	columnYear:       true,
	columnDuration:   true,
	columnDifficulty: true,
}

// header is a source file header row.
type header []string

// newHeader creates a new header.
func newHeader(h []string) header {
	return header(h)
}

// index returns the position of name in the header, or -1.
func (h header) index(name string) int {
	for i, v := range h {
		if v == name {
			return i
		}
	}
	return -1
}

// contains reports whether the header names the column.
func (h header) contains(name string) bool {
	return h.index(name) >= 0
}

// equal compares headers.
func (h header) equal(h2 header) bool {
	if len(h) != len(h2) {
		return false
	}
	for i, v := range h {
		if v != h2[i] {
			return false
		}
	}
	return true
}

// Record is one data row as a slice of string cells, in header order.
type Record []string

// newRecord creates a new record.
func newRecord(r []string) Record {
	return Record(r)
}

// equal compares records.
func (r Record) equal(r2 Record) bool {
	if len(r) != len(r2) {
		return false
	}
	for i, v := range r {
		if v != r2[i] {
			return false
		}
	}
	return true
}

// isNumeric reports whether a cell coerces to a number.
func isNumeric(value string) bool {
	if value == "" {
		return false
	}
	_, err := strconv.ParseFloat(value, 64)
	return err == nil
}
