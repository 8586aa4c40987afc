package tabstats

import (
	"errors"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
)

// Paths names the three source files for one Load call.
type Paths struct {
	Tab     string
	Play    string
	Request string
}

// LoadReport carries the per-source outcome of one Load call.
// A nil entry means the source loaded and validated successfully.
type LoadReport struct {
	Tab     error
	Play    error
	Request error
}

// OK reports whether every source loaded successfully.
func (r *LoadReport) OK() bool {
	return r.Tab == nil && r.Play == nil && r.Request == nil
}

// Err returns all source failures joined, or nil when everything loaded.
func (r *LoadReport) Err() error {
	return errors.Join(r.Tab, r.Play, r.Request)
}

// Store loads, validates, and owns the three in-memory tables.
// Each load replaces the source's table wholesale; a failed load leaves
// that source's table unset. Store is not safe for concurrent use with
// Load.
type Store struct {
	tab     *Table
	play    *Table
	request *Table
}

// NewStore creates an empty Store. Every query against it fails with
// ErrNotLoaded until the corresponding source is loaded.
func NewStore() *Store {
	return &Store{}
}

// Load reads the three sources independently. A failure on one source
// never prevents attempting the others; the report carries the outcome
// per source. Loading is idempotent and overwrites previous tables.
func (s *Store) Load(paths Paths) *LoadReport {
	return &LoadReport{
		Tab:     s.LoadTab(paths.Tab),
		Play:    s.LoadPlay(paths.Play),
		Request: s.LoadRequest(paths.Request),
	}
}

// LoadTab loads and validates the song-tab catalog. On failure the tab
// table is left unset.
func (s *Store) LoadTab(path string) error {
	s.tab = nil
	hdr, records, err := readSource(path)
	if err != nil {
		return fmt.Errorf("tab source: %w", err)
	}
	tbl, err := newTabTable(hdr, records)
	if err != nil {
		return fmt.Errorf("tab source %s: %w", path, err)
	}
	s.tab = tbl
	return nil
}

// LoadPlay loads and validates the play log. On failure the play table
// is left unset.
func (s *Store) LoadPlay(path string) error {
	s.play = nil
	hdr, records, err := readSource(path)
	if err != nil {
		return fmt.Errorf("play source: %w", err)
	}
	tbl, err := newLogTable(TablePlay, hdr, records)
	if err != nil {
		return fmt.Errorf("play source %s: %w", path, err)
	}
	s.play = tbl
	return nil
}

// LoadRequest loads and validates the request log. On failure the
// request table is left unset.
func (s *Store) LoadRequest(path string) error {
	s.request = nil
	hdr, records, err := readSource(path)
	if err != nil {
		return fmt.Errorf("request source: %w", err)
	}
	tbl, err := newLogTable(TableRequest, hdr, records)
	if err != nil {
		return fmt.Errorf("request source %s: %w", path, err)
	}
	s.request = tbl
	return nil
}

// Tab returns the loaded catalog table, or ErrNotLoaded.
func (s *Store) Tab() (*Table, error) {
	return s.table(TableTab)
}

// Play returns the loaded play log table, or ErrNotLoaded.
func (s *Store) Play() (*Table, error) {
	return s.table(TablePlay)
}

// Request returns the loaded request log table, or ErrNotLoaded.
func (s *Store) Request() (*Table, error) {
	return s.table(TableRequest)
}

// table returns the loaded table of the given kind, or ErrNotLoaded.
func (s *Store) table(kind TableKind) (*Table, error) {
	var t *Table
	switch kind {
	case TableTab:
		t = s.tab
	case TablePlay:
		t = s.play
	case TableRequest:
		t = s.request
	}
	if t == nil {
		return nil, fmt.Errorf("%w: %s table", ErrNotLoaded, kind)
	}
	return t, nil
}

// newTabTable validates and normalizes the catalog. The 12 required
// columns must be present and year/difficulty numeric-coercible, or the
// whole table is rejected. Empty cells become the Unknown sentinel and
// the date column is parsed once, here, so queries stay read-only.
func newTabTable(hdr header, records []Record) (*Table, error) {
	for _, col := range tabColumns {
		if !hdr.contains(col) {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	records = padRecords(hdr, records)

	for _, col := range []string{columnYear, columnDifficulty} {
		idx := hdr.index(col)
		for _, rec := range records {
			// Empty cells are nulls, filled below; they do not fail the check.
			if rec[idx] != "" && !isNumeric(rec[idx]) {
				return nil, fmt.Errorf("%w: %q", ErrTypeMismatch, col)
			}
		}
	}

	for _, rec := range records {
		for i, cell := range rec {
			if cell == "" {
				rec[i] = Unknown
			}
		}
	}

	dateIdx := hdr.index(columnDate)
	dates := make([]time.Time, len(records))
	dateOK := make([]bool, len(records))
	for i, rec := range records {
		if d, err := dateparse.ParseAny(rec[dateIdx]); err == nil {
			dates[i] = d
			dateOK[i] = true
		}
	}

	return &Table{
		kind:    TableTab,
		header:  hdr,
		records: records,
		dates:   dates,
		dateOK:  dateOK,
	}, nil
}

// newLogTable validates a play or request log: song and artist must be
// present, any further columns are free-form. Missing cells normalize to
// the empty string via row padding.
func newLogTable(kind TableKind, hdr header, records []Record) (*Table, error) {
	for _, col := range logColumns {
		if !hdr.contains(col) {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}
	return &Table{
		kind:    kind,
		header:  hdr,
		records: padRecords(hdr, records),
	}, nil
}

// padRecords pads short rows with empty cells and truncates long ones so
// every record matches the header width.
func padRecords(hdr header, records []Record) []Record {
	width := len(hdr)
	padded := make([]Record, len(records))
	for i, rec := range records {
		row := make(Record, width)
		copy(row, rec)
		padded[i] = row
	}
	return padded
}
