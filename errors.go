package tabstats

import "errors"

// Sentinel errors returned by loading, querying, and chart building.
// Returned errors wrap one of these so callers can match with errors.Is.
var (
	// ErrSourceNotFound indicates the source file is missing or unreadable
	ErrSourceNotFound = errors.New("tabstats: source file not found")

	// ErrEmptySource indicates the source file has no header row or no columns
	ErrEmptySource = errors.New("tabstats: empty source")

	// ErrUnsupportedFormat indicates an unsupported source file extension
	ErrUnsupportedFormat = errors.New("tabstats: unsupported source format")

	// ErrMissingColumn indicates a required column is absent from a source
	ErrMissingColumn = errors.New("tabstats: missing required column")

	// ErrTypeMismatch indicates a declared-numeric column holds non-numeric cells
	ErrTypeMismatch = errors.New("tabstats: column must be numeric")

	// ErrNotLoaded indicates a query was issued before the needed table was loaded
	ErrNotLoaded = errors.New("tabstats: table not loaded")

	// ErrUnknownColumn indicates a filter criterion names a column outside the schema
	ErrUnknownColumn = errors.New("tabstats: unknown column")
)
