package tabstats

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow/go/v18/arrow/array"
	pqfile "github.com/apache/arrow/go/v18/parquet/file"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
	"github.com/xuri/excelize/v2"
)

// SourceFormat identifies the on-disk format of a source file.
type SourceFormat int

const (
	// FormatCSV is comma-separated values
	FormatCSV SourceFormat = iota
	// FormatTSV is tab-separated values
	FormatTSV
	// FormatLTSV is labeled tab-separated values
	FormatLTSV
	// FormatXLSX is an Excel workbook (first sheet)
	FormatXLSX
	// FormatParquet is Apache Parquet
	FormatParquet
	// FormatUnsupported is any other extension
	FormatUnsupported
)

// String returns the format name.
func (f SourceFormat) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatTSV:
		return "tsv"
	case FormatLTSV:
		return "ltsv"
	case FormatXLSX:
		return "xlsx"
	case FormatParquet:
		return "parquet"
	default:
		return "unsupported"
	}
}

// Compression identifies the outer compression of a source file.
type Compression int

const (
	// CompressionNone is an uncompressed file
	CompressionNone Compression = iota
	// CompressionGZ is gzip
	CompressionGZ
	// CompressionBZ2 is bzip2 (read only; no stdlib writer)
	CompressionBZ2
	// CompressionXZ is xz
	CompressionXZ
	// CompressionZSTD is zstd
	CompressionZSTD
)

// File extensions for formats and compression layers.
const (
	extCSV     = ".csv"
	extTSV     = ".tsv"
	extLTSV    = ".ltsv"
	extXLSX    = ".xlsx"
	extParquet = ".parquet"
	extGZ      = ".gz"
	extBZ2     = ".bz2"
	extXZ      = ".xz"
	extZSTD    = ".zst"
)

// detectSource determines the format and compression from the file name.
// Compression extensions stack outside the format extension (song.csv.gz).
func detectSource(path string) (SourceFormat, Compression) {
	base := strings.ToLower(path)
	compression := CompressionNone

	switch {
	case strings.HasSuffix(base, extGZ):
		base = strings.TrimSuffix(base, extGZ)
		compression = CompressionGZ
	case strings.HasSuffix(base, extBZ2):
		base = strings.TrimSuffix(base, extBZ2)
		compression = CompressionBZ2
	case strings.HasSuffix(base, extXZ):
		base = strings.TrimSuffix(base, extXZ)
		compression = CompressionXZ
	case strings.HasSuffix(base, extZSTD):
		base = strings.TrimSuffix(base, extZSTD)
		compression = CompressionZSTD
	}

	switch filepath.Ext(base) {
	case extCSV:
		return FormatCSV, compression
	case extTSV:
		return FormatTSV, compression
	case extLTSV:
		return FormatLTSV, compression
	case extXLSX:
		return FormatXLSX, compression
	case extParquet:
		return FormatParquet, compression
	default:
		return FormatUnsupported, compression
	}
}

// readSource reads a source file into a header and its records.
// It fails with ErrSourceNotFound, ErrUnsupportedFormat, or ErrEmptySource.
func readSource(path string) (header, []Record, error) {
	format, compression := detectSource(path)
	if format == FormatUnsupported {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}
	defer f.Close() //nolint:errcheck // read-only file

	reader, closer, err := decompressReader(f, compression)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	defer closer() //nolint:errcheck // decompressor cleanup

	var hdr header
	var records []Record
	switch format {
	case FormatCSV:
		hdr, records, err = parseDelimited(reader, ',')
	case FormatTSV:
		hdr, records, err = parseDelimited(reader, '\t')
	case FormatLTSV:
		hdr, records, err = parseLTSV(reader)
	case FormatXLSX:
		hdr, records, err = parseXLSX(reader)
	case FormatParquet:
		hdr, records, err = parseParquet(reader)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return hdr, records, nil
}

// decompressReader wraps a reader with the decompressor the compression
// layer requires.
func decompressReader(r io.Reader, compression Compression) (io.Reader, func() error, error) {
	switch compression {
	case CompressionNone:
		return r, func() error { return nil }, nil
	case CompressionGZ:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return gz, gz.Close, nil
	case CompressionBZ2:
		return bzip2.NewReader(r), func() error { return nil }, nil
	case CompressionXZ:
		xzr, err := xz.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return xzr, func() error { return nil }, nil
	case CompressionZSTD:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return dec, func() error { dec.Close(); return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported compression: %d", compression)
	}
}

// parseDelimited parses CSV or TSV content. The first row is the header.
// Short rows are permitted; normalization pads them later.
func parseDelimited(r io.Reader, delimiter rune) (header, []Record, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = delimiter
	csvReader.FieldsPerRecord = -1

	rows, err := csvReader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, nil, ErrEmptySource
	}
	if err := validateColumnNames(rows[0]); err != nil {
		return nil, nil, err
	}

	hdr := newHeader(rows[0])
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, newRecord(row))
	}
	return hdr, records, nil
}

// parseLTSV parses labeled TSV content. The header is the union of labels
// in first-seen order; rows missing a label get an empty cell.
func parseLTSV(r io.Reader) (header, []Record, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}

	var hdr header
	seen := make(map[string]bool)
	var rows []map[string]string

	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		row := make(map[string]string)
		for _, pair := range strings.Split(line, "\t") {
			kv := strings.SplitN(pair, ":", 2)
			if len(kv) != 2 {
				continue
			}
			key := strings.TrimSpace(kv[0])
			row[key] = strings.TrimSpace(kv[1])
			if !seen[key] {
				seen[key] = true
				hdr = append(hdr, key)
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	if len(hdr) == 0 {
		return nil, nil, ErrEmptySource
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := make(Record, len(hdr))
		for i, key := range hdr {
			rec[i] = row[key]
		}
		records = append(records, rec)
	}
	return hdr, records, nil
}

// parseXLSX parses the first sheet of an Excel workbook. The workbook is
// buffered in memory because excelize needs random access.
func parseXLSX(r io.Reader) (header, []Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	defer book.Close() //nolint:errcheck // read-only workbook

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, ErrEmptySource
	}
	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, nil, ErrEmptySource
	}
	if err := validateColumnNames(rows[0]); err != nil {
		return nil, nil, err
	}

	hdr := newHeader(rows[0])
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, newRecord(row))
	}
	return hdr, records, nil
}

// parseParquet parses Parquet content. The data is buffered in memory
// because Parquet requires random access.
func parseParquet(r io.Reader) (header, []Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	if len(data) == 0 {
		return nil, nil, ErrEmptySource
	}

	pq, err := pqfile.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open parquet data: %w", err)
	}
	defer pq.Close() //nolint:errcheck // in-memory reader

	arrowReader, err := pqarrow.NewFileReader(pq, pqarrow.ArrowReadProperties{}, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}
	tbl, err := arrowReader.ReadTable(context.Background())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read parquet table: %w", err)
	}
	defer tbl.Release()

	schema := tbl.Schema()
	hdr := make(header, schema.NumFields())
	for i, field := range schema.Fields() {
		hdr[i] = field.Name
	}
	if len(hdr) == 0 {
		return nil, nil, ErrEmptySource
	}
	if err := validateColumnNames(hdr); err != nil {
		return nil, nil, err
	}

	tableReader := array.NewTableReader(tbl, 0)
	defer tableReader.Release()

	var records []Record
	for tableReader.Next() {
		batch := tableReader.Record()
		for i := range int(batch.NumRows()) {
			rec := make(Record, batch.NumCols())
			for j, col := range batch.Columns() {
				if col.IsNull(i) {
					rec[j] = ""
				} else {
					rec[j] = col.ValueStr(i)
				}
			}
			records = append(records, rec)
		}
	}
	if err := tableReader.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read parquet records: %w", err)
	}
	return hdr, records, nil
}

// errDuplicateColumnName is returned when a header repeats a column name.
var errDuplicateColumnName = errors.New("duplicate column name")

// validateColumnNames rejects headers with duplicate column names.
// Comparison is case-sensitive.
func validateColumnNames(columns []string) error {
	seen := make(map[string]bool, len(columns))
	for _, col := range columns {
		trimmed := strings.TrimSpace(col)
		if seen[trimmed] {
			return fmt.Errorf("%w: %s", errDuplicateColumnName, col)
		}
		seen[trimmed] = true
	}
	return nil
}
