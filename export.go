package tabstats

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// ExportFormat is the output format for writing a RowSet back out.
type ExportFormat int

const (
	// ExportCSV writes comma-separated values
	ExportCSV ExportFormat = iota
	// ExportTSV writes tab-separated values
	ExportTSV
	// ExportLTSV writes labeled tab-separated values
	ExportLTSV
)

// Export writes a RowSet to w in the given format, header first,
// optionally compressed. Bzip2 is rejected: the standard library has no
// bzip2 writer.
func Export(rs *RowSet, w io.Writer, format ExportFormat, compression Compression) error {
	cw, closer, err := compressWriter(w, compression)
	if err != nil {
		return err
	}

	switch format {
	case ExportCSV:
		err = writeDelimited(rs, cw, ',')
	case ExportTSV:
		err = writeDelimited(rs, cw, '\t')
	case ExportLTSV:
		err = writeLTSV(rs, cw)
	default:
		err = fmt.Errorf("%w: export format %d", ErrUnsupportedFormat, format)
	}
	if err != nil {
		_ = closer()
		return err
	}
	return closer()
}

// compressWriter wraps a writer with the requested compression layer.
func compressWriter(w io.Writer, compression Compression) (io.Writer, func() error, error) {
	switch compression {
	case CompressionNone:
		return w, func() error { return nil }, nil
	case CompressionGZ:
		gz := gzip.NewWriter(w)
		return gz, gz.Close, nil
	case CompressionBZ2:
		return nil, nil, fmt.Errorf("%w: bzip2 has no writer", ErrUnsupportedFormat)
	case CompressionXZ:
		xzw, err := xz.NewWriter(w)
		if err != nil {
			return nil, nil, err
		}
		return xzw, xzw.Close, nil
	case CompressionZSTD:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, nil, err
		}
		return zw, zw.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: compression %d", ErrUnsupportedFormat, compression)
	}
}

// writeDelimited writes the header row and records with one delimiter.
func writeDelimited(rs *RowSet, w io.Writer, delimiter rune) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter

	if err := csvWriter.Write(rs.header); err != nil {
		return err
	}
	for _, rec := range rs.records {
		if err := csvWriter.Write(rec); err != nil {
			return err
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// writeLTSV writes one label:value\t... line per record.
func writeLTSV(rs *RowSet, w io.Writer) error {
	var b strings.Builder
	for _, rec := range rs.records {
		b.Reset()
		for i, col := range rs.header {
			if i > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(col)
			b.WriteByte(':')
			b.WriteString(rec[i])
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}
