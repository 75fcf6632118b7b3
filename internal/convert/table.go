package convert

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/oleg578/swiftcsv"
)

// Table is an ordered sequence of rows of string fields, optionally with a
// designated header row. All values are text at this layer.
type Table struct {
	Header []string // nil when headers were not captured
	Rows   [][]string
}

// CSVOptions configures the CSV→JSON pipeline.
type CSVOptions struct {
	// Delimiter is the field separator, a single byte. Default ','.
	Delimiter byte
	// HasHeaders designates the first row as the header row.
	HasHeaders bool
	// Trim removes leading/trailing whitespace from every field.
	Trim bool
	// ArrayFormat emits row-arrays instead of row-records.
	ArrayFormat bool
}

// JSONOptions configures the JSON→CSV pipeline.
type JSONOptions struct {
	// Delimiter is the field separator, a single byte. Default ','.
	Delimiter byte
	// QuoteAll forces quoting of every field regardless of content.
	QuoteAll bool
}

// ParseDelimiter validates a delimiter flag value and returns it as a byte.
// The delimiter must be exactly one ASCII character; multi-byte runes cannot
// be represented in the underlying record format.
func ParseDelimiter(s string) (byte, error) {
	if len(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	if s[0] > 0x7f {
		return 0, fmt.Errorf("delimiter must be an ASCII character, got %q", s)
	}
	return s[0], nil
}

// TableFromRows builds a Table from pre-split rows, such as worksheet data.
// When hasHeaders is set the first row becomes the header row.
func TableFromRows(rows [][]string, hasHeaders bool) *Table {
	t := &Table{}
	if hasHeaders && len(rows) > 0 {
		t.Header = rows[0]
		rows = rows[1:]
	}
	if len(rows) > 0 {
		t.Rows = rows
	}
	return t
}

// ReadTable decodes delimited text from r into a Table.
//
// Short and long rows are accepted as-is; the header row's width is not
// enforced against data rows. Malformed quoting or a read failure aborts the
// whole parse with no partial result.
func ReadTable(r io.Reader, delimiter byte, hasHeaders, trim bool) (*Table, error) {
	rd := swiftcsv.NewReader(r)
	if delimiter != 0 {
		rd.Comma = delimiter
	}

	t := &Table{}
	first := true
	for {
		record, err := rd.Read()
		if errors.Is(err, io.EOF) {
			return t, nil
		}
		// The reader pins every record to the width of the first one.
		// Ragged tables are valid input here, so a field-count mismatch is
		// not an error; the record itself is complete.
		if err != nil && !errors.Is(err, swiftcsv.ErrorFieldCount) {
			return nil, fmt.Errorf("parse CSV: %w", err)
		}

		if trim {
			for i := range record {
				record[i] = strings.TrimSpace(record[i])
			}
		}

		if first && hasHeaders {
			t.Header = record
		} else {
			t.Rows = append(t.Rows, record)
		}
		first = false
	}
}

// WriteTable encodes an optional header row plus data rows as delimited text.
// QuoteAll quotes every field; otherwise fields are quoted only when they
// contain the delimiter, a quote, or a line break. The writer is flushed
// before returning; a flush failure is fatal.
func WriteTable(w io.Writer, header []string, rows [][]string, delimiter byte, quoteAll bool) error {
	wr := swiftcsv.NewWriter(w)
	if delimiter != 0 {
		wr.Comma = delimiter
	}
	wr.AlwaysQuote = quoteAll

	if header != nil {
		if err := wr.Write(header); err != nil {
			return fmt.Errorf("write CSV header: %w", err)
		}
	}
	for _, row := range rows {
		if err := wr.Write(row); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}
	if err := wr.Flush(); err != nil {
		return fmt.Errorf("flush CSV output: %w", err)
	}
	return nil
}
