package convert

import (
	"encoding/json"
	"fmt"
	"io"
)

// TableToDocument converts a parsed table into a document value.
//
// With ArrayFormat, the result is an array of row-arrays: the header row is
// emitted verbatim as the first element when it was captured, followed by
// the data rows in original order. Every cell remains a string.
//
// Otherwise the result is an array of row-records. With headers, each row
// becomes an object keyed by the header at the same column index: rows
// shorter than the header omit the trailing keys entirely, and cells past
// the last header are dropped. Without headers, keys are synthesized by
// column position as field0, field1, and so on.
func TableToDocument(t *Table, arrayFormat bool) Value {
	doc := Value{Kind: KindArray}

	if arrayFormat {
		if t.Header != nil {
			doc.Arr = append(doc.Arr, rowValue(t.Header))
		}
		for _, row := range t.Rows {
			doc.Arr = append(doc.Arr, rowValue(row))
		}
		return doc
	}

	if t.Header != nil {
		for _, row := range t.Rows {
			rec := make(Record, 0, len(t.Header))
			for i, key := range t.Header {
				if i >= len(row) {
					break
				}
				rec = append(rec, Field{Key: key, Value: StringValue(row[i])})
			}
			doc.Arr = append(doc.Arr, Value{Kind: KindObject, Obj: rec})
		}
		return doc
	}

	for _, row := range t.Rows {
		rec := make(Record, 0, len(row))
		for i, cell := range row {
			rec = append(rec, Field{Key: fmt.Sprintf("field%d", i), Value: StringValue(cell)})
		}
		doc.Arr = append(doc.Arr, Value{Kind: KindObject, Obj: rec})
	}
	return doc
}

func rowValue(row []string) Value {
	v := Value{Kind: KindArray, Arr: make([]Value, len(row))}
	for i, cell := range row {
		v.Arr[i] = StringValue(cell)
	}
	return v
}

// EncodeDocument writes doc to w as pretty-printed JSON with two-space indent.
func EncodeDocument(w io.Writer, doc Value) error {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("write JSON output: %w", err)
	}
	return nil
}

// CSVToJSON reads delimited text from r and writes the converted document to
// w as pretty-printed JSON. The whole table is materialized in memory; there
// is no streaming mode.
func CSVToJSON(r io.Reader, w io.Writer, opts CSVOptions) error {
	table, err := ReadTable(r, opts.Delimiter, opts.HasHeaders, opts.Trim)
	if err != nil {
		return err
	}
	return EncodeDocument(w, TableToDocument(table, opts.ArrayFormat))
}
