package convert

import (
	"errors"
	"fmt"
	"io"
)

// Shape errors reported by DocumentToTable.
var (
	// ErrDocumentNotArray is returned when the top-level document is not an array.
	ErrDocumentNotArray = errors.New("JSON must be an array")
	// ErrElementShape is returned when the first array element is neither an
	// array nor an object.
	ErrElementShape = errors.New("JSON array must contain arrays or objects")
)

// Result summarizes a JSON→CSV conversion.
type Result struct {
	// Rows is the number of data rows written, excluding the header row.
	Rows int
	// Skipped counts array elements that were not objects in
	// array-of-records mode. Those elements contribute no row.
	Skipped int
}

// DocumentToTable converts a document value into a table.
//
// The document's shape is dispatched on the first element: an array selects
// array-of-arrays mode (no header synthesis, every element must be an
// array), an object selects array-of-records mode (the header union of all
// elements becomes the header row). An empty array yields an empty table
// with no header. Non-object elements in records mode contribute no row;
// the count of skipped elements is returned so callers can surface it.
func DocumentToTable(doc Value) (*Table, int, error) {
	if doc.Kind != KindArray {
		return nil, 0, ErrDocumentNotArray
	}
	if len(doc.Arr) == 0 {
		return &Table{}, 0, nil
	}

	switch doc.Arr[0].Kind {
	case KindArray:
		t := &Table{Rows: make([][]string, 0, len(doc.Arr))}
		for i, el := range doc.Arr {
			if el.Kind != KindArray {
				return nil, 0, fmt.Errorf("row %d is not an array", i)
			}
			row := make([]string, len(el.Arr))
			for j, cell := range el.Arr {
				row[j] = cell.Text()
			}
			t.Rows = append(t.Rows, row)
		}
		return t, 0, nil

	case KindObject:
		header := headerUnion(doc.Arr)
		t := &Table{Header: header}
		skipped := 0
		for _, el := range doc.Arr {
			if el.Kind != KindObject {
				skipped++
				continue
			}
			row := make([]string, len(header))
			for j, key := range header {
				if v, ok := el.Obj.Get(key); ok {
					row[j] = v.Text()
				}
			}
			t.Rows = append(t.Rows, row)
		}
		return t, skipped, nil

	default:
		return nil, 0, ErrElementShape
	}
}

// headerUnion builds the ordered key union across the object elements of
// arr: the first object's keys in encountered order, then any key from later
// objects not already present, in first-encountered order. No sorting.
func headerUnion(arr []Value) []string {
	var ordered []string
	seen := make(map[string]struct{})
	for _, el := range arr {
		if el.Kind != KindObject {
			continue
		}
		for _, f := range el.Obj {
			if _, ok := seen[f.Key]; ok {
				continue
			}
			seen[f.Key] = struct{}{}
			ordered = append(ordered, f.Key)
		}
	}
	return ordered
}

// JSONToCSV reads a JSON document from r and writes its delimited-text form
// to w. The whole document is materialized in memory; there is no streaming
// mode. The returned Result reports row and skipped-element counts.
func JSONToCSV(r io.Reader, w io.Writer, opts JSONOptions) (Result, error) {
	doc, err := DecodeDocument(r)
	if err != nil {
		return Result{}, fmt.Errorf("decode JSON: %w", err)
	}

	table, skipped, err := DocumentToTable(doc)
	if err != nil {
		return Result{}, err
	}

	if err := WriteTable(w, table.Header, table.Rows, opts.Delimiter, opts.QuoteAll); err != nil {
		return Result{}, err
	}
	return Result{Rows: len(table.Rows), Skipped: skipped}, nil
}
