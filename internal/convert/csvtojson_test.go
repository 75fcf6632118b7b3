package convert

import (
	"bytes"
	"strings"
	"testing"
)

// ----------------------------------------------------------------------------
// TableToDocument Tests
// ----------------------------------------------------------------------------

func TestTableToDocumentRecords(t *testing.T) {
	tests := []struct {
		name  string
		table *Table
		want  []Record
	}{
		{
			name: "rectangular table",
			table: &Table{
				Header: []string{"a", "b"},
				Rows:   [][]string{{"1", "2"}, {"3", "4"}},
			},
			want: []Record{
				{{Key: "a", Value: StringValue("1")}, {Key: "b", Value: StringValue("2")}},
				{{Key: "a", Value: StringValue("3")}, {Key: "b", Value: StringValue("4")}},
			},
		},
		{
			name: "short row omits trailing keys",
			table: &Table{
				Header: []string{"a", "b", "c"},
				Rows:   [][]string{{"1"}},
			},
			want: []Record{
				{{Key: "a", Value: StringValue("1")}},
			},
		},
		{
			name: "long row drops extra cells",
			table: &Table{
				Header: []string{"a"},
				Rows:   [][]string{{"1", "2", "3"}},
			},
			want: []Record{
				{{Key: "a", Value: StringValue("1")}},
			},
		},
		{
			name: "no headers synthesizes positional keys",
			table: &Table{
				Rows: [][]string{{"x", "y", "z"}},
			},
			want: []Record{
				{
					{Key: "field0", Value: StringValue("x")},
					{Key: "field1", Value: StringValue("y")},
					{Key: "field2", Value: StringValue("z")},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := TableToDocument(tt.table, false)
			if doc.Kind != KindArray {
				t.Fatalf("expected array document, got %v", doc.Kind)
			}
			if len(doc.Arr) != len(tt.want) {
				t.Fatalf("expected %d records, got %d", len(tt.want), len(doc.Arr))
			}
			for i, wantRec := range tt.want {
				el := doc.Arr[i]
				if el.Kind != KindObject {
					t.Fatalf("element %d: expected object, got %v", i, el.Kind)
				}
				if len(el.Obj) != len(wantRec) {
					t.Fatalf("element %d: expected %d fields, got %d", i, len(wantRec), len(el.Obj))
				}
				for j, wantField := range wantRec {
					got := el.Obj[j]
					if got.Key != wantField.Key || got.Value.Str != wantField.Value.Str {
						t.Errorf("element %d field %d = %s=%q, want %s=%q",
							i, j, got.Key, got.Value.Str, wantField.Key, wantField.Value.Str)
					}
				}
			}
		})
	}
}

func TestTableToDocumentArrays(t *testing.T) {
	tests := []struct {
		name  string
		table *Table
		want  [][]string
	}{
		{
			name: "header emitted verbatim as first row",
			table: &Table{
				Header: []string{"a", "b"},
				Rows:   [][]string{{"1", "2"}},
			},
			want: [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name: "no header rows only",
			table: &Table{
				Rows: [][]string{{"1", "2"}, {"3", "4"}},
			},
			want: [][]string{{"1", "2"}, {"3", "4"}},
		},
		{
			name:  "empty table",
			table: &Table{},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := TableToDocument(tt.table, true)
			if len(doc.Arr) != len(tt.want) {
				t.Fatalf("expected %d rows, got %d", len(tt.want), len(doc.Arr))
			}
			for i, wantRow := range tt.want {
				el := doc.Arr[i]
				if el.Kind != KindArray {
					t.Fatalf("row %d: expected array, got %v", i, el.Kind)
				}
				for j, wantCell := range wantRow {
					if el.Arr[j].Str != wantCell {
						t.Errorf("row %d cell %d = %q, want %q", i, j, el.Arr[j].Str, wantCell)
					}
				}
			}
		})
	}
}

// ----------------------------------------------------------------------------
// CSVToJSON Pipeline Tests
// ----------------------------------------------------------------------------

func TestCSVToJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  CSVOptions
		want  string
	}{
		{
			name:  "records with headers",
			input: "a,b\n1,2\n3,4\n",
			opts:  CSVOptions{Delimiter: ',', HasHeaders: true},
			want: `[
  {
    "a": "1",
    "b": "2"
  },
  {
    "a": "3",
    "b": "4"
  }
]`,
		},
		{
			name:  "array format includes header row",
			input: "a,b\n1,2\n",
			opts:  CSVOptions{Delimiter: ',', HasHeaders: true, ArrayFormat: true},
			want: `[
  [
    "a",
    "b"
  ],
  [
    "1",
    "2"
  ]
]`,
		},
		{
			name:  "no headers positional keys",
			input: "1,2\n",
			opts:  CSVOptions{Delimiter: ','},
			want: `[
  {
    "field0": "1",
    "field1": "2"
  }
]`,
		},
		{
			name:  "numeric-looking cells stay strings",
			input: "n\n42\n",
			opts:  CSVOptions{Delimiter: ',', HasHeaders: true},
			want: `[
  {
    "n": "42"
  }
]`,
		},
		{
			name:  "empty input empty array",
			input: "",
			opts:  CSVOptions{Delimiter: ',', HasHeaders: true},
			want:  "[]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := CSVToJSON(strings.NewReader(tt.input), &buf, tt.opts); err != nil {
				t.Fatalf("CSVToJSON: unexpected error: %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("output = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCSVToJSONMalformedInput(t *testing.T) {
	var buf bytes.Buffer
	err := CSVToJSON(strings.NewReader("a,b\n\"broken,2\n"), &buf, CSVOptions{Delimiter: ',', HasHeaders: true})
	if err == nil {
		t.Fatal("expected parse error, got none")
	}
}
