package main

// convert.go implements the conversion subcommand actions: flag resolution,
// file plumbing, and the one-line confirmation messages. The conversion
// logic itself lives in internal/convert.

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"tablecast/internal/convert"
	"tablecast/internal/excel"

	"github.com/kardianos/task"
)

// runCSVToJSON handles the csv-to-json subcommand.
func runCSVToJSON(st *task.State) error {
	input, output, err := ioPaths(st)
	if err != nil {
		return err
	}
	delimiter, err := convert.ParseDelimiter(st.Default("delimiter", ",").(string))
	if err != nil {
		return err
	}

	opts := convert.CSVOptions{
		Delimiter:   delimiter,
		HasHeaders:  st.Default("has-headers", true).(bool),
		Trim:        st.Default("trim", false).(bool),
		ArrayFormat: st.Default("array-format", false).(bool),
	}

	err = withFiles(input, output, func(r io.Reader, w io.Writer) error {
		return convert.CSVToJSON(r, w, opts)
	})
	if err != nil {
		return err
	}

	slog.Debug("conversion complete", "input", input, "output", output)
	fmt.Println("CSV successfully converted to JSON")
	return nil
}

// runJSONToCSV handles the json-to-csv subcommand.
func runJSONToCSV(st *task.State) error {
	input, output, err := ioPaths(st)
	if err != nil {
		return err
	}
	delimiter, err := convert.ParseDelimiter(st.Default("delimiter", ",").(string))
	if err != nil {
		return err
	}

	opts := convert.JSONOptions{
		Delimiter: delimiter,
		QuoteAll:  st.Default("quote-all", false).(bool),
	}

	var res convert.Result
	err = withFiles(input, output, func(r io.Reader, w io.Writer) error {
		var convErr error
		res, convErr = convert.JSONToCSV(r, w, opts)
		return convErr
	})
	if err != nil {
		return err
	}

	if res.Skipped > 0 {
		slog.Warn("skipped non-record elements", "skipped", res.Skipped, "input", input)
	}
	slog.Debug("conversion complete", "rows", res.Rows, "input", input, "output", output)
	fmt.Println("JSON successfully converted to CSV")
	return nil
}

// runXLSXToJSON handles the xlsx-to-json subcommand. Worksheet rows flow
// through the same table→document mapping as CSV rows.
func runXLSXToJSON(st *task.State) error {
	input, output, err := ioPaths(st)
	if err != nil {
		return err
	}
	sheet := st.Default("sheet", "").(string)
	hasHeaders := st.Default("has-headers", true).(bool)
	arrayFormat := st.Default("array-format", false).(bool)

	err = withFiles(input, output, func(r io.Reader, w io.Writer) error {
		rows, err := excel.ReadRows(r, sheet)
		if err != nil {
			return err
		}
		table := convert.TableFromRows(rows, hasHeaders)
		return convert.EncodeDocument(w, convert.TableToDocument(table, arrayFormat))
	})
	if err != nil {
		return err
	}

	slog.Debug("conversion complete", "input", input, "output", output, "sheet", sheet)
	fmt.Println("XLSX successfully converted to JSON")
	return nil
}

// ioPaths resolves the required input/output flags.
func ioPaths(st *task.State) (string, string, error) {
	input := st.Default("input", "").(string)
	if input == "" {
		return "", "", fmt.Errorf("missing required flag -input")
	}
	output := st.Default("output", "").(string)
	if output == "" {
		return "", "", fmt.Errorf("missing required flag -output")
	}
	return input, output, nil
}

// withFiles opens the input for reading and creates the output, runs fn over
// buffered streams, and guarantees both files are closed on every path. The
// output buffer is flushed and the file closed before success is reported,
// so a flush failure fails the conversion.
func withFiles(inPath, outPath string, fn func(io.Reader, io.Writer) error) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(out)
	if err := fn(bufio.NewReader(in), bw); err != nil {
		out.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
