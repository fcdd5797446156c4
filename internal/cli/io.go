package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/tychoish/lazy"
	"github.com/tychoish/lazy/ers"
)

const (
	formatTable = "table"
	formatCSV   = "csv"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// input is a CSV source. The first record is read eagerly, to learn
// the header and the width of the rows; everything else is read on
// demand by the stream returned from Rows.
type input struct {
	header []string
	width  int
	first  []string
	reader *csv.Reader
	closer io.Closer
}

func (a *app) openInput() (*input, error) {
	src := io.NopCloser(a.stdin)
	if path := a.conf.GetString("input"); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		src = f
	}

	in := &input{reader: csv.NewReader(src), closer: src}
	in.reader.TrimLeadingSpace = true

	first, err := in.reader.Read()
	switch {
	case errors.Is(err, io.EOF):
		return in, nil
	case err != nil:
		_ = src.Close()
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	in.width = len(first)
	if a.conf.GetBool("header") {
		in.header = first
	} else {
		in.first = first
	}

	a.log.Debug("opened input", "width", in.width, "header", in.header)
	return in, nil
}

func (in *input) Close() error { return in.closer.Close() }

// Rows returns a stream of the data rows of the input. Malformed
// records end the stream, and are reported by the stream's Close
// method.
func (in *input) Rows() *lazy.Stream[[]string] {
	if in.width == 0 {
		return lazy.SliceStream([][]string{})
	}

	pending := in.first
	return lazy.MakeGenerator(func() ([]string, error) {
		if pending != nil {
			row := pending
			pending = nil
			return row, nil
		}
		return in.reader.Read()
	}).Stream()
}

// Column resolves a column reference, which is either a zero-based
// index, or, when the input has a header, the name of a column.
func (in *input) Column(ref string) (int, error) {
	if idx := slices.Index(in.header, ref); idx >= 0 {
		return idx, nil
	}

	idx, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("unknown column %q: %w", ref, ers.ErrInvalidInput)
	}
	if idx < 0 || (in.width > 0 && idx >= in.width) {
		return 0, fmt.Errorf("column %d out of range [0, %d): %w", idx, in.width, ers.ErrInvalidInput)
	}
	return idx, nil
}

// rowWriter renders rows in one of the output formats. Formats that
// cannot be streamed hold the rows until Flush.
type rowWriter interface {
	Write(row []string) error
	Flush() error
}

func (a *app) newWriter(header []string) (rowWriter, error) {
	switch format := a.conf.GetString("format"); format {
	case formatTable:
		table := tablewriter.NewWriter(a.stdout)
		table.SetAutoWrapText(false)
		table.SetAutoFormatHeaders(false)
		table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
		table.SetBorder(true)
		if header != nil {
			table.SetHeader(header)
		}
		return &tableWriter{table: table}, nil
	case formatCSV:
		w := &csvWriter{out: csv.NewWriter(a.stdout)}
		if header != nil {
			if err := w.Write(header); err != nil {
				return nil, err
			}
		}
		return w, nil
	case formatJSON:
		return &recordWriter{header: header, encode: func(v any) error {
			enc := json.NewEncoder(a.stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(v)
		}}, nil
	case formatYAML:
		return &recordWriter{header: header, encode: func(v any) error {
			enc := yaml.NewEncoder(a.stdout)
			enc.SetIndent(2)
			if err := enc.Encode(v); err != nil {
				return err
			}
			return enc.Close()
		}}, nil
	default:
		return nil, fmt.Errorf("unsupported format %q: %w", format, ers.ErrInvalidInput)
	}
}

type tableWriter struct{ table *tablewriter.Table }

func (w *tableWriter) Write(row []string) error { w.table.Append(row); return nil }
func (w *tableWriter) Flush() error             { w.table.Render(); return nil }

type csvWriter struct{ out *csv.Writer }

func (w *csvWriter) Write(row []string) error { return w.out.Write(row) }
func (w *csvWriter) Flush() error             { w.out.Flush(); return w.out.Error() }

// recordWriter buffers rows and encodes them as a list: of objects
// keyed by column name when there is a header, and of lists
// otherwise.
type recordWriter struct {
	header  []string
	records []any
	encode  func(any) error
}

func (w *recordWriter) Write(row []string) error {
	if w.header == nil {
		w.records = append(w.records, slices.Clone(row))
		return nil
	}

	record := make(map[string]string, len(w.header))
	for idx, name := range w.header {
		if idx < len(row) {
			record[name] = row[idx]
		}
	}
	w.records = append(w.records, record)
	return nil
}

func (w *recordWriter) Flush() error {
	if w.records == nil {
		w.records = []any{}
	}
	return w.encode(w.records)
}

// emit writes every row of the stream, flushes the writer, and closes
// the stream, reporting the errors of all three.
func (a *app) emit(ctx context.Context, cmd string, st *lazy.Stream[[]string], w rowWriter) error {
	var count int
	err := st.ReadAll(func(row []string) {
		if err := w.Write(row); err != nil {
			st.AddError(err)
			return
		}
		count++
	}).Run(ctx)

	err = ers.Join(err, w.Flush())
	a.log.Debug("wrote rows", "command", cmd, "rows", count, "error", err)
	if err != nil {
		return fmt.Errorf("%s failed: %w", cmd, err)
	}
	return nil
}
