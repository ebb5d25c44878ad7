package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// CSVSource reads tradeline records from a delimited extract file with
// a header row. Rows shorter than the header are padded with empty
// fields rather than rejected.
type CSVSource struct {
	Path  string
	Comma rune // defaults to ','
}

// NewCSVSource returns a comma-delimited source over path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path, Comma: ','}
}

// Each streams every data row as a Record.
func (s *CSVSource) Each(ctx context.Context, fn func(Record) error) error {
	f, err := os.Open(s.Path)
	if err != nil {
		return fmt.Errorf("opening extract %s: %w", s.Path, err)
	}
	defer f.Close()

	return s.each(ctx, f, fn)
}

func (s *CSVSource) each(ctx context.Context, r io.Reader, fn func(Record) error) error {
	reader := csv.NewReader(r)
	if s.Comma != 0 {
		reader.Comma = s.Comma
	}
	reader.FieldsPerRecord = -1 // ragged rows are tolerated

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil // empty extract, empty population
		}
		return fmt.Errorf("reading header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading row: %w", err)
		}

		rec := make(Record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			} else {
				rec[name] = ""
			}
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
}
