// Package sheet reads expense sheets from delimited text files.
package sheet

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mmynk/splitcosts/internal/models"
)

var (
	// ErrEmptyFile is returned when the input has no header row.
	ErrEmptyFile = errors.New("expense sheet is empty")
)

// Option configures Read.
type Option func(*reader)

type reader struct {
	delimiter rune
}

// WithDelimiter sets the field delimiter (default is comma).
func WithDelimiter(d rune) Option {
	return func(r *reader) {
		r.delimiter = d
	}
}

// ReadFile opens path and reads it as an expense sheet.
func ReadFile(path string, opts ...Option) (*models.Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open expense sheet: %w", err)
	}
	defer f.Close()

	return Read(f, opts...)
}

// Read parses an expense sheet. The first record is the header; every
// following record is an expense row. Fields are trimmed of surrounding
// whitespace and records may have any number of fields.
func Read(r io.Reader, opts ...Option) (*models.Sheet, error) {
	cfg := &reader{delimiter: ','}
	for _, opt := range opts {
		opt(cfg)
	}

	buf := bufio.NewReader(r)

	// UTF-8 BOM: 0xEF, 0xBB, 0xBF
	if bom, err := buf.Peek(3); err == nil && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		_, _ = buf.Discard(3)
	}

	cr := csv.NewReader(buf)
	cr.Comma = cfg.delimiter
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	sheet := &models.Sheet{Header: trimAll(header)}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read expense row: %w", err)
		}

		line, _ := cr.FieldPos(0)
		sheet.Rows = append(sheet.Rows, models.Row{
			Line:  line,
			Cells: trimAll(record),
		})
	}

	return sheet, nil
}

func trimAll(fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = strings.TrimSpace(f)
	}
	return out
}
