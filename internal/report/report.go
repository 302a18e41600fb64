// Package report renders expense sheets, balances and transfers as
// column-aligned text.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mmynk/splitcosts/internal/calculator"
	"github.com/mmynk/splitcosts/internal/models"
)

// DefaultWidth is the column width used when none is configured.
const DefaultWidth = 15

// Writer renders a settlement run. Write errors are sticky: after the first
// failure every call is a no-op and Err reports it.
type Writer struct {
	w     io.Writer
	width int
	err   error
}

// New creates a Writer with the given column width. Non-positive widths fall
// back to DefaultWidth.
func New(w io.Writer, width int) *Writer {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Writer{w: w, width: width}
}

// Err returns the first write error, if any.
func (r *Writer) Err() error {
	return r.err
}

// WriteSheet echoes the header, a separator, and every expense row.
func (r *Writer) WriteSheet(sheet models.Sheet) {
	r.line(r.columns(sheet.Header))
	r.separator(len(sheet.Header))
	for _, row := range sheet.Rows {
		r.line(r.columns(row.Cells))
	}
}

// WriteBalances prints a separator and each participant's balance under its
// header column. Label columns stay blank.
func (r *Writer) WriteBalances(header []string, balances []calculator.MemberBalance, places int32) {
	byName := make(map[string]string, len(balances))
	for _, b := range balances {
		byName[b.MemberName] = b.NetBalance.StringFixed(places)
	}

	cells := make([]string, len(header))
	for i, h := range header {
		cells[i] = byName[strings.TrimSpace(h)]
	}

	r.separator(len(header))
	r.line(r.columns(cells))
}

// WriteSettlement prints the imbalance note, when there is one, and the
// transfer list.
func (r *Writer) WriteSettlement(s *calculator.Settlement, places int32) {
	if !s.Imbalance.IsZero() {
		r.printf("Note: total balance is off by %s\n", s.Imbalance.StringFixed(places))
	}

	r.printf("\nTransfers:\n")
	for _, t := range s.Transfers {
		r.printf("  %s -> %s : %s\n", t.From, t.To, t.Amount.StringFixed(places))
	}
}

func (r *Writer) columns(cells []string) string {
	var b strings.Builder
	for _, c := range cells {
		fmt.Fprintf(&b, "%-*s", r.width, c)
	}
	return b.String()
}

func (r *Writer) separator(n int) {
	r.line(strings.Repeat("-", r.width*n))
}

func (r *Writer) line(s string) {
	r.printf("%s\n", s)
}

func (r *Writer) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}
