package models

import "strings"

// AbsentMarker marks a participant who takes no part in an expense row.
const AbsentMarker = "-"

// Sheet represents a complete expense sheet as read from its source file.
type Sheet struct {
	// Header holds one cell per column. Non-blank cells name a participant;
	// blank cells are label columns.
	Header []string

	// Rows are the expense events in file order.
	Rows []Row
}

// Participants returns the non-blank header names in column order.
func (s Sheet) Participants() []string {
	names := make([]string, 0, len(s.Header))
	for _, h := range s.Header {
		if name := strings.TrimSpace(h); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Row represents one expense event.
type Row struct {
	// Line is the 1-based line number in the source file.
	// Zero when the row was not read from a file.
	Line int

	// Cells are the raw cell values, aligned to Sheet.Header by index.
	// A row may be shorter than the header.
	Cells []string
}

// Cell returns the trimmed cell at column i and whether the row reaches that column.
func (r Row) Cell(i int) (string, bool) {
	if i < 0 || i >= len(r.Cells) {
		return "", false
	}
	return strings.TrimSpace(r.Cells[i]), true
}
