// Package sheet stores RSVP rows in an append-only, spreadsheet-like table.
//
// Row 1 of a sheet is an optional header; data rows follow in insertion
// order and are never updated or deleted. RowCount counts the header too, so
// an empty sheet reports 0 and a sheet holding only a header reports 1.
package sheet

import (
	"context"
	"errors"
	"unicode/utf8"
)

var (
	ErrUnknownDriver = errors.New("sheet: unknown driver")
	ErrClosed        = errors.New("sheet: closed")
)

// Header is the formatted first row of a sheet.
type Header struct {
	Cells  []string `json:"cells"`
	Bold   bool     `json:"bold"`
	Widths []int    `json:"widths"`
}

type Sheet interface {
	// RowCount returns the index of the last written row (header included).
	RowCount(ctx context.Context) (int, error)
	// WriteHeader sets row 1, replacing any previous header.
	WriteHeader(ctx context.Context, h Header) error
	// Header returns nil when no header was written.
	Header(ctx context.Context) (*Header, error)
	// Append adds one data row after the last one.
	Append(ctx context.Context, row []string) error
	// Rows returns data rows in insertion order.
	Rows(ctx context.Context) ([][]string, error)
	Close() error
}

// AutoSize returns per-column widths fitting the widest cell of the given rows.
func AutoSize(rows ...[]string) []int {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			for len(widths) <= i {
				widths = append(widths, 0)
			}
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths
}

func cloneRow(row []string) []string {
	out := make([]string, len(row))
	copy(out, row)
	return out
}
