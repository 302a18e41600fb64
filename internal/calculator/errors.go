package calculator

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount is returned when a cell is neither a decimal amount,
	// the absent marker, nor a parenthesized amount.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrNoSharers is returned when a row records money but nobody shares it,
	// so no per-sharer share can be computed.
	ErrNoSharers = errors.New("division by zero: row has contributions but no sharers")

	// ErrDuplicateParticipant is returned when the header names a participant twice.
	ErrDuplicateParticipant = errors.New("duplicate participant")

	// ErrImbalance is returned by Settle in strict mode when balances do not sum to zero.
	ErrImbalance = errors.New("total balance is non-vanishing")
)

// ParseError reports a cell that could not be interpreted.
type ParseError struct {
	Line        int // 1-based line in the source file
	Column      int // 1-based column
	Participant string
	Value       string
	Err         error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d (%s): %v %q: %v",
		e.Line, e.Column, e.Participant, ErrInvalidAmount, e.Value, e.Err)
}

// Unwrap exposes both ErrInvalidAmount and the underlying decimal error.
func (e *ParseError) Unwrap() []error {
	return []error{ErrInvalidAmount, e.Err}
}
