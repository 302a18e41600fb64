package calculator

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitcosts/internal/models"
)

// MemberBalance represents the balance information for one participant.
type MemberBalance struct {
	MemberName  string
	NetBalance  decimal.Decimal // Positive = receives in settlement, Negative = pays
	Contributed decimal.Decimal // Sum of this member's cell amounts, excluded amounts included
	Share       decimal.Decimal // Sum of the row shares allocated to this member
}

// BalanceResult is the output of BuildBalances.
type BalanceResult struct {
	// Balances are listed in header column order.
	Balances []MemberBalance

	// Places is the number of fractional digits of the finest amount in the
	// sheet. Every NetBalance is rounded to it.
	Places int32

	// Rows is the number of expense rows processed.
	Rows int
}

// participantColumn ties a participant name to its header column.
type participantColumn struct {
	name  string
	index int
}

// BuildBalances computes every participant's balance from an expense sheet.
//
// Algorithm, per row:
// - Each present participant's amount is added to the row total and
//   subtracted from their balance
// - The total is split evenly among sharers (excluded amounts don't share)
// - Each sharer's share is added to their balance
//
// Final balances are rounded half away from zero to the finest scale seen in
// the input.
func BuildBalances(sheet models.Sheet) (*BalanceResult, error) {
	columns, err := participantColumns(sheet.Header)
	if err != nil {
		return nil, err
	}

	balances := make([]MemberBalance, len(columns))
	for i, col := range columns {
		balances[i] = MemberBalance{MemberName: col.name}
	}

	minExp := int32(0)
	for r, row := range sheet.Rows {
		line := row.Line
		if line == 0 {
			line = r + 2 // header is line 1
		}

		total := decimal.Zero
		sharers := make([]int, 0, len(columns))
		excluded := false

		for i, col := range columns {
			raw, ok := row.Cell(col.index)
			if !ok {
				continue
			}

			kind, amount, err := parseCell(raw)
			if err != nil {
				return nil, &ParseError{
					Line:        line,
					Column:      col.index + 1,
					Participant: col.name,
					Value:       raw,
					Err:         err,
				}
			}

			switch kind {
			case cellAbsent:
				continue
			case cellExcluded:
				excluded = true
			case cellShared:
				sharers = append(sharers, i)
			}

			if exp := amount.Exponent(); exp < minExp {
				minExp = exp
			}
			total = total.Add(amount)
			balances[i].Contributed = balances[i].Contributed.Add(amount)
		}

		if len(sharers) == 0 {
			if excluded {
				return nil, fmt.Errorf("line %d: %w", line, ErrNoSharers)
			}
			// Everybody absent: nothing to allocate
			continue
		}

		shares, err := SplitEvenly(total, len(sharers))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		for k, i := range sharers {
			balances[i].Share = balances[i].Share.Add(shares[k])
		}

		slog.Debug("Expense row allocated",
			"line", line,
			"total", total.String(),
			"sharers", len(sharers),
		)
	}

	places := -minExp
	for i := range balances {
		balances[i].NetBalance = balances[i].Share.Sub(balances[i].Contributed).Round(places)
	}

	return &BalanceResult{
		Balances: balances,
		Places:   places,
		Rows:     len(sheet.Rows),
	}, nil
}

// participantColumns returns the participant columns of a header, rejecting
// duplicate names.
func participantColumns(header []string) ([]participantColumn, error) {
	seen := make(map[string]int, len(header))
	columns := make([]participantColumn, 0, len(header))

	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			continue
		}
		if prev, exists := seen[name]; exists {
			return nil, fmt.Errorf("%w: %q in columns %d and %d", ErrDuplicateParticipant, name, prev+1, i+1)
		}
		seen[name] = i
		columns = append(columns, participantColumn{name: name, index: i})
	}

	return columns, nil
}

// TotalBalance returns the sum of all net balances. A balanced sheet sums to zero.
func TotalBalance(balances []MemberBalance) decimal.Decimal {
	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b.NetBalance)
	}
	return total
}
