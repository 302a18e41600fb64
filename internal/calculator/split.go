package calculator

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitcosts/internal/models"
)

// shareScale is the number of fractional digits kept when a row total is
// divided among its sharers.
const shareScale = 24

var (
	excludedPattern = regexp.MustCompile(`^\(\s*([^()]*?)\s*\)$`)

	// Plain decimal text only, no exponent notation
	amountPattern = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?$`)

	errNotDecimal = errors.New("not a plain decimal number")
)

// cellKind classifies a participant's cell within one row.
type cellKind int

const (
	cellAbsent   cellKind = iota // not part of the row
	cellShared                   // contributes and shares the row
	cellExcluded                 // contributes, does not share
)

// parseCell interprets one participant cell.
// Blank cells are a shared zero contribution.
func parseCell(raw string) (cellKind, decimal.Decimal, error) {
	value := strings.TrimSpace(raw)
	switch value {
	case models.AbsentMarker:
		return cellAbsent, decimal.Zero, nil
	case "":
		return cellShared, decimal.Zero, nil
	}

	if m := excludedPattern.FindStringSubmatch(value); m != nil {
		amount, err := parseAmount(m[1])
		if err != nil {
			return cellAbsent, decimal.Zero, err
		}
		return cellExcluded, amount, nil
	}

	amount, err := parseAmount(value)
	if err != nil {
		return cellAbsent, decimal.Zero, err
	}
	return cellShared, amount, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	if !amountPattern.MatchString(s) {
		return decimal.Zero, errNotDecimal
	}
	return decimal.NewFromString(s)
}

// SplitEvenly divides total among n sharers.
// Every share is total/n rounded at shareScale fractional digits, except the
// last one which absorbs the rounding remainder, so the shares always sum to
// total exactly.
func SplitEvenly(total decimal.Decimal, n int) ([]decimal.Decimal, error) {
	if n <= 0 {
		return nil, ErrNoSharers
	}

	share := total.DivRound(decimal.NewFromInt(int64(n)), shareScale)
	shares := make([]decimal.Decimal, n)
	allocated := decimal.Zero
	for i := 0; i < n-1; i++ {
		shares[i] = share
		allocated = allocated.Add(share)
	}
	shares[n-1] = total.Sub(allocated)

	return shares, nil
}
