package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitcosts/internal/models"
)

// Settlement is the output of Settle.
type Settlement struct {
	// Transfers are the payments to make, in the order they were derived.
	Transfers []models.Transfer

	// Imbalance is the sum of the input balances. Zero for a sheet whose
	// bookkeeping closes exactly.
	Imbalance decimal.Decimal

	// Residual holds the balances left unresolved because of a non-zero
	// Imbalance. Empty when Imbalance is zero.
	Residual []MemberBalance
}

// SettleOption configures Settle.
type SettleOption func(*settleOptions)

type settleOptions struct {
	strict bool
}

// WithStrict makes Settle fail with ErrImbalance instead of reporting a
// non-zero total balance.
func WithStrict(strict bool) SettleOption {
	return func(o *settleOptions) {
		o.strict = strict
	}
}

// Settle computes the transfers that bring every balance back to zero.
//
// Algorithm (greedy):
// - Drop zero balances
// - Pair the largest creditor with the largest debtor; the debtor pays the
//   creditor's whole balance and the creditor leaves the working set
// - Repeat until at most one participant is left
//
// At most n-1 transfers are emitted for n non-zero balances. Among equal
// extremes the participant listed first wins. The input slice is not modified.
func Settle(balances []MemberBalance, opts ...SettleOption) (*Settlement, error) {
	var o settleOptions
	for _, opt := range opts {
		opt(&o)
	}

	imbalance := TotalBalance(balances)
	if !imbalance.IsZero() && o.strict {
		return nil, fmt.Errorf("%w: %s", ErrImbalance, imbalance.String())
	}

	working := make([]MemberBalance, 0, len(balances))
	for _, b := range balances {
		if !b.NetBalance.IsZero() {
			working = append(working, b)
		}
	}

	var transfers []models.Transfer
	for len(working) > 1 {
		creditor, debtor := extremes(working)
		credit := working[creditor].NetBalance

		// Only same-sign leftovers of an imbalance remain
		if !credit.IsPositive() || !working[debtor].NetBalance.IsNegative() {
			break
		}

		transfers = append(transfers, models.Transfer{
			From:   working[debtor].MemberName,
			To:     working[creditor].MemberName,
			Amount: credit,
		})

		working[debtor].NetBalance = working[debtor].NetBalance.Add(credit)
		debtorSettled := working[debtor].NetBalance.IsZero()

		// Remove the higher index first so the lower one stays valid
		if debtorSettled && debtor > creditor {
			working = removeAt(working, debtor)
			working = removeAt(working, creditor)
		} else {
			working = removeAt(working, creditor)
			if debtorSettled {
				working = removeAt(working, debtor)
			}
		}
	}

	return &Settlement{
		Transfers: transfers,
		Imbalance: imbalance,
		Residual:  working,
	}, nil
}

// extremes returns the indexes of the first maximum and first minimum balance.
func extremes(balances []MemberBalance) (maxIdx, minIdx int) {
	for i := 1; i < len(balances); i++ {
		if balances[i].NetBalance.GreaterThan(balances[maxIdx].NetBalance) {
			maxIdx = i
		}
		if balances[i].NetBalance.LessThan(balances[minIdx].NetBalance) {
			minIdx = i
		}
	}
	return maxIdx, minIdx
}

func removeAt(balances []MemberBalance, i int) []MemberBalance {
	return append(balances[:i], balances[i+1:]...)
}

// ApplyTransfers returns a copy of balances with the transfers carried out:
// each payer's balance rises by the amount and each payee's falls by it.
// Transfers naming unknown participants are ignored.
func ApplyTransfers(balances []MemberBalance, transfers []models.Transfer) []MemberBalance {
	out := make([]MemberBalance, len(balances))
	copy(out, balances)

	index := make(map[string]int, len(out))
	for i, b := range out {
		index[b.MemberName] = i
	}

	for _, t := range transfers {
		if i, ok := index[t.From]; ok {
			out[i].NetBalance = out[i].NetBalance.Add(t.Amount)
		}
		if i, ok := index[t.To]; ok {
			out[i].NetBalance = out[i].NetBalance.Sub(t.Amount)
		}
	}

	return out
}

// TotalTransferred returns the sum of all transfer amounts.
func TotalTransferred(transfers []models.Transfer) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transfers {
		total = total.Add(t.Amount)
	}
	return total
}
