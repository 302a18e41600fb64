package models

import "github.com/shopspring/decimal"

// Transfer represents a payment between participants that settles balances.
type Transfer struct {
	// From is the participant who pays.
	From string

	// To is the participant who receives the payment.
	To string

	// Amount is the payment amount. Always strictly positive.
	Amount decimal.Decimal
}
