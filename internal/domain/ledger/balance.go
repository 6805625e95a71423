package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PaymentKind describes what a booking payment is meant to be
type PaymentKind string

const (
	PaymentKindDownPayment PaymentKind = "Down Payment"
	PaymentKindPartial     PaymentKind = "Partial Payment"
	PaymentKindFull        PaymentKind = "Full Payment"
)

// IsValid checks if the payment kind is known
func (k PaymentKind) IsValid() bool {
	switch k {
	case PaymentKindDownPayment, PaymentKindPartial, PaymentKindFull:
		return true
	}
	return false
}

// ParsePaymentKind matches a payment kind case-insensitively
func ParsePaymentKind(s string) (PaymentKind, bool) {
	for _, k := range []PaymentKind{PaymentKindDownPayment, PaymentKindPartial, PaymentKindFull} {
		if strings.EqualFold(strings.TrimSpace(s), string(k)) {
			return k, true
		}
	}
	return "", false
}

// SettlementTolerance is how close to zero a full payment must leave the
// balance for the booking to count as settled. It absorbs the centavo drift of
// amounts that were once stored as floats.
var SettlementTolerance = decimal.New(1, -2)

// BalanceResult is the outcome of applying a payment to a booking
type BalanceResult struct {
	PaidBefore decimal.Decimal
	PaidAfter  decimal.Decimal
	Balance    decimal.Decimal
	// Completes is set when the booking must transition to Completed
	Completes bool
}

// ComputeRunningBalance returns contract - (sum(prior) + payment).
// A full payment that leaves |balance| <= SettlementTolerance completes the booking.
func ComputeRunningBalance(contract decimal.Decimal, prior []decimal.Decimal, payment decimal.Decimal, kind PaymentKind) BalanceResult {
	paidBefore := SumAmounts(prior)
	paidAfter := paidBefore.Add(payment)
	balance := contract.Sub(paidAfter)

	return BalanceResult{
		PaidBefore: paidBefore,
		PaidAfter:  paidAfter,
		Balance:    balance,
		Completes:  kind == PaymentKindFull && balance.Abs().LessThanOrEqual(SettlementTolerance),
	}
}
