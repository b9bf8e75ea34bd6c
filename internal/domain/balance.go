package domain

import "github.com/shopspring/decimal"

// PatientBalance is a computed view over a patient's billable items and
// active payments. It is never persisted.
type PatientBalance struct {
	TotalDebt   decimal.Decimal
	TotalPaid   decimal.Decimal
	Outstanding decimal.Decimal
}

// NewPatientBalance derives the balance view. Outstanding is clamped at
// zero: overpayment reads as a settled account, the residual credit is
// ignored (no credit-forward mechanism exists).
func NewPatientBalance(totalDebt, totalPaid decimal.Decimal) PatientBalance {
	outstanding := totalDebt.Sub(totalPaid)
	if outstanding.IsNegative() {
		outstanding = decimal.Zero
	}

	return PatientBalance{
		TotalDebt:   totalDebt,
		TotalPaid:   totalPaid,
		Outstanding: outstanding,
	}
}
