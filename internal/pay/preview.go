package pay

import (
	"time"

	"github.com/shopspring/decimal"

	"shiftpay/internal/model"
)

// Estimate: предварительная сумма за смену для показа до сохранения.
type Estimate struct {
	DurationHours decimal.Decimal
	Amount        decimal.Decimal
	Breakdown     Breakdown
}

// Preview считает ту же разбивку, что и Decompose, и округляет часы и итог до копеек.
// Breakdown остаётся неокруглённым.
func Preview(start, end time.Time, profile model.SalaryProfile) (Estimate, error) {
	b, err := Decompose(start, end, profile)
	if err != nil {
		return Estimate{}, err
	}
	return Estimate{
		DurationHours: b.DurationHours.Round(2),
		Amount:        b.TotalPay.Round(2),
		Breakdown:     b,
	}, nil
}
