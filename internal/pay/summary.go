package pay

import (
	"time"

	"github.com/shopspring/decimal"

	"shiftpay/internal/model"
)

type Summary struct {
	TotalShifts   int
	DayBreakdown  map[time.Weekday]int
	TotalHours    decimal.Decimal
	BaseEarnings  decimal.Decimal
	EveningExtra  decimal.Decimal
	WeekendExtra  decimal.Decimal
	SundayExtra   decimal.Decimal
	TotalEarnings decimal.Decimal
}

// Summarize складывает сохранённые расчёты. Смены без расчёта учитываются
// только в количестве смен и разбивке по дням недели.
func Summarize(items []model.ShiftWithCalculation) Summary {
	s := Summary{DayBreakdown: make(map[time.Weekday]int, 7)}
	for _, it := range items {
		s.TotalShifts++
		s.DayBreakdown[it.Date.Weekday()]++
		c := it.Calculation
		if c == nil {
			continue
		}
		s.TotalHours = s.TotalHours.Add(c.DurationHours)
		s.BaseEarnings = s.BaseEarnings.Add(c.BasePay)
		s.EveningExtra = s.EveningExtra.Add(c.EveningExtra)
		s.WeekendExtra = s.WeekendExtra.Add(c.WeekendExtra)
		s.SundayExtra = s.SundayExtra.Add(c.SundayExtra)
	}
	s.TotalEarnings = s.BaseEarnings.Add(s.EveningExtra).Add(s.WeekendExtra).Add(s.SundayExtra)
	return s
}

// MonthlyTotals: сумма total_pay по месяцам года year (индекс 0 это январь).
func MonthlyTotals(items []model.ShiftWithCalculation, year int) [12]decimal.Decimal {
	var totals [12]decimal.Decimal
	for _, it := range items {
		if it.Calculation == nil || it.Date.Year() != year {
			continue
		}
		m := int(it.Date.Month()) - 1
		totals[m] = totals[m].Add(it.Calculation.TotalPay)
	}
	return totals
}
