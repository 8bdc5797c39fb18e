package export

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"shiftpay/internal/model"
	"shiftpay/internal/pay"
)

const (
	ShiftsSheet  = "Shifts"
	SummarySheet = "Summary"
)

var shiftHeader = []any{
	"Date", "Weekday", "Start", "End", "Hours",
	"Evening hours", "Weekend hours", "Sunday hours",
	"Base pay", "Evening extra", "Weekend extra", "Sunday extra", "Total",
}

// WriteMonthlyReport пишет книгу xlsx: смены за месяц построчно и сводку.
// Деньги округляются до копеек только здесь.
func WriteMonthlyReport(w io.Writer, month time.Time, items []model.ShiftWithCalculation) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ShiftsSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(ShiftsSheet, "A1", &shiftHeader); err != nil {
		return err
	}
	for i, it := range items {
		row := []any{
			it.Date.Format(model.DateLayout),
			it.Date.Weekday().String(),
			it.StartTime.String(),
			it.EndTime.String(),
		}
		if c := it.Calculation; c != nil {
			row = append(row,
				money(c.DurationHours), money(c.EveningHours), money(c.WeekendHours), money(c.SundayHours),
				money(c.BasePay), money(c.EveningExtra), money(c.WeekendExtra), money(c.SundayExtra), money(c.TotalPay),
			)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ShiftsSheet, cell, &row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return err
	}
	s := pay.Summarize(items)
	summary := [][]any{
		{"Month", month.Format("2006-01")},
		{"Shifts", s.TotalShifts},
		{"Hours", money(s.TotalHours)},
		{"Base earnings", money(s.BaseEarnings)},
		{"Evening extra", money(s.EveningExtra)},
		{"Weekend extra", money(s.WeekendExtra)},
		{"Sunday extra", money(s.SundayExtra)},
		{"Total", money(s.TotalEarnings)},
	}
	for wd := time.Monday; ; wd = (wd + 1) % 7 {
		summary = append(summary, []any{wd.String(), s.DayBreakdown[wd]})
		if wd == time.Sunday {
			break
		}
	}
	for i, row := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
