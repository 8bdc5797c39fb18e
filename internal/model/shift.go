package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Shift struct {
	ID              int64
	Date            time.Time
	StartTime       Clock
	EndTime         Clock
	SalaryProfileID int64
}

// Interval переводит дату и время смены в моменты времени пояса loc.
func (s Shift) Interval(loc *time.Location) (time.Time, time.Time) {
	day := time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(), 0, 0, 0, 0, loc)
	return s.StartTime.On(day), s.EndTime.On(day)
}

type ShiftCalculation struct {
	ID              int64
	ShiftID         int64
	SalaryProfileID int64
	DurationHours   decimal.Decimal
	EveningHours    decimal.Decimal
	WeekendHours    decimal.Decimal
	SundayHours     decimal.Decimal
	BasePay         decimal.Decimal
	EveningExtra    decimal.Decimal
	WeekendExtra    decimal.Decimal
	SundayExtra     decimal.Decimal
	TotalPay        decimal.Decimal
}

type ShiftWithCalculation struct {
	Shift
	Calculation *ShiftCalculation
}
