package pay

import (
	"time"

	"github.com/shopspring/decimal"

	"shiftpay/internal/domain"
	"shiftpay/internal/model"
)

var (
	// Смены от 8 часов включительно оплачиваются за вычетом получасового перерыва.
	longShiftHours = decimal.NewFromInt(8)
	longShiftBreak = decimal.RequireFromString("0.5")

	nanosPerHour = decimal.NewFromInt(int64(time.Hour))
)

// Breakdown: разбивка одной смены по часам и суммам. Значения не округляются.
type Breakdown struct {
	DurationHours decimal.Decimal
	BaseHours     decimal.Decimal
	EveningHours  decimal.Decimal
	WeekendHours  decimal.Decimal
	SundayHours   decimal.Decimal
	BasePay       decimal.Decimal
	EveningExtra  decimal.Decimal
	WeekendExtra  decimal.Decimal
	SundayExtra   decimal.Decimal
	TotalPay      decimal.Decimal
}

// Decompose раскладывает смену [start, end) по категориям оплаты профиля.
//
// Вечерняя надбавка начисляется только в будни, субботняя только в субботу
// после WeekendExtraStartTime, поэтому суббота после 18:00 вечерней не считается.
// В воскресенье вся смена идёт в SundayHours и доплачивается по базовой ставке.
// Вычет перерыва уменьшает только базовые часы.
func Decompose(start, end time.Time, profile model.SalaryProfile) (Breakdown, error) {
	if !end.After(start) || !model.SameDay(start, end) {
		return Breakdown{}, domain.ErrInvalidInterval
	}

	weekday := start.Weekday()
	isSaturday := weekday == time.Saturday
	isSunday := weekday == time.Sunday
	isWeekend := isSaturday || isSunday

	var b Breakdown
	b.DurationHours = hours(end.Sub(start))

	if !isWeekend {
		b.EveningHours = hoursAfter(start, end, profile.EveningStartTime.On(start))
	}
	if isSaturday {
		b.WeekendHours = hoursAfter(start, end, profile.WeekendExtraStartTime.On(start))
	}
	if isSunday {
		b.SundayHours = b.DurationHours
	}

	b.BaseHours = b.DurationHours
	if b.DurationHours.GreaterThanOrEqual(longShiftHours) {
		b.BaseHours = b.DurationHours.Sub(longShiftBreak)
	}

	b.BasePay = b.BaseHours.Mul(profile.BaseHourlyRate)
	b.EveningExtra = b.EveningHours.Mul(profile.EveningExtra)
	b.WeekendExtra = b.WeekendHours.Mul(profile.WeekendExtra)
	b.SundayExtra = b.SundayHours.Mul(profile.BaseHourlyRate)
	b.TotalPay = b.BasePay.Add(b.EveningExtra).Add(b.WeekendExtra).Add(b.SundayExtra)
	return b, nil
}

// Calculation переводит разбивку в строку shift_calculations.
func (b Breakdown) Calculation(shiftID, profileID int64) model.ShiftCalculation {
	return model.ShiftCalculation{
		ShiftID:         shiftID,
		SalaryProfileID: profileID,
		DurationHours:   b.DurationHours,
		EveningHours:    b.EveningHours,
		WeekendHours:    b.WeekendHours,
		SundayHours:     b.SundayHours,
		BasePay:         b.BasePay,
		EveningExtra:    b.EveningExtra,
		WeekendExtra:    b.WeekendExtra,
		SundayExtra:     b.SundayExtra,
		TotalPay:        b.TotalPay,
	}
}

func hours(d time.Duration) decimal.Decimal {
	return decimal.NewFromInt(int64(d)).Div(nanosPerHour)
}

// hoursAfter: длительность части [start, end), лежащей после threshold.
func hoursAfter(start, end, threshold time.Time) decimal.Decimal {
	if !end.After(threshold) {
		return decimal.Zero
	}
	from := start
	if threshold.After(start) {
		from = threshold
	}
	return hours(end.Sub(from))
}
