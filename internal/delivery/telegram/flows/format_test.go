package flows

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"shiftpay/internal/model"
	"shiftpay/internal/pay"
)

func TestFormatEstimate(t *testing.T) {
	profile := model.SalaryProfile{
		Name:                  "Base",
		BaseHourlyRate:        decimal.NewFromInt(20),
		EveningExtra:          decimal.RequireFromString("4.18"),
		EveningStartTime:      model.MustClock("18:00"),
		WeekendExtra:          decimal.RequireFromString("4.18"),
		WeekendExtraStartTime: model.MustClock("13:00"),
	}
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	e, err := pay.Preview(model.MustClock("14:00").On(day), model.MustClock("19:00").On(day), profile)
	if err != nil {
		t.Fatalf("Preview() error: %v", err)
	}

	got := FormatEstimate(day, "14:00-19:00", e, profile)
	for _, want := range []string{"02.01.2024 (Вт)", "Профиль: Base", "Часы: 5.00", "Вечер: 1.00 ч, +4.18", "Итого: 104.18"} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatEstimate() missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Суббота") || strings.Contains(got, "Воскресенье") {
		t.Errorf("FormatEstimate() shows empty premiums:\n%s", got)
	}
}

func TestFormatSummary(t *testing.T) {
	s := pay.Summary{
		TotalShifts:   2,
		DayBreakdown:  map[time.Weekday]int{time.Tuesday: 1, time.Sunday: 1},
		TotalHours:    decimal.NewFromInt(10),
		BaseEarnings:  decimal.NewFromInt(200),
		TotalEarnings: decimal.NewFromInt(200),
	}
	var totals [12]decimal.Decimal
	totals[0] = decimal.NewFromInt(200)
	totals[2] = decimal.RequireFromString("50.5")

	got := FormatSummary(2024, time.January, s, totals)
	for _, want := range []string{"Январь 2024", "Смен: 2", "По дням: Вт 1, Вс 1", "Март: 50.50", "За год: 250.50"} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatSummary() missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Февраль") {
		t.Errorf("FormatSummary() lists an empty month:\n%s", got)
	}
}

func TestFormatShiftList(t *testing.T) {
	month := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := FormatShiftList(month, nil); got != "Январь 2024: смен нет." {
		t.Errorf("empty list = %q", got)
	}
	items := []model.ShiftWithCalculation{
		{
			Shift:       model.Shift{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), StartTime: model.MustClock("14:00"), EndTime: model.MustClock("19:00")},
			Calculation: &model.ShiftCalculation{DurationHours: decimal.NewFromInt(5), TotalPay: decimal.RequireFromString("104.18")},
		},
		{
			Shift: model.Shift{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), StartTime: model.MustClock("09:00"), EndTime: model.MustClock("10:00")},
		},
	}
	got := FormatShiftList(month, items)
	for _, want := range []string{"02.01 Вт 14:00-19:00: 5.00 ч, 104.18", "03.01 Ср 09:00-10:00: без расчёта", "Итого: 104.18"} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatShiftList() missing %q in:\n%s", want, got)
		}
	}
}
