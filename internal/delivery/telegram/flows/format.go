package flows

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"shiftpay/internal/model"
	"shiftpay/internal/pay"
)

var (
	ruWeekdays = [...]string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	ruMonths   = [...]string{"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
		"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь"}
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatEstimate: текст предварительного расчёта перед сохранением.
func FormatEstimate(date time.Time, in string, e pay.Estimate, profile model.SalaryProfile) string {
	b := e.Breakdown
	var sb strings.Builder
	fmt.Fprintf(&sb, "Смена %s (%s), %s\n", date.Format("02.01.2006"), ruWeekdays[date.Weekday()], in)
	fmt.Fprintf(&sb, "Профиль: %s\n", profile.Name)
	fmt.Fprintf(&sb, "Часы: %s (оплачиваемые: %s)\n", money(e.DurationHours), money(b.BaseHours))
	writeExtras(&sb, b.EveningHours, b.EveningExtra, b.WeekendHours, b.WeekendExtra, b.SundayHours, b.SundayExtra)
	fmt.Fprintf(&sb, "Итого: %s", money(e.Amount))
	return sb.String()
}

func FormatCalculation(it model.ShiftWithCalculation) string {
	c := it.Calculation
	head := fmt.Sprintf("%s %s %s-%s", it.Date.Format("02.01"), ruWeekdays[it.Date.Weekday()], it.StartTime, it.EndTime)
	if c == nil {
		return head + ": без расчёта"
	}
	return fmt.Sprintf("%s: %s ч, %s", head, money(c.DurationHours), money(c.TotalPay))
}

func writeExtras(sb *strings.Builder, eh, ea, wh, wa, sh, sa decimal.Decimal) {
	if !eh.IsZero() {
		fmt.Fprintf(sb, "Вечер: %s ч, +%s\n", money(eh), money(ea))
	}
	if !wh.IsZero() {
		fmt.Fprintf(sb, "Суббота: %s ч, +%s\n", money(wh), money(wa))
	}
	if !sh.IsZero() {
		fmt.Fprintf(sb, "Воскресенье: %s ч, +%s\n", money(sh), money(sa))
	}
}

func FormatShiftList(month time.Time, items []model.ShiftWithCalculation) string {
	if len(items) == 0 {
		return fmt.Sprintf("%s %d: смен нет.", ruMonths[month.Month()-1], month.Year())
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %d:\n", ruMonths[month.Month()-1], month.Year())
	total := decimal.Zero
	for _, it := range items {
		sb.WriteString(FormatCalculation(it))
		sb.WriteByte('\n')
		if it.Calculation != nil {
			total = total.Add(it.Calculation.TotalPay)
		}
	}
	fmt.Fprintf(&sb, "Итого: %s", money(total))
	return sb.String()
}

// FormatSummary: статистика за месяц и помесячные итоги года.
func FormatSummary(year int, month time.Month, s pay.Summary, totals [12]decimal.Decimal) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Статистика за %s %d\n", ruMonths[month-1], year)
	fmt.Fprintf(&sb, "Смен: %d, часов: %s\n", s.TotalShifts, money(s.TotalHours))
	if s.TotalShifts > 0 {
		days := make([]string, 0, 7)
		for i := 1; i <= 7; i++ {
			wd := time.Weekday(i % 7)
			if n := s.DayBreakdown[wd]; n > 0 {
				days = append(days, fmt.Sprintf("%s %d", ruWeekdays[wd], n))
			}
		}
		fmt.Fprintf(&sb, "По дням: %s\n", strings.Join(days, ", "))
	}
	fmt.Fprintf(&sb, "База: %s\n", money(s.BaseEarnings))
	fmt.Fprintf(&sb, "Вечерние: %s\n", money(s.EveningExtra))
	fmt.Fprintf(&sb, "Субботние: %s\n", money(s.WeekendExtra))
	fmt.Fprintf(&sb, "Воскресные: %s\n", money(s.SundayExtra))
	fmt.Fprintf(&sb, "Итого: %s\n\n", money(s.TotalEarnings))

	fmt.Fprintf(&sb, "%d по месяцам:\n", year)
	yearTotal := decimal.Zero
	for i, t := range totals {
		if t.IsZero() {
			continue
		}
		yearTotal = yearTotal.Add(t)
		fmt.Fprintf(&sb, "%s: %s\n", ruMonths[i], money(t))
	}
	fmt.Fprintf(&sb, "За год: %s", money(yearTotal))
	return sb.String()
}

func FormatProfiles(profiles []model.SalaryProfile) string {
	if len(profiles) == 0 {
		return "Профилей нет. Добавьте: /addprofile <дата> <ставка> <вечер> <суббота> <воскресенье>"
	}
	var sb strings.Builder
	for _, p := range profiles {
		until := "бессрочно"
		if p.EndDate != nil {
			until = "по " + p.EndDate.Format("02.01.2006")
		}
		fmt.Fprintf(&sb, "#%d %s\nс %s %s\nставка %s, вечер +%s с %s, суббота +%s с %s\n\n",
			p.ID, p.Name, p.StartDate.Format("02.01.2006"), until,
			money(p.BaseHourlyRate), money(p.EveningExtra), p.EveningStartTime,
			money(p.WeekendExtra), p.WeekendExtraStartTime)
	}
	return strings.TrimSpace(sb.String())
}
