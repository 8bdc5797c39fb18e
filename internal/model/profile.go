package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type SalaryProfile struct {
	ID                    int64
	Name                  string
	BaseHourlyRate        decimal.Decimal
	EveningExtra          decimal.Decimal
	EveningStartTime      Clock
	WeekendExtra          decimal.Decimal
	WeekendExtraStartTime Clock
	// SundayExtra хранится для совместимости со старой таблицей, в расчёте не участвует.
	SundayExtra decimal.Decimal
	StartDate   time.Time
	EndDate     *time.Time // nil: профиль действует бессрочно
}

// ActiveOn сообщает, покрывает ли период действия профиля календарный день date.
func (p SalaryProfile) ActiveOn(date time.Time) bool {
	day := DateOnly(date)
	if DateOnly(p.StartDate).After(day) {
		return false
	}
	return p.EndDate == nil || !DateOnly(*p.EndDate).Before(day)
}
