package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"shiftpay/internal/model"
)

// ShiftInput: смена в том виде, в каком её вводит пользователь.
type ShiftInput struct {
	Date      string `validate:"required,datetime=2006-01-02" yaml:"date"`
	StartTime string `validate:"required,datetime=15:04" yaml:"start_time"`
	EndTime   string `validate:"required,datetime=15:04" yaml:"end_time"`
}

// ProfileInput: ставки хранятся в decimal с самого ввода.
type ProfileInput struct {
	Name                  string          `yaml:"name"`
	BaseHourlyRate        decimal.Decimal `validate:"gte=0" yaml:"base_hourly_rate"`
	EveningExtra          decimal.Decimal `validate:"gte=0" yaml:"evening_extra"`
	EveningStartTime      string          `validate:"omitempty,datetime=15:04" yaml:"evening_start_time"`
	WeekendExtra          decimal.Decimal `validate:"gte=0" yaml:"weekend_extra"`
	WeekendExtraStartTime string          `validate:"omitempty,datetime=15:04" yaml:"weekend_extra_start_time"`
	SundayExtra           decimal.Decimal `validate:"gte=0" yaml:"sunday_extra"`
	StartDate             string          `validate:"required,datetime=2006-01-02" yaml:"start_date"`
	EndDate               string          `validate:"omitempty,datetime=2006-01-02" yaml:"end_date,omitempty"`
}

type ShiftService interface {
	AddShift(in ShiftInput) (model.ShiftWithCalculation, error)
	UpdateShift(id int64, in ShiftInput) (model.ShiftWithCalculation, error)
	DeleteShift(id int64) error
	GetShift(id int64) (model.ShiftWithCalculation, error)
	ListShifts(from, to time.Time) ([]model.ShiftWithCalculation, error)
}
