package domain

import (
	"time"

	"shiftpay/internal/model"
)

// ShiftRepo хранит смену и её расчёт как одно целое: обе записи пишутся в одной транзакции.
type ShiftRepo interface {
	CreateShift(shift model.Shift, calc model.ShiftCalculation) (int64, error)
	UpdateShift(shift model.Shift, calc model.ShiftCalculation) error
	DeleteShift(id int64) error
	GetShift(id int64) (model.ShiftWithCalculation, error)
	ListShifts(from, to time.Time) ([]model.ShiftWithCalculation, error)
	SaveCalculation(calc model.ShiftCalculation) error
}
