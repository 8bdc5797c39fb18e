package flows

import (
	"errors"
	"log"
	"strconv"
	"time"

	"gopkg.in/telebot.v3"

	"shiftpay/internal/app/service"
	"shiftpay/internal/delivery/telegram/keyboards"
	"shiftpay/internal/delivery/telegram/middleware"
	"shiftpay/internal/delivery/telegram/router"
	"shiftpay/internal/domain"
)

// ShowShifts выводит смены месяца с кнопками удаления.
func ShowShifts(c telebot.Context, shifts *service.ShiftServiceImpl, month time.Time) error {
	from := monthStart(month)
	items, err := shifts.ListShifts(from, from.AddDate(0, 1, -1))
	if err != nil {
		return c.Send("Ошибка при получении смен: " + err.Error())
	}
	return middleware.EditOrSend(c, FormatShiftList(from, items), keyboards.ShiftList(items, from))
}

func RegisterShifts(r *router.CallbackRouter, shifts *service.ShiftServiceImpl) {
	r.Register(keyboards.KeyShiftsMon, func(c telebot.Context, payload string) error {
		month, err := parseMonth(payload)
		if err != nil {
			return nil
		}
		return ShowShifts(c, shifts, month)
	})

	r.Register(keyboards.KeyShiftDel, func(c telebot.Context, payload string) error {
		id, err := strconv.ParseInt(payload, 10, 64)
		if err != nil {
			return nil
		}
		it, err := shifts.GetShift(id)
		if errors.Is(err, domain.ErrNotFound) {
			return middleware.EditOrSend(c, "Смена уже удалена.", nil)
		}
		if err != nil {
			return c.Send("Ошибка: " + err.Error())
		}
		return middleware.EditOrSend(c, "Удалить смену?\n"+FormatCalculation(it), keyboards.ConfirmDelete(id, monthStart(it.Date)))
	})

	r.Register(keyboards.KeyShiftDelOK, func(c telebot.Context, payload string) error {
		id, err := strconv.ParseInt(payload, 10, 64)
		if err != nil {
			return nil
		}
		it, err := shifts.GetShift(id)
		if errors.Is(err, domain.ErrNotFound) {
			return middleware.EditOrSend(c, "Смена уже удалена.", nil)
		}
		if err != nil {
			return c.Send("Ошибка: " + err.Error())
		}
		if err := shifts.DeleteShift(id); err != nil {
			log.Printf("[shift] delete id=%d: %v", id, err)
			return c.Send("Ошибка при удалении смены: " + err.Error())
		}
		return ShowShifts(c, shifts, monthStart(it.Date))
	})
}
