package flows

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/telebot.v3"

	"shiftpay/internal/app/service"
	"shiftpay/internal/delivery/telegram/keyboards"
	"shiftpay/internal/delivery/telegram/middleware"
	"shiftpay/internal/delivery/telegram/router"
	"shiftpay/internal/pay"
)

type statsResult struct {
	summary pay.Summary
	totals  [12]decimal.Decimal
}

// RegisterStats: выбор месяца и статистика. Запросы к базе идут через пул.
func RegisterStats(r *router.CallbackRouter, shifts *service.ShiftServiceImpl, async *service.AsyncService) {
	showYear := func(c telebot.Context, year int) error {
		title, markup := keyboards.BuildMonthKeyboard(year)
		return middleware.EditOrSend(c, title, markup)
	}

	r.Register(keyboards.KeyMonthPrev, func(c telebot.Context, payload string) error {
		y, err := strconv.Atoi(payload)
		if err != nil {
			return nil
		}
		return showYear(c, y-1)
	})

	r.Register(keyboards.KeyMonthNext, func(c telebot.Context, payload string) error {
		y, err := strconv.Atoi(payload)
		if err != nil {
			return nil
		}
		return showYear(c, y+1)
	})

	r.Register(keyboards.KeyPickMonth, func(c telebot.Context, payload string) error {
		t, err := parseMonth(payload)
		if err != nil {
			return nil
		}
		y, m := t.Year(), t.Month()
		v, err := async.SubmitAsync(func() (any, error) {
			s, err := shifts.MonthlyStats(y, m)
			if err != nil {
				return nil, err
			}
			totals, err := shifts.YearlyTotals(y)
			if err != nil {
				return nil, err
			}
			return statsResult{summary: s, totals: totals}, nil
		})
		if err != nil {
			log.Printf("[stats] %04d-%02d: %v", y, m, err)
			return c.Send("Ошибка при расчёте статистики: " + err.Error())
		}
		res := v.(statsResult)
		return middleware.EditOrSend(c, FormatSummary(y, m, res.summary, res.totals), nil)
	})
}

// ShowStats открывает выбор месяца текущего года.
func ShowStats(c telebot.Context, now time.Time) error {
	title, markup := keyboards.BuildMonthKeyboard(now.Year())
	return c.Send(title, markup)
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func parseMonth(payload string) (time.Time, error) {
	t, err := time.Parse("2006-01", payload)
	if err != nil {
		return t, fmt.Errorf("bad month %q: %w", payload, err)
	}
	return t, nil
}
