package calendar

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"gopkg.in/telebot.v3"
)

const (
	KeyDay  = "cal_day"
	KeyPrev = "cal_prev"
	KeyNext = "cal_next"
	keyNoop = "cal_noop"
)

var errBadPayload = errors.New("calendar: bad payload")

var ruMonths = [...]string{"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь"}

// CalendarController реализует обработку inline-календаря
type CalendarController struct {
	// Location: пояс, в котором считается «сегодня».
	Location *time.Location
	OnDate   func(time.Time, telebot.Context) error
}

// ShowCalendar отправляет или редактирует календарь текущего месяца
func (cc *CalendarController) ShowCalendar(c telebot.Context) error {
	loc := cc.Location
	if loc == nil {
		loc = time.Local
	}
	now := time.Now().In(loc)
	return SendCalendar(c, now.Year(), now.Month())
}

// HandleCallback обрабатывает cal_* коды, которые делегирует роутер.
func (cc *CalendarController) HandleCallback(c telebot.Context, key, payload string) error {
	switch key {
	case KeyDay:
		date, err := ParseDay(payload)
		if err != nil || cc.OnDate == nil {
			return c.Send("Ошибка даты")
		}
		return cc.OnDate(date, c)
	case KeyPrev, KeyNext:
		year, month, err := ParseMonth(payload)
		if err != nil {
			return c.Send("Ошибка месяца")
		}
		return SendCalendar(c, year, month)
	}
	return nil
}

// Markup строит сетку месяца: неделя с понедельника, пустые клетки до первого числа.
func Markup(year int, month time.Month) (string, *telebot.ReplyMarkup) {
	markup := &telebot.ReplyMarkup{}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(first.Weekday()) + 6) % 7

	var rows []telebot.Row
	week := telebot.Row{}
	for i := 0; i < offset; i++ {
		week = append(week, markup.Data(" ", keyNoop))
	}
	for d := 1; d <= daysInMonth(year, month); d++ {
		week = append(week, markup.Data(strconv.Itoa(d), KeyDay, first.AddDate(0, 0, d-1).Format("2006-01-02")))
		if len(week) == 7 {
			rows = append(rows, week)
			week = telebot.Row{}
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, markup.Data(" ", keyNoop))
		}
		rows = append(rows, week)
	}

	prev := first.AddDate(0, -1, 0)
	next := first.AddDate(0, 1, 0)
	rows = append(rows, telebot.Row{
		markup.Data("<", KeyPrev, prev.Format("2006-01")),
		markup.Data(">", KeyNext, next.Format("2006-01")),
	})
	markup.Inline(rows...)
	return "Выберите дату: " + ruMonths[month-1] + " " + strconv.Itoa(year), markup
}

// SendCalendar строит и отправляет календарь за указанный месяц
func SendCalendar(c telebot.Context, year int, month time.Month) error {
	title, markup := Markup(year, month)
	if c.Callback() != nil {
		if err := c.Edit(title, markup); err != nil {
			log.Printf("[calendar] edit failed: %v", err)
			return c.Send(title, markup)
		}
		return nil
	}
	return c.Send(title, markup)
}

// ParseDay разбирает payload кнопки дня (YYYY-MM-DD).
func ParseDay(payload string) (time.Time, error) {
	parts := SplitDateData(payload)
	if len(parts) != 3 {
		return time.Time{}, errBadPayload
	}
	return time.Parse("2006-01-02", payload)
}

// ParseMonth разбирает payload перелистывания (YYYY-MM).
func ParseMonth(payload string) (int, time.Month, error) {
	parts := SplitDateData(payload)
	if len(parts) != 2 {
		return 0, 0, errBadPayload
	}
	t, err := time.Parse("2006-01", payload)
	if err != nil {
		return 0, 0, err
	}
	return t.Year(), t.Month(), nil
}

// SplitDateData разбивает строку даты на части
func SplitDateData(data string) []string {
	return strings.Split(data, "-")
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
