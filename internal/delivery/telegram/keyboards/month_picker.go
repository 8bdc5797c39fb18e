package keyboards

import (
	"fmt"
	"strconv"

	"gopkg.in/telebot.v3"
)

const (
	KeyPickMonth = "pick_month"
	KeyMonthPrev = "month_prev"
	KeyMonthNext = "month_next"
)

var monthNames = [...]string{"Янв", "Фев", "Мар", "Апр", "Май", "Июн", "Июл", "Авг", "Сен", "Окт", "Ноя", "Дек"}

func BuildMonthKeyboard(year int) (string, *telebot.ReplyMarkup) {
	markup := &telebot.ReplyMarkup{}

	rows := []telebot.Row{}
	for i := 0; i < 12; i += 3 {
		row := telebot.Row{}
		for m := i; m < i+3; m++ {
			row = append(row, markup.Data(monthNames[m], KeyPickMonth, fmt.Sprintf("%04d-%02d", year, m+1)))
		}
		rows = append(rows, row)
	}

	prev := markup.Data("← "+strconv.Itoa(year-1), KeyMonthPrev, strconv.Itoa(year))
	next := markup.Data(strconv.Itoa(year+1)+" →", KeyMonthNext, strconv.Itoa(year))
	rows = append(rows, markup.Row(prev, next))

	markup.Inline(rows...)
	return fmt.Sprintf("Выберите месяц: %d", year), markup
}
