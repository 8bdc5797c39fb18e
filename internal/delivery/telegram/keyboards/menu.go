package keyboards

import (
	"fmt"
	"strconv"
	"time"

	"gopkg.in/telebot.v3"

	"shiftpay/internal/model"
)

var (
	BtnAddShift = telebot.Btn{Text: "📅 Добавить смену"}
	BtnShifts   = telebot.Btn{Text: "🗂 Смены"}
	BtnStats    = telebot.Btn{Text: "📊 Статистика"}
	BtnProfiles = telebot.Btn{Text: "💼 Профили"}
)

const (
	KeyAddToday   = "addshift_today"
	KeyAddOther   = "addshift_other"
	KeyAddSave    = "addshift_save"
	KeyAddCancel  = "addshift_cancel"
	KeyShiftDel   = "shift_del"
	KeyShiftDelOK = "shift_del_ok"
	KeyShiftsMon  = "shifts_month"
)

func MainMenu() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{ResizeKeyboard: true}
	markup.Reply(
		markup.Row(BtnAddShift, BtnShifts),
		markup.Row(BtnStats, BtnProfiles),
	)
	return markup
}

func AddShiftDay() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.Inline(markup.Row(
		markup.Data("Сегодня", KeyAddToday),
		markup.Data("Другая дата", KeyAddOther),
	))
	return markup
}

func ConfirmShift() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.Inline(markup.Row(
		markup.Data("✅ Сохранить", KeyAddSave),
		markup.Data("✖ Отмена", KeyAddCancel),
	))
	return markup
}

// ShiftList: по кнопке удаления на каждую смену и перелистывание месяцев.
func ShiftList(items []model.ShiftWithCalculation, month time.Time) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	rows := make([]telebot.Row, 0, len(items)+1)
	for _, it := range items {
		label := fmt.Sprintf("🗑 %s %s-%s", it.Date.Format("02.01"), it.StartTime, it.EndTime)
		rows = append(rows, markup.Row(markup.Data(label, KeyShiftDel, strconv.FormatInt(it.ID, 10))))
	}
	rows = append(rows, markup.Row(
		markup.Data("←", KeyShiftsMon, month.AddDate(0, -1, 0).Format("2006-01")),
		markup.Data("→", KeyShiftsMon, month.AddDate(0, 1, 0).Format("2006-01")),
	))
	markup.Inline(rows...)
	return markup
}

func ConfirmDelete(id int64, month time.Time) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.Inline(markup.Row(
		markup.Data("Удалить", KeyShiftDelOK, strconv.FormatInt(id, 10)),
		markup.Data("Назад", KeyShiftsMon, month.Format("2006-01")),
	))
	return markup
}
