package telegram

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/telebot.v3"

	"shiftpay/internal/app/service"
	"shiftpay/internal/delivery/telegram/flows"
	"shiftpay/internal/delivery/telegram/keyboards"
	"shiftpay/internal/delivery/telegram/middleware"
	"shiftpay/internal/delivery/telegram/router"
	"shiftpay/internal/domain"
	"shiftpay/internal/model"
	"shiftpay/pkg/calendar"
)

type Handler struct {
	Bot         *telebot.Bot
	Shifts      *service.ShiftServiceImpl
	Profiles    *service.ProfileService
	Async       *service.AsyncService
	Calendar    *calendar.CalendarController
	Location    *time.Location
	OwnerChatID int64

	mu          sync.Mutex
	waitingTime map[int64]time.Time         // chatID -> дата смены
	pending     map[int64]domain.ShiftInput // chatID -> смена, ждущая подтверждения
}

func (h *Handler) Register() {
	owner := middleware.OwnerOnly(h.OwnerChatID)
	h.Calendar.OnDate = h.askTime

	r := router.New()
	r.CalDelegate = h.Calendar.HandleCallback
	r.Register(keyboards.KeyAddToday, func(c telebot.Context, _ string) error {
		return h.askTime(h.now(), c)
	})
	r.Register(keyboards.KeyAddOther, func(c telebot.Context, _ string) error {
		return h.Calendar.ShowCalendar(c)
	})
	r.Register(keyboards.KeyAddSave, h.saveShift)
	r.Register(keyboards.KeyAddCancel, func(c telebot.Context, _ string) error {
		h.reset(c.Chat().ID)
		return middleware.EditOrSend(c, "Отменено.", nil)
	})
	flows.RegisterShifts(r, h.Shifts)
	flows.RegisterStats(r, h.Shifts, h.Async)
	r.Attach(h.Bot, owner)

	h.Bot.Handle("/start", h.handleStart, owner)
	h.Bot.Handle("/addprofile", h.handleAddProfile, owner)
	h.Bot.Handle(telebot.OnText, h.handleText, owner)
}

func (h *Handler) now() time.Time {
	loc := h.Location
	if loc == nil {
		loc = time.Local
	}
	return time.Now().In(loc)
}

func (h *Handler) handleStart(c telebot.Context) error {
	return c.Send("Добро пожаловать! Записывайте смены, бот посчитает заработок.", keyboards.MainMenu())
}

func (h *Handler) handleText(c telebot.Context) error {
	switch c.Text() {
	case keyboards.BtnAddShift.Text:
		h.reset(c.Chat().ID)
		return c.Send("Это сегодняшняя смена?", keyboards.AddShiftDay())
	case keyboards.BtnShifts.Text:
		return flows.ShowShifts(c, h.Shifts, h.now())
	case keyboards.BtnStats.Text:
		return flows.ShowStats(c, h.now())
	case keyboards.BtnProfiles.Text:
		profiles, err := h.Profiles.ListProfiles()
		if err != nil {
			return c.Send("Ошибка при получении профилей: " + err.Error())
		}
		return c.Send(flows.FormatProfiles(profiles))
	}

	chatID := c.Chat().ID
	h.mu.Lock()
	date, ok := h.waitingTime[chatID]
	h.mu.Unlock()
	if !ok {
		return nil
	}

	start, end, err := ParseTimeRange(c.Text())
	if err != nil {
		return c.Send("Введите время в формате ЧЧ:ММ-ЧЧ:ММ, например 09:00-17:00.")
	}
	in := domain.ShiftInput{Date: date.Format(model.DateLayout), StartTime: start, EndTime: end}
	est, profile, err := h.Shifts.PreviewShift(in)
	if err != nil {
		return c.Send(describeError(err))
	}

	h.mu.Lock()
	delete(h.waitingTime, chatID)
	if h.pending == nil {
		h.pending = make(map[int64]domain.ShiftInput)
	}
	h.pending[chatID] = in
	h.mu.Unlock()

	return c.Send(flows.FormatEstimate(date, start+"-"+end, est, profile), keyboards.ConfirmShift())
}

func (h *Handler) askTime(date time.Time, c telebot.Context) error {
	log.Printf("[state] waiting time chat=%d date=%s", c.Chat().ID, date.Format(model.DateLayout))
	h.mu.Lock()
	if h.waitingTime == nil {
		h.waitingTime = make(map[int64]time.Time)
	}
	h.waitingTime[c.Chat().ID] = date
	delete(h.pending, c.Chat().ID)
	h.mu.Unlock()
	return middleware.EditOrSend(c, "Смена "+date.Format("02.01.2006")+". Введите время, например 09:00-17:00:", nil)
}

func (h *Handler) saveShift(c telebot.Context, _ string) error {
	chatID := c.Chat().ID
	h.mu.Lock()
	in, ok := h.pending[chatID]
	delete(h.pending, chatID)
	h.mu.Unlock()
	if !ok {
		return middleware.EditOrSend(c, "Нет смены для сохранения. Начните заново.", nil)
	}

	it, err := h.Shifts.AddShift(in)
	if err != nil {
		log.Printf("[shift] add failed chat=%d: %v", chatID, err)
		return c.Send(describeError(err))
	}
	return middleware.EditOrSend(c, "Смена сохранена!\n"+flows.FormatCalculation(it), nil)
}

func (h *Handler) reset(chatID int64) {
	h.mu.Lock()
	delete(h.waitingTime, chatID)
	delete(h.pending, chatID)
	h.mu.Unlock()
}

func (h *Handler) handleAddProfile(c telebot.Context) error {
	in, err := ParseProfileArgs(c.Args())
	if err != nil {
		return c.Send(err.Error() + "\nФормат: /addprofile <дата> <ставка> <вечер> <суббота> <воскресенье>")
	}
	p, err := h.Profiles.AddProfile(in)
	if err != nil {
		return c.Send(describeError(err))
	}
	return c.Send(fmt.Sprintf("Профиль #%d добавлен с %s.", p.ID, p.StartDate.Format("02.01.2006")))
}

// ParseTimeRange разбирает "09:00-17:00" и возвращает время в виде ЧЧ:ММ.
func ParseTimeRange(s string) (string, string, error) {
	left, right, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return "", "", fmt.Errorf("no range separator in %q", s)
	}
	start, err := model.ParseClock(strings.TrimSpace(left))
	if err != nil {
		return "", "", err
	}
	end, err := model.ParseClock(strings.TrimSpace(right))
	if err != nil {
		return "", "", err
	}
	return start.String(), end.String(), nil
}

// ParseProfileArgs разбирает аргументы /addprofile. Дата принимается как 2006-01-02 или 02.01.2006.
func ParseProfileArgs(args []string) (domain.ProfileInput, error) {
	if len(args) != 5 {
		return domain.ProfileInput{}, errors.New("нужно пять аргументов")
	}
	date, err := time.Parse(model.DateLayout, args[0])
	if err != nil {
		if date, err = time.Parse("02.01.2006", args[0]); err != nil {
			return domain.ProfileInput{}, fmt.Errorf("некорректная дата %q", args[0])
		}
	}
	fields := [4]string{"BaseHourlyRate", "EveningExtra", "WeekendExtra", "SundayExtra"}
	var rates [4]decimal.Decimal
	for i, a := range args[1:] {
		v, err := service.ParseRate(fields[i], a)
		if err != nil {
			return domain.ProfileInput{}, fmt.Errorf("некорректное число %q", a)
		}
		rates[i] = v
	}
	return domain.ProfileInput{
		StartDate:      date.Format(model.DateLayout),
		BaseHourlyRate: rates[0],
		EveningExtra:   rates[1],
		WeekendExtra:   rates[2],
		SundayExtra:    rates[3],
	}, nil
}

func describeError(err error) string {
	var ve *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrNoApplicableProfile):
		return "Нет профиля ставок на эту дату. Добавьте его командой /addprofile."
	case errors.Is(err, domain.ErrInvalidInterval):
		return "Конец смены должен быть позже начала в тот же день."
	case errors.As(err, &ve):
		return "Некорректные данные: " + ve.Error()
	}
	return "Ошибка: " + err.Error()
}
