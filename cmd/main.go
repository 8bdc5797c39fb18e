package main

import (
	"log"

	"gopkg.in/telebot.v3"
	tbmiddleware "gopkg.in/telebot.v3/middleware"

	"shiftpay/config"
	"shiftpay/internal/app/service"
	"shiftpay/internal/delivery/telegram"
	"shiftpay/internal/repository"
	"shiftpay/pkg/calendar"
	"shiftpay/pkg/workerpool"
)

func main() {
	log.Println("Запуск shiftpay бота...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфига: %v", err)
	}

	store, err := repository.Open(cfg.DatabaseURL, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе: %v", err)
	}
	defer store.Close()

	pool := workerpool.NewWorkerPool(cfg.Workers, cfg.QueueSize)
	defer pool.Close()

	profiles := service.NewProfileService(store.Profiles)
	shifts := &service.ShiftServiceImpl{
		Repo:     store.Shifts,
		Profiles: profiles,
		Location: cfg.Location,
		Pool:     pool,
	}

	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10},
		OnError: func(err error, c telebot.Context) {
			log.Printf("[bot] %v", err)
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		log.Fatalf("Ошибка запуска бота: %v", err)
	}
	bot.Use(tbmiddleware.Recover())

	handler := &telegram.Handler{
		Bot:         bot,
		Shifts:      shifts,
		Profiles:    profiles,
		Async:       service.NewAsyncService(pool),
		Calendar:    &calendar.CalendarController{Location: cfg.Location},
		Location:    cfg.Location,
		OwnerChatID: cfg.OwnerChatID,
	}
	handler.Register()

	log.Println("Бот запущен!")
	bot.Start()
}
