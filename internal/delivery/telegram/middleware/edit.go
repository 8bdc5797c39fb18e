package middleware

import (
	"log"

	"gopkg.in/telebot.v3"
)

// EditOrSend редактирует сообщение с кнопкой, а если это невозможно, шлёт новое.
func EditOrSend(c telebot.Context, text string, markup *telebot.ReplyMarkup) error {
	opts := []interface{}{}
	if markup != nil {
		opts = append(opts, markup)
	}
	if c.Callback() != nil {
		if err := c.Edit(text, opts...); err == nil {
			return nil
		}
	}
	return c.Send(text, opts...)
}

// OwnerOnly пропускает только апдейты из чата ownerID. При ownerID == 0 пропускает всё.
func OwnerOnly(ownerID int64) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			if ownerID == 0 {
				return next(c)
			}
			chat := c.Chat()
			if chat == nil || chat.ID != ownerID {
				if chat != nil {
					log.Printf("[auth] ignored chat=%d", chat.ID)
				}
				return nil
			}
			return next(c)
		}
	}
}
