package middleware

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/kovalyov-valentin/world-news-bot/internal/botkit"
)

// ChatOnly пропускает команду, только если она пришла из чата ленты.
// Сессия ленты одна, и управлять ей из чужих чатов нельзя
func ChatOnly(chatID int64, next botkit.ViewFunc) botkit.ViewFunc {
	return func(ctx context.Context, bot botkit.Sender, update tgbotapi.Update) error {
		if update.Message.Chat.ID == chatID {
			return next(ctx, bot, update)
		}

		log.Warn().
			Int64("chat_id", update.Message.Chat.ID).
			Str("cmd", update.Message.Command()).
			Msg("command from foreign chat rejected")

		if _, err := bot.Send(tgbotapi.NewMessage(update.Message.Chat.ID, "이 채팅에서는 사용할 수 없는 명령입니다.")); err != nil {
			return err
		}
		return nil
	}
}
