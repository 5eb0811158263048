package bot

import (
	"fmt"

	"github.com/kovalyov-valentin/world-news-bot/internal/botkit"
	"github.com/kovalyov-valentin/world-news-bot/internal/botkit/markup"
)

// replyText отправляет обычный текст, экранируя его для MarkdownV2
func replyText(bot botkit.Sender, chatID int64, text string) error {
	return botkit.Reply(bot, chatID, markup.EscapeForMarkdown(text))
}

func replyUsage(bot botkit.Sender, chatID int64, usage string, err error) error {
	return replyText(bot, chatID, fmt.Sprintf("%v\n사용법: %s", err, usage))
}
