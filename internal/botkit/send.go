package botkit

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Телеграм режет сообщения длиннее 4096 символов, оставляем запас
const maxMessageLength = 4000

// Reply отправляет ответ в MarkdownV2
func Reply(bot Sender, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.DisableWebPagePreview = true

	if _, err := bot.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// SendBlocks склеивает блоки текста в сообщения, не разрывая сами блоки
func SendBlocks(bot Sender, chatID int64, blocks []string) error {
	for _, text := range Chunk(blocks, "\n\n", maxMessageLength) {
		if err := Reply(bot, chatID, text); err != nil {
			return err
		}
	}
	return nil
}

// Chunk собирает блоки в куски длиной не больше limit.
// Блок длиннее limit уходит отдельным куском как есть
func Chunk(blocks []string, sep string, limit int) []string {
	var (
		chunks  []string
		current strings.Builder
	)

	for _, block := range blocks {
		if current.Len() > 0 && current.Len()+len(sep)+len(block) > limit {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(sep)
		}
		current.WriteString(block)
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

// IndexArg разбирает номер из аргументов команды, номера начинаются с 1
func IndexArg(update tgbotapi.Update, max int) (int, error) {
	raw := strings.TrimSpace(update.Message.CommandArguments())
	if raw == "" {
		return 0, fmt.Errorf("number is required")
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}

	if n < 1 || n > max {
		return 0, fmt.Errorf("number must be between 1 and %d", max)
	}

	return n - 1, nil
}
