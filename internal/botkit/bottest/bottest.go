// Package bottest содержит фейки телеграма для тестов view и notifier.
package bottest

import (
	"errors"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender запоминает все отправленные сообщения
type Sender struct {
	mu       sync.Mutex
	Messages []tgbotapi.MessageConfig
	// Если задано, Send возвращает эту ошибку
	Err error
}

func (s *Sender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return tgbotapi.Message{}, s.Err
	}

	msg, ok := c.(tgbotapi.MessageConfig)
	if !ok {
		return tgbotapi.Message{}, errors.New("unexpected chattable")
	}
	s.Messages = append(s.Messages, msg)

	return tgbotapi.Message{MessageID: len(s.Messages)}, nil
}

// Texts возвращает тексты отправленных сообщений
func (s *Sender) Texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.Messages))
	for _, m := range s.Messages {
		out = append(out, m.Text)
	}
	return out
}

// Last текст последнего сообщения или пустая строка
func (s *Sender) Last() string {
	texts := s.Texts()
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

// Command собирает update с командой, например Command(1, "/pin 2")
func Command(chatID int64, text string) tgbotapi.Update {
	cmdLen := len(text)
	if i := strings.IndexByte(text, ' '); i >= 0 {
		cmdLen = i
	}

	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text: text,
			Chat: &tgbotapi.Chat{ID: chatID},
			From: &tgbotapi.User{ID: chatID},
			Entities: []tgbotapi.MessageEntity{
				{Type: "bot_command", Offset: 0, Length: cmdLen},
			},
		},
	}
}
