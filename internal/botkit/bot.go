package botkit

import (
	"context"
	"runtime/debug"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// Отправка сообщений. Реализуется *tgbotapi.BotAPI
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Функция, которая реагирует на определенную команду
type ViewFunc func(ctx context.Context, bot Sender, update tgbotapi.Update) error

// Сколько времени дается одной команде. /read ходит за статьей в сеть
const updateTimeout = 20 * time.Second

type Bot struct {
	// Клиент botAPI, через него получаем updates
	api *tgbotapi.BotAPI
	// Через него view отправляют ответы. В тестах подменяется фейком
	sender Sender
	// Мапа в которой будем хранить view
	cmdViews map[string]ViewFunc
}

func New(api *tgbotapi.BotAPI) *Bot {
	return &Bot{
		api:      api,
		sender:   api,
		cmdViews: make(map[string]ViewFunc),
	}
}

// Метод для регистрации View для команды
func (b *Bot) RegisterCmdView(cmd string, view ViewFunc) {
	b.cmdViews[cmd] = view
}

// Run слушает updates от телеграма, пока не отменят контекст
func (b *Bot) Run(ctx context.Context) error {
	// Offset 0: начинаем с первого неподтвержденного update
	u := tgbotapi.NewUpdate(0)
	// Long polling, телеграм держит запрос до 60 секунд
	u.Timeout = 60

	// Канал, в который библиотека складывает updates
	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case update := <-updates:
			// Каждый update обрабатываем со своим таймаутом,
			// зависший view не должен держать остальные команды
			updateCtx, updateCancel := context.WithTimeout(ctx, updateTimeout)
			b.handleUpdate(updateCtx, update)
			updateCancel()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Метод, который обрабатывает update и роутит команды на соответствующие view
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	// Паника во view не должна ронять бота
	defer func() {
		if p := recover(); p != nil {
			log.Error().Interface("panic", p).Str("stack", string(debug.Stack())).Msg("panic recovered")
		}
	}()

	// Нас интересуют только сообщения с командами
	if update.Message == nil || !update.Message.IsCommand() {
		return
	}

	// Команда без слеша и без @имени_бота
	cmd := update.Message.Command()

	// Ищем view для команды, неизвестные команды молча пропускаем
	view, ok := b.cmdViews[cmd]
	if !ok {
		return
	}

	if err := view(ctx, b.sender, update); err != nil {
		log.Error().Err(err).Str("cmd", cmd).Msg("failed to handle update")

		// Пользователь должен увидеть, что команда не выполнилась

		if _, err := b.sender.Send(
			tgbotapi.NewMessage(update.Message.Chat.ID, "internal error"),
		); err != nil {
			log.Error().Err(err).Msg("failed to send message")
		}
	}
}
