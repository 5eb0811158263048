package notifier

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/kovalyov-valentin/world-news-bot/internal/bot"
	"github.com/kovalyov-valentin/world-news-bot/internal/botkit"
	"github.com/kovalyov-valentin/world-news-bot/internal/botkit/markup"
	"github.com/kovalyov-valentin/world-news-bot/internal/model"
)

type PinChecker interface {
	IsPinned(id string) bool
}

// Notifier пересылает изменения ленты в чат.
// Observe вызывается из цикла движка и не блокируется, отправкой занимается Start
type Notifier struct {
	// Инстанс клиента botAPI
	bot botkit.Sender
	// id чата, куда уходит лента
	chatID int64
	pins   PinChecker

	mu     sync.Mutex
	latest *model.FeedState
	signal chan struct{}

	// Что уже отправлено. Трогает только горутина Start
	generation uint64
	sent       int
	ended      bool
	errKey     string
}

func New(bot botkit.Sender, chatID int64, pins PinChecker) *Notifier {
	return &Notifier{
		bot:    bot,
		chatID: chatID,
		pins:   pins,
		signal: make(chan struct{}, 1),
	}
}

// Observe запоминает последнее состояние. Промежуточные состояния можно терять
func (n *Notifier) Observe(state model.FeedState) {
	n.mu.Lock()
	n.latest = &state
	n.mu.Unlock()

	select {
	case n.signal <- struct{}{}:
	default:
	}
}

func (n *Notifier) Start(ctx context.Context) error {
	for {
		select {
		case <-n.signal:
			n.mu.Lock()
			state := n.latest
			n.latest = nil
			n.mu.Unlock()

			if state == nil {
				continue
			}
			if err := n.handle(*state); err != nil {
				// Сообщение потеряно, но следующее состояние все равно отправим
				log.Error().Err(err).Int64("chat_id", n.chatID).Msg("failed to notify feed change")
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (n *Notifier) handle(state model.FeedState) error {
	if state.Query == "" {
		return nil
	}

	if state.Status != model.StatusError {
		// Эпизод ошибки закончился, следующая ошибка снова уйдет в чат
		n.errKey = ""
	} else {
		key := fmt.Sprintf("%d/%d/%s", state.Generation, state.PageOffset, state.LastError)
		if key == n.errKey {
			return nil
		}
		n.errKey = key

		if state.Generation != n.generation {
			n.reset(state.Generation)
		}
		return botkit.Reply(n.bot, n.chatID, bot.ErrorText(state))
	}

	if state.IsLoading || state.IsLoadingMore {
		return nil
	}

	var blocks []string

	if state.Generation != n.generation {
		n.reset(state.Generation)
		if len(state.Items) == 0 {
			blocks = append(blocks, markup.EscapeForMarkdown(fmt.Sprintf("'%s' 검색 결과가 없습니다.", state.Query)))
		} else {
			blocks = append(blocks, bot.FeedHeader(state))
		}
	}

	if len(state.Items) > n.sent {
		blocks = append(blocks, bot.ArticleBlocks(state.Items, n.sent, n.isPinned)...)
		n.sent = len(state.Items)
	}

	if !state.HasMore && !n.ended && len(state.Items) > 0 {
		blocks = append(blocks, bot.EndOfFeed())
		n.ended = true
	}

	if len(blocks) == 0 {
		return nil
	}

	log.Debug().
		Uint64("generation", state.Generation).
		Int("sent", n.sent).
		Msg("sending feed update")

	return botkit.SendBlocks(n.bot, n.chatID, blocks)
}

func (n *Notifier) reset(generation uint64) {
	n.generation = generation
	n.sent = 0
	n.ended = false
}

func (n *Notifier) isPinned(id string) bool {
	return n.pins != nil && n.pins.IsPinned(id)
}
