package bot

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kovalyov-valentin/world-news-bot/internal/botkit"
	"github.com/kovalyov-valentin/world-news-bot/internal/model"
	pinstore "github.com/kovalyov-valentin/world-news-bot/internal/pins"
)

// feedItem достает статью ленты по номеру из аргументов.
// Если номер неверный, пользователю уже отправлен ответ и ok == false
func feedItem(feed Feed, bot botkit.Sender, update tgbotapi.Update, usage string) (article model.DisplayArticle, ok bool, err error) {
	chatID := update.Message.Chat.ID

	items := feed.State().Items
	if len(items) == 0 {
		return model.DisplayArticle{}, false, replyText(bot, chatID, emptyFeedText)
	}

	idx, argErr := botkit.IndexArg(update, len(items))
	if argErr != nil {
		return model.DisplayArticle{}, false, replyUsage(bot, chatID, usage, argErr)
	}

	return items[idx], true, nil
}

func ViewCmdPin(feed Feed, pins PinStore) botkit.ViewFunc {
	return func(ctx context.Context, bot botkit.Sender, update tgbotapi.Update) error {
		article, ok, err := feedItem(feed, bot, update, "/pin <번호>")
		if !ok {
			return err
		}

		if pins.IsPinned(article.ID) {
			return replyText(bot, update.Message.Chat.ID, "이미 고정된 기사입니다.")
		}

		if err := pins.Pin(ctx, article); err != nil {
			if errors.Is(err, pinstore.ErrNoLink) || errors.Is(err, pinstore.ErrLinkPinned) {
				return replyText(bot, update.Message.Chat.ID, "이 기사는 고정할 수 없습니다.")
			}
			return err
		}

		return replyText(bot, update.Message.Chat.ID, pinMark+" 고정했습니다: "+article.DisplayTitle)
	}
}

func ViewCmdUnpin(feed Feed, pins PinStore) botkit.ViewFunc {
	return func(ctx context.Context, bot botkit.Sender, update tgbotapi.Update) error {
		article, ok, err := feedItem(feed, bot, update, "/unpin <번호>")
		if !ok {
			return err
		}

		if !pins.IsPinned(article.ID) {
			return replyText(bot, update.Message.Chat.ID, "고정되지 않은 기사입니다.")
		}

		if err := pins.Unpin(ctx, article.ID); err != nil {
			return err
		}

		return replyText(bot, update.Message.Chat.ID, "고정 해제했습니다: "+article.DisplayTitle)
	}
}

// ViewCmdPins список закрепленных, последние первыми
func ViewCmdPins(pins PinStore) botkit.ViewFunc {
	return func(ctx context.Context, bot botkit.Sender, update tgbotapi.Update) error {
		chatID := update.Message.Chat.ID

		pinned := pins.List()
		if len(pinned) == 0 {
			return replyText(bot, chatID, noPinsText)
		}

		blocks := make([]string, 0, len(pinned))
		for i, p := range pinned {
			blocks = append(blocks, FormatPinned(i+1, p))
		}

		return botkit.SendBlocks(bot, chatID, blocks)
	}
}

func ViewCmdUnpinSaved(pins PinStore) botkit.ViewFunc {
	return func(ctx context.Context, bot botkit.Sender, update tgbotapi.Update) error {
		chatID := update.Message.Chat.ID

		pinned := pins.List()
		if len(pinned) == 0 {
			return replyText(bot, chatID, noPinsText)
		}

		idx, err := botkit.IndexArg(update, len(pinned))
		if err != nil {
			return replyUsage(bot, chatID, "/unpinsaved <번호>", err)
		}

		pin := pinned[idx]
		if err := pins.Unpin(ctx, pin.ID); err != nil {
			return err
		}

		return replyText(bot, chatID, "고정 해제했습니다: "+pin.DisplayTitle)
	}
}
