package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kovalyov-valentin/world-news-bot/internal/botkit"
	"github.com/kovalyov-valentin/world-news-bot/internal/model"
)

func ViewCmdCategory(feed Feed) botkit.ViewFunc {
	return func(ctx context.Context, bot botkit.Sender, update tgbotapi.Update) error {
		chatID := update.Message.Chat.ID

		category, ok := model.CategoryByName(update.Message.CommandArguments())
		if !ok {
			return replyText(bot, chatID, "카테고리를 선택하세요:\n"+categoryList())
		}

		if err := feed.SetQuery(category.Query); err != nil {
			return err
		}

		return replyText(bot, chatID, fmt.Sprintf("%s 뉴스를 불러오는 중...", category.Name))
	}
}

func ViewCmdSearch(feed Feed) botkit.ViewFunc {
	return func(ctx context.Context, bot botkit.Sender, update tgbotapi.Update) error {
		chatID := update.Message.Chat.ID

		query := strings.TrimSpace(update.Message.CommandArguments())
		if query == "" {
			return replyText(bot, chatID, "검색어를 입력하세요: /search <검색어>")
		}

		if err := feed.SetQuery(query); err != nil {
			return err
		}

		return replyText(bot, chatID, fmt.Sprintf("'%s' 검색 중...", query))
	}
}

func ViewCmdRefresh(feed Feed) botkit.ViewFunc {
	return func(ctx context.Context, bot botkit.Sender, update tgbotapi.Update) error {
		if err := feed.Refresh(); err != nil {
			return err
		}
		return replyText(bot, update.Message.Chat.ID, "새로고침 중...")
	}
}

func ViewCmdMore(feed Feed) botkit.ViewFunc {
	return func(ctx context.Context, bot botkit.Sender, update tgbotapi.Update) error {
		chatID := update.Message.Chat.ID

		if feed.LoadMore() {
			return replyText(bot, chatID, "다음 기사를 불러오는 중...")
		}

		state := feed.State()
		switch {
		case state.IsLoading || state.IsLoadingMore:
			return replyText(bot, chatID, "이미 불러오는 중입니다.")
		case !state.HasMore:
			return replyText(bot, chatID, "더 불러올 기사가 없습니다.")
		default:
			return replyText(bot, chatID, "지금은 더 불러올 수 없습니다.")
		}
	}
}

// ViewCmdFeed показывает текущий снимок ленты
func ViewCmdFeed(feed Feed, pins PinStore) botkit.ViewFunc {
	return func(ctx context.Context, bot botkit.Sender, update tgbotapi.Update) error {
		chatID := update.Message.Chat.ID
		state := feed.State()

		if len(state.Items) == 0 {
			switch {
			case state.IsLoading:
				return replyText(bot, chatID, "불러오는 중...")
			case state.Status == model.StatusError:
				return botkit.Reply(bot, chatID, ErrorText(state))
			default:
				return replyText(bot, chatID, emptyFeedText)
			}
		}

		blocks := append([]string{FeedHeader(state)}, ArticleBlocks(state.Items, 0, pins.IsPinned)...)
		if !state.HasMore {
			blocks = append(blocks, EndOfFeed())
		}

		return botkit.SendBlocks(bot, chatID, blocks)
	}
}
