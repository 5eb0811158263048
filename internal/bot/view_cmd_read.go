package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/kovalyov-valentin/world-news-bot/internal/botkit"
	"github.com/kovalyov-valentin/world-news-bot/internal/botkit/markup"
)

// ViewCmdRead показывает читаемый текст статьи или ее пересказ
func ViewCmdRead(feed Feed, articles ArticleReader) botkit.ViewFunc {
	return func(ctx context.Context, bot botkit.Sender, update tgbotapi.Update) error {
		article, ok, err := feedItem(feed, bot, update, "/read <번호>")
		if !ok {
			return err
		}
		chatID := update.Message.Chat.ID

		page, err := articles.Read(ctx, article.Link)
		if err != nil {
			log.Warn().Err(err).Str("link", article.Link).Msg("failed to read article")
			return botkit.Reply(bot, chatID,
				markup.EscapeForMarkdown("본문을 불러오지 못했습니다.")+"\n"+markup.Link("원문 링크", article.Link))
		}

		title := page.Title
		if title == "" {
			title = article.DisplayTitle
		}

		label := "본문 미리보기"
		if page.Summarized {
			label = "요약"
		}

		text := markup.Bold(title) + "\n" +
			markup.Italic(label) + "\n\n" +
			markup.EscapeForMarkdown(page.Text) + "\n\n" +
			markup.Link("원문 링크", article.Link)

		return botkit.Reply(bot, chatID, text)
	}
}
