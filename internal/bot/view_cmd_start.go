package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kovalyov-valentin/world-news-bot/internal/botkit"
	"github.com/kovalyov-valentin/world-news-bot/internal/botkit/markup"
)

var helpLines = []string{
	"/feed - 현재 피드 보기",
	"/category <이름> - 카테고리 선택",
	"/search <검색어> - 검색",
	"/refresh - 새로고침",
	"/more - 다음 기사 불러오기",
	"/pin <번호>, /unpin <번호> - 피드 기사 고정, 해제",
	"/pins - 고정한 기사 목록",
	"/unpinsaved <번호> - 목록에서 고정 해제",
	"/read <번호> - 기사 본문 읽기",
}

func ViewCmdStart() botkit.ViewFunc {
	return func(ctx context.Context, bot botkit.Sender, update tgbotapi.Update) error {
		text := markup.Bold("세계 뉴스") + "\n\n" +
			markup.EscapeForMarkdown(strings.Join(helpLines, "\n")) + "\n\n" +
			markup.Bold("카테고리") + "\n" +
			markup.EscapeForMarkdown(categoryList())

		return botkit.Reply(bot, update.Message.Chat.ID, text)
	}
}
