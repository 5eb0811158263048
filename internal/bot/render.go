package bot

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/kovalyov-valentin/world-news-bot/internal/botkit/markup"
	"github.com/kovalyov-valentin/world-news-bot/internal/model"
)

const (
	pinMark       = "📌"
	endOfFeedText = "마지막 기사입니다."
	emptyFeedText = "표시할 기사가 없습니다."
	noPinsText    = "핀된 기사가 없습니다."
)

// FormatArticle карточка статьи ленты, n это номер для команд /pin и /read
func FormatArticle(n int, article model.DisplayArticle, pinned bool) string {
	title := markup.Bold(fmt.Sprintf("%d. %s", n, article.DisplayTitle))
	if pinned {
		title += " " + pinMark
	}

	return formatCard(title, article.DisplayDate, article.DisplayDescription, article.Link)
}

// FormatPinned карточка закрепленной статьи
func FormatPinned(n int, pin model.PinnedArticle) string {
	title := pinMark + " " + markup.Bold(fmt.Sprintf("%d. %s", n, pin.DisplayTitle))
	return formatCard(title, pin.DisplayDate, pin.DisplayDescription, pin.Link)
}

func formatCard(title, date, description, link string) string {
	lines := []string{title}
	if date != "" {
		lines = append(lines, markup.Italic(date))
	}
	if description != "" {
		lines = append(lines, markup.EscapeForMarkdown(description))
	}
	if link != "" {
		lines = append(lines, markup.Link("원문 링크", link))
	}
	return strings.Join(lines, "\n")
}

// FeedHeader заголовок ленты с запросом
func FeedHeader(state model.FeedState) string {
	return fmt.Sprintf("🗞 %s %s",
		markup.Bold(state.Query),
		markup.EscapeForMarkdown(fmt.Sprintf("(%d건)", len(state.Items))),
	)
}

// ArticleBlocks карточки статей начиная с from. Нумерация сквозная по всей ленте
func ArticleBlocks(items []model.DisplayArticle, from int, isPinned func(id string) bool) []string {
	if from >= len(items) {
		return nil
	}

	return lo.Map(items[from:], func(a model.DisplayArticle, i int) string {
		return FormatArticle(from+i+1, a, isPinned != nil && isPinned(a.ID))
	})
}

func EndOfFeed() string {
	return markup.Italic(endOfFeedText)
}

// ErrorText сообщение о неудачной загрузке
func ErrorText(state model.FeedState) string {
	return markup.EscapeForMarkdown(fmt.Sprintf("⚠️ 기사를 불러오지 못했습니다: %s", state.LastError))
}

func categoryList() string {
	names := lo.Map(model.Categories, func(c model.Category, _ int) string {
		return "• " + c.Name
	})
	return strings.Join(names, "\n")
}
