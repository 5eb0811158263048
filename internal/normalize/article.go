package normalize

import (
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/kovalyov-valentin/world-news-bot/internal/model"
)

// Normalizer превращает статьи из ответа API в статьи для показа.
type Normalizer struct {
	dates *DateFormatter
}

func NewNormalizer(dates *DateFormatter) *Normalizer {
	if dates == nil {
		dates = NewDateFormatter(nil)
	}
	return &Normalizer{dates: dates}
}

func (n *Normalizer) Article(raw model.RawArticle) model.DisplayArticle {
	link := raw.Link
	if link == "" {
		link = raw.OriginalLink
	}

	return model.DisplayArticle{
		ID:                 ArticleID(link),
		DisplayTitle:       CleanHTML(raw.Title),
		DisplayDescription: CleanHTML(raw.Description),
		DisplayDate:        n.dates.Format(raw.PublishedAtRaw),
		Link:               link,
	}
}

// Articles сохраняет порядок, в котором статьи пришли от API
func (n *Normalizer) Articles(raws []model.RawArticle) []model.DisplayArticle {
	return lo.Map(raws, func(raw model.RawArticle, _ int) model.DisplayArticle {
		return n.Article(raw)
	})
}

// ArticleID выводит id статьи из ссылки, так что одна и та же статья
// получает один и тот же id в любой сессии, в том числе у закрепленной копии.
// Для статьи без ссылки генерируется случайный id.
func ArticleID(link string) string {
	if link == "" {
		return uuid.NewString()
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(link)).String()
}
