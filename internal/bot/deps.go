package bot

import (
	"context"

	"github.com/kovalyov-valentin/world-news-bot/internal/model"
	"github.com/kovalyov-valentin/world-news-bot/internal/reader"
)

// Лента новостей. Реализуется *feed.Engine
type Feed interface {
	SetQuery(query string) error
	Refresh() error
	LoadMore() bool
	State() model.FeedState
}

type PinStore interface {
	Pin(ctx context.Context, article model.DisplayArticle) error
	Unpin(ctx context.Context, id string) error
	List() []model.PinnedArticle
	IsPinned(id string) bool
}

type ArticleReader interface {
	Read(ctx context.Context, link string) (reader.Article, error)
}
