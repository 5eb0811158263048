package source

import (
	"context"
	"sort"
	"time"

	"github.com/SlyMarbo/rss"
	"github.com/samber/lo"

	"github.com/kovalyov-valentin/world-news-bot/internal/fetcher"
	"github.com/kovalyov-valentin/world-news-bot/internal/model"
)

// RSS источник. Лента загружается целиком и режется на страницы локально
type RSSSource struct {
	// URL откуда мы забираем данные
	URL  string
	Name string
}

func NewRSSSource(name, url string) RSSSource {
	return RSSSource{URL: url, Name: name}
}

// FetchPage отдает страницу ленты начиная с req.Offset. Ключи для RSS не нужны
func (s RSSSource) FetchPage(ctx context.Context, req model.PageRequest) ([]model.RawArticle, error) {
	if req.Offset < 1 || req.PageSize <= 0 {
		return nil, fetcher.ErrInvalidRequest
	}

	feed, err := s.loadFeed(ctx, s.URL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fetcher.NetworkError(err)
	}

	// Как и API поиска, отдаем сначала свежие
	items := append([]*rss.Item(nil), feed.Items...)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})

	start := req.Offset - 1
	if start >= len(items) {
		return []model.RawArticle{}, nil
	}
	end := start + req.PageSize
	if end > len(items) {
		end = len(items)
	}

	return lo.Map(items[start:end], func(item *rss.Item, _ int) model.RawArticle {
		return model.RawArticle{
			Title:          item.Title,
			OriginalLink:   item.Link,
			Link:           item.Link,
			Description:    item.Summary,
			PublishedAtRaw: formatRSSDate(item.Date),
		}
	}), nil
}

// Дата в том же формате, что отдает API поиска, чтобы дальше ее обрабатывал один форматтер
func formatRSSDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC1123Z)
}

// Метод, который загружает ленту.
// Сама библиотека контекст не принимает, поэтому ждем ее в отдельной горутине
func (s RSSSource) loadFeed(ctx context.Context, url string) (*rss.Feed, error) {
	var (
		feedCh = make(chan *rss.Feed, 1)
		errCh  = make(chan error, 1)
	)

	go func() {
		feed, err := rss.Fetch(url)
		if err != nil {
			errCh <- err
			return
		}

		feedCh <- feed
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-errCh:
		return nil, err
	case feed := <-feedCh:
		return feed, nil
	}
}
