package source

import (
	"context"
	"strings"

	"github.com/kovalyov-valentin/world-news-bot/internal/fetcher"
	"github.com/kovalyov-valentin/world-news-bot/internal/model"
)

// Router отдает запросы, для которых настроена RSS лента, в эту ленту,
// а все остальные в API поиска.
type Router struct {
	routes   map[string]fetcher.PageFetcher
	fallback fetcher.PageFetcher
}

func NewRouter(fallback fetcher.PageFetcher) *Router {
	return &Router{
		routes:   make(map[string]fetcher.PageFetcher),
		fallback: fallback,
	}
}

func (r *Router) Route(query string, f fetcher.PageFetcher) {
	r.routes[normalizeQuery(query)] = f
}

func (r *Router) FetchPage(ctx context.Context, req model.PageRequest) ([]model.RawArticle, error) {
	if f, ok := r.routes[normalizeQuery(req.Query)]; ok {
		return f.FetchPage(ctx, req)
	}
	return r.fallback.FetchPage(ctx, req)
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// ParseRoute разбирает строку конфига вида "запрос=https://url"
func ParseRoute(s string) (query, url string, ok bool) {
	query, url, ok = strings.Cut(s, "=")
	if !ok {
		return "", "", false
	}
	query, url = strings.TrimSpace(query), strings.TrimSpace(url)
	if query == "" || url == "" {
		return "", "", false
	}
	return query, url, true
}
