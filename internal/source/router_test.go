package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovalyov-valentin/world-news-bot/internal/model"
)

type namedFetcher string

func (n namedFetcher) FetchPage(context.Context, model.PageRequest) ([]model.RawArticle, error) {
	return []model.RawArticle{{Link: string(n)}}, nil
}

func TestRouter(t *testing.T) {
	r := NewRouter(namedFetcher("search"))
	r.Route("IT 과학", namedFetcher("rss"))

	items, err := r.FetchPage(context.Background(), model.PageRequest{Query: " it 과학 "})
	require.NoError(t, err)
	assert.Equal(t, "rss", items[0].Link)

	items, err = r.FetchPage(context.Background(), model.PageRequest{Query: "정치"})
	require.NoError(t, err)
	assert.Equal(t, "search", items[0].Link)
}

func TestParseRoute(t *testing.T) {
	q, u, ok := ParseRoute("IT 과학 = https://example.com/rss?a=b")
	require.True(t, ok)
	assert.Equal(t, "IT 과학", q)
	assert.Equal(t, "https://example.com/rss?a=b", u)

	_, _, ok = ParseRoute("no separator")
	assert.False(t, ok)

	_, _, ok = ParseRoute("=https://x")
	assert.False(t, ok)
}
