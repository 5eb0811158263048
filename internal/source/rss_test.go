package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovalyov-valentin/world-news-bot/internal/fetcher"
	"github.com/kovalyov-valentin/world-news-bot/internal/model"
)

func rssFeed(n int) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>test</title><link>https://example.com</link><description>d</description>`)
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, `<item><title>Item %d</title><link>https://example.com/%d</link><description>&lt;b&gt;desc %d&lt;/b&gt;</description><pubDate>Mon, %02d Feb 2026 10:00:00 +0900</pubDate></item>`, i, i, i, i)
	}
	b.WriteString(`</channel></rss>`)
	return b.String()
}

func newRSSServer(t *testing.T, n int) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssFeed(n)))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestRSSSource_Pages(t *testing.T) {
	src := NewRSSSource("test", newRSSServer(t, 12))

	first, err := src.FetchPage(context.Background(), model.PageRequest{Query: "q", Offset: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, first, 10)
	// Свежие первыми
	assert.Equal(t, "https://example.com/12", first[0].Link)
	assert.Equal(t, "Item 12", first[0].Title)

	second, err := src.FetchPage(context.Background(), model.PageRequest{Query: "q", Offset: 11, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, "https://example.com/1", second[1].Link)

	beyond, err := src.FetchPage(context.Background(), model.PageRequest{Query: "q", Offset: 21, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestRSSSource_InvalidRequest(t *testing.T) {
	_, err := NewRSSSource("test", "http://unused").FetchPage(context.Background(), model.PageRequest{Offset: 0, PageSize: 10})
	assert.ErrorIs(t, err, fetcher.ErrInvalidRequest)
}

func TestRSSSource_FetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewRSSSource("test", url).FetchPage(context.Background(), model.PageRequest{Offset: 1, PageSize: 10})
	kind, ok := fetcher.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, fetcher.KindNetwork, kind)
}
