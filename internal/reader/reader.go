package reader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
	"github.com/rs/zerolog/log"
)

const (
	// Длина выдержки, если пересказ недоступен
	DefaultExcerptLength = 1200
	// Страницы больше этого читаются не целиком
	maxPageSize = 4 << 20
)

type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Reader достает читаемый текст статьи по ссылке по запросу пользователя.
// Ничего не сохраняет: каждый вызов идет в сеть заново
type Reader struct {
	client     *http.Client
	summarizer Summarizer
	maxRunes   int
}

func New(timeout time.Duration, summarizer Summarizer) *Reader {
	return &Reader{
		client:     &http.Client{Timeout: timeout},
		summarizer: summarizer,
		maxRunes:   DefaultExcerptLength,
	}
}

// Результат чтения статьи
type Article struct {
	Title string
	// Пересказ или начало текста
	Text       string
	Summarized bool
}

func (r *Reader) Read(ctx context.Context, link string) (Article, error) {
	pageURL, err := url.Parse(link)
	if err != nil || pageURL.Scheme == "" || pageURL.Host == "" {
		return Article{}, fmt.Errorf("invalid article link %q", link)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return Article{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return Article{}, fmt.Errorf("fetch article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Article{}, fmt.Errorf("fetch article: status %d", resp.StatusCode)
	}

	doc, err := readability.FromReader(io.LimitReader(resp.Body, maxPageSize), pageURL)
	if err != nil {
		return Article{}, fmt.Errorf("extract article: %w", err)
	}

	text := cleanText(doc.TextContent)
	article := Article{Title: strings.TrimSpace(doc.Title)}

	if r.summarizer != nil {
		summary, err := r.summarizer.Summarize(ctx, text)
		if err != nil {
			// Пересказ не обязателен, показываем выдержку
			log.Warn().Err(err).Str("link", link).Msg("failed to summarize article")
		} else if summary != "" {
			article.Text = summary
			article.Summarized = true
			return article, nil
		}
	}

	article.Text = excerpt(text, r.maxRunes)
	return article, nil
}

// readability оставляет много пустых строк, сворачиваем их
var redundantNewLines = regexp.MustCompile(`\n\s*\n(\s*\n)+`)

func cleanText(text string) string {
	return strings.TrimSpace(redundantNewLines.ReplaceAllString(text, "\n\n"))
}

func excerpt(text string, maxRunes int) string {
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return strings.TrimSpace(string(runes[:maxRunes])) + "…"
}
