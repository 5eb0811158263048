package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kovalyov-valentin/world-news-bot/internal/fetcher"
	"github.com/kovalyov-valentin/world-news-bot/internal/model"
)

const (
	DefaultSearchEndpoint = "https://openapi.naver.com/v1/search/news.json"
	DefaultClientIDHeader = "X-Client-Id"
	DefaultSecretHeader   = "X-Client-Secret"

	// API не отдает статьи дальше этой позиции
	MaxStart = 1000

	// Ограничение на размер тела ответа
	maxBodySize = 4 << 20
)

type SearchConfig struct {
	Endpoint       string
	ClientIDHeader string
	SecretHeader   string
	Timeout        time.Duration
}

// Клиент API поиска новостей
type SearchClient struct {
	endpoint       string
	clientIDHeader string
	secretHeader   string
	client         *http.Client
}

func NewSearchClient(cfg SearchConfig) *SearchClient {
	c := &SearchClient{
		endpoint:       cfg.Endpoint,
		clientIDHeader: cfg.ClientIDHeader,
		secretHeader:   cfg.SecretHeader,
		client:         &http.Client{Timeout: cfg.Timeout},
	}

	if c.endpoint == "" {
		c.endpoint = DefaultSearchEndpoint
	}
	if c.clientIDHeader == "" {
		c.clientIDHeader = DefaultClientIDHeader
	}
	if c.secretHeader == "" {
		c.secretHeader = DefaultSecretHeader
	}

	return c
}

// Ответ API
type searchResponse struct {
	Items []model.RawArticle `json:"items"`
}

// Тело ответа с ошибкой
type searchError struct {
	ErrorMessage string `json:"errorMessage"`
	ErrorCode    string `json:"errorCode"`
}

// FetchPage загружает одну страницу выдачи, отсортированную по дате.
func (c *SearchClient) FetchPage(ctx context.Context, req model.PageRequest) ([]model.RawArticle, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	// Дальше MaxStart API отвечает ошибкой, считаем что выдача закончилась
	if req.Offset > MaxStart {
		return []model.RawArticle{}, nil
	}

	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fetcher.NetworkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fetcher.NetworkError(fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fetcher.NetworkError(statusError(resp.StatusCode, body))
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fetcher.NoDataError()
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fetcher.DecodeError(err)
	}

	if result.Items == nil {
		result.Items = []model.RawArticle{}
	}

	return result.Items, nil
}

func (c *SearchClient) buildRequest(ctx context.Context, req model.PageRequest) (*http.Request, error) {
	rawQuery := strings.Join([]string{
		"query=" + EscapeQuery(req.Query),
		"display=" + strconv.Itoa(req.PageSize),
		"start=" + strconv.Itoa(req.Offset),
		"sort=date",
	}, "&")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+rawQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", fetcher.ErrInvalidRequest, err)
	}

	httpReq.Header.Set(c.clientIDHeader, req.Credentials.ClientID)
	httpReq.Header.Set(c.secretHeader, req.Credentials.ClientSecret)
	httpReq.Header.Set("Accept", "application/json")

	return httpReq, nil
}

// EscapeQuery кодирует запрос для query string, пробел кодируется как %20
func EscapeQuery(q string) string {
	return strings.ReplaceAll(url.QueryEscape(q), "+", "%20")
}

func validate(req model.PageRequest) error {
	switch {
	case strings.TrimSpace(req.Query) == "":
		return fmt.Errorf("%w: empty query", fetcher.ErrInvalidRequest)
	case req.Offset < 1:
		return fmt.Errorf("%w: offset %d", fetcher.ErrInvalidRequest, req.Offset)
	case req.PageSize <= 0:
		return fmt.Errorf("%w: page size %d", fetcher.ErrInvalidRequest, req.PageSize)
	case !req.Credentials.Valid():
		return fmt.Errorf("%w: missing credentials", fetcher.ErrInvalidRequest)
	}
	return nil
}

func statusError(code int, body []byte) error {
	var apiErr searchError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.ErrorMessage != "" {
		return fmt.Errorf("status %d: %s (%s)", code, apiErr.ErrorMessage, apiErr.ErrorCode)
	}
	return fmt.Errorf("status %d", code)
}
