package summary

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

const (
	DefaultModel  = openai.GPT3Dot5Turbo
	DefaultPrompt = "Кратко перескажи статью в 2-3 предложениях на языке статьи."
)

type Config struct {
	APIKey string
	Prompt string
	Model  string
}

// Пересказ статьи через OpenAI. Без ключа выключен и возвращает пустую строку
type OpenAISummarizer struct {
	client *openai.Client
	prompt string
	model  string

	// Клиент один на всех, запросы идут по очереди
	mu sync.Mutex
}

func NewOpenAISummarizer(cfg Config) *OpenAISummarizer {
	s := &OpenAISummarizer{
		prompt: cfg.Prompt,
		model:  cfg.Model,
	}
	if s.prompt == "" {
		s.prompt = DefaultPrompt
	}
	if s.model == "" {
		s.model = DefaultModel
	}
	if cfg.APIKey != "" {
		s.client = openai.NewClient(cfg.APIKey)
	}

	log.Info().Bool("enabled", s.Enabled()).Msg("openai summarizer")
	return s
}

func (s *OpenAISummarizer) Enabled() bool {
	return s.client != nil
}

func (s *OpenAISummarizer) Summarize(ctx context.Context, text string) (string, error) {
	if !s.Enabled() || strings.TrimSpace(text) == "" {
		return "", nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: s.prompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		MaxTokens:   256,
		Temperature: 0.7,
		TopP:        1,
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}

	return TrimToSentence(resp.Choices[0].Message.Content), nil
}

// TrimToSentence отрезает оборванное последнее предложение,
// которое остается, когда ответ упирается в MaxTokens
func TrimToSentence(text string) string {
	text = strings.TrimSpace(text)
	if text == "" || strings.HasSuffix(text, ".") {
		return text
	}

	idx := strings.LastIndex(text, ".")
	if idx < 0 {
		// Ни одного законченного предложения, отдаем как есть
		return text
	}

	return text[:idx+1]
}
