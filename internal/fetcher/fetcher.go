package fetcher

import (
	"context"
	"errors"
	"sync"

	"github.com/kovalyov-valentin/world-news-bot/internal/model"
)

// Источник страниц выдачи. Реализуется клиентом API поиска и RSS источником
type PageFetcher interface {
	FetchPage(ctx context.Context, req model.PageRequest) ([]model.RawArticle, error)
}

// Результат загрузки страницы
type Result struct {
	Request  model.PageRequest
	Articles []model.RawArticle
	Err      error
}

// Slot держит не более одного запроса в полете.
// Новый запрос сначала отменяет предыдущий. Результат отмененного запроса
// не доставляется вовсе: ни успехом, ни ошибкой.
type Slot struct {
	fetcher PageFetcher

	mu sync.Mutex
	// Номер текущего запроса. Результат доставляется, только если номер не изменился
	seq    uint64
	cancel context.CancelFunc
}

func NewSlot(fetcher PageFetcher) *Slot {
	return &Slot{fetcher: fetcher}
}

// Go запускает загрузку страницы в отдельной горутине.
// deliver вызывается из этой же горутины и только для актуального запроса.
func (s *Slot) Go(ctx context.Context, req model.PageRequest, deliver func(Result)) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	seq := s.seq
	reqCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	go func() {
		defer cancel()

		articles, err := s.fetcher.FetchPage(reqCtx, req)

		s.mu.Lock()
		if seq != s.seq {
			// Запрос отменен или вытеснен новым
			s.mu.Unlock()
			return
		}
		s.cancel = nil
		s.mu.Unlock()

		if err != nil && errors.Is(err, context.Canceled) {
			return
		}

		deliver(Result{Request: req, Articles: articles, Err: err})
	}()
}

// Cancel отменяет текущий запрос, если он есть
func (s *Slot) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.seq++
}

func (s *Slot) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cancel != nil
}
