package pins

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/kovalyov-valentin/world-news-bot/internal/model"
)

var (
	ErrStorage = errors.New("pin storage failure")
	// Статью без ссылки нельзя закрепить: ссылка уникальна в хранилище
	ErrNoLink = errors.New("article has no link")
	// Ссылка уже закреплена под другим id
	ErrLinkPinned = errors.New("article link is already pinned")
)

// Постоянное хранилище закрепленных статей
type Storage interface {
	All(ctx context.Context) ([]model.PinnedArticle, error)
	Add(ctx context.Context, pin model.PinnedArticle) (bool, []model.PinnedArticle, error)
	Delete(ctx context.Context, id string) (bool, []model.PinnedArticle, error)
}

// Store держит в памяти копию закрепленных статей и синхронно пишет изменения в хранилище.
// Копия в памяти меняется только после успешного коммита
type Store struct {
	storage Storage
	now     func() time.Time

	mu     sync.RWMutex
	pinned []model.PinnedArticle
	ids    map[string]struct{}
}

func New(storage Storage) *Store {
	return &Store{
		storage: storage,
		now:     time.Now,
		ids:     make(map[string]struct{}),
	}
}

// Load загружает закрепленные статьи из хранилища
func (s *Store) Load(ctx context.Context) error {
	pins, err := s.storage.All(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	s.mu.Lock()
	s.replace(pins)
	s.mu.Unlock()

	log.Info().Int("count", len(pins)).Msg("pinned articles loaded")
	return nil
}

// Pin закрепляет статью. Повторное закрепление ничего не делает
func (s *Store) Pin(ctx context.Context, article model.DisplayArticle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[article.ID]; ok {
		log.Debug().Str("id", article.ID).Msg("article already pinned")
		return nil
	}
	if article.Link == "" {
		return ErrNoLink
	}

	inserted, pins, err := s.storage.Add(ctx, model.PinnedArticle{
		ID:                 article.ID,
		DisplayTitle:       article.DisplayTitle,
		DisplayDescription: article.DisplayDescription,
		DisplayDate:        article.DisplayDate,
		Link:               article.Link,
		PinnedAt:           s.now(),
	})
	if err != nil {
		return fmt.Errorf("%w: pin %s: %v", ErrStorage, article.ID, err)
	}

	s.replace(pins)

	if !inserted {
		log.Debug().Str("link", article.Link).Msg("article already pinned in storage")
		if _, ok := s.ids[article.ID]; !ok {
			return fmt.Errorf("%w: %s", ErrLinkPinned, article.Link)
		}
	}
	return nil
}

// Unpin снимает закрепление. Отсутствующий id ничего не делает
func (s *Store) Unpin(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; !ok {
		return nil
	}

	_, pins, err := s.storage.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: unpin %s: %v", ErrStorage, id, err)
	}

	s.replace(pins)
	return nil
}

// List возвращает закрепленные статьи, последние закрепленные первыми
func (s *Store) List() []model.PinnedArticle {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.PinnedArticle, len(s.pinned))
	copy(out, s.pinned)
	return out
}

func (s *Store) IsPinned(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.ids[id]
	return ok
}

// replace вызывается под блокировкой
func (s *Store) replace(pins []model.PinnedArticle) {
	s.pinned = pins
	s.ids = lo.Associate(pins, func(p model.PinnedArticle) (string, struct{}) {
		return p.ID, struct{}{}
	})
}
