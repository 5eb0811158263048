package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"github.com/kovalyov-valentin/world-news-bot/internal/model"
)

// Хранилище закрепленных статей. Работает и с postgres, и с sqlite:
// запросы пишутся с ? и переписываются под драйвер через Rebind
type PinStorage struct {
	db *sqlx.DB
}

func NewPinStorage(db *sqlx.DB) *PinStorage {
	return &PinStorage{db: db}
}

const selectPinsQuery = `SELECT id, display_title, display_description, display_date, link, pinned_at
	FROM pinned_articles ORDER BY pinned_at DESC, id`

// All возвращает все закрепленные статьи, свежие первыми
func (s *PinStorage) All(ctx context.Context) ([]model.PinnedArticle, error) {
	var pins []dbPinnedArticle
	if err := s.db.SelectContext(ctx, &pins, selectPinsQuery); err != nil {
		return nil, fmt.Errorf("select pins: %w", err)
	}

	return toModels(pins), nil
}

// Add добавляет статью, если такой id или ссылки еще нет, и в той же транзакции
// перечитывает список. Возвращает признак вставки и актуальный список
func (s *PinStorage) Add(ctx context.Context, pin model.PinnedArticle) (bool, []model.PinnedArticle, error) {
	var (
		inserted bool
		pins     []model.PinnedArticle
	)

	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(
			ctx,
			tx.Rebind(`INSERT INTO pinned_articles (id, display_title, display_description, display_date, link, pinned_at)
				VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT DO NOTHING`),
			pin.ID,
			pin.DisplayTitle,
			pin.DisplayDescription,
			pin.DisplayDate,
			pin.Link,
			pin.PinnedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("insert pin: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("insert pin: %w", err)
		}
		inserted = affected > 0

		pins, err = selectAll(ctx, tx)
		return err
	})
	if err != nil {
		return false, nil, err
	}

	return inserted, pins, nil
}

// Delete удаляет статью по id и в той же транзакции перечитывает список
func (s *PinStorage) Delete(ctx context.Context, id string) (bool, []model.PinnedArticle, error) {
	var (
		deleted bool
		pins    []model.PinnedArticle
	)

	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM pinned_articles WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("delete pin: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete pin: %w", err)
		}
		deleted = affected > 0

		pins, err = selectAll(ctx, tx)
		return err
	})
	if err != nil {
		return false, nil, err
	}

	return deleted, pins, nil
}

func (s *PinStorage) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

func selectAll(ctx context.Context, tx *sqlx.Tx) ([]model.PinnedArticle, error) {
	var pins []dbPinnedArticle
	if err := tx.SelectContext(ctx, &pins, selectPinsQuery); err != nil {
		return nil, fmt.Errorf("select pins: %w", err)
	}
	return toModels(pins), nil
}

func toModels(pins []dbPinnedArticle) []model.PinnedArticle {
	return lo.Map(pins, func(p dbPinnedArticle, _ int) model.PinnedArticle {
		return model.PinnedArticle{
			ID:                 p.ID,
			DisplayTitle:       p.DisplayTitle,
			DisplayDescription: p.DisplayDescription,
			DisplayDate:        p.DisplayDate,
			Link:               p.Link,
			PinnedAt:           p.PinnedAt.UTC(),
		}
	})
}

// Внутренняя модель для работы с БД, чтобы правильно мапить ее на колонки в таблице
type dbPinnedArticle struct {
	ID                 string    `db:"id"`
	DisplayTitle       string    `db:"display_title"`
	DisplayDescription string    `db:"display_description"`
	DisplayDate        string    `db:"display_date"`
	Link               string    `db:"link"`
	PinnedAt           time.Time `db:"pinned_at"`
}
