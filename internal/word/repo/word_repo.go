package repo

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/suyoungkwon2/phonitale-backend/internal/word/entity"
)

// WordRepo provides data access for the words table.
type WordRepo struct {
	db *sqlx.DB
}

func NewWordRepo(db *sqlx.DB) *WordRepo { return &WordRepo{db: db} }

// Insert adds a word pair, keeping the existing row when the English word is
// already present (re-imports are idempotent).
func (r *WordRepo) Insert(ctx context.Context, w entity.Word) error {
	const query = `
INSERT INTO words (english, korean) VALUES ($1, $2)
ON CONFLICT (english) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, w.English, w.Korean); err != nil {
		return fmt.Errorf("insert words: %w", err)
	}
	return nil
}

// Sample returns up to n word pairs in random order.
func (r *WordRepo) Sample(ctx context.Context, n int) ([]entity.Word, error) {
	const query = `SELECT english, korean FROM words ORDER BY random() LIMIT $1`

	words := []entity.Word{}
	if err := r.db.SelectContext(ctx, &words, query, n); err != nil {
		return nil, fmt.Errorf("select words: %w", err)
	}
	return words, nil
}
