package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/suyoungkwon2/phonitale-backend/internal/response/entity"
)

// ResponseRepo persists study responses in the user_responses table.
type ResponseRepo struct {
	db *sqlx.DB
}

func NewResponseRepo(db *sqlx.DB) *ResponseRepo { return &ResponseRepo{db: db} }

// Apply upserts the given assignments for one (user, english_word) key as a
// single statement. The record is created when absent; otherwise only the
// listed columns change, and IfAbsent columns keep their stored value.
func (r *ResponseRepo) Apply(ctx context.Context, user, englishWord string, plan []entity.Assignment) error {
	query, args := buildUpsert(user, englishWord, plan)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert user_responses: %w", err)
	}
	return nil
}

// buildUpsert renders the INSERT ... ON CONFLICT DO UPDATE statement for a
// plan. Column names come only from the enumerated page mappings, never from
// request input, so they are interpolated directly; values go through
// placeholders.
func buildUpsert(user, englishWord string, plan []entity.Assignment) (string, []any) {
	cols := []string{`"user"`, "english_word"}
	placeholders := []string{"$1", "$2"}
	args := []any{user, englishWord}
	sets := make([]string, 0, len(plan)+1)

	for _, a := range plan {
		args = append(args, a.Value)
		cols = append(cols, a.Column)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		if a.IfAbsent {
			sets = append(sets, fmt.Sprintf("%s = COALESCE(user_responses.%s, EXCLUDED.%s)", a.Column, a.Column, a.Column))
		} else {
			sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", a.Column, a.Column))
		}
	}
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf(
		`INSERT INTO user_responses (%s) VALUES (%s) ON CONFLICT ("user", english_word) DO UPDATE SET %s`,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(sets, ", "),
	)
	return query, args
}
