package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/suyoungkwon2/phonitale-backend/internal/common"
	"github.com/suyoungkwon2/phonitale-backend/internal/consent/entity"
)

// ConsentRepo provides data access for the consent_records table.
type ConsentRepo struct {
	db *sqlx.DB
}

func NewConsentRepo(db *sqlx.DB) *ConsentRepo { return &ConsentRepo{db: db} }

// Put creates or fully overwrites the consent record for (email, name).
// Re-consent resets every field, including any prior session-end patch.
func (r *ConsentRepo) Put(ctx context.Context, rec *entity.ConsentRecord) error {
	const query = `
INSERT INTO consent_records (email, name, phone, user_group, consent_agreed, consent_agreed_date)
VALUES (:email, :name, :phone, :user_group, :consent_agreed, :consent_agreed_date)
ON CONFLICT (email, name) DO UPDATE SET
    phone = EXCLUDED.phone,
    user_group = EXCLUDED.user_group,
    consent_agreed = EXCLUDED.consent_agreed,
    consent_agreed_date = EXCLUDED.consent_agreed_date,
    test_end = NULL,
    total_duration = NULL,
    updated_at = NOW()`

	if _, err := r.db.NamedExecContext(ctx, query, rec); err != nil {
		return fmt.Errorf("upsert consent_records: %w", err)
	}
	return nil
}

// Get returns the consent record for (email, name).
func (r *ConsentRepo) Get(ctx context.Context, email, name string) (*entity.ConsentRecord, error) {
	const query = `
SELECT email, name, phone, user_group, consent_agreed, consent_agreed_date,
       test_end, total_duration, created_at, updated_at
FROM consent_records
WHERE email = $1 AND name = $2`

	rec := &entity.ConsentRecord{}
	if err := r.db.GetContext(ctx, rec, query, email, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("select consent_records: %w", err)
	}
	return rec, nil
}

// PatchSessionEnd updates exactly test_end and total_duration for an existing
// record, overwriting any prior values.
func (r *ConsentRepo) PatchSessionEnd(ctx context.Context, email, name, testEnd string, totalDuration int64) error {
	const query = `
UPDATE consent_records
SET test_end = $3, total_duration = $4, updated_at = NOW()
WHERE email = $1 AND name = $2`

	res, err := r.db.ExecContext(ctx, query, email, name, testEnd, totalDuration)
	if err != nil {
		return fmt.Errorf("update consent_records: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update consent_records: %w", err)
	}
	if rows == 0 {
		return common.ErrNotFound
	}
	return nil
}
