// Package entity defines the consent record stored once per participant.
package entity

import "time"

// ConsentRecord is a row in consent_records, keyed by (email, name).
// ConsentAgreedDate and TestEnd are ISO-8601 strings; TestEnd is stored
// verbatim as the client supplied it.
type ConsentRecord struct {
	Email             string    `db:"email" json:"email"`
	Name              string    `db:"name" json:"name"`
	Phone             string    `db:"phone" json:"phone"`
	UserGroup         *string   `db:"user_group" json:"user_group,omitempty"`
	ConsentAgreed     bool      `db:"consent_agreed" json:"consent_agreed"`
	ConsentAgreedDate string    `db:"consent_agreed_date" json:"consent_agreed_date"`
	TestEnd           *string   `db:"test_end" json:"test_end,omitempty"`
	TotalDuration     *int64    `db:"total_duration" json:"total_duration,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"-"`
	UpdatedAt         time.Time `db:"updated_at" json:"-"`
}
