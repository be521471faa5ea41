package consent

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/suyoungkwon2/phonitale-backend/internal/common"
	"github.com/suyoungkwon2/phonitale-backend/internal/consent/entity"
)

// UserIDSeparator joins a participant's name and phone into the partition key
// used by the response recorder.
const UserIDSeparator = "#"

// Store abstracts the persistence operations the consent workflows need.
type Store interface {
	Put(ctx context.Context, rec *entity.ConsentRecord) error
	Get(ctx context.Context, email, name string) (*entity.ConsentRecord, error)
	PatchSessionEnd(ctx context.Context, email, name, testEnd string, totalDuration int64) error
}

// SubmitRequest carries a consent form submission.
type SubmitRequest struct {
	Name          string
	Phone         string
	Email         string
	ConsentAgreed bool
	UserGroup     string
}

// Service records participant consent and closes sessions by patching the
// total elapsed duration back into the consent record.
type Service struct {
	store  Store
	logger *zap.SugaredLogger
	now    func() time.Time
}

func NewService(store Store, logger *zap.SugaredLogger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Submit creates or fully overwrites the consent record for (email, name),
// stamping consent_agreed_date with the current server time. It returns the
// derived user ID the client must use as the response recorder's "user" key.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (string, error) {
	if strings.TrimSpace(req.Name) == "" {
		return "", common.NewMissingField("name")
	}
	if strings.TrimSpace(req.Phone) == "" {
		return "", common.NewMissingField("phone")
	}
	if strings.TrimSpace(req.Email) == "" {
		return "", common.NewMissingField("email")
	}

	rec := &entity.ConsentRecord{
		Email:             req.Email,
		Name:              req.Name,
		Phone:             req.Phone,
		ConsentAgreed:     req.ConsentAgreed,
		ConsentAgreedDate: s.now().Format(time.RFC3339),
	}
	if req.UserGroup != "" {
		rec.UserGroup = &req.UserGroup
	}
	if err := s.store.Put(ctx, rec); err != nil {
		return "", fmt.Errorf("submit consent: %w", err)
	}
	return req.Name + UserIDSeparator + req.Phone, nil
}

// CloseSession computes the whole-second duration from the stored consent
// time to testEndTimestamp and patches test_end (verbatim) and total_duration
// into the consent record. Nothing is written when a lookup or parse step
// fails.
func (s *Service) CloseSession(ctx context.Context, email, name, testEndTimestamp string) (int64, error) {
	rec, err := s.store.Get(ctx, email, name)
	if err != nil {
		return 0, fmt.Errorf("close session: %w", err)
	}
	if rec.ConsentAgreedDate == "" {
		return 0, &common.MissingFieldError{Field: "consent_agreed_date"}
	}

	start, err := s.parseInstant(rec.ConsentAgreedDate)
	if err != nil {
		return 0, fmt.Errorf("consent_agreed_date %q: %w", rec.ConsentAgreedDate, err)
	}
	end, err := s.parseInstant(testEndTimestamp)
	if err != nil {
		return 0, fmt.Errorf("test_end_timestamp %q: %w", testEndTimestamp, err)
	}

	total := int64(math.Round(end.Sub(start).Seconds()))
	if err := s.store.PatchSessionEnd(ctx, email, name, testEndTimestamp, total); err != nil {
		return 0, fmt.Errorf("close session: %w", err)
	}
	return total, nil
}

// parseInstant accepts RFC3339 instants (with optional fractional seconds and
// a Z or numeric offset). A timestamp without zone information is assumed to
// be UTC; that assumption is logged, not silently applied.
func (s *Service) parseInstant(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", value, time.UTC); err == nil {
		s.logger.Warnw("timestamp has no timezone, assuming UTC", "value", value)
		return t, nil
	}
	return time.Time{}, common.ErrInvalidTimestamp
}
