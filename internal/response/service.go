package response

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/suyoungkwon2/phonitale-backend/internal/common"
	"github.com/suyoungkwon2/phonitale-backend/internal/response/entity"
	"github.com/suyoungkwon2/phonitale-backend/pkg/utilities"
)

// Store abstracts the persistence operation the recorder needs.
type Store interface {
	Apply(ctx context.Context, user, englishWord string, plan []entity.Assignment) error
}

// RecordRequest carries one page event for a (user, english_word) key. Pointer
// fields distinguish "absent" from zero: a zero duration is a valid value and
// must be written.
type RecordRequest struct {
	User         string
	EnglishWord  string
	PageType     string
	RoundNumber  *int
	TimestampIn  *string
	TimestampOut *string
	Duration     *float64
	Response     *string
	Usefulness   *float64
	Coherence    *float64
	UserGroup    string
}

// Service merges page events into per-(user, word) response records.
type Service struct {
	store  Store
	logger *zap.SugaredLogger
	now    func() time.Time
	idGen  func() string
}

func NewService(store Store, logger *zap.SugaredLogger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		idGen:  utilities.NewRecordID,
	}
}

// Record validates the key fields, builds the column update plan for the
// event's page type and applies it as one atomic upsert.
func (s *Service) Record(ctx context.Context, req RecordRequest) error {
	if strings.TrimSpace(req.User) == "" {
		return common.NewMissingField("user")
	}
	if strings.TrimSpace(req.EnglishWord) == "" {
		return common.NewMissingField("english_word")
	}

	plan := s.buildPlan(req)
	if err := s.store.Apply(ctx, req.User, req.EnglishWord, plan); err != nil {
		return fmt.Errorf("record response: %w", err)
	}
	return nil
}

func (s *Service) buildPlan(req RecordRequest) []entity.Assignment {
	// id and round_number are write-once: the first event for a key fixes them
	plan := []entity.Assignment{
		{Column: "id", Value: s.idGen(), IfAbsent: true},
	}
	if req.RoundNumber != nil {
		plan = append(plan, entity.Assignment{Column: "round_number", Value: *req.RoundNumber, IfAbsent: true})
	}
	if req.UserGroup != "" {
		plan = append(plan, entity.Assignment{Column: "user_group", Value: req.UserGroup})
	}

	pt := entity.PageType(req.PageType)
	if pt == entity.PageSurvey {
		// survey time is stamped server-side; client-supplied times are ignored
		plan = append(plan, entity.Assignment{Column: "timestamp_survey", Value: s.now().Format(time.RFC3339)})
		if req.Usefulness != nil {
			plan = append(plan, entity.Assignment{Column: "usefulness", Value: *req.Usefulness})
		}
		if req.Coherence != nil {
			plan = append(plan, entity.Assignment{Column: "coherence", Value: *req.Coherence})
		}
		return plan
	}

	cols, ok := entity.StudyPages[pt]
	if !ok {
		s.logger.Warnw("unhandled page type, recording key fields only",
			"page_type", req.PageType, "user", req.User, "english_word", req.EnglishWord)
		return plan
	}

	if req.TimestampIn != nil {
		plan = append(plan, entity.Assignment{Column: cols.TimestampIn, Value: *req.TimestampIn})
	}
	if req.TimestampOut != nil {
		plan = append(plan, entity.Assignment{Column: cols.TimestampOut, Value: *req.TimestampOut})
	}
	if req.Duration != nil {
		plan = append(plan, entity.Assignment{Column: cols.Duration, Value: *req.Duration})
	}
	if cols.Response != "" {
		answer := "N/A"
		if req.Response != nil {
			answer = *req.Response
		}
		plan = append(plan, entity.Assignment{Column: cols.Response, Value: answer})
	}
	return plan
}
