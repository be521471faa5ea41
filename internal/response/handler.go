package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/suyoungkwon2/phonitale-backend/internal/common"
	"github.com/suyoungkwon2/phonitale-backend/internal/consent"
	"github.com/suyoungkwon2/phonitale-backend/internal/response/entity"
)

// Handler exposes the response submission endpoint. A final_summary event is
// routed to the consent session closer; every other page type goes to the
// recorder.
type Handler struct {
	svc      *Service
	consents *consent.Service
	logger   *zap.SugaredLogger
}

func NewHandler(svc *Service, consents *consent.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, consents: consents, logger: logger}
}

// SubmitRequestBody is the wire shape of POST /api/responses. The final three
// fields are only used when page_type is final_summary.
type SubmitRequestBody struct {
	User         string   `json:"user"`
	EnglishWord  string   `json:"english_word"`
	PageType     string   `json:"page_type"`
	RoundNumber  *int     `json:"round_number"`
	TimestampIn  *string  `json:"timestamp_in"`
	TimestampOut *string  `json:"timestamp_out"`
	Duration     *float64 `json:"duration"`
	Response     *string  `json:"response"`
	Usefulness   *float64 `json:"usefulness"`
	Coherence    *float64 `json:"coherence"`
	UserGroup    string   `json:"user_group"`

	Email            string `json:"email"`
	Name             string `json:"name"`
	TestEndTimestamp string `json:"test_end_timestamp"`
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid response payload", "err", err)
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": common.ErrInvalidPayload.Error()})
		return
	}

	if entity.PageType(req.PageType) == entity.PageFinalSummary {
		h.closeSession(w, r, req)
		return
	}

	if err := h.svc.Record(r.Context(), RecordRequest{
		User:         req.User,
		EnglishWord:  req.EnglishWord,
		PageType:     req.PageType,
		RoundNumber:  req.RoundNumber,
		TimestampIn:  req.TimestampIn,
		TimestampOut: req.TimestampOut,
		Duration:     req.Duration,
		Response:     req.Response,
		Usefulness:   req.Usefulness,
		Coherence:    req.Coherence,
		UserGroup:    req.UserGroup,
	}); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Response recorded successfully"})
}

func (h *Handler) closeSession(w http.ResponseWriter, r *http.Request, req SubmitRequestBody) {
	required := []struct{ field, value string }{
		{"email", req.Email},
		{"name", req.Name},
		{"test_end_timestamp", req.TestEndTimestamp},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": common.NewMissingField(f.field).Error()})
			return
		}
	}

	if _, err := h.consents.CloseSession(r.Context(), req.Email, req.Name, req.TestEndTimestamp); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Total duration recorded successfully"})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case common.IsMissingField(err), errors.Is(err, common.ErrInvalidTimestamp):
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, common.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "consent record not found"})
	default:
		h.logger.Errorw("response submit failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
