package consent

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/suyoungkwon2/phonitale-backend/internal/common"
)

// Handler exposes the consent submission endpoint.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// SubmitRequestBody is the wire shape of POST /api/consent.
type SubmitRequestBody struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	ConsentAgreed bool   `json:"consent_agreed"`
	UserGroup     string `json:"user_group"`
}

// SubmitResponseBody acknowledges a recorded consent and hands back the user
// key for subsequent response submissions.
type SubmitResponseBody struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid consent payload", "err", err)
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": common.ErrInvalidPayload.Error()})
		return
	}

	userID, err := h.svc.Submit(r.Context(), SubmitRequest{
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		ConsentAgreed: req.ConsentAgreed,
		UserGroup:     req.UserGroup,
	})
	if err != nil {
		if common.IsMissingField(err) {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		h.logger.Errorw("consent submit failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	h.writeJSON(w, http.StatusOK, SubmitResponseBody{
		Message: "Consent recorded successfully",
		UserID:  userID,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
