package consent

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newHandlerWithStore(store *stubStore) *Handler {
	logger := zap.NewNop().Sugar()
	return NewHandler(newTestService(store), logger)
}

func postConsent(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/consent", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Submit(rec, req)
	return rec
}

func TestSubmitHandlerReturnsUserID(t *testing.T) {
	store := &stubStore{}
	h := newHandlerWithStore(store)

	rec := postConsent(t, h, `{
		"name": "kim", "phone": "01012345678", "email": "kim@example.com",
		"consent_agreed": true, "user_group": "kss"
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body SubmitResponseBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Consent recorded successfully", body.Message)
	assert.Equal(t, "kim#01012345678", body.UserID)
	assert.Equal(t, 1, store.putCalls)
}

func TestSubmitHandlerMissingPhone(t *testing.T) {
	store := &stubStore{}
	h := newHandlerWithStore(store)

	rec := postConsent(t, h, `{"name": "kim", "email": "kim@example.com"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "missing required field: phone", body["error"])
	assert.Equal(t, 0, store.putCalls)
}

func TestSubmitHandlerMalformedBody(t *testing.T) {
	h := newHandlerWithStore(&stubStore{})

	rec := postConsent(t, h, `not json`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid payload", body["error"])
}

func TestSubmitHandlerStoreFailure(t *testing.T) {
	h := newHandlerWithStore(&stubStore{putErr: assert.AnError})

	rec := postConsent(t, h, `{"name": "kim", "phone": "010", "email": "kim@example.com"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal error", body["error"])
}
