package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/suyoungkwon2/phonitale-backend/internal/common"
	"github.com/suyoungkwon2/phonitale-backend/internal/consent"
	consententity "github.com/suyoungkwon2/phonitale-backend/internal/consent/entity"
	"github.com/suyoungkwon2/phonitale-backend/internal/response"
	responseentity "github.com/suyoungkwon2/phonitale-backend/internal/response/entity"
	"github.com/suyoungkwon2/phonitale-backend/internal/word"
	wordentity "github.com/suyoungkwon2/phonitale-backend/internal/word/entity"
)

type consentStub struct {
	record *consententity.ConsentRecord
}

func (s *consentStub) Put(ctx context.Context, rec *consententity.ConsentRecord) error {
	cp := *rec
	s.record = &cp
	return nil
}

func (s *consentStub) Get(ctx context.Context, email, name string) (*consententity.ConsentRecord, error) {
	if s.record == nil {
		return nil, common.ErrNotFound
	}
	cp := *s.record
	return &cp, nil
}

func (s *consentStub) PatchSessionEnd(ctx context.Context, email, name, testEnd string, totalDuration int64) error {
	return nil
}

type responseStub struct{ calls int }

func (s *responseStub) Apply(ctx context.Context, user, englishWord string, plan []responseentity.Assignment) error {
	s.calls++
	return nil
}

type wordStub struct{ words []wordentity.Word }

func (s *wordStub) Insert(ctx context.Context, w wordentity.Word) error { return nil }

func (s *wordStub) Sample(ctx context.Context, n int) ([]wordentity.Word, error) {
	if n < len(s.words) {
		return s.words[:n], nil
	}
	return s.words, nil
}

func newTestHandler() http.Handler {
	logger := zap.NewNop().Sugar()
	consentSvc := consent.NewService(&consentStub{}, logger)
	responseSvc := response.NewService(&responseStub{}, logger)
	wordSvc := word.NewService(&wordStub{words: []wordentity.Word{{English: "apple", Korean: "사과"}}}, logger)

	return RegisterRoutes(logger,
		consent.NewHandler(consentSvc, logger),
		response.NewHandler(responseSvc, consentSvc, logger),
		word.NewHandler(wordSvc, logger),
		nil,
	)
}

func TestRouterHealth(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRouterCORSHeadersOnEveryResponse(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/consent", strings.NewReader(`{}`)))

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestRouterPreflight(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/responses", nil))

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterUnknownAPIPath(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not found", body["error"])
}

func TestRouterWrongMethod(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/consent", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not found", body["error"])
}

func TestRouterConsentFlow(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/consent",
		strings.NewReader(`{"name": "kim", "phone": "010", "email": "kim@example.com"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "kim#010", body["userId"])
}

func TestRouterWordSample(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/words?count=1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var words []wordentity.Word
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &words))
	require.Len(t, words, 1)
	assert.Equal(t, "apple", words[0].English)
}

func TestRouterRequestIDHeader(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
