package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lala-site-api/internal/config"
	"lala-site-api/services"
)

type recordingMailer struct {
	sent []services.Email
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg services.Email) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func newContactRouter(cfg *config.Config, mailer services.Mailer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupContactRoutes(router, cfg, services.NewContactService(cfg, mailer, nil))
	return router
}

func postContact(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validBody() string {
	return `{"name":"山田 太郎","email":"taro@example.com","message":"よろしくお願いします。","replyMethod":"either"}`
}

func relayConfig() *config.Config {
	return &config.Config{
		ResendAPIKey:     "re_test_key",
		ContactToEmail:   "owner@example.com",
		ContactFromEmail: "noreply@example.com",
	}
}

func TestContactRelaySuccess(t *testing.T) {
	mailer := &recordingMailer{}
	router := newContactRouter(relayConfig(), mailer)

	w := postContact(router, validBody())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	require.Len(t, mailer.sent, 2)
	assert.Contains(t, mailer.sent[1].Text, "電話番号: 未入力")
	assert.Contains(t, mailer.sent[1].Text, "ご希望プラン: 鑑定時に相談")
}

func TestContactRelayMissingConfiguration(t *testing.T) {
	mailer := &recordingMailer{}
	router := newContactRouter(&config.Config{}, mailer)

	w := postContact(router, validBody())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Missing email configuration."}`, w.Body.String())
	assert.Empty(t, mailer.sent)
}

func TestContactRelayMissingRequiredFields(t *testing.T) {
	bodies := []string{
		`{"email":"taro@example.com","message":"test","replyMethod":"email"}`,
		`{"name":"taro","message":"test","replyMethod":"email"}`,
		`{"name":"taro","email":"taro@example.com","replyMethod":"email"}`,
		`{"name":"taro","email":"taro@example.com","message":"test"}`,
		`{"name":"taro","email":"taro@example.com","message":"test","replyMethod":"fax"}`,
		`not json`,
	}

	for _, body := range bodies {
		mailer := &recordingMailer{}
		router := newContactRouter(relayConfig(), mailer)

		w := postContact(router, body)

		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
		assert.JSONEq(t, `{"error":"Invalid request payload."}`, w.Body.String())
		assert.Empty(t, mailer.sent)
	}
}

func TestContactRelayMalformedButPresentEmailPasses(t *testing.T) {
	// The server check is presence-only; format validation lives in the
	// browser form.
	mailer := &recordingMailer{}
	router := newContactRouter(relayConfig(), mailer)

	w := postContact(router, `{"name":"taro","email":"not-an-address","message":"test","replyMethod":"email"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, mailer.sent, 2)
}

func TestContactRelayDispatchFailure(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("provider down")}
	router := newContactRouter(relayConfig(), mailer)

	w := postContact(router, validBody())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to send email."}`, w.Body.String())
}

func TestContactRelayDeterministicResubmission(t *testing.T) {
	mailer := &recordingMailer{}
	router := newContactRouter(relayConfig(), mailer)

	for i := 0; i < 3; i++ {
		w := postContact(router, validBody())
		assert.Equal(t, http.StatusOK, w.Code)
	}
	// No deduplication: every submission dispatches both emails again.
	assert.Len(t, mailer.sent, 6)
}
