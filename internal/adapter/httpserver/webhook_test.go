package httpserver

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/Ba4bes/moodpoodle/internal/domain"
	"github.com/Ba4bes/moodpoodle/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "hunter2"

type stubApp struct {
	interactions []domain.Interaction
	result       *domain.InteractionResult
	err          error
	statusErr    error
}

func (s *stubApp) Refresh(_ context.Context) (*domain.MoodView, error) { return &domain.MoodView{}, nil }

func (s *stubApp) ProcessInteraction(_ context.Context, in domain.Interaction) (*domain.InteractionResult, error) {
	s.interactions = append(s.interactions, in)
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	return &domain.InteractionResult{Outcome: domain.OutcomeAccepted, Kind: domain.CommandPet}, nil
}

func (s *stubApp) ResolveCooldown(_ context.Context) (bool, error) { return false, nil }

func (s *stubApp) Render(_ context.Context) (*domain.MoodView, error) { return &domain.MoodView{}, nil }

func (s *stubApp) Status(_ context.Context) (*domain.Document, error) {
	if s.statusErr != nil {
		return nil, s.statusErr
	}
	return domain.NewDocument(time.Now()), nil
}

func newTestServer(app *stubApp) *Server {
	cfg := &config.Config{
		Username:      "ba4bes",
		Port:          "8080",
		WebhookSecret: testSecret,
	}
	return NewServer(cfg, app, http.NotFoundHandler())
}

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func deliver(t *testing.T, srv *Server, event string, body []byte, signature string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/webhooks/github", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(eventHeader, event)
	req.Header.Set(deliveryHeader, "d1a2b3c4")
	if signature != "" {
		req.Header.Set(signatureHeader, signature)
	}

	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func commentPayload(login, body string, issue int) []byte {
	return []byte(`{
		"action": "created",
		"issue": {"number": ` + strconv.Itoa(issue) + `},
		"comment": {"body": "` + body + `", "user": {"login": "` + login + `"}}
	}`)
}

func TestWebhookAcceptsSignedComment(t *testing.T) {
	app := &stubApp{}
	srv := newTestServer(app)
	body := commentPayload("octocat", "!pet", 7)

	rec := deliver(t, srv, "issue_comment", body, sign(testSecret, body))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, app.interactions, 1)
	assert.Equal(t, "octocat", app.interactions[0].Username)
	assert.Equal(t, "!pet", app.interactions[0].Body)
	assert.Equal(t, 7, app.interactions[0].IssueNumber)
	assert.False(t, app.interactions[0].FromNewIssue)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	app := &stubApp{}
	srv := newTestServer(app)
	body := commentPayload("octocat", "!pet", 7)

	tests := []struct {
		name      string
		signature string
	}{
		{"missing", ""},
		{"wrong secret", sign("not-the-secret", body)},
		{"wrong scheme", "sha1=deadbeef"},
		{"garbage", "sha256=zzzz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := deliver(t, srv, "issue_comment", body, tt.signature)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
	assert.Empty(t, app.interactions, "unverified deliveries never reach the app")
}

func TestWebhookTamperedBodyFailsVerification(t *testing.T) {
	app := &stubApp{}
	srv := newTestServer(app)
	body := commentPayload("octocat", "!pet", 7)
	signature := sign(testSecret, body)
	tampered := commentPayload("octocat", "!feed", 7)

	rec := deliver(t, srv, "issue_comment", tampered, signature)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWebhookIgnoresOwnComments(t *testing.T) {
	app := &stubApp{}
	srv := newTestServer(app)
	body := commentPayload("Ba4bes", "!pet", 7)

	rec := deliver(t, srv, "issue_comment", body, sign(testSecret, body))

	assert.Equal(t, http.StatusNoContent, rec.Code, "own-login match is case insensitive")
	assert.Empty(t, app.interactions)
}

func TestWebhookIgnoresIrrelevantEvents(t *testing.T) {
	app := &stubApp{}
	srv := newTestServer(app)

	tests := []struct {
		name  string
		event string
		body  []byte
	}{
		{"edited comment", "issue_comment", []byte(`{"action":"edited","issue":{"number":7},"comment":{"body":"!pet","user":{"login":"octocat"}}}`)},
		{"closed issue", "issues", []byte(`{"action":"closed","issue":{"number":7,"title":"!pet","user":{"login":"octocat"}}}`)},
		{"other event type", "push", []byte(`{}`)},
		{"malformed payload", "issue_comment", []byte(`{not json`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := deliver(t, srv, tt.event, tt.body, sign(testSecret, tt.body))
			assert.Equal(t, http.StatusNoContent, rec.Code)
		})
	}
	assert.Empty(t, app.interactions)
}

func TestWebhookOpenedIssueBecomesInteraction(t *testing.T) {
	app := &stubApp{}
	srv := newTestServer(app)
	body := []byte(`{
		"action": "opened",
		"issue": {
			"number": 12,
			"title": "!feed",
			"body": "the poodle looks hungry",
			"user": {"login": "hubber"}
		}
	}`)

	rec := deliver(t, srv, "issues", body, sign(testSecret, body))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, app.interactions, 1)
	assert.Equal(t, "hubber", app.interactions[0].Username)
	assert.Equal(t, "!feed\nthe poodle looks hungry", app.interactions[0].Body)
	assert.Equal(t, 12, app.interactions[0].IssueNumber)
	assert.True(t, app.interactions[0].FromNewIssue)
}

func TestWebhookAppFailure(t *testing.T) {
	app := &stubApp{err: errors.New("state corrupted")}
	srv := newTestServer(app)
	body := commentPayload("octocat", "!pet", 7)

	rec := deliver(t, srv, "issue_comment", body, sign(testSecret, body))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestVerifySignatureRequiresSecret(t *testing.T) {
	body := []byte("payload")
	assert.False(t, verifySignature("", body, sign("", body)),
		"empty secret never verifies")
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(&stubApp{})

	for _, path := range []string{"/health/live", "/health/ready", "/version"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.echo.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestReadinessFailsWithoutState(t *testing.T) {
	srv := newTestServer(&stubApp{statusErr: domain.ErrStateMissing})

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
