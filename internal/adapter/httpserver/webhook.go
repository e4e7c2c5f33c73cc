package httpserver

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Ba4bes/moodpoodle/internal/domain"
	"github.com/Ba4bes/moodpoodle/internal/platform/correlation"
	"github.com/labstack/echo/v4"
)

const (
	signatureHeader = "X-Hub-Signature-256"
	eventHeader     = "X-GitHub-Event"
	deliveryHeader  = "X-GitHub-Delivery"

	maxWebhookBody = 1 << 20 // 1 MiB
)

// webhookEvent covers the fields shared by the issue_comment and issues
// payloads this endpoint cares about.
type webhookEvent struct {
	Action string `json:"action"`
	Issue  struct {
		Number int    `json:"number"`
		Title  string `json:"title"`
		Body   string `json:"body"`
		User   struct {
			Login string `json:"login"`
		} `json:"user"`
	} `json:"issue"`
	Comment struct {
		Body string `json:"body"`
		User struct {
			Login string `json:"login"`
		} `json:"user"`
	} `json:"comment"`
}

// handleWebhook verifies the delivery signature, extracts the interaction
// and hands it to the application service. GitHub only cares about the
// status code; responses to the visitor go through the notifier.
func (s *Server) handleWebhook(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	if !verifySignature(s.config.WebhookSecret, body, c.Request().Header.Get(signatureHeader)) {
		slog.Warn("Webhook signature verification failed")
		return c.NoContent(http.StatusUnauthorized)
	}

	deliveryID := c.Request().Header.Get(deliveryHeader)
	if deliveryID == "" {
		deliveryID = correlation.NewID()
	}
	ctx := correlation.WithID(c.Request().Context(), deliveryID)

	in, ok := parseInteraction(c.Request().Header.Get(eventHeader), body)
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}
	if strings.EqualFold(in.Username, s.config.Username) {
		// Our own responses come back as deliveries too; never react to them.
		return c.NoContent(http.StatusNoContent)
	}

	result, err := s.app.ProcessInteraction(ctx, in)
	if err != nil {
		slog.ErrorContext(ctx, "Interaction processing failed", "user", in.Username, "error", err)
		return c.NoContent(http.StatusInternalServerError)
	}

	slog.InfoContext(ctx, "Webhook interaction handled",
		"user", in.Username,
		"outcome", result.Outcome.String(),
		"kind", result.Kind.String())
	return c.NoContent(http.StatusAccepted)
}

// parseInteraction maps a delivery to an interaction. Issue comments carry
// the command in the comment body; freshly opened issues carry it in the
// title or body.
func parseInteraction(eventType string, body []byte) (domain.Interaction, bool) {
	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		slog.Warn("Malformed webhook payload", "error", err)
		return domain.Interaction{}, false
	}

	switch eventType {
	case "issue_comment":
		if event.Action != "created" {
			return domain.Interaction{}, false
		}
		return domain.Interaction{
			Username:    event.Comment.User.Login,
			Body:        event.Comment.Body,
			IssueNumber: event.Issue.Number,
		}, true

	case "issues":
		if event.Action != "opened" {
			return domain.Interaction{}, false
		}
		text := event.Issue.Title
		if event.Issue.Body != "" {
			text += "\n" + event.Issue.Body
		}
		return domain.Interaction{
			Username:     event.Issue.User.Login,
			Body:         text,
			IssueNumber:  event.Issue.Number,
			FromNewIssue: true,
		}, true

	default:
		return domain.Interaction{}, false
	}
}

// verifySignature checks the X-Hub-Signature-256 HMAC over the raw body.
func verifySignature(secret string, body []byte, header string) bool {
	if secret == "" || !strings.HasPrefix(header, "sha256=") {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(strings.TrimPrefix(header, "sha256=")))
}
