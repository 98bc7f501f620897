package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wobblehealth/checkin-api/errors"
	"github.com/wobblehealth/checkin-api/internal/usecase/checkin"
)

// SignatureHeader carries the webhook signature from the voice-agent provider
const SignatureHeader = "ElevenLabs-Signature"

// recentCallCount is how many events the status endpoint exposes
const recentCallCount = 10

// WebhookHandler handles signed post-call transcription webhooks
type WebhookHandler struct {
	svc    *checkin.Service
	logger *zap.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(svc *checkin.Service, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{svc: svc, logger: logger}
}

// HandleWebhook receives a signed webhook delivery, verifies it, and relays
// the transcript for analysis. Relay failures do not fail the delivery.
func (h *WebhookHandler) HandleWebhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	event, status, err := h.svc.HandleWebhook(c.Request().Context(), body, c.Request().Header.Get(SignatureHeader))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if status == nil {
		// Unknown event type: acknowledge and drop.
		return c.JSON(http.StatusOK, map[string]interface{}{"received": true})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"received":        true,
		"conversation_id": event.Data.ConversationID,
		"status":          "processed",
		"langflow_api":    status,
		"received_at":     time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleWebhookStatus reports liveness and the most recent deliveries
func (h *WebhookHandler) HandleWebhookStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":               "webhook listening",
		"recent_calls":         h.svc.RecentEvents(recentCallCount),
		"langflow_integration": "enabled",
		"endpoint":             "/webhook",
		"methods":              []string{"GET", "POST"},
		"supported_types":      []string{"post_call_transcription"},
	})
}
