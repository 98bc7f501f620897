package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wobblehealth/checkin-api/errors"
	"github.com/wobblehealth/checkin-api/internal/usecase/checkin"
)

// ForwardHandler relays transcript payloads to a configured downstream server
type ForwardHandler struct {
	svc    *checkin.Service
	logger *zap.Logger
}

// NewForwardHandler creates a new forward handler
func NewForwardHandler(svc *checkin.Service, logger *zap.Logger) *ForwardHandler {
	return &ForwardHandler{svc: svc, logger: logger}
}

// ForwardTranscript forwards the posted payload verbatim, plus a timestamp,
// and wraps the downstream response.
func (h *ForwardHandler) ForwardTranscript(c echo.Context) error {
	var payload checkin.ForwardPayload
	if err := c.Bind(&payload); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	serverResponse, err := h.svc.ForwardTranscript(c.Request().Context(), payload)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("❌ Failed to forward transcript", zap.Error(err))
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":         true,
		"message":         "Transcript forwarded successfully",
		"conversation_id": payload.ConversationID,
		"server_response": serverResponse,
	})
}
