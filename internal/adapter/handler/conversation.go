package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wobblehealth/checkin-api/errors"
	"github.com/wobblehealth/checkin-api/internal/domain/entities"
	"github.com/wobblehealth/checkin-api/internal/usecase/checkin"
)

// ConversationHandler handles browser-submitted transcripts
type ConversationHandler struct {
	svc    *checkin.Service
	logger *zap.Logger
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(svc *checkin.Service, logger *zap.Logger) *ConversationHandler {
	return &ConversationHandler{svc: svc, logger: logger}
}

// submitConversationRequest is the body posted by the browser at call end
type submitConversationRequest struct {
	Transcript []entities.TranscriptTurn `json:"transcript" validate:"required,min=1"`
}

// summarizeRequest carries a raw transcript string for the summarize flow
type summarizeRequest struct {
	Transcript string `json:"transcript" validate:"required"`
}

// SubmitConversation stores the client-buffered transcript for the
// authenticated user and relays it for analysis.
func (h *ConversationHandler) SubmitConversation(c echo.Context) error {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var req submitConversationRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.svc.SubmitTranscript(c.Request().Context(), userID, req.Transcript)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"stored":          result.Stored,
		"conversation_id": result.ConversationID,
		"langflow_api":    result.Langflow,
		"received_at":     time.Now().UTC().Format(time.RFC3339),
	})
}

// historyLimit caps how many stored conversations a listing returns
const historyLimit = 20

// ListConversations returns the authenticated user's stored conversations,
// newest first.
func (h *ConversationHandler) ListConversations(c echo.Context) error {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	conversations, err := h.svc.History(c.Request().Context(), userID, historyLimit)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"conversations": conversations,
		"count":         len(conversations),
	})
}

// Summarize runs a raw transcript through the analysis flow and returns the
// generated summary.
func (h *ConversationHandler) Summarize(c echo.Context) error {
	var req summarizeRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, err)
	}

	summary, err := h.svc.Summarize(c.Request().Context(), req.Transcript)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"summary": summary})
}
