package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wobblehealth/checkin-api/errors"
	"github.com/wobblehealth/checkin-api/pkg/sms"
)

// SMSHandler dispatches check-in summaries to caregivers via SMS
type SMSHandler struct {
	client *sms.Client
	logger *zap.Logger
}

// NewSMSHandler creates a new SMS handler
func NewSMSHandler(client *sms.Client, logger *zap.Logger) *SMSHandler {
	return &SMSHandler{client: client, logger: logger}
}

// sendSMSRequest is the body for SMS dispatch
type sendSMSRequest struct {
	To        string `json:"to" validate:"required,e164"`
	ChildName string `json:"childName"`
	Summary   string `json:"summary" validate:"required"`
}

// SendSMS composes the two-line summary message and relays it to Twilio
func (h *SMSHandler) SendSMS(c echo.Context) error {
	var req sendSMSRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, err)
	}

	sid, err := h.client.SendSummary(req.To, req.ChildName, req.Summary)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrSMSSendFailed(err))
	}

	if h.logger != nil {
		h.logger.Info("✅ SMS sent", zap.String("sid", sid))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"sent": true,
		"sid":  sid,
	})
}
