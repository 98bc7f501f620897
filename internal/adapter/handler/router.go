package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wobblehealth/checkin-api/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg                 *config.Config
	webhookHandler      *WebhookHandler
	conversationHandler *ConversationHandler
	forwardHandler      *ForwardHandler
	smsHandler          *SMSHandler
	authMW              echo.MiddlewareFunc
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	webhookHandler *WebhookHandler,
	conversationHandler *ConversationHandler,
	forwardHandler *ForwardHandler,
	smsHandler *SMSHandler,
	authMW echo.MiddlewareFunc,
) *Router {
	return &Router{
		cfg:                 cfg,
		webhookHandler:      webhookHandler,
		conversationHandler: conversationHandler,
		forwardHandler:      forwardHandler,
		smsHandler:          smsHandler,
		authMW:              authMW,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// Signed post-call webhook from the voice-agent provider
	e.POST("/webhook", rt.webhookHandler.HandleWebhook)
	e.GET("/webhook", rt.webhookHandler.HandleWebhookStatus)

	// Browser-facing endpoints
	if rt.authMW != nil {
		e.POST("/conversation", rt.conversationHandler.SubmitConversation, rt.authMW)
		e.GET("/conversation", rt.conversationHandler.ListConversations, rt.authMW)
	} else {
		e.POST("/conversation", rt.conversationHandler.SubmitConversation)
		e.GET("/conversation", rt.conversationHandler.ListConversations)
	}
	e.POST("/summarize", rt.conversationHandler.Summarize)
	e.POST("/forward-transcript", rt.forwardHandler.ForwardTranscript)
	e.POST("/send-sms", rt.smsHandler.SendSMS)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
