package handlers

import (
	"net/http"

	"dinebot/models"
	"dinebot/services/fulfillment"
	"dinebot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatbotHandler is the Dialogflow webhook boundary. The platform
// consuming these responses expects HTTP 200 with a text payload no
// matter what happens, so every failure path below ends in a 200 with
// a fulfillmentText.
type ChatbotHandler struct {
	Fulfillment fulfillment.Service
}

// NewChatbotHandler returns a webhook handler over the given engine.
func NewChatbotHandler(svc fulfillment.Service) *ChatbotHandler {
	return &ChatbotHandler{Fulfillment: svc}
}

const fallbackReply = "Something went wrong on our side — please try that again."

// WebhookHandler handles POST /chatbot/webhook.
func (h *ChatbotHandler) WebhookHandler(c *gin.Context) {
	logger := utils.GetLogger()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic in fulfillment", zap.Any("error", r))
			c.JSON(http.StatusOK, models.WebhookResponse{FulfillmentText: fallbackReply})
		}
	}()

	var req models.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Malformed webhook request", zap.Error(err))
		c.JSON(http.StatusOK, models.WebhookResponse{FulfillmentText: fallbackReply})
		return
	}

	resp, err := h.Fulfillment.HandleFulfillment(c.Request.Context(), &req)
	if err != nil {
		// Collaborator failures surface to the user as text, never as
		// a transport-level error.
		logger.Error("Fulfillment failed",
			zap.String("intent", req.QueryResult.Intent.DisplayName),
			zap.String("session", req.Session),
			zap.Error(err))
		c.JSON(http.StatusOK, models.WebhookResponse{FulfillmentText: err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
