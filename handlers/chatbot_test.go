package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"dinebot/models"
	"dinebot/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubFulfillment struct {
	resp *models.WebhookResponse
	err  error
}

func (s *stubFulfillment) HandleFulfillment(context.Context, *models.WebhookRequest) (*models.WebhookResponse, error) {
	return s.resp, s.err
}

func webhookRouter(svc *stubFulfillment) *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.Logger = zap.NewNop()

	r := gin.New()
	r.POST("/chatbot/webhook", NewChatbotHandler(svc).WebhookHandler)
	return r
}

func postWebhook(t *testing.T, r *gin.Engine, body []byte) (*httptest.ResponseRecorder, models.WebhookResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chatbot/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var decoded models.WebhookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	return w, decoded
}

func TestWebhookReturnsEngineResponse(t *testing.T) {
	r := webhookRouter(&stubFulfillment{
		resp: &models.WebhookResponse{FulfillmentText: "Here you go."},
	})

	body, _ := json.Marshal(models.WebhookRequest{
		Session: "projects/test/agent/sessions/s1",
		QueryResult: models.WebhookQueryResult{
			Intent: models.WebhookIntent{DisplayName: "Default Welcome Intent"},
		},
	})
	w, decoded := postWebhook(t, r, body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Here you go.", decoded.FulfillmentText)
}

func TestWebhookEngineErrorStillReturns200(t *testing.T) {
	r := webhookRouter(&stubFulfillment{
		err: errors.New("restaurant search failed: connection refused"),
	})

	body, _ := json.Marshal(models.WebhookRequest{Session: "projects/test/agent/sessions/s1"})
	w, decoded := postWebhook(t, r, body)

	assert.Equal(t, http.StatusOK, w.Code, "the platform never sees a non-200")
	assert.Equal(t, "restaurant search failed: connection refused", decoded.FulfillmentText)
}

func TestWebhookMalformedBodyStillReturns200(t *testing.T) {
	r := webhookRouter(&stubFulfillment{})

	w, decoded := postWebhook(t, r, []byte("{not json"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decoded.FulfillmentText)
}
