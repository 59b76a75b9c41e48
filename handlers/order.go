package handlers

import (
	"errors"
	"net/http"

	orderRepo "dinebot/database/repository/order"
	"dinebot/models"
	"dinebot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OrderHandler serves the order endpoints.
type OrderHandler struct {
	Repo orderRepo.OrderRepository
}

func NewOrderHandler(repo orderRepo.OrderRepository) *OrderHandler {
	return &OrderHandler{Repo: repo}
}

// PlaceHandler handles POST /api/orders.
func (h *OrderHandler) PlaceHandler(c *gin.Context) {
	var body struct {
		UserID       int                `json:"user_id" binding:"required"`
		RestaurantID int                `json:"restaurant_id" binding:"required"`
		Items        []models.OrderLine `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	receipt, err := h.Repo.PlaceOrder(c.Request.Context(), body.UserID, body.RestaurantID, body.Items)
	if err != nil {
		if errors.Is(err, orderRepo.ErrDishNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.GetLogger().Error("Failed to place order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

// TrackHandler handles GET /api/orders/:id.
func (h *OrderHandler) TrackHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	summary, err := h.Repo.TrackOrder(c.Request.Context(), id)
	if err != nil {
		utils.GetLogger().Error("Failed to track order", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if summary == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// CancelHandler handles PATCH /api/orders/cancel/:id.
func (h *OrderHandler) CancelHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	if err := h.Repo.CancelOrder(c.Request.Context(), id); err != nil {
		if errors.Is(err, orderRepo.ErrNotCancellable) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		utils.GetLogger().Error("Failed to cancel order", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled."})
}

// UpdateStatusHandler handles PATCH /api/orders/:id/status.
func (h *OrderHandler) UpdateStatusHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	var body struct {
		NewStatus string `json:"newStatus" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Repo.UpdateStatus(c.Request.Context(), id, body.NewStatus); err != nil {
		utils.GetLogger().Error("Failed to update order status", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated to " + body.NewStatus})
}

// ByUserHandler handles GET /api/orders/user/:userId.
func (h *OrderHandler) ByUserHandler(c *gin.Context) {
	userID, ok := pathInt(c, "userId")
	if !ok {
		return
	}
	orders, err := h.Repo.GetOrdersByUser(c.Request.Context(), userID)
	if err != nil {
		utils.GetLogger().Error("Failed to list user orders", zap.Int("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// ByRestaurantHandler handles GET /api/orders/restaurant/:restaurantId.
func (h *OrderHandler) ByRestaurantHandler(c *gin.Context) {
	restaurantID, ok := pathInt(c, "restaurantId")
	if !ok {
		return
	}
	orders, err := h.Repo.GetOrdersByRestaurant(c.Request.Context(), restaurantID)
	if err != nil {
		utils.GetLogger().Error("Failed to list restaurant orders", zap.Int("restaurantId", restaurantID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// SummaryHandler handles GET /api/orders/restaurant/:restaurantId/summary.
func (h *OrderHandler) SummaryHandler(c *gin.Context) {
	restaurantID, ok := pathInt(c, "restaurantId")
	if !ok {
		return
	}
	summary, err := h.Repo.GetSalesSummary(c.Request.Context(), restaurantID)
	if err != nil {
		utils.GetLogger().Error("Failed to get sales summary", zap.Int("restaurantId", restaurantID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}
