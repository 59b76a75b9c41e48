package handlers

import (
	"net/http"

	dineinRepo "dinebot/database/repository/dinein"
	"dinebot/models"
	"dinebot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DineinHandler serves the dine-in booking endpoints.
type DineinHandler struct {
	Repo dineinRepo.DineinRepository
}

func NewDineinHandler(repo dineinRepo.DineinRepository) *DineinHandler {
	return &DineinHandler{Repo: repo}
}

// BookHandler handles POST /api/dinein/book.
func (h *DineinHandler) BookHandler(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	booking, err := h.Repo.BookTable(c.Request.Context(), req)
	if err != nil {
		utils.GetLogger().Error("Failed to book table", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GetByIDHandler handles GET /api/dinein/booking/:id.
func (h *DineinHandler) GetByIDHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	booking, err := h.Repo.GetBookingByID(c.Request.Context(), id)
	if err != nil {
		utils.GetLogger().Error("Failed to get booking", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if booking == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	c.JSON(http.StatusOK, booking)
}

// UserBookingsHandler handles GET /api/dinein/user/:userId.
func (h *DineinHandler) UserBookingsHandler(c *gin.Context) {
	userID, ok := pathInt(c, "userId")
	if !ok {
		return
	}
	bookings, err := h.Repo.GetUserBookings(c.Request.Context(), userID)
	if err != nil {
		utils.GetLogger().Error("Failed to list user bookings", zap.Int("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// CancelHandler handles PATCH /api/dinein/cancel/:id.
func (h *DineinHandler) CancelHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	if err := h.Repo.CancelBooking(c.Request.Context(), id); err != nil {
		utils.GetLogger().Error("Failed to cancel booking", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled."})
}

// ConfirmHandler handles PATCH /api/dinein/confirm/:id.
func (h *DineinHandler) ConfirmHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	if err := h.Repo.ConfirmBooking(c.Request.Context(), id); err != nil {
		utils.GetLogger().Error("Failed to confirm booking", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking confirmed."})
}

// RestaurantBookingsHandler handles GET /api/dinein/restaurant/:restaurantId.
func (h *DineinHandler) RestaurantBookingsHandler(c *gin.Context) {
	restaurantID, ok := pathInt(c, "restaurantId")
	if !ok {
		return
	}
	bookings, err := h.Repo.GetRestaurantBookings(c.Request.Context(), restaurantID)
	if err != nil {
		utils.GetLogger().Error("Failed to list restaurant bookings", zap.Int("restaurantId", restaurantID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// SlotsHandler handles POST /api/dinein/slots.
func (h *DineinHandler) SlotsHandler(c *gin.Context) {
	var req models.SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	slots, err := h.Repo.GetAvailableTimeSlots(c.Request.Context(), req.RestaurantID, req.BookingDate)
	if err != nil {
		utils.GetLogger().Error("Failed to list available slots", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"availableSlots": slots})
}
