package handlers

import (
	"errors"
	"net/http"
	"strconv"

	restaurantRepo "dinebot/database/repository/restaurant"
	"dinebot/models"
	"dinebot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RestaurantHandler serves the restaurant read endpoints.
type RestaurantHandler struct {
	Repo restaurantRepo.RestaurantRepository
}

func NewRestaurantHandler(repo restaurantRepo.RestaurantRepository) *RestaurantHandler {
	return &RestaurantHandler{Repo: repo}
}

// GetAllHandler handles GET /api/restaurants.
func (h *RestaurantHandler) GetAllHandler(c *gin.Context) {
	list, err := h.Repo.GetAll(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("Failed to list restaurants", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetByIDHandler handles GET /api/restaurants/:id.
func (h *RestaurantHandler) GetByIDHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
		return
	}
	rest, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, restaurantRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.GetLogger().Error("Failed to get restaurant", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rest)
}

// SearchHandler handles GET /api/restaurants/search?name=...&area=...
func (h *RestaurantHandler) SearchHandler(c *gin.Context) {
	id, err := h.Repo.SearchByNameAndArea(c.Request.Context(), c.Query("name"), c.Query("area"))
	if err != nil {
		if errors.Is(err, restaurantRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.GetLogger().Error("Restaurant search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// FilterHandler handles GET /api/restaurants/filter with optional
// cuisine, area, minRating, maxCost, vegOnly, dineInOnly, homeDelivery.
func (h *RestaurantHandler) FilterHandler(c *gin.Context) {
	filter := models.RestaurantFilter{
		Cuisine:      c.Query("cuisine"),
		Area:         c.Query("area"),
		VegOnly:      c.Query("vegOnly") == "true",
		DineInOnly:   c.Query("dineInOnly") == "true",
		HomeDelivery: c.Query("homeDelivery") == "true",
	}
	if v := c.Query("minRating"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinRating = &n
		}
	}
	if v := c.Query("maxCost"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxCost = &n
		}
	}

	list, err := h.Repo.FilterAdvanced(c.Request.Context(), filter)
	if err != nil {
		utils.GetLogger().Error("Restaurant filter failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}
