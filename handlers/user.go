package handlers

import (
	"errors"
	"net/http"

	userRepo "dinebot/database/repository/user"
	"dinebot/models"
	"dinebot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler serves the user CRUD endpoints.
type UserHandler struct {
	Repo userRepo.UserRepository
}

func NewUserHandler(repo userRepo.UserRepository) *UserHandler {
	return &UserHandler{Repo: repo}
}

// CreateHandler handles POST /api/users.
func (h *UserHandler) CreateHandler(c *gin.Context) {
	var body struct {
		Name  string `json:"name" binding:"required"`
		Phone string `json:"phone" binding:"required"`
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.Repo.Create(c.Request.Context(), body.Name, body.Phone, body.Email)
	if err != nil {
		utils.GetLogger().Error("Failed to create user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GetByIDHandler handles GET /api/users/:id.
func (h *UserHandler) GetByIDHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	user, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.GetLogger().Error("Failed to get user", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

// LookupHandler handles GET /api/users/lookup/:identifier (phone or email).
func (h *UserHandler) LookupHandler(c *gin.Context) {
	user, err := h.Repo.GetByPhoneOrEmail(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.GetLogger().Error("Failed to look up user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateHandler handles PUT /api/users/:id.
func (h *UserHandler) UpdateHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	var update models.UserUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.Repo.Update(c.Request.Context(), id, update)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.GetLogger().Error("Failed to update user", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteHandler handles DELETE /api/users/:id.
func (h *UserHandler) DeleteHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	if err := h.Repo.Delete(c.Request.Context(), id); err != nil {
		utils.GetLogger().Error("Failed to delete user", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// GetAllHandler handles GET /api/users.
func (h *UserHandler) GetAllHandler(c *gin.Context) {
	users, err := h.Repo.GetAll(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("Failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

// OrderHistoryHandler handles GET /api/users/:id/orders.
func (h *UserHandler) OrderHistoryHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	orders, err := h.Repo.GetOrderHistory(c.Request.Context(), id)
	if err != nil {
		utils.GetLogger().Error("Failed to get order history", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// ChatbotProfileHandler handles GET /api/users/:id/profile.
func (h *UserHandler) ChatbotProfileHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	profile, err := h.Repo.GetChatbotProfile(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.GetLogger().Error("Failed to get chatbot profile", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}
