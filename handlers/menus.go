package handlers

import (
	"errors"
	"net/http"
	"strconv"

	menuRepo "dinebot/database/repository/menu"
	"dinebot/models"
	"dinebot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MenuHandler serves the menu endpoints.
type MenuHandler struct {
	Repo menuRepo.MenuRepository
}

func NewMenuHandler(repo menuRepo.MenuRepository) *MenuHandler {
	return &MenuHandler{Repo: repo}
}

func pathInt(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return n, true
}

// GetAllHandler handles GET /api/menus.
func (h *MenuHandler) GetAllHandler(c *gin.Context) {
	items, err := h.Repo.GetAll(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("Failed to list menus", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetByIDHandler handles GET /api/menus/:id.
func (h *MenuHandler) GetByIDHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	item, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, menuRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.GetLogger().Error("Failed to get menu item", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

// listForRestaurant wraps the common "items for restaurant rid" shape.
func (h *MenuHandler) listForRestaurant(c *gin.Context, fetch func(int) ([]models.MenuItem, error)) {
	rid, ok := pathInt(c, "rid")
	if !ok {
		return
	}
	items, err := fetch(rid)
	if err != nil {
		utils.GetLogger().Error("Failed to list menu items", zap.Int("restaurantId", rid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetByRestaurantHandler handles GET /api/menus/restaurant/:rid.
func (h *MenuHandler) GetByRestaurantHandler(c *gin.Context) {
	h.listForRestaurant(c, func(rid int) ([]models.MenuItem, error) {
		return h.Repo.GetByRestaurantID(c.Request.Context(), rid)
	})
}

// GetVegHandler handles GET /api/menus/restaurant/:rid/veg.
func (h *MenuHandler) GetVegHandler(c *gin.Context) {
	h.listForRestaurant(c, func(rid int) ([]models.MenuItem, error) {
		return h.Repo.GetVegItems(c.Request.Context(), rid)
	})
}

// GetNonVegHandler handles GET /api/menus/restaurant/:rid/nonveg.
func (h *MenuHandler) GetNonVegHandler(c *gin.Context) {
	h.listForRestaurant(c, func(rid int) ([]models.MenuItem, error) {
		return h.Repo.GetNonVegItems(c.Request.Context(), rid)
	})
}

// GetByCategoryHandler handles GET /api/menus/restaurant/:rid/category?category=...
func (h *MenuHandler) GetByCategoryHandler(c *gin.Context) {
	h.listForRestaurant(c, func(rid int) ([]models.MenuItem, error) {
		return h.Repo.GetByCategory(c.Request.Context(), rid, c.Query("category"))
	})
}

// SearchHandler handles GET /api/menus/restaurant/:rid/search?keyword=...
func (h *MenuHandler) SearchHandler(c *gin.Context) {
	h.listForRestaurant(c, func(rid int) ([]models.MenuItem, error) {
		return h.Repo.SearchItemsByName(c.Request.Context(), rid, c.Query("keyword"))
	})
}

// PriceRangeHandler handles GET /api/menus/restaurant/:rid/price?min=0&max=100.
func (h *MenuHandler) PriceRangeHandler(c *gin.Context) {
	min, _ := strconv.ParseFloat(c.Query("min"), 64)
	max, _ := strconv.ParseFloat(c.Query("max"), 64)
	h.listForRestaurant(c, func(rid int) ([]models.MenuItem, error) {
		return h.Repo.GetItemsByPriceRange(c.Request.Context(), rid, min, max)
	})
}

// CategoriesHandler handles GET /api/menus/restaurant/:rid/categories.
func (h *MenuHandler) CategoriesHandler(c *gin.Context) {
	rid, ok := pathInt(c, "rid")
	if !ok {
		return
	}
	categories, err := h.Repo.GetCategoriesByRestaurant(c.Request.Context(), rid)
	if err != nil {
		utils.GetLogger().Error("Failed to list categories", zap.Int("restaurantId", rid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// AddHandler handles POST /api/menus.
func (h *MenuHandler) AddHandler(c *gin.Context) {
	var item models.NewMenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.Repo.AddMenuItem(c.Request.Context(), item)
	if err != nil {
		utils.GetLogger().Error("Failed to add menu item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}
