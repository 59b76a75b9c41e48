package routes

import (
	"net/http"
	"time"

	"dinebot/handlers"
	"dinebot/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups every route handler the server mounts.
type Handlers struct {
	Chatbot    *handlers.ChatbotHandler
	Restaurant *handlers.RestaurantHandler
	Menu       *handlers.MenuHandler
	Order      *handlers.OrderHandler
	Dinein     *handlers.DineinHandler
	User       *handlers.UserHandler
}

// RegisterRoutes mounts all endpoints on the router.
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterChatbotRoutes(r, h)
	RegisterRestaurantRoutes(r, h)
	RegisterMenuRoutes(r, h)
	RegisterOrderRoutes(r, h)
	RegisterDineinRoutes(r, h)
	RegisterUserRoutes(r, h)
	RegisterHealthRoute(r)
}

// RegisterChatbotRoutes registers the fulfillment webhook entry point.
func RegisterChatbotRoutes(r *gin.Engine, h *Handlers) {
	r.POST("/chatbot/webhook", h.Chatbot.WebhookHandler)
}

// RegisterRestaurantRoutes registers restaurant read endpoints.
func RegisterRestaurantRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/restaurants")
	{
		api.GET("", h.Restaurant.GetAllHandler)
		api.GET("/filter", h.Restaurant.FilterHandler)
		api.GET("/search", h.Restaurant.SearchHandler)
		api.GET("/:id", h.Restaurant.GetByIDHandler)
	}
}

// RegisterMenuRoutes registers menu endpoints.
func RegisterMenuRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/menus")
	{
		api.GET("", h.Menu.GetAllHandler)
		api.POST("", h.Menu.AddHandler)
		api.GET("/restaurant/:rid", h.Menu.GetByRestaurantHandler)
		api.GET("/restaurant/:rid/veg", h.Menu.GetVegHandler)
		api.GET("/restaurant/:rid/nonveg", h.Menu.GetNonVegHandler)
		api.GET("/restaurant/:rid/category", h.Menu.GetByCategoryHandler)
		api.GET("/restaurant/:rid/search", h.Menu.SearchHandler)
		api.GET("/restaurant/:rid/price", h.Menu.PriceRangeHandler)
		api.GET("/restaurant/:rid/categories", h.Menu.CategoriesHandler)
		api.GET("/:id", h.Menu.GetByIDHandler)
	}
}

// RegisterOrderRoutes registers order endpoints.
func RegisterOrderRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/orders")
	{
		api.POST("", h.Order.PlaceHandler)
		api.PATCH("/cancel/:id", h.Order.CancelHandler)
		api.PATCH("/:id/status", h.Order.UpdateStatusHandler)
		api.GET("/user/:userId", h.Order.ByUserHandler)
		api.GET("/restaurant/:restaurantId", h.Order.ByRestaurantHandler)
		api.GET("/restaurant/:restaurantId/summary", h.Order.SummaryHandler)
		api.GET("/:id", h.Order.TrackHandler)
	}
}

// RegisterDineinRoutes registers dine-in booking endpoints.
func RegisterDineinRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/dinein")
	{
		api.POST("/book", h.Dinein.BookHandler)
		api.POST("/slots", h.Dinein.SlotsHandler)
		api.GET("/booking/:id", h.Dinein.GetByIDHandler)
		api.GET("/user/:userId", h.Dinein.UserBookingsHandler)
		api.PATCH("/cancel/:id", h.Dinein.CancelHandler)
		api.PATCH("/confirm/:id", h.Dinein.ConfirmHandler)
		api.GET("/restaurant/:restaurantId", h.Dinein.RestaurantBookingsHandler)
	}
}

// RegisterUserRoutes registers user CRUD endpoints.
func RegisterUserRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/users")
	{
		api.POST("", h.User.CreateHandler)
		api.GET("", h.User.GetAllHandler)
		api.GET("/lookup/:identifier", h.User.LookupHandler)
		api.GET("/:id", h.User.GetByIDHandler)
		api.PUT("/:id", h.User.UpdateHandler)
		api.DELETE("/:id", h.User.DeleteHandler)
		api.GET("/:id/orders", h.User.OrderHistoryHandler)
		api.GET("/:id/profile", h.User.ChatbotProfileHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}
