package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dinebot/config"
	"dinebot/database"
	dineinRepoPkg "dinebot/database/repository/dinein"
	menuRepoPkg "dinebot/database/repository/menu"
	orderRepoPkg "dinebot/database/repository/order"
	restaurantRepoPkg "dinebot/database/repository/restaurant"
	userRepoPkg "dinebot/database/repository/user"
	"dinebot/handlers"
	"dinebot/middleware"
	"dinebot/routes"
	"dinebot/services/fulfillment"
	"dinebot/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	defer database.CloseDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	restaurantRepo := restaurantRepoPkg.NewCachedRestaurantRepo(
		restaurantRepoPkg.NewPostgresRestaurantRepo(database.DB),
		utils.GetCacheClient(),
		utils.SearchCacheTTL(),
		logger,
	)
	menuRepo := menuRepoPkg.NewPostgresMenuRepo(database.DB)
	orderRepo := orderRepoPkg.NewPostgresOrderRepo(database.DB)
	dineinRepo := dineinRepoPkg.NewPostgresDineinRepo(database.DB)
	userRepo := userRepoPkg.NewPostgresUserRepo(database.DB)

	// fulfillment engine.
	fulfillmentSvc := fulfillment.NewDefaultFulfillmentService(
		restaurantRepo, menuRepo, orderRepo, dineinRepo, logger)

	// handlers.
	handlerSet := &routes.Handlers{
		Chatbot:    handlers.NewChatbotHandler(fulfillmentSvc),
		Restaurant: handlers.NewRestaurantHandler(restaurantRepo),
		Menu:       handlers.NewMenuHandler(menuRepo),
		Order:      handlers.NewOrderHandler(orderRepo),
		Dinein:     handlers.NewDineinHandler(dineinRepo),
		User:       handlers.NewUserHandler(userRepo),
	}
	routes.RegisterRoutes(router, handlerSet)

	utils.StartHealthMonitor(database.DB, utils.GetCacheClient())

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
