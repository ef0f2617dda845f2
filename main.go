package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fixly/config"
	"fixly/database"
	bookingRepoPkg "fixly/database/repository/booking"
	catalogRepoPkg "fixly/database/repository/catalog"
	providerRepoPkg "fixly/database/repository/provider"
	reviewRepoPkg "fixly/database/repository/review"
	userRepoPkg "fixly/database/repository/user"
	"fixly/handlers"
	"fixly/middleware"
	"fixly/models"
	"fixly/routes"
	"fixly/services/booking"
	"fixly/services/provider"
	"fixly/services/review"
	"fixly/services/stats"
	"fixly/services/user"
	"fixly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// defaultCategories is the reference data seeded on startup.
var defaultCategories = []models.ServiceCategory{
	{ID: "cat-plumber", Name: "Plumber", Description: "Pipes, drains and fixtures", BasePrice: 500},
	{ID: "cat-electrician", Name: "Electrician", Description: "Wiring, lighting and repairs", BasePrice: 600},
	{ID: "cat-carpenter", Name: "Carpenter", Description: "Furniture and woodwork", BasePrice: 450},
	{ID: "cat-painter", Name: "Painter", Description: "Interior and exterior painting", BasePrice: 400},
	{ID: "cat-cleaner", Name: "Cleaner", Description: "Home and office cleaning", BasePrice: 300},
	{ID: "cat-gardener", Name: "Gardener", Description: "Lawn and garden care", BasePrice: 350},
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	// Repositories.
	bookings := bookingRepoPkg.NewMongoBookingRepo()
	reviews := reviewRepoPkg.NewMongoReviewRepo()
	providers := providerRepoPkg.NewMongoProviderRepo()
	users := userRepoPkg.NewMongoUserRepo()
	catalog := catalogRepoPkg.NewMongoCatalogRepo()

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	if err := catalog.Seed(seedCtx, defaultCategories); err != nil {
		logger.Sugar().Fatalf("main: failed to seed service categories: %v", err)
	}
	cancelSeed()

	// Services.
	providerService := &provider.DefaultProviderService{
		Repo:     providers,
		Bookings: bookings,
		Cache:    utils.GetCacheClient(),
		Logger:   logger,
	}
	aggregator := stats.NewDefaultAggregator(providers, reviews, providerService, logger)
	bookingService := booking.NewDefaultBookingService(bookings, users, catalog, aggregator, logger)
	reviewService := &review.DefaultReviewService{
		Reviews:  reviews,
		Bookings: bookings,
		Stats:    aggregator,
		Logger:   logger,
	}
	userService := &user.DefaultUserService{
		Repo:      users,
		Providers: providers,
		AuthCache: utils.GetAuthCacheClient(),
		Logger:    logger,
	}

	hb := &handlers.HandlerBundle{
		BookingSvc:  bookingService,
		ReviewSvc:   reviewService,
		ProviderSvc: providerService,
		UserSvc:     userService,
		Catalog:     catalog,
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	routes.RegisterRoutes(router, hb)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", zap.String("port", config.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Warn("mongo disconnect failed", zap.Error(err))
	}
}
