package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cleanhaven/config"
	"cleanhaven/cron"
	"cleanhaven/database"
	"cleanhaven/database/repository"
	"cleanhaven/handlers"
	"cleanhaven/middleware"
	"cleanhaven/routes"
	"cleanhaven/services/booking"
	customerSvc "cleanhaven/services/customer"
	"cleanhaven/services/notification"
	"cleanhaven/services/payment"
	"cleanhaven/services/tasks"
	"cleanhaven/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Repositories.
	bookingRepo := repository.NewMongoBookingRepo()
	discountRepo := repository.NewMongoDiscountRepo()
	pricingRepo := repository.NewMongoPricingRepo(utils.GetPricingCacheClient())
	customerRepo := repository.NewMongoCustomerRepo()

	// Services.
	notificationService, err := notification.NewDefaultNotificationService(customerRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}
	reminderService := tasks.NewReminderService()
	defer reminderService.Close()

	bookingService := &booking.DefaultBookingService{
		Repo:      bookingRepo,
		Drafts:    &booking.RedisDraftStore{Client: utils.GetDraftCacheClient()},
		Discounts: &booking.DefaultDiscountService{Repo: discountRepo},
		Pricing:   pricingRepo,
		Gateway:   payment.NewPaystackClient(),
		Notifier:  notificationService,
		Reminders: reminderService,
	}

	customerService := &customerSvc.DefaultCustomerService{
		Repo:     customerRepo,
		Bookings: bookingRepo,
	}

	// Handlers.
	bookingHandler := &handlers.BookingHandler{Svc: bookingService, Logger: logger}
	customerHandler := &handlers.CustomerHandler{Svc: customerService, Logger: logger}

	// Routes.
	routes.RegisterBookingRoutes(router, bookingHandler)
	routes.RegisterCustomerRoutes(router, customerHandler)
	routes.RegisterHealthRoute(router)

	// Background workers and monitors.
	cron.InitReminderWorker(notificationService)
	utils.StartHealthMonitor(
		map[string]*redis.Client{
			"draft":   utils.GetDraftCacheClient(),
			"auth":    utils.GetAuthCacheClient(),
			"pricing": utils.GetPricingCacheClient(),
		},
		database.MongoClient,
		time.Duration(config.AppConfig.HealthCheckIntervalSec)*time.Second,
	)

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
