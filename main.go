package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quadras/config"
	"quadras/cron"
	"quadras/database"
	arenaRepoPkg "quadras/database/repository/arena"
	bookingRepoPkg "quadras/database/repository/booking"
	courtRepoPkg "quadras/database/repository/court"
	extraRepoPkg "quadras/database/repository/extraservice"
	paymentRepoPkg "quadras/database/repository/payment"
	reviewRepoPkg "quadras/database/repository/review"
	settingsRepoPkg "quadras/database/repository/settings"
	userRepoPkg "quadras/database/repository/user"
	"quadras/handlers"
	"quadras/routes"
	arenaSvc "quadras/services/arena"
	bookingSvc "quadras/services/booking"
	courtSvc "quadras/services/court"
	"quadras/services/notification"
	paymentSvc "quadras/services/payment"
	"quadras/services/storage"
	userSvc "quadras/services/user"
	"quadras/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	_ = godotenv.Load()
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.InitTokenCache()
	stripe.Key = config.AppConfig.StripeKey

	var storageSvc storage.StorageService
	if cs, err := storage.NewCloudinaryStorage(); err != nil {
		logger.Sugar().Warnf("main: photo uploads disabled: %v", err)
	} else {
		storageSvc = cs
	}

	// Repositories.
	users := userRepoPkg.NewMongoUserRepo()
	arenas := arenaRepoPkg.NewMongoArenaRepo()
	courts := courtRepoPkg.NewMongoCourtRepo()
	extras := extraRepoPkg.NewMongoExtraServiceRepo()
	bookings := bookingRepoPkg.NewMongoBookingRepo()
	payments := paymentRepoPkg.NewMongoPaymentRepo()
	reviews := reviewRepoPkg.NewMongoReviewRepo()
	settings := settingsRepoPkg.NewMongoSettingsRepo()

	// Background task plumbing.
	taskClient := cron.NewTaskClient()
	defer taskClient.Close()
	notifier := notification.NewEnqueuer(taskClient)
	worker := cron.StartNotificationWorker()

	// Services.
	userService := &userSvc.DefaultUserService{
		Users: users,
		Email: notification.NewEmailSender(),
	}
	arenaService := &arenaSvc.DefaultArenaService{
		Arenas:   arenas,
		Bookings: bookings,
		Reviews:  reviews,
		Payments: payments,
		Users:    users,
	}
	courtService := &courtSvc.DefaultCourtService{
		Courts: courts,
		Arenas: arenas,
		Extras: extras,
	}
	bookingService := &bookingSvc.DefaultBookingService{
		Bookings: bookings,
		Courts:   courts,
		Arenas:   arenas,
		Users:    users,
		Extras:   extras,
		Payments: payments,
		Notifier: notifier,
	}
	paymentService := &paymentSvc.DefaultPaymentService{
		Payments: payments,
		Bookings: bookings,
		Arenas:   arenas,
		Users:    users,
		Gateway:  paymentSvc.NewGateway(),
		Locker:   &paymentSvc.RedisLocker{Client: utils.GetCacheClient()},
		Notifier: notifier,
	}

	sweeper := cron.StartDeadlineSweep(&cron.DeadlineSweeper{
		Bookings: bookings,
		Users:    users,
		Notifier: notifier,
	})

	// Handlers.
	handlerBundle := &handlers.HandlerBundle{
		Auth:     &handlers.AuthHandler{Users: userService},
		Users:    &handlers.UserHandler{Users: userService},
		Arenas:   &handlers.ArenaHandler{Arenas: arenaService},
		Courts:   &handlers.CourtHandler{Courts: courtService, Bookings: bookingService},
		Bookings: &handlers.BookingHandler{Bookings: bookingService},
		Payments: &handlers.PaymentHandler{Payments: paymentService},
		Storage:  &handlers.StorageHandler{Storage: storageSvc},
		Admin:    &handlers.AdminHandler{Settings: settings, Bookings: bookingService},
		UserRepo: users,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor([]*redis.Client{
		utils.GetCacheClient(),
		utils.GetAuthCacheClient(),
		utils.GetTokenCacheClient(),
	}, database.MongoClient)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8000"
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

	sweeper.Stop()
	worker.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
