package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quickmechanic/config"
	"quickmechanic/cron"
	"quickmechanic/database"
	paymentRepo "quickmechanic/database/repository/payment"
	"quickmechanic/handlers"
	"quickmechanic/middleware"
	"quickmechanic/routes"
	"quickmechanic/services/backend"
	"quickmechanic/services/booking"
	"quickmechanic/services/events"
	"quickmechanic/services/payment"
	"quickmechanic/services/staging"
	"quickmechanic/services/tasks"
	"quickmechanic/services/tracking"
	"quickmechanic/services/vehicle"
	"quickmechanic/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	database.InitDB()
	utils.InitRedis()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))

	// repositories.
	paymentSessions, err := paymentRepo.NewMongoPaymentSessionRepo(database.Database())
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize payment session repository: %v", err)
	}

	// backend and collaborators.
	api := backend.NewClient(config.AppConfig.BackendURL, config.AppConfig.BackendTimeout, logger)

	var plates vehicle.Lookup = vehicle.FixtureLookup{}
	if config.AppConfig.VehicleLookup == "backend" {
		plates = vehicle.NewBackendLookup(api)
	}
	identifier := vehicle.NewIdentifier(vehicle.NewCachedLookup(plates, utils.GetCacheClient(), logger), logger)

	collaborator, statusSource, err := payment.NewFromConfig(config.AppConfig, api, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize payment collaborator: %v", err)
	}
	poller := payment.NewPoller(statusSource, config.AppConfig.PollInterval, config.AppConfig.PollAttempts, logger)
	gate := payment.NewGate(collaborator, statusSource, poller, paymentSessions, payment.GateConfig{
		Amount:   config.AppConfig.DepositAmount,
		Currency: config.AppConfig.DepositCurrency,
	}, logger)

	publisher, err := events.NewPublisher(config.AppConfig.AMQPURL, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect event publisher: %v", err)
	}
	defer publisher.Close()

	taskClient := asynq.NewClient(cron.RedisOpt())
	defer taskClient.Close()
	scheduler := tasks.NewScheduler(taskClient, tasks.DefaultReconcileDelay)

	// services.
	bookingService := booking.NewBookingService(booking.Deps{
		Sessions:   booking.NewRedisSessionStore(utils.GetBookingCacheClient()),
		Staging:    staging.NewRedisStore(utils.GetCacheClient()),
		Vehicles:   identifier,
		Orders:     api,
		Payments:   gate,
		Events:     publisher,
		Reconciler: scheduler,
		Logger:     logger,
	})
	tracker := tracking.NewTracker(api, logger)

	worker := cron.InitReconcileWorker(cron.NewReconcileHandler(gate, bookingService, scheduler, logger), logger)

	healthCtx, stopHealth := context.WithCancel(context.Background())
	defer stopHealth()
	utils.StartHealthMonitor(healthCtx, utils.RedisClients(), database.MongoClient)

	bookingHandler := handlers.NewBookingHandler(bookingService, config.AppConfig.FrontendURL, logger)
	vehicleHandler := handlers.NewVehicleHandler(identifier)
	paymentHandler := handlers.NewPaymentHandler(gate)
	trackingHandler := handlers.NewTrackingHandler(tracker)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		FrontendURL:       config.AppConfig.FrontendURL,
		MaxRequestsPerMin: config.AppConfig.MaxRequestsPerMin,

		Health:       handlers.HealthHandler,
		GetServices:  handlers.GetServicesHandler,
		GetTimeSlots: handlers.GetTimeSlotsHandler,
		LookupPlate:  vehicleHandler.LookupPlateHandler,

		// Booking endpoints.
		StartSession:        bookingHandler.StartSession,
		GetSession:          bookingHandler.GetSession,
		ConfirmVehicle:      bookingHandler.ConfirmVehicle,
		AcceptManualVehicle: bookingHandler.AcceptManualVehicle,
		SelectService:       bookingHandler.SelectService,
		UpdateDraft:         bookingHandler.UpdateDraft,
		SubmitSchedule:      bookingHandler.SubmitSchedule,
		Back:                bookingHandler.Back,
		Restart:             bookingHandler.Restart,
		ConfirmBooking:      bookingHandler.Confirm,
		ResumeBooking:       bookingHandler.Resume,
		ConfirmPayment:      bookingHandler.ConfirmPayment,
		PaymentReturn:       bookingHandler.PaymentReturn,
		CancelPayment:       bookingHandler.CancelPayment,

		PaymentStatus: paymentHandler.PaymentStatusHandler,
		TrackOrder:    trackingHandler.TrackOrderHandler,
		Dashboard:     handlers.DashboardHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

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

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	if err := database.Disconnect(ctx); err != nil {
		logger.Sugar().Warnf("main: mongo disconnect failed: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
