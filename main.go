// File: bookingops/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookingops/config"
	"bookingops/cron"
	"bookingops/database"
	bookingsRepo "bookingops/database/repository/bookings"
	"bookingops/handlers"
	"bookingops/routes"
	"bookingops/services/booking"
	"bookingops/services/bookingops"
	"bookingops/services/followup"
	"bookingops/services/reasoning"
	"bookingops/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if config.AppConfig.RoleTokenSecret == "" {
		logger.Sugar().Warn("main: ROLE_TOKEN_SECRET is empty; console routes will reject every token")
	}

	// Booking store, written through to MongoDB when configured.
	storeOpts := []booking.Option{booking.WithLogger(logger)}
	var mongoClient *mongo.Client
	var repo *bookingsRepo.MongoBookingRepo
	if config.UsesMongo() {
		var err error
		mongoClient, err = database.InitDB(ctx)
		if err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		repo, err = bookingsRepo.NewMongoBookingRepo(database.Database())
		if err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		storeOpts = append(storeOpts, booking.WithPersister(repo))
	}
	store := booking.NewStore(storeOpts...)
	if err := store.Hydrate(ctx); err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	// Reasoning engine, strict outside production.
	engine := reasoning.NewEngine(
		reasoning.WithLogger(logger),
		reasoning.WithStrict(!config.IsProduction()),
	)
	var redisClient *redis.Client
	var bundleCache reasoning.BundleCache
	if config.AppConfig.ReasoningCache {
		client, err := utils.InitCache(ctx)
		if err != nil {
			logger.Sugar().Warnf("main: reasoning cache disabled: %v", err)
		} else {
			redisClient = client
			bundleCache = reasoning.NewRedisBundleCache(client, config.AppConfig.ReasoningCacheTTL)
		}
	}
	reasoner := reasoning.NewCachedReasoner(engine, bundleCache, logger)

	// Follow-up queue.
	var dispatcher followup.Dispatcher = followup.NoopDispatcher{}
	var queueClient *asynq.Client
	var worker *asynq.Server
	if config.AppConfig.FollowUpQueueEnabled {
		queueClient = asynq.NewClient(utils.QueueRedisOpt())
		dispatcher = followup.NewAsynqDispatcher(queueClient, logger)
		worker = cron.InitFollowUpWorker(store, logger)
	}

	svc := bookingops.NewService(store, reasoner, dispatcher, logger)

	monitor := utils.NewHealthMonitor(redisClient, mongoClient)
	monitor.Start(ctx, 30*time.Second)

	digest, err := cron.StartSLADigest(config.AppConfig.SLADigestSchedule, svc, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	bookingHandler := handlers.NewBookingHandler(svc, logger, config.AppConfig.RecentAuditLimit)
	handlerBundle := handlers.NewHandlerBundle(
		bookingHandler,
		handlers.HealthHandler(monitor),
		[]byte(config.AppConfig.RoleTokenSecret),
		config.AppConfig.MaxRequestsPerMin,
	)
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	stop()
	<-digest.Stop().Done()
	if worker != nil {
		worker.Shutdown()
	}
	if queueClient != nil {
		_ = queueClient.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if err := database.Close(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: mongo disconnect: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
