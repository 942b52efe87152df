package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mendwell/config"
	"mendwell/cron"
	"mendwell/database"
	blogRepoPkg "mendwell/database/repository/blog"
	bookingRepoPkg "mendwell/database/repository/booking"
	messageRepoPkg "mendwell/database/repository/message"
	storeRepoPkg "mendwell/database/repository/store"
	therapistRepoPkg "mendwell/database/repository/therapist"
	userRepoPkg "mendwell/database/repository/user"
	"mendwell/handlers"
	"mendwell/middleware"
	"mendwell/routes"
	"mendwell/services/blog"
	"mendwell/services/booking"
	"mendwell/services/chat"
	"mendwell/services/notification"
	"mendwell/services/role"
	"mendwell/services/socialauth"
	"mendwell/services/store"
	"mendwell/services/therapist"
	"mendwell/services/user"
	"mendwell/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	if config.AppConfig.FirebaseCredentialsFile != "" {
		utils.FirebaseInit()
	} else {
		logger.Warn("main: firebase credentials not configured, push notifications disabled")
	}

	storageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	therapistRepo := therapistRepoPkg.NewMongoTherapistRepo()
	followRepo := therapistRepoPkg.NewMongoFollowRepo()
	storeRepo := storeRepoPkg.NewMongoStoreRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	messageRepo := messageRepoPkg.NewMongoMessageRepo()
	blogRepo := blogRepoPkg.NewMongoBlogRepo()

	// The role resolver probes ownership collections directly and reads the
	// profile hint through a thin adapter.
	profileProbe := role.ProfileProbeFunc(func(userID string) (string, error) {
		usr, err := userRepo.GetByID(userID)
		if err != nil {
			return "", err
		}
		if usr == nil {
			return "", nil
		}
		return usr.UserType, nil
	})
	resolver := role.NewResolver(storeRepo, therapistRepo, profileProbe, role.NewRedisCache(utils.GetRoleCacheClient()))
	resolver.OnChange = func(userID string, old, updated role.Role) {
		logger.Info("role changed during reconciliation",
			zap.String("userID", userID),
			zap.String("old", string(old)),
			zap.String("updated", string(updated)))
	}

	// services.
	userService := &user.DefaultUserService{
		Repo:  userRepo,
		Roles: resolver,
	}
	socialService := socialauth.NewDefaultService()

	notificationService := &notification.DefaultNotificationService{
		Users:  userRepo,
		Client: utils.FCMClient,
	}

	therapistService := &therapist.DefaultTherapistService{
		Repo:    therapistRepo,
		Follows: followRepo,
	}
	storeService := &store.DefaultStoreService{
		Repo: storeRepo,
	}

	queueClient := cron.NewQueueClient()
	defer queueClient.Close()

	bookingService := &booking.DefaultBookingService{
		Repo:       bookingRepo,
		Therapists: therapistRepo,
		Scheduler:  queueClient,
		Notifier:   notificationService,
	}
	chatService := &chat.DefaultChatService{
		Repo:     messageRepo,
		Bus:      chat.NewRedisBus(utils.GetCacheClient()),
		Notifier: notificationService,
	}
	blogService := &blog.DefaultBlogService{
		Repo:      blogRepo,
		Scheduler: queueClient,
	}

	// Background worker for reminders and scheduled publishing.
	cron.InitWorker(notificationService, blogService)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient(), utils.GetRoleCacheClient()},
		database.MongoClient,
	)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,
		Resolver: resolver,

		Auth:       handlers.NewAuthHandler(userService, socialService, resolver),
		Users:      handlers.NewUserHandler(userService, resolver),
		Therapists: handlers.NewTherapistHandler(therapistService, storageService),
		Stores:     handlers.NewStoreHandler(storeService, resolver),
		Bookings:   handlers.NewBookingHandler(bookingService, therapistService),
		Chat:       handlers.NewChatHandler(chatService),
		Blog:       handlers.NewBlogHandler(blogService),
		Uploads:    handlers.NewUploadHandler(storageService),
	}

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
