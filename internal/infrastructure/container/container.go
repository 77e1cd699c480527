package container

import (
	"fmt"

	"github.com/dateit-app/dateit-backend/internal/config"
	"github.com/dateit-app/dateit-backend/internal/delivery/http"
	"github.com/dateit-app/dateit-backend/internal/delivery/http/handler"
	"github.com/dateit-app/dateit-backend/internal/delivery/http/middleware"
	"github.com/dateit-app/dateit-backend/internal/delivery/ws"
	"github.com/dateit-app/dateit-backend/internal/infrastructure/database"
	"github.com/dateit-app/dateit-backend/internal/infrastructure/mail"
	"github.com/dateit-app/dateit-backend/internal/infrastructure/server"
	"github.com/dateit-app/dateit-backend/internal/infrastructure/storage"
	"github.com/dateit-app/dateit-backend/internal/repository/postgres"
	redisrepo "github.com/dateit-app/dateit-backend/internal/repository/redis"
	"github.com/dateit-app/dateit-backend/internal/usecase/auth"
	"github.com/dateit-app/dateit-backend/internal/usecase/chat"
	"github.com/dateit-app/dateit-backend/internal/usecase/matching"
	"github.com/dateit-app/dateit-backend/internal/usecase/media"
	"github.com/dateit-app/dateit-backend/internal/usecase/rate"
	"github.com/dateit-app/dateit-backend/pkg/logger"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Hub    *ws.Hub
	Server *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis. The like rate limiter degrades to a no-op when
	// Redis is unavailable, so a failure here is not fatal.
	var limiter *rate.Limiter
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.L().Warn("redis unavailable, like rate limiting disabled", zap.Error(err))
		redisClient = nil
	} else {
		limiter = rate.NewLimiter(redisrepo.NewRateRepository(redisClient), cfg.Matching.LikesPerMinute)
	}

	// Initialize object storage
	minioStorage, err := storage.NewMinioStorage(&cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize mailer
	mailer := mail.NewMailer(&cfg.SMTP)

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	likeRepo := postgres.NewLikeRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	messageRepo := postgres.NewMessageRepository(db)

	// Initialize WebSocket hub
	hub := ws.NewHub()

	// Initialize use cases
	authUseCase := auth.NewAuthUseCase(
		userRepo,
		mailer,
		cfg.JWT.Secret,
		cfg.Server.PublicURL,
		cfg.JWT.TokenExpiryDays,
		cfg.JWT.VerifyExpiryMin,
	)

	matchingUseCase := matching.NewMatchingUseCase(
		userRepo,
		likeRepo,
		matchRepo,
		limiter,
		hub,
		cfg.Matching.SuggestionCap,
	)

	chatUseCase := chat.NewChatUseCase(
		matchRepo,
		messageRepo,
		hub,
	)

	mediaUseCase := media.NewMediaUseCase(minioStorage, cfg.Storage.MaxFileSize)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	actionHandler := handler.NewActionHandler(matchingUseCase)
	matchHandler := handler.NewMatchHandler(matchingUseCase)
	messageHandler := handler.NewMessageHandler(chatUseCase)
	uploadHandler := handler.NewUploadHandler(mediaUseCase)
	wsHandler := ws.NewHandler(hub, authUseCase, matchRepo)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	// Initialize router
	router := http.NewRouter(
		authHandler,
		actionHandler,
		matchHandler,
		messageHandler,
		uploadHandler,
		wsHandler,
		authMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter)

	return &Container{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Hub:    hub,
		Server: srv,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	// Close WebSocket sessions
	if c.Hub != nil {
		c.Hub.Shutdown()
	}

	// Close Redis
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.L().Warn("failed to close redis", zap.Error(err))
		}
	}

	// Close database
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
