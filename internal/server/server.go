// Package server assembles the HTTP surface: stores, services, handlers,
// middleware, and routes.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"agrimitra/internal/config"
	"agrimitra/internal/conversation"
	"agrimitra/internal/gateway"
	"agrimitra/internal/handler"
	authHandler "agrimitra/internal/handler/auth"
	"agrimitra/internal/history"
	"agrimitra/internal/pkg/cache"
	"agrimitra/internal/pkg/jwt"
	"agrimitra/internal/pkg/mongodb"
	authRepo "agrimitra/internal/repository/auth"
	catalogRepo "agrimitra/internal/repository/catalog"
	"agrimitra/internal/server/middleware"
	"agrimitra/internal/service"
	"agrimitra/internal/session"
)

// Server is the HTTP server with all of its wiring.
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	mongo  *mongodb.Client
	redis  *cache.RedisCache

	sessions session.Store
	chatSvc  *service.ChatService
}

// New creates and wires a server instance.
func New(cfg *config.Config) (*Server, error) {
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// MongoDB backs auth and the content catalog. Optional: without it
	// those surfaces are disabled and chat still works.
	var mongoClient *mongodb.Client
	if cfg.Mongo.URI != "" {
		client, err := mongodb.New(&cfg.Mongo)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to MongoDB, continuing without it")
		} else {
			mongoClient = client
			log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

			if err := mongodb.EnsureIndexes(mongoClient.Database()); err != nil {
				log.Warn().Err(err).Msg("failed to ensure indexes")
			}
		}
	}

	// Redis backs session state when available; otherwise sessions live
	// in process memory and die with the instance.
	var redisCache *cache.RedisCache
	var sessions session.Store
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without it")
		} else {
			redisCache = rc
			sessions = session.NewRedisStore(rc.Client(), cfg.Chat.SessionTTL)
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}
	if sessions == nil {
		sessions = session.NewMemoryStore(cfg.Chat.SessionTTL)
		log.Info().Msg("using in-memory session store")
	}

	// Chat history persists to the hosted table when configured; without
	// it chat runs fully, just without recall across sessions.
	var historyStore history.Store
	if cfg.Supabase.URL != "" {
		hs, err := history.NewSupabaseStore(&cfg.Supabase)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize history store, continuing without it")
		} else {
			historyStore = hs
			log.Info().Str("table", cfg.Supabase.Table).Msg("chat history persistence enabled")
		}
	}

	var camera conversation.CameraGrant
	if cfg.Chat.CameraEnabled {
		camera = conversation.CameraGrantFunc(func(context.Context) (bool, error) { return true, nil })
	}

	chatSvc := service.NewChatService(
		sessions,
		conversation.NewComposer(camera),
		gateway.New(&cfg.Gateway),
		history.NewAdapter(historyStore),
	)

	srv := &Server{
		cfg:      cfg,
		engine:   engine,
		mongo:    mongoClient,
		redis:    redisCache,
		sessions: sessions,
		chatSvc:  chatSvc,
	}

	srv.setupRoutes()

	return srv, nil
}

func (s *Server) setupRoutes() {
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS())

	healthHandler := handler.NewHealthHandler(nil)
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	jwtSecret := s.cfg.Auth.JWTSecret
	if jwtSecret == "" {
		jwtSecret = "default-secret-key-change-in-production"
		log.Warn().Msg("JWT secret not configured, using default (NOT SECURE for production)")
	}

	accessTokenExpiry := s.cfg.Auth.AccessTokenExpiry
	if accessTokenExpiry == 0 {
		accessTokenExpiry = 24 * time.Hour
	}

	refreshTokenExpiry := s.cfg.Auth.RefreshTokenExpiry
	if refreshTokenExpiry == 0 {
		refreshTokenExpiry = 7 * 24 * time.Hour
	}

	jwtUtil := jwt.NewJWT(jwtSecret, accessTokenExpiry)

	v1 := s.engine.Group("/api/v1")
	{
		// Chat is open to everyone; a valid token just binds the session
		// to its owner so turns persist.
		chatHdl := handler.NewChatHandler(s.chatSvc)
		chat := v1.Group("/chat")
		chat.Use(middleware.OptionalAuth(jwtUtil))
		{
			chat.POST("/sessions", chatHdl.CreateSession)
			chat.GET("/sessions/:id", chatHdl.GetSession)
			chat.DELETE("/sessions/:id", chatHdl.DeleteSession)
			chat.PUT("/sessions/:id/language", chatHdl.SetLanguage)
			chat.GET("/sessions/:id/messages", chatHdl.GetMessages)
			chat.POST("/sessions/:id/messages", chatHdl.SendMessage)
			chat.POST("/sessions/:id/image", chatHdl.SendImage)
			chat.POST("/sessions/:id/scan", chatHdl.Scan)
		}

		if s.mongo != nil {
			userRepo := authRepo.NewUserRepo(s.mongo.Database())
			refreshTokenRepo := authRepo.NewRefreshTokenRepo(s.mongo.Database())

			authSvc := service.NewAuthService(
				userRepo,
				refreshTokenRepo,
				jwtSecret,
				accessTokenExpiry,
				refreshTokenExpiry,
			)
			authHdl := authHandler.NewHandler(authSvc)

			v1.POST("/auth/register", authHdl.Register)
			v1.POST("/auth/login", authHdl.Login)
			v1.POST("/auth/refresh", authHdl.Refresh)
			v1.POST("/auth/logout", authHdl.Logout)
			v1.GET("/auth/me", authHdl.GetMe)

			profileHdl := handler.NewProfileHandler(s.chatSvc)
			profile := v1.Group("/profile")
			profile.Use(middleware.Auth(jwtUtil))
			{
				profile.GET("/history", profileHdl.GetHistory)
				profile.DELETE("/history", profileHdl.DeleteHistory)
			}

			diseaseRepo := catalogRepo.NewDiseaseRepo(s.mongo.Database())
			newsRepo := catalogRepo.NewNewsRepo(s.mongo.Database())
			catalogSvc := service.NewCatalogService(diseaseRepo, newsRepo)

			seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := catalogSvc.EnsureSeeded(seedCtx); err != nil {
				log.Warn().Err(err).Msg("failed to seed catalog")
			}
			cancel()

			catalogHdl := handler.NewCatalogHandler(catalogSvc)
			v1.GET("/library", catalogHdl.ListDiseases)
			v1.GET("/library/:id", catalogHdl.GetDisease)
			v1.GET("/news", catalogHdl.ListNews)
			v1.GET("/bots", catalogHdl.ListBots)
			v1.GET("/i18n/:lang", catalogHdl.GetTranslations)
		} else {
			log.Warn().Msg("MongoDB not configured, auth, profile, and catalog endpoints disabled")
		}
	}
}

// Run starts the server and blocks until ctx is canceled or the listener
// fails.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		if err := s.sessions.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close session store")
		}
		if s.mongo != nil {
			if err := s.mongo.Close(context.Background()); err != nil {
				log.Error().Err(err).Msg("failed to close MongoDB connection")
			}
		}

		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
