package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/duyng2512/devmeet/internal/auth/credentials"
	"github.com/duyng2512/devmeet/internal/auth/handler"
	"github.com/duyng2512/devmeet/internal/auth/provider"
	"github.com/duyng2512/devmeet/internal/auth/provider/google"
	"github.com/duyng2512/devmeet/internal/auth/reconcile"
	"github.com/duyng2512/devmeet/internal/auth/token"
	"github.com/duyng2512/devmeet/internal/config"
	"github.com/duyng2512/devmeet/internal/files"
	"github.com/duyng2512/devmeet/internal/identity"
	"github.com/duyng2512/devmeet/internal/jobs"
	"github.com/duyng2512/devmeet/internal/logger"
	"github.com/duyng2512/devmeet/internal/middleware"
	"github.com/duyng2512/devmeet/internal/posts"
	"github.com/duyng2512/devmeet/internal/profile"
	"github.com/duyng2512/devmeet/internal/snippets"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	identityStore := identity.NewPostgresStore(infra.DB)
	tokenService := token.NewService(cfg.TokenSecret, cfg.TokenTTL)
	credentialService := credentials.NewService(identityStore)
	reconciler := reconcile.New(identityStore)
	stateStore := handler.NewStateStore(infra.Redis.Client)

	var providers []provider.OAuthProvider
	if cfg.GoogleClientID != "" {
		googleProvider, err := google.New(
			ctx,
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.GoogleRedirectURL,
		)
		if err != nil {
			return nil, nil, err
		}
		providers = append(providers, googleProvider)
	} else {
		logger.Warn("google oauth not configured, oauth login disabled", nil)
	}

	registry := provider.NewRegistry(providers...)

	authHandler := handler.NewHandler(
		registry,
		stateStore,
		reconciler,
		credentialService,
		tokenService,
		identityStore,
	)

	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	postStore := posts.NewStore(infra.DB)
	profileStore := profile.NewStore(infra.DB)
	jobStore := jobs.NewStore(infra.DB)
	snippetStore := snippets.NewStore(infra.DB)
	fileStore := files.NewStore(infra.DB)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Public auth routes
	// ----------------------------

	authHandler.RegisterPublicRoutes(router)

	// ----------------------------
	// API routes
	// ----------------------------

	public := router.Group("/api")

	protected := router.Group("/api")
	protected.Use(middleware.GinRequireAuth(authMiddleware))

	protected.GET("/auth", authHandler.Me)

	posts.NewHandler(postStore, identityStore).RegisterRoutes(public, protected)
	profile.NewHandler(profileStore).RegisterRoutes(public, protected)
	jobs.NewHandler(jobStore).RegisterRoutes(public, protected)
	snippets.NewHandler(snippetStore).RegisterRoutes(protected)
	files.NewHandler(fileStore).RegisterRoutes(public, protected)

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		if err := infra.Redis.Close(); err != nil {
			return err
		}
		return infra.DB.Close()
	}, nil
}
