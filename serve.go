package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/community-board/api-go/config"
	"github.com/community-board/api-go/controllers"
	"github.com/community-board/api-go/middleware"
	"github.com/community-board/api-go/pagination"
	"github.com/community-board/api-go/repositories"
	"github.com/community-board/api-go/routes"
	"github.com/community-board/api-go/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gorm.io/gorm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context(), config.Load(envFile))
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load(envFile)
		db, err := config.OpenDB(cfg.Database)
		if err != nil {
			return err
		}
		if err := config.Migrate(db); err != nil {
			return err
		}
		log.Println("schema is up to date")
		return nil
	},
}

func newRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	store := repositories.NewStore(db)
	hasher := services.NewBcryptHasher()
	tokens := services.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	paging := pagination.Policy{DefaultSize: cfg.DefaultPageSize, MaxSize: cfg.MaxPageSize}

	var google services.GoogleAccountResolver
	if g := config.NewGoogleConfig(cfg.Google); g != nil {
		google = g
	} else {
		log.Println("Google sign-in disabled: GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET not set")
	}

	userService := services.NewUserService(store, hasher)
	handlers := routes.Handlers{
		Auth:       controllers.NewAuthController(services.NewAuthService(store, hasher, tokens, google), cfg.CookieSecure),
		Users:      controllers.NewUserController(userService),
		Validation: controllers.NewValidationController(userService),
		Posts: controllers.NewPostController(services.NewPostService(store, services.PostServiceConfig{
			Paging:              paging,
			ResolveViewerInList: cfg.ListResolveViewer,
		})),
		Comments: controllers.NewCommentController(services.NewCommentService(store, paging)),
		Likes:    controllers.NewLikeController(services.NewLikeService(store)),
		Tokens:   tokens,
		Metrics:  promhttp.Handler(),
		Health: func(ctx context.Context) error {
			return config.Ping(ctx, db)
		},
	}
	if cfg.R2.Enabled() {
		handlers.Uploads = controllers.NewUploadController(config.NewR2PresignClient(cfg.R2), cfg.R2.BucketName, cfg.R2.PublicURL)
	} else {
		log.Println("uploads disabled: CLOUDFLARE_* storage settings not set")
	}

	controllers.RegisterValidators()
	metrics := middleware.NewMetrics(prometheus.DefaultRegisterer)

	r := gin.New()
	// Add logging middleware
	r.Use(gin.LoggerWithWriter(os.Stdout), gin.Recovery(), metrics.Handler())
	routes.SetupRoutes(r, handlers)
	return r
}

func serve(ctx context.Context, cfg *config.Config) error {
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	gin.SetMode(cfg.GinMode)

	shutdownTracer := config.InitTracer(ctx, cfg.OTELEndpoint, cfg.OTELServiceName)
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracer(c)
	}()

	// Initialize database
	db := config.InitDB(cfg.Database)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(newRouter(cfg, db), cfg.OTELServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
