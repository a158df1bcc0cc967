package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/homeserve/api/internal/admin"
	"github.com/homeserve/api/internal/alerts"
	"github.com/homeserve/api/internal/auth"
	"github.com/homeserve/api/internal/catalog"
	"github.com/homeserve/api/internal/config"
	"github.com/homeserve/api/internal/db"
	"github.com/homeserve/api/internal/logging"
	"github.com/homeserve/api/internal/messaging"
	mware "github.com/homeserve/api/internal/middleware"
	"github.com/homeserve/api/internal/request"
	"github.com/homeserve/api/internal/reviews"
	"github.com/homeserve/api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := logging.New(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.Init(ctx, cfg.DatabaseURL); err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}
	defer db.Close()

	if err := alerts.ConfigureMailerFromEnv(); err != nil {
		logger.Warn("mailer not configured, emails will fail", zap.Error(err))
	}
	alerts.Init(cfg.RedisAddr)
	defer alerts.Close()

	requests := request.NewHandler(request.NewPGStore(db.Conn), request.NotifySink{})

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "service": "homeserve"})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/ready", func(c echo.Context) error {
		if db.Conn == nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "db not initialized"})
		}
		if err := db.Conn.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "db unreachable"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ready"})
	})

	// Public routes
	// Auth routes with per-IP rate limiting to protect signup/login from abuse
	authGroup := e.Group("")
	authGroup.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))
	authGroup.POST("/signup", auth.Signup)
	authGroup.POST("/login", auth.Login)
	authGroup.POST("/password-reset/request", auth.RequestPasswordReset)
	authGroup.POST("/password-reset/confirm", auth.ConfirmPasswordReset)

	e.GET("/services", catalog.ListServices)
	e.GET("/workers/:serviceType", worker.ListByService)
	e.GET("/worker/:id/profile", worker.GetPublicProfile)
	e.GET("/worker/:id/reviews", reviews.ListForWorker)

	// Protected routes
	api := e.Group("")
	api.Use(mware.JWTMiddleware)

	api.GET("/profile", auth.GetProfile)
	api.GET("/ws", messaging.LiveWS)

	api.POST("/requests", requests.Create, mware.RequireRoles("user"))
	api.GET("/my-requests", requests.ListMine)
	api.GET("/worker-requests", requests.ListForWorker, mware.RequireRoles("worker"))
	api.GET("/worker-requests/summary", requests.WorkerSummary, mware.RequireRoles("worker"))
	api.PUT("/requests/:id/status", requests.UpdateStatus, mware.RequireRoles("worker"))
	api.POST("/requests/:id/review", reviews.Create, mware.RequireRoles("user"))

	api.PATCH("/worker/profile", worker.UpdateProfile, mware.RequireRoles("worker"))

	// Admin routes
	adm := e.Group("/admin")
	adm.Use(mware.JWTMiddleware)
	adm.Use(mware.AdminGuard)

	adm.GET("/stats", admin.Stats)
	adm.GET("/users", admin.ListUsers)
	adm.POST("/users/:id/suspend", admin.SuspendUser)
	adm.POST("/users/:id/activate", admin.ActivateUser)
	adm.GET("/requests", admin.ListRequests)
	adm.POST("/workers/:id/verify", admin.VerifyWorker)
	adm.POST("/workers/:id/unverify", admin.UnverifyWorker)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()
	logger.Info("server started", zap.String("port", cfg.Port), zap.String("env", cfg.Environment))

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
