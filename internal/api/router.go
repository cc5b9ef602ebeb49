package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/bugtrackr/bug-tracker-api/docs"
	"github.com/bugtrackr/bug-tracker-api/internal/api/handler"
	"github.com/bugtrackr/bug-tracker-api/internal/api/middleware"
	"github.com/bugtrackr/bug-tracker-api/internal/core/ports"
	"github.com/bugtrackr/bug-tracker-api/internal/core/service"
	mongodb "github.com/bugtrackr/bug-tracker-api/internal/infrastructure/db/mongo"
	redisdb "github.com/bugtrackr/bug-tracker-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The activity recorder is constructed by the caller because its worker pool
// lifecycle belongs to main, not to the router.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	recorder ports.ActivityRecorder,
	activity ports.ActivityService,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("bugtracker"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	bugRepo := mongodb.NewBugRepository(db)
	commentRepo := mongodb.NewCommentRepository(db)

	projector := service.NewProjector(userRepo)
	throttle := redisdb.NewLoginThrottle(rdb)

	authService := service.NewAuthService(userRepo, throttle, jwtSecret, tokenTTL)
	bugService := service.NewBugService(bugRepo, projector, recorder, log)
	commentService := service.NewCommentService(commentRepo, bugRepo, projector, recorder, log)

	authHandler := handler.NewAuthHandler(authService)
	bugHandler := handler.NewBugHandler(bugService)
	commentHandler := handler.NewCommentHandler(commentService)
	activityHandler := handler.NewActivityHandler(activity)
	authMiddleware := middleware.Auth(jwtSecret)

	// --- Public surface ---
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Bug Tracker API Running...")
	})
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)
	e.GET("/api/auth/me", authHandler.Me, authMiddleware)

	// --- Protected API routes ---
	g := e.Group("/api", authMiddleware)

	g.GET("/bugs", bugHandler.List)
	g.POST("/bugs", bugHandler.Create)
	g.GET("/bugs/:id", bugHandler.Get)
	g.PUT("/bugs/:id", bugHandler.Update)
	g.DELETE("/bugs/:id", bugHandler.Delete)
	g.PUT("/bugs/:id/assign", bugHandler.Assign)
	g.GET("/bugs/:id/activity", activityHandler.Feed)

	g.GET("/bugs/:id/comments", commentHandler.ListForBug)
	g.POST("/bugs/:id/comments", commentHandler.Create)
	g.DELETE("/comments/:id", commentHandler.Delete)

	return e
}
