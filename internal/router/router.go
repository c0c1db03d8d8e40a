package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shapeshed/shapeshed-backend/internal/config"
	"github.com/shapeshed/shapeshed-backend/internal/handler"
	"github.com/shapeshed/shapeshed-backend/internal/middleware"
	"github.com/shapeshed/shapeshed-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Root       *handler.RootHandler
	User       *handler.UserHandler
	Class      *handler.ClassHandler
	Instructor *handler.InstructorHandler
}

// SetupRouter configures all Gin routes with their middlewares.
//
// Gin requires sibling wildcards to share a name, so the first segment after
// /users and /classes is always :key. It carries the class id, role or
// status depending on the route.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*).
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Brotli())

	router.GET("/", handlers.Root.Ping)

	// ─── Users ─────────────────────────────────────────────────────────
	users := router.Group("/users")
	users.Use(middleware.NoStore())
	{
		users.GET("", handlers.User.ListUsers)
		users.POST("", handlers.User.CreateUser)
		users.PATCH("/:key/:id", handlers.User.PatchUser)
		users.PATCH("/:key/:id/enrolled", handlers.User.EnrollClass)
		users.PATCH("/:key/:id/remove", handlers.User.RemoveSelectedClass)
	}

	// ─── Classes ───────────────────────────────────────────────────────
	classes := router.Group("/classes")
	classes.Use(middleware.NoStore())
	{
		classes.GET("", handlers.Class.ListClasses)
		classes.POST("", handlers.Class.CreateClass)
		classes.PATCH("/:key", handlers.Class.TakeSeat)
		classes.PATCH("/:key/:id", handlers.Class.SetStatus)
	}

	// ─── Instructors (read-only) ───────────────────────────────────────
	instructors := router.Group("/instructors")
	{
		instructors.GET("", middleware.CacheControl(60), handlers.Instructor.ListInstructors)
		instructors.GET("/:id", middleware.NoStore(), handlers.Instructor.GetInstructor)
	}

	return router
}
