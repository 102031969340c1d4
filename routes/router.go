package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/ndesc/ndesc-api/config"
	"github.com/ndesc/ndesc-api/controllers"
	"github.com/ndesc/ndesc-api/middleware"
	"github.com/ndesc/ndesc-api/refcode"
	"github.com/ndesc/ndesc-api/store"
	"github.com/ndesc/ndesc-api/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(rdb redis.Cmdable, gate *refcode.Gate) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Recovery())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "It is the Home Route"})
	})

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	userController := controllers.NewUserController(store.NewUserStore(rdb, cfg.BcryptCost), gate)
	postController := controllers.NewPostController(store.NewPostStore(rdb))

	users := r.Group("/users")
	users.Use(middleware.RateLimitMiddleware())
	users.POST("/signup", userController.Signup)
	users.POST("/login", userController.Login)
	users.PUT("/logout", userController.Logout)
	users.PATCH("/edit", userController.Edit)
	users.DELETE("/delete", userController.Delete)
	users.GET("/un/:username", userController.GetByUsername)
	users.GET("/sk/:sessionkey", userController.GetBySessionKey)

	posts := r.Group("/posts")
	posts.GET("", postController.List)
	posts.POST("", postController.Create)
	posts.GET("/:slug", postController.Get)
	posts.PATCH("/:slug", postController.Edit)
	posts.DELETE("/:slug", postController.Delete)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Message(ctx, http.StatusNotFound, "route not found")
	})

	return r
}
