package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"scribe/config"
	"scribe/database"
	"scribe/handlers"
	"scribe/middleware"
	"scribe/templates"
)

func SetupRouter(store database.Store, cfg config.Config) *gin.Engine {
	router := gin.Default()
	router.SetHTMLTemplate(templates.Parse())

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8080", "http://127.0.0.1:8080"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.CurrentUser(cfg.SessionSecret))

	posts := handlers.NewPostsHandler(store)
	auth := handlers.NewAuthHandler(store, cfg.SessionSecret)

	// Public pages
	router.GET("/", posts.Index)
	router.GET("/group/:slug/", posts.GroupPosts)
	router.GET("/profile/:username/", posts.Profile)
	router.GET("/posts/:id/", posts.PostDetail)
	router.GET("/about/author/", handlers.AboutAuthor(store))
	router.GET("/about/tech/", handlers.AboutTech(store))

	// Authoring, login required
	router.GET("/create/", middleware.RequireLogin(), posts.PostCreate)
	router.POST("/create/", middleware.RequireLogin(), posts.PostCreate)
	router.GET("/posts/:id/edit/", middleware.RequireLogin(), posts.PostEdit)
	router.POST("/posts/:id/edit/", middleware.RequireLogin(), posts.PostEdit)

	// Auth glue
	loginLimiter := middleware.NewIPRateLimiter(5, time.Minute)
	authGroup := router.Group("/auth")
	authGroup.GET("/signup/", auth.Signup)
	authGroup.POST("/signup/", auth.Signup)
	authGroup.GET("/login/", auth.Login)
	authGroup.POST("/login/", loginLimiter.Limit(), auth.Login)
	authGroup.GET("/logout/", auth.Logout)
	authGroup.GET("/password_change/", middleware.RequireLogin(), auth.PasswordChange)
	authGroup.POST("/password_change/", middleware.RequireLogin(), auth.PasswordChange)

	router.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "404.html", gin.H{"User": nil})
	})

	return router
}
