package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"snapfeed/handlers"
	"snapfeed/middleware"
)

// Deps carries everything the router needs wired in.
type Deps struct {
	Auth      *handlers.AuthHandler
	Users     *handlers.UserHandler
	Posts     *handlers.PostHandler
	Images    *handlers.ImageHandler
	JWTSecret string
}

func SetupRouter(deps Deps) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:8080", "http://127.0.0.1:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "time": time.Now().Unix()})
	})

	auth := middleware.JWTAuth(deps.JWTSecret)
	optionalAuth := middleware.OptionalJWTAuth(deps.JWTSecret)

	api := router.Group("/api/v1")

	users := api.Group("/users")
	{
		users.POST("/register", deps.Auth.Register)
		users.POST("/login", deps.Auth.Login)
		users.POST("/logout", deps.Auth.Logout)

		users.GET("", deps.Users.GetUsers)
		users.GET("/:id", deps.Users.GetUser)
		users.PUT("/:id", auth, deps.Users.UpdateUser)
		users.DELETE("/:id", auth, deps.Users.DeleteUser)
	}

	posts := api.Group("/posts")
	{
		posts.GET("", optionalAuth, deps.Posts.GetPosts)
		posts.POST("", auth, deps.Posts.CreatePost)
		posts.GET("/slug/:slug", optionalAuth, deps.Posts.GetPostBySlug)
		posts.GET("/:id", optionalAuth, deps.Posts.GetPostByID)
		posts.PUT("/:id", auth, deps.Posts.UpdatePost)
		posts.DELETE("/:id", auth, deps.Posts.DeletePost)

		posts.PUT("/:id/like", auth, deps.Posts.LikePost)
		posts.PUT("/:id/save", auth, deps.Posts.SavePost)
		posts.GET("/:id/interaction", auth, deps.Posts.GetPostInteraction)
	}

	images := api.Group("/images")
	{
		images.POST("", auth, deps.Images.UploadImage)
		images.GET("", deps.Images.GetImages)
		images.GET("/:id", deps.Images.GetImage)
		images.DELETE("/:id", auth, deps.Images.DeleteImage)
	}

	return router
}
