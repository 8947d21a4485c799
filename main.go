package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"snapfeed/database"
	"snapfeed/engagement"
	"snapfeed/handlers"
	"snapfeed/routes"
	"snapfeed/store"
)

func main() {
	log.Println("🚀 Starting snapfeed API...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	mongoURI := os.Getenv("MONGODB_URI")
	if jwtSecret == "" || mongoURI == "" {
		log.Fatal("❌ JWT_SECRET and MONGODB_URI must be set")
	}

	log.Println("🔌 Connecting to MongoDB...")

	var db *database.DB
	var dbErr error
	for i := 1; i <= 3; i++ {
		db, dbErr = database.Connect(context.Background(), mongoURI)
		if dbErr == nil {
			break
		}
		log.Printf("❌ MongoDB connection attempt %d failed: %v", i, dbErr)
		time.Sleep(2 * time.Second)
	}
	if dbErr != nil {
		log.Fatal("❌ Failed to connect to MongoDB: ", dbErr)
	}
	log.Println("✅ MongoDB connected")

	if err := db.EnsureIndexes(context.Background()); err != nil {
		log.Fatal("❌ Failed to create indexes: ", err)
	}
	log.Println("✅ Unique indexes ensured (posts.slug, users.email)")

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	userStore := store.NewUserStore(db.Users)
	postStore := store.NewPostStore(db.Posts)
	imageStore := store.NewImageStore(db.Images)
	engagementSvc := engagement.NewService(postStore, userStore)

	router := routes.SetupRouter(routes.Deps{
		Auth:      handlers.NewAuthHandler(userStore, jwtSecret),
		Users:     handlers.NewUserHandler(userStore, engagementSvc),
		Posts:     handlers.NewPostHandler(postStore, userStore, imageStore, engagementSvc),
		Images:    handlers.NewImageHandler(imageStore),
		JWTSecret: jwtSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🌐 Server running on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Server error: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("❌ Forced shutdown:", err)
	}
	if err := db.Disconnect(context.Background()); err != nil {
		log.Println("❌ MongoDB disconnect error:", err)
	}

	log.Println("👋 Server stopped gracefully")
}
