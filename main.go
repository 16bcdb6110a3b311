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
	"go.mongodb.org/mongo-driver/mongo"

	"scribe/config"
	"scribe/database"
	"scribe/routes"
)

func main() {
	log.Println("🚀 Starting Scribe...")

	cfg := config.Load()

	log.Println("🔌 Connecting to MongoDB...")

	var client *mongo.Client
	var dbErr error
	for i := 1; i <= 3; i++ {
		client, dbErr = database.Connect(cfg.MongoURI)
		if dbErr != nil {
			log.Printf("❌ MongoDB connection attempt %d failed: %v", i, dbErr)
			time.Sleep(2 * time.Second)
			continue
		}
		break
	}
	if dbErr != nil {
		log.Fatal("❌ Failed to connect to MongoDB:", dbErr)
	}
	defer func() {
		if err := database.Disconnect(client); err != nil {
			log.Println("❌ Mongo disconnect:", err)
		}
	}()

	log.Println("✅ MongoDB connected successfully")

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	store := database.NewMongoStore(client, cfg.DBName)
	router := routes.SetupRouter(store, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🌐 Server running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Server error:", err)
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

	log.Println("👋 Server stopped gracefully")
}
