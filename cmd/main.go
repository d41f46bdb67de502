package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"reclaimr/backend/internal/api/handler"
	"reclaimr/backend/internal/chathub"
	"reclaimr/backend/internal/storage"
)

// setupArchiver connects the optional PostgreSQL archive. Without a DSN
// the platform runs fully in memory and swept sessions are discarded.
func setupArchiver() chathub.Archiver {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Println("DATABASE_DSN not set, chat archive disabled.")
		return nil
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	archive, err := storage.NewArchive(db)
	if err != nil {
		log.Fatalf("Failed to run archive migrations: %v", err)
	}

	log.Println("Chat archive connected, migrations complete.")
	return archive
}

func main() {
	log.Println("Starting Reclaimr Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	// 1. Dependencies: in-memory store, chat hub, retention sweeper
	s := storage.NewStorageService()
	manager := chathub.NewManagerService(s)
	sweeper := chathub.NewSweeperService(s, setupArchiver())
	go sweeper.Run()

	// 2. Gin and routing
	r := gin.Default()
	h := handler.NewHandler(manager, s)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Reclaimr API is running!"})
	})

	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)

	authed := r.Group("/", h.AuthRequired())
	authed.POST("/report", h.ReportItem)
	authed.GET("/items", h.ListItems)
	authed.GET("/item/:item_id", h.GetItem)
	authed.POST("/upload-image", h.UploadImage)
	authed.POST("/chat/create-session", h.CreateChatSession)

	// The chat transport itself stays open; identity comes from the
	// injectable resolver.
	r.GET("/chat/:session_id", h.ServeChatWS)

	r.GET("/admin/stats", h.AdminStats)
	r.DELETE("/admin/reset", h.AdminReset)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8000"
	}

	server := &http.Server{
		Addr:           addr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
