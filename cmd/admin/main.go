package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"reclaimr/backend/internal/storage"
)

// Admin CLI over the chat archive database.
func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	archive, err := storage.NewArchive(db)
	if err != nil {
		log.Fatalf("failed to prepare archive: %v", err)
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "stats":
		sessions, err := archive.CountArchivedSessions()
		if err != nil {
			log.Fatalf("Error counting archived sessions: %v", err)
		}
		messages, err := archive.CountArchivedMessages()
		if err != nil {
			log.Fatalf("Error counting archived messages: %v", err)
		}
		fmt.Printf("Archived sessions: %d\nArchived messages: %d\n", sessions, messages)
	case "purge":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin purge <days>")
			os.Exit(1)
		}
		days, err := strconv.Atoi(os.Args[2])
		if err != nil || days < 0 {
			fmt.Println("Invalid number of days. Please provide a non-negative integer.")
			os.Exit(1)
		}
		cutoff := time.Now().AddDate(0, 0, -days)
		removed, err := archive.PurgeOlderThan(cutoff)
		if err != nil {
			log.Fatalf("Error purging archive: %v", err)
		}
		fmt.Printf("Purged %d archived sessions older than %d days.\n", removed, days)
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}
