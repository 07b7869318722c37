package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/blogicum/backend/api"
	"github.com/blogicum/backend/database"
	"github.com/blogicum/backend/models"
	"github.com/blogicum/backend/storage"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	dbType := strings.ToLower(os.Getenv("DB_TYPE"))
	var currentDB database.Database

	switch dbType {
	case "memory":
		// In-memory stores: development and demo mode, nothing persists.
		fmt.Println("Using in-memory database...")
		currentDB = database.NewMemory()
	default:
		connStr := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			getEnv("DATABASE_HOST", "localhost"),
			getEnv("DATABASE_USER", "blogicum"),
			getEnv("DATABASE_PASSWORD", ""),
			getEnv("DATABASE_NAME", "blogicum"),
			getEnv("DATABASE_PORT", "5432"),
			getEnv("DATABASE_SSLMODE", "disable"),
		)
		fmt.Println("Connecting to database...")

		newLogger := logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				SlowThreshold:             10 * time.Second,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  true,
			},
		)

		db, err := gorm.Open(postgres.New(postgres.Config{
			DSN:                  connStr,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
			Logger:      newLogger,
		})
		if err != nil {
			fmt.Printf("Error connecting to database: %v\n", err)
			os.Exit(1)
		}

		// Test database connection
		var result int
		if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
			fmt.Printf("Error testing database connection: %v\n", err)
			os.Exit(1)
		}

		// If generating models, run generation and exit
		if strings.ToLower(os.Getenv("GENERATE_MODELS")) == "true" {
			fmt.Println("Generating models and query helpers...")
			models.GenerateModels(db)
			return
		}

		if err := models.Migrate(db); err != nil {
			fmt.Printf("Error migrating schema: %v\n", err)
			os.Exit(1)
		}

		currentDB = database.New(db)
	}

	var images storage.ImageStore
	if bucket := os.Getenv("S3_BUCKET"); bucket != "" {
		s3Store, err := storage.NewS3Store(context.Background(), bucket)
		if err != nil {
			fmt.Printf("Error initializing S3 image store: %v\n", err)
			os.Exit(1)
		}
		images = s3Store
	} else {
		fmt.Println("S3_BUCKET not set; storing images in memory")
		images = storage.NewMemoryStore()
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, images)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}

// getEnv returns the value of the environment variable key or a fallback value.
func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
