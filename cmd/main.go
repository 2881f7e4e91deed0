package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"timetracker/internal/config"
	"timetracker/internal/models"
	"timetracker/internal/storage"
)

// configFile is set by the --config flag.
var configFile string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "timetracker",
	Short: "Track work time against clients, projects and entries",
	// Running the binary without a subcommand starts the server.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (YAML); environment variables take precedence")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(createUserCmd)
}

func InitConfig() *config.Config {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	return cfg
}

func ConnectDatabase(cfg *config.Config) *gorm.DB {
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	return db
}

func MigrateDatabase(db *gorm.DB) {
	if err := models.Migrate(db); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
}

// InitSessionStorage returns the Redis session store, or nil for in-memory sessions.
func InitSessionStorage(cfg *config.Config) *storage.RedisClient {
	if !cfg.RedisEnabled() {
		log.Printf("REDIS_HOST not set, keeping sessions in memory")
		return nil
	}
	client, err := storage.NewRedisClient(cfg.RedisHost, cfg.RedisPort)
	if err != nil {
		log.Fatalf("Redis initialization failed: %v", err)
	}
	return client
}

// InitMinIOClient returns nil when export archiving is not configured.
func InitMinIOClient(cfg *config.Config) *minio.Client {
	if !cfg.MinioEnabled() {
		log.Printf("MINIO_ENDPOINT not set, entry exports will not be archived")
		return nil
	}
	minioClient, err := storage.NewMinioClient(context.Background(), cfg)
	if err != nil {
		log.Fatalf("MinIO client initialization failed: %v", err)
	}
	return minioClient
}
