package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"timetracker/internal/router"
	"timetracker/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the database and start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	cfg := InitConfig()
	db := ConnectDatabase(cfg)
	MigrateDatabase(db)

	opts := router.Options{
		DB:                db,
		SessionExpiration: cfg.SessionExpiration,
		SessionCookie:     cfg.SessionCookie,
		AccessLog:         true,
	}
	if sessions := InitSessionStorage(cfg); sessions != nil {
		defer func() {
			if err := sessions.Close(); err != nil {
				log.Printf("Failed to close Redis session storage: %v", err)
			}
		}()
		opts.SessionStorage = sessions
	}
	if minioClient := InitMinIOClient(cfg); minioClient != nil {
		opts.Archiver = storage.NewMinioArchiver(minioClient, cfg.MinioBucket)
	}

	app := router.New(opts)
	router.LogRoutes(app)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening on port %s", cfg.AppPort)
		errCh <- app.Listen(":" + cfg.AppPort)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Printf("Shutting down server")
		return app.ShutdownWithTimeout(10 * time.Second)
	}
}
