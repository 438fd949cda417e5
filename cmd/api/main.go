package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/config"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/database"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/router"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "labres",
	Short: "Lab equipment reservation API",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		l := logger.New(cfg.Env)

		pool, err := database.Open(context.Background(), cfg)
		if err != nil {
			l.Fatal().Err(err).Msg("db connect failed")
		}
		defer pool.Close()

		r := router.New(l, pool, cfg)

		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           r,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			l.Info().Str("addr", srv.Addr).Msg("api listening")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				l.Fatal().Err(err).Msg("server error")
			}
		}()

		// graceful shutdown
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
		l.Info().Msg("shutdown complete")
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		// the migrate pgx driver registers the pgx5:// scheme
		dsn := strings.Replace(cfg.DBURL, "postgres://", "pgx5://", 1)
		m, err := migrate.New("file://"+cfg.MigrationsDir, dsn)
		if err != nil {
			return err
		}
		defer func() { _, _ = m.Close() }()
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
		return nil
	},
}

func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
