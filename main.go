package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vitokorn/buy-me-a-gift/internal/config"
	"github.com/vitokorn/buy-me-a-gift/internal/database"
	"github.com/vitokorn/buy-me-a-gift/internal/logging"
	"github.com/vitokorn/buy-me-a-gift/internal/repositories"
	"github.com/vitokorn/buy-me-a-gift/internal/server"
	"github.com/vitokorn/buy-me-a-gift/internal/services"
	"github.com/vitokorn/buy-me-a-gift/pkg/rabbitmq"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "buy-me-a-gift",
		Short:        "Product catalog and wishlist API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer closeDB(db)
			logrus.Info("Database migrated")
			return nil
		},
	})
	root.AddCommand(newCreateSuperuserCmd())
	return root
}

func newCreateSuperuserCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create an active staff and superuser account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer closeDB(db)

			authService := services.NewAuthService(repositories.NewGORMUserRepository(db), services.TokenConfig{
				Secret: cfg.JWTSecret,
			}, nil)
			user, err := authService.CreateSuperuser(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Superuser %s created (id %d)\n", user.Email, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "superuser email")
	cmd.Flags().StringVar(&password, "password", "", "superuser password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// bootstrap loads configuration, sets up logging and opens a migrated database.
func bootstrap() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logging.Setup(cfg.LogLevel, cfg.IsProduction())

	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		closeDB(db)
		return nil, nil, err
	}
	return cfg, db, nil
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Warn("Failed to close database")
	}
}

func runServe() error {
	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer closeDB(db)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			logrus.WithError(err).Error("Sentry init failed")
			cfg.SentryDSN = ""
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue})
		if err != nil {
			logrus.WithError(err).Warn("RabbitMQ unavailable, domain events disabled")
		} else {
			defer mqClient.Close()
			events = mqClient
		}
	}

	app := server.New(cfg, db, events)

	listenErr := make(chan error, 1)
	go func() {
		logrus.WithField("addr", cfg.AppPort).Info("Starting server")
		listenErr <- app.Listen(cfg.AppPort)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logrus.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logrus.WithError(err).Error("Error during Fiber shutdown")
	}
	logrus.Info("Server gracefully stopped")
	return nil
}
