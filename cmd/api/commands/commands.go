package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/paratus/tasks/internal/adapters/repository"
	"github.com/paratus/tasks/internal/application/invalidation"
	"github.com/paratus/tasks/internal/application/services"
	"github.com/paratus/tasks/internal/client"
	"github.com/paratus/tasks/internal/infrastructure/config"
	"github.com/paratus/tasks/internal/infrastructure/database"
	"github.com/paratus/tasks/internal/infrastructure/logger"
	"github.com/paratus/tasks/internal/infrastructure/server"
)

// Set at build time with -ldflags "-X github.com/paratus/tasks/cmd/api/commands.GitCommit=..."
var (
	GitCommit = "development"
	BuildDate = "unknown"
)

const shutdownTimeout = 30 * time.Second

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the Paratus API server",
		Long:  "Start the Paratus API server with all configured routes and middleware",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Manage database migrations (up, down, version)",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run all up migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(db *database.DB) error {
				if err := db.MigrateUp(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Migration up completed successfully")
				return nil
			})
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Run all down migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(db *database.DB) error {
				if err := db.MigrateDown(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Migration down completed successfully")
				return nil
			})
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(db *database.DB) error {
				version, dirty, err := db.MigrationVersion()
				if err != nil {
					return fmt.Errorf("failed to get migration version: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Current migration version: %d\n", version)
				fmt.Fprintf(cmd.OutOrStdout(), "Dirty: %t\n", dirty)
				return nil
			})
		},
	})

	return migrateCmd
}

// NewInitCommand creates the Inbox collection if it does not exist yet.
func NewInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Migrate the database and ensure the Inbox exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			appLogger, err := logger.New(cfg.Logger)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer appLogger.Close()

			db, err := database.New(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := db.MigrateUp(); err != nil {
				return err
			}

			repos := repository.New(db)
			collections := services.NewCollectionService(repos.Collections, services.Hooks{
				Invalidations: invalidation.NewTable(),
				Logger:        appLogger,
			})
			inbox, err := collections.InitializeCollections(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Inbox ready: %s\n", inbox.ID)
			return nil
		},
	}
}

// NewViewCommand prints the computed views from a running server.
func NewViewCommand() *cobra.Command {
	var showIDs bool

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "Show the Today or Upcoming view",
	}
	viewCmd.PersistentFlags().BoolVar(&showIDs, "ids", false, "Show task ids")

	for _, name := range []string{"today", "upcoming"} {
		name := name
		viewCmd.AddCommand(&cobra.Command{
			Use:   name,
			Short: fmt.Sprintf("Show the %s view", name),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load()
				if err != nil {
					return fmt.Errorf("failed to load configuration: %w", err)
				}
				loc, err := cfg.App.Location()
				if err != nil {
					return err
				}

				api := client.New(cfg.Client.BaseURL, cfg.Client.Timeout)
				fetch := api.Today
				if name == "upcoming" {
					fetch = api.Upcoming
				}
				view, err := fetch(cmd.Context())
				if err != nil {
					return err
				}

				p := &Printer{Out: cmd.OutOrStdout(), Location: loc, ShowIDs: showIDs}
				p.View(view)
				return nil
			},
		})
	}
	return viewCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print Paratus version",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s v%s\n", cfg.App.Name, cfg.App.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Build Date: %s\n", BuildDate)
			fmt.Fprintf(cmd.OutOrStdout(), "Git Commit: %s\n", GitCommit)
			return nil
		},
	}
}

func runServer(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		appLogger.Errorw("Failed to connect to database", "error", err)
		return err
	}
	defer db.Close()

	srv, err := server.New(cfg, db, appLogger)
	if err != nil {
		appLogger.Errorw("Failed to initialize server", "error", err)
		return err
	}

	appLogger.Infow("Starting Paratus API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
		"database", cfg.Database.Driver,
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Errorw("Server failed", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorw("Graceful shutdown failed", "error", err)
		return err
	}
	appLogger.Infow("Server stopped")
	return nil
}

// withDatabase opens the configured database without migrating it.
func withDatabase(fn func(*database.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	db, err := database.New(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}
