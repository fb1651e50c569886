package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/phrazzld/taskboard/internal/config"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/platform/postgres"
	"github.com/spf13/cobra"
)

// cli carries the state shared by every subcommand.
type cli struct {
	configPath string
	envFile    string

	cfg    *config.Config
	logger *slog.Logger
}

// setup loads the dotenv file, the configuration and the logger.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if c.envFile != "" {
		if err := godotenv.Load(c.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", c.envFile, err)
		}
	}

	cfg, err := config.LoadFrom(c.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.SetupWithWriter(cmd.ErrOrStderr(), cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	c.cfg = cfg
	c.logger = log
	return nil
}

// withApp connects to the database, runs fn and releases the connection.
func (c *cli) withApp(ctx context.Context, fn func(ctx context.Context, app *application) error) error {
	ctx = logger.WithLogger(ctx, c.logger)
	app, err := connect(ctx, c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer app.cleanup()
	return fn(ctx, app)
}

func serveCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return c.withApp(ctx, func(ctx context.Context, app *application) error {
				if c.cfg.Bootstrap.SeedOnStart {
					if _, err := app.bootstrap(ctx); err != nil {
						return fmt.Errorf("bootstrap failed: %w", err)
					}
				}
				return app.startHTTPServer(ctx, app.setupRouter())
			})
		},
	}
}

var migrateCommands = []string{"up", "down", "status", "version", "reset"}

func migrateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate [up|down|status|version|reset]",
		Short: "Manage the database schema",
		Long: `Apply or inspect the embedded schema migrations.

Examples:
  taskboard migrate up
  taskboard migrate status`,
		ValidArgs: migrateCommands,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logger.WithLogger(cmd.Context(), c.logger)
			db, err := postgres.Open(ctx, c.cfg.Database)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			return postgres.Migrate(ctx, db.DB, args[0], c.logger)
		},
	}
}

func bootstrapCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Seed the admin account and the default buckets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd.Context(), func(ctx context.Context, app *application) error {
				res, err := app.bootstrap(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "admin seeded: %t\nbuckets seeded: %t\n",
					res.AdminSeeded, res.BucketsSeeded)
				return nil
			})
		},
	}
}

func passwdCmd(c *cli) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "passwd <username>",
		Short: "Set a user's password",
		Long: `Set a user's password. Without --password the new password is read
from the first line of standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				if password, err = readLine(cmd); err != nil {
					return err
				}
			}
			return c.withApp(cmd.Context(), func(ctx context.Context, app *application) error {
				if err := app.accounts.ChangePassword(ctx, args[0], password); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "password updated for %s\n", args[0])
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "new password")

	return cmd
}

func readLine(cmd *cobra.Command) (string, error) {
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
