package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"bookcatalog/internal/config"
	"bookcatalog/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	logger.Setup(logger.Config{Level: os.Getenv("LOG_LEVEL"), Format: logger.ParseLogFormat(os.Getenv("LOG_FORMAT"))})
	loadEnvFiles()

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "migrate",
		Usage: "Apply and inspect the books database schema",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dsn",
				Usage:   "Postgres connection string",
				EnvVars: []string{"DB_DSN"},
				Value:   databaseDSN(),
			},
			&cli.StringFlag{
				Name:    "dir",
				Usage:   "Directory holding goose SQL migrations",
				EnvVars: []string{"MIGRATIONS_DIR"},
				Value:   migrationsDir(),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Apply all pending migrations",
				Action: withDB(func(c *cli.Context, db *sql.DB) error {
					if err := goose.UpContext(c.Context, db, c.String("dir")); err != nil {
						return fmt.Errorf("run migrations: %w", err)
					}
					log.Info().Msg("migrations applied")
					return nil
				}),
			},
			{
				Name:  "down",
				Usage: "Roll back the latest migration",
				Action: withDB(func(c *cli.Context, db *sql.DB) error {
					if err := goose.DownContext(c.Context, db, c.String("dir")); err != nil {
						return fmt.Errorf("roll back migration: %w", err)
					}
					log.Info().Msg("migration rolled back")
					return nil
				}),
			},
			{
				Name:  "status",
				Usage: "Print the state of every migration",
				Action: withDB(func(c *cli.Context, db *sql.DB) error {
					return goose.StatusContext(c.Context, db, c.String("dir"))
				}),
			},
			{
				Name:      "create",
				Usage:     "Create a new SQL migration",
				ArgsUsage: "NAME",
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						return errors.New("a migration name is required")
					}
					if err := goose.Create(nil, c.String("dir"), name, "sql"); err != nil {
						return fmt.Errorf("create migration: %w", err)
					}
					log.Info().Str("name", name).Msg("migration created")
					return nil
				},
			},
		},
	}
}

// withDB opens the database named by --dsn for the duration of action.
func withDB(action func(c *cli.Context, db *sql.DB) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		ctx := c.Context
		if ctx == nil {
			ctx = context.Background()
		}

		pool, err := pgxpool.New(ctx, c.String("dsn"))
		if err != nil {
			return fmt.Errorf("connect to %s: %w", config.RedactDSN(c.String("dsn")), err)
		}
		defer pool.Close()

		db := stdlib.OpenDBFromPool(pool)
		defer db.Close()

		goose.SetBaseFS(nil)
		if err := goose.SetDialect("postgres"); err != nil {
			return err
		}
		return action(c, db)
	}
}
