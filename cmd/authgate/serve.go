package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/hongminglow/authgate/internal/config"
	"github.com/hongminglow/authgate/internal/logutil"
	"github.com/hongminglow/authgate/internal/server"
	"github.com/hongminglow/authgate/internal/storage"
	"github.com/hongminglow/authgate/internal/storage/mongo"
	"github.com/hongminglow/authgate/internal/storage/postgres"
	"github.com/hongminglow/authgate/internal/storage/sqlite"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "dotenv file to load before reading the environment",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:  "port",
				Usage: "listen port, overrides PORT",
			},
		},
		Action: func(c *cli.Context) error {
			loadLocalEnv(c.String("env-file"))
			if port := c.String("port"); port != "" {
				os.Setenv("PORT", port)
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := logutil.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}

			ctx := c.Context
			store, err := openStore(ctx, cfg)
			if err != nil {
				return fmt.Errorf("init store: %w", err)
			}
			defer func() {
				if err := store.Close(context.Background()); err != nil {
					log.Error().Err(err).Msg("close store")
				}
			}()
			log.Info().Str("driver", cfg.StoreDriver).Msg("credential store connected")

			srv, err := server.New(cfg, store, log.Logger)
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}
}

func loadLocalEnv(path string) {
	if err := godotenv.Load(path); err != nil {
		log.Info().Str("path", path).Msg("no .env file found; relying on existing environment")
	}
}

func openStore(ctx context.Context, cfg config.Config) (storage.UserStore, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		return postgres.NewUserStore(ctx, cfg.DatabaseURL)
	case config.DriverSQLite:
		return sqlite.NewUserStore(ctx, cfg.SQLitePath)
	default:
		return mongo.NewUserStore(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoUsersCollection)
	}
}
