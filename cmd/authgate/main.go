package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "authgate",
		Usage: "Registration, login and token-protected API",
		Commands: []*cli.Command{
			serveCmd(),
			hashPasswordCmd(),
		},
		DefaultCommand: "serve",
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("authgate failed")
	}
}
