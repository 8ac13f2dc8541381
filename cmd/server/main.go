// cmd/server/main.go
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fruit-order-service/internal/app"
	"fruit-order-service/internal/config"
	"fruit-order-service/internal/logger"
	"fruit-order-service/internal/version"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:    "fruit-order-service",
		Usage:   "HTTP service for fruit delivery orders",
		Version: version.Version(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env-file",
				Usage:   "dotenv file loaded before reading the environment",
				Value:   ".env",
				EnvVars: []string{"ENV_FILE"},
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP server (default)",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "create or update the orders table and exit",
				Action: migrate,
			},
			{
				Name:  "version",
				Usage: "print build information",
				Action: func(*cli.Context) error {
					fmt.Println(version.String())
					return nil
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.WithError(err).Fatal("fruit-order-service exited")
	}
}

func load(c *cli.Context) (config.Config, *log.Logger, error) {
	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger.New(cfg.LogLevel, cfg.LogFormat), nil
}

func serve(c *cli.Context) error {
	cfg, l, err := load(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx, cfg, l)
}

func migrate(c *cli.Context) error {
	cfg, l, err := load(c)
	if err != nil {
		return err
	}
	return app.Migrate(cfg, l)
}
