package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/smartroute/smartroute/pkg/api"
	"github.com/smartroute/smartroute/pkg/api/routes"
	"github.com/smartroute/smartroute/pkg/app"
	"github.com/smartroute/smartroute/pkg/indexer"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("SMARTROUTE_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if os.Getenv("SMARTROUTE_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	smartroute := &cli.App{
		Name:        "smartroute",
		Description: "Multi-modal route planner for European cities",
		Version:     routes.BuildVersion(),

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "YAML configuration file",
				EnvVars: []string{"SMARTROUTE_CONFIG"},
			},
		},

		Commands: []*cli.Command{
			api.RegisterCLI(),
			app.RegisterCLI(),
			indexer.RegisterCLI(),
		},
	}

	err := smartroute.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
