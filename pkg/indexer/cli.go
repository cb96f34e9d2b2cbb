package indexer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/smartroute/smartroute/pkg/config"
	"github.com/smartroute/smartroute/pkg/dataimporter"
	"github.com/smartroute/smartroute/pkg/elastic_client"
	"github.com/urfave/cli/v2"
)

const initialListSize = 250

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "places",
		Usage: "Inspect and index the places dataset",
		Subcommands: []*cli.Command{
			{
				Name:  "index",
				Usage: "do an index of the Places into Elasticsearch",
				Action: func(c *cli.Context) error {
					appConfig, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}
					if err := elastic_client.Connect(appConfig.Elasticsearch, true); err != nil {
						return err
					}

					places, err := dataimporter.LoadPlaces(appConfig.Places.File)
					if err != nil {
						return err
					}

					indexName, err := IndexPlaces(context.Background(), elastic_client.Client, appConfig.Elasticsearch.Index, places)
					if err != nil {
						return err
					}

					log.Info().Str("index", indexName).Msg("Index queue emptied")

					return nil
				},
			},
			{
				Name:  "list",
				Usage: "print the initial suggestion list",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Value: initialListSize,
					},
				},
				Action: func(c *cli.Context) error {
					appConfig, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					places, err := dataimporter.LoadPlaces(appConfig.Places.File)
					if err != nil {
						return err
					}

					for _, name := range Build(places).InitialList(c.Int("limit")) {
						fmt.Fprintln(c.App.Writer, name)
					}

					return nil
				},
			},
			{
				Name:      "suggest",
				Usage:     "print suggestions for a prefix",
				ArgsUsage: "<text>",
				Action: func(c *cli.Context) error {
					appConfig, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					places, err := dataimporter.LoadPlaces(appConfig.Places.File)
					if err != nil {
						return err
					}

					for _, name := range Build(places).Suggest(c.Args().First(), appConfig.Places.SuggestionLimit) {
						fmt.Fprintln(c.App.Writer, name)
					}

					return nil
				},
			},
		},
	}
}
