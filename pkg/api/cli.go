package api

import (
	"github.com/smartroute/smartroute/pkg/app"
	"github.com/smartroute/smartroute/pkg/config"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the route planning web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					appConfig, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					planningContext, err := app.New(c.Context, appConfig)
					if err != nil {
						return err
					}

					return SetupServer(c.String("listen"), planningContext)
				},
			},
		},
	}
}
