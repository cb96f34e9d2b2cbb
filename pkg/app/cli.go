package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/smartroute/smartroute/pkg/config"
	"github.com/smartroute/smartroute/pkg/ctdf"
	"github.com/sourcegraph/conc/pool"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const defaultBatchConcurrency = 4

type BatchResult struct {
	Request PlanRequest
	Plan    *ctdf.JourneyPlan
	Err     error
}

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "format",
		Value: FormatText,
		Usage: "output format: text, json or pretty",
	}
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "plan",
		Usage: "Plan routes from the command line",
		Subcommands: []*cli.Command{
			{
				Name:  "route",
				Usage: "plan a single route",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "from",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "to",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:  "via",
						Usage: "via stop, can be repeated",
					},
					&cli.StringFlag{
						Name:  "date",
						Usage: "travel date as YYYY-MM-DD, defaults to today",
					},
					&cli.IntFlag{
						Name:  "min-transfer",
						Value: -1,
						Usage: "minimum transfer time in minutes",
					},
					&cli.IntFlag{
						Name:  "max-transfers",
						Value: -1,
					},
					&cli.StringFlag{
						Name: "currency",
					},
					formatFlag(),
				},
				Action: func(c *cli.Context) error {
					planningContext, err := newFromCLI(c)
					if err != nil {
						return err
					}

					request := PlanRequest{
						From:     c.String("from"),
						To:       c.String("to"),
						Vias:     c.StringSlice("via"),
						Date:     c.String("date"),
						Currency: c.String("currency"),
					}
					if c.IsSet("min-transfer") {
						minTransfer := c.Int("min-transfer")
						request.MinTransfer = &minTransfer
					}
					if c.IsSet("max-transfers") {
						maxTransfers := c.Int("max-transfers")
						request.MaxTransfers = &maxTransfers
					}

					plan, planErr := planningContext.Plan(c.Context, request)
					if plan != nil {
						if err := Render(c.App.Writer, c.String("format"), plan); err != nil {
							return err
						}
					}

					if planErr != nil {
						return cli.Exit("", 1)
					}
					return nil
				},
			},
			{
				Name:      "batch",
				Usage:     "plan every route listed in a YAML file",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "concurrency",
						Value: defaultBatchConcurrency,
					},
					formatFlag(),
				},
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 1 {
						return errors.New("batch needs exactly one requests file")
					}

					requests, err := readBatchFile(c.Args().First())
					if err != nil {
						return err
					}

					planningContext, err := newFromCLI(c)
					if err != nil {
						return err
					}

					results := planningContext.PlanBatch(c.Context, requests, c.Int("concurrency"))

					return writeBatch(c.App.Writer, c.String("format"), results)
				},
			},
			{
				Name:  "health",
				Usage: "report whether real schedules are available",
				Action: func(c *cli.Context) error {
					planningContext, err := newFromCLI(c)
					if err != nil {
						return err
					}

					health, err := planningContext.Health(c.Context)
					if err != nil {
						return err
					}

					fmt.Fprintf(c.App.Writer, "%s (checked %s)\n", health.Mode, health.CheckedAt.Format("2006-01-02 15:04:05"))
					return nil
				},
			},
		},
	}
}

func newFromCLI(c *cli.Context) (*PlanningContext, error) {
	appConfig, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	return New(c.Context, appConfig)
}

func readBatchFile(path string) ([]PlanRequest, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var requests []PlanRequest
	if err := yaml.Unmarshal(contents, &requests); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return requests, nil
}

// PlanBatch plans independent routes concurrently, results keep the order of the requests
func (p *PlanningContext) PlanBatch(ctx context.Context, requests []PlanRequest, concurrency int) []BatchResult {
	if concurrency <= 0 {
		concurrency = defaultBatchConcurrency
	}

	results := make([]BatchResult, len(requests))

	workers := pool.New().WithMaxGoroutines(concurrency)
	for index, request := range requests {
		workers.Go(func() {
			plan, err := p.Plan(ctx, request)
			if err != nil {
				log.Debug().Err(err).Str("from", request.From).Str("to", request.To).Msg("Batch route failed")
			}

			results[index] = BatchResult{Request: request, Plan: plan, Err: err}
		})
	}
	workers.Wait()

	return results
}

func writeBatch(w io.Writer, format string, results []BatchResult) error {
	for _, result := range results {
		if format == FormatText || format == "" {
			fmt.Fprintf(w, "== %s → %s\n", result.Request.From, result.Request.To)
		}

		if result.Plan == nil {
			continue
		}
		if err := Render(w, format, result.Plan); err != nil {
			return err
		}
	}

	return nil
}
