package api

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/travigo/opsconsole/pkg/api/stats"
	"github.com/travigo/opsconsole/pkg/config"
	"github.com/travigo/opsconsole/pkg/dataaggregator/global"
	"github.com/travigo/opsconsole/pkg/database"
	"github.com/travigo/opsconsole/pkg/elastic_client"
	"github.com/travigo/opsconsole/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the operations console replay API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Usage: "listen target for the web server, overrides the config file",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					if cfg.UseArchive {
						if err := database.Connect(); err != nil {
							return err
						}
					}
					if err := elastic_client.Connect(false); err != nil {
						return err
					}
					defer elastic_client.WaitUntilQueueEmpty()

					if err := redis_client.Connect(); err != nil {
						log.Warn().Err(err).Msg("Redis unavailable, results will not be cached")
						redis_client.Client = nil
					}

					aggregator, err := global.Setup(cfg)
					if err != nil {
						return err
					}

					server, err := NewServer(cfg, aggregator)
					if err != nil {
						return err
					}

					go stats.UpdateRecordsStats(context.Background())

					listen := cfg.Listen
					if c.String("listen") != "" {
						listen = c.String("listen")
					}

					log.Info().Str("listen", listen).Msg("Starting web api")

					return server.Listen(listen)
				},
			},
		},
	}
}
