package recorder

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/opsconsole/pkg/consumer"
	"github.com/travigo/opsconsole/pkg/ctdf"
	"github.com/travigo/opsconsole/pkg/dataaggregator/source"
	"github.com/travigo/opsconsole/pkg/database"
	"github.com/travigo/opsconsole/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

const numConsumers = 5
const batchSize = 200

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "recorder",
		Usage: "Archives vehicle events and positions for replays of older service days",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run the recorder queue consumers",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "stats-listen",
						Value: ":3333",
						Usage: "Address of the queue stats server",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						return err
					}

					redisConsumer := &consumer.RedisConsumer{
						QueueName:       QueueName,
						NumberConsumers: numConsumers,
						BatchSize:       batchSize,
						Timeout:         2 * time.Second,
						Consumer:        NewBatchConsumer(0, MongoBulkWriter{}),
						StatsListen:     c.String("stats-listen"),
					}
					if err := redisConsumer.Setup(); err != nil {
						return err
					}

					waitForInterrupt()

					<-redis_client.QueueConnection.StopAllConsuming() // wait for all Consume() calls to finish

					return nil
				},
			},
			{
				Name:  "cleaner",
				Usage: "run the queue cleaner for the recorder queue",
				Action: func(c *cli.Context) error {
					if err := redis_client.Connect(); err != nil {
						return err
					}

					ctx, cancel := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
					defer cancel()

					StartCleaner(ctx)

					return nil
				},
			},
			{
				Name:  "gtfsrt",
				Usage: "decode a GTFS-RT vehicle positions feed onto the recorder queue",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "url",
						Usage: "Feed URL",
					},
					&cli.StringFlag{
						Name:  "file",
						Usage: "Read the feed from a local file instead of a URL",
					},
					&cli.StringFlag{
						Name:  "provider",
						Value: "GTFS-RT",
						Usage: "Provider name stored with the archived positions",
					},
					&cli.DurationFlag{
						Name:  "interval",
						Usage: "Poll the URL at this interval, zero fetches once",
					},
					&cli.DurationFlag{
						Name:  "max-age",
						Value: 20 * time.Minute,
						Usage: "Skip positions older than this",
					},
				},
				Action: func(c *cli.Context) error {
					if c.String("url") == "" && c.String("file") == "" {
						return cli.Exit("either --url or --file is required", 1)
					}

					if err := redis_client.Connect(); err != nil {
						return err
					}

					queue, err := redis_client.QueueConnection.OpenQueue(QueueName)
					if err != nil {
						return err
					}

					decoder := &GTFSRealtime{
						DataSource: &ctdf.DataSource{
							OriginalFormat: "GTFS-RT",
							Provider:       c.String("provider"),
							Identifier:     c.String("url") + c.String("file"),
						},
						MaxAge: c.Duration("max-age"),
					}
					fetcher := source.NewHTTPFetcher()

					importFeed := func(ctx context.Context) error {
						var body []byte
						var err error

						if c.String("file") != "" {
							body, err = os.ReadFile(c.String("file"))
						} else {
							body, err = fetcher.GetBytes(ctx, c.String("url"))
						}
						if err != nil {
							return err
						}

						events, err := decoder.Decode(body, time.Now())
						if err != nil {
							return err
						}

						return Publish(queue, events)
					}

					interval := c.Duration("interval")
					if interval <= 0 || c.String("file") != "" {
						return importFeed(c.Context)
					}

					ctx, cancel := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
					defer cancel()

					ticker := time.NewTicker(interval)
					defer ticker.Stop()

					for {
						if err := importFeed(ctx); err != nil {
							log.Error().Err(err).Msg("Failed to import GTFS-RT feed")
						}

						select {
						case <-ctx.Done():
							return nil
						case <-ticker.C:
						}
					}
				},
			},
		},
	}
}

func waitForInterrupt() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	<-signals // wait for signal
	go func() {
		<-signals // hard exit on second signal (in case shutdown gets stuck)
		os.Exit(1)
	}()
}
