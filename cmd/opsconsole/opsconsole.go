package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/opsconsole/pkg/api"
	"github.com/travigo/opsconsole/pkg/recorder"
	"github.com/travigo/opsconsole/pkg/replay"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	// .env is optional, the real environment always wins
	_ = godotenv.Load()

	if os.Getenv("OPSCONSOLE_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("OPSCONSOLE_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "opsconsole",
		Description: "Operations console backend - vehicle replays, trip search and the replay recorder",

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "YAML config file",
				EnvVars: []string{"OPSCONSOLE_CONFIG"},
			},
		},

		Commands: []*cli.Command{
			api.RegisterCLI(),
			recorder.RegisterCLI(),
			replay.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
