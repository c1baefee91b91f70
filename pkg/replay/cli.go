package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/kr/pretty"
	"github.com/travigo/opsconsole/pkg/config"
	"github.com/travigo/opsconsole/pkg/ctdf"
	"github.com/travigo/opsconsole/pkg/dataaggregator/global"
	"github.com/travigo/opsconsole/pkg/dataaggregator/query"
	"github.com/urfave/cli/v2"
)

// Capture is a saved pair of upstream responses, replayable without network access
type Capture struct {
	Status    []*ctdf.VehicleReplayStatus `json:"status"`
	Positions *ctdf.PositionPage          `json:"positions"`
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "replay",
		Usage: "Reconstruct vehicle replays from the command line",
		Subcommands: []*cli.Command{
			{
				Name:  "inspect",
				Usage: "print the clustered timeline of a vehicle",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "vehicle",
						Usage: "Vehicle id",
					},
					&cli.StringFlag{
						Name:  "service-date",
						Usage: "Service date, YYYY-MM-DD",
					},
					&cli.StringFlag{
						Name:  "start-time",
						Value: "00:00",
					},
					&cli.StringFlag{
						Name: "end-time",
					},
					&cli.StringFlag{
						Name:  "window",
						Value: "P1D",
						Usage: "ISO8601 duration used when end-time isn't set",
					},
					&cli.StringFlag{
						Name:  "filter",
						Usage: "Event filter expression, eg. 'speed > 0'",
					},
					&cli.StringFlag{
						Name:  "capture",
						Usage: "Replay a saved capture file instead of calling the upstream API",
					},
					&cli.IntFlag{
						Name:  "limit",
						Value: DefaultDisplayLimit,
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					var eventFilter *EventFilter
					if c.String("filter") != "" {
						eventFilter, err = CompileEventFilter(c.String("filter"))
						if err != nil {
							return err
						}
					}

					var result *Result
					if c.String("capture") != "" {
						result, err = inspectCapture(c.String("capture"), cfg, eventFilter, c.Int("limit"))
					} else {
						result, err = inspectUpstream(c, cfg, eventFilter)
					}
					if err != nil {
						return err
					}

					fmt.Printf("%d events, %d displayed, more: %t\n", result.TotalCount, result.DisplayedCount, result.HasMore)
					for _, group := range result.Clustered {
						pretty.Println(group)
					}

					return nil
				},
			},
		},
	}
}

func inspectCapture(path string, cfg *config.Config, eventFilter *EventFilter, limit int) (*Result, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var capture Capture
	if err := json.Unmarshal(contents, &capture); err != nil {
		return nil, fmt.Errorf("parse capture: %w", err)
	}

	result := &Result{Fetched: true}

	events, err := Normalize(capture.Status, capture.Positions, cfg.RouteIndex())
	if errors.Is(err, ErrNoData) {
		result.Fetched = false
	} else if err != nil {
		return nil, err
	}

	events, err = eventFilter.Apply(events)
	if err != nil {
		return nil, err
	}

	result.Timeline = MergeAndCluster(events, limit)
	result.Events = SortEvents(events)

	return result, nil
}

func inspectUpstream(c *cli.Context, cfg *config.Config, eventFilter *EventFilter) (*Result, error) {
	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	aggregator, err := global.Setup(cfg)
	if err != nil {
		return nil, err
	}

	service := &Service{
		Aggregator:   aggregator,
		Routes:       cfg.RouteIndex(),
		Location:     location,
		DisplayLimit: c.Int("limit"),
		PageSize:     query.DefaultPositionPageSize,
	}

	filter := &ctdf.TripSearchFilter{
		SearchTerm: ctdf.SearchTerm{Type: ctdf.SearchTermTypeVehicle, ID: c.String("vehicle")},
		SearchDate: c.String("service-date"),
		StartTime:  c.String("start-time"),
		EndTime:    c.String("end-time"),
		Window:     c.String("window"),
		TimeType:   ctdf.TimeTypeActual,
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	return service.Replay(c.Context, &Request{
		VehicleID:   c.String("vehicle"),
		Filter:      filter,
		EventFilter: eventFilter,
	})
}
