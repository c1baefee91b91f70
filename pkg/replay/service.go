package replay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/opsconsole/pkg/ctdf"
	"github.com/travigo/opsconsole/pkg/dataaggregator"
	"github.com/travigo/opsconsole/pkg/dataaggregator/query"
	"github.com/travigo/opsconsole/pkg/dataaggregator/source"
	"github.com/travigo/opsconsole/pkg/elastic_client"
)

const maxConcurrentPageFetches = 4

// Service fetches the raw replay data of a vehicle and turns it into a Timeline
type Service struct {
	Aggregator *dataaggregator.Aggregator

	// Routes is used when the upstream route list is unavailable
	Routes   map[string]ctdf.Route
	Location *time.Location

	DisplayLimit int
	PageSize     int
}

type Request struct {
	VehicleID string
	Filter    *ctdf.TripSearchFilter

	DisplayLimit int
	EventFilter  *EventFilter
}

type Result struct {
	*Timeline

	// Fetched is false when neither status events nor positions exist for the request
	Fetched bool `json:"fetched" groups:"basic"`
	// Events are the normalised and filtered events before truncation, in timeline order
	Events []*ctdf.VehicleEvent `json:"-"`
}

type ReplayRequestElasticEvent struct {
	Timestamp time.Time

	VehicleID string
	Fetched   bool

	TotalCount     int
	DisplayedCount int

	Duration string
}

func (s *Service) Replay(ctx context.Context, request *Request) (*Result, error) {
	startTime := time.Now()

	startDateTime, err := request.Filter.StartDateTime(s.Location)
	if err != nil {
		return nil, err
	}
	endDateTime, err := request.Filter.EndDateTime(s.Location)
	if err != nil {
		return nil, err
	}

	var status []*ctdf.VehicleReplayStatus
	var positions *ctdf.PositionPage
	routes := s.Routes

	fetchPool := pool.New().WithContext(ctx).WithCancelOnError()
	fetchPool.Go(func(ctx context.Context) error {
		var err error
		status, err = dataaggregator.Lookup[[]*ctdf.VehicleReplayStatus](ctx, s.Aggregator, query.VehicleReplay{
			VehicleID:     request.VehicleID,
			ServiceDate:   request.Filter.SearchDate,
			TimeType:      request.Filter.TimeType,
			StartDateTime: startDateTime,
			EndDateTime:   endDateTime,
		})
		if errors.Is(err, source.NotFoundError) {
			return nil
		}

		return err
	})
	fetchPool.Go(func(ctx context.Context) error {
		var err error
		positions, err = s.fetchAllPositions(ctx, request.VehicleID, startDateTime, endDateTime)

		return err
	})
	fetchPool.Go(func(ctx context.Context) error {
		upstreamRoutes, err := dataaggregator.Lookup[[]ctdf.Route](ctx, s.Aggregator, query.Routes{})
		if err != nil {
			log.Debug().Err(err).Msg("Using configured routes")
			return nil
		}

		routes = mergeRoutes(s.Routes, upstreamRoutes)
		return nil
	})

	if err := fetchPool.Wait(); err != nil {
		return nil, err
	}

	result := &Result{Fetched: true}

	events, err := Normalize(status, positions, routes)
	if errors.Is(err, ErrNoData) {
		result.Fetched = false
	} else if err != nil {
		return nil, err
	}

	events = FilterWindow(events, startDateTime.Unix(), endDateTime.Unix())

	events, err = request.EventFilter.Apply(events)
	if err != nil {
		return nil, err
	}

	displayLimit := request.DisplayLimit
	if displayLimit <= 0 {
		displayLimit = s.DisplayLimit
	}

	result.Timeline = MergeAndCluster(events, displayLimit)
	result.Events = SortEvents(events)

	recordReplayRequest(request.VehicleID, result, time.Since(startTime))

	return result, nil
}

// fetchAllPositions reads the first page to learn the total count and fetches the rest concurrently
func (s *Service) fetchAllPositions(ctx context.Context, vehicleID string, startDateTime time.Time, endDateTime time.Time) (*ctdf.PositionPage, error) {
	pageQuery := query.VehiclePositions{
		VehicleID:     vehicleID,
		StartDateTime: startDateTime,
		EndDateTime:   endDateTime,
		Limit:         s.PageSize,
	}

	firstPage, err := dataaggregator.Lookup[*ctdf.PositionPage](ctx, s.Aggregator, pageQuery)
	if errors.Is(err, source.NotFoundError) {
		return &ctdf.PositionPage{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("fetch positions page 0: %w", err)
	}
	if firstPage == nil {
		return &ctdf.PositionPage{}, nil
	}

	pageSize := pageQuery.PageSize()
	pageCount := (firstPage.Count + pageSize - 1) / pageSize

	pages := make([]*ctdf.PositionPage, pageCount)
	if pageCount > 0 {
		pages[0] = firstPage
	}

	pagePool := pool.New().WithContext(ctx).WithCancelOnError().WithMaxGoroutines(maxConcurrentPageFetches)
	for pageNumber := 1; pageNumber < pageCount; pageNumber++ {
		pageNumber := pageNumber
		pagePool.Go(func(ctx context.Context) error {
			nextQuery := pageQuery
			nextQuery.Page = pageNumber

			page, err := dataaggregator.Lookup[*ctdf.PositionPage](ctx, s.Aggregator, nextQuery)
			if err != nil {
				return fmt.Errorf("fetch positions page %d: %w", pageNumber, err)
			}

			pages[pageNumber] = page
			return nil
		})
	}

	if err := pagePool.Wait(); err != nil {
		return nil, err
	}

	combined := &ctdf.PositionPage{Count: firstPage.Count}
	for _, page := range pages {
		if page != nil {
			combined.Data = append(combined.Data, page.Data...)
		}
	}
	if pageCount == 0 {
		combined.Data = firstPage.Data
	}

	return combined, nil
}

func mergeRoutes(configured map[string]ctdf.Route, upstream []ctdf.Route) map[string]ctdf.Route {
	routes := map[string]ctdf.Route{}

	for routeID, route := range configured {
		routes[routeID] = route
	}
	for _, route := range upstream {
		routes[route.RouteID] = route
	}

	return routes
}

func recordReplayRequest(vehicleID string, result *Result, duration time.Duration) {
	if elastic_client.Client == nil {
		return
	}

	currentTime := time.Now()
	indexName := elastic_client.WeeklyIndexName("replay-requests", currentTime)

	elasticEvent, _ := json.Marshal(ReplayRequestElasticEvent{
		Timestamp: currentTime,

		VehicleID: vehicleID,
		Fetched:   result.Fetched,

		TotalCount:     result.TotalCount,
		DisplayedCount: result.DisplayedCount,

		Duration: duration.String(),
	})

	elastic_client.IndexRequest(indexName, bytes.NewReader(elasticEvent))
}
