package opsapi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/travigo/opsconsole/pkg/ctdf"
	"github.com/travigo/opsconsole/pkg/dataaggregator/query"
	"github.com/travigo/opsconsole/pkg/dataaggregator/source"
)

var searchPathSegments = map[ctdf.SearchTermType]string{
	ctdf.SearchTermTypeRoute:   "routes",
	ctdf.SearchTermTypeStop:    "stops",
	ctdf.SearchTermTypeTripID:  "tripId",
	ctdf.SearchTermTypeVehicle: "vehicles",
}

// Source is the operations REST API
type Source struct {
	BaseURL  string
	Fetcher  *source.HTTPFetcher
	Strategy source.SearchStrategy
}

func (s Source) GetName() string {
	return "Operations API"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf([]*ctdf.VehicleReplayStatus{}),
		reflect.TypeOf(ctdf.PositionPage{}),
		reflect.TypeOf(ctdf.TripDetail{}),
		reflect.TypeOf([]*ctdf.TripSummary{}),
		reflect.TypeOf([]ctdf.Route{}),
	}
}

func (s Source) endpoint(pathSegments ...string) string {
	escaped := make([]string, 0, len(pathSegments))
	for _, segment := range pathSegments {
		escaped = append(escaped, url.PathEscape(segment))
	}

	return strings.TrimSuffix(s.BaseURL, "/") + "/" + strings.Join(escaped, "/")
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	if s.BaseURL == "" {
		return nil, source.UnsupportedSourceError
	}

	switch q := q.(type) {
	case query.VehicleReplay:
		var status []*ctdf.VehicleReplayStatus
		requestURL := s.endpoint("history", "vehicle", q.VehicleID) + "?" + q.ToValues().Encode()

		if err := s.Fetcher.GetJSON(ctx, requestURL, &status); err != nil {
			return nil, err
		}

		return status, nil
	case query.VehiclePositions:
		var page ctdf.PositionPage
		requestURL := s.endpoint("vehicle", "position", q.VehicleID) + "?" + q.ToValues().Encode()

		if err := s.Fetcher.GetJSON(ctx, requestURL, &page); err != nil {
			return nil, err
		}

		return &page, nil
	case query.TripDetail:
		var trip ctdf.TripDetail

		if err := s.Fetcher.GetJSON(ctx, s.endpoint("trips", q.TripID), &trip); err != nil {
			return nil, err
		}

		return &trip, nil
	case query.Routes:
		var routes []ctdf.Route

		if err := s.Fetcher.GetJSON(ctx, s.endpoint("routes"), &routes); err != nil {
			return nil, err
		}

		return routes, nil
	case query.TripSearch:
		return s.searchTrips(ctx, q)
	}

	return nil, source.UnsupportedSourceError
}

func (s Source) searchTrips(ctx context.Context, q query.TripSearch) (interface{}, error) {
	serviceDate, err := q.Filter.ServiceDate(q.Location)
	if err != nil {
		return nil, err
	}

	if s.Strategy.UseHistory(serviceDate) {
		return nil, source.UnsupportedSourceError
	}

	pathSegment, exists := searchPathSegments[q.Filter.SearchTerm.Type]
	if !exists {
		return nil, errors.New("Unknown search term type")
	}

	startDateTime, endDateTime, err := q.Window()
	if err != nil {
		return nil, err
	}

	values := url.Values{}
	values.Set("serviceDate", q.Filter.SearchDate)
	values.Set("timeType", string(q.Filter.TimeType))
	values.Set("startDateTime", startDateTime.Format(time.RFC3339))
	values.Set("endDateTime", endDateTime.Format(time.RFC3339))

	var trips []*ctdf.TripSummary
	requestURL := fmt.Sprintf("%s/trips?%s", s.endpoint(pathSegment, q.Filter.SearchTerm.ID), values.Encode())

	if err := s.Fetcher.GetJSON(ctx, requestURL, &trips); err != nil {
		return nil, err
	}

	return trips, nil
}
