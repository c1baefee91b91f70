package triphistory

import (
	"context"
	"errors"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/travigo/opsconsole/pkg/ctdf"
	"github.com/travigo/opsconsole/pkg/dataaggregator/query"
	"github.com/travigo/opsconsole/pkg/dataaggregator/source"
)

var searchParameters = map[ctdf.SearchTermType]string{
	ctdf.SearchTermTypeRoute:   "routeShortName",
	ctdf.SearchTermTypeStop:    "stopCode",
	ctdf.SearchTermTypeTripID:  "tripId",
	ctdf.SearchTermTypeVehicle: "vehicleId",
}

// Source is the trip history search backend, only used for service dates the strategy assigns to it
type Source struct {
	BaseURL  string
	Fetcher  *source.HTTPFetcher
	Strategy source.SearchStrategy
}

func (s Source) GetName() string {
	return "Trip History API"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf([]*ctdf.TripSummary{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	tripSearch, ok := q.(query.TripSearch)
	if !ok || s.BaseURL == "" {
		return nil, source.UnsupportedSourceError
	}

	serviceDate, err := tripSearch.Filter.ServiceDate(tripSearch.Location)
	if err != nil {
		return nil, err
	}

	if !s.Strategy.UseHistory(serviceDate) {
		return nil, source.UnsupportedSourceError
	}

	parameter, exists := searchParameters[tripSearch.Filter.SearchTerm.Type]
	if !exists {
		return nil, errors.New("Unknown search term type")
	}

	startDateTime, endDateTime, err := tripSearch.Window()
	if err != nil {
		return nil, err
	}

	values := url.Values{}
	values.Set("timeType", string(tripSearch.Filter.TimeType))
	values.Set("startDateTime", startDateTime.Format(time.RFC3339))
	values.Set("endDateTime", endDateTime.Format(time.RFC3339))
	values.Set(parameter, tripSearch.Filter.SearchTerm.ID)

	requestURL := strings.TrimSuffix(s.BaseURL, "/") + "/trips/" + url.PathEscape(tripSearch.Filter.SearchDate) + "?" + values.Encode()

	var trips []*ctdf.TripSummary
	if err := s.Fetcher.GetJSON(ctx, requestURL, &trips); err != nil {
		return nil, err
	}

	return trips, nil
}
