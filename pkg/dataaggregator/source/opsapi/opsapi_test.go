package opsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/opsconsole/pkg/ctdf"
	"github.com/travigo/opsconsole/pkg/dataaggregator/query"
	"github.com/travigo/opsconsole/pkg/dataaggregator/source"
)

func newTestSource(t *testing.T, handler http.HandlerFunc) Source {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	fetcher := source.NewHTTPFetcher()
	fetcher.InitialInterval = time.Millisecond

	return Source{
		BaseURL: server.URL + "/api/",
		Fetcher: fetcher,
	}
}

func TestVehicleReplay(t *testing.T) {
	opsAPI := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/history/vehicle/bus-7", r.URL.Path)
		assert.Equal(t, "2022-06-30", r.URL.Query().Get("serviceDate"))
		assert.Equal(t, "actualTime", r.URL.Query().Get("timeType"))
		assert.Equal(t, "2022-06-30T00:00:00Z", r.URL.Query().Get("startDateTime"))

		w.Write([]byte(`[{"trip": [{"id": "trip-a", "routeId": "R1", "event": [{"id": "e1", "type": "signOn", "timestamp": 100}]}]}]`))
	})

	status, err := opsAPI.Lookup(context.Background(), query.VehicleReplay{
		VehicleID:     "bus-7",
		ServiceDate:   "2022-06-30",
		TimeType:      ctdf.TimeTypeActual,
		StartDateTime: time.Date(2022, 6, 30, 0, 0, 0, 0, time.UTC),
		EndDateTime:   time.Date(2022, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	replayStatus := status.([]*ctdf.VehicleReplayStatus)
	require.Len(t, replayStatus, 1)
	assert.Equal(t, ctdf.VehicleEventTypeSignOn, replayStatus[0].Trip[0].Event[0].Type)
}

func TestVehiclePositions(t *testing.T) {
	opsAPI := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/vehicle/position/bus-7", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("skip"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))

		w.Write([]byte(`{"data": [{"vehicleId": "bus-7", "latitude": 51.5, "longitude": null, "timestamp": "1656614337"}], "count": 101}`))
	})

	page, err := opsAPI.Lookup(context.Background(), query.VehiclePositions{
		VehicleID: "bus-7",
		Page:      2,
		Limit:     50,
	})
	require.NoError(t, err)

	positionPage := page.(*ctdf.PositionPage)
	assert.Equal(t, 101, positionPage.Count)
	require.Len(t, positionPage.Data, 1)
	assert.Nil(t, positionPage.Data[0].Longitude)
	assert.Equal(t, ctdf.UnixTimestamp("1656614337"), positionPage.Data[0].Timestamp)
}

func TestTripDetailNotFound(t *testing.T) {
	opsAPI := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/trips/trip%2Fa", r.URL.EscapedPath())
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := opsAPI.Lookup(context.Background(), query.TripDetail{TripID: "trip/a"})

	assert.ErrorIs(t, err, source.NotFoundError)
}

func TestSearchTrips(t *testing.T) {
	filter := &ctdf.TripSearchFilter{
		SearchTerm: ctdf.SearchTerm{Type: ctdf.SearchTermTypeStop, ID: "STOP1"},
		SearchDate: "2022-06-30",
		StartTime:  "06:00",
		EndTime:    "07:00",
		TimeType:   ctdf.TimeTypeScheduled,
	}

	t.Run("legacy search endpoints", func(t *testing.T) {
		opsAPI := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/stops/STOP1/trips", r.URL.Path)
			assert.Equal(t, "scheduledTime", r.URL.Query().Get("timeType"))
			assert.Equal(t, "2022-06-30T07:00:00Z", r.URL.Query().Get("endDateTime"))

			w.Write([]byte(`[{"id": "trip-a", "routeShortName": "1"}]`))
		})

		trips, err := opsAPI.Lookup(context.Background(), query.TripSearch{Filter: filter, Location: time.UTC})
		require.NoError(t, err)

		assert.Len(t, trips.([]*ctdf.TripSummary), 1)
	})

	t.Run("left to the trip history backend after the cutover", func(t *testing.T) {
		opsAPI := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("the operations API should not be called")
		})
		opsAPI.Strategy = source.SearchStrategy{
			UseTripHistory:         true,
			TripHistoryEnabledFrom: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		}

		_, err := opsAPI.Lookup(context.Background(), query.TripSearch{Filter: filter, Location: time.UTC})

		assert.ErrorIs(t, err, source.UnsupportedSourceError)
	})
}

func TestUnconfiguredSource(t *testing.T) {
	_, err := Source{}.Lookup(context.Background(), query.Routes{})

	assert.ErrorIs(t, err, source.UnsupportedSourceError)
}
