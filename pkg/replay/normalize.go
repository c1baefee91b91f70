package replay

import (
	"errors"
	"fmt"

	"github.com/travigo/opsconsole/pkg/ctdf"
)

// ErrNoData is returned when neither status events nor positions were returned for the request.
// It is distinct from a timeline that is empty after filtering.
var ErrNoData = errors.New("no vehicle events or positions returned")

// Normalize flattens the vehicle status response and a position page into one list of events.
// Status events come first followed by positions, the result is not sorted.
func Normalize(status []*ctdf.VehicleReplayStatus, positions *ctdf.PositionPage, routes map[string]ctdf.Route) ([]*ctdf.VehicleEvent, error) {
	var events []*ctdf.VehicleEvent

	for _, vehicleStatus := range status {
		if vehicleStatus == nil {
			continue
		}

		for _, trip := range vehicleStatus.Trip {
			if trip == nil {
				continue
			}

			routeShortName := ""
			if trip.RouteID != "" {
				routeShortName = routes[trip.RouteID].RouteShortName
			}

			for _, event := range trip.Event {
				if event == nil {
					continue
				}

				stamped := *event
				stamped.TripID = trip.ID
				stamped.RouteShortName = routeShortName

				events = append(events, &stamped)
			}
		}
	}

	if positions != nil {
		for _, position := range positions.Data {
			if position == nil {
				continue
			}

			events = append(events, normalizePosition(position))
		}
	}

	if len(events) == 0 {
		return nil, ErrNoData
	}

	return events, nil
}

func normalizePosition(position *ctdf.Position) *ctdf.VehicleEvent {
	timestamp, _ := position.Timestamp.Int64()

	event := &ctdf.VehicleEvent{
		ID:        fmt.Sprintf(ctdf.VehicleEventIDFormat, position.VehicleID, position.Timestamp),
		Type:      ctdf.VehicleEventTypeVehiclePosition,
		Timestamp: timestamp,
		Position:  position,
	}

	if position.Trip != nil {
		event.TripID = position.Trip.TripID
		event.RouteID = position.Trip.RouteID
	}

	return event
}

// FilterWindow keeps the events with a timestamp inside the inclusive [from, to] window.
// A zero bound is open.
func FilterWindow(events []*ctdf.VehicleEvent, from int64, to int64) []*ctdf.VehicleEvent {
	filtered := []*ctdf.VehicleEvent{}

	for _, event := range events {
		if from != 0 && event.Timestamp < from {
			continue
		}
		if to != 0 && event.Timestamp > to {
			continue
		}

		filtered = append(filtered, event)
	}

	return filtered
}
