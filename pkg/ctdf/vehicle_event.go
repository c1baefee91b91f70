package ctdf

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnknownEventType = errors.New("unknown event type")

// VehicleEventIDFormat is used to synthesise identifiers for position pings, "<vehicleId>-<timestamp>"
var VehicleEventIDFormat = "%s-%s"

type VehicleEvent struct {
	ID   string           `json:"id" groups:"basic"`
	Type VehicleEventType `json:"type" groups:"basic"`

	Timestamp int64 `json:"timestamp" groups:"basic"`

	TripID         string `json:"tripId,omitempty" groups:"basic"`
	RouteShortName string `json:"routeShortName,omitempty" groups:"basic"`
	RouteID        string `json:"routeId,omitempty" groups:"basic"`

	Position *Position `json:"position,omitempty" groups:"basic"`
}

func (e *VehicleEvent) UnmarshalJSON(data []byte) error {
	type vehicleEventAlias VehicleEvent
	raw := struct {
		*vehicleEventAlias
		Timestamp UnixTimestamp `json:"timestamp"`
	}{
		vehicleEventAlias: (*vehicleEventAlias)(e),
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.Timestamp, _ = raw.Timestamp.Int64()

	return nil
}

func (e *VehicleEvent) IsPosition() bool {
	return e.Type == VehicleEventTypeVehiclePosition
}

// HasLocation is false for placeholder events which carry a position without coordinates
func (e *VehicleEvent) HasLocation() bool {
	return e.Position != nil && e.Position.Latitude != nil && e.Position.Longitude != nil
}

type VehicleEventType string

const (
	VehicleEventTypeSignOn           VehicleEventType = "signOn"
	VehicleEventTypeSignOff          VehicleEventType = "signOff"
	VehicleEventTypeKeyOn            VehicleEventType = "keyOn"
	VehicleEventTypeKeyOff           VehicleEventType = "keyOff"
	VehicleEventTypeDoorOpen         VehicleEventType = "doorOpen"
	VehicleEventTypeDoorClosed       VehicleEventType = "doorClosed"
	VehicleEventTypeStoppingLightOn  VehicleEventType = "stoppingLightOn"
	VehicleEventTypeStoppingLightOff VehicleEventType = "stoppingLightOff"
	VehicleEventTypeVehiclePosition  VehicleEventType = "vehiclePosition"
)

var vehicleEventTypes = map[VehicleEventType]bool{
	VehicleEventTypeSignOn:           true,
	VehicleEventTypeSignOff:          true,
	VehicleEventTypeKeyOn:            true,
	VehicleEventTypeKeyOff:           true,
	VehicleEventTypeDoorOpen:         true,
	VehicleEventTypeDoorClosed:       true,
	VehicleEventTypeStoppingLightOn:  true,
	VehicleEventTypeStoppingLightOff: true,
	VehicleEventTypeVehiclePosition:  true,
}

func ParseVehicleEventType(value string) (VehicleEventType, error) {
	eventType := VehicleEventType(value)

	if !vehicleEventTypes[eventType] {
		return "", fmt.Errorf("%w: %q", ErrUnknownEventType, value)
	}

	return eventType, nil
}

func (t *VehicleEventType) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	eventType, err := ParseVehicleEventType(value)
	if err != nil {
		return err
	}

	*t = eventType
	return nil
}
