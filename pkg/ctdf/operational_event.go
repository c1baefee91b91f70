package ctdf

import (
	"encoding/json"
	"fmt"
)

// OperationalEvent is a post-hoc modification of a trip recorded by the control room
type OperationalEvent struct {
	Type      OperationalEventType `json:"type" groups:"basic"`
	Timestamp UnixTimestamp        `json:"timestamp" groups:"basic"`

	// Stop is set for SKIPPED, REINSTATE_STOP and PLATFORM_CHANGE. For platform changes it
	// references the sequence of the original stop.
	Stop *StopReference `json:"stop,omitempty" groups:"basic"`

	OldStop *PlatformStop `json:"oldStop,omitempty" groups:"basic"`
	NewStop *PlatformStop `json:"newStop,omitempty" groups:"basic"`
}

// StopSequence returns false when the event does not reference a stop
func (e *OperationalEvent) StopSequence() (int, bool) {
	if e == nil || e.Stop == nil || e.Stop.StopSequence == nil {
		return 0, false
	}

	return *e.Stop.StopSequence, true
}

type StopReference struct {
	StopSequence *int `json:"stopSequence,omitempty" groups:"basic"`
}

type PlatformStop struct {
	StopCode string `json:"stopCode" groups:"basic"`
	StopName string `json:"stopName" groups:"basic"`
	StopID   string `json:"stopId" groups:"basic"`
}

type OperationalEventType string

const (
	OperationalEventTypeMissed         OperationalEventType = "MISSED"
	OperationalEventTypeCanceled       OperationalEventType = "CANCELED"
	OperationalEventTypeReinstateTrip  OperationalEventType = "REINSTATE_TRIP"
	OperationalEventTypeSkipped        OperationalEventType = "SKIPPED"
	OperationalEventTypeReinstateStop  OperationalEventType = "REINSTATE_STOP"
	OperationalEventTypePlatformChange OperationalEventType = "PLATFORM_CHANGE"
	OperationalEventTypeCopyTrip       OperationalEventType = "COPY_TRIP"
)

func ParseOperationalEventType(value string) (OperationalEventType, error) {
	switch eventType := OperationalEventType(value); eventType {
	case OperationalEventTypeMissed,
		OperationalEventTypeCanceled,
		OperationalEventTypeReinstateTrip,
		OperationalEventTypeSkipped,
		OperationalEventTypeReinstateStop,
		OperationalEventTypePlatformChange,
		OperationalEventTypeCopyTrip:
		return eventType, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEventType, value)
	}
}

func (t *OperationalEventType) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	eventType, err := ParseOperationalEventType(value)
	if err != nil {
		return err
	}

	*t = eventType
	return nil
}
