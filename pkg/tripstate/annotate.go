package tripstate

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/travigo/opsconsole/pkg/ctdf"
)

type TripTags struct {
	Missed          bool `json:"missed" groups:"basic"`
	Canceled        bool `json:"canceled" groups:"basic"`
	PlatformChanged bool `json:"platformChanged" groups:"basic"`
	SkippedStops    bool `json:"skippedStops" groups:"basic"`
	CopyTrip        bool `json:"copyTrip" groups:"basic"`
}

func GetTripTags(log []*ctdf.OperationalEvent) TripTags {
	tags := TripTags{
		Missed:          GetMissedEvent(log) != nil,
		Canceled:        GetCanceledEvent(log) != nil,
		PlatformChanged: GetPlatformChanges(log).Len() > 0,
		SkippedStops:    GetSkippedStops(log).Len() > 0,
	}

	for _, event := range log {
		if event != nil && event.Type == ctdf.OperationalEventTypeCopyTrip {
			tags.CopyTrip = true
			break
		}
	}

	return tags
}

// AnnotatedTrip is the stop list of a trip with its reconciled operational state
type AnnotatedTrip struct {
	Stops []*ctdf.AnnotatedStopEvent `json:"stops" groups:"basic"`

	CanceledEvent *ctdf.OperationalEvent `json:"canceledEvent,omitempty" groups:"basic"`
	// CancelIndex is where the trip cancelled marker is placed in Stops, nil if not cancelled
	CancelIndex *int `json:"cancelIndex,omitempty" groups:"basic"`

	SkippedStops    StopEventMap `json:"skippedStops" groups:"detailed"`
	PlatformChanges StopEventMap `json:"platformChanges" groups:"detailed"`

	Tags TripTags `json:"tags" groups:"basic"`
}

// AnnotateStops builds new annotated stop records from stops and the operational log. Every stop
// from the cancellation index onwards is marked cancelled. The inputs are left untouched.
func AnnotateStops(stops []*ctdf.StopEvent, log []*ctdf.OperationalEvent) (*AnnotatedTrip, error) {
	canceledEvent := GetCanceledEvent(log)
	skippedStops := GetSkippedStops(log)
	platformChanges := GetPlatformChanges(log)

	annotatedTrip := &AnnotatedTrip{
		Stops:           []*ctdf.AnnotatedStopEvent{},
		CanceledEvent:   canceledEvent,
		SkippedStops:    skippedStops,
		PlatformChanges: platformChanges,
		Tags:            GetTripTags(log),
	}

	cancelIndex, canceled := GetStopIndexAfterCancel(stops, canceledEvent)
	if canceled {
		annotatedTrip.CancelIndex = &cancelIndex
	}

	for i, stop := range stops {
		if stop == nil {
			continue
		}

		annotated := &ctdf.AnnotatedStopEvent{}
		if err := copier.CopyWithOption(&annotated.StopEvent, stop, copier.Option{DeepCopy: true}); err != nil {
			return nil, fmt.Errorf("copy stop %d: %w", stop.StopSequence, err)
		}

		if skipped, exists := skippedStops.Get(stop.StopSequence); exists {
			annotated.SkippedData = skipped
		}
		if platformChange, exists := platformChanges.Get(stop.StopSequence); exists {
			annotated.PlatformChangeData = platformChange
		}

		annotated.IsCanceled = canceled && i >= cancelIndex

		annotatedTrip.Stops = append(annotatedTrip.Stops, annotated)
	}

	return annotatedTrip, nil
}
