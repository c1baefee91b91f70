package tripstate

import (
	"github.com/travigo/opsconsole/pkg/ctdf"
)

// GetCanceledEvent returns the cancellation still in force at the end of the log. The first
// CANCELED wins until a REINSTATE_TRIP clears it.
func GetCanceledEvent(log []*ctdf.OperationalEvent) *ctdf.OperationalEvent {
	return latchEvent(log, ctdf.OperationalEventTypeCanceled, ctdf.OperationalEventTypeReinstateTrip)
}

// GetMissedEvent applies the cancellation rules to MISSED events
func GetMissedEvent(log []*ctdf.OperationalEvent) *ctdf.OperationalEvent {
	return latchEvent(log, ctdf.OperationalEventTypeMissed, ctdf.OperationalEventTypeReinstateTrip)
}

func latchEvent(log []*ctdf.OperationalEvent, set ctdf.OperationalEventType, clear ctdf.OperationalEventType) *ctdf.OperationalEvent {
	var result *ctdf.OperationalEvent

	for _, event := range log {
		if event == nil {
			continue
		}

		switch event.Type {
		case set:
			if result == nil {
				result = event
			}
		case clear:
			result = nil
		}
	}

	return result
}

// GetSkippedStops returns the stops skipped and not since reinstated, keyed by stop sequence
func GetSkippedStops(log []*ctdf.OperationalEvent) StopEventMap {
	skipped := StopEventMap{}

	for _, event := range log {
		stopSequence, ok := event.StopSequence()
		if !ok {
			continue
		}

		switch event.Type {
		case ctdf.OperationalEventTypeSkipped:
			if _, exists := skipped.Get(stopSequence); !exists {
				skipped = skipped.With(stopSequence, event)
			}
		case ctdf.OperationalEventTypeReinstateStop:
			skipped = skipped.Without(stopSequence)
		}
	}

	return skipped
}

// GetPlatformChanges collapses the platform changes of each stop into one event describing the
// original platform and the latest one. Changes back to the original platform cancel out.
func GetPlatformChanges(log []*ctdf.OperationalEvent) StopEventMap {
	changes := StopEventMap{}

	for _, event := range log {
		if event == nil || event.Type != ctdf.OperationalEventTypePlatformChange {
			continue
		}

		stopSequence, ok := event.StopSequence()
		if !ok {
			continue
		}

		existing, exists := changes.Get(stopSequence)
		switch {
		case !exists:
			changes = changes.With(stopSequence, event)
		case existing.OldStop != nil && event.NewStop != nil && existing.OldStop.StopID == event.NewStop.StopID:
			changes = changes.Without(stopSequence)
		default:
			collapsed := *existing
			collapsed.NewStop = event.NewStop
			collapsed.Timestamp = event.Timestamp

			changes = changes.With(stopSequence, &collapsed)
		}
	}

	return changes
}

// GetStopIndexAfterCancel returns where the cancellation marker goes in the stop list, straight
// after the last stop departed before the cancellation. ok is false when the trip isn't cancelled.
func GetStopIndexAfterCancel(stops []*ctdf.StopEvent, canceledEvent *ctdf.OperationalEvent) (index int, ok bool) {
	if canceledEvent == nil {
		return 0, false
	}

	canceledAt, ok := canceledEvent.Timestamp.Int64()
	if !ok {
		return 0, false
	}

	lastDeparted := -1
	for i, stop := range stops {
		if stop == nil {
			continue
		}

		departedAt, ok := stop.Departure.ActualTime()
		if ok && departedAt <= canceledAt {
			lastDeparted = i
		}
	}

	return lastDeparted + 1, true
}
