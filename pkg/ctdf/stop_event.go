package ctdf

import "strconv"

// StopEvent is the scheduled and actual call of a trip at a single stop
type StopEvent struct {
	StopCode     string  `json:"stopCode" groups:"basic"`
	StopSequence int     `json:"stopSequence" groups:"basic"`
	StopLat      float64 `json:"stopLat" groups:"basic"`
	StopLon      float64 `json:"stopLon" groups:"basic"`
	StopName     string  `json:"stopName" groups:"basic"`
	Timepoint    int     `json:"timepoint" groups:"basic"`

	Arrival   *StopTiming `json:"arrival,omitempty" groups:"basic"`
	Departure *StopTiming `json:"departure,omitempty" groups:"basic"`
}

type StopTiming struct {
	Time          string `json:"time" groups:"basic"`
	ScheduledTime string `json:"scheduledTime" groups:"basic"`
}

// ActualTime returns false if the time is missing or not a number
func (s *StopTiming) ActualTime() (int64, bool) {
	if s == nil || s.Time == "" {
		return 0, false
	}

	value, err := strconv.ParseInt(s.Time, 10, 64)
	if err != nil {
		return 0, false
	}

	return value, true
}

// AnnotatedStopEvent is a StopEvent with the reconciled operational state of the stop
type AnnotatedStopEvent struct {
	StopEvent `groups:"basic"`

	SkippedData        *OperationalEvent `json:"skippedData,omitempty" groups:"basic"`
	PlatformChangeData *OperationalEvent `json:"platformChangeData,omitempty" groups:"basic"`
	IsCanceled         bool              `json:"isCanceled" groups:"basic"`
}
