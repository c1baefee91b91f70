package ctdf

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	iso8601 "github.com/senseyeio/duration"
)

const (
	SearchDateFormat = "2006-01-02"
	SearchTimeFormat = "15:04"
)

type SearchTermType string

const (
	SearchTermTypeRoute   SearchTermType = "route"
	SearchTermTypeStop    SearchTermType = "stop"
	SearchTermTypeTripID  SearchTermType = "tripId"
	SearchTermTypeVehicle SearchTermType = "vehicle"
)

type TimeType string

const (
	TimeTypeScheduled TimeType = "scheduledTime"
	TimeTypeActual    TimeType = "actualTime"
)

type SearchTerm struct {
	Type  SearchTermType `json:"type" validate:"required,oneof=route stop tripId vehicle"`
	ID    string         `json:"id" validate:"required"`
	Label string         `json:"label"`
}

// TripSearchFilter fully describes a replay or trip search window. It is replaced, never updated,
// when the operator runs a new search.
type TripSearchFilter struct {
	SearchTerm SearchTerm `json:"searchTerm" validate:"required"`

	SearchDate string `json:"searchDate" validate:"required,datetime=2006-01-02"`
	StartTime  string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime    string `json:"endTime" validate:"omitempty,datetime=15:04"`

	// Window is an ISO8601 duration applied to StartTime when EndTime is not set
	Window string `json:"window,omitempty"`

	TimeType TimeType `json:"timeType" validate:"required,oneof=scheduledTime actualTime"`
}

var filterValidator = validator.New(validator.WithRequiredStructEnabled())

func (f *TripSearchFilter) Validate() error {
	if err := filterValidator.Struct(f); err != nil {
		return err
	}

	if f.EndTime == "" && f.Window == "" {
		return fmt.Errorf("either endTime or window must be set")
	}

	if f.EndTime == "" {
		if _, err := iso8601.ParseISO8601(f.Window); err != nil {
			return fmt.Errorf("window: %w", err)
		}
	}

	return nil
}

func (f *TripSearchFilter) ServiceDate(location *time.Location) (time.Time, error) {
	return time.ParseInLocation(SearchDateFormat, f.SearchDate, location)
}

func (f *TripSearchFilter) StartDateTime(location *time.Location) (time.Time, error) {
	return time.ParseInLocation(fmt.Sprintf("%s %s", SearchDateFormat, SearchTimeFormat), fmt.Sprintf("%s %s", f.SearchDate, f.StartTime), location)
}

// EndDateTime resolves the end of the window. An end time earlier than the start time rolls over
// into the following day.
func (f *TripSearchFilter) EndDateTime(location *time.Location) (time.Time, error) {
	startDateTime, err := f.StartDateTime(location)
	if err != nil {
		return time.Time{}, err
	}

	if f.EndTime == "" {
		window, err := iso8601.ParseISO8601(f.Window)
		if err != nil {
			return time.Time{}, err
		}

		return window.Shift(startDateTime), nil
	}

	endDateTime, err := time.ParseInLocation(fmt.Sprintf("%s %s", SearchDateFormat, SearchTimeFormat), fmt.Sprintf("%s %s", f.SearchDate, f.EndTime), location)
	if err != nil {
		return time.Time{}, err
	}

	if endDateTime.Before(startDateTime) {
		endDateTime = endDateTime.AddDate(0, 0, 1)
	}

	return endDateTime, nil
}
