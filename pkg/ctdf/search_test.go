package ctdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "time/tzdata"
)

func validFilter() *TripSearchFilter {
	return &TripSearchFilter{
		SearchTerm: SearchTerm{Type: SearchTermTypeRoute, ID: "42"},
		SearchDate: "2022-06-30",
		StartTime:  "06:00",
		EndTime:    "09:30",
		TimeType:   TimeTypeScheduled,
	}
}

func TestTripSearchFilterValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(filter *TripSearchFilter)
		valid  bool
	}{
		{"valid", func(filter *TripSearchFilter) {}, true},
		{"window instead of end time", func(filter *TripSearchFilter) { filter.EndTime = ""; filter.Window = "PT2H" }, true},
		{"missing end time and window", func(filter *TripSearchFilter) { filter.EndTime = "" }, false},
		{"invalid window", func(filter *TripSearchFilter) { filter.EndTime = ""; filter.Window = "2 hours" }, false},
		{"invalid date", func(filter *TripSearchFilter) { filter.SearchDate = "30/06/2022" }, false},
		{"invalid start time", func(filter *TripSearchFilter) { filter.StartTime = "6am" }, false},
		{"unknown search type", func(filter *TripSearchFilter) { filter.SearchTerm.Type = "depot" }, false},
		{"missing search term", func(filter *TripSearchFilter) { filter.SearchTerm.ID = "" }, false},
		{"unknown time type", func(filter *TripSearchFilter) { filter.TimeType = "plannedTime" }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			filter := validFilter()
			tc.modify(filter)

			err := filter.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestTripSearchFilterWindow(t *testing.T) {
	location, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	t.Run("end time", func(t *testing.T) {
		filter := validFilter()

		start, err := filter.StartDateTime(location)
		require.NoError(t, err)
		end, err := filter.EndDateTime(location)
		require.NoError(t, err)

		assert.WithinDuration(t, time.Date(2022, 6, 30, 6, 0, 0, 0, location), start, 0)
		assert.WithinDuration(t, time.Date(2022, 6, 30, 9, 30, 0, 0, location), end, 0)
	})

	t.Run("end time past midnight", func(t *testing.T) {
		filter := validFilter()
		filter.StartTime = "23:00"
		filter.EndTime = "01:00"

		end, err := filter.EndDateTime(location)
		require.NoError(t, err)

		assert.WithinDuration(t, time.Date(2022, 7, 1, 1, 0, 0, 0, location), end, 0)
	})

	t.Run("window", func(t *testing.T) {
		filter := validFilter()
		filter.EndTime = ""
		filter.Window = "PT90M"

		end, err := filter.EndDateTime(location)
		require.NoError(t, err)

		assert.WithinDuration(t, time.Date(2022, 6, 30, 7, 30, 0, 0, location), end, 0)
	})

	t.Run("service date", func(t *testing.T) {
		serviceDate, err := validFilter().ServiceDate(location)
		require.NoError(t, err)

		assert.WithinDuration(t, time.Date(2022, 6, 30, 0, 0, 0, 0, location), serviceDate, 0)
	})
}
