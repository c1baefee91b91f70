package query

import (
	"time"

	"github.com/travigo/opsconsole/pkg/ctdf"
)

type TripSearch struct {
	Filter   *ctdf.TripSearchFilter
	Location *time.Location
}

// Window resolves the search window of the filter
func (t *TripSearch) Window() (time.Time, time.Time, error) {
	startDateTime, err := t.Filter.StartDateTime(t.Location)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	endDateTime, err := t.Filter.EndDateTime(t.Location)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return startDateTime, endDateTime, nil
}
