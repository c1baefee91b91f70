package source

import "time"

// SearchStrategy picks the trip search backend. The trip history backend serves every service
// date from TripHistoryEnabledFrom onwards when UseTripHistory is set.
type SearchStrategy struct {
	UseTripHistory         bool
	TripHistoryEnabledFrom time.Time
}

func (s SearchStrategy) UseHistory(serviceDate time.Time) bool {
	if !s.UseTripHistory {
		return false
	}

	return !serviceDate.Before(s.TripHistoryEnabledFrom)
}
