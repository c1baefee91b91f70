package replay

import (
	"cmp"

	"github.com/travigo/opsconsole/pkg/ctdf"
	"golang.org/x/exp/slices"
)

const DefaultDisplayLimit = 600

// Timeline is the display ready form of a vehicle replay
type Timeline struct {
	Clustered []*ctdf.ClusteredPositionGroup `json:"clustered" groups:"basic"`

	TotalCount     int  `json:"totalCount" groups:"basic"`
	DisplayedCount int  `json:"displayedCount" groups:"basic"`
	HasMore        bool `json:"hasMore" groups:"basic"`

	SplitVehicleEvents   []*ctdf.VehicleEvent `json:"splitVehicleEvents" groups:"basic"`
	SplitVehiclePosition []*ctdf.VehicleEvent `json:"splitVehiclePosition" groups:"basic"`

	FirstEventPosition *ctdf.VehicleEvent `json:"firstEventPosition" groups:"basic"`
}

// SortEvents returns a copy of events stably sorted by timestamp
func SortEvents(events []*ctdf.VehicleEvent) []*ctdf.VehicleEvent {
	sorted := slices.Clone(events)

	slices.SortStableFunc(sorted, func(a, b *ctdf.VehicleEvent) int {
		return cmp.Compare(a.Timestamp, b.Timestamp)
	})

	return sorted
}

// MergeAndCluster sorts the events, cuts them down to displayLimit and groups consecutive
// position pings. The grouped and split views come from the same pass.
func MergeAndCluster(events []*ctdf.VehicleEvent, displayLimit int) *Timeline {
	if displayLimit <= 0 {
		displayLimit = DefaultDisplayLimit
	}

	sorted := SortEvents(events)

	displayed := sorted
	if len(displayed) > displayLimit {
		displayed = displayed[:displayLimit]
	}

	timeline := &Timeline{
		Clustered:            []*ctdf.ClusteredPositionGroup{},
		TotalCount:           len(sorted),
		DisplayedCount:       len(displayed),
		HasMore:              len(sorted) > displayLimit,
		SplitVehicleEvents:   []*ctdf.VehicleEvent{},
		SplitVehiclePosition: []*ctdf.VehicleEvent{},
	}

	var run []*ctdf.VehicleEvent
	closeRun := func() {
		if len(run) == 0 {
			return
		}

		timeline.Clustered = append(timeline.Clustered, ctdf.NewClusteredPositionGroup(run))
		run = nil
	}

	for _, event := range displayed {
		if !event.IsPosition() {
			closeRun()

			timeline.Clustered = append(timeline.Clustered, ctdf.NewClusteredPositionGroup([]*ctdf.VehicleEvent{event}))
			timeline.SplitVehicleEvents = append(timeline.SplitVehicleEvents, event)

			continue
		}

		if len(run) > 0 && run[len(run)-1].Type != event.Type {
			closeRun()
		}

		run = append(run, event)
		timeline.SplitVehiclePosition = append(timeline.SplitVehiclePosition, event)

		if timeline.FirstEventPosition == nil && event.Position != nil && event.Position.Latitude != nil {
			timeline.FirstEventPosition = event
		}
	}
	closeRun()

	return timeline
}
