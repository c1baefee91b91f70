package ctdf

// ClusteredPositionGroup is a run of consecutive events of the same type. Runs of one are passed
// through as Event, longer runs carry the time range and their members in Child.
type ClusteredPositionGroup struct {
	Event *VehicleEvent `json:"event,omitempty" groups:"basic"`

	Type             VehicleEventType `json:"type" groups:"basic"`
	StartOfRangeTime int64            `json:"startOfRangeTime,omitempty" groups:"basic"`
	EndOfRangeTime   int64            `json:"endOfRangeTime,omitempty" groups:"basic"`
	Child            []*VehicleEvent  `json:"child,omitempty" groups:"basic"`
}

func NewClusteredPositionGroup(run []*VehicleEvent) *ClusteredPositionGroup {
	if len(run) == 1 {
		return &ClusteredPositionGroup{
			Event: run[0],
			Type:  run[0].Type,
		}
	}

	return &ClusteredPositionGroup{
		Type:             run[0].Type,
		StartOfRangeTime: run[0].Timestamp,
		EndOfRangeTime:   run[len(run)-1].Timestamp,
		Child:            run,
	}
}

func (g *ClusteredPositionGroup) IsRange() bool {
	return g.Event == nil
}

// Events returns the underlying events of the group in order
func (g *ClusteredPositionGroup) Events() []*VehicleEvent {
	if g.Event != nil {
		return []*VehicleEvent{g.Event}
	}

	return g.Child
}
