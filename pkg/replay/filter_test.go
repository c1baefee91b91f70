package replay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/opsconsole/pkg/ctdf"
)

func TestEventFilter(t *testing.T) {
	moving := positionEvent(1)
	moving.Position.Speed = 12

	stopped := positionEvent(2)

	placeholder := positionEvent(3)
	placeholder.Position.Latitude = nil
	placeholder.Position.Longitude = nil

	doorOpen := statusEvent(ctdf.VehicleEventTypeDoorOpen, 4)
	doorOpen.RouteShortName = "42"

	events := []*ctdf.VehicleEvent{moving, stopped, placeholder, doorOpen}

	tests := []struct {
		expression string
		expected   []*ctdf.VehicleEvent
	}{
		{`type != "vehiclePosition" || speed > 0`, []*ctdf.VehicleEvent{moving, doorOpen}},
		{`hasLocation`, []*ctdf.VehicleEvent{moving, stopped}},
		{`routeShortName == "42"`, []*ctdf.VehicleEvent{doorOpen}},
		{`timestamp >= 3`, []*ctdf.VehicleEvent{placeholder, doorOpen}},
		{`latitude > 50`, []*ctdf.VehicleEvent{moving, stopped}},
	}

	for _, tc := range tests {
		t.Run(tc.expression, func(t *testing.T) {
			filter, err := CompileEventFilter(tc.expression)
			require.NoError(t, err)

			filtered, err := filter.Apply(events)
			require.NoError(t, err)

			assert.Equal(t, tc.expected, filtered)
		})
	}
}

func TestEventFilterInvalid(t *testing.T) {
	_, err := CompileEventFilter(`speed +`)
	assert.Error(t, err)

	_, err = CompileEventFilter(`speed`)
	assert.Error(t, err, "non boolean expressions are rejected")

	_, err = CompileEventFilter(`unknownField == 1`)
	assert.Error(t, err)
}

func TestNilEventFilterKeepsEverything(t *testing.T) {
	var filter *EventFilter
	events := []*ctdf.VehicleEvent{positionEvent(1)}

	filtered, err := filter.Apply(events)
	require.NoError(t, err)
	assert.Equal(t, events, filtered)
}
