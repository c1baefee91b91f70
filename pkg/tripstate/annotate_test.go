package tripstate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/opsconsole/pkg/ctdf"
)

func TestAnnotateStops(t *testing.T) {
	stops := []*ctdf.StopEvent{
		{StopSequence: 1, StopCode: "S1", Departure: &ctdf.StopTiming{Time: "100"}},
		{StopSequence: 2, StopCode: "S2", Departure: &ctdf.StopTiming{Time: "200"}},
		{StopSequence: 3, StopCode: "S3", Departure: &ctdf.StopTiming{Time: "300"}},
	}

	skipped := stopOperationalEvent(ctdf.OperationalEventTypeSkipped, "120", 2)
	change := platformChange("130", 1, "A", "B")
	canceled := operationalEvent(ctdf.OperationalEventTypeCanceled, "250")

	annotatedTrip, err := AnnotateStops(stops, []*ctdf.OperationalEvent{skipped, change, canceled})
	require.NoError(t, err)
	require.Len(t, annotatedTrip.Stops, 3)

	require.NotNil(t, annotatedTrip.CancelIndex)
	assert.Equal(t, 2, *annotatedTrip.CancelIndex)
	assert.Same(t, canceled, annotatedTrip.CanceledEvent)

	assert.False(t, annotatedTrip.Stops[0].IsCanceled)
	assert.False(t, annotatedTrip.Stops[1].IsCanceled)
	assert.True(t, annotatedTrip.Stops[2].IsCanceled)

	assert.Same(t, change, annotatedTrip.Stops[0].PlatformChangeData)
	assert.Same(t, skipped, annotatedTrip.Stops[1].SkippedData)
	assert.Nil(t, annotatedTrip.Stops[2].SkippedData)

	assert.Equal(t, TripTags{
		Canceled:        true,
		PlatformChanged: true,
		SkippedStops:    true,
	}, annotatedTrip.Tags)

	t.Run("stops are copied", func(t *testing.T) {
		annotatedTrip.Stops[0].Departure.Time = "999"
		assert.Equal(t, "100", stops[0].Departure.Time)
	})

	t.Run("json uses the platform change field name", func(t *testing.T) {
		encoded, err := json.Marshal(annotatedTrip.Stops[0])
		require.NoError(t, err)

		assert.Contains(t, string(encoded), `"platformChangeData"`)
		assert.Contains(t, string(encoded), `"stopCode":"S1"`)
	})
}

func TestAnnotateStopsWithoutOperationalEvents(t *testing.T) {
	stops := []*ctdf.StopEvent{{StopSequence: 1}}

	annotatedTrip, err := AnnotateStops(stops, nil)
	require.NoError(t, err)

	assert.Nil(t, annotatedTrip.CancelIndex)
	assert.Nil(t, annotatedTrip.CanceledEvent)
	assert.False(t, annotatedTrip.Stops[0].IsCanceled)
	assert.Equal(t, TripTags{}, annotatedTrip.Tags)
}

func TestGetTripTagsCopyTrip(t *testing.T) {
	tags := GetTripTags([]*ctdf.OperationalEvent{operationalEvent(ctdf.OperationalEventTypeCopyTrip, "1")})

	assert.True(t, tags.CopyTrip)
	assert.False(t, tags.Canceled)
}
