package ctdf

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicleEventUnmarshal(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		timestamp int64
	}{
		{"numeric timestamp", `{"id": "e1", "type": "doorOpen", "timestamp": 1656614338}`, 1656614338},
		{"string timestamp", `{"id": "e1", "type": "doorOpen", "timestamp": "1656614338"}`, 1656614338},
		{"missing timestamp", `{"id": "e1", "type": "doorOpen"}`, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var event VehicleEvent
			require.NoError(t, json.Unmarshal([]byte(tc.payload), &event))

			assert.Equal(t, "e1", event.ID)
			assert.Equal(t, VehicleEventTypeDoorOpen, event.Type)
			assert.Equal(t, tc.timestamp, event.Timestamp)
		})
	}
}

func TestVehicleEventUnknownType(t *testing.T) {
	var event VehicleEvent
	err := json.Unmarshal([]byte(`{"id": "e1", "type": "teleport", "timestamp": 1}`), &event)

	assert.ErrorIs(t, err, ErrUnknownEventType)
}

func TestOperationalEventUnknownType(t *testing.T) {
	var event OperationalEvent
	err := json.Unmarshal([]byte(`{"type": "DELAYED", "timestamp": "1"}`), &event)
	assert.ErrorIs(t, err, ErrUnknownEventType)

	require.NoError(t, json.Unmarshal([]byte(`{"type": "PLATFORM_CHANGE", "timestamp": 250, "stop": {"stopSequence": 3}}`), &event))
	assert.Equal(t, OperationalEventTypePlatformChange, event.Type)
	assert.Equal(t, UnixTimestamp("250"), event.Timestamp)

	stopSequence, ok := event.StopSequence()
	assert.True(t, ok)
	assert.Equal(t, 3, stopSequence)
}

func TestVehicleEventHasLocation(t *testing.T) {
	latitude, longitude := 51.5, -0.1

	assert.False(t, (&VehicleEvent{}).HasLocation())
	assert.False(t, (&VehicleEvent{Position: &Position{Latitude: &latitude}}).HasLocation())
	assert.True(t, (&VehicleEvent{Position: &Position{Latitude: &latitude, Longitude: &longitude}}).HasLocation())
}

func TestUnixTimestamp(t *testing.T) {
	tests := []struct {
		value    UnixTimestamp
		expected int64
		ok       bool
	}{
		{"1656614338", 1656614338, true},
		{"1656614338.5", 1656614338, true},
		{"", 0, false},
		{"yesterday", 0, false},
	}

	for _, tc := range tests {
		t.Run(string(tc.value), func(t *testing.T) {
			value, ok := tc.value.Int64()

			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, value)
			assert.Equal(t, tc.ok, tc.value.IsSet())
		})
	}

	var decoded struct {
		A UnixTimestamp `json:"a"`
		B UnixTimestamp `json:"b"`
		C UnixTimestamp `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 12, "b": "34", "c": null}`), &decoded))
	assert.Equal(t, UnixTimestamp("12"), decoded.A)
	assert.Equal(t, UnixTimestamp("34"), decoded.B)
	assert.Equal(t, UnixTimestamp(""), decoded.C)
}

func TestStopTimingActualTime(t *testing.T) {
	var missing *StopTiming
	_, ok := missing.ActualTime()
	assert.False(t, ok)

	value, ok := (&StopTiming{Time: "300"}).ActualTime()
	assert.True(t, ok)
	assert.Equal(t, int64(300), value)
}
