package tripstate

import (
	"encoding/json"
	"strconv"

	"github.com/travigo/opsconsole/pkg/ctdf"
	"golang.org/x/exp/slices"
)

// StopEventMap maps stop sequences to the operational event currently affecting the stop.
// It is immutable, With and Without return a new map.
type StopEventMap struct {
	entries map[int]*ctdf.OperationalEvent
}

func (m StopEventMap) Get(stopSequence int) (*ctdf.OperationalEvent, bool) {
	event, exists := m.entries[stopSequence]
	return event, exists
}

func (m StopEventMap) Len() int {
	return len(m.entries)
}

func (m StopEventMap) With(stopSequence int, event *ctdf.OperationalEvent) StopEventMap {
	entries := make(map[int]*ctdf.OperationalEvent, len(m.entries)+1)
	for key, value := range m.entries {
		entries[key] = value
	}
	entries[stopSequence] = event

	return StopEventMap{entries: entries}
}

func (m StopEventMap) Without(stopSequence int) StopEventMap {
	if _, exists := m.entries[stopSequence]; !exists {
		return m
	}

	entries := make(map[int]*ctdf.OperationalEvent, len(m.entries))
	for key, value := range m.entries {
		if key != stopSequence {
			entries[key] = value
		}
	}

	return StopEventMap{entries: entries}
}

// Sequences returns the stop sequences in ascending order
func (m StopEventMap) Sequences() []int {
	sequences := make([]int, 0, len(m.entries))
	for key := range m.entries {
		sequences = append(sequences, key)
	}
	slices.Sort(sequences)

	return sequences
}

func (m StopEventMap) MarshalJSON() ([]byte, error) {
	encoded := make(map[string]*ctdf.OperationalEvent, len(m.entries))
	for key, value := range m.entries {
		encoded[strconv.Itoa(key)] = value
	}

	return json.Marshal(encoded)
}
