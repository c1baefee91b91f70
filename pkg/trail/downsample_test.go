package trail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/travigo/opsconsole/pkg/ctdf"
)

// linearProjector places each position on the x axis at its latitude
func linearProjector(position *ctdf.Position) ctdf.PixelPoint {
	return ctdf.PixelPoint{X: *position.Latitude}
}

func trailPositions(timestamps []string, xs []float64) []*ctdf.Position {
	positions := []*ctdf.Position{}
	for i, timestamp := range timestamps {
		x := xs[i]
		positions = append(positions, &ctdf.Position{
			Latitude:  &x,
			Longitude: &x,
			Timestamp: ctdf.UnixTimestamp(timestamp),
		})
	}

	return positions
}

func timestampsOf(positions []*ctdf.Position) []string {
	timestamps := []string{}
	for _, position := range positions {
		timestamps = append(timestamps, string(position.Timestamp))
	}

	return timestamps
}

func isSubsequence(sub []*ctdf.Position, full []*ctdf.Position) bool {
	j := 0
	for i := 0; i < len(full) && j < len(sub); i++ {
		if full[i] == sub[j] {
			j++
		}
	}

	return j == len(sub)
}

func TestFilterPositions(t *testing.T) {
	timestamps := []string{"1", "2", "3", "4", "5", "6", "7"}
	xs := []float64{0, 10, 40, 45, 50, 90, 91}

	tests := []struct {
		name     string
		signOn   string
		expected []string
	}{
		{"distance only", "", []string{"1", "3", "6", "7"}},
		{"sign on is always kept", "4", []string{"1", "3", "4", "6", "7"}},
		{"sign on resets the reference point", "2", []string{"1", "2", "3", "6", "7"}},
		{"unknown sign on", "99", []string{"1", "3", "6", "7"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			positions := trailPositions(timestamps, xs)
			filtered := FilterPositions(positions, linearProjector, Euclidean, tc.signOn, 30)

			assert.Equal(t, tc.expected, timestampsOf(filtered))
			assert.True(t, isSubsequence(filtered, positions))
			assert.Same(t, positions[0], filtered[0])
			assert.Same(t, positions[len(positions)-1], filtered[len(filtered)-1])
		})
	}
}

func TestFilterPositionsSignOnWithinDistance(t *testing.T) {
	positions := trailPositions([]string{"1", "2", "3", "4"}, []float64{0, 1, 2, 3})

	filtered := FilterPositions(positions, linearProjector, Euclidean, "3", 30)

	assert.Equal(t, []string{"1", "3", "4"}, timestampsOf(filtered))
}

func TestFilterPositionsShortInputs(t *testing.T) {
	assert.Empty(t, FilterPositions(nil, linearProjector, Euclidean, "", 30))

	single := trailPositions([]string{"1"}, []float64{0})
	assert.Equal(t, []string{"1"}, timestampsOf(FilterPositions(single, linearProjector, Euclidean, "1", 30)))

	pair := trailPositions([]string{"1", "2"}, []float64{0, 1})
	assert.Equal(t, []string{"1", "2"}, timestampsOf(FilterPositions(pair, linearProjector, Euclidean, "", 30)))
}

func TestWebMercator(t *testing.T) {
	latitude, longitude := 0.0, 0.0
	project := WebMercator(0)

	origin := project(&ctdf.Position{Latitude: &latitude, Longitude: &longitude})
	assert.InDelta(t, 128, origin.X, 1e-6)
	assert.InDelta(t, 128, origin.Y, 1e-6)

	east := 180.0
	edge := project(&ctdf.Position{Latitude: &latitude, Longitude: &east})
	assert.InDelta(t, 256, edge.X, 1e-6)

	assert.Equal(t, ctdf.PixelPoint{}, project(&ctdf.Position{}))
}

func TestPositions(t *testing.T) {
	latitude, longitude := 51.5, -0.1
	located := &ctdf.Position{Latitude: &latitude, Longitude: &longitude}

	positions := Positions([]*ctdf.VehicleEvent{
		{Type: ctdf.VehicleEventTypeVehiclePosition, Position: located},
		{Type: ctdf.VehicleEventTypeVehiclePosition, Position: &ctdf.Position{}},
		{Type: ctdf.VehicleEventTypeSignOn},
	})

	assert.Equal(t, []*ctdf.Position{located}, positions)
}
