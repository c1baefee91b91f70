package trail

import (
	"github.com/travigo/opsconsole/pkg/ctdf"
	"golang.org/x/exp/slices"
)

const DefaultMinPixelDistance = 30

// Projector converts a position into map pixel space
type Projector func(position *ctdf.Position) ctdf.PixelPoint

type DistanceFunc func(a ctdf.PixelPoint, b ctdf.PixelPoint) float64

// FilterPositions thins out a position trail so consecutive kept points are at least
// minPixelDistance apart on the map. The first and last positions and the trip sign on position
// are always kept, the sign on position also becomes the reference for the following points.
func FilterPositions(positions []*ctdf.Position, project Projector, distance DistanceFunc, tripSignOnTimestamp string, minPixelDistance float64) []*ctdf.Position {
	if len(positions) == 0 {
		return []*ctdf.Position{}
	}

	signOnIndex := -1
	if tripSignOnTimestamp != "" {
		signOnIndex = slices.IndexFunc(positions, func(position *ctdf.Position) bool {
			return string(position.Timestamp) == tripSignOnTimestamp
		})
	}

	filtered := []*ctdf.Position{positions[0]}
	lastKept := positions[0]

	for i := 1; i < len(positions)-1; i++ {
		position := positions[i]

		if i == signOnIndex {
			filtered = append(filtered, position)
			lastKept = position

			continue
		}

		if distance(project(lastKept), project(position)) >= minPixelDistance {
			filtered = append(filtered, position)
			lastKept = position
		}
	}

	if len(positions) > 1 {
		filtered = append(filtered, positions[len(positions)-1])
	}

	return filtered
}
