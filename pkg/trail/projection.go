package trail

import (
	"math"

	"github.com/travigo/opsconsole/pkg/ctdf"
)

const (
	tileSize       = 256
	maxLatitude    = 85.0511287798
	earthRadiusWeb = 6378137
)

// WebMercator projects positions into the pixel space of a spherical mercator map at zoom,
// the same space a Leaflet EPSG:3857 map uses for layer points
func WebMercator(zoom int) Projector {
	scale := tileSize * math.Pow(2, float64(zoom))

	return func(position *ctdf.Position) ctdf.PixelPoint {
		if position == nil || position.Latitude == nil || position.Longitude == nil {
			return ctdf.PixelPoint{}
		}

		latitude := math.Max(math.Min(*position.Latitude, maxLatitude), -maxLatitude)
		sin := math.Sin(latitude * math.Pi / 180)

		x := earthRadiusWeb * *position.Longitude * math.Pi / 180
		y := earthRadiusWeb * math.Log((1+sin)/(1-sin)) / 2

		// Leaflet's EPSG:3857 transformation
		transformScale := 0.5 / (math.Pi * earthRadiusWeb)

		return ctdf.PixelPoint{
			X: scale * (transformScale*x + 0.5),
			Y: scale * (-transformScale*y + 0.5),
		}
	}
}

func Euclidean(a ctdf.PixelPoint, b ctdf.PixelPoint) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Positions extracts the positions from the position events of a timeline
func Positions(events []*ctdf.VehicleEvent) []*ctdf.Position {
	positions := []*ctdf.Position{}

	for _, event := range events {
		if event.HasLocation() {
			positions = append(positions, event.Position)
		}
	}

	return positions
}
