package ctdf

type Position struct {
	VehicleID string `json:"vehicleId,omitempty" groups:"basic" csv:"-"`

	// Latitude & Longitude are nil for placeholder records without a fix
	Latitude  *float64 `json:"latitude" groups:"basic"`
	Longitude *float64 `json:"longitude" groups:"basic"`
	Bearing   float64  `json:"bearing" groups:"basic"`
	Speed     float64  `json:"speed" groups:"basic"`

	// Timestamp is kept as the upstream string, the sign-on pivot is matched against it verbatim
	Timestamp UnixTimestamp `json:"timestamp" groups:"basic"`

	Trip *PositionTrip `json:"trip,omitempty" groups:"detailed"`
}

type PositionTrip struct {
	TripID  string `json:"tripId" groups:"detailed"`
	RouteID string `json:"routeId" groups:"detailed"`
}

type PositionPage struct {
	Data  []*Position `json:"data"`
	Count int         `json:"count"`
}

type PixelPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
