package ctdf

// VehicleReplayStatus is one element of the vehicle history response, status events grouped by trip
type VehicleReplayStatus struct {
	Trip    []*VehicleReplayTrip `json:"trip"`
	Vehicle map[string]any       `json:"vehicle,omitempty"`
}

type VehicleReplayTrip struct {
	ID        string          `json:"id"`
	RouteID   string          `json:"routeId"`
	Direction string          `json:"direction"`
	Event     []*VehicleEvent `json:"event"`
}

type Route struct {
	RouteID        string `json:"route_id" yaml:"route_id"`
	RouteShortName string `json:"route_short_name" yaml:"route_short_name"`
	RouteLongName  string `json:"route_long_name,omitempty" yaml:"route_long_name"`
}

// TripDetail is the trip payload used by the replay screens
type TripDetail struct {
	ID string `json:"id" groups:"basic"`

	RouteID        string `json:"routeId" groups:"basic"`
	RouteShortName string `json:"routeShortName" groups:"basic"`
	VehicleID      string `json:"vehicleId" groups:"basic"`

	StopEvents        []*StopEvent        `json:"stopEvents" groups:"basic"`
	OperationalEvents []*OperationalEvent `json:"operationalEvents" groups:"basic"`
	VehicleEvents     []*VehicleEvent     `json:"vehicleEvents" groups:"detailed"`

	// Shape is the WKT linestring of the trip path
	Shape       string `json:"shape" groups:"detailed"`
	FinalStatus string `json:"finalStatus" groups:"basic"`
}

// SignOnTimestamp is the timestamp of the first sign on event of the trip, used as the trail pivot
func (t *TripDetail) SignOnTimestamp() string {
	for _, event := range t.VehicleEvents {
		if event.Type == VehicleEventTypeSignOn {
			return string(UnixTimestampFromInt(event.Timestamp))
		}
	}

	return ""
}

// TripSummary is a row returned by the trip search backends
type TripSummary struct {
	ID             string `json:"id" groups:"basic"`
	RouteID        string `json:"routeId" groups:"basic"`
	RouteShortName string `json:"routeShortName" groups:"basic"`
	VehicleID      string `json:"vehicleId" groups:"basic"`
	Direction      string `json:"direction" groups:"basic"`

	StartTime UnixTimestamp `json:"startTime" groups:"basic"`
	EndTime   UnixTimestamp `json:"endTime" groups:"basic"`

	FinalStatus string `json:"finalStatus" groups:"basic"`
}
