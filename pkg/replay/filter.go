package replay

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/travigo/opsconsole/pkg/ctdf"
)

// EventFilter is an operator supplied expression deciding which events stay on the timeline,
// eg. `type != "vehiclePosition" || speed > 0`
type EventFilter struct {
	Expression string

	program *vm.Program
}

func filterEnvironment(event *ctdf.VehicleEvent) map[string]any {
	environment := map[string]any{
		"type":           string(event.Type),
		"timestamp":      event.Timestamp,
		"tripId":         event.TripID,
		"routeId":        event.RouteID,
		"routeShortName": event.RouteShortName,
		"speed":          0.0,
		"bearing":        0.0,
		"hasLocation":    event.HasLocation(),
		"latitude":       0.0,
		"longitude":      0.0,
	}

	if event.Position != nil {
		environment["speed"] = event.Position.Speed
		environment["bearing"] = event.Position.Bearing

		if event.Position.Latitude != nil {
			environment["latitude"] = *event.Position.Latitude
		}
		if event.Position.Longitude != nil {
			environment["longitude"] = *event.Position.Longitude
		}
	}

	return environment
}

func CompileEventFilter(expression string) (*EventFilter, error) {
	program, err := expr.Compile(expression, expr.Env(filterEnvironment(&ctdf.VehicleEvent{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile event filter: %w", err)
	}

	return &EventFilter{
		Expression: expression,
		program:    program,
	}, nil
}

// Apply returns the events matching the filter. A nil filter keeps everything.
func (f *EventFilter) Apply(events []*ctdf.VehicleEvent) ([]*ctdf.VehicleEvent, error) {
	if f == nil {
		return events, nil
	}

	filtered := []*ctdf.VehicleEvent{}

	for _, event := range events {
		output, err := expr.Run(f.program, filterEnvironment(event))
		if err != nil {
			return nil, fmt.Errorf("evaluate event filter on %s: %w", event.ID, err)
		}

		if matched, _ := output.(bool); matched {
			filtered = append(filtered, event)
		}
	}

	return filtered, nil
}
