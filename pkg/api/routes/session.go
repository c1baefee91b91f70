package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/travigo/opsconsole/pkg/ctdf"
)

// SessionHeader identifies the console tab issuing requests. A newer request for the same view of
// a tab supersedes the older one, the views of one search never cancel each other.
const SessionHeader = "X-Console-Session"

const (
	replayView = "replay"
	trailView  = "trail"
	exportView = "export"
	searchView = "search"
)

// Locals set for the request logger
const (
	LocalsVehicleID  = "vehicleId"
	LocalsGeneration = "generation"
)

func sessionKey(c *fiber.Ctx, view string) string {
	key := c.Get(SessionHeader)
	if key == "" {
		key = uuid.NewString()
	}

	c.Set(SessionHeader, key)

	return key + ":" + view
}

func parseSearchFilter(c *fiber.Ctx, searchTerm ctdf.SearchTerm, defaultWindow string) (*ctdf.TripSearchFilter, error) {
	filter := &ctdf.TripSearchFilter{
		SearchTerm: searchTerm,
		SearchDate: c.Query("serviceDate"),
		StartTime:  c.Query("startTime", "00:00"),
		EndTime:    c.Query("endTime"),
		Window:     c.Query("window"),
		TimeType:   ctdf.TimeType(c.Query("timeType", string(ctdf.TimeTypeActual))),
	}

	if filter.EndTime == "" && filter.Window == "" {
		filter.Window = defaultWindow
	}

	if err := filter.Validate(); err != nil {
		return nil, badRequest(err)
	}

	return filter, nil
}
