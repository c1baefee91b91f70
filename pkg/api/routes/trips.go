package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/opsconsole/pkg/ctdf"
	"github.com/travigo/opsconsole/pkg/dataaggregator"
	"github.com/travigo/opsconsole/pkg/dataaggregator/query"
	"github.com/travigo/opsconsole/pkg/dataaggregator/source"
	"github.com/travigo/opsconsole/pkg/replay"
	"github.com/travigo/opsconsole/pkg/tripstate"
)

const defaultSearchWindow = "PT2H"

type TripRoutes struct {
	Aggregator *dataaggregator.Aggregator
	Sessions   *replay.Sessions
	Location   *time.Location
}

func TripsRouter(router fiber.Router, tripRoutes *TripRoutes) {
	router.Get("/search", tripRoutes.searchTrips)
	router.Get("/:id", tripRoutes.getTrip)
}

func (t *TripRoutes) searchTrips(c *fiber.Ctx) error {
	filter, err := parseSearchFilter(c, ctdf.SearchTerm{
		Type:  ctdf.SearchTermType(c.Query("type")),
		ID:    c.Query("id"),
		Label: c.Query("label"),
	}, defaultSearchWindow)
	if err != nil {
		return sendError(c, err)
	}

	ticket := t.Sessions.Begin(c.UserContext(), sessionKey(c, searchView))
	defer ticket.Finish()
	c.Locals(LocalsGeneration, ticket.Generation())

	trips, err := dataaggregator.Lookup[[]*ctdf.TripSummary](ticket.Context, t.Aggregator, query.TripSearch{
		Filter:   filter,
		Location: t.Location,
	})
	if checkErr := ticket.Check(); checkErr != nil {
		return sendError(c, checkErr)
	}
	if err != nil {
		return sendError(c, err)
	}

	if trips == nil {
		trips = []*ctdf.TripSummary{}
	}

	tripsReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, trips)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce Trips",
		})
	}

	return c.JSON(fiber.Map{
		"filter": filter,
		"trips":  tripsReduced,
	})
}

func (t *TripRoutes) getTrip(c *fiber.Ctx) error {
	trip, err := dataaggregator.Lookup[*ctdf.TripDetail](c.UserContext(), t.Aggregator, query.TripDetail{
		TripID: c.Params("id"),
	})
	if err != nil {
		return sendError(c, err)
	}
	if trip == nil {
		return sendError(c, source.NotFoundError)
	}

	annotatedTrip, err := tripstate.AnnotateStops(trip.StopEvents, trip.OperationalEvents)
	if err != nil {
		return sendError(c, err)
	}

	groups := []string{"basic"}
	if c.QueryBool("detailed", false) {
		groups = append(groups, "detailed")
	}

	tripReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, trip)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce Trip",
		})
	}

	return c.JSON(fiber.Map{
		"trip":      tripReduced,
		"annotated": annotatedTrip,
	})
}
