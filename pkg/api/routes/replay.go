package routes

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/opsconsole/pkg/ctdf"
	"github.com/travigo/opsconsole/pkg/dataaggregator"
	"github.com/travigo/opsconsole/pkg/dataaggregator/query"
	"github.com/travigo/opsconsole/pkg/replay"
	"github.com/travigo/opsconsole/pkg/trail"
)

const defaultReplayWindow = "P1D"

type ReplayRoutes struct {
	Service  *replay.Service
	Sessions *replay.Sessions
	Location *time.Location

	TrailZoom        int
	MinPixelDistance float64
}

func ReplayRouter(router fiber.Router, replayRoutes *ReplayRoutes) {
	router.Get("/:id", replayRoutes.getReplay)
	router.Get("/:id/trail", replayRoutes.getTrail)
	router.Get("/:id/export.csv", replayRoutes.getExport)
}

func (r *ReplayRoutes) parseRequest(c *fiber.Ctx) (*replay.Request, error) {
	vehicleID := c.Params("id")

	filter, err := parseSearchFilter(c, ctdf.SearchTerm{
		Type: ctdf.SearchTermTypeVehicle,
		ID:   vehicleID,
	}, defaultReplayWindow)
	if err != nil {
		return nil, err
	}

	request := &replay.Request{
		VehicleID:    vehicleID,
		Filter:       filter,
		DisplayLimit: c.QueryInt("limit", 0),
	}

	if expression := c.Query("filter"); expression != "" {
		request.EventFilter, err = replay.CompileEventFilter(expression)
		if err != nil {
			return nil, badRequest(err)
		}
	}

	return request, nil
}

// runReplay executes the replay under the session of the caller and view. Results of a request
// superseded while in flight are dropped. The returned ticket must be finished by the caller.
func (r *ReplayRoutes) runReplay(c *fiber.Ctx, view string) (*replay.Result, *replay.Ticket, error) {
	request, err := r.parseRequest(c)
	if err != nil {
		return nil, nil, err
	}

	ticket := r.Sessions.Begin(c.UserContext(), sessionKey(c, view))
	c.Locals(LocalsVehicleID, request.VehicleID)
	c.Locals(LocalsGeneration, ticket.Generation())

	result, err := r.Service.Replay(ticket.Context, request)
	if checkErr := ticket.Check(); checkErr != nil {
		ticket.Finish()
		return nil, nil, checkErr
	}
	if err != nil {
		ticket.Finish()
		return nil, nil, err
	}

	return result, ticket, nil
}

func (r *ReplayRoutes) getReplay(c *fiber.Ctx) error {
	result, ticket, err := r.runReplay(c, replayView)
	if err != nil {
		return sendError(c, err)
	}
	defer ticket.Finish()

	groups := []string{"basic"}
	if c.QueryBool("detailed", false) {
		groups = append(groups, "detailed")
	}

	timelineReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, result.Timeline)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce Timeline",
		})
	}

	return c.JSON(fiber.Map{
		"fetched":  result.Fetched,
		"empty":    result.TotalCount == 0,
		"timeline": timelineReduced,
	})
}

func (r *ReplayRoutes) getTrail(c *fiber.Ctx) error {
	result, ticket, err := r.runReplay(c, trailView)
	if err != nil {
		return sendError(c, err)
	}
	defer ticket.Finish()

	signOnTimestamp := c.Query("signOn")
	if tripID := c.Query("tripId"); signOnTimestamp == "" && tripID != "" {
		trip, err := dataaggregator.Lookup[*ctdf.TripDetail](ticket.Context, r.Service.Aggregator, query.TripDetail{
			TripID: tripID,
		})
		if checkErr := ticket.Check(); checkErr != nil {
			return sendError(c, checkErr)
		}
		if err != nil {
			return sendError(c, err)
		}

		if trip != nil {
			signOnTimestamp = trip.SignOnTimestamp()
		}
	}

	minPixelDistance := r.MinPixelDistance
	if value := c.QueryFloat("minDistance", 0); value > 0 {
		minPixelDistance = value
	}

	positions := trail.Positions(result.Events)
	filtered := trail.FilterPositions(
		positions,
		trail.WebMercator(c.QueryInt("zoom", r.TrailZoom)),
		trail.Euclidean,
		signOnTimestamp,
		minPixelDistance,
	)

	return c.JSON(fiber.Map{
		"fetched":   result.Fetched,
		"total":     len(positions),
		"positions": filtered,
	})
}

func (r *ReplayRoutes) getExport(c *fiber.Ctx) error {
	result, ticket, err := r.runReplay(c, exportView)
	if err != nil {
		return sendError(c, err)
	}
	defer ticket.Finish()

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=\"%s-%s.csv\"", c.Params("id"), c.Query("serviceDate")))

	return replay.WriteCSV(c, result.Events, r.Location)
}
