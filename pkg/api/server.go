package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/opsconsole/pkg/api/routes"
	"github.com/travigo/opsconsole/pkg/config"
	"github.com/travigo/opsconsole/pkg/dataaggregator"
	"github.com/travigo/opsconsole/pkg/dataaggregator/query"
	"github.com/travigo/opsconsole/pkg/replay"
	"github.com/travigo/opsconsole/pkg/util"
)

type Server struct {
	Config     *config.Config
	Aggregator *dataaggregator.Aggregator
	Location   *time.Location

	Replay   *replay.Service
	Sessions *replay.Sessions
}

func NewServer(cfg *config.Config, aggregator *dataaggregator.Aggregator) (*Server, error) {
	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	return &Server{
		Config:     cfg,
		Aggregator: aggregator,
		Location:   location,

		Replay: &replay.Service{
			Aggregator:   aggregator,
			Routes:       cfg.RouteIndex(),
			Location:     location,
			DisplayLimit: cfg.DisplayLimit,
			PageSize:     query.DefaultPositionPageSize,
		},
		Sessions: replay.NewSessions(),
	}, nil
}

func (s *Server) App() *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())

	webApp.Get("/version", routes.APIVersion)
	webApp.Get("/health", routes.Health)
	webApp.Get("/stats", routes.Stats)

	group := webApp.Group("/")
	if env := util.GetEnvironmentVariables(); env["AUTH0_DOMAIN"] != "" {
		group = webApp.Group("/", EnsureValidToken(env["AUTH0_DOMAIN"], env["AUTH0_AUDIENCE"]))
	}

	routes.ReplayRouter(group.Group("/replay/vehicles"), &routes.ReplayRoutes{
		Service:          s.Replay,
		Sessions:         s.Sessions,
		Location:         s.Location,
		TrailZoom:        s.Config.TrailZoom,
		MinPixelDistance: s.Config.MinPixelDistance,
	})

	routes.TripsRouter(group.Group("/trips"), &routes.TripRoutes{
		Aggregator: s.Aggregator,
		Sessions:   s.Sessions,
		Location:   s.Location,
	})

	return webApp
}

func (s *Server) Listen(listen string) error {
	return s.App().Listen(listen)
}
