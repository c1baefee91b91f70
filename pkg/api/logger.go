package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/travigo/opsconsole/pkg/api/routes"
)

// NewLogger logs every request at a level picked from the response status, along with the vehicle
// and session generation of replay requests
func NewLogger() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		startTime := time.Now()
		err = c.Next()

		msg := "Console request"
		if err != nil {
			msg = err.Error()

			if handlerErr := c.App().Config().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		code := c.Response().StatusCode()

		ipAddress := c.IP()
		if forwardedFor := c.Get(fiber.HeaderXForwardedFor); forwardedFor != "" {
			ipAddress, _, _ = strings.Cut(forwardedFor, ",")
		}

		requestContext := log.With().
			Int("status", code).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("ip", ipAddress).
			Dur("latency", time.Since(startTime)).
			Str("session", string(c.Response().Header.Peek(routes.SessionHeader)))

		if vehicleID, ok := c.Locals(routes.LocalsVehicleID).(string); ok {
			requestContext = requestContext.Str("vehicle", vehicleID)
		}
		if generation, ok := c.Locals(routes.LocalsGeneration).(uint64); ok {
			requestContext = requestContext.Uint64("generation", generation)
		}
		if code == fiber.StatusConflict {
			requestContext = requestContext.Bool("superseded", true)
		}

		requestLogger := requestContext.Logger()

		switch {
		case code >= fiber.StatusBadRequest && code < fiber.StatusInternalServerError:
			requestLogger.Warn().Msg(msg)
		case code >= fiber.StatusInternalServerError:
			requestLogger.Error().Msg(msg)
		default:
			requestLogger.Info().Msg(msg)
		}

		return nil
	}
}
