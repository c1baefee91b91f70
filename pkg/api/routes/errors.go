package routes

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/opsconsole/pkg/dataaggregator"
	"github.com/travigo/opsconsole/pkg/dataaggregator/source"
	"github.com/travigo/opsconsole/pkg/replay"
)

func errorStatus(err error) int {
	var fiberError *fiber.Error
	var networkFailure *source.NetworkFailure
	var validationErrors validator.ValidationErrors

	switch {
	case errors.As(err, &fiberError):
		return fiberError.Code
	case errors.Is(err, replay.ErrSuperseded):
		return fiber.StatusConflict
	case errors.As(err, &validationErrors):
		return fiber.StatusBadRequest
	case errors.Is(err, source.NotFoundError):
		return fiber.StatusNotFound
	case errors.As(err, &networkFailure):
		return fiber.StatusBadGateway
	case errors.Is(err, dataaggregator.ErrNoMatchingSource):
		return fiber.StatusServiceUnavailable
	}

	return fiber.StatusInternalServerError
}

func sendError(c *fiber.Ctx, err error) error {
	c.Status(errorStatus(err))
	return c.JSON(fiber.Map{
		"error": err.Error(),
	})
}

func badRequest(err error) error {
	return fiber.NewError(fiber.StatusBadRequest, err.Error())
}
