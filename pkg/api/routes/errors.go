package routes

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/smartroute/smartroute/pkg/planner"
)

// planningStatus maps a planning failure to the HTTP status returned with the failed plan
func planningStatus(err error) int {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fiber.StatusRequestTimeout
	}
	if errors.Is(err, planner.ErrSuperseded) {
		return fiber.StatusConflict
	}

	switch planner.AsPlanningError(err).Kind {
	case planner.ErrorKindUnknownPlace:
		return fiber.StatusNotFound
	case planner.ErrorKindNoConnection, planner.ErrorKindNoFeasibleTransfer:
		return fiber.StatusUnprocessableEntity
	case planner.ErrorKindProviderUnavailable, planner.ErrorKindRateUnavailable:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusBadRequest
	}
}

func sendError(c *fiber.Ctx, status int, message string) error {
	c.Status(status)
	return c.JSON(fiber.Map{
		"error": message,
	})
}
