package routes

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/smartroute/smartroute/pkg/app"
	"github.com/smartroute/smartroute/pkg/util"

	iso8601 "github.com/senseyeio/duration"
)

const maxQueryLength = 100

func PlannerRouter(router fiber.Router, planningContext *app.PlanningContext) {
	router.Get("/plan", func(c *fiber.Ctx) error {
		return getPlan(c, planningContext)
	})
}

func getPlan(c *fiber.Ctx, planningContext *app.PlanningContext) error {
	request := app.PlanRequest{
		From:       util.TrimString(c.Query("from"), maxQueryLength),
		To:         util.TrimString(c.Query("to"), maxQueryLength),
		Date:       c.Query("date"),
		Currency:   c.Query("currency"),
		SessionKey: strings.Clone(c.Query("session")),
	}

	for _, via := range c.Context().QueryArgs().PeekMulti("via") {
		for _, name := range strings.Split(string(via), ",") {
			request.Vias = append(request.Vias, util.TrimString(name, maxQueryLength))
		}
	}

	if minTransferString := c.Query("min_transfer"); minTransferString != "" {
		minTransfer, err := parseMinutes(minTransferString)
		if err != nil {
			return sendError(c, fiber.StatusBadRequest, "Parameter min_transfer should be minutes or an ISO8601 duration")
		}
		request.MinTransfer = &minTransfer
	}

	if maxTransfersString := c.Query("max_transfers"); maxTransfersString != "" {
		maxTransfers, err := strconv.Atoi(maxTransfersString)
		if err != nil {
			return sendError(c, fiber.StatusBadRequest, "Parameter max_transfers should be an integer")
		}
		request.MaxTransfers = &maxTransfers
	}

	plan, err := planningContext.Plan(c.UserContext(), request)
	if plan == nil {
		return sendError(c, planningStatus(err), err.Error())
	}

	planReduced, reduceErr := app.Reduce(plan, c.QueryBool("detailed"))
	if reduceErr != nil {
		return sendError(c, fiber.StatusInternalServerError, "Sherrif could not reduce JourneyPlan")
	}

	if err != nil {
		c.Status(planningStatus(err))
	}

	return c.JSON(planReduced)
}

// parseMinutes accepts plain minutes ("45") or an ISO8601 duration ("PT45M")
func parseMinutes(value string) (int, error) {
	if minutes, err := strconv.Atoi(value); err == nil {
		return minutes, nil
	}

	duration, err := iso8601.ParseISO8601(value)
	if err != nil {
		return 0, err
	}

	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	return int(duration.Shift(start).Sub(start).Minutes()), nil
}
