package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/smartroute/smartroute/pkg/app"
	"github.com/smartroute/smartroute/pkg/planner"
	"github.com/smartroute/smartroute/pkg/util"
)

func PlacesRouter(router fiber.Router, planningContext *app.PlanningContext) {
	router.Get("/suggest", func(c *fiber.Ctx) error {
		suggestions, err := planningContext.Suggest(c.UserContext(), util.TrimString(c.Query("q"), maxQueryLength), c.QueryInt("limit", 0))
		if err != nil {
			return sendError(c, fiber.StatusInternalServerError, err.Error())
		}

		if suggestions == nil {
			suggestions = []string{}
		}
		return c.JSON(suggestions)
	})

	router.Get("/find", func(c *fiber.Ctx) error {
		place, err := planningContext.ResolvePlace(c.UserContext(), util.TrimString(c.Query("q"), maxQueryLength))
		if err != nil {
			message := planner.AsPlanningError(err).Localize(planningContext.Config.Planner.Language)
			return sendError(c, planningStatus(err), message)
		}

		placeReduced, err := app.Reduce(place, c.QueryBool("detailed"))
		if err != nil {
			return sendError(c, fiber.StatusInternalServerError, "Sherrif could not reduce Place")
		}

		return c.JSON(placeReduced)
	})
}

func HealthRouter(router fiber.Router, planningContext *app.PlanningContext) {
	router.Get("/", func(c *fiber.Ctx) error {
		health, err := planningContext.Health(c.UserContext())
		if err != nil {
			return sendError(c, fiber.StatusInternalServerError, err.Error())
		}

		healthReduced, err := app.Reduce(health, false)
		if err != nil {
			return sendError(c, fiber.StatusInternalServerError, "Sherrif could not reduce ProviderHealth")
		}

		return c.JSON(healthReduced)
	})
}
