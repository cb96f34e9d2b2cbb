package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/smartroute/smartroute/pkg/api/routes"
	"github.com/smartroute/smartroute/pkg/app"
)

func NewApp(planningContext *app.PlanningContext) *fiber.App {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.PlannerRouter(group.Group("/planner"), planningContext)
	routes.PlacesRouter(group.Group("/places"), planningContext)
	routes.HealthRouter(group.Group("/health"), planningContext)

	return webApp
}

func SetupServer(listen string, planningContext *app.PlanningContext) error {
	return NewApp(planningContext).Listen(listen)
}
