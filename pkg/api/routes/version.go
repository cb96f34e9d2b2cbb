package routes

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
)

// Version is set at link time with -ldflags "-X github.com/smartroute/smartroute/pkg/api/routes.Version=..."
var Version string

func BuildVersion() string {
	if Version != "" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return "devel"
}

func APIVersion(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"version": BuildVersion(),
	})
}
