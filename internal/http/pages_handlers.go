package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aifinance/aifinance-backend/internal/routes"
)

// PageHandler serves a minimal JSON document for every page route so the
// gatekeeper's decisions land on something observable. The real markup lives
// in the web client; these stubs only echo routing state.
type PageHandler struct{}

func (h *PageHandler) Serve(c *fiber.Ctx) error {
	path := c.Path()
	class := routes.Classify(path)

	doc := fiber.Map{"page": path, "section": sectionFor(class)}
	if msg := c.Query("message"); msg != "" {
		doc["message"] = msg
	}
	if c.Query("upgrade") == "true" {
		doc["upgrade"] = true
	}
	if redirect := c.Query("redirect"); redirect != "" {
		doc["redirect"] = redirect
	}
	return c.JSON(doc)
}

func sectionFor(class routes.Classification) string {
	switch {
	case class.Consumer:
		return "consumer"
	case class.Business:
		return "business"
	case class.Shared:
		return "shared"
	case class.Public:
		return "public"
	default:
		return "unknown"
	}
}
