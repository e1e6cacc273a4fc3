package product

import (
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/v1/products", h.getProducts)
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	listing := h.service.Load(c.UserContext())
	if listing.Failed() {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": listing.Error})
	}
	return c.JSON(listing)
}
