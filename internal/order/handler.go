package order

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/chaosshop-storefront/internal/session"
)

// Handler exposes checkout over HTTP.
type Handler struct {
	service *Service
	carts   CartStore
}

func NewHandler(s *Service, carts CartStore) *Handler {
	return &Handler{service: s, carts: carts}
}

func (h *Handler) RegisterProtectedRoutes(app fiber.Router) {
	app.Post("/api/v1/checkout", h.checkout)
}

func (h *Handler) checkout(c *fiber.Ctx) error {
	sessionID, err := session.GetSessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	form := new(Form)
	if err := c.BodyParser(form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	res, err := h.service.Checkout(c.UserContext(), sessionID, *form)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, ErrCheckoutInProgress):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	if !res.OK {
		body := fiber.Map{"message": res.Message}
		if res.Body != nil {
			body["result"] = res.Body
		}
		return c.Status(fiber.StatusBadGateway).JSON(body)
	}

	items, _ := h.carts.GetCart(sessionID)
	return c.JSON(fiber.Map{"result": res.Body, "count": len(items)})
}
