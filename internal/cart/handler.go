package cart

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/chaosshop-storefront/internal/interface/http/middleware"
	"github.com/wichananm65/chaosshop-storefront/internal/product"
	"github.com/wichananm65/chaosshop-storefront/internal/session"
)

// Handler delegates cart operations to the cart service.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app fiber.Router) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart", h.addToCart)
	app.Delete("/api/v1/cart", h.clearCart)
}

type cartResponse struct {
	Items []product.Product `json:"items"`
	Count int               `json:"count"`
}

func newCartResponse(items []product.Product) cartResponse {
	return cartResponse{Items: items, Count: len(items)}
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	sessionID, err := session.GetSessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(product.Product)
	if err := middleware.BindJSON(c, payload); err != nil {
		return middleware.HandleValidationError(c, err)
	}

	items, err := h.service.AddToCart(sessionID, *payload)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(newCartResponse(items))
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	sessionID, err := session.GetSessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	items, err := h.service.GetCart(sessionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(newCartResponse(items))
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	sessionID, err := session.GetSessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := h.service.ClearCart(sessionID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
