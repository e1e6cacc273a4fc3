package session

import (
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	issuer *Issuer
}

func NewHandler(issuer *Issuer) *Handler {
	return &Handler{issuer: issuer}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Post("/api/v1/session", h.startSession)
}

func (h *Handler) startSession(c *fiber.Ctx) error {
	tok, err := h.issuer.Issue()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}
	return c.Status(fiber.StatusCreated).JSON(tok)
}
