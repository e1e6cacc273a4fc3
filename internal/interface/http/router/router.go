// Package router assembles the storefront's fiber application.
package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/wichananm65/chaosshop-storefront/internal/cart"
	"github.com/wichananm65/chaosshop-storefront/internal/interface/http/middleware"
	"github.com/wichananm65/chaosshop-storefront/internal/metrics"
	"github.com/wichananm65/chaosshop-storefront/internal/order"
	"github.com/wichananm65/chaosshop-storefront/internal/product"
	"github.com/wichananm65/chaosshop-storefront/internal/session"
	"go.uber.org/zap"
)

// Deps is everything the routes need.
type Deps struct {
	Logger           *zap.Logger
	Metrics          *metrics.Metrics
	Issuer           *session.Issuer
	Products         *product.Service
	Carts            *cart.Service
	Orders           *order.Service
	CORSAllowOrigins string
}

// New builds the app. Public routes are registered before the session
// middleware, protected routes after it.
func New(d Deps) *fiber.App {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(requestid.New(requestid.Config{ContextKey: middleware.RequestIDKey}))
	app.Use(middleware.RequestLogger(log))
	app.Use(middleware.Recovery(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: d.CORSAllowOrigins,
		AllowMethods: "GET,POST,HEAD,DELETE",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + order.ScenarioHeader,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if d.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(d.Metrics.Handler()))
	}

	product.NewHandler(d.Products).RegisterPublicRoutes(app)
	session.NewHandler(d.Issuer).RegisterPublicRoutes(app)

	app.Use(d.Issuer.Middleware())

	cart.NewHandler(d.Carts).RegisterProtectedRoutes(app)
	order.NewHandler(d.Orders, d.Carts).RegisterProtectedRoutes(app)

	return app
}
