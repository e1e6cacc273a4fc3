// Package middleware holds the fiber middleware shared by every route.
package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/chaosshop-storefront/internal/logger"
	"go.uber.org/zap"
)

// RequestIDKey is the fiber local the requestid middleware writes to.
const RequestIDKey = "requestid"

// RequestLogger logs every request and exposes a request-scoped logger to
// handlers through the user context.
func RequestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID, _ := c.Locals(RequestIDKey).(string)

		reqLogger := log.With(
			zap.String("request_id", requestID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		)
		c.SetUserContext(logger.WithContext(c.UserContext(), reqLogger))

		chainErr := c.Next()
		if chainErr != nil {
			// let fiber's error handler write the response before we read the status
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.IP()),
			zap.Int("body_size", len(c.Response().Body())),
		}
		if q := string(c.Request().URI().QueryString()); q != "" {
			fields = append(fields, zap.String("query", q))
		}
		if chainErr != nil {
			fields = append(fields, zap.Error(chainErr))
		}

		msg := "HTTP Request"
		switch {
		case status >= 500:
			reqLogger.Error(msg, fields...)
		case status >= 400:
			reqLogger.Warn(msg, fields...)
		default:
			reqLogger.Info(msg, fields...)
		}
		return nil
	}
}

// Recovery turns a panic in a handler into a logged 500.
func Recovery(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				requestID, _ := c.Locals(RequestIDKey).(string)
				log.Error("Panic recovered",
					zap.String("request_id", requestID),
					zap.String("method", c.Method()),
					zap.String("path", c.Path()),
					zap.Any("error", r),
					zap.Stack("stacktrace"),
				)
				err = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "internal server error"})
			}
		}()
		return c.Next()
	}
}
