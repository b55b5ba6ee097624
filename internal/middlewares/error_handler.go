package middlewares

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler converts anything handlers did not deal with into a JSON error
// response. Nothing user-facing leaks internal error details on 5xx.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	slog.Error("unhandled error", "code", code, "error", err)
	return ctx.Status(code).JSON(fiber.Map{"error": message})
}
