package handlers

import (
	"errors"
	"log/slog"

	"github.com/arzonkitob/storefront/internal/telegram"
	"github.com/gofiber/fiber/v2"
)

type TelegramHandler struct {
	telegram *telegram.Client
}

func NewTelegramHandler(telegramClient *telegram.Client) *TelegramHandler {
	return &TelegramHandler{
		telegram: telegramClient,
	}
}

// PostOrder relays a storefront book order to the configured Telegram chat.
func (h *TelegramHandler) PostOrder(ctx *fiber.Ctx) error {
	var order telegram.Order
	if err := ctx.BodyParser(&order); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	err := h.telegram.SendOrder(ctx.Context(), order)
	if errors.Is(err, telegram.ErrNotConfigured) {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Telegram configuration is missing. Please set the bot token and chat id.",
		})
	}
	var apiErr *telegram.APIError
	if errors.As(err, &apiErr) {
		slog.Error("Telegram API error", "error", apiErr)
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   apiErr.Error(),
		})
	}
	if err != nil {
		slog.Error("Failed to send order to Telegram", "error", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	return ctx.JSON(fiber.Map{"success": true})
}
