package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "stockroom/internal/log"
)

const genericMessage = "Something went wrong. Please try again."

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func errorKind(code int) string {
	switch code {
	case fiber.StatusBadRequest:
		return "bad_request"
	case fiber.StatusNotFound:
		return "not_found"
	case fiber.StatusRequestEntityTooLarge:
		return "payload_too_large"
	case fiber.StatusTooManyRequests:
		return "rate_limited"
	case fiber.StatusInternalServerError:
		return "internal_server_error"
	}
	return "error"
}

func isAPI(c *fiber.Ctx) bool { return strings.HasPrefix(c.Path(), "/api/") }

// ErrorHandler is the last stop for errors returned by handlers, storage
// failures included. 5xx details are logged, never sent to the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := genericMessage
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		if code < fiber.StatusInternalServerError {
			msg = fe.Message
		}
	}
	if code >= fiber.StatusInternalServerError {
		applog.Error(c, "server.error", err, map[string]any{"code": code})
	} else {
		applog.Security(c, "request.rejected", map[string]any{"code": code, "reason": msg})
	}

	if isAPI(c) {
		return c.Status(code).JSON(errorBody{Error: errorKind(code), Message: msg})
	}
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}
