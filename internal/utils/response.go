package utils

import (
	"github.com/gofiber/fiber/v2"
)

// Response is the JSON envelope returned by every API route.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Kind    string      `json:"kind,omitempty"`
}

// SuccessResponse writes a 200 envelope with data.
func SuccessResponse(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse writes an error envelope. err may be nil.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	return KindErrorResponse(c, status, "", message, err)
}

// KindErrorResponse is ErrorResponse with a machine-readable error kind the page
// script switches on.
func KindErrorResponse(c *fiber.Ctx, status int, kind, message string, err error) error {
	resp := Response{
		Success: false,
		Message: message,
		Kind:    kind,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return c.Status(status).JSON(resp)
}
