package presenter

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ParseErrorResponse is returned when a document was read but no CV could be
// built from it.
type ParseErrorResponse struct {
	Detail        string              `json:"detail"`
	DebugRawText  string              `json:"debug_raw_text"`
	DebugSections map[string][]string `json:"debug_sections"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, detail string) error {
	return JSON(c, status, ErrorResponse{Detail: detail})
}
