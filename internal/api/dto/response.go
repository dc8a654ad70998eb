package dto

import "github.com/gofiber/fiber/v2"

// Envelope is the uniform response shape. Every endpoint returns success plus
// an optional message, data payload, and list metadata.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Total   *int   `json:"total,omitempty"`
	Page    *int   `json:"page,omitempty"`
	Pages   *int   `json:"pages,omitempty"`
}

// OK wraps a successful payload.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// OKMessage wraps a successful payload with a message.
func OKMessage(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// List wraps a collection payload with its count.
func List(data any, count int) Envelope {
	return Envelope{Success: true, Data: data, Count: &count}
}

// Paged wraps a paginated collection.
func Paged(data any, count, total, page, pages int) Envelope {
	return Envelope{Success: true, Data: data, Count: &count, Total: &total, Page: &page, Pages: &pages}
}

// Fail builds a failure envelope.
func Fail(message, detail string) Envelope {
	return Envelope{Success: false, Message: message, Error: detail}
}

// JSON writes the envelope with the given status.
func JSON(c *fiber.Ctx, status int, env Envelope) error {
	return c.Status(status).JSON(env)
}
