package transaction

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes read access to the transaction log.
type Handler struct {
	log Log
}

// NewHandler builds the transaction handler.
func NewHandler(log Log) *Handler {
	return &Handler{log: log}
}

// List returns transactions, optionally filtered by a `since` timestamp or by
// related entity via `related_type` and `related_id`.
func (h *Handler) List(c *fiber.Ctx) error {
	if relatedType := c.Query("related_type"); relatedType != "" {
		entries, err := h.log.ListByRelated(c.UserContext(), relatedType, c.Query("related_id"))
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(entries)
	}

	since := time.Unix(0, 0).UTC()
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid since timestamp")
		}
		since = parsed.UTC()
	}
	entries, err := h.log.ListSince(c.UserContext(), since)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(entries)
}
