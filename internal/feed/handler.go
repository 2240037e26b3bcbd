package feed

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the update feed endpoint.
type Handler struct {
	svc *Service
}

// NewHandler builds the feed handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Recent returns records changed since the client's watermark. A missing
// `since` yields the full dataset.
func (h *Handler) Recent(c *fiber.Ctx) error {
	since := time.Unix(0, 0).UTC()
	if raw := c.Query("since"); raw != "" {
		parsed, err := parseSince(raw)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid since timestamp")
		}
		since = parsed
	}

	payload, err := h.svc.Since(c.UserContext(), since)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(payload)
}

// parseSince accepts RFC3339 plus the looser ISO shapes clients send: a space
// instead of the T separator, and a timestamp with no zone (taken as UTC).
func parseSince(raw string) (time.Time, error) {
	raw = strings.Replace(raw, " ", "T", 1)
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &time.ParseError{Layout: time.RFC3339, Value: raw}
}
