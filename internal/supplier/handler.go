package supplier

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes supplier endpoints.
type Handler struct {
	svc *Service
}

// NewHandler builds the supplier handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type createRequest struct {
	Name    string `json:"name" form:"name"`
	Phone   string `json:"phone" form:"phone"`
	Address string `json:"address" form:"address"`
}

// Create registers a supplier.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	sup, err := h.svc.Create(c.UserContext(), CreateInput{Name: req.Name, Phone: req.Phone, Address: req.Address})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":     "Supplier created",
		"id":          sup.ID,
		"supplier_id": sup.SupplierID,
	})
}

// List returns all suppliers.
func (h *Handler) List(c *fiber.Ctx) error {
	suppliers, err := h.svc.List(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(suppliers)
}

// Get returns one supplier by external id or name.
func (h *Handler) Get(c *fiber.Ctx) error {
	sup, err := h.svc.Resolve(c.UserContext(), c.Params("ref"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(sup)
}

// Update applies a partial update to a supplier.
func (h *Handler) Update(c *fiber.Ctx) error {
	var req struct {
		Name    *string `json:"name" form:"name"`
		Phone   *string `json:"phone" form:"phone"`
		Address *string `json:"address" form:"address"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	sup, err := h.svc.Update(c.UserContext(), c.Params("ref"), UpdateInput{Name: req.Name, Phone: req.Phone, Address: req.Address})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "not found")
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(fiber.Map{"message": "Supplier updated", "id": sup.ID, "supplier_id": sup.SupplierID})
}
