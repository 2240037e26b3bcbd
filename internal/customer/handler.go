package customer

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes customer endpoints.
type Handler struct {
	svc *Service
}

// NewHandler builds the customer handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type createRequest struct {
	Name    string `json:"name" form:"name"`
	Phone   string `json:"phone" form:"phone"`
	Address string `json:"address" form:"address"`
}

// Create registers a customer.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	cust, err := h.svc.Create(c.UserContext(), CreateInput{Name: req.Name, Phone: req.Phone, Address: req.Address})
	if err != nil {
		if errors.Is(err, ErrPhoneExists) {
			return fiber.NewError(http.StatusBadRequest, "phone already exists")
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":     "Customer created",
		"id":          cust.ID,
		"customer_id": cust.CustomerID,
		"uid":         cust.UID,
	})
}

// List returns all customers.
func (h *Handler) List(c *fiber.Ctx) error {
	customers, err := h.svc.List(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(customers)
}

// Get returns one customer by external id, uid or name.
func (h *Handler) Get(c *fiber.Ctx) error {
	cust, err := h.svc.Resolve(c.UserContext(), c.Params("ref"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(cust)
}

// Update applies a partial update to a customer.
func (h *Handler) Update(c *fiber.Ctx) error {
	var req struct {
		Name    *string `json:"name" form:"name"`
		Phone   *string `json:"phone" form:"phone"`
		Address *string `json:"address" form:"address"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	cust, err := h.svc.Update(c.UserContext(), c.Params("ref"), UpdateInput{Name: req.Name, Phone: req.Phone, Address: req.Address})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "not found")
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(fiber.Map{"message": "Customer updated", "id": cust.ID, "customer_id": cust.CustomerID})
}
