package purchase

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/grocerybag/grocerybag/internal/supplier"
	"github.com/grocerybag/grocerybag/internal/uploads"
)

// Handler exposes purchase endpoints.
type Handler struct {
	svc   *Service
	saver *uploads.Saver
}

// NewHandler builds the purchase handler.
func NewHandler(svc *Service, saver *uploads.Saver) *Handler {
	return &Handler{svc: svc, saver: saver}
}

// Create records a purchase from a multipart entry form.
func (h *Handler) Create(c *fiber.Ctx) error {
	supplierRef := c.FormValue("supplier_id")
	if supplierRef == "" {
		return fiber.NewError(http.StatusBadRequest, "supplier_id required")
	}

	units, err := strconv.Atoi(c.FormValue("units", "0"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid units")
	}
	price, err := decimal.NewFromString(c.FormValue("price_per_unit", "0"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid price_per_unit")
	}

	invoiceURL := ""
	if file, err := c.FormFile("invoice_file"); err == nil && file != nil {
		invoiceURL, err = h.saver.Save("invoice", file)
		if err != nil {
			if errors.Is(err, uploads.ErrUnsupportedType) {
				return fiber.NewError(http.StatusBadRequest, err.Error())
			}
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	p, err := h.svc.Create(c.UserContext(), CreateInput{
		SupplierRef:  supplierRef,
		BagSize:      c.FormValue("bag_size"),
		Units:        units,
		PricePerUnit: price,
		InvoiceImage: invoiceURL,
	})
	if err != nil {
		if errors.Is(err, supplier.ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "supplier not found")
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":       "Purchase created",
		"id":            p.ID,
		"purchase_id":   p.PurchaseID,
		"invoice_image": p.InvoiceImage,
	})
}

// List returns recent purchases.
func (h *Handler) List(c *fiber.Ctx) error {
	purchases, err := h.svc.List(c.UserContext(), c.QueryInt("limit", 100))
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(purchases)
}

// Get returns one purchase by external id.
func (h *Handler) Get(c *fiber.Ctx) error {
	p, err := h.svc.Get(c.UserContext(), c.Params("ref"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(p)
}
