package sale

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/grocerybag/grocerybag/internal/customer"
	"github.com/grocerybag/grocerybag/internal/uploads"
)

// Handler exposes sale endpoints.
type Handler struct {
	svc   *Service
	saver *uploads.Saver
}

// NewHandler builds the sale handler.
func NewHandler(svc *Service, saver *uploads.Saver) *Handler {
	return &Handler{svc: svc, saver: saver}
}

// Create records a sale from a multipart entry form.
func (h *Handler) Create(c *fiber.Ctx) error {
	customerRef := c.FormValue("customer_id")
	if customerRef == "" {
		return fiber.NewError(http.StatusBadRequest, "customer_id required")
	}

	units, err := strconv.Atoi(c.FormValue("units", "0"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid units")
	}
	price, err := decimal.NewFromString(c.FormValue("price_per_unit", "0"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid price_per_unit")
	}
	paid, err := decimal.NewFromString(c.FormValue("paid_amount", "0"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid paid_amount")
	}

	invoiceURL := ""
	if file, err := c.FormFile("invoice_file"); err == nil && file != nil {
		invoiceURL, err = h.saver.Save("sale", file)
		if err != nil {
			if errors.Is(err, uploads.ErrUnsupportedType) {
				return fiber.NewError(http.StatusBadRequest, err.Error())
			}
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	sl, err := h.svc.Create(c.UserContext(), CreateInput{
		CustomerRef:  customerRef,
		BagSize:      c.FormValue("bag_size"),
		Units:        units,
		PricePerUnit: price,
		PaidAmount:   paid,
		PaymentType:  c.FormValue("payment_type", "cash"),
		InvoiceImage: invoiceURL,
	})
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "customer not found")
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":       "Sale created",
		"id":            sl.ID,
		"sale_id":       sl.SaleID,
		"total_amount":  sl.TotalAmount,
		"paid_amount":   sl.PaidAmount,
		"outstanding":   sl.Outstanding,
		"invoice_image": sl.InvoiceImage,
	})
}

// List returns recent sales.
func (h *Handler) List(c *fiber.Ctx) error {
	sales, err := h.svc.List(c.UserContext(), c.QueryInt("limit", 100))
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(sales)
}

// Get returns one sale by external id.
func (h *Handler) Get(c *fiber.Ctx) error {
	sl, err := h.svc.Get(c.UserContext(), c.Params("ref"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(sl)
}

// Update applies a partial update to a sale, recomputing the outstanding amount.
func (h *Handler) Update(c *fiber.Ctx) error {
	var req struct {
		BagSize    *string `json:"bag_size" form:"bag_size"`
		Units      *int    `json:"units" form:"units"`
		PaidAmount *string `json:"paid_amount" form:"paid_amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	input := UpdateInput{BagSize: req.BagSize, Units: req.Units}
	if req.PaidAmount != nil {
		paid, err := decimal.NewFromString(*req.PaidAmount)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid paid_amount")
		}
		input.PaidAmount = &paid
	}

	sl, err := h.svc.Update(c.UserContext(), c.Params("ref"), input)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "not found")
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(fiber.Map{"message": "Sale updated", "id": sl.ID, "sale_id": sl.SaleID, "outstanding": sl.Outstanding})
}
