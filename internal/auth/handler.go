package auth

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/grocerybag/grocerybag/internal/identity"
)

// Handler exposes the login/OTP/registration endpoints.
type Handler struct {
	svc      *Service
	validate *validator.Validate
}

// NewHandler builds the auth handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc, validate: validator.New()}
}

type loginRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login validates credentials and returns an access token plus the account role.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "phone and password required")
	}
	res, err := h.svc.Login(c.UserContext(), req.Phone, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Login successful",
		"token":   res.Token,
		"role":    res.User.Role,
		"uid":     res.User.UID,
	})
}

type otpRequest struct {
	Phone string `json:"phone" validate:"required"`
}

// RequestOTP issues a one-time passcode for the phone number.
func (h *Handler) RequestOTP(c *fiber.Ctx) error {
	var req otpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "phone required")
	}
	if err := h.svc.RequestOTP(c.UserContext(), req.Phone); err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "OTP sent"})
}

type verifyOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"code" validate:"required"`
}

// VerifyOTP consumes the passcode and completes the login.
func (h *Handler) VerifyOTP(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "phone and code required")
	}
	res, err := h.svc.VerifyOTP(c.UserContext(), req.Phone, req.Code)
	if err != nil {
		if errors.Is(err, ErrOTPInvalid) {
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "OTP verified",
		"token":   res.Token,
		"role":    res.User.Role,
	})
}

type registerRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=admin user customer"`
}

// Register creates an account and returns the issued UID.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "phone, password and role required")
	}
	user, err := h.svc.Register(c.UserContext(), identity.RegisterInput{Phone: req.Phone, Password: req.Password, Role: req.Role})
	if err != nil {
		if errors.Is(err, identity.ErrPhoneExists) {
			return fiber.NewError(http.StatusBadRequest, "Phone already exists")
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"message": "User created", "uid": user.UID})
}
