package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/grocerybag/grocerybag/internal/config"
	"github.com/grocerybag/grocerybag/internal/identity"
	"github.com/grocerybag/grocerybag/internal/notification"
)

// Service drives the login, OTP and registration flows.
type Service struct {
	cfg      config.Config
	ids      *identity.Service
	otps     OTPStore
	notifier notification.Notifier
}

// NewService constructs an auth service.
func NewService(cfg config.Config, ids *identity.Service, otps OTPStore, notifier notification.Notifier) *Service {
	return &Service{cfg: cfg, ids: ids, otps: otps, notifier: notifier}
}

// LoginResult carries the authenticated user and its access token.
type LoginResult struct {
	User  identity.User
	Token string
}

// Login validates credentials and issues an access token.
func (s *Service) Login(ctx context.Context, phone, password string) (LoginResult, error) {
	user, err := s.ids.Authenticate(ctx, identity.Credentials{Phone: phone, Password: password})
	if err != nil {
		return LoginResult{}, err
	}
	token, err := s.sign(user)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{User: user, Token: token}, nil
}

// RequestOTP issues a fresh passcode for the phone and hands it to the notifier.
func (s *Service) RequestOTP(ctx context.Context, phone string) error {
	code, err := GenerateCode()
	if err != nil {
		return err
	}
	if err := s.otps.Issue(ctx, phone, code, s.cfg.OTPTTL); err != nil {
		return err
	}
	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindOTP,
			Destination: phone,
			Body:        fmt.Sprintf("Your GroceryBag verification code is %s", code),
		})
	}
	return nil
}

// VerifyOTP consumes the passcode and, on success, issues an access token for
// the account behind the phone number.
func (s *Service) VerifyOTP(ctx context.Context, phone, code string) (LoginResult, error) {
	if err := s.otps.Consume(ctx, phone, code); err != nil {
		return LoginResult{}, err
	}
	user, err := s.ids.FindByPhone(ctx, phone)
	if err != nil {
		return LoginResult{}, err
	}
	token, err := s.sign(user)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{User: user, Token: token}, nil
}

// Register creates an account and reports the issued UID.
func (s *Service) Register(ctx context.Context, input identity.RegisterInput) (identity.User, error) {
	user, err := s.ids.Register(ctx, input)
	if err != nil {
		return identity.User{}, err
	}
	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindAccountCreated,
			Destination: user.Phone,
			Body:        fmt.Sprintf("Your account %s has been created", user.UID),
		})
	}
	return user, nil
}

func (s *Service) sign(user identity.User) (string, error) {
	now := time.Now()
	claims := map[string]any{
		"sub":  user.ID,
		"uid":  user.UID,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.AccessTokenTTL).Unix(),
	}
	return SignHS256(claims, []byte(s.cfg.JWTSecret))
}
