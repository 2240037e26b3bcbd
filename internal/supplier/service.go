package supplier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service exposes supplier operations.
type Service struct {
	repo Repository
}

// NewService builds a supplier service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput captures data required to register a supplier.
type CreateInput struct {
	Name    string
	Phone   string
	Address string
}

// Create registers a supplier and issues its external identifier.
func (s *Service) Create(ctx context.Context, input CreateInput) (Supplier, error) {
	if input.Name == "" || input.Phone == "" {
		return Supplier{}, errors.New("name and phone required")
	}

	now := time.Now().UTC()
	sup := Supplier{
		ID:         uuid.New().String(),
		SupplierID: fmt.Sprintf("SU-%s-%s", now.Format("060102"), uuid.New().String()[:4]),
		Name:       input.Name,
		Phone:      input.Phone,
		Address:    input.Address,
		CreatedAt:  now,
	}

	if err := s.repo.Create(ctx, sup); err != nil {
		return Supplier{}, err
	}
	return sup, nil
}

// List returns all suppliers, newest first.
func (s *Service) List(ctx context.Context) ([]Supplier, error) {
	return s.repo.List(ctx)
}

// Resolve finds a supplier by external id or name. A UI-side "SUP-" prefix on
// the external id is tolerated.
func (s *Service) Resolve(ctx context.Context, ref string) (Supplier, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Supplier{}, ErrNotFound
	}
	sup, err := s.repo.Resolve(ctx, ref)
	if err == nil {
		return sup, nil
	}
	if candidate := strings.TrimPrefix(ref, "SUP-"); candidate != ref {
		return s.repo.Resolve(ctx, candidate)
	}
	return Supplier{}, err
}

// UpdateInput holds the mutable supplier fields; nil means leave unchanged.
type UpdateInput struct {
	Name    *string
	Phone   *string
	Address *string
}

// Update applies a partial update to the supplier identified by ref.
func (s *Service) Update(ctx context.Context, ref string, input UpdateInput) (Supplier, error) {
	sup, err := s.Resolve(ctx, ref)
	if err != nil {
		return Supplier{}, err
	}
	if input.Name != nil {
		sup.Name = *input.Name
	}
	if input.Phone != nil {
		sup.Phone = *input.Phone
	}
	if input.Address != nil {
		sup.Address = *input.Address
	}
	if err := s.repo.Update(ctx, sup); err != nil {
		return Supplier{}, err
	}
	return sup, nil
}
