package customer

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service exposes customer operations.
type Service struct {
	repo Repository
}

// NewService builds a customer service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput captures data required to register a customer.
type CreateInput struct {
	Name    string
	Phone   string
	Address string
}

// Create registers a customer, issuing its external identifier and UID.
func (s *Service) Create(ctx context.Context, input CreateInput) (Customer, error) {
	if input.Name == "" || input.Phone == "" {
		return Customer{}, errors.New("name and phone required")
	}

	now := time.Now().UTC()
	c := Customer{
		ID:         uuid.New().String(),
		CustomerID: externalID(input.Name, now),
		Name:       input.Name,
		Phone:      input.Phone,
		Address:    input.Address,
		CreatedAt:  now,
	}

	return s.repo.Create(ctx, c)
}

// externalID derives the customer external id from the name and registration
// date: CU-{yymmdd}-{FirstLast}{rand4}-{asciiSum:04d}.
func externalID(name string, now time.Time) string {
	names := strings.Fields(strings.TrimSpace(name))
	first := ""
	last := ""
	if len(names) > 0 {
		first = names[0]
	}
	if len(names) > 1 {
		last = names[len(names)-1]
	}
	asciiSum := 0
	for _, ch := range first + last {
		asciiSum += int(ch)
	}
	rand4 := 1000 + rand.Intn(9000)
	return fmt.Sprintf("CU-%s-%s%s%d-%04d", now.Format("060102"), first, last, rand4, asciiSum%10000)
}

// List returns all customers, newest first.
func (s *Service) List(ctx context.Context) ([]Customer, error) {
	return s.repo.List(ctx)
}

// Resolve finds a customer by external id, uid or name. A bare "CU-" prefix
// strip is attempted when the direct lookup misses.
func (s *Service) Resolve(ctx context.Context, ref string) (Customer, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Customer{}, ErrNotFound
	}
	c, err := s.repo.Resolve(ctx, ref)
	if err == nil {
		return c, nil
	}
	if candidate := strings.TrimPrefix(ref, "CU-"); candidate != ref {
		return s.repo.Resolve(ctx, candidate)
	}
	return Customer{}, err
}

// UpdateInput holds the mutable customer fields; nil means leave unchanged.
type UpdateInput struct {
	Name    *string
	Phone   *string
	Address *string
}

// Update applies a partial update to the customer identified by ref.
func (s *Service) Update(ctx context.Context, ref string, input UpdateInput) (Customer, error) {
	c, err := s.Resolve(ctx, ref)
	if err != nil {
		return Customer{}, err
	}
	if input.Name != nil {
		c.Name = *input.Name
	}
	if input.Phone != nil {
		c.Phone = *input.Phone
	}
	if input.Address != nil {
		c.Address = *input.Address
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return Customer{}, err
	}
	return c, nil
}
