package identity

import (
	"context"
	"fmt"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	users map[string]User
	seq   int64
}

// NewMemoryRepository builds an in-memory user store for development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[string]User)}
}

func (r *memoryRepository) Create(_ context.Context, user User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Phone]; exists {
		return User{}, ErrPhoneExists
	}
	r.seq++
	user.UID = fmt.Sprintf("%s-%04d", UIDPrefix(user.Role), r.seq)
	r.users[user.Phone] = user
	return user, nil
}

func (r *memoryRepository) FindByPhone(_ context.Context, phone string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[phone]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *memoryRepository) FindByUID(_ context.Context, uid string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.UID == uid {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}
