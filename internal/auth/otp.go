package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const otpKeyPrefix = "otp:v1:"

var (
	// ErrOTPInvalid indicates the code did not match or was never issued.
	ErrOTPInvalid = errors.New("invalid or expired OTP")
)

// OTPStore issues and verifies single-use passcodes bound to a phone number.
type OTPStore interface {
	Issue(ctx context.Context, phone, code string, ttl time.Duration) error
	Consume(ctx context.Context, phone, code string) error
}

// GenerateCode returns a random six digit passcode.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// RedisOTPStore stores codes in Redis with a TTL. A code is removed as soon
// as it verifies, so it can only be used once.
type RedisOTPStore struct {
	cache *redis.Client
}

// NewRedisOTPStore builds a Redis-backed OTP store.
func NewRedisOTPStore(cache *redis.Client) *RedisOTPStore {
	return &RedisOTPStore{cache: cache}
}

// Issue stores the code, replacing any outstanding code for the phone.
func (s *RedisOTPStore) Issue(ctx context.Context, phone, code string, ttl time.Duration) error {
	return s.cache.Set(ctx, otpKeyPrefix+phone, code, ttl).Err()
}

// Consume verifies and deletes the stored code.
func (s *RedisOTPStore) Consume(ctx context.Context, phone, code string) error {
	key := otpKeyPrefix + phone
	stored, err := s.cache.Get(ctx, key).Result()
	if err == redis.Nil {
		return ErrOTPInvalid
	}
	if err != nil {
		return err
	}
	if stored != code {
		return ErrOTPInvalid
	}
	return s.cache.Del(ctx, key).Err()
}

type memoryOTP struct {
	code    string
	expires time.Time
}

type memoryOTPStore struct {
	mu    sync.Mutex
	codes map[string]memoryOTP
}

// NewMemoryOTPStore builds an in-memory OTP store for development and tests.
func NewMemoryOTPStore() OTPStore {
	return &memoryOTPStore{codes: make(map[string]memoryOTP)}
}

func (s *memoryOTPStore) Issue(_ context.Context, phone, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[phone] = memoryOTP{code: code, expires: time.Now().Add(ttl)}
	return nil
}

func (s *memoryOTPStore) Consume(_ context.Context, phone, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.codes[phone]
	if !ok || entry.code != code || time.Now().After(entry.expires) {
		return ErrOTPInvalid
	}
	delete(s.codes, phone)
	return nil
}
