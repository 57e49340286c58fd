package otp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/trang-ptt/INSTARE-BE/internal/infrastructure/cache/port"
)

const (
	keyPrefix = "instare:otp:"
	ttl       = 10 * time.Minute
)

// Pending is a signup or password-reset attempt awaiting OTP confirmation.
// For password resets only Email and Code are set.
type Pending struct {
	Email        string `json:"email"`
	Username     string `json:"username,omitempty"`
	PasswordHash string `json:"passwordHash,omitempty"`
	Code         int    `json:"code"`
}

// Store keeps pending verifications in the cache with a bounded lifetime,
// keyed by email. A new request for the same email overwrites the prior one.
type Store struct {
	cache port.Cache
}

func NewStore(cache port.Cache) *Store {
	return &Store{cache: cache}
}

// GenerateCode returns a 6-digit verification code.
func GenerateCode() int {
	return rand.Intn(900000) + 100000
}

func (s *Store) Put(ctx context.Context, p Pending) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, keyPrefix+p.Email, string(b), ttl)
}

// Get returns the pending verification for email, or (nil, nil) when none exists.
func (s *Store) Get(ctx context.Context, email string) (*Pending, error) {
	raw, err := s.cache.Get(ctx, keyPrefix+email)
	if errors.Is(err, port.ErrMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var p Pending
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("otp: decode pending: %w", err)
	}
	return &p, nil
}

func (s *Store) Delete(ctx context.Context, email string) error {
	_, err := s.cache.Del(ctx, keyPrefix+email)
	return err
}
