package services

import (
	"golang.org/x/crypto/bcrypt"

	portssvc "github.com/luxe-fragrances/storefront-backend/internal/core/ports/services"
)

// bcryptHasher implements PasswordHasher on top of bcrypt. The cost (work
// factor) is fixed at construction time from configuration.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a bcrypt-backed PasswordHasher with the given cost.
// Out-of-range costs fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) portssvc.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

// Hash produces a salted bcrypt digest. bcrypt generates a fresh random salt
// per call, so hashing the same password twice yields different digests.
func (h *bcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	return string(hash), err
}

// Verify compares a plaintext password with a bcrypt digest. Malformed
// digests simply fail the comparison.
func (h *bcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
