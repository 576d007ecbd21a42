package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/luxe-fragrances/storefront-backend/internal/core/services"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	hasher := services.NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("pw12345!")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, hasher.Verify("pw12345!", hash))
	assert.False(t, hasher.Verify("different-password", hash))
}

func TestBcryptHasher_SaltedPerCall(t *testing.T) {
	hasher := services.NewBcryptHasher(bcrypt.MinCost)

	first, err := hasher.Hash("pw12345!")
	require.NoError(t, err)
	second, err := hasher.Hash("pw12345!")
	require.NoError(t, err)

	// A fresh random salt per call means the digests differ but both verify.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("pw12345!", first))
	assert.True(t, hasher.Verify("pw12345!", second))
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	hasher := services.NewBcryptHasher(bcrypt.MinCost)

	assert.False(t, hasher.Verify("pw12345!", ""))
	assert.False(t, hasher.Verify("pw12345!", "not-a-bcrypt-hash"))
}

func TestNewBcryptHasher_OutOfRangeCost(t *testing.T) {
	// An absurd cost falls back to the default rather than failing later.
	hasher := services.NewBcryptHasher(99)

	hash, err := hasher.Hash("pw12345!")
	require.NoError(t, err)
	assert.True(t, hasher.Verify("pw12345!", hash))
}
