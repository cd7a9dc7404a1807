package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("Secreto1")
	require.NoError(t, err)
	assert.NotEqual(t, "Secreto1", hash)

	ok, err := h.Verify(hash, "Secreto1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(hash, "Secreto2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashesAreSalted(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	first, err := h.Hash("Secreto1")
	require.NoError(t, err)
	second, err := h.Hash("Secreto1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestRejectsOverlongPassword(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("a", 100))
	require.Error(t, err)
}

func TestMalformedHashIsAnError(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	_, err := h.Verify("not-a-bcrypt-hash", "Secreto1")
	require.Error(t, err)
}

func TestOutOfRangeCostFallsBack(t *testing.T) {
	h := NewHasher(-1)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)
}
