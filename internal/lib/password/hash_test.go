package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHashAndCompare(t *testing.T) {
	hash, err := GetHash("admin-jelszo")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "admin-jelszo", hash)

	assert.NoError(t, CompareHash(hash, "admin-jelszo"))
	assert.Error(t, CompareHash(hash, "wrong-password"))
}

func TestCompareHash_InvalidHash(t *testing.T) {
	assert.Error(t, CompareHash("not-a-bcrypt-hash", "password"))
}
