package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/repair-orders/internal/models"
)

const testUsersYAML = `users:
  - id: 1
    email: "admin@szerviz.hu"
    password_hash: "$2a$10$hash1"
    role: "ADMIN"
    name: "Kovács Béla"
    active: true
  - id: 2
    email: "regi@szerviz.hu"
    password_hash: "$2a$10$hash2"
    role: "EMPLOYEE"
    name: "Kiss Gábor"
    active: false

role_permissions:
  ADMIN:
    - "view_database"
    - "delete_orders"
  EMPLOYEE:
    - "view_database"
  USER: []
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testUsersYAML), 0o600))

	store, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Count())

	user, ok := store.FindActiveByEmail("admin@szerviz.hu")
	require.True(t, ok)
	assert.Equal(t, "ADMIN", user.Role)
	assert.Equal(t, "Kovács Béla", user.Name)
}

func TestLoad_MissingFile(t *testing.T) {
	store, err := Load(filepath.Join(t.TempDir(), "nincs.yaml"))
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestFindActiveByEmail(t *testing.T) {
	store := NewStore([]models.User{
		{ID: 1, Email: "admin@szerviz.hu", Role: "ADMIN", Active: true},
		{ID: 2, Email: "regi@szerviz.hu", Role: "EMPLOYEE", Active: false},
	}, nil)

	t.Run("активный пользователь", func(t *testing.T) {
		user, ok := store.FindActiveByEmail("admin@szerviz.hu")
		require.True(t, ok)
		assert.Equal(t, 1, user.ID)
	})

	t.Run("деактивированный пользователь не находится", func(t *testing.T) {
		user, ok := store.FindActiveByEmail("regi@szerviz.hu")
		assert.False(t, ok)
		assert.Nil(t, user)
	})

	t.Run("неизвестный email", func(t *testing.T) {
		user, ok := store.FindActiveByEmail("nincs@szerviz.hu")
		assert.False(t, ok)
		assert.Nil(t, user)
	})

	t.Run("сравнение email чувствительно к регистру", func(t *testing.T) {
		_, ok := store.FindActiveByEmail("ADMIN@szerviz.hu")
		assert.False(t, ok)
	})
}

func TestRoleHasPermission(t *testing.T) {
	store := NewStore(nil, map[string][]string{
		"ADMIN":    {"view_database", "delete_orders"},
		"EMPLOYEE": {"view_database"},
		"USER":     {},
	})

	assert.True(t, store.RoleHasPermission("ADMIN", "delete_orders"))
	assert.True(t, store.RoleHasPermission("EMPLOYEE", "view_database"))
	assert.False(t, store.RoleHasPermission("EMPLOYEE", "delete_orders"))
	assert.False(t, store.RoleHasPermission("USER", "view_database"))
	assert.False(t, store.RoleHasPermission("SENKI", "view_database"))
}
