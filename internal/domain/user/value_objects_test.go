//go:build unit

package user_test

import (
	"strings"
	"testing"

	"bookit-api/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	t.Run("valid email", func(t *testing.T) {
		e, err := user.NewEmail("alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", e.Value())
	})

	t.Run("email is trimmed", func(t *testing.T) {
		e, err := user.NewEmail("  bob@example.com  ")
		require.NoError(t, err)
		assert.Equal(t, "bob@example.com", e.Value())
	})

	t.Run("invalid formats", func(t *testing.T) {
		for _, raw := range []string{"", "not-an-email", "a@b", "@example.com", "alice@", "alice@example"} {
			_, err := user.NewEmail(raw)
			require.ErrorIs(t, err, user.ErrInvalidEmail, "input %q", raw)
		}
	})
}

func TestNewPassword(t *testing.T) {
	t.Run("valid password", func(t *testing.T) {
		p, err := user.NewPassword("password123")
		require.NoError(t, err)
		assert.Equal(t, "password123", p.Value())
	})

	t.Run("minimum length", func(t *testing.T) {
		_, err := user.NewPassword("12345678")
		require.NoError(t, err)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := user.NewPassword("1234567")
		require.ErrorIs(t, err, user.ErrPasswordTooWeak)
	})
}

func TestNewName(t *testing.T) {
	t.Run("valid name", func(t *testing.T) {
		n, err := user.NewName("Alice Smith")
		require.NoError(t, err)
		assert.Equal(t, "Alice Smith", n.Value())
	})

	t.Run("name is trimmed", func(t *testing.T) {
		n, err := user.NewName("  Bob  ")
		require.NoError(t, err)
		assert.Equal(t, "Bob", n.Value())
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := user.NewName("   ")
		require.ErrorIs(t, err, user.ErrEmptyName)
	})

	t.Run("name at maximum length", func(t *testing.T) {
		n, err := user.NewName(strings.Repeat("a", user.MaxNameLength))
		require.NoError(t, err)
		assert.Len(t, n.Value(), user.MaxNameLength)
	})

	t.Run("name exceeding maximum length", func(t *testing.T) {
		_, err := user.NewName(strings.Repeat("a", user.MaxNameLength+1))
		require.ErrorIs(t, err, user.ErrNameTooLong)
	})
}

func TestNewRole(t *testing.T) {
	t.Run("known roles", func(t *testing.T) {
		r, err := user.NewRole("user")
		require.NoError(t, err)
		assert.Equal(t, user.RoleUser, r)
		assert.False(t, r.IsAdmin())

		r, err = user.NewRole("admin")
		require.NoError(t, err)
		assert.Equal(t, user.RoleAdmin, r)
		assert.True(t, r.IsAdmin())
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := user.NewRole("superuser")
		require.ErrorIs(t, err, user.ErrInvalidRole)
	})
}

func TestActor(t *testing.T) {
	ownerID := uuid.New()

	t.Run("owner owns own resources", func(t *testing.T) {
		actor := user.NewActor(ownerID, user.RoleUser)
		assert.True(t, actor.Owns(ownerID))
		assert.False(t, actor.Owns(uuid.New()))
	})

	t.Run("admin role does not imply ownership", func(t *testing.T) {
		actor := user.NewActor(uuid.New(), user.RoleAdmin)
		assert.True(t, actor.IsAdmin())
		assert.False(t, actor.Owns(ownerID))
	})
}
