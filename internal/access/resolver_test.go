package access

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bahadricoz/shift/internal/dto"
)

type fakeLinkSource struct {
	links map[string]*dto.AccessLink
}

func (f *fakeLinkSource) GetByToken(_ context.Context, token string) (*dto.AccessLink, error) {
	link, ok := f.links[token]
	if !ok {
		return nil, dto.ErrNotFound
	}
	return link, nil
}

func (f *fakeLinkSource) Count(_ context.Context) (int, error) {
	return len(f.links), nil
}

func TestResolver(t *testing.T) {
	ctx := context.Background()

	provisioned := &fakeLinkSource{links: map[string]*dto.AccessLink{
		"admin-token":  {Token: "admin-token", DepartmentID: 1, Role: RoleAdmin},
		"viewer-token": {Token: "viewer-token", DepartmentID: 1, Role: RoleViewer},
	}}

	t.Run("no token, no links: bootstrap condition", func(t *testing.T) {
		r := NewResolver(&fakeLinkSource{links: map[string]*dto.AccessLink{}})

		_, err := r.Resolve(ctx, "")
		assert.ErrorIs(t, err, ErrNoLinks)
	})

	t.Run("no token with provisioned links: token required", func(t *testing.T) {
		r := NewResolver(provisioned)

		_, err := r.Resolve(ctx, "   ")
		assert.ErrorIs(t, err, ErrTokenRequired)
	})

	t.Run("unknown token is invalid", func(t *testing.T) {
		r := NewResolver(provisioned)

		_, err := r.Resolve(ctx, "nope")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("admin token resolves to a writable scope", func(t *testing.T) {
		r := NewResolver(provisioned)

		acc, err := r.Resolve(ctx, "admin-token")

		require.NoError(t, err)
		assert.Equal(t, int64(1), acc.DepartmentID)
		assert.Equal(t, RoleAdmin, acc.Role)
		assert.True(t, acc.CanWrite())
	})

	t.Run("viewer token resolves read-only", func(t *testing.T) {
		r := NewResolver(provisioned)

		acc, err := r.Resolve(ctx, "viewer-token")

		require.NoError(t, err)
		assert.False(t, acc.CanWrite())
	})

	t.Run("token is trimmed before lookup", func(t *testing.T) {
		r := NewResolver(provisioned)

		acc, err := r.Resolve(ctx, "  admin-token  ")

		require.NoError(t, err)
		assert.Equal(t, "admin-token", acc.Token)
	})
}

func TestNewToken(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		token, err := NewToken()
		require.NoError(t, err)

		// 36 random bytes, url-safe base64 without padding.
		assert.Len(t, token, 48)
		assert.NotContains(t, token, "+")
		assert.NotContains(t, token, "/")
		assert.NotContains(t, token, "=")

		_, dup := seen[token]
		assert.False(t, dup, "token collision")
		seen[token] = struct{}{}
	}
}

func TestBuildURL(t *testing.T) {
	assert.Equal(t, "https://shift.example.com/?token=abc", BuildURL("https://shift.example.com", "abc"))
	assert.Equal(t, "https://shift.example.com/?token=abc", BuildURL("https://shift.example.com/", "abc"))
	assert.Equal(t, "?token=abc", BuildURL("  ", "abc"))
}

func TestCanWriteNilContext(t *testing.T) {
	var acc *Context
	assert.False(t, acc.CanWrite())
}
