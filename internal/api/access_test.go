package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/bahadricoz/shift/internal/dto"
)

type fakeLinkRepo struct {
	links map[string]*dto.AccessLink
}

func (f *fakeLinkRepo) GetByToken(_ context.Context, token string) (*dto.AccessLink, error) {
	link, ok := f.links[token]
	if !ok {
		return nil, dto.ErrNotFound
	}
	return link, nil
}

func (f *fakeLinkRepo) Count(_ context.Context) (int, error) {
	return len(f.links), nil
}

func (f *fakeLinkRepo) GetByDepartmentAndRole(_ context.Context, departmentID int64, role string) (*dto.AccessLink, error) {
	for _, l := range f.links {
		if l.DepartmentID == departmentID && l.Role == role {
			return l, nil
		}
	}
	return nil, dto.ErrNotFound
}

func (f *fakeLinkRepo) Create(_ context.Context, link dto.AccessLink) (*dto.AccessLink, error) {
	if _, exists := f.links[link.Token]; exists {
		return nil, dto.ErrAlreadyExists
	}
	stored := link
	stored.ID = int64(len(f.links) + 1)
	f.links[link.Token] = &stored
	return &stored, nil
}

func serviceWithLinks(links map[string]*dto.AccessLink) *Service {
	return NewService(ServiceDeps{
		Port:     0,
		BaseURL:  "https://shift.example.com",
		SetupKey: "setup-secret",
		LinkRepo: &fakeLinkRepo{links: links},
	})
}

func requestCtx(uri string) *fasthttp.RequestCtx {
	var ctx fasthttp.RequestCtx
	ctx.Request.SetRequestURI(uri)
	return &ctx
}

func TestAccessMiddleware(t *testing.T) {
	provisioned := map[string]*dto.AccessLink{
		"admin-token":  {Token: "admin-token", DepartmentID: 1, Role: "admin"},
		"viewer-token": {Token: "viewer-token", DepartmentID: 1, Role: "viewer"},
	}

	t.Run("fresh deployment signals bootstrap", func(t *testing.T) {
		s := serviceWithLinks(map[string]*dto.AccessLink{})

		ctx := requestCtx("/schedule")
		s.asViewer(func(*fasthttp.RequestCtx) { t.Fatal("handler must not run") })(ctx)

		assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
		assert.Contains(t, string(ctx.Response.Body()), "BOOTSTRAP_REQUIRED")
	})

	t.Run("missing token with provisioned links is 401", func(t *testing.T) {
		s := serviceWithLinks(provisioned)

		ctx := requestCtx("/schedule")
		s.asViewer(func(*fasthttp.RequestCtx) { t.Fatal("handler must not run") })(ctx)

		assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
	})

	t.Run("unknown token is 401", func(t *testing.T) {
		s := serviceWithLinks(provisioned)

		ctx := requestCtx("/schedule?token=wrong")
		s.asViewer(func(*fasthttp.RequestCtx) { t.Fatal("handler must not run") })(ctx)

		assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
	})

	t.Run("viewer token passes asViewer with scope attached", func(t *testing.T) {
		s := serviceWithLinks(provisioned)

		var ran bool
		ctx := requestCtx("/schedule?token=viewer-token")
		s.asViewer(func(c *fasthttp.RequestCtx) {
			ran = true
			acc := accessFrom(c)
			require.NotNil(t, acc)
			assert.Equal(t, int64(1), acc.DepartmentID)
			assert.False(t, acc.CanWrite())
		})(ctx)

		assert.True(t, ran)
	})

	t.Run("viewer token is rejected by asAdmin", func(t *testing.T) {
		s := serviceWithLinks(provisioned)

		ctx := requestCtx("/segments?token=viewer-token")
		s.asAdmin(func(*fasthttp.RequestCtx) { t.Fatal("handler must not run") })(ctx)

		assert.Equal(t, fasthttp.StatusForbidden, ctx.Response.StatusCode())
	})

	t.Run("admin token passes asAdmin", func(t *testing.T) {
		s := serviceWithLinks(provisioned)

		var ran bool
		ctx := requestCtx("/segments?token=admin-token")
		s.asAdmin(func(c *fasthttp.RequestCtx) {
			ran = true
			assert.True(t, accessFrom(c).CanWrite())
		})(ctx)

		assert.True(t, ran)
	})
}

func TestDateRange(t *testing.T) {
	from, to, err := dateRange("2024-03-04", "2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", from.Format("2006-01-02"))
	assert.Equal(t, "2024-03-10", to.Format("2006-01-02"))

	_, _, err = dateRange("2024-03-10", "2024-03-04")
	assert.Error(t, err)

	_, _, err = dateRange("bad", "2024-03-04")
	assert.Error(t, err)

	_, _, err = dateRange("2024-03-04", "")
	assert.Error(t, err)
}

func TestSplitCSVParam(t *testing.T) {
	ctx := requestCtx("/export.csv?member_ids=1024,1025&work_types=Office")

	assert.Equal(t, []string{"1024", "1025"}, splitCSVParam(ctx, "member_ids"))
	assert.Equal(t, []string{"Office"}, splitCSVParam(ctx, "work_types"))
	assert.Nil(t, splitCSVParam(ctx, "missing"))
}
