// Package access resolves opaque capability tokens to a department scope
// and a role. There is no user identity here — possession of the token
// string IS the credential.
package access

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bahadricoz/shift/internal/dto"
)

const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

var (
	// ErrNoLinks — bootstrap condition: nothing is provisioned yet, so the
	// caller should be offered first-time setup instead of a denial.
	ErrNoLinks = errors.New("no access links provisioned")

	ErrTokenRequired = errors.New("token required")
	ErrInvalidToken  = errors.New("invalid token")
)

// Context is the resolved scope of one request.
type Context struct {
	Token        string
	DepartmentID int64
	Role         string
}

func (c *Context) CanWrite() bool {
	return c != nil && c.Role == RoleAdmin
}

type LinkSource interface {
	GetByToken(ctx context.Context, token string) (*dto.AccessLink, error)
	Count(ctx context.Context) (int, error)
}

type Resolver struct {
	links LinkSource
}

func NewResolver(links LinkSource) *Resolver {
	return &Resolver{links: links}
}

// Resolve walks the token state machine: no token → (lookup) → invalid or
// valid(role, department). A missing token with zero provisioned links is
// reported as ErrNoLinks so the API can open the bootstrap path.
func (r *Resolver) Resolve(ctx context.Context, token string) (*Context, error) {
	token = strings.TrimSpace(token)

	if token == "" {
		n, err := r.links.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("links.Count: %w", err)
		}
		if n == 0 {
			return nil, ErrNoLinks
		}
		return nil, ErrTokenRequired
	}

	link, err := r.links.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("links.GetByToken: %w", err)
	}

	return &Context{
		Token:        link.Token,
		DepartmentID: link.DepartmentID,
		Role:         link.Role,
	}, nil
}

// BuildURL renders the shareable access URL for a token.
func BuildURL(baseURL, token string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return fmt.Sprintf("?token=%s", token)
	}
	return fmt.Sprintf("%s/?token=%s", base, token)
}
