package accesslink

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bahadricoz/shift/internal/dto"
)

type PgxPoolIface interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Repository struct {
	pool PgxPoolIface
}

func NewRepository(pool PgxPoolIface) *Repository {
	return &Repository{pool: pool}
}

const selectColumns = `
select id,
       token,
       department_id,
       role,
       label,
       to_char(created_at, 'YYYY-MM-DD"T"HH24:MI:SSOF')
`

func (r *Repository) GetByToken(ctx context.Context, token string) (*dto.AccessLink, error) {
	query := selectColumns + `
from access_links
where token = $1;
`
	return r.scanOne(r.pool.QueryRow(ctx, query, token))
}

func (r *Repository) GetByDepartmentAndRole(ctx context.Context, departmentID int64, role string) (*dto.AccessLink, error) {
	query := selectColumns + `
from access_links
where department_id = $1 and role = $2;
`
	return r.scanOne(r.pool.QueryRow(ctx, query, departmentID, role))
}

// Create stores a new link. The (department, role) pair is unique: a link
// is generated once and never rotated.
func (r *Repository) Create(ctx context.Context, link dto.AccessLink) (*dto.AccessLink, error) {
	query := `
insert into access_links (token, department_id, role, label)
values (@token, @department_id, @role, @label)
returning id, to_char(created_at, 'YYYY-MM-DD"T"HH24:MI:SSOF');
`
	args := pgx.NamedArgs{
		"token":         link.Token,
		"department_id": link.DepartmentID,
		"role":          link.Role,
		"label":         link.Label,
	}

	err := r.pool.QueryRow(ctx, query, args).Scan(&link.ID, &link.CreatedAt)
	if err != nil {
		var pgerr *pgconn.PgError
		if errors.As(err, &pgerr) && pgerr.Code == "23505" {
			return nil, dto.ErrAlreadyExists
		}

		return nil, fmt.Errorf("row.Scan: %w", err)
	}

	return &link, nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `select count(*) from access_links;`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("row.Scan: %w", err)
	}

	return n, nil
}

func (r *Repository) scanOne(row pgx.Row) (*dto.AccessLink, error) {
	var out dto.AccessLink
	err := row.Scan(&out.ID, &out.Token, &out.DepartmentID, &out.Role, &out.Label, &out.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dto.ErrNotFound
		}

		return nil, fmt.Errorf("row.Scan: %w", err)
	}

	return &out, nil
}
