package member

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

func (r *Repository) Create(ctx context.Context, m dto.TeamMember) (int64, error) {
	query := `
insert into team_members (department_id, external_member_id, display_name)
values (@department_id, @external_member_id, @display_name)
returning id;
`
	args := pgx.NamedArgs{
		"department_id":      m.DepartmentID,
		"external_member_id": m.ExternalID,
		"display_name":       m.DisplayName,
	}

	var id int64
	err := r.pool.QueryRow(ctx, query, args).Scan(&id)
	if err != nil {
		var pgerr *pgconn.PgError
		if errors.As(err, &pgerr) && pgerr.Code == "23505" {
			return 0, dto.ErrAlreadyExists
		}

		return 0, fmt.Errorf("row.Scan: %w", err)
	}

	return id, nil
}

func (r *Repository) Update(ctx context.Context, m dto.TeamMember) error {
	query := `
update team_members set
  external_member_id = @external_member_id,
  display_name       = @display_name
where id = @id and department_id = @department_id;
`
	args := pgx.NamedArgs{
		"id":                 m.ID,
		"department_id":      m.DepartmentID,
		"external_member_id": m.ExternalID,
		"display_name":       m.DisplayName,
	}

	tag, err := r.pool.Exec(ctx, query, args)
	if err != nil {
		var pgerr *pgconn.PgError
		if errors.As(err, &pgerr) && pgerr.Code == "23505" {
			return dto.ErrAlreadyExists
		}

		return fmt.Errorf("pool.Exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dto.ErrNotFound
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, id, departmentID int64) error {
	query := `delete from team_members where id = $1 and department_id = $2;`

	tag, err := r.pool.Exec(ctx, query, id, departmentID)
	if err != nil {
		return fmt.Errorf("pool.Exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dto.ErrNotFound
	}

	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*dto.TeamMember, error) {
	query := `
select m.id, m.department_id, m.external_member_id, m.display_name, d.name
from team_members m
join departments d on d.id = m.department_id
where m.id = $1;
`
	var out dto.TeamMember
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&out.ID,
		&out.DepartmentID,
		&out.ExternalID,
		&out.DisplayName,
		&out.DepartmentName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dto.ErrNotFound
		}

		return nil, fmt.Errorf("row.Scan: %w", err)
	}

	return &out, nil
}

func (r *Repository) ListByDepartment(ctx context.Context, departmentID int64) ([]dto.TeamMember, error) {
	query := `
select m.id, m.department_id, m.external_member_id, m.display_name, d.name
from team_members m
join departments d on d.id = m.department_id
where m.department_id = $1
order by m.display_name;
`
	rows, err := r.pool.Query(ctx, query, departmentID)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	var out []dto.TeamMember
	for rows.Next() {
		var m dto.TeamMember
		err := rows.Scan(&m.ID, &m.DepartmentID, &m.ExternalID, &m.DisplayName, &m.DepartmentName)
		if err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return out, nil
}
