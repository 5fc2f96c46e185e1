package department

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

func (r *Repository) Create(ctx context.Context, name string) (int64, error) {
	query := `insert into departments (name) values ($1) returning id;`

	var id int64
	err := r.pool.QueryRow(ctx, query, name).Scan(&id)
	if err != nil {
		var pgerr *pgconn.PgError
		if errors.As(err, &pgerr) && pgerr.Code == "23505" {
			return 0, dto.ErrAlreadyExists
		}

		return 0, fmt.Errorf("row.Scan: %w", err)
	}

	return id, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*dto.Department, error) {
	query := `select id, name from departments where id = $1;`

	var out dto.Department
	err := r.pool.QueryRow(ctx, query, id).Scan(&out.ID, &out.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dto.ErrNotFound
		}

		return nil, fmt.Errorf("row.Scan: %w", err)
	}

	return &out, nil
}

func (r *Repository) GetByName(ctx context.Context, name string) (*dto.Department, error) {
	query := `select id, name from departments where name = $1;`

	var out dto.Department
	err := r.pool.QueryRow(ctx, query, name).Scan(&out.ID, &out.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dto.ErrNotFound
		}

		return nil, fmt.Errorf("row.Scan: %w", err)
	}

	return &out, nil
}

func (r *Repository) List(ctx context.Context) ([]dto.Department, error) {
	query := `select id, name from departments order by name;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	var out []dto.Department
	for rows.Next() {
		var d dto.Department
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return out, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	query := `delete from departments where id = $1;`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("pool.Exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dto.ErrNotFound
	}

	return nil
}
