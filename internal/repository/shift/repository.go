package shift

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bahadricoz/shift/internal/dto"
	"github.com/bahadricoz/shift/internal/schedule"
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

const segmentColumns = `
select id,
       department_id,
       team_member_id,
       to_char(date, 'YYYY-MM-DD'),
       work_type,
       food_payment,
       to_char(shift_start, 'YYYY-MM-DD HH24:MI'),
       to_char(shift_end, 'YYYY-MM-DD HH24:MI'),
       to_char(overtime_start, 'YYYY-MM-DD HH24:MI'),
       to_char(overtime_end, 'YYYY-MM-DD HH24:MI'),
       to_char(created_at, 'YYYY-MM-DD"T"HH24:MI:SSOF'),
       to_char(updated_at, 'YYYY-MM-DD"T"HH24:MI:SSOF')
`

// Create inserts a segment after re-checking overlap inside one
// transaction. The member's existing rows for the date are locked with
// FOR UPDATE, so two admins saving at once cannot both pass the check.
// seg.DepartmentID carries the caller's scope and is verified against the
// member's department.
func (r *Repository) Create(ctx context.Context, seg dto.ShiftSegment) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("pool.Begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := r.checkScope(ctx, tx, seg.TeamMemberID, seg.DepartmentID); err != nil {
		return 0, err
	}
	if err := r.guardOverlap(ctx, tx, seg, 0); err != nil {
		return 0, err
	}

	query := `
insert into shifts
  (department_id, team_member_id, date, work_type, food_payment,
   shift_start, shift_end, overtime_start, overtime_end, created_at, updated_at)
values
  (@department_id, @team_member_id, @date::date, @work_type, @food_payment,
   nullif(@shift_start, '')::timestamp, nullif(@shift_end, '')::timestamp,
   nullif(@overtime_start, '')::timestamp, nullif(@overtime_end, '')::timestamp, now(), now())
returning id;
`
	var id int64
	if err := tx.QueryRow(ctx, query, r.args(seg)).Scan(&id); err != nil {
		return 0, fmt.Errorf("row.Scan: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("tx.Commit: %w", err)
	}

	return id, nil
}

// Update rewrites a segment, re-running the overlap check with the segment
// itself excluded so an edit cannot conflict with its own previous times.
func (r *Repository) Update(ctx context.Context, seg dto.ShiftSegment) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pool.Begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var currentDept int64
	err = tx.QueryRow(ctx, `select department_id from shifts where id = $1 for update;`, seg.ID).Scan(&currentDept)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dto.ErrNotFound
		}
		return fmt.Errorf("row.Scan: %w", err)
	}
	if currentDept != seg.DepartmentID {
		return dto.ErrForbidden
	}

	if err := r.checkScope(ctx, tx, seg.TeamMemberID, seg.DepartmentID); err != nil {
		return err
	}
	if err := r.guardOverlap(ctx, tx, seg, seg.ID); err != nil {
		return err
	}

	query := `
update shifts set
  team_member_id = @team_member_id,
  date           = @date::date,
  work_type      = @work_type,
  food_payment   = @food_payment,
  shift_start    = nullif(@shift_start, '')::timestamp,
  shift_end      = nullif(@shift_end, '')::timestamp,
  overtime_start = nullif(@overtime_start, '')::timestamp,
  overtime_end   = nullif(@overtime_end, '')::timestamp,
  updated_at     = now()
where id = @id;
`
	args := r.args(seg)
	args["id"] = seg.ID

	if _, err := tx.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("tx.Exec: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("tx.Commit: %w", err)
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, id, departmentID int64) error {
	query := `delete from shifts where id = $1 and department_id = $2;`

	tag, err := r.pool.Exec(ctx, query, id, departmentID)
	if err != nil {
		return fmt.Errorf("pool.Exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dto.ErrNotFound
	}

	return nil
}

// DeleteForMemberAndDate clears a grid cell. Returns the number of rows
// removed.
func (r *Repository) DeleteForMemberAndDate(ctx context.Context, memberID, departmentID int64, date string) (int64, error) {
	query := `
delete from shifts
where team_member_id = $1 and department_id = $2 and date = $3::date;
`
	tag, err := r.pool.Exec(ctx, query, memberID, departmentID, date)
	if err != nil {
		return 0, fmt.Errorf("pool.Exec: %w", err)
	}

	return tag.RowsAffected(), nil
}

// DeleteRange removes a member's segments over [from, to], optionally
// narrowed to one work type.
func (r *Repository) DeleteRange(ctx context.Context, memberID, departmentID int64, from, to string, workType *string) (int64, error) {
	query := `
delete from shifts
where team_member_id = @team_member_id
  and department_id = @department_id
  and date between @from::date and @to::date
  and (@work_type = '' or work_type = @work_type);
`
	args := pgx.NamedArgs{
		"team_member_id": memberID,
		"department_id":  departmentID,
		"from":           from,
		"to":             to,
		"work_type":      strval(workType),
	}

	tag, err := r.pool.Exec(ctx, query, args)
	if err != nil {
		return 0, fmt.Errorf("pool.Exec: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ListForMemberAndDate returns a member's segments for one date, timed
// segments first.
func (r *Repository) ListForMemberAndDate(ctx context.Context, memberID int64, date string) ([]dto.ShiftSegment, error) {
	query := segmentColumns + `
from shifts
where team_member_id = $1 and date = $2::date
order by shift_start asc nulls last, id;
`
	rows, err := r.pool.Query(ctx, query, memberID, date)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	return scanSegments(rows)
}

// ListForDepartmentAndRange returns joined grid/export rows for a
// department over [from, to].
func (r *Repository) ListForDepartmentAndRange(ctx context.Context, departmentID int64, from, to string) ([]dto.ScheduleEntry, error) {
	query := `
select s.id,
       s.department_id,
       to_char(s.date, 'YYYY-MM-DD'),
       m.external_member_id,
       m.display_name,
       s.work_type,
       s.food_payment,
       to_char(s.shift_start, 'YYYY-MM-DD HH24:MI'),
       to_char(s.shift_end, 'YYYY-MM-DD HH24:MI'),
       to_char(s.overtime_start, 'YYYY-MM-DD HH24:MI'),
       to_char(s.overtime_end, 'YYYY-MM-DD HH24:MI')
from shifts s
join team_members m on m.id = s.team_member_id
where s.department_id = $1
  and s.date between $2::date and $3::date
order by s.date, m.display_name, s.shift_start asc nulls last;
`
	rows, err := r.pool.Query(ctx, query, departmentID, from, to)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	var out []dto.ScheduleEntry
	for rows.Next() {
		var e dto.ScheduleEntry
		var date *string
		err := rows.Scan(
			&e.ID,
			&e.DepartmentID,
			&date,
			&e.ExternalID,
			&e.MemberName,
			&e.WorkType,
			&e.FoodPayment,
			&e.ShiftStart,
			&e.ShiftEnd,
			&e.OvertimeStart,
			&e.OvertimeEnd,
		)
		if err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}
		e.Date = strval(date)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return out, nil
}

// ListDistinctWorkTypes returns the work types in use for a department
// (known and custom alike), for filter dropdowns.
func (r *Repository) ListDistinctWorkTypes(ctx context.Context, departmentID int64) ([]string, error) {
	query := `
select distinct work_type
from shifts
where department_id = $1
order by work_type;
`
	rows, err := r.pool.Query(ctx, query, departmentID)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var wt string
		if err := rows.Scan(&wt); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}
		if wt != "" {
			out = append(out, wt)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return out, nil
}

// checkScope verifies the member exists and belongs to the caller's
// department. ErrNotFound vs ErrForbidden lets handlers tell a bad id from
// a cross-department write.
func (r *Repository) checkScope(ctx context.Context, tx pgx.Tx, memberID, departmentID int64) error {
	var memberDept int64
	err := tx.QueryRow(ctx, `select department_id from team_members where id = $1;`, memberID).Scan(&memberDept)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dto.ErrNotFound
		}
		return fmt.Errorf("row.Scan: %w", err)
	}
	if memberDept != departmentID {
		return dto.ErrForbidden
	}

	return nil
}

// guardOverlap locks the member's rows for the date and runs the interval
// check against them. Lock + check + write share the transaction, closing
// the check-then-insert race between concurrent admins.
func (r *Repository) guardOverlap(ctx context.Context, tx pgx.Tx, seg dto.ShiftSegment, excludeID int64) error {
	query := segmentColumns + `
from shifts
where team_member_id = $1 and date = $2::date
for update;
`
	rows, err := tx.Query(ctx, query, seg.TeamMemberID, seg.Date)
	if err != nil {
		return fmt.Errorf("tx.Query: %w", err)
	}
	defer rows.Close()

	existing, err := scanSegments(rows)
	if err != nil {
		return err
	}

	res := schedule.CheckOverlap(existing, seg.ShiftStart, seg.ShiftEnd, excludeID)
	if !res.Valid {
		return dto.ErrShiftOverlap
	}

	return nil
}

func (r *Repository) args(seg dto.ShiftSegment) pgx.NamedArgs {
	return pgx.NamedArgs{
		"department_id":  seg.DepartmentID,
		"team_member_id": seg.TeamMemberID,
		"date":           seg.Date,
		"work_type":      seg.WorkType,
		"food_payment":   seg.FoodPayment,
		"shift_start":    strval(seg.ShiftStart),
		"shift_end":      strval(seg.ShiftEnd),
		"overtime_start": strval(seg.OvertimeStart),
		"overtime_end":   strval(seg.OvertimeEnd),
	}
}

func scanSegments(rows pgx.Rows) ([]dto.ShiftSegment, error) {
	var out []dto.ShiftSegment
	for rows.Next() {
		var (
			seg  dto.ShiftSegment
			date *string
		)
		err := rows.Scan(
			&seg.ID,
			&seg.DepartmentID,
			&seg.TeamMemberID,
			&date,
			&seg.WorkType,
			&seg.FoodPayment,
			&seg.ShiftStart,
			&seg.ShiftEnd,
			&seg.OvertimeStart,
			&seg.OvertimeEnd,
			&seg.CreatedAt,
			&seg.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}
		seg.Date = strval(date)
		out = append(out, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return out, nil
}

func strval(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
