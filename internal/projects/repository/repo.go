package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TaskHive-441/go-task-backend/internal/projects/domain"
)

// Repo persists projects and their member sets in Postgres. It is the sole
// persistence owner of projects; the service holds a transient reference
// during an operation only.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const projectColumns = `
p.id, p.name, p.description, p.start_date, p.end_date, p.status, p.created_at, p.updated_at,
coalesce(array_agg(pm.user_id order by pm.user_id) filter (where pm.user_id is not null), '{}') as member_ids
`

// GetByID loads a project together with its member set.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	q := fmt.Sprintf(`
select %s
from projects p
left join project_members pm on pm.project_id = p.id
where p.id = $1
group by p.id;
`, projectColumns)

	p, err := scanProject(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get project %d: %w", id, err)
	}
	return p, nil
}

// Save inserts or updates the project row and replaces its membership rows
// in one transaction.
func (r *Repo) Save(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("save project: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if p.ID == 0 {
		const q = `
insert into projects (name, description, start_date, end_date, status)
values ($1, $2, $3, $4, $5)
returning id, created_at, updated_at;
`
		err = tx.QueryRow(ctx, q, p.Name, p.Description, p.StartDate, p.EndDate, p.Status).
			Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	} else {
		const q = `
update projects
set name = $2, description = $3, start_date = $4, end_date = $5, status = $6, updated_at = now()
where id = $1
returning created_at, updated_at;
`
		err = tx.QueryRow(ctx, q, p.ID, p.Name, p.Description, p.StartDate, p.EndDate, p.Status).
			Scan(&p.CreatedAt, &p.UpdatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
	}
	if err != nil {
		return nil, fmt.Errorf("save project: %w", err)
	}

	if _, err := tx.Exec(ctx, `delete from project_members where project_id = $1;`, p.ID); err != nil {
		return nil, fmt.Errorf("save project: clear members: %w", err)
	}
	if len(p.MemberIDs) > 0 {
		const q = `
insert into project_members (project_id, user_id)
select $1, unnest($2::bigint[]);
`
		if _, err := tx.Exec(ctx, q, p.ID, p.MemberIDs); err != nil {
			return nil, fmt.Errorf("save project: insert members: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("save project: commit: %w", err)
	}
	return p, nil
}

// Delete removes the project; membership rows go with it via FK cascade.
func (r *Repo) Delete(ctx context.Context, p *domain.Project) error {
	ct, err := r.db.Exec(ctx, `delete from projects where id = $1;`, p.ID)
	if err != nil {
		return fmt.Errorf("delete project %d: %w", p.ID, err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindByMember returns every project whose member set contains the user.
func (r *Repo) FindByMember(ctx context.Context, userID int64) ([]domain.Project, error) {
	q := fmt.Sprintf(`
select %s
from projects p
left join project_members pm on pm.project_id = p.id
where p.id in (select project_id from project_members where user_id = $1)
group by p.id
order by p.created_at desc;
`, projectColumns)

	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("find projects by member %d: %w", userID, err)
	}
	defer rows.Close()

	return collectProjects(rows)
}

// FindDueTodayNotCompleted returns projects whose end date equals the given
// day and whose status is not COMPLETED.
func (r *Repo) FindDueTodayNotCompleted(ctx context.Context, day time.Time) ([]domain.Project, error) {
	q := fmt.Sprintf(`
select %s
from projects p
left join project_members pm on pm.project_id = p.id
where p.end_date = $1::date and p.status <> $2
group by p.id;
`, projectColumns)

	rows, err := r.db.Query(ctx, q, day, domain.StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("find due projects: %w", err)
	}
	defer rows.Close()

	return collectProjects(rows)
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.StartDate, &p.EndDate, &p.Status,
		&p.CreatedAt, &p.UpdatedAt, &p.MemberIDs,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProjects(rows pgx.Rows) ([]domain.Project, error) {
	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}
