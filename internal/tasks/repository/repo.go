package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TaskHive-441/go-task-backend/internal/tasks/domain"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const taskColumns = `id, project_id, name, description, priority, status, due_date, assignee_id, created_at, updated_at`

func (r *Repo) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	q := fmt.Sprintf(`
insert into tasks (project_id, name, description, priority, status, due_date, assignee_id)
values ($1, $2, $3, $4, $5, $6, $7)
returning %s;
`, taskColumns)

	task, err := scanTask(r.db.QueryRow(ctx, q,
		t.ProjectID, t.Name, t.Description, t.Priority, t.Status, t.DueDate, t.AssigneeID))
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	q := fmt.Sprintf(`select %s from tasks where id = $1;`, taskColumns)
	t, err := scanTask(r.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return t, err
}

func (r *Repo) ListByProject(ctx context.Context, projectID int64) ([]domain.Task, error) {
	q := fmt.Sprintf(`select %s from tasks where project_id = $1 order by due_date, id;`, taskColumns)
	rows, err := r.db.Query(ctx, q, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks for project %d: %w", projectID, err)
	}
	defer rows.Close()

	out := make([]domain.Task, 0, 16)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (r *Repo) Update(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	q := fmt.Sprintf(`
update tasks
set name = $2, description = $3, priority = $4, status = $5, due_date = $6, assignee_id = $7, updated_at = now()
where id = $1
returning %s;
`, taskColumns)

	task, err := scanTask(r.db.QueryRow(ctx, q,
		t.ID, t.Name, t.Description, t.Priority, t.Status, t.DueDate, t.AssigneeID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update task %d: %w", t.ID, err)
	}
	return task, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	ct, err := r.db.Exec(ctx, `delete from tasks where id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repo) AddComment(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	const q = `
insert into comments (task_id, user_id, text)
values ($1, $2, $3)
returning id, task_id, user_id, text, created_at;
`
	var out domain.Comment
	err := r.db.QueryRow(ctx, q, c.TaskID, c.UserID, c.Text).
		Scan(&out.ID, &out.TaskID, &out.UserID, &out.Text, &out.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return &out, nil
}

func (r *Repo) ListComments(ctx context.Context, taskID int64) ([]domain.Comment, error) {
	const q = `
select id, task_id, user_id, text, created_at
from comments
where task_id = $1
order by created_at, id;
`
	rows, err := r.db.Query(ctx, q, taskID)
	if err != nil {
		return nil, fmt.Errorf("list comments for task %d: %w", taskID, err)
	}
	defer rows.Close()

	out := make([]domain.Comment, 0, 8)
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.TaskID, &c.UserID, &c.Text, &c.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.ID, &t.ProjectID, &t.Name, &t.Description, &t.Priority, &t.Status,
		&t.DueDate, &t.AssigneeID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
