package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TaskHive-441/go-task-backend/internal/users/domain"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type UpsertUser struct {
	AuthUID   string
	Email     string
	NickName  string
	FirstName string
	LastName  string
}

const userColumns = `id, auth_uid, coalesce(email, ''), nick_name, coalesce(first_name, ''), coalesce(last_name, ''), chat_id, created_at, updated_at`

// EnsureUser inserts or refreshes the local row for an authenticated
// identity and returns it.
func (r *Repo) EnsureUser(ctx context.Context, u UpsertUser) (*domain.User, error) {
	if u.AuthUID == "" {
		return nil, fmt.Errorf("auth_uid required")
	}

	q := fmt.Sprintf(`
insert into users (auth_uid, email, nick_name, first_name, last_name, updated_at)
values ($1, nullif($2,''), coalesce(nullif($3,''), $1), nullif($4,''), nullif($5,''), now())
on conflict (auth_uid) do update
set
  email = coalesce(excluded.email, users.email),
  nick_name = coalesce(nullif($3,''), users.nick_name),
  first_name = coalesce(excluded.first_name, users.first_name),
  last_name = coalesce(excluded.last_name, users.last_name),
  updated_at = now()
returning %s;
`, userColumns)

	return scanUser(r.db.QueryRow(ctx, q, u.AuthUID, u.Email, u.NickName, u.FirstName, u.LastName))
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	q := fmt.Sprintf(`select %s from users where id = $1;`, userColumns)
	u, err := scanUser(r.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return u, err
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := fmt.Sprintf(`select %s from users where email = $1;`, userColumns)
	u, err := scanUser(r.db.QueryRow(ctx, q, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return u, err
}

// AllIDs returns the full valid-id set for membership validation.
func (r *Repo) AllIDs(ctx context.Context) (map[int64]struct{}, error) {
	rows, err := r.db.Query(ctx, `select id from users;`)
	if err != nil {
		return nil, fmt.Errorf("list user ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

// FindByIDs bulk-loads users by id set.
func (r *Repo) FindByIDs(ctx context.Context, ids []int64) ([]domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q := fmt.Sprintf(`select %s from users where id = any($1::bigint[]) order by id;`, userColumns)
	rows, err := r.db.Query(ctx, q, ids)
	if err != nil {
		return nil, fmt.Errorf("find users by ids: %w", err)
	}
	defer rows.Close()

	out := make([]domain.User, 0, len(ids))
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateProfile(ctx context.Context, id int64, nickName, firstName, lastName string) (*domain.User, error) {
	q := fmt.Sprintf(`
update users
set nick_name = $2, first_name = $3, last_name = $4, updated_at = now()
where id = $1
returning %s;
`, userColumns)

	u, err := scanUser(r.db.QueryRow(ctx, q, id, nickName, firstName, lastName))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return u, err
}

func (r *Repo) SetChatID(ctx context.Context, id, chatID int64) error {
	ct, err := r.db.Exec(ctx, `update users set chat_id = $2, updated_at = now() where id = $1;`, id, chatID)
	if err != nil {
		return fmt.Errorf("set chat id for user %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.AuthUID, &u.Email, &u.NickName, &u.FirstName, &u.LastName,
		&u.ChatID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
