package repository

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TaskHive-441/go-task-backend/internal/projects/domain"
)

// setupTestPostgres prepares a scratch schema for the repository tests.
// Skips when TEST_DB_DSN is not set.
func setupTestPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set, skipping PostgreSQL integration test")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	defer db.Close()

	schema := []string{
		`drop table if exists project_members;`,
		`drop table if exists projects;`,
		`create table projects (
			id bigserial primary key,
			name text not null,
			description text not null default '',
			start_date date not null,
			end_date date not null,
			status text not null,
			created_at timestamptz not null default now(),
			updated_at timestamptz not null default now()
		);`,
		`create table project_members (
			project_id bigint not null references projects(id) on delete cascade,
			user_id bigint not null,
			primary key (project_id, user_id)
		);`,
	}
	for _, stmt := range schema {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func testProject(endDate string) *domain.Project {
	end, _ := time.Parse("2006-01-02", endDate)
	return &domain.Project{
		Name:        "Apollo",
		Description: "launch prep",
		StartDate:   end.AddDate(0, -3, 0),
		EndDate:     end,
		Status:      domain.StatusInitiated,
		MemberIDs:   []int64{1, 2, 3},
	}
}

func TestRepoSaveAndGetByID(t *testing.T) {
	pool := setupTestPostgres(t)
	repo := NewRepo(pool)
	ctx := context.Background()

	saved, err := repo.Save(ctx, testProject("2026-06-30"))
	require.NoError(t, err)
	require.NotZero(t, saved.ID)

	got, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Apollo", got.Name)
	assert.Equal(t, domain.StatusInitiated, got.Status)
	assert.Equal(t, []int64{1, 2, 3}, got.MemberIDs)
}

func TestRepoGetByIDNotFound(t *testing.T) {
	pool := setupTestPostgres(t)
	repo := NewRepo(pool)

	_, err := repo.GetByID(context.Background(), 424242)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepoSaveReplacesMemberSet(t *testing.T) {
	pool := setupTestPostgres(t)
	repo := NewRepo(pool)
	ctx := context.Background()

	saved, err := repo.Save(ctx, testProject("2026-06-30"))
	require.NoError(t, err)

	saved.MemberIDs = []int64{2, 4}
	_, err = repo.Save(ctx, saved)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 4}, got.MemberIDs)
}

func TestRepoFindByMember(t *testing.T) {
	pool := setupTestPostgres(t)
	repo := NewRepo(pool)
	ctx := context.Background()

	first, err := repo.Save(ctx, testProject("2026-06-30"))
	require.NoError(t, err)

	second := testProject("2026-07-31")
	second.MemberIDs = []int64{3, 4}
	_, err = repo.Save(ctx, second)
	require.NoError(t, err)

	mine, err := repo.FindByMember(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)

	both, err := repo.FindByMember(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, both, 2)
}

func TestRepoFindDueTodayNotCompleted(t *testing.T) {
	pool := setupTestPostgres(t)
	repo := NewRepo(pool)
	ctx := context.Background()

	today := "2026-08-30"

	due, err := repo.Save(ctx, testProject(today))
	require.NoError(t, err)

	completed := testProject(today)
	completed.Status = domain.StatusCompleted
	_, err = repo.Save(ctx, completed)
	require.NoError(t, err)

	_, err = repo.Save(ctx, testProject("2026-09-01"))
	require.NoError(t, err)

	day, _ := time.Parse("2006-01-02", today)
	matches, err := repo.FindDueTodayNotCompleted(ctx, day)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, due.ID, matches[0].ID)
	assert.Equal(t, []int64{1, 2, 3}, matches[0].MemberIDs)
}

func TestRepoDelete(t *testing.T) {
	pool := setupTestPostgres(t)
	repo := NewRepo(pool)
	ctx := context.Background()

	saved, err := repo.Save(ctx, testProject("2026-06-30"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, saved))
	_, err = repo.GetByID(ctx, saved.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, saved), domain.ErrNotFound)
}
