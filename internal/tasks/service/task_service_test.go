package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	projectdomain "github.com/TaskHive-441/go-task-backend/internal/projects/domain"
	"github.com/TaskHive-441/go-task-backend/internal/tasks/domain"
)

type fakeGate struct {
	projects map[int64]*projectdomain.Project
}

func (f *fakeGate) GetProjectByID(_ context.Context, actorID, projectID int64) (*projectdomain.Project, error) {
	p, ok := f.projects[projectID]
	if !ok {
		return nil, projectdomain.ErrNotFound
	}
	if !p.HasMember(actorID) {
		return nil, projectdomain.ErrForbidden
	}
	return p, nil
}

type fakeTaskStore struct {
	tasks    map[int64]*domain.Task
	comments map[int64][]domain.Comment
	nextID   int64
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{
		tasks:    make(map[int64]*domain.Task),
		comments: make(map[int64][]domain.Comment),
		nextID:   1,
	}
}

func (f *fakeTaskStore) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	t.ID = f.nextID
	f.nextID++
	cp := *t
	f.tasks[cp.ID] = &cp
	return t, nil
}

func (f *fakeTaskStore) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTaskStore) ListByProject(_ context.Context, projectID int64) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range f.tasks {
		if t.ProjectID == projectID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTaskStore) Update(_ context.Context, t *domain.Task) (*domain.Task, error) {
	if _, ok := f.tasks[t.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	f.tasks[cp.ID] = &cp
	return t, nil
}

func (f *fakeTaskStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.tasks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskStore) AddComment(_ context.Context, c *domain.Comment) (*domain.Comment, error) {
	c.ID = f.nextID
	f.nextID++
	c.Timestamp = time.Now()
	f.comments[c.TaskID] = append(f.comments[c.TaskID], *c)
	return c, nil
}

func (f *fakeTaskStore) ListComments(_ context.Context, taskID int64) ([]domain.Comment, error) {
	return f.comments[taskID], nil
}

func setupTasks() (*TaskService, *fakeTaskStore) {
	gate := &fakeGate{projects: map[int64]*projectdomain.Project{
		1: {ID: 1, Name: "Apollo", MemberIDs: []int64{1, 2}},
	}}
	store := newFakeTaskStore()
	return NewTaskService(store, gate), store
}

func TestCreateTask(t *testing.T) {
	svc, _ := setupTasks()

	task, err := svc.Create(context.Background(), 1, 1, CreateTask{
		Name:       "Write launch checklist",
		Priority:   "HIGH",
		DueDate:    time.Now().AddDate(0, 0, 7),
		AssigneeID: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNotStarted, task.Status)
	assert.Equal(t, domain.PriorityHigh, task.Priority)
}

func TestCreateTaskGateApplies(t *testing.T) {
	svc, _ := setupTasks()

	_, err := svc.Create(context.Background(), 9, 1, CreateTask{
		Name: "x", Priority: "LOW", AssigneeID: 1,
	})
	assert.ErrorIs(t, err, projectdomain.ErrForbidden)
}

func TestCreateTaskValidatesPriorityAndAssignee(t *testing.T) {
	svc, _ := setupTasks()
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, 1, CreateTask{Name: "x", Priority: "High", AssigneeID: 2})
	var badPriority *domain.InvalidPriorityError
	require.ErrorAs(t, err, &badPriority)
	assert.Equal(t, "High", badPriority.Value)

	_, err = svc.Create(ctx, 1, 1, CreateTask{Name: "x", Priority: "HIGH", AssigneeID: 42})
	assert.ErrorIs(t, err, domain.ErrAssigneeNotInProject)
}

func TestUpdateTaskValidatesStatus(t *testing.T) {
	svc, _ := setupTasks()
	ctx := context.Background()

	task, err := svc.Create(ctx, 1, 1, CreateTask{Name: "x", Priority: "LOW", AssigneeID: 1})
	require.NoError(t, err)

	in := UpdateTask{Name: "x", Priority: "LOW", Status: "Completed", AssigneeID: 1}
	_, err = svc.UpdateByID(ctx, 1, task.ID, in)
	var badStatus *domain.InvalidStatusError
	require.ErrorAs(t, err, &badStatus)

	in.Status = "COMPLETED"
	updated, err := svc.UpdateByID(ctx, 1, task.ID, in)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.Status)
}

func TestCommentsAreGated(t *testing.T) {
	svc, _ := setupTasks()
	ctx := context.Background()

	task, err := svc.Create(ctx, 1, 1, CreateTask{Name: "x", Priority: "LOW", AssigneeID: 1})
	require.NoError(t, err)

	_, err = svc.AddComment(ctx, 9, task.ID, "hi")
	assert.ErrorIs(t, err, projectdomain.ErrForbidden)

	c, err := svc.AddComment(ctx, 2, task.ID, "on it")
	require.NoError(t, err)
	assert.Equal(t, int64(2), c.UserID)

	list, err := svc.ListComments(ctx, 1, task.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
