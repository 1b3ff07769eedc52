package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TaskHive-441/go-task-backend/internal/notifications"
	"github.com/TaskHive-441/go-task-backend/internal/projects/domain"
)

type fakeStore struct {
	projects map[int64]*domain.Project
	nextID   int64
	saveErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{projects: make(map[int64]*domain.Project), nextID: 1}
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*domain.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	cp.MemberIDs = append([]int64(nil), p.MemberIDs...)
	return &cp, nil
}

func (f *fakeStore) Save(_ context.Context, p *domain.Project) (*domain.Project, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	if p.ID == 0 {
		p.ID = f.nextID
		f.nextID++
	}
	cp := *p
	cp.MemberIDs = append([]int64(nil), p.MemberIDs...)
	f.projects[cp.ID] = &cp
	return p, nil
}

func (f *fakeStore) Delete(_ context.Context, p *domain.Project) error {
	delete(f.projects, p.ID)
	return nil
}

func (f *fakeStore) FindByMember(_ context.Context, userID int64) ([]domain.Project, error) {
	var out []domain.Project
	for _, p := range f.projects {
		if p.HasMember(userID) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeStore) FindDueTodayNotCompleted(_ context.Context, _ time.Time) ([]domain.Project, error) {
	return nil, nil
}

type fakeDirectory struct {
	ids map[int64]struct{}
	err error
}

func newFakeDirectory(ids ...int64) *fakeDirectory {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return &fakeDirectory{ids: set}
}

func (f *fakeDirectory) AllIDs(_ context.Context) (map[int64]struct{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ids, nil
}

type fakeSink struct {
	sent    []notifications.Payload
	sendErr error
}

func (f *fakeSink) Send(_ context.Context, p notifications.Payload) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, p)
	return nil
}

func (f *fakeSink) sentTo(kind notifications.Kind) []int64 {
	var out []int64
	for _, p := range f.sent {
		if p.Kind == kind {
			out = append(out, p.UserID)
		}
	}
	return out
}

func setup(directoryIDs ...int64) (*ProjectService, *fakeStore, *fakeSink) {
	store := newFakeStore()
	sink := &fakeSink{}
	svc := NewProjectService(store, newFakeDirectory(directoryIDs...), sink)
	return svc, store, sink
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func seedProject(store *fakeStore, members ...int64) *domain.Project {
	p := &domain.Project{
		Name:      "Apollo",
		Status:    domain.StatusInitiated,
		StartDate: day("2026-01-01"),
		EndDate:   day("2026-06-30"),
		MemberIDs: members,
	}
	saved, _ := store.Save(context.Background(), p)
	return saved
}

func TestCreateIncludesActorAndNotifiesEveryMember(t *testing.T) {
	svc, store, sink := setup(1, 2, 3)

	p, err := svc.Create(context.Background(), 1, CreateProject{
		Name:      "Apollo",
		StartDate: day("2026-01-01"),
		EndDate:   day("2026-06-30"),
		MemberIDs: []int64{2, 3},
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2, 3}, p.MemberIDs)
	assert.Equal(t, domain.StatusInitiated, p.Status)

	stored, err := store.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, stored.MemberIDs)

	// Every final member is notified, the creator included.
	assert.ElementsMatch(t, []int64{1, 2, 3}, sink.sentTo(notifications.KindMemberAdded))
	assert.Len(t, sink.sent, 3)
}

func TestCreateActorAlreadyListed(t *testing.T) {
	svc, _, sink := setup(1, 2)

	p, err := svc.Create(context.Background(), 1, CreateProject{
		Name:      "Apollo",
		MemberIDs: []int64{1, 2},
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2}, p.MemberIDs)
	assert.Len(t, sink.sent, 2)
}

func TestCreateWithUnknownMemberFails(t *testing.T) {
	svc, store, sink := setup(1, 2)

	_, err := svc.Create(context.Background(), 1, CreateProject{
		Name:      "Apollo",
		MemberIDs: []int64{2, 99},
	})

	var invalid *domain.InvalidMembersError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []int64{99}, invalid.IDs)

	// No partial creation, no notifications.
	assert.Empty(t, store.projects)
	assert.Empty(t, sink.sent)
}

func TestGetByIDAppliesGate(t *testing.T) {
	svc, store, _ := setup(1, 2, 5)
	p := seedProject(store, 1, 2)

	got, err := svc.GetByID(context.Background(), 2, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, []int64{1, 2}, got.MemberIDs)

	_, err = svc.GetByID(context.Background(), 5, p.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGetByIDNotFound(t *testing.T) {
	svc, _, _ := setup(1)

	_, err := svc.GetByID(context.Background(), 1, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetByUser(t *testing.T) {
	svc, store, _ := setup(1, 2)
	seedProject(store, 1, 2)
	seedProject(store, 2)

	mine, err := svc.GetByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestUpdateByIDStatusValidation(t *testing.T) {
	svc, store, sink := setup(1)
	p := seedProject(store, 1)

	in := UpdateProject{
		Name:      "Apollo v2",
		StartDate: day("2026-01-01"),
		EndDate:   day("2026-07-31"),
	}

	in.Status = "Completed"
	_, err := svc.UpdateByID(context.Background(), 1, p.ID, in)
	var badStatus *domain.InvalidStatusError
	require.ErrorAs(t, err, &badStatus)
	assert.Equal(t, "Completed", badStatus.Value)

	in.Status = "COMPLETED"
	updated, err := svc.UpdateByID(context.Background(), 1, p.ID, in)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.Status)
	assert.Equal(t, "Apollo v2", updated.Name)

	// Field and status edits emit no notifications.
	assert.Empty(t, sink.sent)
}

func TestUpdateByIDAllowsAnyTransition(t *testing.T) {
	svc, store, _ := setup(1)
	p := seedProject(store, 1)
	p.Status = domain.StatusCompleted
	_, err := store.Save(context.Background(), p)
	require.NoError(t, err)

	updated, err := svc.UpdateByID(context.Background(), 1, p.ID, UpdateProject{
		Name:   p.Name,
		Status: "INITIATED",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInitiated, updated.Status)
}

func TestDeleteByID(t *testing.T) {
	svc, store, _ := setup(1, 5)
	p := seedProject(store, 1)

	err := svc.DeleteByID(context.Background(), 5, p.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, svc.DeleteByID(context.Background(), 1, p.ID))
	_, err = store.GetByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddMembersComputesDelta(t *testing.T) {
	svc, store, sink := setup(1, 2, 3, 4)
	p := seedProject(store, 1, 2)

	updated, err := svc.AddMembers(context.Background(), 1, p.ID, []int64{2, 3, 4})
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2, 3, 4}, updated.MemberIDs)
	// Only the actually-added members are notified.
	assert.ElementsMatch(t, []int64{3, 4}, sink.sentTo(notifications.KindMemberAdded))
}

func TestAddMembersNoOpIsIdempotent(t *testing.T) {
	svc, store, sink := setup(1, 2)
	p := seedProject(store, 1, 2)

	updated, err := svc.AddMembers(context.Background(), 1, p.ID, []int64{1, 2})
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2}, updated.MemberIDs)
	assert.Empty(t, sink.sent)
}

func TestAddMembersUnknownIDAbortsWholeOperation(t *testing.T) {
	svc, store, sink := setup(1, 2, 3)
	p := seedProject(store, 1)

	_, err := svc.AddMembers(context.Background(), 1, p.ID, []int64{2, 77})
	var invalid *domain.InvalidMembersError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []int64{77}, invalid.IDs)

	stored, _ := store.GetByID(context.Background(), p.ID)
	assert.Equal(t, []int64{1}, stored.MemberIDs)
	assert.Empty(t, sink.sent)
}

func TestDeleteMembersActorIsExempt(t *testing.T) {
	svc, store, sink := setup(1, 2, 3)
	p := seedProject(store, 1, 2, 3)

	updated, err := svc.DeleteMembers(context.Background(), 1, p.ID, []int64{1, 2, 3})
	require.NoError(t, err)

	// Every other valid candidate is removed, never the actor.
	assert.Equal(t, []int64{1}, updated.MemberIDs)
	assert.ElementsMatch(t, []int64{2, 3}, sink.sentTo(notifications.KindMemberRemoved))
}

func TestDeleteMembersAbsentCandidatesAreDropped(t *testing.T) {
	svc, store, sink := setup(1, 2, 3)
	p := seedProject(store, 1, 2)

	updated, err := svc.DeleteMembers(context.Background(), 1, p.ID, []int64{3})
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2}, updated.MemberIDs)
	assert.Empty(t, sink.sent)
}

func TestNotifySinkFailureDoesNotAbortBatch(t *testing.T) {
	store := newFakeStore()
	sink := &fakeSink{sendErr: errors.New("broker down")}
	svc := NewProjectService(store, newFakeDirectory(1, 2, 3), sink)

	p, err := svc.Create(context.Background(), 1, CreateProject{
		Name:      "Apollo",
		MemberIDs: []int64{2, 3},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, p.MemberIDs)

	stored, err := store.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, stored.MemberIDs)
}

func TestDirectoryFailurePropagates(t *testing.T) {
	store := newFakeStore()
	dir := newFakeDirectory()
	dir.err = errors.New("directory unavailable")
	svc := NewProjectService(store, dir, &fakeSink{})

	_, err := svc.Create(context.Background(), 1, CreateProject{Name: "Apollo", MemberIDs: []int64{2}})
	assert.ErrorContains(t, err, "directory unavailable")
	assert.Empty(t, store.projects)
}
