package service

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/TaskHive-441/go-task-backend/internal/notifications"
	"github.com/TaskHive-441/go-task-backend/internal/projects/domain"
)

// ProjectStore is the persistence collaborator for projects.
type ProjectStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	Save(ctx context.Context, p *domain.Project) (*domain.Project, error)
	Delete(ctx context.Context, p *domain.Project) error
	FindByMember(ctx context.Context, userID int64) ([]domain.Project, error)
	FindDueTodayNotCompleted(ctx context.Context, day time.Time) ([]domain.Project, error)
}

// UserDirectory is the source of truth for valid user identities.
type UserDirectory interface {
	AllIDs(ctx context.Context) (map[int64]struct{}, error)
}

// ProjectService orchestrates project CRUD, membership changes and the
// notification fan-out on composition changes.
type ProjectService struct {
	store     ProjectStore
	directory UserDirectory
	composer  notifications.Composer
	sink      notifications.Sink
}

func NewProjectService(store ProjectStore, directory UserDirectory, sink notifications.Sink) *ProjectService {
	return &ProjectService{
		store:     store,
		directory: directory,
		composer:  notifications.NewComposer(),
		sink:      sink,
	}
}

// CreateProject carries the caller-supplied fields for a new project.
// Status is not part of the input: new projects always start INITIATED.
type CreateProject struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	MemberIDs   []int64
}

// UpdateProject overwrites all mutable project fields.
type UpdateProject struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Status      string
}

// Create validates the requested member ids, forces status INITIATED, adds
// the acting user to the member set and notifies every resulting member,
// the creator included.
func (s *ProjectService) Create(ctx context.Context, actorID int64, in CreateProject) (*domain.Project, error) {
	if err := s.checkUserIDs(ctx, in.MemberIDs); err != nil {
		return nil, err
	}

	members := make(map[int64]struct{}, len(in.MemberIDs)+1)
	for _, id := range in.MemberIDs {
		members[id] = struct{}{}
	}
	members[actorID] = struct{}{}

	project := &domain.Project{
		Name:        in.Name,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Status:      domain.StatusInitiated,
		MemberIDs:   sortedIDs(members),
	}

	saved, err := s.store.Save(ctx, project)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, notifications.KindMemberAdded, saved, saved.MemberIDs)
	log.Printf("Project created with id: %d", saved.ID)
	return saved, nil
}

// GetByUser returns every project the acting user is a member of. The query
// is inherently scoped, so no gate is applied.
func (s *ProjectService) GetByUser(ctx context.Context, actorID int64) ([]domain.Project, error) {
	return s.store.FindByMember(ctx, actorID)
}

// GetByID loads a project and applies the membership gate.
func (s *ProjectService) GetByID(ctx context.Context, actorID, projectID int64) (*domain.Project, error) {
	return s.getProjectByID(ctx, actorID, projectID)
}

// UpdateByID overwrites name, description and dates unconditionally and
// applies the requested status if it parses. Plain field edits emit no
// notifications.
func (s *ProjectService) UpdateByID(ctx context.Context, actorID, projectID int64, in UpdateProject) (*domain.Project, error) {
	project, err := s.getProjectByID(ctx, actorID, projectID)
	if err != nil {
		return nil, err
	}

	status, ok := domain.ParseStatus(in.Status)
	if !ok {
		log.Printf("Status %q doesn't exist", in.Status)
		return nil, &domain.InvalidStatusError{Value: in.Status}
	}

	project.Name = in.Name
	project.Description = in.Description
	project.StartDate = in.StartDate
	project.EndDate = in.EndDate
	project.Status = status

	saved, err := s.store.Save(ctx, project)
	if err != nil {
		return nil, err
	}
	log.Printf("Project updated with id: %d", projectID)
	return saved, nil
}

// DeleteByID applies the gate and deletes the project. No notification.
func (s *ProjectService) DeleteByID(ctx context.Context, actorID, projectID int64) error {
	project, err := s.getProjectByID(ctx, actorID, projectID)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, project)
}

// AddMembers validates the candidates against the directory, adds the ones
// not already present and notifies exactly the added members.
// Already-present candidates are silently dropped.
func (s *ProjectService) AddMembers(ctx context.Context, actorID, projectID int64, candidateIDs []int64) (*domain.Project, error) {
	log.Printf("Adding members to project with id: %d. Member IDs: %v", projectID, candidateIDs)

	project, err := s.getProjectByID(ctx, actorID, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.checkUserIDs(ctx, candidateIDs); err != nil {
		return nil, err
	}

	current := make(map[int64]struct{}, len(project.MemberIDs))
	for _, id := range project.MemberIDs {
		current[id] = struct{}{}
	}

	added := make(map[int64]struct{})
	for _, id := range candidateIDs {
		if _, ok := current[id]; !ok {
			added[id] = struct{}{}
		}
	}
	if len(added) == 0 {
		return project, nil
	}

	for id := range added {
		current[id] = struct{}{}
	}
	project.MemberIDs = sortedIDs(current)

	saved, err := s.store.Save(ctx, project)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, notifications.KindMemberAdded, saved, sortedIDs(added))
	log.Printf("Members added to project: %d. Updated member list: %v", projectID, saved.MemberIDs)
	return saved, nil
}

// DeleteMembers validates the candidates against the directory and removes
// the ones currently present, except the acting user: self-removal through
// this path is not permitted even when the actor is explicitly listed.
// Exactly the removed members are notified.
func (s *ProjectService) DeleteMembers(ctx context.Context, actorID, projectID int64, candidateIDs []int64) (*domain.Project, error) {
	log.Printf("Deleting members from project with id: %d. Member IDs: %v", projectID, candidateIDs)

	project, err := s.getProjectByID(ctx, actorID, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.checkUserIDs(ctx, candidateIDs); err != nil {
		return nil, err
	}

	current := make(map[int64]struct{}, len(project.MemberIDs))
	for _, id := range project.MemberIDs {
		current[id] = struct{}{}
	}

	removed := make(map[int64]struct{})
	for _, id := range candidateIDs {
		if id == actorID {
			continue
		}
		if _, ok := current[id]; ok {
			removed[id] = struct{}{}
		}
	}
	if len(removed) == 0 {
		return project, nil
	}

	for id := range removed {
		delete(current, id)
	}
	project.MemberIDs = sortedIDs(current)

	saved, err := s.store.Save(ctx, project)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, notifications.KindMemberRemoved, saved, sortedIDs(removed))
	log.Printf("Members removed from project: %d. Updated member list: %v", projectID, saved.MemberIDs)
	return saved, nil
}

// GetProjectByID is the gated load used by sibling services operating on
// project-scoped resources.
func (s *ProjectService) GetProjectByID(ctx context.Context, actorID, projectID int64) (*domain.Project, error) {
	return s.getProjectByID(ctx, actorID, projectID)
}

func (s *ProjectService) getProjectByID(ctx context.Context, actorID, projectID int64) (*domain.Project, error) {
	project, err := s.store.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.HasMember(actorID) {
		log.Printf("Access to project with id %d is forbidden", projectID)
		return nil, domain.ErrForbidden
	}
	return project, nil
}

// checkUserIDs returns an InvalidMembersError naming every requested id
// unknown to the directory. The whole operation aborts on any unknown id.
func (s *ProjectService) checkUserIDs(ctx context.Context, userIDs []int64) error {
	if len(userIDs) == 0 {
		return nil
	}

	allIDs, err := s.directory.AllIDs(ctx)
	if err != nil {
		return err
	}

	invalid := make([]int64, 0)
	seen := make(map[int64]struct{}, len(userIDs))
	for _, id := range userIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := allIDs[id]; !ok {
			invalid = append(invalid, id)
		}
	}
	if len(invalid) > 0 {
		sort.Slice(invalid, func(i, j int) bool { return invalid[i] < invalid[j] })
		log.Printf("Invalid user ids: %v", invalid)
		return &domain.InvalidMembersError{IDs: invalid}
	}
	return nil
}

// notify composes and sends one event per target. A failed send is logged
// and never aborts the remainder of the batch.
func (s *ProjectService) notify(ctx context.Context, kind notifications.Kind, p *domain.Project, userIDs []int64) {
	for _, userID := range userIDs {
		payload := s.composer.Compose(notifications.Event{
			Kind:        kind,
			ProjectID:   p.ID,
			ProjectName: p.Name,
			UserID:      userID,
		})
		if err := s.sink.Send(ctx, payload); err != nil {
			log.Printf("Failed to send %s notification to user %d: %v", kind, userID, err)
		}
	}
}

func sortedIDs(set map[int64]struct{}) []int64 {
	out := make([]int64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
