package service

import (
	"context"
	"log"
	"time"

	projectdomain "github.com/TaskHive-441/go-task-backend/internal/projects/domain"
	"github.com/TaskHive-441/go-task-backend/internal/tasks/domain"
)

// ProjectGate is the gated project load: it fails with the project-domain
// not-found or forbidden errors before any task operation proceeds.
type ProjectGate interface {
	GetProjectByID(ctx context.Context, actorID, projectID int64) (*projectdomain.Project, error)
}

// TaskStore is the persistence collaborator for tasks and comments.
type TaskStore interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID int64) ([]domain.Task, error)
	Update(ctx context.Context, t *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, id int64) error
	AddComment(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	ListComments(ctx context.Context, taskID int64) ([]domain.Comment, error)
}

// TaskService handles task CRUD inside a project. Every operation passes
// the membership gate of the owning project. Task edits emit no
// notifications.
type TaskService struct {
	store TaskStore
	gate  ProjectGate
}

func NewTaskService(store TaskStore, gate ProjectGate) *TaskService {
	return &TaskService{store: store, gate: gate}
}

type CreateTask struct {
	Name        string
	Description string
	Priority    string
	DueDate     time.Time
	AssigneeID  int64
}

type UpdateTask struct {
	Name        string
	Description string
	Priority    string
	Status      string
	DueDate     time.Time
	AssigneeID  int64
}

func (s *TaskService) Create(ctx context.Context, actorID, projectID int64, in CreateTask) (*domain.Task, error) {
	project, err := s.gate.GetProjectByID(ctx, actorID, projectID)
	if err != nil {
		return nil, err
	}

	priority, ok := domain.ParsePriority(in.Priority)
	if !ok {
		return nil, &domain.InvalidPriorityError{Value: in.Priority}
	}
	if !project.HasMember(in.AssigneeID) {
		return nil, domain.ErrAssigneeNotInProject
	}

	task := &domain.Task{
		ProjectID:   projectID,
		Name:        in.Name,
		Description: in.Description,
		Priority:    priority,
		Status:      domain.StatusNotStarted,
		DueDate:     in.DueDate,
		AssigneeID:  in.AssigneeID,
	}

	created, err := s.store.Create(ctx, task)
	if err != nil {
		return nil, err
	}
	log.Printf("Task created with id: %d in project: %d", created.ID, projectID)
	return created, nil
}

func (s *TaskService) ListByProject(ctx context.Context, actorID, projectID int64) ([]domain.Task, error) {
	if _, err := s.gate.GetProjectByID(ctx, actorID, projectID); err != nil {
		return nil, err
	}
	return s.store.ListByProject(ctx, projectID)
}

func (s *TaskService) GetByID(ctx context.Context, actorID, taskID int64) (*domain.Task, error) {
	return s.getGatedTask(ctx, actorID, taskID)
}

func (s *TaskService) UpdateByID(ctx context.Context, actorID, taskID int64, in UpdateTask) (*domain.Task, error) {
	task, err := s.getGatedTask(ctx, actorID, taskID)
	if err != nil {
		return nil, err
	}

	priority, ok := domain.ParsePriority(in.Priority)
	if !ok {
		return nil, &domain.InvalidPriorityError{Value: in.Priority}
	}
	status, ok := domain.ParseStatus(in.Status)
	if !ok {
		return nil, &domain.InvalidStatusError{Value: in.Status}
	}

	project, err := s.gate.GetProjectByID(ctx, actorID, task.ProjectID)
	if err != nil {
		return nil, err
	}
	if !project.HasMember(in.AssigneeID) {
		return nil, domain.ErrAssigneeNotInProject
	}

	task.Name = in.Name
	task.Description = in.Description
	task.Priority = priority
	task.Status = status
	task.DueDate = in.DueDate
	task.AssigneeID = in.AssigneeID

	return s.store.Update(ctx, task)
}

func (s *TaskService) DeleteByID(ctx context.Context, actorID, taskID int64) error {
	task, err := s.getGatedTask(ctx, actorID, taskID)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, task.ID)
}

func (s *TaskService) AddComment(ctx context.Context, actorID, taskID int64, text string) (*domain.Comment, error) {
	task, err := s.getGatedTask(ctx, actorID, taskID)
	if err != nil {
		return nil, err
	}
	return s.store.AddComment(ctx, &domain.Comment{
		TaskID: task.ID,
		UserID: actorID,
		Text:   text,
	})
}

func (s *TaskService) ListComments(ctx context.Context, actorID, taskID int64) ([]domain.Comment, error) {
	task, err := s.getGatedTask(ctx, actorID, taskID)
	if err != nil {
		return nil, err
	}
	return s.store.ListComments(ctx, task.ID)
}

// getGatedTask loads the task, then applies the owning project's
// membership gate to the actor.
func (s *TaskService) getGatedTask(ctx context.Context, actorID, taskID int64) (*domain.Task, error) {
	task, err := s.store.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.gate.GetProjectByID(ctx, actorID, task.ProjectID); err != nil {
		return nil, err
	}
	return task, nil
}
