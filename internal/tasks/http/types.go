package http

import (
	"fmt"
	"time"

	"github.com/TaskHive-441/go-task-backend/internal/tasks/domain"
)

const dateLayout = "2006-01-02"

type createReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority" binding:"required"`
	DueDate     string `json:"due_date" binding:"required"`
	AssigneeID  int64  `json:"assignee_id" binding:"required"`
}

type updateReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority" binding:"required"`
	Status      string `json:"status" binding:"required"`
	DueDate     string `json:"due_date" binding:"required"`
	AssigneeID  int64  `json:"assignee_id" binding:"required"`
}

type commentReq struct {
	Text string `json:"text" binding:"required"`
}

type taskResp struct {
	ID          int64  `json:"id"`
	ProjectID   int64  `json:"project_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	DueDate     string `json:"due_date"`
	AssigneeID  int64  `json:"assignee_id"`
}

func toTaskResp(t *domain.Task) taskResp {
	return taskResp{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Name:        t.Name,
		Description: t.Description,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		DueDate:     t.DueDate.Format(dateLayout),
		AssigneeID:  t.AssigneeID,
	}
}

func parseDate(field, value string) (time.Time, error) {
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be formatted as %s", field, dateLayout)
	}
	return d, nil
}
