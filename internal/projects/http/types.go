package http

import (
	"fmt"
	"time"

	"github.com/TaskHive-441/go-task-backend/internal/projects/domain"
	userdomain "github.com/TaskHive-441/go-task-backend/internal/users/domain"
)

const dateLayout = "2006-01-02"

type createReq struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	StartDate   string  `json:"start_date" binding:"required"`
	EndDate     string  `json:"end_date" binding:"required"`
	MemberIDs   []int64 `json:"member_ids"`
}

type updateReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Status      string `json:"status" binding:"required"`
}

type membersReq struct {
	MemberIDs []int64 `json:"member_ids" binding:"required"`
}

type projectResp struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	StartDate   string       `json:"start_date"`
	EndDate     string       `json:"end_date"`
	Status      string       `json:"status"`
	MemberIDs   []int64      `json:"member_ids"`
	Members     []memberResp `json:"members,omitempty"`
}

type memberResp struct {
	ID       int64  `json:"id"`
	NickName string `json:"nick_name"`
	Email    string `json:"email"`
}

func toProjectResp(p *domain.Project) projectResp {
	return projectResp{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate.Format(dateLayout),
		EndDate:     p.EndDate.Format(dateLayout),
		Status:      string(p.Status),
		MemberIDs:   p.MemberIDs,
	}
}

func toMemberResps(users []userdomain.User) []memberResp {
	out := make([]memberResp, 0, len(users))
	for _, u := range users {
		out = append(out, memberResp{ID: u.ID, NickName: u.NickName, Email: u.Email})
	}
	return out
}

func parseDate(field, value string) (time.Time, error) {
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be formatted as %s", field, dateLayout)
	}
	return d, nil
}
