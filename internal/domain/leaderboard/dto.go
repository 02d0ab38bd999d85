package leaderboard

import (
	"sort"

	"github.com/workholic/workholic-go/internal/pkg/validator"
)

type Entry struct {
	Rank             int    `json:"rank"`
	Email            string `json:"email,omitempty"`
	Name             string `json:"name"`
	TotalPoints      int    `json:"totalPoints"`
	AttendancePoints int    `json:"attendancePoints"`
	SmallTasks       int    `json:"smallTasks"`
	RegularTasks     int    `json:"regularTasks"`
	BigTasks         int    `json:"bigTasks"`
}

type LeaderboardResponse struct {
	Leaderboard []Entry `json:"leaderboard"`
	UserRank    *int    `json:"userRank"`
}

// Rank orders standings by total points, highest first, and numbers them
// from 1. Ties keep name order so the output is stable.
func Rank(standings []Standing) []Entry {
	entries := make([]Entry, 0, len(standings))
	for _, s := range standings {
		entries = append(entries, Entry{
			Email:            s.Email,
			Name:             s.Name,
			TotalPoints:      s.TotalPoints(),
			AttendancePoints: s.AttendancePoints,
			SmallTasks:       s.SmallTasks,
			RegularTasks:     s.RegularTasks,
			BigTasks:         s.BigTasks,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].Name < entries[j].Name
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// UpdateTasksRequest adds Count tasks of TaskType to an employee.
type UpdateTasksRequest struct {
	Email    string `json:"email"`
	TaskType string `json:"taskType"`
	Count    int    `json:"count"`
}

func (r *UpdateTasksRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "email must be a valid email address")
	}

	if !validator.IsInSlice(r.TaskType, TaskTypeValues) {
		errs.Add("taskType", "taskType must be one of: small, regular, big")
	}

	if r.Count <= 0 {
		errs.Add("count", "task count must be greater than 0")
	}

	return errs.Err()
}
