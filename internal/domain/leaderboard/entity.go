package leaderboard

import "time"

type TaskType string

const (
	TaskSmall   TaskType = "small"
	TaskRegular TaskType = "regular"
	TaskBig     TaskType = "big"
)

var TaskTypeValues = []string{
	string(TaskSmall),
	string(TaskRegular),
	string(TaskBig),
}

// Weight is the number of points one task of this type is worth.
func (t TaskType) Weight() int {
	switch t {
	case TaskSmall:
		return 1
	case TaskRegular:
		return 2
	case TaskBig:
		return 3
	default:
		return 0
	}
}

// TopSize is how many entries the public leaderboard shows.
const TopSize = 8

// Standing is one employee's running point tally.
type Standing struct {
	Email            string
	Name             string
	AttendancePoints int
	SmallTasks       int
	RegularTasks     int
	BigTasks         int
	UpdatedAt        time.Time
}

// TotalPoints is attendance points plus weighted task counts.
func (s Standing) TotalPoints() int {
	return s.AttendancePoints +
		s.SmallTasks*TaskSmall.Weight() +
		s.RegularTasks*TaskRegular.Weight() +
		s.BigTasks*TaskBig.Weight()
}

// AddTasks adjusts the counter for taskType by delta. Counters never drop
// below zero.
func (s *Standing) AddTasks(taskType TaskType, delta int) error {
	var counter *int
	switch taskType {
	case TaskSmall:
		counter = &s.SmallTasks
	case TaskRegular:
		counter = &s.RegularTasks
	case TaskBig:
		counter = &s.BigTasks
	default:
		return ErrInvalidTaskType
	}
	*counter = max(0, *counter+delta)
	return nil
}
