package fixtures

import (
	"context"
	"sort"

	"github.com/workholic/workholic-go/internal/domain/schedule"
	"github.com/workholic/workholic-go/internal/domain/user"
)

// ==========================================
// HELPER FUNCTIONS
// ==========================================

func daySpec(start, end string, breakMinutes int) *schedule.DaySpec {
	return &schedule.DaySpec{Start: start, End: end, BreakDuration: breakMinutes}
}

// ==========================================
// DEFAULT SCHEDULES
// ==========================================

// DefaultScheduleName is used for users whose schedule name is unknown.
const DefaultScheduleName = "general"

// GetDefaultSchedules returns the named weekly schedules employees can be
// assigned to.
func GetDefaultSchedules() map[string]schedule.Spec {
	return map[string]schedule.Spec{
		// Office hours with the 1st and 3rd Saturday worked
		"general": {
			Weekdays:         daySpec("10:30", "19:00", 60),
			Saturday:         daySpec("10:00", "13:00", 15),
			WorkingSaturdays: []int{1, 3},
		},
		// Evening shift, longer Friday, weekends off
		"shreyas": {
			Weekdays: daySpec("16:30", "19:00", 15),
			Friday:   daySpec("12:00", "18:00", 45),
			Weekend:  schedule.WeekendOff,
		},
		"srushti": {
			Weekdays:         daySpec("10:30", "16:30", 45),
			Saturday:         daySpec("10:00", "13:00", 15),
			WorkingSaturdays: []int{1, 3},
		},
		"vinay": {
			Weekdays:         daySpec("10:30", "21:00", 60),
			Saturday:         daySpec("10:00", "13:00", 15),
			WorkingSaturdays: []int{1, 3},
		},
	}
}

// PresetRepository serves GetDefaultSchedules as a schedule.SpecRepository.
type PresetRepository struct {
	specs map[string]schedule.Spec
}

func NewPresetRepository() *PresetRepository {
	return &PresetRepository{specs: GetDefaultSchedules()}
}

// GetByName returns a copy of the named spec, or schedule.ErrScheduleNotFound.
func (r *PresetRepository) GetByName(ctx context.Context, name string) (schedule.Spec, error) {
	spec, ok := r.specs[name]
	if !ok {
		return schedule.Spec{}, schedule.ErrScheduleNotFound
	}
	return cloneSpec(spec), nil
}

func (r *PresetRepository) Names(ctx context.Context) []string {
	names := make([]string, 0, len(r.specs))
	for name := range r.specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func cloneSpec(s schedule.Spec) schedule.Spec {
	out := s
	if s.Weekdays != nil {
		d := *s.Weekdays
		out.Weekdays = &d
	}
	if s.Friday != nil {
		d := *s.Friday
		out.Friday = &d
	}
	if s.Saturday != nil {
		d := *s.Saturday
		out.Saturday = &d
	}
	if s.WorkingSaturdays != nil {
		out.WorkingSaturdays = append([]int{}, s.WorkingSaturdays...)
	}
	return out
}

// ==========================================
// DEFAULT ADMIN
// ==========================================

// GetDefaultAdmin returns the administrator account seeded on first start.
// The password hash is filled in by the caller.
func GetDefaultAdmin(email string) user.User {
	return user.User{
		Email:    email,
		Name:     "Admin",
		Role:     user.RoleAdmin,
		Schedule: DefaultScheduleName,
	}
}
