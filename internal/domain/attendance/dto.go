package attendance

import (
	"fmt"
	"time"

	"github.com/workholic/workholic-go/internal/pkg/validator"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// ========================================
// ATTENDANCE DTOs
// ========================================

type ClockActionRequest struct {
	Action string `json:"action"`
}

func (r *ClockActionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Action) {
		errs.Add("action", "action is required")
	} else if !validator.IsInSlice(r.Action, ActionValues) {
		errs.Add("action", "action must be one of: clock-in, break-start, break-end, clock-out")
	}

	return errs.Err()
}

type BreakResponse struct {
	Start string  `json:"start"`
	End   *string `json:"end"`
}

// RecordResponse is the wire form of a Record. Timestamps are ISO-8601.
type RecordResponse struct {
	Email    string          `json:"email,omitempty"`
	Name     string          `json:"name,omitempty"`
	Date     string          `json:"date"`
	ClockIn  *string         `json:"clockIn"`
	ClockOut *string         `json:"clockOut"`
	Breaks   []BreakResponse `json:"breaks"`
	Status   *string         `json:"status"`
}

func NewRecordResponse(r Record) RecordResponse {
	resp := RecordResponse{
		Email:    r.Email,
		Date:     r.Date.Format(DateLayout),
		ClockIn:  timePtrToString(r.ClockIn),
		ClockOut: timePtrToString(r.ClockOut),
		Breaks:   make([]BreakResponse, 0, len(r.Breaks)),
	}
	if r.EmployeeName != nil {
		resp.Name = *r.EmployeeName
	}
	if r.Status != "" {
		status := string(r.Status)
		resp.Status = &status
	}
	for _, b := range r.Breaks {
		resp.Breaks = append(resp.Breaks, BreakResponse{
			Start: b.Start.Format(time.RFC3339Nano),
			End:   timePtrToString(b.End),
		})
	}
	return resp
}

// ToRecord parses the wire form back into a Record. Dates are read in the
// local timezone.
func (r RecordResponse) ToRecord() (Record, error) {
	date, err := time.ParseInLocation(DateLayout, r.Date, time.Local)
	if err != nil {
		return Record{}, fmt.Errorf("%w: date %q", ErrInvalidRecord, r.Date)
	}

	rec := Record{Email: r.Email, Date: date}
	if r.Name != "" {
		name := r.Name
		rec.EmployeeName = &name
	}
	if r.Status != nil {
		rec.Status = Status(*r.Status)
	}
	if rec.ClockIn, err = parseTimePtr("clockIn", r.ClockIn); err != nil {
		return Record{}, err
	}
	if rec.ClockOut, err = parseTimePtr("clockOut", r.ClockOut); err != nil {
		return Record{}, err
	}

	for i, b := range r.Breaks {
		start, ok := validator.IsValidDateTime(b.Start)
		if !ok {
			return Record{}, fmt.Errorf("%w: breaks[%d].start %q", ErrInvalidRecord, i, b.Start)
		}
		end, err := parseTimePtr(fmt.Sprintf("breaks[%d].end", i), b.End)
		if err != nil {
			return Record{}, err
		}
		rec.Breaks = append(rec.Breaks, Break{Start: start, End: end})
	}

	return rec, nil
}

type AttendanceFilter struct {
	Email     *string `json:"email,omitempty"`
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status    *string `json:"status,omitempty"`
	Limit     int     `json:"limit"`
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Email != nil && !validator.IsValidEmail(*f.Email) {
		errs.Add("email", "email must be a valid email address")
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}

	if f.Status != nil && !validator.IsInSlice(*f.Status, StatusValues) {
		errs.Add("status", "status must be one of: FD, HD, A, H")
	}

	if f.Limit < 0 {
		errs.Add("limit", "limit must be a positive number")
	}
	if f.Limit == 0 {
		f.Limit = 500 // Default limit
	}
	if f.Limit > 5000 {
		errs.Add("limit", "limit must not exceed 5000")
	}

	return errs.Err()
}

// timePtrToString safely converts a *time.Time to an ISO-8601 string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339Nano)
	return &format
}

func parseTimePtr(field string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, ok := validator.IsValidDateTime(*s)
	if !ok {
		return nil, fmt.Errorf("%w: %s %q", ErrInvalidRecord, field, *s)
	}
	return &t, nil
}
