package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/workholic/workholic-go/internal/domain/attendance"
	"github.com/workholic/workholic-go/internal/domain/auth"
	"github.com/workholic/workholic-go/internal/domain/leaderboard"
	"github.com/workholic/workholic-go/internal/domain/report"
	"github.com/workholic/workholic-go/internal/domain/user"
	"github.com/workholic/workholic-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid credentials")
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenRevoked),
		errors.Is(err, auth.ErrUnauthenticated):
		Unauthorized(w, "Unauthorized")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "User already exists")
	case errors.Is(err, user.ErrInvalidPasswordLength),
		errors.Is(err, user.ErrUnknownSchedule),
		errors.Is(err, user.ErrInvalidEmailFormat):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, user.ErrCannotDeleteSelf):
		Conflict(w, err.Error())
	case errors.Is(err, user.ErrAdminPrivilegeRequired),
		errors.Is(err, user.ErrEmployeeRoleRequired),
		errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn),
		errors.Is(err, attendance.ErrAlreadyClockedOut),
		errors.Is(err, attendance.ErrAlreadyOnBreak),
		errors.Is(err, attendance.ErrNotClockedIn),
		errors.Is(err, attendance.ErrNotOnBreak):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrInvalidAction):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Leaderboard and report errors
	case errors.Is(err, leaderboard.ErrInvalidTaskType):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, report.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "Server error")
	}
}
