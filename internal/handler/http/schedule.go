package http

import (
	"net/http"
	"time"

	"github.com/workholic/workholic-go/internal/domain/auth"
	"github.com/workholic/workholic-go/internal/domain/schedule"
	"github.com/workholic/workholic-go/internal/handler/http/middleware"
	"github.com/workholic/workholic-go/internal/handler/http/response"
)

type ScheduleHandler interface {
	Today(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
	now             func() time.Time
}

func NewScheduleHandler(scheduleService schedule.ScheduleService, now func() time.Time) ScheduleHandler {
	if now == nil {
		now = time.Now
	}
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
		now:             now,
	}
}

// Today returns the caller's weekly schedule. The client resolves the day;
// the server-side outcome is sent along for reference.
func (h *scheduleHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrUnauthenticated)
		return
	}

	spec, err := h.scheduleService.GetSpec(r.Context(), claims.Schedule)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	today := schedule.Resolve(&spec, h.now())
	response.Success(w, response.Fields{
		"schedule": spec,
		"today":    today.Lines(),
	})
}
