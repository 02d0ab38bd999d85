package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/workholic/workholic-go/internal/domain/attendance"
	"github.com/workholic/workholic-go/internal/domain/auth"
	"github.com/workholic/workholic-go/internal/handler/http/middleware"
	"github.com/workholic/workholic-go/internal/handler/http/response"
	"github.com/workholic/workholic-go/internal/pkg/sse"
)

type AttendanceHandler interface {
	ClockAction(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)

	// Stream pushes the caller's own record changes as Server-Sent Events
	Stream(w http.ResponseWriter, r *http.Request)

	// StreamAll pushes every employee's record changes (admin)
	StreamAll(w http.ResponseWriter, r *http.Request)
}

// streamHeartbeat keeps idle event streams open through proxies.
const streamHeartbeat = 25 * time.Second

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	hub               *sse.Hub
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, hub *sse.Hub) AttendanceHandler {
	if hub == nil {
		hub = sse.NewHub()
	}
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		hub:               hub,
	}
}

// ClockAction implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockAction(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrUnauthenticated)
		return
	}

	var req attendance.ClockActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	// Call service
	record, err := h.attendanceService.ClockAction(r.Context(), claims.Email, req)
	if err != nil {
		slog.Warn("Clock action rejected", "email", claims.Email, "action", req.Action, "error", err)
		response.HandleError(w, err)
		return
	}

	h.hub.PublishToMany([]string{claims.Email, sse.TopicAdmin}, sse.Event{Name: "attendance", Data: record})
	response.Success(w, response.Fields{"record": record})
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrUnauthenticated)
		return
	}

	record, err := h.attendanceService.GetToday(r.Context(), claims.Email)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// record is null before the first clock-in
	response.Success(w, response.Fields{"record": record})
}

// History implements AttendanceHandler.
func (h *attendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrUnauthenticated)
		return
	}

	records, err := h.attendanceService.GetHistory(r.Context(), claims.Email)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, response.Fields{"attendance": records})
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter attendance.AttendanceFilter

	query := r.URL.Query()
	if email := query.Get("email"); email != "" {
		filter.Email = &email
	}
	if startDate := query.Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := query.Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}
	if status := query.Get("status"); status != "" {
		filter.Status = &status
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			response.BadRequest(w, "Invalid limit parameter", nil)
			return
		}
		filter.Limit = limit
	}

	records, err := h.attendanceService.ListAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, response.Fields{"attendance": records})
}

// Stream implements AttendanceHandler.
func (h *attendanceHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrUnauthenticated)
		return
	}
	h.stream(w, r, claims.Email)
}

// StreamAll implements AttendanceHandler.
func (h *attendanceHandlerImpl) StreamAll(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, sse.TopicAdmin)
}

func (h *attendanceHandlerImpl) stream(w http.ResponseWriter, r *http.Request, topic string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming unsupported")
		return
	}

	events, cancel := h.hub.Subscribe(topic)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	heartbeat := time.NewTicker(streamHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case event, open := <-events:
			if !open {
				return
			}
			if err := sse.Write(w, event); err != nil {
				slog.Warn("Failed to write attendance event", "topic", topic, "error", err)
				return
			}
			flusher.Flush()
		}
	}
}
