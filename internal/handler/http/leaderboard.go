package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/workholic/workholic-go/internal/domain/auth"
	"github.com/workholic/workholic-go/internal/domain/leaderboard"
	"github.com/workholic/workholic-go/internal/domain/user"
	"github.com/workholic/workholic-go/internal/handler/http/middleware"
	"github.com/workholic/workholic-go/internal/handler/http/response"
)

type LeaderboardHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	UpdateTasks(w http.ResponseWriter, r *http.Request)
}

type leaderboardHandlerImpl struct {
	leaderboardService leaderboard.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService leaderboard.LeaderboardService) LeaderboardHandler {
	return &leaderboardHandlerImpl{
		leaderboardService: leaderboardService,
	}
}

// Get implements LeaderboardHandler.
func (h *leaderboardHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrUnauthenticated)
		return
	}

	result, err := h.leaderboardService.Get(r.Context(), claims.Email, claims.Role == user.RoleEmployee)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateTasks implements LeaderboardHandler.
func (h *leaderboardHandlerImpl) UpdateTasks(w http.ResponseWriter, r *http.Request) {
	var req leaderboard.UpdateTasksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.leaderboardService.UpdateTasks(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Task points updated", "email", req.Email, "task_type", req.TaskType, "count", req.Count)
	response.SuccessWithMessage(w, "Task points updated")
}
