package leaderboard

import "errors"

var (
	ErrInvalidTaskType  = errors.New("invalid task type")
	ErrStandingNotFound = errors.New("leaderboard entry not found")
)
