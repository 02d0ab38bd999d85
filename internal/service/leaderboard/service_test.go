package leaderboard

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workholic/workholic-go/internal/domain/attendance"
	"github.com/workholic/workholic-go/internal/domain/leaderboard"
	"github.com/workholic/workholic-go/internal/domain/user"
)

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type memLeaderboardRepo struct {
	standings map[string]leaderboard.Standing
}

func (m *memLeaderboardRepo) GetByEmail(ctx context.Context, email string) (leaderboard.Standing, error) {
	s, ok := m.standings[email]
	if !ok {
		return leaderboard.Standing{}, leaderboard.ErrStandingNotFound
	}
	return s, nil
}

func (m *memLeaderboardRepo) Upsert(ctx context.Context, s leaderboard.Standing) error {
	m.standings[s.Email] = s
	return nil
}

func (m *memLeaderboardRepo) List(ctx context.Context) ([]leaderboard.Standing, error) {
	var out []leaderboard.Standing
	for _, s := range m.standings {
		s.Name = s.Email
		out = append(out, s)
	}
	return out, nil
}

type knownUsers struct {
	user.UserRepository
}

func (knownUsers) GetByEmail(ctx context.Context, email string) (user.User, error) {
	if email == "ghost@workholic.in" {
		return user.User{}, user.ErrUserNotFound
	}
	return user.User{Email: email, Role: user.RoleEmployee}, nil
}

func newService() (leaderboard.LeaderboardService, *memLeaderboardRepo) {
	repo := &memLeaderboardRepo{standings: map[string]leaderboard.Standing{}}
	return NewLeaderboardService(passthroughTx{}, repo, knownUsers{}), repo
}

func TestUpdateTasks(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	require.NoError(t, svc.UpdateTasks(ctx, leaderboard.UpdateTasksRequest{Email: "a@workholic.in", TaskType: "big", Count: 2}))
	require.NoError(t, svc.UpdateTasks(ctx, leaderboard.UpdateTasksRequest{Email: "a@workholic.in", TaskType: "small", Count: 1}))

	s := repo.standings["a@workholic.in"]
	assert.Equal(t, 2, s.BigTasks)
	assert.Equal(t, 1, s.SmallTasks)
	assert.Equal(t, 7, s.TotalPoints())

	err := svc.UpdateTasks(ctx, leaderboard.UpdateTasksRequest{Email: "a@workholic.in", TaskType: "small", Count: 0})
	assert.Error(t, err)

	err = svc.UpdateTasks(ctx, leaderboard.UpdateTasksRequest{Email: "ghost@workholic.in", TaskType: "small", Count: 1})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestAwardAttendance(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	require.NoError(t, svc.AwardAttendance(ctx, "a@workholic.in", attendance.StatusFullDay))
	require.NoError(t, svc.AwardAttendance(ctx, "a@workholic.in", attendance.StatusHalfDay))
	require.NoError(t, svc.AwardAttendance(ctx, "a@workholic.in", attendance.StatusAbsent))
	require.NoError(t, svc.AwardAttendance(ctx, "b@workholic.in", attendance.StatusHoliday))

	assert.Equal(t, 2, repo.standings["a@workholic.in"].AttendancePoints)
	_, touched := repo.standings["b@workholic.in"]
	assert.False(t, touched)
}

func TestGet_TopEightAndUserRank(t *testing.T) {
	svc, repo := newService()
	for i := 0; i < 10; i++ {
		email := fmt.Sprintf("e%02d@workholic.in", i)
		repo.standings[email] = leaderboard.Standing{Email: email, AttendancePoints: 100 - i}
	}
	ctx := context.Background()

	resp, err := svc.Get(ctx, "e09@workholic.in", true)
	require.NoError(t, err)
	require.Len(t, resp.Leaderboard, leaderboard.TopSize)
	assert.Equal(t, 1, resp.Leaderboard[0].Rank)
	require.NotNil(t, resp.UserRank)
	assert.Equal(t, 10, *resp.UserRank)

	resp, err = svc.Get(ctx, "e01@workholic.in", true)
	require.NoError(t, err)
	assert.Nil(t, resp.UserRank, "ranked inside the top list")

	resp, err = svc.Get(ctx, "e09@workholic.in", false)
	require.NoError(t, err)
	assert.Nil(t, resp.UserRank, "admins get no rank")
}
