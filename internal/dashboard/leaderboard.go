package dashboard

import (
	"fmt"
	"io"
	"strings"

	"github.com/workholic/workholic-go/internal/domain/leaderboard"
)

// RenderLeaderboard writes the ranking and, when present, the caller's own
// rank below it.
func RenderLeaderboard(w io.Writer, board leaderboard.LeaderboardResponse) error {
	var b strings.Builder

	if len(board.Leaderboard) == 0 {
		b.WriteString("No leaderboard data available\n")
	}
	for _, e := range board.Leaderboard {
		name := e.Name
		if name == "" {
			name = "Unknown"
		}
		fmt.Fprintf(&b, "#%-3d %-24s %4d pts  Tasks: %dS %dR %dB\n",
			e.Rank, name, e.TotalPoints, e.SmallTasks, e.RegularTasks, e.BigTasks)
	}
	if board.UserRank != nil {
		fmt.Fprintf(&b, "Your Rank: #%d\n", *board.UserRank)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
