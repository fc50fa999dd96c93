package game

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/dtroode/quicksnatch-server/internal/model"
)

// Rank orders standings by level (desc), last correct submission (asc, players
// without one last) and username. Players share a rank only when level and
// last submission time are identical.
func Rank(standings []model.Standing) []model.LeaderboardEntry {
	sorted := slices.Clone(standings)
	slices.SortStableFunc(sorted, func(a, b model.Standing) int {
		if c := compareStanding(a, b); c != 0 {
			return c
		}
		return cmp.Compare(a.Username, b.Username)
	})

	entries := make([]model.LeaderboardEntry, len(sorted))
	for i, s := range sorted {
		rank := i + 1
		if i > 0 && compareStanding(sorted[i-1], s) == 0 {
			rank = entries[i-1].Rank
		}
		entries[i] = model.LeaderboardEntry{Rank: rank, Standing: s}
	}
	return entries
}

func compareStanding(a, b model.Standing) int {
	if c := cmp.Compare(b.CurrentLevel, a.CurrentLevel); c != 0 {
		return c
	}
	switch {
	case a.LastSubmissionAt == nil && b.LastSubmissionAt == nil:
		return 0
	case a.LastSubmissionAt == nil:
		return 1
	case b.LastSubmissionAt == nil:
		return -1
	default:
		return a.LastSubmissionAt.Compare(*b.LastSubmissionAt)
	}
}

// Elapsed is the time from first login to the last correct submission.
func Elapsed(s model.Standing) (time.Duration, bool) {
	if s.StartedAt == nil || s.LastSubmissionAt == nil {
		return 0, false
	}
	return s.LastSubmissionAt.Sub(*s.StartedAt), true
}

// FormatSpent renders a duration as "1h 2m 3s", "2m 3s" or "3s".
func FormatSpent(d time.Duration) string {
	total := int(d.Seconds())
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
