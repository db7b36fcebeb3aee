package sim

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tuckinterrors/terrors-sim/internal/game"
)

// Summary aggregates the results of one simulation batch.
type Summary struct {
	ObjectiveID  string
	AgentProfile string

	Games    int
	ByStatus map[string]int

	TotalTurns   int
	TotalSpirits int
	TotalToys    int
}

// NewSummary creates an empty summary for one batch.
func NewSummary(objectiveID, agentProfile string) *Summary {
	return &Summary{
		ObjectiveID:  objectiveID,
		AgentProfile: agentProfile,
		ByStatus:     make(map[string]int),
	}
}

// Add folds one game result into the summary.
func (s *Summary) Add(result *GameResult) {
	s.Games++
	s.ByStatus[result.WinStatus]++
	s.TotalTurns += result.Turns
	s.TotalSpirits += result.SpiritTokens
	s.TotalToys += result.DistinctToys
}

// WinRate is the fraction of games won by either predicate.
func (s *Summary) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	wins := s.ByStatus[game.WinStatusPrimary] + s.ByStatus[game.WinStatusAlternative]
	return float64(wins) / float64(s.Games)
}

// AverageTurns is the mean game length in turns.
func (s *Summary) AverageTurns() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalTurns) / float64(s.Games)
}

// String renders a plain-text report.
func (s *Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "objective %s, agent %s: %d game(s)\n", s.ObjectiveID, s.AgentProfile, s.Games)
	fmt.Fprintf(&b, "  win rate %.1f%%, avg turns %.1f\n", s.WinRate()*100, s.AverageTurns())

	statuses := make([]string, 0, len(s.ByStatus))
	for status := range s.ByStatus {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)
	for _, status := range statuses {
		fmt.Fprintf(&b, "  %-16s %d\n", status, s.ByStatus[status])
	}
	return b.String()
}
