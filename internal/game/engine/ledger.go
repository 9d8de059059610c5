package engine

import (
	"github.com/DyLaNHurtado/mus-game-app/internal/apperrors"
)

// ScoreUpdate is one recorded credit in the match's score history.
type ScoreUpdate struct {
	Team   Team
	Points int
	Reason string
	Phase  Phase
}

// Ledger accumulates per-team points and detects the winning threshold.
// Scores only ever go up; once a team reaches the target the match is
// finished and the ledger refuses further credits.
type Ledger struct {
	scores   [2]int
	target   int
	finished bool
	winner   Team
	history  []ScoreUpdate
}

// NewLedger creates a ledger that finishes at target points.
func NewLedger(target int) *Ledger {
	return &Ledger{target: target}
}

// AddPoints credits a team and re-checks the winning threshold. Negative
// amounts are rejected; zero-point credits are accepted but not recorded.
func (l *Ledger) AddPoints(team Team, points int, reason string, phase Phase) error {
	if points < 0 {
		return apperrors.ErrNegativePoints
	}
	if l.finished {
		return apperrors.ErrRoomFinished
	}
	if points == 0 {
		return nil
	}

	l.scores[team] += points
	l.history = append(l.history, ScoreUpdate{Team: team, Points: points, Reason: reason, Phase: phase})

	if l.scores[team] >= l.target {
		l.finished = true
		l.winner = team
	}
	return nil
}

// Scores returns the current per-team totals.
func (l *Ledger) Scores() [2]int {
	return l.scores
}

// Target returns the winning threshold.
func (l *Ledger) Target() int {
	return l.target
}

// Finished reports whether either team has reached the target.
func (l *Ledger) Finished() bool {
	return l.finished
}

// Winner returns the winning team once the match is finished.
func (l *Ledger) Winner() (Team, bool) {
	return l.winner, l.finished
}

// Leading returns the team currently ahead, if any.
func (l *Ledger) Leading() (Team, bool) {
	switch {
	case l.scores[TeamA] > l.scores[TeamB]:
		return TeamA, true
	case l.scores[TeamB] > l.scores[TeamA]:
		return TeamB, true
	}
	return 0, false
}

// Difference returns the absolute score gap.
func (l *Ledger) Difference() int {
	d := l.scores[TeamA] - l.scores[TeamB]
	if d < 0 {
		return -d
	}
	return d
}

// PointsToWin returns how many points the team still needs.
func (l *Ledger) PointsToWin(team Team) int {
	if rest := l.target - l.scores[team]; rest > 0 {
		return rest
	}
	return 0
}

// Recent returns the last n score updates, newest last.
func (l *Ledger) Recent(n int) []ScoreUpdate {
	if n > len(l.history) {
		n = len(l.history)
	}
	out := make([]ScoreUpdate, n)
	copy(out, l.history[len(l.history)-n:])
	return out
}
