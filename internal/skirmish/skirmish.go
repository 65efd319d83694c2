// Package skirmish drives an encounter to its end: it steps the combat state
// machine against an input source, detects victory and stalemate, and draws
// the board between turns.
package skirmish

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/cory-johannsen/hexcombat/internal/game/combat"
	"github.com/cory-johannsen/hexcombat/internal/game/condition"
	"github.com/cory-johannsen/hexcombat/internal/render"
)

// Reason says why a run stopped.
type Reason int

const (
	// ReasonVictory means at most one team has a character standing.
	ReasonVictory Reason = iota
	// ReasonStalemate means the idle-round limit passed with no card played.
	ReasonStalemate
	// ReasonStepLimit means the step budget ran out.
	ReasonStepLimit
)

// String returns a human-readable reason label.
func (r Reason) String() string {
	switch r {
	case ReasonVictory:
		return "victory"
	case ReasonStalemate:
		return "stalemate"
	case ReasonStepLimit:
		return "step limit"
	default:
		return "unknown"
	}
}

// Result summarises a finished run.
type Result struct {
	Reason Reason
	// Winner is the surviving team; nil on a draw or an unfinished run.
	Winner *combat.Team
	Steps  int
	Turns  int
	// CardsPlayed counts every card played during the run.
	CardsPlayed int
}

// Runner owns one encounter run.
type Runner struct {
	State *combat.State
	Input combat.InputSource
	// MaxSteps bounds the run; it must be positive.
	MaxSteps int
	// IdleRounds is the number of full rounds without a card played that
	// counts as a stalemate; it must be positive.
	IdleRounds int

	// Out receives the board after every turn; nil disables drawing.
	Out        io.Writer
	Layout     render.Layout
	Conditions *condition.Registry
	Logger     *zap.Logger
}

// Run steps the state until a team wins, the encounter stalls, the step
// budget is spent or ctx is done.
//
// Precondition: r.State and r.Input are non-nil; MaxSteps and IdleRounds are positive.
// Postcondition: returns a Result unless a step fails or ctx is done, in which
// case the error is returned alongside the partial Result.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	if r.MaxSteps < 1 || r.IdleRounds < 1 {
		panic("skirmish.Run: MaxSteps and IdleRounds must be positive")
	}
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var res Result
	if winner, done := standing(r.State); done {
		res.Reason, res.Winner = ReasonVictory, winner
		r.draw(res)
		return res, nil
	}
	r.draw(res)

	idleTurns := 0
	for res.Steps < r.MaxSteps {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		out, err := r.State.Step(r.Input)
		res.Steps++
		if err != nil {
			return res, fmt.Errorf("skirmish: step %d: %w", res.Steps, err)
		}

		switch out {
		case combat.OutcomeCardPlayed:
			res.CardsPlayed++
			idleTurns = 0
		case combat.OutcomeTurnEnded:
			res.Turns++
			idleTurns++
			r.draw(res)
		}

		if out == combat.OutcomeResolved || out == combat.OutcomeTurnEnded {
			if winner, done := standing(r.State); done {
				res.Reason, res.Winner = ReasonVictory, winner
				logger.Info("encounter won", zap.String("team", teamName(winner)), zap.Int("steps", res.Steps))
				r.draw(res)
				return res, nil
			}
		}
		if idleTurns >= r.IdleRounds*r.State.Len() {
			res.Reason = ReasonStalemate
			logger.Info("encounter stalled", zap.Int("turns", res.Turns), zap.Int("steps", res.Steps))
			r.draw(res)
			return res, nil
		}
	}

	res.Reason = ReasonStepLimit
	logger.Warn("step limit reached", zap.Int("steps", res.Steps))
	r.draw(res)
	return res, nil
}

// standing reports whether at most one team still has a living character,
// and which one.
func standing(s *combat.State) (*combat.Team, bool) {
	alive := map[combat.Team]bool{}
	for i := range s.Len() {
		c := s.Character(i)
		if !c.Defeated() {
			alive[c.Team] = true
		}
	}
	switch len(alive) {
	case 0:
		return nil, true
	case 1:
		for t := range alive {
			return &t, true
		}
	}
	return nil, false
}

func teamName(t *combat.Team) string {
	if t == nil {
		return "none"
	}
	return t.String()
}

func (r *Runner) draw(res Result) {
	if r.Out == nil {
		return
	}
	chars := r.State.Roster()
	fmt.Fprintf(r.Out, "turn %d, step %d\n", res.Turns, res.Steps)
	fmt.Fprint(r.Out, render.Encounter(chars, r.Conditions, r.State.Holder(), r.Layout))
	fmt.Fprint(r.Out, render.Roster(chars, r.Conditions, r.State.Holder(), r.Layout.Color))
	fmt.Fprintln(r.Out)
}

// Summary returns a one-line description of res.
func Summary(res Result) string {
	switch {
	case res.Reason == ReasonVictory && res.Winner != nil:
		return fmt.Sprintf("%s team wins after %d turns (%d steps, %d cards)", res.Winner, res.Turns, res.Steps, res.CardsPlayed)
	case res.Reason == ReasonVictory:
		return fmt.Sprintf("everyone is down after %d turns (%d steps, %d cards)", res.Turns, res.Steps, res.CardsPlayed)
	default:
		return fmt.Sprintf("%s after %d turns (%d steps, %d cards)", res.Reason, res.Turns, res.Steps, res.CardsPlayed)
	}
}
