package combat

import (
	"fmt"
	"math"

	"github.com/cory-johannsen/hexcombat/internal/game/hex"
	"github.com/cory-johannsen/hexcombat/internal/game/roster"
)

// Input is one pre-recorded answer for a Scripted source. The set of inputs is
// closed: ConfirmInput, CancelInput, TargetInput, PathInput and DecideInput.
type Input interface {
	isInput()
}

// ConfirmInput proceeds with a cancelable self action.
type ConfirmInput struct{}

// CancelInput cancels the current ability at its first action.
type CancelInput struct{}

// TargetInput aims a targeted action at Pos.
type TargetInput struct{ Pos hex.Pos }

// PathInput walks a movement action along Steps.
type PathInput struct{ Steps []hex.Pos }

// DecideInput answers a turn decision.
type DecideInput struct{ Choice TurnChoice }

func (ConfirmInput) isInput() {}
func (CancelInput) isInput()  {}
func (TargetInput) isInput()  {}
func (PathInput) isInput()    {}
func (DecideInput) isInput()  {}

// Target is shorthand for a TargetInput at (r, q).
func Target(r, q int) TargetInput { return TargetInput{Pos: hex.P(r, q)} }

// Path is shorthand for a PathInput.
func Path(steps ...hex.Pos) PathInput { return PathInput{Steps: steps} }

// Play is shorthand for a DecideInput playing the card with id.
func Play(id string) DecideInput { return DecideInput{Choice: PlayCardChoice(id)} }

// End is shorthand for a DecideInput ending the turn.
func End() DecideInput { return DecideInput{Choice: EndTurnChoice()} }

// Scripted is an InputSource that replays a fixed queue of inputs. An empty
// queue reads as "not yet available". An input of the wrong kind is left in
// place, recorded in Err, and also reads as "not yet available".
type Scripted struct {
	inputs []Input
	err    error
	// AutoConfirm answers every self-action confirmation without consuming input.
	AutoConfirm bool
}

// NewScripted returns a Scripted source that replays inputs in order.
func NewScripted(inputs ...Input) *Scripted {
	return &Scripted{inputs: inputs}
}

// Push appends inputs to the queue.
func (s *Scripted) Push(inputs ...Input) {
	s.inputs = append(s.inputs, inputs...)
}

// Len returns the number of unconsumed inputs.
func (s *Scripted) Len() int { return len(s.inputs) }

// Err returns the first input mismatch, if any.
func (s *Scripted) Err() error { return s.err }

func (s *Scripted) peek() (Input, bool) {
	if len(s.inputs) == 0 {
		return nil, false
	}
	return s.inputs[0], true
}

func (s *Scripted) pop() { s.inputs = s.inputs[1:] }

func (s *Scripted) mismatch(p Prompt, in Input) {
	if s.err == nil {
		s.err = &InputError{Action: p.Action, Input: in, Err: ErrWrongInput}
	}
}

// ConfirmSelf implements InputSource.
func (s *Scripted) ConfirmSelf(p Prompt) (Choice[struct{}], bool) {
	if s.AutoConfirm {
		return Proceed(struct{}{}), true
	}
	in, ok := s.peek()
	if !ok {
		return Choice[struct{}]{}, false
	}
	switch in.(type) {
	case ConfirmInput:
		s.pop()
		return Proceed(struct{}{}), true
	case CancelInput:
		s.pop()
		return Canceled[struct{}](), true
	}
	s.mismatch(p, in)
	return Choice[struct{}]{}, false
}

// Target implements InputSource.
func (s *Scripted) Target(p Prompt) (hex.Pos, bool) {
	in, ok := s.peek()
	if !ok {
		return hex.Pos{}, false
	}
	if t, ok := in.(TargetInput); ok {
		s.pop()
		return t.Pos, true
	}
	s.mismatch(p, in)
	return hex.Pos{}, false
}

// TargetCancelable implements InputSource.
func (s *Scripted) TargetCancelable(p Prompt) (Choice[hex.Pos], bool) {
	in, ok := s.peek()
	if !ok {
		return Choice[hex.Pos]{}, false
	}
	switch in := in.(type) {
	case TargetInput:
		s.pop()
		return Proceed(in.Pos), true
	case CancelInput:
		s.pop()
		return Canceled[hex.Pos](), true
	}
	s.mismatch(p, in)
	return Choice[hex.Pos]{}, false
}

// Path implements InputSource.
func (s *Scripted) Path(p Prompt) ([]hex.Pos, bool) {
	in, ok := s.peek()
	if !ok {
		return nil, false
	}
	if path, ok := in.(PathInput); ok {
		s.pop()
		return path.Steps, true
	}
	s.mismatch(p, in)
	return nil, false
}

// PathCancelable implements InputSource.
func (s *Scripted) PathCancelable(p Prompt) (Choice[[]hex.Pos], bool) {
	in, ok := s.peek()
	if !ok {
		return Choice[[]hex.Pos]{}, false
	}
	switch in := in.(type) {
	case PathInput:
		s.pop()
		return Proceed(in.Steps), true
	case CancelInput:
		s.pop()
		return Canceled[[]hex.Pos](), true
	}
	s.mismatch(p, in)
	return Choice[[]hex.Pos]{}, false
}

// Decide implements InputSource.
func (s *Scripted) Decide(p Prompt) (TurnChoice, bool) {
	in, ok := s.peek()
	if !ok {
		return TurnChoice{}, false
	}
	if d, ok := in.(DecideInput); ok {
		s.pop()
		return d.Choice, true
	}
	s.mismatch(p, in)
	return TurnChoice{}, false
}

// ResolveAbilities pops up to limit abilities from c's queue and resolves
// every action of each, outside the state machine. Self actions take no input;
// targeted and movement actions consume inputs in order. Abilities failing
// their preconditions count toward limit. Unused inputs are ignored.
//
// Returns an *InputError wrapping ErrMissingInput or ErrWrongInput when the
// inputs do not fit, or the *PathError of a bad movement path.
func ResolveAbilities(c *Character, others roster.Others[Character], limit int, inputs ...Input) error {
	for range limit {
		res := PopAbility(c, others)
		switch res.Kind {
		case PopNone:
			return nil
		case PopUnsatisfied:
			continue
		}
		for _, action := range res.Actions {
			switch a := action.(type) {
			case SelfAction:
				ResolveSelf(a, c, others)
			case TargetedAction:
				if len(inputs) == 0 {
					return &InputError{Action: action, Err: ErrMissingInput}
				}
				t, ok := inputs[0].(TargetInput)
				if !ok {
					return &InputError{Action: action, Input: inputs[0], Err: ErrWrongInput}
				}
				inputs = inputs[1:]
				ResolveTargeted(a, t.Pos, c, others)
			case MoveAction:
				if len(inputs) == 0 {
					return &InputError{Action: action, Err: ErrMissingInput}
				}
				p, ok := inputs[0].(PathInput)
				if !ok {
					return &InputError{Action: action, Input: inputs[0], Err: ErrWrongInput}
				}
				inputs = inputs[1:]
				if err := ResolveMovement(a, p.Steps, c); err != nil {
					return err
				}
			default:
				panic(fmt.Sprintf("combat: unknown action %T", action))
			}
		}
	}
	return nil
}

// ResolveRemaining is ResolveAbilities without a limit.
func ResolveRemaining(c *Character, others roster.Others[Character], inputs ...Input) error {
	return ResolveAbilities(c, others, math.MaxInt, inputs...)
}

// PlayCardWithInputs plays card for c and resolves exactly the abilities it
// queued, leaving any triggered abilities they caused on the queue.
//
// Precondition: c has no remaining abilities; otherwise ErrRemainingAbilities
// is returned and nothing changes.
func PlayCardWithInputs(card *Card, c *Character, others roster.Others[Character], inputs ...Input) error {
	if len(c.Remaining) > 0 {
		return fmt.Errorf("%s with %d queued: %w", card.ID, len(c.Remaining), ErrRemainingAbilities)
	}
	n := PlayCard(c, card)
	return ResolveAbilities(c, others, n, inputs...)
}

// EndAndBeginTurn ends c's turn and immediately begins its next one.
func EndAndBeginTurn(c *Character) {
	EndTurn(c)
	BeginTurn(c)
}
