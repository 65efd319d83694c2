package combat

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/hexcombat/internal/game/hex"
)

var (
	// ErrUnknownCard is returned when a decision names a card the catalogue lacks.
	ErrUnknownCard = errors.New("unknown card")
	// ErrMissingInput means an action needed input and none was supplied.
	ErrMissingInput = errors.New("missing input")
	// ErrWrongInput means the supplied input does not fit the pending action.
	ErrWrongInput = errors.New("wrong input type")
	// ErrRemainingAbilities means a card was played over unresolved abilities.
	ErrRemainingAbilities = errors.New("played card with remaining abilities")
)

// InputError reports an input that could not drive Action.
type InputError struct {
	Action Action
	// Input is nil when none was available.
	Input Input
	Err   error
}

func (e *InputError) Error() string {
	if e.Input == nil {
		return fmt.Sprintf("%s: %v", Describe(e.Action), e.Err)
	}
	return fmt.Sprintf("%s: %v %T", Describe(e.Action), e.Err, e.Input)
}

func (e *InputError) Unwrap() error { return e.Err }

// Choice is the answer to a cancelable prompt: proceed with Value, or cancel.
type Choice[T any] struct {
	Value  T
	Cancel bool
}

// Proceed returns a Choice that goes ahead with v.
func Proceed[T any](v T) Choice[T] { return Choice[T]{Value: v} }

// Canceled returns a Choice that cancels the ability.
func Canceled[T any]() Choice[T] { return Choice[T]{Cancel: true} }

// TurnChoice is the turn holder's decision: play CardID, or end the turn.
type TurnChoice struct {
	CardID  string
	EndTurn bool
}

// PlayCardChoice returns a decision to play the card with id.
func PlayCardChoice(id string) TurnChoice { return TurnChoice{CardID: id} }

// EndTurnChoice returns a decision to end the turn.
func EndTurnChoice() TurnChoice { return TurnChoice{EndTurn: true} }

// View is read-only access to the roster. Returned characters share their
// maps and slices with the engine and must not be modified.
type View interface {
	Len() int
	Character(i int) Character
}

// Prompt describes what the engine is waiting on.
type Prompt struct {
	// Actor is the roster index of the character acting or holding the turn.
	Actor int
	// Action is the pending action; nil for turn decisions.
	Action     Action
	Cancelable bool
	Roster     View
}

// InputSource supplies the engine's external decisions. Every method is
// polled and must not block: false means "not yet available" and the engine
// will ask again on a later step.
type InputSource interface {
	// ConfirmSelf is asked only for the first action of an ability.
	ConfirmSelf(p Prompt) (Choice[struct{}], bool)
	Target(p Prompt) (hex.Pos, bool)
	TargetCancelable(p Prompt) (Choice[hex.Pos], bool)
	Path(p Prompt) ([]hex.Pos, bool)
	PathCancelable(p Prompt) (Choice[[]hex.Pos], bool)
	Decide(p Prompt) (TurnChoice, bool)
}
