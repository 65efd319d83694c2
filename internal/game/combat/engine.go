package combat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/hexcombat/internal/game/hex"
	"github.com/cory-johannsen/hexcombat/internal/game/roster"
)

// Phase is the state machine's current mode.
type Phase int

const (
	// PhaseResolving means the action queue of the current activation is non-empty.
	PhaseResolving Phase = iota
	// PhaseAdvancing means the queue is empty and the next eligible ability is sought.
	PhaseAdvancing
	// PhaseAwaitingDecision means a full round found nothing and the turn holder must choose.
	PhaseAwaitingDecision
)

// String returns a human-readable phase label.
func (p Phase) String() string {
	switch p {
	case PhaseResolving:
		return "resolving"
	case PhaseAdvancing:
		return "advancing"
	case PhaseAwaitingDecision:
		return "awaiting decision"
	default:
		return "unknown"
	}
}

// Outcome reports what one Step did.
type Outcome int

const (
	// OutcomePending means the input source had nothing yet; state is unchanged.
	OutcomePending Outcome = iota
	// OutcomeResolved means one action resolved.
	OutcomeResolved
	// OutcomeCanceled means the current ability was canceled before its first action.
	OutcomeCanceled
	// OutcomeLoaded means an ability's actions were loaded into the queue.
	OutcomeLoaded
	// OutcomeCardPlayed means the turn holder played a card.
	OutcomeCardPlayed
	// OutcomeTurnEnded means the turn passed to the next character.
	OutcomeTurnEnded
)

// String returns a human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeResolved:
		return "resolved"
	case OutcomeCanceled:
		return "canceled"
	case OutcomeLoaded:
		return "loaded"
	case OutcomeCardPlayed:
		return "card played"
	case OutcomeTurnEnded:
		return "turn ended"
	default:
		return "unknown"
	}
}

// State is the turn-order state machine of one encounter. It owns the roster.
// It is not safe for concurrent use.
type State struct {
	chars      []Character
	cards      CardCatalogue
	logger     *zap.Logger
	phase      Phase
	active     int
	holder     int
	queue      []Action
	cancelable bool
	turns      int
}

// Option configures a State.
type Option func(*State)

// WithLogger sets the logger used for Debug-level engine events.
func WithLogger(l *zap.Logger) Option {
	return func(s *State) { s.logger = l }
}

// WithTurnHolder sets which roster index holds the first turn.
func WithTurnHolder(i int) Option {
	return func(s *State) {
		s.holder = i
		s.active = i
	}
}

// NewState creates a State over chars, which it takes ownership of.
// The state starts Advancing so that abilities already queued resolve first.
//
// Precondition: chars is non-empty; any WithTurnHolder index is in range.
func NewState(chars []Character, cards CardCatalogue, opts ...Option) *State {
	if len(chars) == 0 {
		panic("combat: NewState requires at least one character")
	}
	s := &State{
		chars:  chars,
		cards:  cards,
		logger: zap.NewNop(),
		phase:  PhaseAdvancing,
	}
	for _, o := range opts {
		o(s)
	}
	if s.holder < 0 || s.holder >= len(chars) {
		panic(fmt.Sprintf("combat: turn holder %d out of range [0,%d)", s.holder, len(chars)))
	}
	return s
}

// Phase returns the current phase.
func (s *State) Phase() Phase { return s.phase }

// Active returns the roster index of the character currently acting.
func (s *State) Active() int { return s.active }

// Holder returns the roster index of the character holding the turn.
func (s *State) Holder() int { return s.holder }

// Turns returns how many turns have ended.
func (s *State) Turns() int { return s.turns }

// Cancelable reports whether the next queued action may still be canceled.
func (s *State) Cancelable() bool { return s.cancelable }

// Queue returns a copy of the pending actions of the current activation.
func (s *State) Queue() []Action {
	out := make([]Action, len(s.queue))
	copy(out, s.queue)
	return out
}

// Len implements View.
func (s *State) Len() int { return len(s.chars) }

// Character implements View. The returned value must be treated as read-only.
//
// Precondition: 0 <= i < Len().
func (s *State) Character(i int) Character { return s.chars[i] }

// Roster returns the engine-owned roster. Callers must not modify it.
func (s *State) Roster() []Character { return s.chars }

// Step advances the state machine by one transition.
//
// Postcondition: when the returned Outcome is OutcomePending or the error is
// non-nil, no action has resolved and no card or turn decision took effect.
// The driver retries the step later with the same state.
func (s *State) Step(in InputSource) (Outcome, error) {
	switch s.phase {
	case PhaseResolving:
		return s.resolve(in)
	case PhaseAdvancing:
		if s.advance() {
			return OutcomeLoaded, nil
		}
		return s.decide(in)
	case PhaseAwaitingDecision:
		return s.decide(in)
	default:
		panic(fmt.Sprintf("combat: unknown phase %d", int(s.phase)))
	}
}

func (s *State) singleOut(i int) (*Character, roster.Others[Character]) {
	c, others, err := roster.SingleOut(s.chars, i)
	if err != nil {
		panic(fmt.Sprintf("combat: %v", err))
	}
	return c, others
}

func (s *State) prompt(a Action) Prompt {
	return Prompt{Actor: s.active, Action: a, Cancelable: s.cancelable, Roster: s}
}

// resolve attempts the first queued action of the current activation.
func (s *State) resolve(in InputSource) (Outcome, error) {
	if len(s.queue) == 0 {
		panic("combat: resolving with no queued action")
	}
	action := s.queue[0]
	c, others := s.singleOut(s.active)
	p := s.prompt(action)

	switch a := action.(type) {
	case SelfAction:
		if s.cancelable {
			choice, ok := in.ConfirmSelf(p)
			if !ok {
				return OutcomePending, nil
			}
			if choice.Cancel {
				return s.cancel(), nil
			}
		}
		ResolveSelf(a, c, others)

	case TargetedAction:
		var target hex.Pos
		if s.cancelable {
			choice, ok := in.TargetCancelable(p)
			if !ok {
				return OutcomePending, nil
			}
			if choice.Cancel {
				return s.cancel(), nil
			}
			target = choice.Value
		} else {
			var ok bool
			if target, ok = in.Target(p); !ok {
				return OutcomePending, nil
			}
		}
		ResolveTargeted(a, target, c, others)

	case MoveAction:
		var path []hex.Pos
		if s.cancelable {
			choice, ok := in.PathCancelable(p)
			if !ok {
				return OutcomePending, nil
			}
			if choice.Cancel {
				return s.cancel(), nil
			}
			path = choice.Value
		} else {
			var ok bool
			if path, ok = in.Path(p); !ok {
				return OutcomePending, nil
			}
		}
		if err := ResolveMovement(a, path, c); err != nil {
			return OutcomePending, fmt.Errorf("character %d: %w", s.active, err)
		}

	default:
		panic(fmt.Sprintf("combat: unknown action %T", action))
	}

	s.logger.Debug("action resolved",
		zap.Int("character", s.active),
		zap.String("action", Describe(action)),
	)
	s.queue = s.queue[1:]
	s.cancelable = false
	if len(s.queue) == 0 {
		s.queue = nil
		s.phase = PhaseAdvancing
	}
	return OutcomeResolved, nil
}

func (s *State) cancel() Outcome {
	s.logger.Debug("ability canceled",
		zap.Int("character", s.active),
		zap.Int("discarded_actions", len(s.queue)),
	)
	s.queue = nil
	s.cancelable = false
	s.phase = PhaseAdvancing
	return OutcomeCanceled
}

// advance searches the roster round-robin, starting after the active index and
// ending with it, for a character with an eligible queued ability. Abilities
// failing their preconditions and abilities with no actions are consumed.
// It reports whether a new activation was loaded; if not, the phase becomes
// PhaseAwaitingDecision.
func (s *State) advance() bool {
	n := len(s.chars)
	for step := 1; step <= n; step++ {
		idx := (s.active + step) % n
		c, others := s.singleOut(idx)
		for {
			res := PopAbility(c, others)
			if res.Kind == PopNone {
				break
			}
			if res.Kind == PopUnsatisfied {
				s.logger.Debug("ability discarded by precondition", zap.Int("character", idx))
				continue
			}
			if len(res.Actions) == 0 {
				continue
			}
			s.active = idx
			s.queue = res.Actions
			s.cancelable = true
			s.phase = PhaseResolving
			return true
		}
	}
	s.active = s.holder
	s.phase = PhaseAwaitingDecision
	return false
}

// decide polls the turn holder for a card to play or the end of the turn.
func (s *State) decide(in InputSource) (Outcome, error) {
	s.active = s.holder
	choice, ok := in.Decide(s.prompt(nil))
	if !ok {
		return OutcomePending, nil
	}
	c, _ := s.singleOut(s.holder)

	if choice.EndTurn {
		EndTurn(c)
		s.turns++
		prev := s.holder
		s.holder = (s.holder + 1) % len(s.chars)
		next, _ := s.singleOut(s.holder)
		BeginTurn(next)
		s.phase = PhaseAdvancing
		s.logger.Debug("turn ended",
			zap.Int("character", prev),
			zap.Int("next", s.holder),
			zap.Int("turns", s.turns),
		)
		return OutcomeTurnEnded, nil
	}

	card, ok := s.cards.Card(choice.CardID)
	if !ok {
		return OutcomePending, fmt.Errorf("character %d playing %q: %w", s.holder, choice.CardID, ErrUnknownCard)
	}
	PlayCard(c, card)
	s.phase = PhaseAdvancing
	s.logger.Debug("card played",
		zap.Int("character", s.holder),
		zap.String("card", card.ID),
		zap.Uint("stamina", c.StaminaCurrent),
		zap.Uint("health", c.HealthCurrent),
	)
	return OutcomeCardPlayed, nil
}
