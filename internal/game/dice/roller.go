package dice

import (
	"slices"

	"go.uber.org/zap"
)

// Roll evaluates expr using src.
//
// Precondition: expr must come from Parse; src must be non-nil.
// Postcondition: len(result.Dice) equals the number of kept dice and
// expr.Min() <= result.Total() <= expr.Max().
func Roll(expr Expression, src Source) RollResult {
	rolled := make([]int, expr.Count)
	for i := range rolled {
		rolled[i] = src.Intn(expr.Sides) + 1
	}
	kept := rolled
	switch {
	case expr.KeepHighest > 0:
		kept = slices.Clone(rolled)
		slices.Sort(kept)
		slices.Reverse(kept)
		kept = kept[:expr.KeepHighest]
	case expr.KeepLowest > 0:
		kept = slices.Clone(rolled)
		slices.Sort(kept)
		kept = kept[:expr.KeepLowest]
	}
	return RollResult{Expression: expr.Raw, Dice: kept, Modifier: expr.Modifier}
}

// Roller pairs a Source with a logger. Every roll is logged at debug level.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewRoller creates a Roller drawing from src. A nil logger disables logging.
//
// Precondition: src must be non-nil.
func NewRoller(src Source, logger *zap.Logger) *Roller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roller{src: src, logger: logger}
}

// Roll evaluates expr and logs the result.
func (r *Roller) Roll(expr Expression) RollResult {
	result := Roll(expr, r.src)
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
	)
	return result
}

// RollExpr parses expr and rolls it.
func (r *Roller) RollExpr(expr string) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return r.Roll(e), nil
}

// Intn returns a value in [0, n) from the underlying source.
//
// Precondition: n > 0.
func (r *Roller) Intn(n int) int { return r.src.Intn(n) }

// Chance reports true with probability percent/100. Values outside
// [0, 100] behave as the nearest bound.
func (r *Roller) Chance(percent int) bool {
	return r.src.Intn(100) < percent
}
