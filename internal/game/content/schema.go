// Package content loads cards, items and encounters from YAML and serves them
// to the engine as read-only catalogues.
package content

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/hexcombat/internal/game/combat"
	"github.com/cory-johannsen/hexcombat/internal/game/condition"
	"github.com/cory-johannsen/hexcombat/internal/game/hex"
	"github.com/cory-johannsen/hexcombat/internal/game/turnstat"
)

// The *Doc types mirror the YAML layout. Unions (actions, effects, filters,
// preconditions) are mappings with exactly one key set.

type areaDoc struct {
	From int `yaml:"from"`
	// To is exclusive; omitted means unbounded.
	To *int `yaml:"to"`
}

type filterDoc struct {
	IsEnemy          bool            `yaml:"is_enemy"`
	IsSelf           bool            `yaml:"is_self"`
	Within           *areaDoc        `yaml:"within"`
	WithCondition    *condition.Kind `yaml:"with_condition"`
	WithoutCondition *condition.Kind `yaml:"without_condition"`
	And              []filterDoc     `yaml:"and"`
	Or               []filterDoc     `yaml:"or"`
}

type grantDoc struct {
	Kind  condition.Kind `yaml:"kind"`
	Value int            `yaml:"value"`
}

type effectDoc struct {
	Damage              *uint     `yaml:"damage"`
	DamageWithLifesteal *uint     `yaml:"damage_with_lifesteal"`
	Heal                *uint     `yaml:"heal"`
	GainStamina         *uint     `yaml:"gain_stamina"`
	Condition           *grantDoc `yaml:"condition"`
}

type areaEffectDoc struct {
	Area    *areaDoc    `yaml:"area"`
	Filter  *filterDoc  `yaml:"filter"`
	Effects []effectDoc `yaml:"effects"`
}

type selfDoc struct {
	Attack  bool            `yaml:"attack"`
	Effects []areaEffectDoc `yaml:"effects"`
}

type targetedDoc struct {
	// Range is omitted for melee.
	Range   *int            `yaml:"range"`
	Effects []areaEffectDoc `yaml:"effects"`
}

type moveDoc struct {
	Spaces uint `yaml:"spaces"`
	Jump   bool `yaml:"jump"`
}

type actionDoc struct {
	Self     *selfDoc     `yaml:"self"`
	Targeted *targetedDoc `yaml:"targeted"`
	Move     *moveDoc     `yaml:"move"`
}

type filteredCountDoc struct {
	Filter     filterDoc `yaml:"filter"`
	Comparison string    `yaml:"comparison"`
	Value      uint      `yaml:"value"`
}

type turnStatDoc struct {
	TurnsAgo   int    `yaml:"turns_ago"`
	Stat       string `yaml:"stat"`
	Comparison string `yaml:"comparison"`
	Value      uint   `yaml:"value"`
}

type preconditionDoc struct {
	FilteredCount *filteredCountDoc `yaml:"filtered_count"`
	TurnStat      *turnStatDoc      `yaml:"turn_stat"`
}

type abilityDoc struct {
	Precondition *preconditionDoc `yaml:"precondition"`
	Actions      []actionDoc      `yaml:"actions"`
}

type cardDoc struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	StaminaCost uint         `yaml:"stamina_cost"`
	Abilities   []abilityDoc `yaml:"abilities"`
}

type modifierDoc struct {
	AppliesOnlyTo *condition.Kind `yaml:"applies_only_to"`
	TransformInto *condition.Kind `yaml:"transform_into"`
	Additive      int             `yaml:"additive"`
	// Multiplicative defaults to 1 when omitted.
	Multiplicative *float64 `yaml:"multiplicative"`
}

type passivesDoc struct {
	HealthForStamina bool          `yaml:"health_for_stamina"`
	ModifyGained     []modifierDoc `yaml:"modify_gained"`
}

type itemDoc struct {
	ID          string                  `yaml:"id"`
	Name        string                  `yaml:"name"`
	Description string                  `yaml:"description"`
	Passives    passivesDoc             `yaml:"passives"`
	Triggers    map[string][]abilityDoc `yaml:"triggers"`
}

var errOneOf = errors.New("exactly one variant must be set")

func oneOf(what string, set ...bool) error {
	n := 0
	for _, s := range set {
		if s {
			n++
		}
	}
	if n != 1 {
		return fmt.Errorf("%s: %w, got %d", what, errOneOf, n)
	}
	return nil
}

func (d *areaDoc) disk() (hex.Disk, error) {
	to := hex.Unbounded
	if d.To != nil {
		to = *d.To
	}
	if d.From < 0 || to <= d.From {
		return hex.Disk{}, fmt.Errorf("area [%d,%d) is empty or negative", d.From, to)
	}
	return hex.Disk{From: d.From, To: to}, nil
}

func (d *filterDoc) filter() (combat.Filter, error) {
	if err := oneOf("filter", d.IsEnemy, d.IsSelf, d.Within != nil, d.WithCondition != nil,
		d.WithoutCondition != nil, d.And != nil, d.Or != nil); err != nil {
		return nil, err
	}
	switch {
	case d.IsEnemy:
		return combat.IsEnemy{}, nil
	case d.IsSelf:
		return combat.IsSelf{}, nil
	case d.Within != nil:
		disk, err := d.Within.disk()
		if err != nil {
			return nil, fmt.Errorf("within: %w", err)
		}
		return combat.Within{Disk: disk}, nil
	case d.WithCondition != nil:
		return combat.WithCondition{Kind: *d.WithCondition}, nil
	case d.WithoutCondition != nil:
		return combat.WithoutCondition{Kind: *d.WithoutCondition}, nil
	case d.And != nil:
		fs, err := filters(d.And)
		if err != nil {
			return nil, fmt.Errorf("and: %w", err)
		}
		return combat.And(fs), nil
	default:
		fs, err := filters(d.Or)
		if err != nil {
			return nil, fmt.Errorf("or: %w", err)
		}
		return combat.Or(fs), nil
	}
}

func filters(docs []filterDoc) ([]combat.Filter, error) {
	out := make([]combat.Filter, 0, len(docs))
	for i := range docs {
		f, err := docs[i].filter()
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out = append(out, f)
	}
	return out, nil
}

func (d *effectDoc) effect() (combat.Effect, error) {
	if err := oneOf("effect", d.Damage != nil, d.DamageWithLifesteal != nil, d.Heal != nil,
		d.GainStamina != nil, d.Condition != nil); err != nil {
		return nil, err
	}
	switch {
	case d.Damage != nil:
		return combat.Damage{Amount: *d.Damage}, nil
	case d.DamageWithLifesteal != nil:
		return combat.DamageWithLifesteal{Amount: *d.DamageWithLifesteal}, nil
	case d.Heal != nil:
		return combat.Heal{Amount: *d.Heal}, nil
	case d.GainStamina != nil:
		return combat.GainStamina{Amount: *d.GainStamina}, nil
	default:
		return combat.Grant(d.Condition.Kind, d.Condition.Value), nil
	}
}

func (d *areaEffectDoc) areaEffect() (combat.AreaEffect, error) {
	var out combat.AreaEffect
	if d.Area != nil {
		disk, err := d.Area.disk()
		if err != nil {
			return out, fmt.Errorf("area: %w", err)
		}
		out.Area = disk
	}
	if d.Filter != nil {
		f, err := d.Filter.filter()
		if err != nil {
			return out, err
		}
		out.Filter = f
	}
	out.Effects = make([]combat.Effect, 0, len(d.Effects))
	for i := range d.Effects {
		e, err := d.Effects[i].effect()
		if err != nil {
			return out, fmt.Errorf("effects[%d]: %w", i, err)
		}
		out.Effects = append(out.Effects, e)
	}
	return out, nil
}

func areaEffects(docs []areaEffectDoc) ([]combat.AreaEffect, error) {
	out := make([]combat.AreaEffect, 0, len(docs))
	for i := range docs {
		ae, err := docs[i].areaEffect()
		if err != nil {
			return nil, fmt.Errorf("effects[%d]: %w", i, err)
		}
		out = append(out, ae)
	}
	return out, nil
}

func (d *actionDoc) action() (combat.Action, error) {
	if err := oneOf("action", d.Self != nil, d.Targeted != nil, d.Move != nil); err != nil {
		return nil, err
	}
	switch {
	case d.Self != nil:
		effects, err := areaEffects(d.Self.Effects)
		if err != nil {
			return nil, fmt.Errorf("self: %w", err)
		}
		return combat.SelfAction{Effects: effects, Attack: d.Self.Attack}, nil
	case d.Targeted != nil:
		reach := combat.Melee()
		if d.Targeted.Range != nil {
			if *d.Targeted.Range < 1 {
				return nil, fmt.Errorf("targeted: range %d must be >= 1", *d.Targeted.Range)
			}
			reach = combat.Ranged(*d.Targeted.Range)
		}
		effects, err := areaEffects(d.Targeted.Effects)
		if err != nil {
			return nil, fmt.Errorf("targeted: %w", err)
		}
		return combat.TargetedAction{Reach: reach, Effects: effects}, nil
	default:
		return combat.MoveAction{Spaces: d.Move.Spaces, Jump: d.Move.Jump}, nil
	}
}

func (d *preconditionDoc) precondition() (combat.Precondition, error) {
	if err := oneOf("precondition", d.FilteredCount != nil, d.TurnStat != nil); err != nil {
		return nil, err
	}
	if fc := d.FilteredCount; fc != nil {
		f, err := fc.Filter.filter()
		if err != nil {
			return nil, fmt.Errorf("filtered_count: %w", err)
		}
		cmp, err := combat.ParseComparison(fc.Comparison)
		if err != nil {
			return nil, fmt.Errorf("filtered_count: %w", err)
		}
		return combat.FilteredCount{Filter: f, Comparison: cmp, Value: fc.Value}, nil
	}
	ts := d.TurnStat
	if ts.TurnsAgo < 0 {
		return nil, fmt.Errorf("turn_stat: turns_ago %d must be >= 0", ts.TurnsAgo)
	}
	stat, err := turnstat.Parse(ts.Stat)
	if err != nil {
		return nil, fmt.Errorf("turn_stat: %w", err)
	}
	cmp, err := combat.ParseComparison(ts.Comparison)
	if err != nil {
		return nil, fmt.Errorf("turn_stat: %w", err)
	}
	return combat.TurnStat{TurnsAgo: ts.TurnsAgo, Stat: stat, Comparison: cmp, Value: ts.Value}, nil
}

func (d *abilityDoc) ability() (combat.Ability, error) {
	var out combat.Ability
	if d.Precondition != nil {
		p, err := d.Precondition.precondition()
		if err != nil {
			return out, err
		}
		out.Precondition = p
	}
	out.Actions = make([]combat.Action, 0, len(d.Actions))
	for i := range d.Actions {
		a, err := d.Actions[i].action()
		if err != nil {
			return out, fmt.Errorf("actions[%d]: %w", i, err)
		}
		out.Actions = append(out.Actions, a)
	}
	return out, nil
}

func abilities(docs []abilityDoc) ([]combat.Ability, error) {
	out := make([]combat.Ability, 0, len(docs))
	for i := range docs {
		a, err := docs[i].ability()
		if err != nil {
			return nil, fmt.Errorf("abilities[%d]: %w", i, err)
		}
		out = append(out, a)
	}
	return out, nil
}

func (d *modifierDoc) modifier() condition.Modifier {
	mult := 1.0
	if d.Multiplicative != nil {
		mult = *d.Multiplicative
	}
	return condition.Modifier{
		AppliesOnlyTo:  d.AppliesOnlyTo,
		TransformInto:  d.TransformInto,
		Additive:       d.Additive,
		Multiplicative: mult,
	}
}
