package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Expression is a parsed dice expression ready to be rolled.
//
// Invariant: Count >= 1, Sides >= 2, and at most one of KeepHighest and
// KeepLowest is non-zero, in which case it is below Count.
type Expression struct {
	Raw         string
	Count       int
	Sides       int
	Modifier    int
	KeepHighest int
	KeepLowest  int
}

var exprPattern = regexp.MustCompile(`^(\d*)d(\d+)(?:(kh|kl)(\d+))?([+-]\d+)?$`)

// Parse parses a dice expression such as "d20", "2d6+3", "4d6kh3" or "2d20kl1-1".
//
// Postcondition: Returns an Expression satisfying its invariant, or an error
// naming the offending part.
func Parse(expr string) (Expression, error) {
	m := exprPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(expr)))
	if m == nil {
		return Expression{}, fmt.Errorf("dice: malformed expression %q", expr)
	}
	e := Expression{Raw: expr, Count: 1}
	var err error
	if m[1] != "" {
		if e.Count, err = strconv.Atoi(m[1]); err != nil || e.Count < 1 {
			return Expression{}, fmt.Errorf("dice: die count in %q must be >= 1", expr)
		}
	}
	if e.Sides, err = strconv.Atoi(m[2]); err != nil || e.Sides < 2 {
		return Expression{}, fmt.Errorf("dice: die sides in %q must be >= 2", expr)
	}
	if m[3] != "" {
		keep, err := strconv.Atoi(m[4])
		if err != nil || keep < 1 || keep >= e.Count {
			return Expression{}, fmt.Errorf("dice: %s value in %q must be > 0 and < count %d", m[3], expr, e.Count)
		}
		if m[3] == "kh" {
			e.KeepHighest = keep
		} else {
			e.KeepLowest = keep
		}
	}
	if m[5] != "" {
		if e.Modifier, err = strconv.Atoi(m[5]); err != nil {
			return Expression{}, fmt.Errorf("dice: invalid modifier in %q: %w", expr, err)
		}
	}
	return e, nil
}

// MustParse parses expr and panics on error. Useful for package-level values.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic(err.Error())
	}
	return e
}

func (e Expression) kept() int {
	switch {
	case e.KeepHighest > 0:
		return e.KeepHighest
	case e.KeepLowest > 0:
		return e.KeepLowest
	default:
		return e.Count
	}
}

// Min returns the smallest total e can roll.
func (e Expression) Min() int { return e.kept() + e.Modifier }

// Max returns the largest total e can roll.
func (e Expression) Max() int { return e.kept()*e.Sides + e.Modifier }
