package query

import (
	"regexp"
	"strconv"
	"strings"
)

// Op is a comparison operator of a numeric Constraint.
type Op string

const (
	OpLT  Op = "lt"
	OpLTE Op = "lte"
	OpGT  Op = "gt"
	OpGTE Op = "gte"
	OpEQ  Op = "eq"
)

// Constraint is a single (operator, bound) pair.
type Constraint struct {
	Op    Op      `json:"op"`
	Value float64 `json:"value"`
}

var (
	comparisonPattern = regexp.MustCompile(`^(<=|>=|<|>|=)?\s*([0-9.]+)$`)

	symbolOps = map[string]Op{
		"<":  OpLT,
		"<=": OpLTE,
		">":  OpGT,
		">=": OpGTE,
		"=":  OpEQ,
		"":   OpEQ,
	}
)

// Parse turns a comparison expression such as ">=4.5" or "30" into a
// Constraint. It reports false for empty or malformed input; callers treat
// that exactly like an absent filter.
func Parse(raw string) (Constraint, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Constraint{}, false
	}

	m := comparisonPattern.FindStringSubmatch(raw)
	if m == nil {
		return Constraint{}, false
	}

	value, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		// "1.2.3", "." and friends pass the pattern but are not numbers.
		return Constraint{}, false
	}

	return Constraint{Op: symbolOps[m[1]], Value: value}, true
}

// Holds reports whether v satisfies the constraint.
func (c Constraint) Holds(v float64) bool {
	switch c.Op {
	case OpLT:
		return v < c.Value
	case OpLTE:
		return v <= c.Value
	case OpGT:
		return v > c.Value
	case OpGTE:
		return v >= c.Value
	case OpEQ:
		return v == c.Value
	default:
		return false
	}
}
