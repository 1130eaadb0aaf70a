// Package dice evaluates the numeric fields of loot tables: literals, dice
// notation such as "2d6", and dice scaled by a constant such as "3d4*10".
package dice

import (
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
	"github.com/KirkDiggler/rpg-loot/internal/errors"
)

// MaxDiceCount bounds how many dice a single expression may roll
const MaxDiceCount = 1000

var (
	// Simple dice notation like "2d6", "1d20", "3d8"
	diceNotationRegex = regexp.MustCompile(`^(\d+)d(\d+)$`)

	// Dice scaled by a constant like "2d6*10" or "3d4/2"
	scaledNotationRegex = regexp.MustCompile(`^(\d+d\d+)\s*([*/])\s*(\d*\.?\d+)$`)
)

// Evaluator turns table amounts into numbers. It never fails: malformed
// input evaluates to 0.
type Evaluator interface {
	Evaluate(amount loot.Amount) float64
	EvaluateString(expr string) float64
}

// Config holds the dependencies for the evaluator
type Config struct {
	Roller toolkitdice.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	return vb.Build()
}

type evaluator struct {
	roller toolkitdice.Roller
}

// NewEvaluator creates an evaluator that rolls with the configured roller
func NewEvaluator(cfg *Config) (Evaluator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &evaluator{roller: cfg.Roller}, nil
}

// Evaluate returns literals unchanged and rolls expressions
func (e *evaluator) Evaluate(amount loot.Amount) float64 {
	if !amount.IsExpr() {
		if math.IsNaN(amount.Literal) || math.IsInf(amount.Literal, 0) {
			return 0
		}
		return amount.Literal
	}
	return e.EvaluateString(amount.Expr)
}

// EvaluateString evaluates "NdM", "NdM*k", "NdM/k" or a plain number
func (e *evaluator) EvaluateString(expr string) float64 {
	notation := strings.ToLower(strings.TrimSpace(expr))

	if matches := scaledNotationRegex.FindStringSubmatch(notation); matches != nil {
		base := e.EvaluateString(matches[1])
		scalar, err := strconv.ParseFloat(matches[3], 64)
		if err != nil {
			return 0
		}
		if matches[2] == "*" {
			return base * scalar
		}
		if scalar == 0 {
			slog.Debug("Dice expression divides by zero", "expr", expr)
			return 0
		}
		return base / scalar
	}

	if matches := diceNotationRegex.FindStringSubmatch(notation); matches != nil {
		count, errCount := strconv.Atoi(matches[1])
		size, errSize := strconv.Atoi(matches[2])
		if errCount != nil || errSize != nil {
			return 0
		}
		return float64(e.roll(count, size, expr))
	}

	value, err := strconv.ParseFloat(notation, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		slog.Debug("Unparsable amount evaluated as zero", "expr", expr)
		return 0
	}
	return value
}

// roll sums count independent draws in [1, size]
func (e *evaluator) roll(count, size int, expr string) int {
	if count <= 0 || size <= 0 {
		return 0
	}
	if count > MaxDiceCount {
		slog.Debug("Dice count over limit evaluated as zero", "expr", expr, "limit", MaxDiceCount)
		return 0
	}

	total := 0
	for i := 0; i < count; i++ {
		v, err := e.roller.Roll(size)
		if err != nil {
			slog.Debug("Dice roller failed", "expr", expr, "error", err)
			return 0
		}
		total += v
	}
	return total
}
