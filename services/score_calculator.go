package services

import (
	"gym-scoring-system/apperrors"

	"github.com/shopspring/decimal"
)

var (
	minPanelScore = decimal.Zero
	maxPanelScore = decimal.NewFromInt(10)
)

// Compute returns max(0, difficulty + execution - deductions) at full
// precision. difficulty and execution must lie in [0, 10]; deductions must
// not be negative.
func Compute(difficulty, execution, deductions decimal.Decimal) (decimal.Decimal, error) {
	if difficulty.LessThan(minPanelScore) || difficulty.GreaterThan(maxPanelScore) {
		return decimal.Zero, apperrors.NewValidation("difficulty", "must be between 0 and 10")
	}
	if execution.LessThan(minPanelScore) || execution.GreaterThan(maxPanelScore) {
		return decimal.Zero, apperrors.NewValidation("execution", "must be between 0 and 10")
	}
	if deductions.IsNegative() {
		return decimal.Zero, apperrors.NewValidation("deductions", "must be >= 0")
	}

	final := difficulty.Add(execution).Sub(deductions)
	if final.IsNegative() {
		return decimal.Zero, nil
	}
	return final, nil
}

// FormatScore renders a score with one decimal place.
func FormatScore(d decimal.Decimal) string {
	return d.StringFixed(1)
}

// ParseScore parses a decimal score string. Empty input is zero.
func ParseScore(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, apperrors.NewValidation(field, "must be a decimal number")
	}
	return d, nil
}
