package services

import (
	"math/rand"
	"testing"

	"gym-scoring-system/apperrors"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name                 string
		diff, exec, ded, out string
	}{
		{"typical routine", "5.0", "8.5", "1.0", "12.5"},
		{"clamped at zero", "2.0", "3.0", "10.0", "0"},
		{"exactly zero", "2.0", "3.0", "5.0", "0"},
		{"no deductions", "10", "10", "0", "20"},
		{"full precision kept", "4.35", "8.125", "0.3", "12.175"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(d(tt.diff), d(tt.exec), d(tt.ded))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(d(tt.out)) {
				t.Fatalf("Compute() = %s, want %s", got, tt.out)
			}
		})
	}
}

func TestComputeRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name            string
		diff, exec, ded string
		field           string
	}{
		{"difficulty above 10", "10.1", "8", "0", "difficulty"},
		{"negative difficulty", "-0.1", "8", "0", "difficulty"},
		{"execution above 10", "5", "11", "0", "execution"},
		{"negative execution", "5", "-1", "0", "execution"},
		{"negative deductions", "5", "8", "-0.5", "deductions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(d(tt.diff), d(tt.exec), d(tt.ded))
			v, ok := err.(*apperrors.Validation)
			if !ok {
				t.Fatalf("expected Validation, got %v", err)
			}
			if v.Field != tt.field {
				t.Fatalf("Field = %q, want %q", v.Field, tt.field)
			}
		})
	}
}

func TestComputeStaysWithinBounds(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		diff := decimal.NewFromInt(int64(r.Intn(101))).Shift(-1)
		exec := decimal.NewFromInt(int64(r.Intn(101))).Shift(-1)
		ded := decimal.NewFromInt(int64(r.Intn(251))).Shift(-1)

		got, err := Compute(diff, exec, ded)
		if err != nil {
			t.Fatalf("Compute(%s, %s, %s): %v", diff, exec, ded, err)
		}
		if got.IsNegative() || got.GreaterThan(diff.Add(exec)) {
			t.Fatalf("Compute(%s, %s, %s) = %s out of [0, d+e]", diff, exec, ded, got)
		}
	}
}

func TestFormatAndParseScore(t *testing.T) {
	if got := FormatScore(d("12.175")); got != "12.2" {
		t.Errorf("FormatScore = %s", got)
	}
	if got := FormatScore(decimal.Zero); got != "0.0" {
		t.Errorf("FormatScore(0) = %s", got)
	}
	if v, err := ParseScore("difficulty", ""); err != nil || !v.IsZero() {
		t.Errorf("empty input: %s, %v", v, err)
	}
	if _, err := ParseScore("difficulty", "abc"); apperrors.CodeOf(err) != apperrors.CodeValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}
