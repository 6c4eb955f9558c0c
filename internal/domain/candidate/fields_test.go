package candidate_test

import (
	"errors"
	"testing"

	domain "github.com/talentbase/candidate-import/internal/domain/candidate"
)

func TestIsTarget(t *testing.T) {
	t.Parallel()

	if !domain.IsTarget("email") {
		t.Fatal("email must be a recognized target")
	}
	if !domain.IsTarget("full_name") {
		t.Fatal("full_name must be a recognized target")
	}
	if !domain.IsTarget("minimum_salary") {
		t.Fatal("minimum_salary must be a recognized target")
	}
	if domain.IsTarget("favorite_color") {
		t.Fatal("unknown identifier must not be a target")
	}
	if domain.IsTarget("") {
		t.Fatal("empty identifier must not be a target")
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		field string
		want  domain.FieldKind
	}{
		{"accepts_pj", domain.FieldBool},
		{"minimum_salary", domain.FieldCurrency},
		{"interview_date", domain.FieldDate},
		{"languages", domain.FieldList},
		{"city", domain.FieldText},
		{"not_a_field", domain.FieldText},
	}
	for _, tc := range cases {
		if got := domain.KindOf(tc.field); got != tc.want {
			t.Fatalf("KindOf(%q) = %v, want %v", tc.field, got, tc.want)
		}
	}
}

func TestParseDuplicateStrategy(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"skip", "update", "error"} {
		got, err := domain.ParseDuplicateStrategy(raw)
		if err != nil {
			t.Fatalf("expected %q to parse, got %v", raw, err)
		}
		if string(got) != raw {
			t.Fatalf("unexpected strategy: %s", got)
		}
	}

	_, err := domain.ParseDuplicateStrategy("merge")
	if err == nil {
		t.Fatal("expected error for unknown strategy")
	}
	if !errors.Is(err, domain.ErrInvalidDuplicateStrategy) {
		t.Fatalf("expected ErrInvalidDuplicateStrategy, got %v", err)
	}
}
