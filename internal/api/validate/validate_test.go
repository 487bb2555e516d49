package validate

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRequired(t *testing.T) {
	if Required("name", "ok") != nil {
		t.Error("non-empty value flagged")
	}
	if ef := Required("name", "   "); ef == nil || ef.Field != "name" {
		t.Error("blank value not flagged")
	}
}

func TestPositiveAmount(t *testing.T) {
	if PositiveAmount("amount", decimal.NewFromInt(1)) != nil {
		t.Error("positive amount flagged")
	}
	if PositiveAmount("amount", decimal.Zero) == nil {
		t.Error("zero amount not flagged")
	}
	if PositiveAmount("amount", decimal.NewFromInt(-3)) == nil {
		t.Error("negative amount not flagged")
	}
}

func TestErrsError(t *testing.T) {
	errs := Errs{
		{Field: "amount", Msg: "must be > 0"},
		{Field: "type", Msg: "required"},
	}
	want := "amount: must be > 0; type: required"
	if errs.Error() != want {
		t.Errorf("Error() = %q, want %q", errs.Error(), want)
	}
}
