package employee

import (
	"errors"
	"testing"
)

func TestDraftRoundTripKeepsIdentifierOut(t *testing.T) {
	emp := Employee{
		ID:                "1",
		Name:              "Ana",
		Position:          "Clerk",
		HourlyWage:        "10",
		FNPFNo:            "F1",
		BankCode:          "BSP",
		BankAccountNumber: "998877",
		PaymentMethod:     PaymentOnline,
		Branch:            BranchSuva,
	}

	draft := emp.Draft()
	if draft.Name != "Ana" || draft.BankAccountNumber != "998877" || draft.Branch != BranchSuva {
		t.Fatalf("draft lost fields: %+v", draft)
	}

	back := draft.WithID("1")
	if back != emp {
		t.Fatalf("expected %+v, got %+v", emp, back)
	}
}

func TestDraftSetAndGet(t *testing.T) {
	draft := DefaultDraft()
	for _, field := range Fields {
		if err := draft.Set(field, "v-"+string(field)); err != nil {
			t.Fatalf("set %s: %v", field, err)
		}
		if got := draft.Get(field); got != "v-"+string(field) {
			t.Fatalf("field %s: got %q", field, got)
		}
	}
}

func TestDraftSetUnknownField(t *testing.T) {
	draft := DefaultDraft()
	err := draft.Set("salary", "1")
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if draft != DefaultDraft() {
		t.Fatalf("draft changed on unknown field: %+v", draft)
	}
}

func TestDefaultDraft(t *testing.T) {
	draft := DefaultDraft()
	if draft.PaymentMethod != PaymentCash || draft.Branch != BranchLabasa {
		t.Fatalf("unexpected defaults: %+v", draft)
	}
}

func TestStoreErrorKeepsMessage(t *testing.T) {
	err := WrapStoreError("update", errors.New("network down"))
	if err.Error() != "network down" {
		t.Fatalf("expected message as-is, got %q", err.Error())
	}
	var se *StoreError
	if !errors.As(err, &se) || se.Op != "update" {
		t.Fatalf("expected StoreError for update, got %#v", err)
	}
	if again := WrapStoreError("list", err); again != err {
		t.Fatal("wrapping twice should keep the original StoreError")
	}
	if WrapStoreError("list", nil) != nil {
		t.Fatal("nil error should stay nil")
	}
}
