package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hrform/internal/domain/employee"
	"hrform/internal/transport/http/api"
)

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","salary":1}`))
	rec := httptest.NewRecorder()
	if DecodeJSON(rec, req, &dst, "r1") {
		t.Fatal("expected decode failure")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDecodeJSONTooLarge(t *testing.T) {
	var dst map[string]string
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"`+strings.Repeat("a", 64)+`"}`))
	req.Body = http.MaxBytesReader(rec, req.Body, 16)
	if DecodeJSON(rec, req, &dst, "r1") {
		t.Fatal("expected decode failure")
	}
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestRejectDraft(t *testing.T) {
	rec := httptest.NewRecorder()
	draft := employee.DefaultDraft()
	draft.PaymentMethod = employee.PaymentOnline
	if !RejectDraft(rec, draft, "r1") {
		t.Fatal("expected rejection")
	}
	var env api.Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Error.Code != "validation_error" || env.Error.Message != employee.MsgRequiredFields {
		t.Fatalf("unexpected error %+v", env.Error)
	}

	valid := employee.Draft{Name: "Ana", Position: "Clerk", HourlyWage: "10", FNPFNo: "F1", PaymentMethod: employee.PaymentCash, Branch: employee.BranchSuva}
	if RejectDraft(httptest.NewRecorder(), valid, "r1") {
		t.Fatal("valid draft rejected")
	}
}
