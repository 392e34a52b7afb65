package handler

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"testing"

	"github.com/ecotriz/cee-visits/internal/core/cee"
)

func TestCalculatorHandler_Operations(t *testing.T) {
	h := NewCalculatorHandler(8.5)

	c, rec := newTestContext(http.MethodGet, "/v1/calculator/operations", "")
	if err := h.Operations(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data []cee.OperationType `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data) != 7 {
		t.Fatalf("expected 7 operation types, got %d", len(resp.Data))
	}
	for _, op := range resp.Data {
		if op.Code == "" || op.Unit == "" || op.Forfait <= 0 {
			t.Fatalf("incomplete operation sheet: %+v", op)
		}
	}
}

func TestCalculatorHandler_Estimate(t *testing.T) {
	h := NewCalculatorHandler(8.5)

	// 100 m² of roof insulation in H1: 100 × 5.5 × 1.2 × 1000 = 660000 cumac,
	// worth 660000 × 8.5 / 1000 = 5610 €.
	body := `{"entries":[{"type_code":"BAT-EN-101","quantity":100,"zone":"H1"}]}`
	c, rec := newTestContext(http.MethodPost, "/v1/calculator/estimate", body)

	if err := h.Estimate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp cee.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if math.Abs(resp.TotalKWhCumac-660000) > 1e-6 {
		t.Fatalf("expected 660000 cumac, got %f", resp.TotalKWhCumac)
	}
	if math.Abs(resp.TotalValueEUR-5610) > 1e-6 {
		t.Fatalf("expected 5610 EUR, got %f", resp.TotalValueEUR)
	}
}

func TestCalculatorHandler_Estimate_ItemizedErrors(t *testing.T) {
	h := NewCalculatorHandler(8.5)

	body := `{"entries":[{"type_code":"NOPE","quantity":-1,"zone":"H9"}]}`
	c, _ := newTestContext(http.MethodPost, "/v1/calculator/estimate", body)

	err := h.Estimate(c)
	var ve *cee.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected cee.ValidationError, got %T: %v", err, err)
	}
	if len(ve.Fields) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %+v", len(ve.Fields), ve.Fields)
	}
	if ve.Fields[0].Field != "entries[0].type_code" {
		t.Fatalf("expected indexed field path, got %q", ve.Fields[0].Field)
	}
}

func TestCalculatorHandler_Estimate_EmptyEntries(t *testing.T) {
	h := NewCalculatorHandler(8.5)

	c, _ := newTestContext(http.MethodPost, "/v1/calculator/estimate", `{"entries":[]}`)
	err := h.Estimate(c)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}
