// Package cee computes energy-savings credits (kWh cumac) and their monetary
// value for standardized CEE operations. It is pure: no persistence, no I/O.
package cee

import (
	"fmt"
	"strings"
)

// Climate zones and their multipliers. Colder zones (H1) yield
// proportionally higher savings per unit.
const (
	ZoneH1 = "H1"
	ZoneH2 = "H2"
	ZoneH3 = "H3"
)

var zoneMultipliers = map[string]float64{
	ZoneH1: 1.2,
	ZoneH2: 1.0,
	ZoneH3: 0.8,
}

// Entry is one operation to be valued: an operation type code, the quantity
// in the type's unit, and the climate zone of the site.
type Entry struct {
	TypeCode string  `json:"type_code"`
	Quantity float64 `json:"quantity"`
	Zone     string  `json:"zone"`
}

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every offending field found before computation.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return "invalid entries: " + strings.Join(msgs, "; ")
}

// EntryResult is one valued entry.
type EntryResult struct {
	Entry
	Unit     string  `json:"unit"`
	Forfait  float64 `json:"forfait"`
	KWhCumac float64 `json:"kwh_cumac"`
}

// Result is the valued set of entries with aggregate totals.
type Result struct {
	Entries       []EntryResult `json:"entries"`
	TotalKWhCumac float64       `json:"total_kwh_cumac"`
	TotalValueEUR float64       `json:"total_value_eur"`
	RatePerMWh    float64       `json:"rate_eur_per_mwh"`
}

// CreditAmount returns the kWh-cumac credit for a quantity of an operation
// with the given per-unit forfait in the given zone. The ×1000 scales the
// per-unit forfait into cumac units.
func CreditAmount(quantity, forfait float64, zone string) float64 {
	return quantity * forfait * zoneMultipliers[zone] * 1000
}

// MonetaryValue converts a kWh-cumac total into euros at a per-MWh rate.
func MonetaryValue(totalCumac, ratePerMWh float64) float64 {
	return totalCumac * (ratePerMWh / 1000)
}

// Validate checks every entry and returns a ValidationError itemizing all
// offending fields, or nil when the entries are computable.
func Validate(entries []Entry) error {
	var fields []FieldError
	for i, e := range entries {
		if _, ok := LookupType(e.TypeCode); !ok {
			fields = append(fields, FieldError{
				Field:   fmt.Sprintf("entries[%d].type_code", i),
				Message: fmt.Sprintf("unknown operation type %q", e.TypeCode),
			})
		}
		if e.Quantity <= 0 {
			fields = append(fields, FieldError{
				Field:   fmt.Sprintf("entries[%d].quantity", i),
				Message: "must be greater than 0",
			})
		}
		if _, ok := zoneMultipliers[e.Zone]; !ok {
			fields = append(fields, FieldError{
				Field:   fmt.Sprintf("entries[%d].zone", i),
				Message: fmt.Sprintf("unknown climate zone %q", e.Zone),
			})
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Compute validates the entries, then values each one and aggregates the
// total credit and its monetary value at ratePerMWh.
func Compute(entries []Entry, ratePerMWh float64) (*Result, error) {
	if err := Validate(entries); err != nil {
		return nil, err
	}

	res := &Result{
		Entries:    make([]EntryResult, 0, len(entries)),
		RatePerMWh: ratePerMWh,
	}
	for _, e := range entries {
		op, _ := LookupType(e.TypeCode)
		amount := CreditAmount(e.Quantity, op.Forfait, e.Zone)
		res.Entries = append(res.Entries, EntryResult{
			Entry:    e,
			Unit:     op.Unit,
			Forfait:  op.Forfait,
			KWhCumac: amount,
		})
		res.TotalKWhCumac += amount
	}
	res.TotalValueEUR = MonetaryValue(res.TotalKWhCumac, ratePerMWh)
	return res, nil
}
