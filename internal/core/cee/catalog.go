package cee

// OperationType describes one standardized CEE operation sheet: the unit the
// quantity is expressed in and the per-unit forfait used to compute the
// energy-savings credit.
type OperationType struct {
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	Unit    string  `json:"unit"`
	Forfait float64 `json:"forfait"`
}

// catalog is the fixed set of operation sheets supported by the platform.
var catalog = []OperationType{
	{Code: "BAT-TH-102", Name: "Chaudière collective haute performance énergétique", Unit: "kW", Forfait: 4.2},
	{Code: "BAT-TH-113", Name: "Pompe à chaleur de type air/eau ou eau/eau", Unit: "kW", Forfait: 5.8},
	{Code: "BAT-TH-116", Name: "Système de gestion technique du bâtiment", Unit: "m²", Forfait: 7.2},
	{Code: "BAT-EN-101", Name: "Isolation de combles ou de toitures", Unit: "m²", Forfait: 5.5},
	{Code: "BAT-EN-102", Name: "Isolation des murs", Unit: "m²", Forfait: 6.3},
	{Code: "BAT-EN-103", Name: "Isolation d'un plancher", Unit: "m²", Forfait: 5.8},
	{Code: "BAT-EQ-127", Name: "Luminaire LED", Unit: "W remplacés", Forfait: 0.4},
}

var catalogByCode = func() map[string]OperationType {
	m := make(map[string]OperationType, len(catalog))
	for _, op := range catalog {
		m[op.Code] = op
	}
	return m
}()

// Catalog returns the supported operation types in a stable order.
func Catalog() []OperationType {
	out := make([]OperationType, len(catalog))
	copy(out, catalog)
	return out
}

// LookupType returns the operation sheet for a code.
func LookupType(code string) (OperationType, bool) {
	op, ok := catalogByCode[code]
	return op, ok
}
