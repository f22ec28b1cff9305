package models

import "strings"

// Apparatus is one of the fixed events of the discipline.
type Apparatus string

const (
	ApparatusFloor Apparatus = "floor"
	ApparatusVault Apparatus = "vault"
	ApparatusBars  Apparatus = "bars"
	ApparatusBeam  Apparatus = "beam"
)

// ApparatusInfo describes a catalog entry.
type ApparatusInfo struct {
	Code  Apparatus `json:"code"`
	Name  string    `json:"name"`
	Order int       `json:"order"`
}

// ApparatusCatalog is immutable reference data, in competition order.
var ApparatusCatalog = []ApparatusInfo{
	{Code: ApparatusFloor, Name: "Floor", Order: 1},
	{Code: ApparatusVault, Name: "Vault", Order: 2},
	{Code: ApparatusBars, Name: "Bars", Order: 3},
	{Code: ApparatusBeam, Name: "Beam", Order: 4},
}

// ParseApparatus resolves a code or display name ("Floor", "floor") to a
// catalog entry.
func ParseApparatus(s string) (Apparatus, bool) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, info := range ApparatusCatalog {
		if string(info.Code) == needle {
			return info.Code, true
		}
	}
	return "", false
}

// Order returns the catalog position of a, or 0 if unknown.
func (a Apparatus) Order() int {
	for _, info := range ApparatusCatalog {
		if info.Code == a {
			return info.Order
		}
	}
	return 0
}
