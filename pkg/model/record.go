package model

import "encoding/json"

// CombinationRecord is one ranked result block extracted from a solver
// report log. Records are immutable once produced and carry no reference
// back to the source file.
type CombinationRecord struct {
	// Rank is the 1-based position printed in the report header. It is
	// preserved exactly as found: duplicates and gaps are not repaired.
	Rank int `json:"rank"`

	// TotalLine is the "total attribute value" line, verbatim.
	TotalLine string `json:"total,omitempty"`

	// PowerLine is the "combat power" line, verbatim.
	PowerLine string `json:"power,omitempty"`

	// Modules lists the module lines of the block in report order.
	Modules []string `json:"modules"`

	// AttrDist lists the attribute distribution lines in report order.
	AttrDist []string `json:"attrs"`
}

// CanonicalBytes returns the deterministic serialization of the record used
// for content addressing. Field order is fixed by the struct definition, so
// two records with equal field values serialize identically no matter how
// they were assembled. Nil and empty slices serialize the same way.
func (r CombinationRecord) CanonicalBytes() ([]byte, error) {
	if r.Modules == nil {
		r.Modules = []string{}
	}
	if r.AttrDist == nil {
		r.AttrDist = []string{}
	}
	return json.Marshal(r)
}
