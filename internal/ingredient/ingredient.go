// Package ingredient defines the data model shared by the grocery-list
// pipeline: parsed ingredient lines, aggregated entries, base units, and
// grocery sections.
package ingredient

// BaseUnit is the reduced measurement space every recognized unit token
// collapses into. Volume units become tsp or tbsp; everything countable
// becomes Count; lines with no quantity at all carry None.
type BaseUnit string

const (
	Tsp   BaseUnit = "tsp"
	Tbsp  BaseUnit = "tbsp"
	Cup   BaseUnit = "cup"
	Count BaseUnit = "unit"
	None  BaseUnit = "none"
)

// Section is one of the seven fixed grocery-store categories.
type Section string

const (
	SectionProduce  Section = "Produce"
	SectionMeatFish Section = "Meat/Fish"
	SectionDryGoods Section = "Dry Goods"
	SectionDairy    Section = "Dairy"
	SectionSpices   Section = "Spices"
	SectionPantry   Section = "Pantry"
	SectionOther    Section = "Other"
)

// Sections lists every valid section value.
var Sections = []Section{
	SectionProduce,
	SectionMeatFish,
	SectionDryGoods,
	SectionDairy,
	SectionSpices,
	SectionPantry,
	SectionOther,
}

// ValidSection reports whether s is one of the seven known sections.
func ValidSection(s string) bool {
	for _, sec := range Sections {
		if string(sec) == s {
			return true
		}
	}
	return false
}

// Parsed is one structured ingredient record, produced once per input line
// by the line parser and immutable thereafter.
//
// Quantity fields are pointers: nil means "no quantity on this line", which
// is different from zero. If BaseUnit is None, QuantityInBase is always nil.
// If a quantity is present but the line carried no unit token, BaseUnit is
// Count (the line is treated as a count of items).
type Parsed struct {
	RawText        string   `json:"raw_text"`
	FullName       string   `json:"full_name"`
	BaseName       string   `json:"base_name"`
	PrepNote       string   `json:"prep_note,omitempty"`
	CanonicalName  string   `json:"canonical_name"`
	Quantity       *float64 `json:"quantity,omitempty"`
	Unit           string   `json:"unit,omitempty"`
	BaseUnit       BaseUnit `json:"base_unit"`
	QuantityInBase *float64 `json:"quantity_in_base,omitempty"`
}

// GroupKey is the aggregation grouping key. Two lines merge only when both
// the canonical name and the base unit agree.
func (p Parsed) GroupKey() string {
	return p.CanonicalName + "::" + string(p.BaseUnit)
}

// Aggregated is one grocery-list entry: all parsed lines sharing a group
// key, with their quantities reconciled. Section is assigned once by the
// categorizer; every other field is set during aggregation.
type Aggregated struct {
	CanonicalName string   `json:"canonical_name"`
	BaseName      string   `json:"base_name"`
	DisplayName   string   `json:"display_name"`
	TotalQuantity *float64 `json:"total_quantity,omitempty"`
	BaseUnit      BaseUnit `json:"base_unit"`
	// UnitLabel is the first contributing line's unit token as written
	// ("cloves", "lbs"). Only meaningful for Count groups, where no unit
	// text can be synthesized from the base unit alone.
	UnitLabel string   `json:"unit_label,omitempty"`
	Lines     []Parsed `json:"lines"`
	Section   Section  `json:"section,omitempty"`
}
