// Package aggregate groups parsed ingredient lines across recipes into one
// deduplicated grocery entry per (canonical name, base unit) pair, and
// humanizes the resulting totals for display. Aggregation is a pure
// function of its input records: the set of produced entries is
// independent of input order, while each entry's contributing lines keep
// their original relative order for traceability.
package aggregate

import (
	"strings"

	"github.com/samshaps/meal-planner/internal/ingredient"
)

// SaltAndPepperKey is the forced-collapse canonical key: every salt/pepper
// variant folds into one entry with no quantity, regardless of base unit.
const SaltAndPepperKey = "salt and pepper"

// saltAndPepperDisplay is the fixed display-name override for that entry.
const saltAndPepperDisplay = "Salt and black pepper"

// Aggregate reduces parsed records into grocery entries. Every input
// record lands in exactly one entry.
func Aggregate(records []ingredient.Parsed) []*ingredient.Aggregated {
	var order []string
	groups := make(map[string]*ingredient.Aggregated)
	sums := make(map[string]float64)
	counted := make(map[string]bool)

	for _, rec := range records {
		key := rec.GroupKey()
		if rec.CanonicalName == SaltAndPepperKey {
			// Salt and pepper merges across base units; quantity is
			// never summed or displayed for it.
			key = SaltAndPepperKey
		}

		g, ok := groups[key]
		if !ok {
			g = &ingredient.Aggregated{
				CanonicalName: rec.CanonicalName,
				BaseName:      rec.BaseName,
				DisplayName:   titleCase(rec.BaseName),
				BaseUnit:      rec.BaseUnit,
			}
			if rec.CanonicalName == SaltAndPepperKey {
				g.DisplayName = saltAndPepperDisplay
				g.BaseUnit = ingredient.None
				// Pre-seeded; the categorizer may confirm or override.
				g.Section = ingredient.SectionSpices
			}
			groups[key] = g
			order = append(order, key)
		}
		g.Lines = append(g.Lines, rec)

		if g.CanonicalName == SaltAndPepperKey {
			continue
		}
		// Count groups display the first contributing line's unit token
		// verbatim ("cloves", "lbs"); nothing can be synthesized later.
		if g.UnitLabel == "" && g.BaseUnit == ingredient.Count && rec.Unit != "" {
			g.UnitLabel = rec.Unit
		}
		if rec.QuantityInBase != nil {
			sums[key] += *rec.QuantityInBase
			counted[key] = true
		}
	}

	out := make([]*ingredient.Aggregated, 0, len(order))
	for _, key := range order {
		g := groups[key]
		if counted[key] {
			total := sums[key]
			g.TotalQuantity = &total
		}
		out = append(out, g)
	}
	return out
}

// FormattedQuantity is a display-ready quantity/unit pair.
type FormattedQuantity struct {
	Quantity float64
	Unit     string
}

// FormatQuantity humanizes a total for display. It is a pure function of
// its arguments and never mutates the aggregated entry:
//
//   - tbsp totals of a cup or more render as whole cups; remainder
//     tablespoons are discarded (known lossy behavior, kept as-is).
//   - tsp totals of 3 or more render as tablespoons when evenly divisible.
//   - cup labels pluralize when the total is not exactly 1.
//   - count groups render the caller-supplied unit label verbatim.
func FormatQuantity(total float64, base ingredient.BaseUnit, unitLabel string) FormattedQuantity {
	switch base {
	case ingredient.Tbsp:
		if total >= 16 {
			cups := float64(int(total / 16))
			return FormattedQuantity{Quantity: cups, Unit: pluralizeCup(cups)}
		}
		return FormattedQuantity{Quantity: total, Unit: "tbsp"}
	case ingredient.Tsp:
		if total >= 3 && total == float64(int(total)) && int(total)%3 == 0 {
			return FormattedQuantity{Quantity: total / 3, Unit: "tbsp"}
		}
		return FormattedQuantity{Quantity: total, Unit: "tsp"}
	case ingredient.Cup:
		return FormattedQuantity{Quantity: total, Unit: pluralizeCup(total)}
	case ingredient.Count:
		return FormattedQuantity{Quantity: total, Unit: unitLabel}
	default:
		return FormattedQuantity{Quantity: total}
	}
}

func pluralizeCup(n float64) string {
	if n == 1 {
		return "cup"
	}
	return "cups"
}

// Minor words kept lowercase inside a title-cased display name.
var minorWords = map[string]struct{}{
	"and": {}, "or": {}, "of": {}, "with": {}, "in": {}, "for": {},
}

// titleCase builds the human-presentable display name from a base name.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		if i > 0 {
			if _, minor := minorWords[w]; minor {
				continue
			}
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
