// Package render turns sectioned grocery entries into the plain-text list
// shown to the user: sections in a fixed store-walking order, one bulleted
// line per entry.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samshaps/meal-planner/internal/aggregate"
	"github.com/samshaps/meal-planner/internal/ingredient"
)

// SectionOrder is the fixed display order for sections.
var SectionOrder = []ingredient.Section{
	ingredient.SectionProduce,
	ingredient.SectionMeatFish,
	ingredient.SectionDairy,
	ingredient.SectionDryGoods,
	ingredient.SectionPantry,
	ingredient.SectionSpices,
	ingredient.SectionOther,
}

// Text renders the bulleted grocery list. Sections with no entries are
// omitted; entries keep their aggregation order within a section.
func Text(items []*ingredient.Aggregated) string {
	bySection := make(map[ingredient.Section][]*ingredient.Aggregated)
	for _, it := range items {
		sec := it.Section
		if sec == "" {
			sec = ingredient.SectionOther
		}
		bySection[sec] = append(bySection[sec], it)
	}

	var b strings.Builder
	for _, sec := range SectionOrder {
		entries := bySection[sec]
		if len(entries) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s:\n", sec)
		for _, e := range entries {
			b.WriteString("- ")
			b.WriteString(Line(e))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Line renders a single entry: quantity and unit when known, the display
// name, and any prep notes from the contributing lines.
func Line(e *ingredient.Aggregated) string {
	var parts []string
	if e.TotalQuantity != nil {
		f := aggregate.FormatQuantity(*e.TotalQuantity, e.BaseUnit, e.UnitLabel)
		parts = append(parts, formatNumber(f.Quantity))
		if f.Unit != "" {
			parts = append(parts, f.Unit)
		}
	}
	parts = append(parts, e.DisplayName)
	if notes := prepNotes(e); notes != "" {
		parts = append(parts, "("+notes+")")
	}
	return strings.Join(parts, " ")
}

// prepNotes collects the distinct preparation notes across contributing
// lines, first occurrence first.
func prepNotes(e *ingredient.Aggregated) string {
	seen := make(map[string]struct{})
	var notes []string
	for _, line := range e.Lines {
		n := strings.TrimSpace(line.PrepNote)
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		notes = append(notes, n)
	}
	return strings.Join(notes, ", ")
}

// formatNumber trims trailing zeros so 3.0 prints as "3" and 2.5 as "2.5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
