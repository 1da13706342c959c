package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samshaps/meal-planner/internal/ingredient"
)

func rec(canonical, base string, q *float64, unit string, bu ingredient.BaseUnit, inBase *float64) ingredient.Parsed {
	return ingredient.Parsed{
		RawText:        base,
		FullName:       base,
		BaseName:       base,
		CanonicalName:  canonical,
		Quantity:       q,
		Unit:           unit,
		BaseUnit:       bu,
		QuantityInBase: inBase,
	}
}

func qty(v float64) *float64 { return &v }

func TestAggregate_SumsSameKey(t *testing.T) {
	t.Parallel()

	records := []ingredient.Parsed{
		rec("garlic", "garlic", qty(2), "cloves", ingredient.Count, qty(2)),
		rec("garlic", "garlic", qty(2), "cloves", ingredient.Count, qty(2)),
	}
	got := Aggregate(records)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].TotalQuantity)
	assert.Equal(t, 4.0, *got[0].TotalQuantity)
	assert.Equal(t, ingredient.Count, got[0].BaseUnit)
	assert.Equal(t, "cloves", got[0].UnitLabel)
	assert.Equal(t, "Garlic", got[0].DisplayName)
	assert.Len(t, got[0].Lines, 2)
}

func TestAggregate_CupsSumInTbsp(t *testing.T) {
	t.Parallel()

	records := []ingredient.Parsed{
		rec("olive oil", "olive oil", qty(2), "cups", ingredient.Tbsp, qty(32)),
		rec("olive oil", "olive oil", qty(1), "cup", ingredient.Tbsp, qty(16)),
	}
	got := Aggregate(records)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].TotalQuantity)
	assert.Equal(t, 48.0, *got[0].TotalQuantity)

	f := FormatQuantity(*got[0].TotalQuantity, got[0].BaseUnit, got[0].UnitLabel)
	assert.Equal(t, 3.0, f.Quantity)
	assert.Equal(t, "cups", f.Unit)
}

func TestAggregate_DifferentBaseUnitsStaySeparate(t *testing.T) {
	t.Parallel()

	// "1 can" vs volume coconut milk is a known, accepted limitation:
	// the two entries must not merge.
	records := []ingredient.Parsed{
		rec("coconut milk", "coconut milk", qty(1), "can", ingredient.Count, qty(1)),
		rec("coconut milk", "coconut milk", qty(1), "cup", ingredient.Tbsp, qty(16)),
	}
	got := Aggregate(records)
	assert.Len(t, got, 2)
}

func TestAggregate_MixedQuantifiedGroup(t *testing.T) {
	t.Parallel()

	records := []ingredient.Parsed{
		rec("basil", "basil", qty(2), "bunches", ingredient.Count, qty(2)),
		rec("basil", "basil", nil, "", ingredient.Count, nil),
	}
	got := Aggregate(records)
	require.Len(t, got, 1)
	// Unquantified lines still contribute to Lines but not to the sum.
	require.NotNil(t, got[0].TotalQuantity)
	assert.Equal(t, 2.0, *got[0].TotalQuantity)
	assert.Len(t, got[0].Lines, 2)
}

func TestAggregate_NoQuantityGroup(t *testing.T) {
	t.Parallel()

	records := []ingredient.Parsed{
		rec("cilantro", "cilantro", nil, "", ingredient.None, nil),
	}
	got := Aggregate(records)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].TotalQuantity)
}

func TestAggregate_SaltAndPepperCollapse(t *testing.T) {
	t.Parallel()

	// Variants arrive with different base units and even quantities;
	// they still collapse to a single entry with no quantity.
	records := []ingredient.Parsed{
		rec("salt and pepper", "Salt and pepper", nil, "", ingredient.None, nil),
		rec("salt and pepper", "salt", qty(1), "tsp", ingredient.Tsp, qty(1)),
		rec("salt and pepper", "pepper", nil, "", ingredient.None, nil),
	}
	got := Aggregate(records)
	require.Len(t, got, 1)
	assert.Equal(t, "Salt and black pepper", got[0].DisplayName)
	assert.Nil(t, got[0].TotalQuantity)
	assert.Equal(t, ingredient.None, got[0].BaseUnit)
	assert.Equal(t, ingredient.SectionSpices, got[0].Section)
	assert.Len(t, got[0].Lines, 3)
}

func TestAggregate_OrderInsensitiveGrouping(t *testing.T) {
	t.Parallel()

	a := []ingredient.Parsed{
		rec("garlic", "garlic", qty(2), "cloves", ingredient.Count, qty(2)),
		rec("onion", "onion", qty(1), "", ingredient.Count, qty(1)),
		rec("garlic", "garlic", qty(1), "clove", ingredient.Count, qty(1)),
	}
	b := []ingredient.Parsed{a[2], a[1], a[0]}

	gotA := Aggregate(a)
	gotB := Aggregate(b)
	require.Len(t, gotA, 2)
	require.Len(t, gotB, 2)

	totals := func(entries []*ingredient.Aggregated) map[string]float64 {
		m := make(map[string]float64)
		for _, e := range entries {
			if e.TotalQuantity != nil {
				m[e.CanonicalName] = *e.TotalQuantity
			}
		}
		return m
	}
	assert.Equal(t, totals(gotA), totals(gotB))

	// Within a group, original relative line order is preserved.
	for _, e := range gotA {
		if e.CanonicalName == "garlic" {
			require.Len(t, e.Lines, 2)
			assert.Equal(t, "cloves", e.Lines[0].Unit)
			assert.Equal(t, "clove", e.Lines[1].Unit)
		}
	}
}

func TestFormatQuantity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		total     float64
		base      ingredient.BaseUnit
		unitLabel string
		wantQty   float64
		wantUnit  string
	}{
		{
			name:     "48 tbsp renders as 3 cups",
			total:    48,
			base:     ingredient.Tbsp,
			wantQty:  3,
			wantUnit: "cups",
		},
		{
			name:     "17 tbsp drops the remainder",
			total:    17,
			base:     ingredient.Tbsp,
			wantQty:  1,
			wantUnit: "cup",
		},
		{
			name:     "15 tbsp stays tbsp",
			total:    15,
			base:     ingredient.Tbsp,
			wantQty:  15,
			wantUnit: "tbsp",
		},
		{
			name:     "6 tsp promotes to 2 tbsp",
			total:    6,
			base:     ingredient.Tsp,
			wantQty:  2,
			wantUnit: "tbsp",
		},
		{
			name:     "4 tsp not evenly divisible stays tsp",
			total:    4,
			base:     ingredient.Tsp,
			wantQty:  4,
			wantUnit: "tsp",
		},
		{
			name:     "1 cup singular",
			total:    1,
			base:     ingredient.Cup,
			wantQty:  1,
			wantUnit: "cup",
		},
		{
			name:     "2 cups plural",
			total:    2,
			base:     ingredient.Cup,
			wantQty:  2,
			wantUnit: "cups",
		},
		{
			name:      "count group uses the original unit token",
			total:     4,
			base:      ingredient.Count,
			unitLabel: "cloves",
			wantQty:   4,
			wantUnit:  "cloves",
		},
		{
			name:    "count group without label has no unit text",
			total:   2,
			base:    ingredient.Count,
			wantQty: 2,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := FormatQuantity(tc.total, tc.base, tc.unitLabel)
			assert.Equal(t, tc.wantQty, got.Quantity)
			assert.Equal(t, tc.wantUnit, got.Unit)
		})
	}
}

func TestFormatQuantity_Idempotent(t *testing.T) {
	t.Parallel()

	// Formatting is a pure function; calling it twice with the same
	// arguments yields the same result.
	first := FormatQuantity(48, ingredient.Tbsp, "")
	second := FormatQuantity(48, ingredient.Tbsp, "")
	assert.Equal(t, first, second)
}
