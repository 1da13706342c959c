package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samshaps/meal-planner/internal/ingredient"
)

func qty(v float64) *float64 { return &v }

func TestLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		entry *ingredient.Aggregated
		want  string
	}{
		{
			name: "count entry with unit label and prep note",
			entry: &ingredient.Aggregated{
				DisplayName:   "Garlic",
				TotalQuantity: qty(3),
				BaseUnit:      ingredient.Count,
				UnitLabel:     "cloves",
				Lines: []ingredient.Parsed{
					{PrepNote: "minced"},
					{PrepNote: "minced"},
				},
			},
			want: "3 cloves Garlic (minced)",
		},
		{
			name: "tbsp total promotes to cups",
			entry: &ingredient.Aggregated{
				DisplayName:   "Olive Oil",
				TotalQuantity: qty(48),
				BaseUnit:      ingredient.Tbsp,
			},
			want: "3 cups Olive Oil",
		},
		{
			name: "no quantity renders name only",
			entry: &ingredient.Aggregated{
				DisplayName: "Salt and black pepper",
			},
			want: "Salt and black pepper",
		},
		{
			name: "fractional quantity keeps its decimals",
			entry: &ingredient.Aggregated{
				DisplayName:   "Lemons",
				TotalQuantity: qty(2.5),
				BaseUnit:      ingredient.Count,
			},
			want: "2.5 Lemons",
		},
		{
			name: "distinct prep notes joined in order",
			entry: &ingredient.Aggregated{
				DisplayName:   "Onion",
				TotalQuantity: qty(2),
				BaseUnit:      ingredient.Count,
				Lines: []ingredient.Parsed{
					{PrepNote: "diced"},
					{PrepNote: "thinly sliced"},
				},
			},
			want: "2 Onion (diced, thinly sliced)",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Line(tc.entry))
		})
	}
}

func TestText_SectionOrderAndGrouping(t *testing.T) {
	t.Parallel()

	items := []*ingredient.Aggregated{
		{DisplayName: "Cumin", Section: ingredient.SectionSpices, TotalQuantity: qty(1), BaseUnit: ingredient.Tsp},
		{DisplayName: "Garlic", Section: ingredient.SectionProduce, TotalQuantity: qty(3), BaseUnit: ingredient.Count, UnitLabel: "cloves"},
		{DisplayName: "Salmon", Section: ingredient.SectionMeatFish, TotalQuantity: qty(2), BaseUnit: ingredient.Count, UnitLabel: "fillets"},
		{DisplayName: "Mystery Item"},
	}

	out := Text(items)

	// Sections appear in fixed order; the uncategorized entry lands in
	// Other at the end.
	produceIdx := strings.Index(out, "Produce:")
	meatIdx := strings.Index(out, "Meat/Fish:")
	spicesIdx := strings.Index(out, "Spices:")
	otherIdx := strings.Index(out, "Other:")
	require.NotEqual(t, -1, produceIdx)
	require.NotEqual(t, -1, meatIdx)
	require.NotEqual(t, -1, spicesIdx)
	require.NotEqual(t, -1, otherIdx)
	assert.Less(t, produceIdx, meatIdx)
	assert.Less(t, meatIdx, spicesIdx)
	assert.Less(t, spicesIdx, otherIdx)

	assert.Contains(t, out, "- 3 cloves Garlic\n")
	assert.Contains(t, out, "- 2 fillets Salmon\n")
	assert.Contains(t, out, "- 1 tsp Cumin\n")
	assert.Contains(t, out, "- Mystery Item\n")

	// Empty sections are omitted entirely.
	assert.NotContains(t, out, "Dairy:")
	assert.NotContains(t, out, "Dry Goods:")
}

func TestText_Empty(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", Text(nil))
}
