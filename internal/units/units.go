// Package units maps raw unit tokens from recipe lines to the reduced base
// unit space. The table is a static lookup built once at init; resolution
// never fails — unknown tokens degrade to the most permissive
// classification (a plain count) instead of erroring.
package units

import (
	"strings"

	"github.com/samshaps/meal-planner/internal/ingredient"
)

// Conversion describes how a raw unit token reduces to a base unit:
// quantity-as-written × Factor = quantity in base units.
type Conversion struct {
	Base   ingredient.BaseUnit
	Factor float64
}

// Volume units collapse to tbsp (1 cup = 16 tbsp). Teaspoons stay tsp and
// are not auto-promoted here, so no precision is lost at this layer; the
// display formatter promotes them later when the total divides evenly.
var table = map[string]Conversion{
	"tsp":         {ingredient.Tsp, 1},
	"tsps":        {ingredient.Tsp, 1},
	"teaspoon":    {ingredient.Tsp, 1},
	"teaspoons":   {ingredient.Tsp, 1},
	"tbsp":        {ingredient.Tbsp, 1},
	"tbsps":       {ingredient.Tbsp, 1},
	"tbs":         {ingredient.Tbsp, 1},
	"tablespoon":  {ingredient.Tbsp, 1},
	"tablespoons": {ingredient.Tbsp, 1},
	"cup":         {ingredient.Tbsp, 16},
	"cups":        {ingredient.Tbsp, 16},

	// Count-like units all map to a plain count with factor 1. They are
	// not convertible to each other; aggregation only sums same-unit
	// counts.
	"clove":    {ingredient.Count, 1},
	"cloves":   {ingredient.Count, 1},
	"can":      {ingredient.Count, 1},
	"cans":     {ingredient.Count, 1},
	"head":     {ingredient.Count, 1},
	"heads":    {ingredient.Count, 1},
	"bunch":    {ingredient.Count, 1},
	"bunches":  {ingredient.Count, 1},
	"fillet":   {ingredient.Count, 1},
	"fillets":  {ingredient.Count, 1},
	"breast":   {ingredient.Count, 1},
	"breasts":  {ingredient.Count, 1},
	"thigh":    {ingredient.Count, 1},
	"thighs":   {ingredient.Count, 1},
	"stalk":    {ingredient.Count, 1},
	"stalks":   {ingredient.Count, 1},
	"sprig":    {ingredient.Count, 1},
	"sprigs":   {ingredient.Count, 1},
	"slice":    {ingredient.Count, 1},
	"slices":   {ingredient.Count, 1},
	"piece":    {ingredient.Count, 1},
	"pieces":   {ingredient.Count, 1},
	"package":  {ingredient.Count, 1},
	"packages": {ingredient.Count, 1},
	"bag":      {ingredient.Count, 1},
	"bags":     {ingredient.Count, 1},
	"jar":      {ingredient.Count, 1},
	"jars":     {ingredient.Count, 1},
	"lb":       {ingredient.Count, 1},
	"lbs":      {ingredient.Count, 1},
	"pound":    {ingredient.Count, 1},
	"pounds":   {ingredient.Count, 1},
	"oz":       {ingredient.Count, 1},
	"ounce":    {ingredient.Count, 1},
	"ounces":   {ingredient.Count, 1},
}

// normalizeToken lowercases a raw token and drops a trailing period
// ("tbsp." is common in imported recipes).
func normalizeToken(token string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(token)), ".")
}

// Known reports whether token is a recognized measurement unit.
func Known(token string) bool {
	_, ok := table[normalizeToken(token)]
	return ok
}

// Resolve maps a raw unit token to its conversion. Unrecognized tokens
// degrade to a plain count with factor 1; Resolve never fails.
func Resolve(token string) Conversion {
	if c, ok := table[normalizeToken(token)]; ok {
		return c
	}
	return Conversion{Base: ingredient.Count, Factor: 1}
}
