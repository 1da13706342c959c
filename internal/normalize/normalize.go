// Package normalize derives canonical ingredient names from free-text
// ingredient phrases. Preparation clauses ("minced", "halved and seeded")
// are extracted before canonicalization so grouping keys never include
// preparation words; size descriptors and synonyms are resolved against
// immutable tables built once at init. Normalization never fails — a name
// with no synonym entry canonicalizes to its own normalized text.
package normalize

import (
	"regexp"
	"strings"
)

// Result is the outcome of normalizing one ingredient phrase.
type Result struct {
	// BaseName is the phrase with preparation clauses and leading size
	// descriptors stripped, original casing preserved.
	BaseName string
	// PrepNote is the extracted preparation clause, verbatim. Empty when
	// the phrase had none.
	PrepNote string
	// CanonicalName is the lower-cased, synonym-resolved, singularized
	// grouping key.
	CanonicalName string
}

// Normalize lowercases and trims whitespace from a raw ingredient name.
func Normalize(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

var (
	optionalPrefixRe = regexp.MustCompile(`(?i)^optional:?\s*`)

	// Trailing preparation clause: a closed vocabulary of preparation
	// verbs (optionally adverb-qualified, optionally joined by "and"),
	// or a "for garnish"/"for serving" tail.
	prepClauseRe = regexp.MustCompile(`(?i)(?:,\s*|\s+)(` +
		prepVerb + `(?:\s+and\s+` + prepVerb + `)*` +
		`|for\s+garnish|for\s+serving)\s*$`)

	// Any phrasing of salt-plus-pepper collapses to one fixed key.
	saltPepperRe = regexp.MustCompile(`(?i)^(salt\s*(and|&|/)\s*(black\s+)?pepper|(black\s+)?pepper\s*(and|&|/)\s*salt)$`)

	leadingPhraseRe = regexp.MustCompile(`(?i)^(juice\s+of|wedges\s+(of|from)|zest\s+of)\s+`)

	spacesRe = regexp.MustCompile(`\s+`)
)

const prepVerb = `(?:finely\s+|thinly\s+|roughly\s+|coarsely\s+|freshly\s+)?` +
	`(?:minced|chopped|diced|sliced|grated|crushed|halved|seeded|riced|` +
	`peeled|cubed|shredded|trimmed|melted|softened|beaten|drained|rinsed|` +
	`juiced|zested)`

// Leading size/quality descriptors dropped from the front of a name.
var descriptors = map[string]struct{}{
	"fresh":    {},
	"large":    {},
	"small":    {},
	"medium":   {},
	"organic":  {},
	"dried":    {},
	"boneless": {},
	"skinless": {},
	"lean":     {},
}

// synonyms maps normalized (lower-cased, singularized) variants to their
// canonical grouping key. Keys are stored in singular form; Canonical looks
// up both the original and singularized text.
var synonyms = map[string]string{
	"garlic clove":    "garlic",
	"clove of garlic": "garlic",
	"clove garlic":    "garlic",
	"minced garlic":   "garlic",

	"red bell pepper":    "bell pepper",
	"green bell pepper":  "bell pepper",
	"yellow bell pepper": "bell pepper",
	"orange bell pepper": "bell pepper",

	"scallion":     "green onions",
	"green onion":  "green onions",
	"spring onion": "green onions",

	"salt":          "salt and pepper",
	"kosher salt":   "salt and pepper",
	"sea salt":      "salt and pepper",
	"table salt":    "salt and pepper",
	"pepper":        "salt and pepper",
	"black pepper":  "salt and pepper",
	"ground pepper": "salt and pepper",

	"coriander leaf":  "cilantro",
	"cilantro leaf":   "cilantro",
	"yellow onion":    "onion",
	"white onion":     "onion",
	"red onion":       "red onion",
	"roma tomato":     "tomato",
	"cherry tomatoe":  "cherry tomatoes",
	"cherry tomato":   "cherry tomatoes",
	"grape tomato":    "cherry tomatoes",
	"tomatoe":         "tomato",
	"potatoe":         "potato",
	"chicken breast":  "chicken breast",
	"chickpea":        "chickpeas",
	"garbanzo bean":   "chickpeas",

	"extra virgin olive oil": "olive oil",
	"evoo":                   "olive oil",
}

// Name normalizes one raw ingredient phrase: strips an "Optional:" prefix,
// extracts the trailing preparation clause, drops leading descriptors, and
// derives the canonical grouping key. It is safe on arbitrary input.
func Name(raw string) Result {
	s := strings.TrimSpace(raw)
	s = optionalPrefixRe.ReplaceAllString(s, "")

	base, prep := extractPrep(s)
	base = stripDescriptors(base)

	return Result{
		BaseName:      base,
		PrepNote:      prep,
		CanonicalName: Canonical(base),
	}
}

// extractPrep splits a trailing preparation clause off the phrase.
// Extraction happens before canonicalization so canonical keys never
// include preparation words; the clause is preserved verbatim.
func extractPrep(s string) (base, prep string) {
	loc := prepClauseRe.FindStringSubmatchIndex(s)
	if loc == nil {
		return strings.TrimSpace(s), ""
	}
	base = strings.TrimSpace(strings.TrimSuffix(s[:loc[0]], ","))
	prep = s[loc[2]:loc[3]]
	if base == "" {
		// The whole phrase was a prep clause; keep it as the name
		// rather than emptying the record.
		return strings.TrimSpace(s), ""
	}
	return base, prep
}

func stripDescriptors(s string) string {
	s = leadingPhraseRe.ReplaceAllString(s, "")
	words := strings.Fields(s)
	for len(words) > 1 {
		if _, ok := descriptors[strings.ToLower(words[0])]; !ok {
			break
		}
		words = words[1:]
	}
	return strings.Join(words, " ")
}

// Canonical reduces a base name to its grouping key. Running Canonical on
// an already-canonical name returns the same name.
func Canonical(name string) string {
	n := spacesRe.ReplaceAllString(Normalize(name), " ")
	if n == "" {
		return n
	}
	if saltPepperRe.MatchString(n) {
		return "salt and pepper"
	}
	if c, ok := synonyms[n]; ok {
		return c
	}
	sing := singularize(n)
	if c, ok := synonyms[sing]; ok {
		return c
	}
	return sing
}

// singularize drops a trailing "s" from the last word unless the word ends
// in "ss" or "us".
func singularize(s string) string {
	words := strings.Split(s, " ")
	last := words[len(words)-1]
	if len(last) > 1 && strings.HasSuffix(last, "s") &&
		!strings.HasSuffix(last, "ss") && !strings.HasSuffix(last, "us") {
		words[len(words)-1] = strings.TrimSuffix(last, "s")
	}
	return strings.Join(words, " ")
}
