// Package categorize assigns a grocery section to each aggregated entry.
// Classification is two-stage: one batched call to the external classifier
// constrained to the seven-section vocabulary, then a deterministic
// override table applied unconditionally on top. Overrides are evaluated
// top to bottom and the first match wins — the keyword sets deliberately
// overlap ("onion" vs "onion powder"), so ordering is load-bearing. A
// whole-batch classifier failure degrades to overrides only; the pipeline
// never fails on categorization.
package categorize

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/samshaps/meal-planner/internal/ingredient"
	"github.com/samshaps/meal-planner/internal/llm"
	"github.com/samshaps/meal-planner/internal/units"
)

// Categorizer files aggregated entries into grocery sections.
type Categorizer struct {
	chat llm.Chatter
}

// New creates a Categorizer. chat may be nil; entries then get sections
// from the override table alone.
func New(chat llm.Chatter) *Categorizer {
	return &Categorizer{chat: chat}
}

// Categorize assigns Section on every entry in place. It is the only
// mutation an aggregated entry sees after aggregation.
func (c *Categorizer) Categorize(ctx context.Context, entries []*ingredient.Aggregated) {
	names := make([]string, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		n := cleanName(classifierName(e))
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		names = append(names, n)
	}

	mapping, err := c.classify(ctx, names)
	if err != nil {
		slog.Warn("classification service unavailable, overrides only", "error", err)
		mapping = nil
	}

	for _, e := range entries {
		section := lookupSection(mapping, cleanName(classifierName(e)))
		if section == "" {
			// Keep a pre-seeded section (salt and pepper arrives as
			// Spices) rather than resetting it to Other.
			if e.Section != "" {
				section = e.Section
			} else {
				section = ingredient.SectionOther
			}
		}
		if override, ok := applyOverrides(e.DisplayName, e.CanonicalName); ok {
			section = override
		}
		e.Section = section
	}
}

// classifierName picks the cleanest available name for an entry.
func classifierName(e *ingredient.Aggregated) string {
	switch {
	case e.CanonicalName != "":
		return e.CanonicalName
	case e.BaseName != "":
		return e.BaseName
	default:
		return e.DisplayName
	}
}

var (
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)
	numberRe        = regexp.MustCompile(`\d+([./-]\d+)?`)
)

// Preparation words dropped from names before classification.
var prepWords = map[string]struct{}{
	"minced": {}, "chopped": {}, "diced": {}, "sliced": {}, "grated": {},
	"crushed": {}, "halved": {}, "seeded": {}, "riced": {}, "peeled": {},
	"cubed": {}, "shredded": {}, "trimmed": {}, "melted": {}, "softened": {},
	"beaten": {}, "drained": {}, "rinsed": {},
}

// cleanName strips quantities, unit tokens, parentheticals, and prep words
// so the classifier sees just the ingredient.
func cleanName(s string) string {
	s = parentheticalRe.ReplaceAllString(strings.ToLower(s), " ")
	s = numberRe.ReplaceAllString(s, " ")
	var kept []string
	for _, w := range strings.Fields(s) {
		w = strings.Trim(w, ",.")
		if w == "" || units.Known(w) {
			continue
		}
		if _, prep := prepWords[w]; prep {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// classify sends the whole distinct-name batch in one call and returns the
// name→section mapping, keys lower-cased, invalid sections dropped.
func (c *Categorizer) classify(ctx context.Context, names []string) (map[string]ingredient.Section, error) {
	if len(names) == 0 {
		return nil, nil
	}
	if c.chat == nil {
		return nil, fmt.Errorf("categorize: no classification service configured")
	}

	reply, err := c.chat.Chat(ctx, llm.PromptClassifySections, strings.Join(names, "\n"))
	if err != nil {
		return nil, fmt.Errorf("categorize: classify batch: %w", err)
	}

	var raw map[string]string
	if err := llm.ExtractJSONObject(reply, &raw); err != nil {
		return nil, fmt.Errorf("categorize: classify batch: %w", err)
	}

	mapping := make(map[string]ingredient.Section, len(raw))
	for name, section := range raw {
		if !ingredient.ValidSection(section) {
			continue
		}
		mapping[strings.TrimSpace(strings.ToLower(name))] = ingredient.Section(section)
	}
	return mapping, nil
}

// lookupSection finds the section for a name in the classifier mapping,
// tolerating near-miss spellings the model echoed back.
func lookupSection(mapping map[string]ingredient.Section, name string) ingredient.Section {
	if len(mapping) == 0 || name == "" {
		return ""
	}
	if s, ok := mapping[name]; ok {
		return s
	}
	var best ingredient.Section
	bestScore := 0.0
	for key, s := range mapping {
		if score := similarity(name, key); score > bestScore {
			bestScore = score
			best = s
		}
	}
	if bestScore >= 0.85 {
		return best
	}
	return ""
}

// similarity returns a 0.0–1.0 confidence score between two strings using
// Levenshtein distance: 1.0 - distance/max(len(a), len(b)).
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}

// keyword matches when its text appears in the name and none of the unless
// texts do.
type keyword struct {
	match  string
	unless []string
}

type rule struct {
	section  ingredient.Section
	keywords []keyword
}

func kw(match string, unless ...string) keyword {
	return keyword{match: match, unless: unless}
}

// overrides corrects systematic classifier mistakes. Evaluated in order;
// first match wins. "bell pepper" sits above everything so it can never be
// misfiled into Spices by the bare "pepper"/"chili" checks below.
var overrides = []rule{
	{ingredient.SectionProduce, []keyword{
		kw("bell pepper"),
	}},
	{ingredient.SectionMeatFish, []keyword{
		kw("salmon"), kw("shrimp"), kw("tuna"), kw("cod"), kw("tilapia"),
		kw("chicken"), kw("beef"), kw("steak"), kw("pork"), kw("bacon"),
		kw("sausage"), kw("lamb"),
		kw("turkey", "broth"),
		kw("fish", "sauce"),
	}},
	{ingredient.SectionProduce, []keyword{
		kw("zucchini"),
		kw("onion", "onion powder"),
		kw("garlic", "garlic powder"),
		kw("lemon"), kw("lime"), kw("orange"),
		kw("avocado"), kw("cucumber"),
		kw("tomato", "paste"),
		kw("spinach"), kw("kale"), kw("arugula"), kw("lettuce"),
		kw("broccoli"), kw("cauliflower"), kw("brussels"), kw("cabbage"),
		kw("carrot"), kw("celery"), kw("asparagus"), kw("mushroom"),
		kw("potato"), kw("eggplant"), kw("jalapeno"), kw("jalapeño"),
		kw("cilantro"), kw("parsley"), kw("basil"), kw("mint"),
		kw("ginger"), kw("scallion"), kw("green bean"),
		kw("pea", "peanut"),
		kw("apple"), kw("banana"), kw("berr"),
	}},
	{ingredient.SectionDairy, []keyword{
		kw("parmesan"), kw("feta"), kw("mozzarella"), kw("cheddar"),
		kw("yogurt"),
		kw("cheese", "sauce"),
		kw("milk", "coconut"),
		kw("butter", "peanut", "almond"),
		kw("cream", "coconut", "of tartar"),
		kw("egg", "eggplant"),
	}},
	{ingredient.SectionPantry, []keyword{
		kw("oil"), kw("vinegar"), kw("broth"), kw("stock"),
		kw("coconut milk"), kw("coconut cream"),
		kw("soy sauce"), kw("fish sauce"), kw("hot sauce"),
		kw("worcestershire"), kw("sriracha"), kw("mayonnaise"),
		kw("ketchup"), kw("mustard"), kw("tahini"), kw("honey"),
		kw("maple syrup"), kw("peanut butter"), kw("almond butter"),
	}},
	{ingredient.SectionSpices, []keyword{
		kw("cumin"), kw("paprika"), kw("turmeric"), kw("cinnamon"),
		kw("chili"), kw("coriander"), kw("garlic powder"),
		kw("onion powder"), kw("oregano"), kw("cayenne"), kw("nutmeg"),
		kw("curry powder"), kw("red pepper flake"), kw("bay lea"),
		kw("salt"), kw("black pepper"),
	}},
}

// applyOverrides checks the display and canonical names against the
// override table. Matching is case-insensitive substring.
func applyOverrides(displayName, canonicalName string) (ingredient.Section, bool) {
	hay := strings.ToLower(displayName) + " " + strings.ToLower(canonicalName)
	for _, r := range overrides {
		for _, k := range r.keywords {
			if !strings.Contains(hay, k.match) {
				continue
			}
			excluded := false
			for _, u := range k.unless {
				if strings.Contains(hay, u) {
					excluded = true
					break
				}
			}
			if !excluded {
				return r.section, true
			}
		}
	}
	return "", false
}
