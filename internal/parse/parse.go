// Package parse converts raw recipe ingredient lines into structured
// records. Parsing is tiered: deterministic pattern matching first, then
// one batched call to the external text-interpretation service for lines
// no pattern could resolve. A line is never dropped — when the service is
// unavailable or replies with garbage, each unresolved line degrades to a
// minimal record instead.
package parse

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/samshaps/meal-planner/internal/ingredient"
	"github.com/samshaps/meal-planner/internal/llm"
	"github.com/samshaps/meal-planner/internal/normalize"
	"github.com/samshaps/meal-planner/internal/units"
)

// Parser turns raw ingredient lines into ingredient.Parsed records.
type Parser struct {
	chat llm.Chatter
}

// New creates a Parser. chat may be nil, in which case unresolved lines go
// straight to the minimal-record fallback.
func New(chat llm.Chatter) *Parser {
	return &Parser{chat: chat}
}

// Quantity token: decimal, simple fraction, mixed number, or a range that
// collapses to its midpoint.
const qtyPattern = `\d+\s+\d+/\d+|\d+/\d+|\d+(?:\.\d+)?(?:\s*[-–]\s*\d+(?:\.\d+)?)?`

var (
	noQuantityRe = regexp.MustCompile(`(?i)\b(to taste|as needed|optional|for garnish|for serving)\b`)
	// Phrase removal for tier-1 lines, including surrounding punctuation.
	noQuantityStripRe = regexp.MustCompile(`(?i),?\s*\(?\b(to taste|as needed|optional|for garnish|for serving)\b\)?\.?`)

	qtyUnitNameRe = regexp.MustCompile(`^(` + qtyPattern + `)\s+([A-Za-z.]+)\s+(.+)$`)
	// Tier 3 rejects names containing digits so compound phrasings like
	// "1/2 cup, plus 2 tablespoons olive oil" fall through to the
	// interpretation service instead of swallowing the tail as a name.
	qtyNameRe = regexp.MustCompile(`^(` + qtyPattern + `)\s+([^\d]+)$`)

	rangeRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*[-–]\s*(\d+(?:\.\d+)?)$`)
)

// ParseLines parses every line, preserving input order. Pattern-resolved
// lines never touch the network; the rest are sent as one batched
// interpretation call and recombined by index.
func (p *Parser) ParseLines(ctx context.Context, lines []string) []ingredient.Parsed {
	results := make([]ingredient.Parsed, len(lines))
	var pending []int

	for i, line := range lines {
		if rec, ok := parseLine(line); ok {
			results[i] = rec
			continue
		}
		pending = append(pending, i)
	}

	if len(pending) == 0 {
		return results
	}

	unresolved := make([]string, len(pending))
	for j, i := range pending {
		unresolved[j] = lines[i]
	}

	interpreted, err := p.interpret(ctx, unresolved)
	if err != nil {
		slog.Warn("interpretation service unavailable, using fallback records",
			"lines", len(pending), "error", err)
		for _, i := range pending {
			results[i] = fallbackRecord(lines[i])
		}
		return results
	}

	for j, i := range pending {
		if j < len(interpreted) {
			if rec, ok := recordFromInterpreted(lines[i], interpreted[j]); ok {
				results[i] = rec
				continue
			}
		}
		results[i] = fallbackRecord(lines[i])
	}
	return results
}

// parseLine attempts the deterministic tiers. ok is false when the line
// needs external interpretation.
func parseLine(line string) (ingredient.Parsed, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ingredient.Parsed{}, false
	}

	// Tier 1: no-quantity phrase ("to taste", "as needed", ...). Only for
	// lines that don't lead with a number, so "2 tbsp butter, for
	// garnish" still gets its quantity parsed below.
	if !startsWithDigit(trimmed) && noQuantityRe.MatchString(trimmed) {
		name := strings.Trim(noQuantityStripRe.ReplaceAllString(trimmed, ""), ",: \t")
		if name == "" {
			name = trimmed
		}
		return enrich(line, name, nil, ""), true
	}

	// Tier 2: quantity + recognized unit + name.
	if m := qtyUnitNameRe.FindStringSubmatch(trimmed); m != nil && units.Known(m[2]) {
		name := strings.TrimPrefix(m[3], "of ")
		return enrich(line, name, parseQuantity(m[1]), m[2]), true
	}

	// Tier 3: quantity + name, no unit token.
	if m := qtyNameRe.FindStringSubmatch(trimmed); m != nil {
		return enrich(line, m[2], parseQuantity(m[1]), ""), true
	}

	return ingredient.Parsed{}, false
}

func startsWithDigit(s string) bool {
	return len(s) > 0 && s[0] >= '0' && s[0] <= '9'
}

// parseQuantity evaluates a quantity token. Ranges collapse to their
// midpoint; mixed numbers sum their parts. Negative or non-finite results
// are treated as absent, never propagated.
func parseQuantity(tok string) *float64 {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return nil
	}

	if m := rangeRe.FindStringSubmatch(tok); m != nil {
		lo, err1 := strconv.ParseFloat(m[1], 64)
		hi, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil {
			return nil
		}
		return validQuantity((lo + hi) / 2)
	}

	var total float64
	for _, part := range strings.Fields(tok) {
		v, ok := parseSimpleNumber(part)
		if !ok {
			return nil
		}
		total += v
	}
	return validQuantity(total)
}

func parseSimpleNumber(s string) (float64, bool) {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

func validQuantity(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil
	}
	return &v
}

// enrich is the uniform shaping step every record passes through,
// regardless of which tier produced it: base-name/prep extraction,
// canonical-name derivation, and unit reduction.
func enrich(rawLine, fullName string, qty *float64, unitTok string) ingredient.Parsed {
	n := normalize.Name(fullName)
	rec := ingredient.Parsed{
		RawText:       rawLine,
		FullName:      strings.TrimSpace(fullName),
		BaseName:      n.BaseName,
		PrepNote:      n.PrepNote,
		CanonicalName: n.CanonicalName,
		Quantity:      qty,
		Unit:          unitTok,
		BaseUnit:      ingredient.None,
	}
	if qty == nil {
		return rec
	}
	if unitTok == "" {
		// Quantity with no unit: treat as a count.
		rec.BaseUnit = ingredient.Count
		rec.QuantityInBase = qty
		return rec
	}
	conv := units.Resolve(unitTok)
	rec.BaseUnit = conv.Base
	converted := *qty * conv.Factor
	rec.QuantityInBase = &converted
	return rec
}

// fallbackRecord is the minimal degraded record: the trimmed raw line as
// the name, no quantity, no unit.
func fallbackRecord(line string) ingredient.Parsed {
	trimmed := strings.TrimSpace(line)
	return ingredient.Parsed{
		RawText:       line,
		FullName:      trimmed,
		BaseName:      trimmed,
		CanonicalName: normalize.Canonical(trimmed),
		BaseUnit:      ingredient.None,
	}
}

// interpretedLine is the fixed schema requested from the interpretation
// service. Quantities arrive as numbers or strings ("1/2"); flexQuantity
// accepts both.
type interpretedLine struct {
	Name         string       `json:"name"`
	Quantity     flexQuantity `json:"quantity"`
	Unit         string       `json:"unit"`
	OriginalText string       `json:"originalText"`
}

type flexQuantity struct {
	value *float64
}

func (q *flexQuantity) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == "" {
		q.value = nil
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			q.value = nil
			return nil
		}
		q.value = parseQuantity(str)
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// A malformed quantity degrades to "no quantity" rather than
		// failing the whole batch.
		q.value = nil
		return nil
	}
	q.value = validQuantity(v)
	return nil
}

// interpret sends all unresolved lines as one batched call and decodes the
// reply through the staged JSON recovery.
func (p *Parser) interpret(ctx context.Context, lines []string) ([]interpretedLine, error) {
	if p.chat == nil {
		return nil, fmt.Errorf("parse: no interpretation service configured")
	}

	var b strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&b, "%d. %s\n", i+1, line)
	}

	reply, err := p.chat.Chat(ctx, llm.PromptInterpretLines, b.String())
	if err != nil {
		return nil, fmt.Errorf("parse: interpret batch: %w", err)
	}

	var out []interpretedLine
	if err := llm.ExtractJSONArray(reply, &out); err != nil {
		return nil, fmt.Errorf("parse: interpret batch: %w", err)
	}
	return out, nil
}

func recordFromInterpreted(rawLine string, it interpretedLine) (ingredient.Parsed, bool) {
	name := strings.TrimSpace(it.Name)
	if name == "" {
		name = strings.TrimSpace(it.OriginalText)
	}
	if name == "" {
		return ingredient.Parsed{}, false
	}
	return enrich(rawLine, name, it.Quantity.value, strings.TrimSpace(it.Unit)), true
}
