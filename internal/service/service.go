// Package service runs the grocery-list pipeline: raw ingredient lines are
// parsed, aggregated across recipes, and categorized into store sections.
// Per-ingredient problems never fail a build; the only hard error is an
// input with no usable lines at all.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/samshaps/meal-planner/internal/aggregate"
	"github.com/samshaps/meal-planner/internal/categorize"
	"github.com/samshaps/meal-planner/internal/ingredient"
	"github.com/samshaps/meal-planner/internal/llm"
	"github.com/samshaps/meal-planner/internal/parse"
)

// ErrNoIngredients is returned when the input contains no non-blank lines.
var ErrNoIngredients = errors.New("no ingredient lines to aggregate")

// GroceryList is one generated list: the sectioned aggregated entries plus
// identifying metadata for callers.
type GroceryList struct {
	ID        uuid.UUID                `json:"id"`
	Items     []*ingredient.Aggregated `json:"items"`
	CreatedAt time.Time                `json:"created_at"`
}

// Service holds all dependencies for grocery-list generation.
type Service struct {
	parser      *parse.Parser
	categorizer *categorize.Categorizer
}

// New creates a new Service. chat may be nil; the pipeline then runs fully
// on its deterministic paths.
func New(chat llm.Chatter) *Service {
	return &Service{
		parser:      parse.New(chat),
		categorizer: categorize.New(chat),
	}
}

// BuildList runs the full pipeline over the supplied raw ingredient lines,
// concatenated across a plan's recipes in whatever order the caller chose.
// Blank lines are skipped; everything else lands in exactly one entry of
// the returned list.
func (s *Service) BuildList(ctx context.Context, lines []string) (GroceryList, error) {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	if len(kept) == 0 {
		return GroceryList{}, ErrNoIngredients
	}

	records := s.parser.ParseLines(ctx, kept)
	items := aggregate.Aggregate(records)
	s.categorizer.Categorize(ctx, items)

	return GroceryList{
		ID:        uuid.New(),
		Items:     items,
		CreatedAt: time.Now().UTC(),
	}, nil
}
