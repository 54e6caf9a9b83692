package usecase

import (
	"fmt"
	"strings"

	"github.com/balcaohq/backend/internal/domain"
	"github.com/pmezard/go-difflib/difflib"
)

// Fallback lines. The caller must be able to tell an empty catalog apart
// from a catalog where nothing matched.
const (
	noProductsLine  = "Nenhum produto cadastrado no sistema."
	noneMatchedLine = "Não encontrei esse produto no sistema."
)

// DefaultMatchThreshold is the similarity ratio below which a product is
// not considered a fuzzy match. Tunable because upstream naming
// conventions vary by catalog.
const DefaultMatchThreshold = 0.6

// Matcher decides which catalog records are relevant to a free-text query
// and flattens them into display lines.
type Matcher struct {
	threshold float64
}

// NewMatcher creates a matcher with the given similarity threshold.
func NewMatcher(threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}
	return &Matcher{threshold: threshold}
}

// Match selects the products relevant to the query. A product is included
// when the query is a case-insensitive substring of its name (that always
// wins, even below threshold), when the similarity ratio reaches the
// threshold, or when any variant name contains the query. The input is
// never mutated.
func (m *Matcher) Match(query string, products []domain.ProductRecord) domain.MatchResult {
	if len(products) == 0 {
		return domain.MatchResult{
			Outcome: domain.OutcomeNoProducts,
			Lines:   []string{noProductsLine},
		}
	}

	queryLower := strings.ToLower(strings.TrimSpace(query))

	var lines []string
	matched := false

	for _, product := range products {
		if !m.includes(queryLower, product) {
			continue
		}
		matched = true

		lines = append(lines, product.Name)
		if len(product.Variants) > 0 {
			for _, variant := range product.Variants {
				lines = append(lines, fmt.Sprintf("%s | R$ %s", variant.Name, variant.Price))
			}
		} else {
			lines = append(lines, "R$ "+product.Price)
		}
	}

	if !matched {
		return domain.MatchResult{
			Outcome: domain.OutcomeNoneMatched,
			Lines:   []string{noneMatchedLine},
		}
	}

	return domain.MatchResult{Outcome: domain.OutcomeMatched, Lines: lines}
}

func (m *Matcher) includes(queryLower string, product domain.ProductRecord) bool {
	if queryLower == "" {
		return false
	}

	nameLower := strings.ToLower(product.Name)
	if strings.Contains(nameLower, queryLower) {
		return true
	}
	if similarityRatio(queryLower, nameLower) >= m.threshold {
		return true
	}

	for _, variant := range product.Variants {
		if strings.Contains(strings.ToLower(variant.Name), queryLower) {
			return true
		}
	}
	return false
}

// similarityRatio computes the Gestalt similarity in [0,1] between two
// strings, comparing them character by character.
func similarityRatio(a, b string) float64 {
	matcher := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return matcher.Ratio()
}
