package domain

// Defaults substituted during catalog normalization when the upstream
// omits a field.
const (
	DefaultProductName = "Sem descrição"
	DefaultPrice       = "0.00"
)

// Variant is a sellable variation of a product (e.g. size or color),
// with its own price.
type Variant struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// ProductRecord is the normalized catalog entry, independent of which
// upstream API version produced it. Price is kept as the decimal string
// the ERP returns; the service never does arithmetic on it.
type ProductRecord struct {
	Name     string    `json:"name"`
	Price    string    `json:"price"`
	Variants []Variant `json:"variants,omitempty"`
}

// MatchOutcome distinguishes the three possible results of a catalog match.
type MatchOutcome string

const (
	// OutcomeMatched means at least one product or variant matched the query.
	OutcomeMatched MatchOutcome = "matched"
	// OutcomeNoneMatched means the catalog returned products but none matched.
	OutcomeNoneMatched MatchOutcome = "none_matched"
	// OutcomeNoProducts means the catalog returned no products at all.
	OutcomeNoProducts MatchOutcome = "no_products"
)

// MatchResult is the ordered display output of a product match: one header
// line per matched product followed by its price lines, or a single
// fallback line when nothing matched. Produced fresh per query.
type MatchResult struct {
	Outcome MatchOutcome `json:"outcome"`
	Lines   []string     `json:"lines"`
}

// Matched reports whether the result contains at least one matched product.
func (r *MatchResult) Matched() bool {
	return r.Outcome == OutcomeMatched
}

// SearchRequest is a product search request from the caller.
type SearchRequest struct {
	Produto string `json:"produto" binding:"required"`
}
