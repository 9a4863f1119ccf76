package types

// SearchRequest contains parameters for a search over document entries.
type SearchRequest struct {
	Query   string         // Free text query, every token must match
	Filters *SearchFilters // Optional structured filters
	Limit   int            // Default 10, max 100
	Offset  int            // Pagination offset
}

// SearchFilters contains structured filter criteria.
type SearchFilters struct {
	Kind       string // "rest", "graphql" or "cli"
	Method     string
	Field      string // Token that must appear in a declared property path
	SchemaOnly bool   // Skip entries without a schema
}

// SearchResult represents a single search result.
type SearchResult struct {
	Summary    *EntrySummary `json:"summary"`
	Score      float64       `json:"score"`
	Highlights []string      `json:"highlights,omitempty"`
	MatchedIn  []string      `json:"matched_in,omitempty"` // "name", "target", "field"
}

// SearchResponse contains the search results.
type SearchResponse struct {
	Results     []SearchResult `json:"results"`
	TotalHint   int            `json:"total_hint,omitempty"`
	IndexedAtMs int64          `json:"indexed_at_ms"`
}
