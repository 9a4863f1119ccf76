// Package search provides search over indexed specification entries.
package search

import (
	"context"
	"sort"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/usestring/ghspec/internal/indexer"
	"github.com/usestring/ghspec/pkg/types"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Score weights per matched index. A token can count in several.
const (
	weightName   = 0.5
	weightTarget = 0.3
	weightField  = 0.2
	exactBoost   = 0.5
	baseScore    = 0.1
)

// SearchEngine provides search capabilities over the indexer.
type SearchEngine struct {
	indexer *indexer.Indexer
}

// New creates a new SearchEngine.
func New(idx *indexer.Indexer) *SearchEngine {
	return &SearchEngine{indexer: idx}
}

// Search executes a search, rebuilding the index first if the document
// changed on disk.
func (s *SearchEngine) Search(ctx context.Context, req *types.SearchRequest) (*types.SearchResponse, error) {
	if req == nil {
		req = &types.SearchRequest{}
	}
	if err := s.indexer.RefreshIfStale(ctx); err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	tokens := indexer.Tokenize(req.Query)
	matches := s.tokenBitmaps(tokens)

	candidates := s.planFilters(req.Filters, matches)
	totalHint := int(candidates.GetCardinality())

	results := s.scoreResults(candidates.ToArray(), req.Query, matches)
	// Stable sort keeps document order among equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	start := min(max(req.Offset, 0), len(results))
	end := min(start+limit, len(results))

	return &types.SearchResponse{
		Results:     results[start:end],
		TotalHint:   totalHint,
		IndexedAtMs: s.indexer.LastSyncTime().UnixMilli(),
	}, nil
}

// tokenMatch holds, for one query token, the entries matching it per index.
type tokenMatch struct {
	token  string
	name   *roaring.Bitmap
	target *roaring.Bitmap
	field  *roaring.Bitmap
}

func (m *tokenMatch) union() *roaring.Bitmap {
	u := roaring.New()
	for _, bm := range []*roaring.Bitmap{m.name, m.target, m.field} {
		if bm != nil {
			u.Or(bm)
		}
	}
	return u
}

func (s *SearchEngine) tokenBitmaps(tokens []string) []tokenMatch {
	matches := make([]tokenMatch, 0, len(tokens))
	for _, t := range tokens {
		matches = append(matches, tokenMatch{
			token:  t,
			name:   s.indexer.GetBitmapForNameToken(t),
			target: s.indexer.GetBitmapForToken(t),
			field:  s.indexer.GetBitmapForFieldToken(t),
		})
	}
	return matches
}

// planFilters converts filters and query tokens to bitmap operations: OR
// across indexes per token, AND across tokens and filters.
func (s *SearchEngine) planFilters(filters *types.SearchFilters, matches []tokenMatch) *roaring.Bitmap {
	result := s.indexer.AllDocIDs()

	and := func(bm *roaring.Bitmap) {
		if bm == nil {
			result = roaring.New()
			return
		}
		result.And(bm)
	}

	if filters != nil {
		if filters.Kind != "" {
			and(s.indexer.GetBitmapForKind(filters.Kind))
		}
		if filters.Method != "" {
			and(s.indexer.GetBitmapForMethod(filters.Method))
		}
		if filters.Field != "" {
			for _, t := range indexer.Tokenize(filters.Field) {
				and(s.indexer.GetBitmapForFieldToken(t))
			}
		}
	}

	for i := range matches {
		and(matches[i].union())
	}

	if filters != nil && filters.SchemaOnly {
		withSchema := roaring.New()
		it := result.Iterator()
		for it.HasNext() {
			docID := it.Next()
			if meta := s.indexer.GetMeta(docID); meta != nil && meta.HasSchema {
				withSchema.Add(docID)
			}
		}
		result = withSchema
	}
	return result
}

func (s *SearchEngine) scoreResults(docIDs []uint32, query string, matches []tokenMatch) []types.SearchResult {
	results := make([]types.SearchResult, 0, len(docIDs))
	query = strings.TrimSpace(query)

	for _, docID := range docIDs {
		meta := s.indexer.GetMeta(docID)
		if meta == nil {
			continue
		}

		score := baseScore
		var highlights, matchedIn []string

		if n := float64(len(matches)); n > 0 {
			var nameHits, targetHits, fieldHits int
			for _, m := range matches {
				hit := false
				if contains(m.name, docID) {
					nameHits++
					hit = true
				}
				if contains(m.target, docID) {
					targetHits++
					hit = true
				}
				if contains(m.field, docID) {
					fieldHits++
				}
				if hit {
					highlights = append(highlights, m.token)
				}
			}
			if nameHits > 0 {
				score += float64(nameHits) / n * weightName
				matchedIn = append(matchedIn, "name")
			}
			if targetHits > 0 {
				score += float64(targetHits) / n * weightTarget
				matchedIn = append(matchedIn, "target")
			}
			if fieldHits > 0 {
				score += float64(fieldHits) / n * weightField
				matchedIn = append(matchedIn, "field")
			}
		}

		// An identifier that the lookup would resolve ranks first.
		if query != "" && (query == meta.Name || query == meta.Target) {
			score += exactBoost
		}

		results = append(results, types.SearchResult{
			Summary:    meta.ToSummary(),
			Score:      score,
			Highlights: highlights,
			MatchedIn:  matchedIn,
		})
	}
	return results
}

func contains(bm *roaring.Bitmap, docID uint32) bool {
	return bm != nil && bm.Contains(docID)
}
