package tools

import (
	"fmt"

	"github.com/usestring/ghspec/internal/batch"
	"github.com/usestring/ghspec/internal/cache"
	"github.com/usestring/ghspec/internal/config"
	"github.com/usestring/ghspec/internal/indexer"
	"github.com/usestring/ghspec/internal/lint"
	"github.com/usestring/ghspec/internal/query"
	"github.com/usestring/ghspec/internal/search"
	"github.com/usestring/ghspec/pkg/apispec"
	"github.com/usestring/ghspec/pkg/validate"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Config    *config.Config
	Validator *validate.Validator
	Indexer   *indexer.Indexer
	Search    *search.SearchEngine
	Query     *query.Engine
	Linter    *lint.Linter
	Batch     *batch.Runner
}

// LoadDocument reads the configured spec document. Tools load it per call so
// edits to the file are picked up without a restart.
func (d *Deps) LoadDocument() (*apispec.Document, error) {
	doc, err := apispec.Load(d.Validator.Source)
	if err != nil {
		return nil, WrapSpecError(err)
	}
	return doc, nil
}

// NewDeps wires the validator, search index, query engine and linter for the
// spec document named by cfg.
func NewDeps(cfg *config.Config) (*Deps, error) {
	queryCache, err := cache.NewQueryCache(cfg.QueryCacheMaxItems)
	if err != nil {
		return nil, fmt.Errorf("failed to create query cache: %w", err)
	}
	linter, err := lint.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create linter: %w", err)
	}

	v := validate.New(cfg.SpecFile)
	idx := indexer.New(v.Source)
	engine := query.NewEngine(queryCache)

	return &Deps{
		Config:    cfg,
		Validator: v,
		Indexer:   idx,
		Search:    search.New(idx),
		Query:     engine,
		Linter:    linter,
		Batch: batch.NewRunner(v, batch.Options{
			Workers:       cfg.BatchWorkers,
			MaxInputBytes: cfg.MaxInputBytes,
			Engine:        engine,
		}),
	}, nil
}
