package mcpsrv

import (
	"github.com/usestring/ghspec/internal/batch"
	"github.com/usestring/ghspec/internal/config"
	"github.com/usestring/ghspec/internal/indexer"
	"github.com/usestring/ghspec/internal/lint"
	"github.com/usestring/ghspec/internal/query"
	"github.com/usestring/ghspec/internal/search"
	"github.com/usestring/ghspec/pkg/validate"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same infrastructure as builtin tools.
type Deps struct {
	Config    *config.Config
	Validator *validate.Validator
	Indexer   *indexer.Indexer
	Search    *search.SearchEngine
	Query     *query.Engine
	Linter    *lint.Linter
	Batch     *batch.Runner
}
