// Package judgeforms generates the judging forms and labels for a
// singing contest from a judge roster, a competitor roster and a set of
// PDF form templates.
//
// Basic usage:
//
//	cfg, err := config.Load("contest.yaml")
//	if err != nil {
//	    // handle error
//	}
//	s, err := judgeforms.Open(cfg, logger)
//	if err != nil {
//	    // handle error
//	}
//	out, err := s.Generate().ByJudge()
//	if errors.Is(err, assemble.ErrNothingToGenerate) {
//	    // tell the operator, nothing was printable
//	}
//	os.WriteFile(out.Name, out.Data, 0o644)
//
// With options:
//
//	out, err := s.Generate().
//	    Variants(assemble.Long, assemble.Short).
//	    Margin(0.5).
//	    ByJudge()
//
// The lower-level packages (roster, overlay, compose, labels, assemble)
// can be used directly for finer control.
package judgeforms

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tsawler/judgeforms/assemble"
	"github.com/tsawler/judgeforms/config"
	"github.com/tsawler/judgeforms/roster"
)

// NewSession returns an empty session for the contest ctx reading
// templates from templates.
func NewSession(ctx roster.Context, templates assemble.TemplateSource) *Session {
	return &Session{
		ctx:       ctx,
		templates: templates,
		log:       zap.NewNop(),
		defaults:  defaultOptions(),
	}
}

// Open builds a session from a validated configuration: the contest
// context, the template directory, generation defaults and, when the file
// names them, the two rosters. log may be nil.
//
// Example:
//
//	s, err := judgeforms.Open(cfg, nil)
func Open(cfg *config.Config, log *zap.Logger) (*Session, error) {
	ctx, err := cfg.Context()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	variants, _ := cfg.Variants()

	s := NewSession(ctx, assemble.NewDirSource(cfg.Templates))
	if log != nil {
		s.log = log
	}
	s.defaults.variants = variants
	s.defaults.margin = cfg.MarginInches
	s.defaults.logger = s.log

	if cfg.Judges != "" {
		if err := s.ImportJudges(cfg.Judges); err != nil {
			return nil, err
		}
	}
	if cfg.Competitors != "" {
		if err := s.ImportCompetitors(cfg.Competitors); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	out := judgeforms.Must(s.Generate().FolderLabels())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
