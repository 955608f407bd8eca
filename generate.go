package judgeforms

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tsawler/judgeforms/assemble"
)

// Generation is a configured generation run. Each configuration method
// returns a new Generation, so a base configuration can be shared and
// refined.
type Generation struct {
	session *Session
	options generateOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Generation with a deep copy of
// options.
func (g *Generation) clone() *Generation {
	return &Generation{
		session: g.session,
		options: g.options.clone(),
		err:     g.err,
	}
}

// ============================================================================
// Configuration Methods (return new Generation instance)
// ============================================================================

// Variants sets the form variants included in per-judge packets.
//
// Example:
//
//	out, err := s.Generate().Variants(assemble.Long, assemble.Short).ByJudge()
func (g *Generation) Variants(variants ...assemble.Variant) *Generation {
	newGen := g.clone()
	if len(variants) == 0 {
		newGen.err = fmt.Errorf("at least one variant is required")
		return newGen
	}
	newGen.options.variants = append([]assemble.Variant(nil), variants...)
	return newGen
}

// Margin sets the blank border, in inches, kept around overlay text.
func (g *Generation) Margin(inches float64) *Generation {
	newGen := g.clone()
	if inches <= 0 || inches >= 3 {
		newGen.err = fmt.Errorf("margin %g inches out of range", inches)
		return newGen
	}
	newGen.options.margin = inches
	return newGen
}

// OnProgress registers a callback told after each judge or category.
func (g *Generation) OnProgress(fn assemble.ProgressFunc) *Generation {
	newGen := g.clone()
	newGen.options.progress = fn
	return newGen
}

// Logger sets the logger for the run.
func (g *Generation) Logger(log *zap.Logger) *Generation {
	newGen := g.clone()
	newGen.options.logger = log
	return newGen
}

// ============================================================================
// Terminal Methods
// ============================================================================

func (g *Generation) assembler() (*assemble.Assembler, error) {
	if g.err != nil {
		return nil, g.err
	}
	if g.session.templates == nil {
		return nil, fmt.Errorf("no template source")
	}
	return assemble.New(g.session.templates, g.options.assembleOptions()), nil
}

// ByJudge builds one packet per active judge.
func (g *Generation) ByJudge() (*assemble.Output, error) {
	a, err := g.assembler()
	if err != nil {
		return nil, err
	}
	return a.ByJudge(g.session.judges, g.session.competitors, g.session.ctx)
}

// ByCategory builds one file per category and variant.
func (g *Generation) ByCategory() (*assemble.Output, error) {
	a, err := g.assembler()
	if err != nil {
		return nil, err
	}
	return a.ByCategory(g.session.judges, g.session.competitors, g.session.ctx)
}

// Labels builds the contest label sheets.
func (g *Generation) Labels() (*assemble.Output, error) {
	a, err := g.assembler()
	if err != nil {
		return nil, err
	}
	return a.Labels(g.session.judges, g.session.competitors, g.session.ctx)
}

// FolderLabels builds the judges' folder label sheet.
func (g *Generation) FolderLabels() (*assemble.Output, error) {
	a, err := g.assembler()
	if err != nil {
		return nil, err
	}
	return a.FolderLabels(g.session.judges, g.session.ctx)
}

// BlankForms copies templates without any overlay, counts[key] times each.
// The result is nil when nothing was copied.
func (g *Generation) BlankForms(counts map[assemble.TemplateKey]int) (*assemble.Output, error) {
	a, err := g.assembler()
	if err != nil {
		return nil, err
	}
	return a.BlankForms(counts, g.session.ctx)
}
