package judgeforms

import (
	"go.uber.org/zap"

	"github.com/tsawler/judgeforms/assemble"
	"github.com/tsawler/judgeforms/compose"
)

// generateOptions holds configuration for a generation run.
type generateOptions struct {
	variants []assemble.Variant // per-judge packet variants
	margin   float64            // inches kept clear around overlays
	progress assemble.ProgressFunc
	logger   *zap.Logger
}

// defaultOptions returns the default generation options.
func defaultOptions() generateOptions {
	return generateOptions{
		variants: []assemble.Variant{assemble.Long},
		margin:   compose.DefaultMarginInches,
	}
}

// clone creates a deep copy of generateOptions.
func (o generateOptions) clone() generateOptions {
	newOpts := o
	if o.variants != nil {
		newOpts.variants = make([]assemble.Variant, len(o.variants))
		copy(newOpts.variants, o.variants)
	}
	return newOpts
}

// assembleOptions converts to the assembler's form.
func (o generateOptions) assembleOptions() assemble.Options {
	return assemble.Options{
		JudgeVariants: o.variants,
		MarginInches:  o.margin,
		Logger:        o.logger,
		Progress:      o.progress,
	}
}
