package assemble

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tsawler/judgeforms/compose"
	"github.com/tsawler/judgeforms/labels"
	"github.com/tsawler/judgeforms/roster"
	"github.com/tsawler/judgeforms/writer"
)

var (
	// ErrNothingToGenerate reports that the rosters leave nothing to print.
	// It is a condition to show the operator, not a failure.
	ErrNothingToGenerate = errors.New("nothing to generate")
	// ErrNoActiveJudges means no judge is marked to print.
	ErrNoActiveJudges = fmt.Errorf("%w: no active judges", ErrNothingToGenerate)
	// ErrNoActiveCompetitors means no competitor is marked to print.
	ErrNoActiveCompetitors = fmt.Errorf("%w: no active competitors", ErrNothingToGenerate)
	// ErrNoOutput means generation ran but no template produced a page.
	ErrNoOutput = fmt.Errorf("%w: no forms were produced", ErrNothingToGenerate)
)

// ProgressFunc is told how far a run has got after each judge or category.
type ProgressFunc func(done, total int, label string)

// Options configures an Assembler.
type Options struct {
	// JudgeVariants are the variants included in per-judge packets.
	// Defaults to Long only.
	JudgeVariants []Variant
	// MarginInches is the blank border kept around overlays.
	MarginInches float64
	Logger       *zap.Logger
	Progress     ProgressFunc
}

// Assembler turns rosters into finished documents.
type Assembler struct {
	source   TemplateSource
	opts     Options
	composer *compose.Composer
	log      *zap.Logger
}

// New returns an Assembler reading templates from source.
func New(source TemplateSource, opts Options) *Assembler {
	if len(opts.JudgeVariants) == 0 {
		opts.JudgeVariants = []Variant{Long}
	}
	if opts.MarginInches <= 0 {
		opts.MarginInches = compose.DefaultMarginInches
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Assembler{
		source:   source,
		opts:     opts,
		composer: compose.New(opts.MarginInches),
		log:      log,
	}
}

// run holds the state of one generation call.
type run struct {
	a         *Assembler
	log       *zap.Logger
	start     time.Time
	templates map[TemplateKey]*compose.Template
	missing   map[TemplateKey]bool
}

func (a *Assembler) newRun(mode string) *run {
	return &run{
		a:         a,
		log:       a.log.With(zap.String("run_id", uuid.NewString()), zap.String("mode", mode)),
		start:     time.Now(),
		templates: make(map[TemplateKey]*compose.Template),
		missing:   make(map[TemplateKey]bool),
	}
}

// template returns the template for key, or nil when the source has none.
// Each template is parsed once per run.
func (r *run) template(key TemplateKey) (*compose.Template, error) {
	if t, ok := r.templates[key]; ok {
		return t, nil
	}
	if r.missing[key] {
		return nil, nil
	}
	t, err := r.a.source.Template(key)
	if errors.Is(err, ErrTemplateNotFound) {
		r.log.Info("template missing, skipping", zap.String("template", key.FileName()))
		r.missing[key] = true
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if t.Repaired() {
		r.log.Warn("template xref rebuilt", zap.String("template", key.FileName()))
	}
	r.log.Debug("template loaded",
		zap.String("template", key.FileName()),
		zap.String("pdf_version", t.Version()),
		zap.Int("pages", t.PageCount()))
	r.templates[key] = t
	return t, nil
}

// execute adds the pages of one task to doc.
func (r *run) execute(doc *writer.Document, task Task, ctx roster.Context) (int, error) {
	tpl, err := r.template(task.Key)
	if err != nil || tpl == nil {
		return 0, err
	}
	if task.Key.Variant == Short {
		n, err := r.a.composer.PackShort(doc, tpl, task.Judge, task.Competitors, ctx)
		if err != nil {
			return n, fmt.Errorf("%s for %s: %w", task.Key, task.Judge.Name, err)
		}
		return n, nil
	}
	added := 0
	for _, c := range task.Competitors {
		n, err := r.a.composer.PackLong(doc, tpl, task.Judge, c, ctx)
		added += n
		if err != nil {
			return added, fmt.Errorf("%s for %s, %s: %w", task.Key, task.Judge.Name, c.Name, err)
		}
	}
	return added, nil
}

func (r *run) progress(done, total int, label string) {
	if r.a.opts.Progress != nil {
		r.a.opts.Progress(done, total, label)
	}
}

func (r *run) finish(out *Output) {
	r.log.Info("generated",
		zap.String("file", out.Name),
		zap.Int("documents", out.Documents),
		zap.Int("pages", out.Pages),
		zap.Int("bytes", len(out.Data)),
		zap.Duration("elapsed", time.Since(r.start)),
	)
}

func newDocument(title string) *writer.Document {
	return writer.New(writer.WithInfo("Title", title), writer.WithInfo("Creator", "judgeforms"))
}

func activeSets(judges []roster.Judge, comps []roster.Competitor) ([]roster.Judge, []roster.Competitor, error) {
	activeJudges := roster.ActiveJudges(judges)
	if len(activeJudges) == 0 {
		return nil, nil, ErrNoActiveJudges
	}
	activeComps := roster.ActiveCompetitors(comps)
	if len(activeComps) == 0 {
		return nil, nil, ErrNoActiveCompetitors
	}
	return activeJudges, activeComps, nil
}

// ByJudge builds one packet per active judge holding that judge's forms for
// every active competitor. A single packet is returned as a PDF, several as
// a ZIP.
func (a *Assembler) ByJudge(judges []roster.Judge, comps []roster.Competitor, ctx roster.Context) (*Output, error) {
	judges, comps, err := activeSets(judges, comps)
	if err != nil {
		return nil, err
	}
	r := a.newRun("by-judge")

	groups := groupByJudge(JudgeTasks(judges, comps, a.opts.JudgeVariants))
	var files []file
	for i, group := range groups {
		judge := group[0].Judge
		name := fileName(".pdf", ctx.Session, judge.Name, fileDate(ctx.Date))
		doc := newDocument(name)
		pages := 0
		for _, task := range group {
			n, err := r.execute(doc, task, ctx)
			if err != nil {
				return nil, err
			}
			pages += n
		}
		r.progress(i+1, len(groups), judge.Name)
		if pages == 0 {
			r.log.Debug("no pages for judge", zap.String("judge", judge.Name))
			continue
		}
		data, err := doc.Bytes()
		if err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
		files = append(files, file{name: name, data: data, pages: pages})
	}

	var out *Output
	switch len(files) {
	case 0:
		return nil, ErrNoOutput
	case 1:
		out = single(files[0])
	default:
		out, err = archive(fileName(".zip", ctx.Session, "Judge_Packets"), files, ctx.Date)
		if err != nil {
			return nil, err
		}
	}
	r.finish(out)
	return out, nil
}

// ByCategory builds one file per category and variant, holding every active
// judge of the category against every active competitor, and zips them.
func (a *Assembler) ByCategory(judges []roster.Judge, comps []roster.Competitor, ctx roster.Context) (*Output, error) {
	judges, comps, err := activeSets(judges, comps)
	if err != nil {
		return nil, err
	}
	r := a.newRun("by-category")

	var files []file
	for i, cat := range roster.Categories {
		for _, v := range Variants {
			key := TemplateKey{Category: cat, Variant: v}
			tasks := CategoryTasks(key, judges, comps)
			if len(tasks) == 0 {
				r.log.Debug("no active judges in category", zap.String("category", string(cat)))
				break
			}
			name := fileName(".pdf", ctx.Session, string(cat), string(v), fileDate(ctx.Date))
			doc := newDocument(name)
			pages := 0
			for _, task := range tasks {
				n, err := r.execute(doc, task, ctx)
				if err != nil {
					return nil, err
				}
				pages += n
			}
			if pages == 0 {
				continue
			}
			data, err := doc.Bytes()
			if err != nil {
				return nil, fmt.Errorf("write %s: %w", name, err)
			}
			files = append(files, file{name: name, data: data, pages: pages})
		}
		r.progress(i+1, len(roster.Categories), cat.FullName())
	}
	if len(files) == 0 {
		return nil, ErrNoOutput
	}

	out, err := archive(fileName(".zip", ctx.Session, "Category_Files"), files, ctx.Date)
	if err != nil {
		return nil, err
	}
	r.finish(out)
	return out, nil
}

// Labels writes a contest label sheet for each category with active judges
// and zips them.
func (a *Assembler) Labels(judges []roster.Judge, comps []roster.Competitor, ctx roster.Context) (*Output, error) {
	judges, comps, err := activeSets(judges, comps)
	if err != nil {
		return nil, err
	}
	r := a.newRun("labels")

	byCat := roster.ByCategory(judges)
	var files []file
	for i, cat := range roster.Categories {
		if len(byCat[cat]) > 0 {
			files = append(files, file{
				name: fileName(".rtf", ctx.Session, string(cat), "Labels"),
				data: labels.ContestLabels(byCat[cat], comps, ctx),
			})
		}
		r.progress(i+1, len(roster.Categories), cat.FullName())
	}
	if len(files) == 0 {
		return nil, ErrNoOutput
	}

	out, err := archive(fileName(".zip", ctx.Session, "Labels"), files, ctx.Date)
	if err != nil {
		return nil, err
	}
	r.finish(out)
	return out, nil
}

// FolderLabels writes the folder label sheet for the active judges.
func (a *Assembler) FolderLabels(judges []roster.Judge, ctx roster.Context) (*Output, error) {
	if len(roster.ActiveJudges(judges)) == 0 {
		return nil, ErrNoActiveJudges
	}
	r := a.newRun("folder-labels")
	out := single(file{
		name: fileName(".rtf", ctx.Session, "Folder_Labels"),
		data: labels.FolderLabels(judges, ctx),
	})
	r.finish(out)
	return out, nil
}

// BlankForms copies each template counts[key] times, with no overlay, into
// one PDF. Keys are taken in category then variant order; zero counts and
// missing templates are skipped. When nothing is copied the result is nil.
func (a *Assembler) BlankForms(counts map[TemplateKey]int, ctx roster.Context) (*Output, error) {
	r := a.newRun("blank")
	name := fileName(".pdf", ctx.Session, "Blank_Forms")
	doc := newDocument(name)

	pages := 0
	for _, cat := range roster.Categories {
		for _, v := range Variants {
			key := TemplateKey{Category: cat, Variant: v}
			n := counts[key]
			if n <= 0 {
				continue
			}
			tpl, err := r.template(key)
			if err != nil {
				return nil, err
			}
			if tpl == nil {
				continue
			}
			for i := 0; i < n; i++ {
				added, err := tpl.ImportAll(doc)
				if err != nil {
					return nil, err
				}
				pages += added
			}
		}
	}
	if pages == 0 {
		r.log.Info("no blank forms requested")
		return nil, nil
	}

	data, err := doc.Bytes()
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", name, err)
	}
	out := single(file{name: name, data: data, pages: pages})
	r.finish(out)
	return out, nil
}
