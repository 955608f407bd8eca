package judgeforms

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/tsawler/judgeforms/assemble"
	"github.com/tsawler/judgeforms/roster"
)

// Session holds the rosters and contest details for one sitting of the
// tool. It is owned by a single caller and is not safe for concurrent use.
// Rosters are replaced wholesale by an import and changed in place by the
// edit methods.
type Session struct {
	ctx         roster.Context
	judges      []roster.Judge
	competitors []roster.Competitor
	templates   assemble.TemplateSource
	log         *zap.Logger
	defaults    generateOptions
}

// Context returns the contest the session prints for.
func (s *Session) Context() roster.Context {
	return s.ctx
}

// SetContext changes the contest details. The chorus flag of already
// imported competitors is not revisited.
func (s *Session) SetContext(ctx roster.Context) {
	s.ctx = ctx
}

// Judges returns a copy of the judge roster.
func (s *Session) Judges() []roster.Judge {
	return slices.Clone(s.judges)
}

// Competitors returns a copy of the competitor roster.
func (s *Session) Competitors() []roster.Competitor {
	return slices.Clone(s.competitors)
}

// ImportJudges replaces the judge roster with the contents of a CSV, HTML
// or XLSX export. Imported judges are balanced and numbered.
func (s *Session) ImportJudges(path string) error {
	judges, err := roster.ReadJudgesFile(path)
	if err != nil {
		return fmt.Errorf("import judges: %w", err)
	}
	s.judges = judges
	s.log.Info("imported judges", zap.String("file", path), zap.Int("judges", len(judges)),
		zap.Int("active", len(roster.ActiveJudges(judges))))
	return nil
}

// ImportCompetitors replaces the competitor roster. Directors are kept only
// for chorus sessions.
func (s *Session) ImportCompetitors(path string) error {
	comps, err := roster.ReadCompetitorsFile(path, s.ctx.IsChorus())
	if err != nil {
		return fmt.Errorf("import competitors: %w", err)
	}
	s.competitors = comps
	s.log.Info("imported competitors", zap.String("file", path), zap.Int("competitors", len(comps)))
	return nil
}

// SetJudges replaces the judge roster as given. Category and type text is
// normalized; numbers are left alone.
func (s *Session) SetJudges(judges []roster.Judge) {
	s.judges = slices.Clone(judges)
	for i := range s.judges {
		s.judges[i].Category = roster.ParseCategory(string(s.judges[i].Category))
		s.judges[i].Type = roster.ParseJudgeType(string(s.judges[i].Type))
	}
}

// SetCompetitors replaces the competitor roster as given.
func (s *Session) SetCompetitors(comps []roster.Competitor) {
	s.competitors = slices.Clone(comps)
}

// AddJudge appends a judge. A judge with number roster.Unnumbered gets the
// next free number.
func (s *Session) AddJudge(j roster.Judge) {
	j.Category = roster.ParseCategory(string(j.Category))
	j.Type = roster.ParseJudgeType(string(j.Type))
	s.judges = append(s.judges, j)
	roster.FillJudgeNumbers(s.judges)
}

// UpdateJudge replaces the judge at index i.
func (s *Session) UpdateJudge(i int, j roster.Judge) error {
	if i < 0 || i >= len(s.judges) {
		return fmt.Errorf("judge index %d out of range [0, %d)", i, len(s.judges))
	}
	s.judges[i] = j
	roster.FillJudgeNumbers(s.judges)
	return nil
}

// RemoveJudge deletes the judge at index i.
func (s *Session) RemoveJudge(i int) error {
	if i < 0 || i >= len(s.judges) {
		return fmt.Errorf("judge index %d out of range [0, %d)", i, len(s.judges))
	}
	s.judges = slices.Delete(s.judges, i, i+1)
	return nil
}

// Balance pads short panels with placeholders.
func (s *Session) Balance() {
	s.judges = roster.Balance(s.judges)
}

// Renumber sorts the judges and assigns their numbers afresh.
func (s *Session) Renumber() {
	s.judges = roster.AssignNumbers(s.judges)
}

// AddCompetitor appends a competitor. A blank number becomes the next
// order of appearance.
func (s *Session) AddCompetitor(c roster.Competitor) {
	s.competitors = append(s.competitors, c)
	roster.FillCompetitorNumbers(s.competitors)
}

// UpdateCompetitor replaces the competitor at index i.
func (s *Session) UpdateCompetitor(i int, c roster.Competitor) error {
	if i < 0 || i >= len(s.competitors) {
		return fmt.Errorf("competitor index %d out of range [0, %d)", i, len(s.competitors))
	}
	s.competitors[i] = c
	roster.FillCompetitorNumbers(s.competitors)
	return nil
}

// RemoveCompetitor deletes the competitor at index i.
func (s *Session) RemoveCompetitor(i int) error {
	if i < 0 || i >= len(s.competitors) {
		return fmt.Errorf("competitor index %d out of range [0, %d)", i, len(s.competitors))
	}
	s.competitors = slices.Delete(s.competitors, i, i+1)
	return nil
}

// Generate starts a generation run with the session's defaults.
func (s *Session) Generate() *Generation {
	return &Generation{session: s, options: s.defaults.clone()}
}
