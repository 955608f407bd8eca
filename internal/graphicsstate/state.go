package graphicsstate

import (
	"errors"

	"github.com/tsawler/judgeforms/model"
)

// ErrUnbalancedRestore is returned by Pop when there is no saved state, as
// for a Q without its q.
var ErrUnbalancedRestore = errors.New("Q without matching q")

// State is the part of the graphics state that decides where text lands.
type State struct {
	CTM   model.Matrix
	Text  Text
	saved []snapshot
}

// Text is the text state. Size is in text space units and Line is the
// matrix at the start of the current line.
type Text struct {
	Font    string
	Size    float64
	Leading float64
	Rise    float64
	Matrix  model.Matrix
	Line    model.Matrix
}

type snapshot struct {
	ctm  model.Matrix
	text Text
}

// New returns the state at the start of a page.
func New() *State {
	return &State{
		CTM:  model.Identity(),
		Text: Text{Size: 12, Matrix: model.Identity(), Line: model.Identity()},
	}
}

// Depth is the number of states saved by q and not yet restored.
func (s *State) Depth() int { return len(s.saved) }

// Push saves the state (q).
func (s *State) Push() {
	s.saved = append(s.saved, snapshot{ctm: s.CTM, text: s.Text})
}

// Pop restores the last saved state (Q).
func (s *State) Pop() error {
	n := len(s.saved)
	if n == 0 {
		return ErrUnbalancedRestore
	}
	s.CTM, s.Text = s.saved[n-1].ctm, s.saved[n-1].text
	s.saved = s.saved[:n-1]
	return nil
}

// Concat prepends m to the CTM (cm), so m applies before what is there.
func (s *State) Concat(m model.Matrix) {
	s.CTM = m.Then(s.CTM)
}

// BeginText resets both text matrices (BT).
func (s *State) BeginText() {
	s.SetTextMatrix(model.Identity())
}

// SetTextMatrix sets both text matrices (Tm).
func (s *State) SetTextMatrix(m model.Matrix) {
	s.Text.Matrix, s.Text.Line = m, m
}

// MoveLine starts a new line offset from the current one (Td).
func (s *State) MoveLine(tx, ty float64) {
	s.SetTextMatrix(model.Translate(tx, ty).Then(s.Text.Line))
}

// NextLine moves down by the leading (T*).
func (s *State) NextLine() {
	s.MoveLine(0, -s.Text.Leading)
}

// Advance moves along the baseline by dx unscaled text space units.
func (s *State) Advance(dx float64) {
	s.Text.Matrix = model.Translate(dx, 0).Then(s.Text.Matrix)
}

// TextToDevice maps unscaled text space, with rise applied, to device space.
func (s *State) TextToDevice() model.Matrix {
	return model.Translate(0, s.Text.Rise).Then(s.Text.Matrix).Then(s.CTM)
}
