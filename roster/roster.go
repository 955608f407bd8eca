package roster

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is a judging category. Values outside MUS, PER and SNG are kept
// as the raw text and sort after the known ones.
type Category string

const (
	Musicality  Category = "MUS"
	Performance Category = "PER"
	Singing     Category = "SNG"
)

// Categories lists the known categories in panel order.
var Categories = []Category{Musicality, Performance, Singing}

var categoryNames = map[Category]string{
	Musicality:  "Musicality",
	Performance: "Performance",
	Singing:     "Singing",
}

// ParseCategory normalizes s to an upper-case, trimmed category code.
func ParseCategory(s string) Category {
	return Category(strings.ToUpper(strings.TrimSpace(s)))
}

// Known reports whether c is one of MUS, PER or SNG.
func (c Category) Known() bool {
	_, ok := categoryNames[c]
	return ok
}

// FullName returns the display name, or the code itself for unknown
// categories.
func (c Category) FullName() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return string(c)
}

func (c Category) rank() int {
	for i, known := range Categories {
		if c == known {
			return i
		}
	}
	return 99
}

// JudgeType distinguishes scoring judges from judges in training.
type JudgeType string

const (
	Official JudgeType = "Official"
	Practice JudgeType = "Practice"
)

var titleCaser = cases.Title(language.English)

// ParseJudgeType title-cases and trims s.
func ParseJudgeType(s string) JudgeType {
	return JudgeType(titleCaser.String(strings.TrimSpace(s)))
}

func (t JudgeType) rank() int {
	switch t {
	case Official:
		return 0
	case Practice:
		return 1
	}
	return 99
}

// Unnumbered marks a judge row that has not been given a number yet, such
// as one added by hand.
const Unnumbered = -1

// Judge is one row of the judge roster. Number 0 is a placeholder and is
// never printed.
type Judge struct {
	Number   int
	Name     string
	Category Category
	Type     JudgeType
	Print    bool
}

// Active reports whether the judge receives output.
func (j Judge) Active() bool {
	return j.Print && j.Number != 0
}

// LastName returns the last whitespace-separated token of the name.
func (j Judge) LastName() string {
	fields := strings.Fields(j.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// Placeholder returns the stand-in judge used to balance a short panel.
func Placeholder(c Category) Judge {
	return Judge{
		Name:     "Absent " + string(c) + " Judge",
		Category: c,
		Type:     Official,
	}
}

// Competitor is one row of the competitor roster. Number is the order of
// appearance as imported; it is coerced only for display.
type Competitor struct {
	Number   string
	Name     string
	Director string
	Print    bool
}

// Active reports whether the competitor receives output.
func (c Competitor) Active() bool {
	return c.Print
}

// numeric returns the integer value of a competitor number, truncating
// decimals the way spreadsheets export them ("10.0").
func numeric(s string) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f != f || f > 1e15 || f < -1e15 {
		return 0, false
	}
	return int(f), true
}

// Sessions are the contest sessions forms are printed for.
var Sessions = []string{
	"Quartet Quarter-Finals",
	"Quartet Semi-Finals",
	"Chorus Finals",
	"Quartet Finals",
}

// DefaultSession is used when no session is configured.
const DefaultSession = "Quartet Semi-Finals"

// Context identifies the contest a generation run prints for.
type Context struct {
	District string
	Session  string
	Date     time.Time
}

// IsChorus reports whether the session is a chorus contest, which adds the
// director to competitor lines.
func (c Context) IsChorus() bool {
	return strings.Contains(c.Session, "Chorus")
}

// DateText returns the printed date, MM/DD/YYYY.
func (c Context) DateText() string {
	return c.Date.Format("01/02/2006")
}

// Line returns "{district} - {session}, {date}".
func (c Context) Line() string {
	return c.District + " - " + c.Session + ", " + c.DateText()
}
