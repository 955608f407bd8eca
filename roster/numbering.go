package roster

import (
	"slices"
	"sort"
	"strconv"
)

// PracticeBase is the first number given to practice judges in each
// category.
const PracticeBase = 50

// Balance pads every category with placeholder judges until each has as
// many Official judges as the largest panel. The input is not modified.
func Balance(judges []Judge) []Judge {
	counts := make(map[Category]int)
	maxCount := 0
	for _, j := range judges {
		if j.Type == Official && j.Category.Known() {
			counts[j.Category]++
			if counts[j.Category] > maxCount {
				maxCount = counts[j.Category]
			}
		}
	}

	out := append([]Judge(nil), judges...)
	if maxCount == 0 {
		return out
	}
	for _, c := range Categories {
		for i := counts[c]; i < maxCount; i++ {
			out = append(out, Placeholder(c))
		}
	}
	return out
}

// AssignNumbers normalizes category and type, orders the roster by
// category, type and last name, and numbers it. Officials are numbered from
// 1 continuing across MUS, PER and SNG; practice judges start at
// PracticeBase in every category. Judges of unknown category or type keep
// their number. The input is not modified.
func AssignNumbers(judges []Judge) []Judge {
	out := make([]Judge, len(judges))
	for i, j := range judges {
		j.Category = ParseCategory(string(j.Category))
		j.Type = ParseJudgeType(string(j.Type))
		out[i] = j
	}

	sort.SliceStable(out, func(a, b int) bool {
		ja, jb := out[a], out[b]
		if ra, rb := ja.Category.rank(), jb.Category.rank(); ra != rb {
			return ra < rb
		}
		if ra, rb := ja.Type.rank(), jb.Type.rank(); ra != rb {
			return ra < rb
		}
		return ja.LastName() < jb.LastName()
	})

	official := 1
	practice := make(map[Category]int)
	for i := range out {
		j := &out[i]
		if !j.Category.Known() {
			continue
		}
		switch j.Type {
		case Official:
			j.Number = official
			official++
		case Practice:
			j.Number = PracticeBase + practice[j.Category]
			practice[j.Category]++
		}
	}
	return out
}

// Normalize balances the panels and numbers the result, the treatment an
// imported roster receives. The input is not modified.
func Normalize(judges []Judge) []Judge {
	out := slices.Clone(judges)
	for i := range out {
		out[i].Category = ParseCategory(string(out[i].Category))
		out[i].Type = ParseJudgeType(string(out[i].Type))
	}
	return AssignNumbers(Balance(out))
}

// FillJudgeNumbers gives every Unnumbered judge the next number after the
// largest one in use, in row order.
func FillJudgeNumbers(judges []Judge) {
	next := 0
	for _, j := range judges {
		if j.Number > next {
			next = j.Number
		}
	}
	for i := range judges {
		if judges[i].Number < 0 {
			next++
			judges[i].Number = next
		}
	}
}

// FillCompetitorNumbers gives every competitor with a blank number the next
// order of appearance after the largest numeric one, in row order.
func FillCompetitorNumbers(competitors []Competitor) {
	next := 0
	for _, c := range competitors {
		if n, ok := numeric(c.Number); ok && n > next {
			next = n
		}
	}
	for i := range competitors {
		if competitors[i].Number == "" {
			next++
			competitors[i].Number = strconv.Itoa(next)
		}
	}
}

// ActiveJudges returns the judges that receive output, in roster order.
func ActiveJudges(judges []Judge) []Judge {
	var out []Judge
	for _, j := range judges {
		if j.Active() {
			out = append(out, j)
		}
	}
	return out
}

// ActiveCompetitors returns the competitors that receive output.
func ActiveCompetitors(competitors []Competitor) []Competitor {
	var out []Competitor
	for _, c := range competitors {
		if c.Active() {
			out = append(out, c)
		}
	}
	return out
}

// ByCategory groups judges by category, preserving order within each.
func ByCategory(judges []Judge) map[Category][]Judge {
	out := make(map[Category][]Judge)
	for _, j := range judges {
		out[j.Category] = append(out[j.Category], j)
	}
	return out
}
