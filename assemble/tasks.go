package assemble

import (
	"github.com/tsawler/judgeforms/roster"
)

// Task is the unit of generation: one judge's forms of one variant for a
// list of competitors. Long forms take one template copy per competitor,
// short forms one page per pair.
type Task struct {
	Row         int // the judge's index among the active judges
	Judge       roster.Judge
	Key         TemplateKey
	Competitors []roster.Competitor
}

// JudgeTasks lists the work for per-judge packets, grouped by judge in
// roster order, each judge's variants in the order given.
func JudgeTasks(judges []roster.Judge, comps []roster.Competitor, variants []Variant) []Task {
	var tasks []Task
	for i, j := range roster.ActiveJudges(judges) {
		for _, v := range variants {
			tasks = append(tasks, Task{
				Row:         i,
				Judge:       j,
				Key:         TemplateKey{Category: j.Category, Variant: v},
				Competitors: comps,
			})
		}
	}
	return tasks
}

// CategoryTasks lists the work for one category file: every active judge of
// the category against every competitor.
func CategoryTasks(key TemplateKey, judges []roster.Judge, comps []roster.Competitor) []Task {
	var tasks []Task
	for i, j := range roster.ActiveJudges(judges) {
		if j.Category != key.Category {
			continue
		}
		tasks = append(tasks, Task{Row: i, Judge: j, Key: key, Competitors: comps})
	}
	return tasks
}

// groupByJudge splits tasks into runs for the same roster row. Two rows
// holding identical judges stay separate packets.
func groupByJudge(tasks []Task) [][]Task {
	var groups [][]Task
	for i, t := range tasks {
		if i == 0 || t.Row != tasks[i-1].Row {
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], t)
	}
	return groups
}
