package labels

import (
	"strconv"
	"strings"

	"github.com/tsawler/judgeforms/overlay"
	"github.com/tsawler/judgeforms/roster"
)

const contestHeader = `{\rtf1\ansi\deff0\nouicompat{\fonttbl{\f0\fnil\fcharset0 Arial;}}` +
	`{\colortbl ;\red0\green0\blue0;}` +
	`\viewkind4\uc1\pard\sa200\sl276\slmult1\f0\fs24\lang9 `

// ContestLabels writes one label page per judge and competitor pair: the
// judge name and number right aligned, the competitor (and, at chorus
// contests, the director) left aligned, and the contest line centered.
// Judges numbered 0 are skipped.
func ContestLabels(judges []roster.Judge, comps []roster.Competitor, ctx roster.Context) []byte {
	var b strings.Builder
	b.WriteString(contestHeader)

	var numbered []roster.Judge
	for _, j := range judges {
		if j.Number != 0 {
			numbered = append(numbered, j)
		}
	}

	contest := text(ctx.Line())
	total := len(numbered) * len(comps)
	n := 0
	for _, j := range numbered {
		for _, c := range comps {
			n++
			compLine := text(overlay.DisplayNumber(c.Number) + ". " + c.Name)
			if ctx.IsChorus() && strings.TrimSpace(c.Director) != "" {
				compLine += `\line ` + text(c.Director)
			}

			b.WriteString(`\pard\qr\b\fs32 ` + text(j.Name) + ` - \fs72 ` + strconv.Itoa(j.Number) + `\b0\fs24\par`)
			b.WriteString(`\pard\ql ` + compLine + `\par`)
			b.WriteString(`\pard\qc ` + contest + `\par`)
			b.WriteString(`\pard\par`)
			if n < total {
				b.WriteString(`\page `)
			}
		}
	}

	b.WriteString("}")
	return []byte(b.String())
}

// Avery 8163 sheet: 2" x 4" labels, two across with a gutter, on letter
// paper. Measurements in twips.
const folderHeader = `{\rtf1\ansi\deff0\nouicompat\viewkind4\uc1` +
	`{\fonttbl{\f0\fnil\fcharset0 Arial;}}` +
	`{\colortbl ;\red0\green0\blue0;}` +
	`\paperw12240\paperh15840\margl225\margr225\margt720\margb720` +
	`\pard\plain\fs20 `

const borderless = `\clvertalc\brdrt\brdrnil\brdrl\brdrnil\brdrb\brdrnil\brdrr\brdrnil`

var folderRow = `\trowd\trgaph108\trleft0\trrh2880` +
	borderless + `\cellx5760` +
	borderless + `\cellx6030` +
	borderless + `\cellx11790`

// FolderLabels writes a sheet of folder labels, two judges per row. Only
// judges that print and are numbered get a label; an odd judge out leaves
// the last right-hand label blank.
func FolderLabels(judges []roster.Judge, ctx roster.Context) []byte {
	active := roster.ActiveJudges(judges)

	var b strings.Builder
	b.WriteString(folderHeader)
	for i := 0; i < len(active); i += 2 {
		b.WriteString(folderRow)
		writeFolderCell(&b, &active[i], ctx)
		b.WriteString(`\pard\intbl\cell`)
		if i+1 < len(active) {
			writeFolderCell(&b, &active[i+1], ctx)
		} else {
			writeFolderCell(&b, nil, ctx)
		}
		b.WriteString(`\row`)
	}
	b.WriteString("}")
	return []byte(b.String())
}

func writeFolderCell(b *strings.Builder, j *roster.Judge, ctx roster.Context) {
	if j == nil {
		b.WriteString(`\pard\intbl\cell`)
		return
	}
	b.WriteString(`\pard\intbl\qc\sa0\sb0`)
	b.WriteString(`\b\f0\fs28 ` + text(j.Name) + `\b0\par`)
	b.WriteString(`\fs22 ` + text(j.Category.FullName()+" Category") + `\par`)
	b.WriteString(`\fs20 ` + text(ctx.Session) + `\par`)
	b.WriteString(text(ctx.District) + `\par`)
	b.WriteString(text(ctx.DateText()))
	b.WriteString(`\cell`)
}
