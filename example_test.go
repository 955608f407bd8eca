package judgeforms_test

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/tsawler/judgeforms"
	"github.com/tsawler/judgeforms/assemble"
	"github.com/tsawler/judgeforms/config"
	"github.com/tsawler/judgeforms/roster"
)

// These examples show the package API; they need a contest file and
// template directory and are compiled but not run.

func Example_byJudge() {
	cfg, err := config.Load("contest.yaml")
	if err != nil {
		log.Fatal(err)
	}
	s, err := judgeforms.Open(cfg, nil)
	if err != nil {
		log.Fatal(err)
	}

	out, err := s.Generate().ByJudge()
	if errors.Is(err, assemble.ErrNothingToGenerate) {
		fmt.Println("nothing to print:", err)
		return
	}
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(out.Name, out.Data, 0o644); err != nil {
		log.Fatal(err)
	}
}

func Example_options() {
	s := judgeforms.NewSession(roster.Context{District: "Example", Session: roster.DefaultSession},
		assemble.NewDirSource("templates"))

	out, err := s.Generate().
		Variants(assemble.Long, assemble.Short).
		Margin(0.5).
		OnProgress(func(done, total int, label string) {
			fmt.Printf("%d/%d %s\n", done, total, label)
		}).
		ByCategory()
	_ = out
	_ = err
}

func Example_blankForms() {
	s := judgeforms.NewSession(roster.Context{Session: roster.DefaultSession}, assemble.NewDirSource("templates"))

	out, err := s.Generate().BlankForms(map[assemble.TemplateKey]int{
		{Category: roster.Musicality, Variant: assemble.Long}: 5,
		{Category: roster.Singing, Variant: assemble.Short}:   2,
	})
	if err != nil {
		log.Fatal(err)
	}
	if out == nil {
		fmt.Println("no templates matched")
	}
}

func Example_manualEdits() {
	s := judgeforms.NewSession(roster.Context{Session: roster.DefaultSession}, assemble.NewDirSource("templates"))
	if err := s.ImportJudges("judges.csv"); err != nil {
		log.Fatal(err)
	}
	s.AddJudge(roster.Judge{Number: roster.Unnumbered, Name: "Late Addition", Category: roster.Singing, Type: roster.Practice, Print: true})
	s.Renumber()

	labels := judgeforms.Must(s.Generate().FolderLabels())
	_ = labels
}
