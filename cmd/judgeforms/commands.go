package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/urfave/cli/v2"

	"github.com/tsawler/judgeforms"
	"github.com/tsawler/judgeforms/assemble"
	"github.com/tsawler/judgeforms/roster"
)

type generateFunc func(*judgeforms.Generation) (*assemble.Output, error)

func generateCommand(g *globals, name, usage string, run generateFunc) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Action: func(c *cli.Context) error {
			s, log, err := openSession(c, g)
			if err != nil {
				return err
			}
			defer log.Sync()

			bar := newProgressBar(c.App.ErrWriter, !g.verbose)
			out, err := run(s.Generate().OnProgress(bar.update))
			bar.finish()
			return report(c, g, out, err)
		},
	}
}

func blankCommand(g *globals) *cli.Command {
	var forms cli.StringSlice
	return &cli.Command{
		Name:      "blank",
		Usage:     "copies of templates without any names filled in",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:        formFlag,
				Aliases:     []string{"f"},
				Usage:       "template and copy count, e.g. MUS_Long=3 (repeatable)",
				Required:    true,
				Destination: &forms,
			},
		},
		Action: func(c *cli.Context) error {
			counts, err := parseForms(forms.Value())
			if err != nil {
				return err
			}
			s, log, err := openSession(c, g)
			if err != nil {
				return err
			}
			defer log.Sync()
			out, err := s.Generate().BlankForms(counts)
			return report(c, g, out, err)
		},
	}
}

// parseForms reads KEY=COUNT pairs. Repeated keys add up.
func parseForms(values []string) (map[assemble.TemplateKey]int, error) {
	counts := make(map[assemble.TemplateKey]int)
	for _, v := range values {
		k, n, ok := strings.Cut(v, "=")
		if !ok {
			return nil, fmt.Errorf("--%s %q: want TEMPLATE=COUNT", formFlag, v)
		}
		key, err := assemble.ParseTemplateKey(k)
		if err != nil {
			return nil, err
		}
		count, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil || count < 0 {
			return nil, fmt.Errorf("--%s %q: count must be a whole number", formFlag, v)
		}
		counts[key] += count
	}
	return counts, nil
}

func rosterCommand(g *globals) *cli.Command {
	return &cli.Command{
		Name:  "roster",
		Usage: "print the judge roster as it will be numbered",
		Action: func(c *cli.Context) error {
			s, log, err := openSession(c, g)
			if err != nil {
				return err
			}
			defer log.Sync()
			fmt.Fprintln(c.App.Writer, judgeTable(s.Judges()))
			return nil
		},
	}
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func judgeTable(judges []roster.Judge) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Name", "Category", "Type", "Print").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, j := range judges {
		active := "yes"
		if !j.Active() {
			active = "no"
		}
		t.Row(strconv.Itoa(j.Number), j.Name, string(j.Category), string(j.Type), active)
	}
	return t.String()
}

// save writes out into dir, creating it if needed.
func save(dir string, out *assemble.Output) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, out.Name)
	if err := os.WriteFile(path, out.Data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
