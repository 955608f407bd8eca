// Command judgeforms prints contest judging forms and labels.
//
//	judgeforms -c contest.yaml -j judges.csv -p competitors.csv by-judge
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tsawler/judgeforms"
	"github.com/tsawler/judgeforms/assemble"
	"github.com/tsawler/judgeforms/config"
)

const (
	configFlag      = "config"
	judgesFlag      = "judges"
	competitorsFlag = "competitors"
	templatesFlag   = "templates"
	outFlag         = "out"
	verboseFlag     = "verbose"
	districtFlag    = "district"
	sessionFlag     = "session"
	dateFlag        = "date"
	formFlag        = "form"
)

var build string
var semanticVersion = "v0.1.0-dev" + build

var (
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5A50A")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E01B24")).Bold(true)
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF"))
)

// globals are the flags shared by every command.
type globals struct {
	configPath  string
	judges      string
	competitors string
	templates   string
	out         string
	verbose     bool
	district    string
	session     string
	date        string
}

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		var exit cli.ExitCoder
		if errors.As(err, &exit) {
			os.Exit(exit.ExitCode())
		}
		fmt.Fprintln(os.Stderr, errorStyle.Render("error:"), err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	var g globals
	return &cli.App{
		Name:      "judgeforms",
		Usage:     "Print judging forms and labels for a singing contest",
		Version:   semanticVersion,
		Writer:    stdout,
		ErrWriter: stderr,
		// main decides the exit status
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        configFlag,
				Aliases:     []string{"c"},
				Usage:       "contest configuration file (YAML)",
				Destination: &g.configPath,
			},
			&cli.StringFlag{
				Name:        judgesFlag,
				Aliases:     []string{"j"},
				Usage:       "judge roster, CSV, HTML or XLSX",
				Destination: &g.judges,
			},
			&cli.StringFlag{
				Name:        competitorsFlag,
				Aliases:     []string{"p"},
				Usage:       "competitor roster, CSV, HTML or XLSX",
				Destination: &g.competitors,
			},
			&cli.StringFlag{
				Name:        templatesFlag,
				Aliases:     []string{"t"},
				Usage:       "directory holding {CAT}_{Long|Short}.pdf templates",
				Destination: &g.templates,
			},
			&cli.StringFlag{
				Name:        outFlag,
				Aliases:     []string{"o"},
				Usage:       "directory to write generated files to",
				Value:       ".",
				Destination: &g.out,
			},
			&cli.BoolFlag{
				Name:        verboseFlag,
				Aliases:     []string{"v"},
				Usage:       "log every step",
				Destination: &g.verbose,
			},
			&cli.StringFlag{
				Name:        districtFlag,
				Usage:       "district name, overrides the configuration file",
				Destination: &g.district,
			},
			&cli.StringFlag{
				Name:        sessionFlag,
				Usage:       "contest session, overrides the configuration file",
				Destination: &g.session,
			},
			&cli.StringFlag{
				Name:        dateFlag,
				Usage:       "contest date (YYYY-MM-DD), overrides the configuration file",
				Destination: &g.date,
			},
		},
		Commands: []*cli.Command{
			generateCommand(&g, "by-judge", "one packet per judge", (*judgeforms.Generation).ByJudge),
			generateCommand(&g, "by-category", "one file per category and form", (*judgeforms.Generation).ByCategory),
			generateCommand(&g, "labels", "contest label sheets per category", (*judgeforms.Generation).Labels),
			generateCommand(&g, "folder-labels", "judge folder labels", (*judgeforms.Generation).FolderLabels),
			blankCommand(&g),
			rosterCommand(&g),
		},
	}
}

// newLogger builds a production logger that stays quiet below warnings, or
// a development logger when verbose.
func newLogger(verbose bool, w io.Writer) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	enc := zapcore.NewJSONEncoder(cfg.EncoderConfig)
	level := cfg.Level
	if verbose {
		dev := zap.NewDevelopmentConfig()
		enc = zapcore.NewConsoleEncoder(dev.EncoderConfig)
		level = dev.Level
	}
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level))
}

// loadConfig reads the configuration file, if any, and applies flag
// overrides.
func loadConfig(g *globals) (*config.Config, error) {
	cfg := config.Default()
	if g.configPath != "" {
		var err error
		if cfg, err = config.Load(g.configPath); err != nil {
			return nil, err
		}
	}
	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&cfg.Judges, g.judges)
	override(&cfg.Competitors, g.competitors)
	override(&cfg.Templates, g.templates)
	override(&cfg.District, g.district)
	override(&cfg.Session, g.session)
	override(&cfg.Date, g.date)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}
	return cfg, nil
}

func openSession(c *cli.Context, g *globals) (*judgeforms.Session, *zap.Logger, error) {
	log := newLogger(g.verbose, c.App.ErrWriter)
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, log, err
	}
	s, err := judgeforms.Open(cfg, log)
	return s, log, err
}

// report turns the outcome of a generation into the command's result.
// Nothing to print is a warning with exit status 2.
func report(c *cli.Context, g *globals, out *assemble.Output, err error) error {
	if errors.Is(err, assemble.ErrNothingToGenerate) {
		fmt.Fprintln(c.App.ErrWriter, warnStyle.Render("warning:"), err)
		return cli.Exit("", 2)
	}
	if err != nil {
		return err
	}
	if out == nil {
		fmt.Fprintln(c.App.ErrWriter, warnStyle.Render("warning:"), "no forms matched the request")
		return cli.Exit("", 2)
	}
	path, err := save(g.out, out)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, doneStyle.Render("wrote"), path, summary(out))
	return nil
}

func summary(out *assemble.Output) string {
	if out.Pages == 0 {
		return fmt.Sprintf("(%d files)", out.Documents)
	}
	return fmt.Sprintf("(%d files, %d pages)", out.Documents, out.Pages)
}
