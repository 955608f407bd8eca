// Package config loads the contest configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/judgeforms/assemble"
	"github.com/tsawler/judgeforms/compose"
	"github.com/tsawler/judgeforms/roster"
)

// DefaultTemplateDir is where templates are looked for when the file does
// not say.
const DefaultTemplateDir = "templates"

// dateLayouts are the accepted spellings of the contest date.
var dateLayouts = []string{"2006-01-02", "01/02/2006", "1/2/2006"}

// Config models the contest file:
//
//	district: Example
//	session: Quartet Semi-Finals
//	date: 2024-05-01
//	templates: templates
//	margin_inches: 0.25
//	judge_variants: [Long]
type Config struct {
	District      string   `yaml:"district"`
	Session       string   `yaml:"session"`
	Date          string   `yaml:"date"`
	Templates     string   `yaml:"templates"`
	MarginInches  float64  `yaml:"margin_inches"`
	JudgeVariants []string `yaml:"judge_variants"`

	// Roster files to import, CSV, HTML or XLSX.
	Judges      string `yaml:"judges,omitempty"`
	Competitors string `yaml:"competitors,omitempty"`
}

// Default returns the configuration used for fields a file leaves out.
func Default() *Config {
	return &Config{
		Session:       roster.DefaultSession,
		Templates:     DefaultTemplateDir,
		MarginInches:  compose.DefaultMarginInches,
		JudgeVariants: []string{string(assemble.Long)},
	}
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a configuration over the defaults. Unknown keys are
// rejected so a misspelt field is not silently ignored.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse: %w", err)
	}
	cfg.District = strings.TrimSpace(cfg.District)
	cfg.Session = strings.TrimSpace(cfg.Session)
	if cfg.Session == "" {
		cfg.Session = roster.DefaultSession
	}
	if cfg.Templates == "" {
		cfg.Templates = DefaultTemplateDir
	}
	if cfg.MarginInches == 0 {
		cfg.MarginInches = compose.DefaultMarginInches
	}
	if len(cfg.JudgeVariants) == 0 {
		cfg.JudgeVariants = []string{string(assemble.Long)}
	}
	return cfg, nil
}

// Validate reports every problem that would stop generation.
func (c *Config) Validate() error {
	var errs []error
	if c.District == "" {
		errs = append(errs, errors.New("district is required"))
	}
	if !slices.Contains(roster.Sessions, c.Session) {
		errs = append(errs, fmt.Errorf("session %q is not one of %s", c.Session, strings.Join(roster.Sessions, ", ")))
	}
	if _, err := c.ContestDate(); err != nil {
		errs = append(errs, err)
	}
	if c.MarginInches < 0 || c.MarginInches >= 3 {
		errs = append(errs, fmt.Errorf("margin_inches %g out of range", c.MarginInches))
	}
	if _, err := c.Variants(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ContestDate parses the date field.
func (c *Config) ContestDate() (time.Time, error) {
	s := strings.TrimSpace(c.Date)
	if s == "" {
		return time.Time{}, errors.New("date is required")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("date %q: want YYYY-MM-DD", c.Date)
}

// Variants parses judge_variants.
func (c *Config) Variants() ([]assemble.Variant, error) {
	out := make([]assemble.Variant, 0, len(c.JudgeVariants))
	for _, s := range c.JudgeVariants {
		v, err := assemble.ParseVariant(s)
		if err != nil {
			return nil, fmt.Errorf("judge_variants: %w", err)
		}
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// Context returns the contest identity for a generation run.
func (c *Config) Context() (roster.Context, error) {
	if err := c.Validate(); err != nil {
		return roster.Context{}, err
	}
	date, _ := c.ContestDate()
	return roster.Context{District: c.District, Session: c.Session, Date: date}, nil
}
