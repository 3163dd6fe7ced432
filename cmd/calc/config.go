package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/daoshengwanwu/calculator"
)

// Sweep modes.
const (
	modeSequential = "sequential"
	modeProduct    = "product"
)

// sweepConfig is the layout of a --config file.
type sweepConfig struct {
	Vars []varConfig `yaml:"vars"`
	// Mode is sequential or product. Empty means sequential.
	Mode string `yaml:"mode"`
	// DB is a database path in which to save the run.
	DB string `yaml:"db"`
}

type varConfig struct {
	Name      string  `yaml:"name"`
	Lower     float64 `yaml:"lower"`
	Upper     float64 `yaml:"upper"`
	LowerOpen bool    `yaml:"lower_open"`
	UpperOpen bool    `yaml:"upper_open"`
	Span      float64 `yaml:"span"`
}

func loadConfig(path string) (*sweepConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg sweepConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	switch cfg.Mode {
	case "", modeSequential, modeProduct:
	default:
		return nil, fmt.Errorf("config %s: unknown sweep mode %q", path, cfg.Mode)
	}
	return &cfg, nil
}

// addTo adds the configured variables to vs.
func (cfg *sweepConfig) addTo(vs *calculator.VarSet) error {
	for _, v := range cfg.Vars {
		if _, err := vs.Add(v.Name, v.Lower, v.LowerOpen, v.Upper, v.UpperOpen, v.Span); err != nil {
			return fmt.Errorf("config variable %q: %w", v.Name, err)
		}
	}
	return nil
}

// addVarFlags adds variables from --var definitions to vs.
func addVarFlags(vs *calculator.VarSet, defs []string) error {
	for _, def := range defs {
		v, err := parseVar(def)
		if err != nil {
			return err
		}
		if _, err := vs.Add(v.Name, v.Lower, v.LowerOpen, v.Upper, v.UpperOpen, v.Span); err != nil {
			return fmt.Errorf("variable %q: %w", v.Name, err)
		}
	}
	return nil
}

// parseVar parses a variable in interval notation, name=[lower,upper]:span.
// Parentheses in place of brackets make a bound open. The bounds and span may
// be any expressions without variables. The span defaults to 1.
func parseVar(def string) (varConfig, error) {
	name, rest, ok := strings.Cut(def, "=")
	if !ok {
		return varConfig{}, fmt.Errorf(`variable definitions must be "name=[lower,upper]:span", not %q`, def)
	}
	v := varConfig{Name: strings.TrimSpace(name), Span: 1}
	body, span, hasSpan := strings.Cut(strings.TrimSpace(rest), ":")
	body = strings.TrimSpace(body)
	if len(body) < 2 {
		return varConfig{}, fmt.Errorf("variable %q: missing interval", v.Name)
	}
	switch body[0] {
	case '[':
	case '(':
		v.LowerOpen = true
	default:
		return varConfig{}, fmt.Errorf("variable %q: interval must start with [ or (", v.Name)
	}
	switch body[len(body)-1] {
	case ']':
	case ')':
		v.UpperOpen = true
	default:
		return varConfig{}, fmt.Errorf("variable %q: interval must end with ] or )", v.Name)
	}
	lo, hi, ok := strings.Cut(body[1:len(body)-1], ",")
	if !ok {
		return varConfig{}, fmt.Errorf("variable %q: interval needs two bounds separated by a comma", v.Name)
	}
	var err error
	if v.Lower, err = calculator.EvalString(lo); err != nil {
		return varConfig{}, fmt.Errorf("variable %q lower bound: %w", v.Name, err)
	}
	if v.Upper, err = calculator.EvalString(hi); err != nil {
		return varConfig{}, fmt.Errorf("variable %q upper bound: %w", v.Name, err)
	}
	if hasSpan {
		if v.Span, err = calculator.EvalString(span); err != nil {
			return varConfig{}, fmt.Errorf("variable %q span: %w", v.Name, err)
		}
	}
	return v, nil
}
