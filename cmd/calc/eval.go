package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/daoshengwanwu/calculator"
)

type evalOptions struct {
	in    string
	verb  string
	given []string
	echo  bool
}

func newEvalCmd() *cobra.Command {
	var opts evalOptions
	cmd := &cobra.Command{
		Use:   "eval [expression...]",
		Short: "Evaluate expressions",
		Long: `Evaluates each line of the input file, then each argument, as an
expression and prints its result. With neither, each line of standard input
is an expression.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, args, opts)
		},
	}
	cmd.Flags().StringVar(&opts.in, "in", "", "input file, one expression per line (- for stdin; default stdin if no args given)")
	cmd.Flags().StringVar(&opts.verb, "fmt", "%g", "result formatting string")
	cmd.Flags().StringArrayVar(&opts.given, "given", nil, "name=value variable definition (any number of times)")
	cmd.Flags().BoolVar(&opts.echo, "echo", false, "print the resolved tokens before each result")
	return cmd
}

func runEval(cmd *cobra.Command, args []string, opts evalOptions) error {
	vs := calculator.NewVarSet()
	for _, g := range opts.given {
		if err := addGiven(vs, g); err != nil {
			return err
		}
	}

	var ins []io.RuneScanner
	in, closeIn, err := input(cmd, opts.in, len(args) == 0)
	if err != nil {
		return err
	}
	if in != nil {
		defer closeIn()
		ins = append(ins, in)
	}
	for _, arg := range args {
		ins = append(ins, strings.NewReader(arg))
	}

	var exprs []*calculator.Expr
	for _, in := range ins {
		for {
			// First check whether we're done with the input.
			done, err := skipSpace(in)
			if err != nil {
				return err
			}
			if done {
				break
			}
			e, err := calculator.Parse(in, calculator.WithVars(vs), calculator.StopOn('\n'))
			if err != nil {
				return err
			}
			exprs = append(exprs, e)
		}
	}

	out := cmd.OutOrStdout()
	ctx := calculator.NewContext()
	failed := 0
	for _, e := range exprs {
		if opts.echo {
			fmt.Fprintf(out, "%v : ", e)
		}
		r, err := ctx.Eval(e)
		if err != nil {
			logger.Debug("evaluation failed", zap.Stringer("expr", e), zap.Error(err))
			fmt.Fprintln(out, err)
			failed++
			continue
		}
		logger.Debug("evaluated", zap.Stringer("expr", e), zap.Float64("result", r))
		fmt.Fprintf(out, opts.verb+"\n", r)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d expressions failed", failed, len(exprs))
	}
	return nil
}

// addGiven adds a variable fixed at a single value from a name=value
// definition. The value may be any expression without variables.
func addGiven(vs *calculator.VarSet, def string) error {
	name, val, ok := strings.Cut(def, "=")
	if !ok {
		return fmt.Errorf(`variable definitions must be "name=value", not %q`, def)
	}
	name = strings.TrimSpace(name)
	r, err := calculator.EvalString(val)
	if err != nil {
		return fmt.Errorf("setting %s: %w", name, err)
	}
	if _, err := vs.Add(name, r, false, r, false, 0); err != nil {
		return fmt.Errorf("setting %s: %w", name, err)
	}
	return nil
}

// input opens the file named by --in, or standard input for "-". Standard
// input is also used when std is true and no file is named.
func input(cmd *cobra.Command, name string, std bool) (io.RuneScanner, func() error, error) {
	switch {
	case name != "" && name != "-":
		f, err := os.Open(name)
		if err != nil {
			return nil, nil, err
		}
		return bufio.NewReader(f), f.Close, nil
	case name == "-", std:
		return bufio.NewReader(cmd.InOrStdin()), func() error { return nil }, nil
	}
	return nil, nil, nil
}

// skipSpace consumes leading whitespace and reports whether the input is
// exhausted.
func skipSpace(in io.RuneScanner) (bool, error) {
	for {
		r, _, err := in.ReadRune()
		if err == io.EOF {
			return true, nil
		}
		if err != nil {
			return false, err
		}
		if !unicode.IsSpace(r) {
			return false, in.UnreadRune()
		}
	}
}
