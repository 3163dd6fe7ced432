package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/daoshengwanwu/calculator"
	"github.com/daoshengwanwu/calculator/internal/store"
)

type tableOptions struct {
	vars    []string
	config  string
	product bool
	db      string
	verb    string
}

func newTableCmd() *cobra.Command {
	var opts tableOptions
	cmd := &cobra.Command{
		Use:   "table expression",
		Short: "Evaluate an expression over ranges of variable values",
		Long: `Evaluates an expression once per step of its variables and prints the
variable values and result of each step.

Variables are given as name=[lower,upper]:span, with parentheses in place of
brackets for open bounds, or in a YAML file given with --config. By default
the first variable with values left advances at each step; with --product,
every combination of values is visited.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTable(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}
	cmd.Flags().StringArrayVar(&opts.vars, "var", nil, "variable as name=[lower,upper]:span (any number of times)")
	cmd.Flags().StringVar(&opts.config, "config", "", "YAML sweep configuration file")
	cmd.Flags().BoolVar(&opts.product, "product", false, "visit every combination of variable values")
	cmd.Flags().StringVar(&opts.db, "db", "", "SQLite database in which to save the run")
	cmd.Flags().StringVar(&opts.verb, "fmt", "%g", "formatting string for values")
	return cmd
}

func runTable(ctx context.Context, out io.Writer, src string, opts tableOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	vs := calculator.NewVarSet()
	mode := modeSequential
	db := opts.db
	if opts.config != "" {
		cfg, err := loadConfig(opts.config)
		if err != nil {
			return err
		}
		if err := cfg.addTo(vs); err != nil {
			return err
		}
		if cfg.Mode != "" {
			mode = cfg.Mode
		}
		if db == "" {
			db = cfg.DB
		}
	}
	if err := addVarFlags(vs, opts.vars); err != nil {
		return err
	}
	if opts.product {
		mode = modeProduct
	}

	e, err := calculator.ParseString(src, calculator.WithVars(vs))
	if err != nil {
		return err
	}
	var ropts []calculator.ResultsOption
	if mode == modeProduct {
		ropts = append(ropts, calculator.Product())
	}
	logger.Debug("starting sweep",
		zap.String("expr", src),
		zap.String("mode", mode),
		zap.Strings("vars", vs.Names()),
	)

	run := store.Run{Expr: src, Mode: mode}
	names := vs.Names()
	var sweepErr error
	for r, err := range calculator.NewResults(e, ropts...).All() {
		if err != nil {
			sweepErr = err
			break
		}
		row := store.Row{Step: len(run.Rows), Value: r}
		for i, x := range vs.Values() {
			row.Bindings = append(row.Bindings, store.Binding{Name: names[i], Value: x})
		}
		run.Rows = append(run.Rows, row)
		fmt.Fprintln(out, formatRow(row, opts.verb))
	}

	var s store.Store
	if db != "" {
		s, err = store.NewSQLite(db)
		if err != nil {
			return fmt.Errorf("opening results database: %w", err)
		}
	} else {
		s = store.NewMemory()
	}
	defer s.Close()
	id, err := s.SaveRun(ctx, run)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	logger.Info("sweep finished",
		zap.String("run", id),
		zap.String("expr", src),
		zap.Int("results", len(run.Rows)),
		zap.Error(sweepErr),
	)
	if db != "" {
		fmt.Fprintf(out, "saved run %s to %s\n", id, db)
	}
	if sweepErr != nil {
		return fmt.Errorf("step %d: %w", len(run.Rows), sweepErr)
	}
	return nil
}

func formatRow(row store.Row, verb string) string {
	var b strings.Builder
	for _, x := range row.Bindings {
		fmt.Fprintf(&b, "%s="+verb+" ", x.Name, x.Value)
	}
	fmt.Fprintf(&b, "=> "+verb, row.Value)
	return b.String()
}
