package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/daoshengwanwu/calculator"
)

func newTokensCmd() *cobra.Command {
	var vars []string
	cmd := &cobra.Command{
		Use:   "tokens expression",
		Short: "Print the resolved token stream of an expression",
		Long: `Prints one line per token: its column, its kind, its text, and for
operators the category, arity, and left and right priorities.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vs := calculator.NewVarSet()
			if err := addVarFlags(vs, vars); err != nil {
				return err
			}
			e, err := calculator.ParseString(args[0], calculator.WithVars(vs))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, t := range e.Tokens() {
				fmt.Fprintf(out, "%d\t%v\t%v", t.Pos(), t.Kind(), t)
				if op := t.Operator(); op != nil {
					fmt.Fprintf(out, "\t%v\t%d\t%s\t%s", op.Category(), op.Arity(), prio(op.LeftPriority()), prio(op.RightPriority()))
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&vars, "var", nil, "variable as name=[lower,upper]:span")
	return cmd
}

func prio(p int, ok bool) string {
	if !ok {
		return "-"
	}
	return strconv.Itoa(p)
}
