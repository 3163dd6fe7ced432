// Command calc evaluates arithmetic expressions and sweeps them over ranges
// of variable values.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// logger is replaced in PersistentPreRunE.
	logger = zap.NewNop()

	// newLogger builds the command logger. Tests replace it.
	newLogger = func(verbose bool) (*zap.Logger, error) {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		return config.Build()
	}
)

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:   "calc",
		Short: "Evaluate arithmetic expressions",
		Long: `calc evaluates arithmetic expressions with 15 significant digits.

Expressions support + - * / % ^, unary -, postfix !, parentheses, |x| for
absolute value, log b ~ x for the base b logarithm of x, the functions
sin cos tan asin acos atan ln lg sqrt, and the constants pi and e.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(newEvalCmd(), newTokensCmd(), newTableCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
