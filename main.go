package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/chazu/partition/pkg/config"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "regions",
	Short: "Evaluate boolean expressions over sets of real intervals",
	Long: `regions evaluates Lisp expressions built from intervals and the
boolean operators union, intersection, difference, xor and complement.

Example:
  regions eval '(difference (interval 1 6) (interval 3 5))'
  regions check '(interval 9 :inf)' 8 9 10`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Level = zapcore.DebugLevel.String()
		}
		logger, err = cfg.Logging.Build()
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// evalCmd prints the pieces and metrics of one expression
var evalCmd = &cobra.Command{
	Use:   "eval [expression]",
	Short: "Evaluate an expression and print its intervals and metrics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result := NewApp(cfg, logger).Evaluate(args[0])
		if err := reportErrors(cmd.ErrOrStderr(), result); err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), result)
		return nil
	},
}

// checkCmd locates abscissas against one expression
var checkCmd = &cobra.Command{
	Use:   "check [expression] [x...]",
	Short: "Locate points as inside, outside or on the boundary of an expression",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		xs, err := parsePoints(args[1:])
		if err != nil {
			return err
		}

		locations, result := NewApp(cfg, logger).Check(args[0], xs)
		if err := reportErrors(cmd.ErrOrStderr(), result); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for i, loc := range locations {
			fmt.Fprintf(out, "%s\t%s\n", args[i+1], loc)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "regions.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(evalCmd, checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func parsePoints(args []string) ([]float64, error) {
	xs := make([]float64, len(args))
	for i, arg := range args {
		x, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid point %q: %w", arg, err)
		}
		xs[i] = x
	}
	return xs, nil
}

func reportErrors(w io.Writer, result EvalResult) error {
	if len(result.Errors) == 0 {
		return nil
	}
	for _, e := range result.Errors {
		if e.Line > 0 {
			fmt.Fprintf(w, "line %d: %s\n", e.Line, e.Message)
		} else {
			fmt.Fprintln(w, e.Message)
		}
	}
	return fmt.Errorf("evaluation failed with %d error(s)", len(result.Errors))
}

func printResult(w io.Writer, result EvalResult) {
	pieces := make([]string, len(result.Pieces))
	for i, p := range result.Pieces {
		pieces[i] = p.String()
	}
	if len(pieces) == 0 {
		pieces = append(pieces, "{}")
	}

	fmt.Fprintf(w, "pieces:     %s\n", strings.Join(pieces, " "))
	fmt.Fprintf(w, "size:       %g\n", result.Size)
	if result.HasBarycenter {
		fmt.Fprintf(w, "barycenter: %g\n", result.Barycenter)
	} else {
		fmt.Fprintln(w, "barycenter: undefined")
	}
	if result.Set != nil && !result.Set.IsEmpty() {
		fmt.Fprintf(w, "bounds:     [%g, %g]\n", result.Inf, result.Sup)
	}
}
