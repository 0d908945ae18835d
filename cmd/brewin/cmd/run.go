package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ariyin/go-brewin/internal/interp"
	"github.com/ariyin/go-brewin/internal/parser"
	"github.com/ariyin/go-brewin/pkg/brewin"
)

var (
	evalExpr   string
	runDialect int
	runTrace   bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Brewin program",
	Long: `Execute a Brewin program from a file or inline source.

Examples:
  # Run a program file
  brewin run program.br

  # Run a program from stdin
  brewin run -

  # Run inline source
  brewin run -e 'func main() { print("hello"); }'

  # Run under the typed dialect
  brewin run --dialect 3 program.br`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProgram,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "run inline source instead of reading from a file")
	runCmd.Flags().IntVar(&runDialect, "dialect", 4, "language dialect to run (1-4)")
	runCmd.Flags().BoolVar(&runTrace, "trace", false, "trace execution to stderr")
}

func runProgram(_ *cobra.Command, args []string) error {
	source, err := readSource(args)
	if err != nil {
		return err
	}

	opts := []brewin.Option{brewin.WithDialect(runDialect)}
	if runTrace {
		opts = append(opts, brewin.WithTrace(os.Stderr))
	}
	engine, err := brewin.New(opts...)
	if err != nil {
		return err
	}

	if err := engine.Run(source); err != nil {
		reportError(err)
		return err
	}
	return nil
}

func readSource(args []string) (string, error) {
	if evalExpr != "" {
		return evalExpr, nil
	}
	if len(args) != 1 {
		return "", fmt.Errorf("either provide a file path or use -e flag for inline source")
	}
	if args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", args[0], err)
	}
	return string(data), nil
}

// reportError writes a run failure to stderr, colorized when stderr is a
// terminal.
func reportError(err error) {
	color := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())

	var runtimeErr *interp.RuntimeError
	var parseErrs parser.ErrorList
	switch {
	case errors.As(err, &runtimeErr):
		fmt.Fprintln(os.Stderr, paint(color, "1;31", runtimeErr.Kind.String())+": "+runtimeErr.Message)
	case errors.As(err, &parseErrs):
		for _, pe := range parseErrs {
			fmt.Fprintln(os.Stderr, paint(color, "1;31", "syntax error")+" at "+pe.String())
		}
	default:
		fmt.Fprintln(os.Stderr, paint(color, "1;31", "error")+": "+err.Error())
	}
}

func paint(color bool, code, s string) string {
	if !color {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}
