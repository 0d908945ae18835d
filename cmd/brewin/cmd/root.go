package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "brewin",
	Short: "Brewin interpreter",
	Long: `go-brewin is a Go implementation of the Brewin scripting language.

Brewin is a small imperative language with four progressive dialects:
  v1  integers, strings, variables, print/inputi
  v2  booleans, control flow, user-defined functions
  v3  static types, structs, int-to-bool coercion
  v4  call-by-need evaluation, try/catch/raise, short-circuit logic`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}
