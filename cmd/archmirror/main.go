// cmd/archmirror/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	configPath           string
	concurrencyFlag      int
	orderFlag            string
	cacheFlag            string
	tolerateSyntaxErrors bool
	outputParentFlag     string
	reportFlag           string
	quiet                bool
)

func versionString() string {
	return fmt.Sprintf("archmirror %s (commit: %s, built: %s)", version, commit, date)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "archmirror [path|url]",
		Short: "Mirror a source tree with function bodies elided",
		Long: "archmirror writes a copy of a source tree next to it in which every function\n" +
			"body is replaced by a stub while constructors and initializers are kept,\n" +
			"plus a summary document and an error log.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "."
			if len(args) == 1 {
				input = args[0]
			}
			return runMirror(cmd, input)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.Flags().IntVar(&concurrencyFlag, "concurrency", 0, "maximum files processed at once (0 = GOMAXPROCS)")
	rootCmd.Flags().StringVar(&orderFlag, "order", "", "summary entry order: completion, path")
	rootCmd.Flags().StringVar(&cacheFlag, "cache", "", "sqlite file memoizing simplified output across runs")
	rootCmd.Flags().BoolVar(&tolerateSyntaxErrors, "tolerate-syntax-errors", false, "simplify files whose parse tree contains errors instead of failing them")
	rootCmd.Flags().StringVar(&outputParentFlag, "output-parent", "", "directory to create the output root in (default: next to the input)")
	rootCmd.Flags().StringVar(&reportFlag, "report", "", "run report format: markdown, json, yaml")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress and report output")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString())
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(languagesCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
