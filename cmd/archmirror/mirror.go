package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/julianshen/archmirror/internal/cache"
	"github.com/julianshen/archmirror/internal/config"
	"github.com/julianshen/archmirror/internal/integrations"
	"github.com/julianshen/archmirror/internal/output"
	"github.com/julianshen/archmirror/internal/pipeline"
	"github.com/julianshen/archmirror/internal/segment"
	"github.com/julianshen/archmirror/internal/summary"
)

// loadConfig layers the user config, the project file found in root and the
// flags the user actually set, in that order.
func loadConfig(cmd *cobra.Command, root string) (*config.Config, error) {
	cfgPath := configPath
	if cfgPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		cfgPath = filepath.Join(home, ".config", "archmirror", "config.toml")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if root != "" {
		if err := config.Merge(cfg, filepath.Join(root, config.ProjectFile)); err != nil {
			return nil, fmt.Errorf("loading project config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("concurrency") {
		cfg.Run.Concurrency = concurrencyFlag
	}
	if flags.Changed("order") {
		cfg.Run.SummaryOrder = orderFlag
	}
	if flags.Changed("cache") {
		cfg.Cache.Path = cacheFlag
	}
	if flags.Changed("tolerate-syntax-errors") {
		cfg.Run.TolerateSyntaxErrors = tolerateSyntaxErrors
	}
	if flags.Changed("output-parent") {
		cfg.Run.OutputParent = outputParentFlag
	}
	if flags.Changed("report") {
		cfg.Report.Format = reportFlag
	}

	return cfg, nil
}

// buildRegistry applies configured extension overrides to the default
// dispatch table.
func buildRegistry(cfg *config.Config) *segment.Registry {
	registry := segment.DefaultRegistry()
	for ext, id := range cfg.Languages.Extensions {
		if _, ok := segment.ParseLanguage(id); !ok {
			log.Printf("config: extension %q mapped to unsupported language %q; files will be skipped", ext, id)
		}
		registry.Map(ext, id)
	}
	return registry
}

func runMirror(cmd *cobra.Command, input string) error {
	ctx := cmd.Context()
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	src, err := integrations.Acquire(ctx, input)
	if err != nil {
		return err
	}
	defer src.Close()

	cfg, err := loadConfig(cmd, src.Root)
	if err != nil {
		return err
	}
	order, err := summary.ParseOrder(cfg.Run.SummaryOrder)
	if err != nil {
		return err
	}
	formatter, err := output.NewFormatter(cfg.Report.Format)
	if err != nil {
		return err
	}

	outputParent := cfg.Run.OutputParent
	if outputParent == "" && src.Remote != "" {
		// The clone is removed on exit, so its parent cannot hold the mirror.
		if outputParent, err = os.Getwd(); err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
	}

	var c *cache.Cache
	if cfg.Cache.Path != "" {
		if c, err = cache.Open(cfg.Cache.Path); err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer c.Close()
		if n, err := c.Prune(segment.RulesVersion); err != nil {
			log.Printf("cache: pruning stale entries: %v", err)
		} else if n > 0 {
			log.Printf("cache: pruned %d entries from older rule versions", n)
		}
	}

	var progress io.Writer
	if !quiet {
		progress = stderr
	}

	res, err := pipeline.Run(ctx, pipeline.Options{
		Root:                 src.Root,
		OutputParent:         outputParent,
		Concurrency:          cfg.Run.Concurrency,
		Order:                order,
		Registry:             buildRegistry(cfg),
		Cache:                c,
		TolerateSyntaxErrors: cfg.Run.TolerateSyntaxErrors,
		Progress:             progress,
	})
	if err != nil {
		return err
	}

	if quiet {
		return nil
	}
	out, err := formatter.Format(output.NewReport(input, src.Remote, src.Commit, res))
	if err != nil {
		return fmt.Errorf("formatting report: %w", err)
	}
	fmt.Fprint(stdout, string(out))
	fmt.Fprintln(stderr, completionLine(res, isTerminal(stderr)))
	return nil
}
