package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stcheck/internal/diag"
	"stcheck/internal/diagfmt"
	"stcheck/internal/driver"
	"stcheck/internal/rules"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path...]",
	Short: "Check structured text files against the convention rules",
	Long: `Check tokenizes, parses and rule-checks every matching file. Plain file
arguments are checked directly; directory arguments are expanded with the
configured include/exclude globs. The exit status is 1 when any diagnostic
of Error severity was produced.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif)")
	checkCmd.Flags().Int("jobs", 0, "parallel workers (0 = config, then GOMAXPROCS)")
	checkCmd.Flags().Bool("no-cache", false, "disable the diagnostics cache")
	checkCmd.Flags().Bool("watch", false, "stay running and re-check on file changes")
	checkCmd.Flags().Bool("no-source", false, "omit source excerpts from pretty output")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	overrides, err := cfg.Overrides()
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	jobs, _ := cmd.Flags().GetInt("jobs")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	watch, _ := cmd.Flags().GetBool("watch")
	noSource, _ := cmd.Flags().GetBool("no-source")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	var cache *driver.DiskCache
	if cfg.Check.Cache && !noCache {
		cache, err = driver.OpenDiskCache(cfg.Check.CacheDir)
		if err != nil {
			// a dead cache is not worth failing a lint run over
			fmt.Fprintf(os.Stderr, "warning: cache disabled: %v\n", err)
			cache = nil
		}
	}

	checker := &driver.Checker{
		Config: cfg,
		Engine: rules.NewEngine(overrides),
		Cache:  cache,
	}

	runOnce := func() (bool, error) {
		paths, err := driver.ExpandArgs(args, cfg.Check.Include, cfg.Check.Exclude)
		if err != nil {
			return false, err
		}
		res, err := checker.CheckPaths(cmd.Context(), paths, jobs)
		if err != nil {
			return false, err
		}
		if err := renderResult(cmd, res, format, noSource); err != nil {
			return false, err
		}
		if !quiet && format == "pretty" {
			fmt.Fprintf(os.Stderr, "%d diagnostics in %d files\n",
				res.TotalDiagnostics(), len(res.Files))
		}
		return res.HasErrors(), nil
	}

	if watch {
		if _, err := runOnce(); err != nil {
			return err
		}
		root := "."
		if len(args) > 0 {
			if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
				root = args[0]
			}
		}
		return driver.Watch(cmd.Context(), root, []string{".st", ".pou", ".tcpou"}, func() error {
			_, err := runOnce()
			return err
		})
	}

	hasErrors, err := runOnce()
	if err != nil {
		return err
	}
	if hasErrors {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		os.Exit(1)
	}
	return nil
}

func renderResult(cmd *cobra.Command, res *driver.Result, format string, noSource bool) error {
	switch format {
	case "pretty":
		opts := diagfmt.PrettyOptions{
			Color:      useColor(cmd, os.Stdout),
			ShowSource: !noSource,
		}
		for i := range res.Files {
			if err := diagfmt.Pretty(os.Stdout, res.FileSet,
				res.Files[i].Bag.Items(), opts); err != nil {
				return err
			}
		}
		return nil
	case "json":
		return diagfmt.JSON(os.Stdout, res.FileSet, flatten(res))
	case "sarif":
		return diagfmt.SARIF(os.Stdout, res.FileSet, flatten(res))
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func flatten(res *driver.Result) []diag.Diagnostic {
	all := diag.NewBag(0)
	for i := range res.Files {
		all.Merge(res.Files[i].Bag)
	}
	return all.Items()
}
