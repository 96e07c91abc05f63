package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stcheck/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Drop the cached diagnostics",
	Long:  `Clean removes every entry from the diagnostics cache; the next check re-parses all files`,
	RunE:  runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cache, err := driver.OpenDiskCache(cfg.Check.CacheDir)
	if err != nil {
		return err
	}
	if err := cache.DropAll(); err != nil {
		return err
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		fmt.Fprintf(os.Stderr, "cache cleared: %s\n", cfg.Check.CacheDir)
	}
	return nil
}
