package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"stcheck/internal/config"
	"stcheck/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "stcheck",
	Short: "Structured text convention checker",
	Long:  `stcheck lints IEC 61131-3 structured text against naming, shape and formatting conventions`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().String("config", "", "path to stcheck.toml (default: nearest in parent directories)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "cap diagnostics per file (0 = config value)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color tri-state against the output terminal.
func useColor(cmd *cobra.Command, f *os.File) bool {
	flag, _ := cmd.Root().PersistentFlags().GetString("color")
	switch flag {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

// loadConfig resolves the effective configuration: --config wins, otherwise
// the nearest stcheck.toml upward from the working directory, otherwise the
// built-in defaults. --max-diagnostics overrides the file.
func loadConfig(cmd *cobra.Command) (config.File, error) {
	path, _ := cmd.Root().PersistentFlags().GetString("config")

	var cfg config.File
	switch {
	case path != "":
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return config.File{}, err
		}
	default:
		if found, ok := config.Find("."); ok {
			var err error
			cfg, err = config.Load(found)
			if err != nil {
				return config.File{}, err
			}
		} else {
			cfg = config.Default()
		}
	}

	if maxDiags, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics"); maxDiags > 0 {
		cfg.Check.MaxDiagnostics = maxDiags
	}
	return cfg, nil
}
