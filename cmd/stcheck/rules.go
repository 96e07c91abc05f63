package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"stcheck/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the built-in convention rules",
	RunE:  runRules,
}

func runRules(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	overrides, err := cfg.Overrides()
	if err != nil {
		return err
	}
	engine := rules.NewEngine(overrides)

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSEVERITY\tENABLED\tDESCRIPTION")
	for _, r := range engine.Rules() {
		code := r.Code()
		sev := r.DefaultSeverity()
		enabled := true
		if ov, ok := overrides[code]; ok {
			if ov.Severity != nil {
				sev = *ov.Severity
			}
			if ov.Enabled != nil {
				enabled = *ov.Enabled
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n",
			code.ID(), code.String(), sev.String(), enabled, r.Doc())
	}
	return w.Flush()
}
