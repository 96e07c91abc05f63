package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stcheck/internal/diagfmt"
	"stcheck/internal/driver"
	"stcheck/internal/rules"
	"stcheck/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.st",
	Short: "Tokenize a structured text source file",
	Long:  `Tokenize breaks down one source file into its token stream, for debugging the lexer`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")

	fileSet := source.NewFileSet()
	id, err := fileSet.Load(args[0])
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", args[0], err)
	}
	file := fileSet.Get(id)

	checker := &driver.Checker{Config: cfg, Engine: rules.NewEngine(nil)}
	toks, bag := checker.TokenizeFile(file)

	if bag.Len() > 0 {
		opts := diagfmt.PrettyOptions{Color: useColor(cmd, os.Stderr), ShowSource: true}
		if err := diagfmt.Pretty(os.Stderr, fileSet, bag.Items(), opts); err != nil {
			return err
		}
	}

	switch format {
	case "pretty":
		return diagfmt.TokensPretty(os.Stdout, file, toks)
	case "json":
		return diagfmt.TokensJSON(os.Stdout, file, toks)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
