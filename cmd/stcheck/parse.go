package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stcheck/internal/ast"
	"stcheck/internal/diagfmt"
	"stcheck/internal/driver"
	"stcheck/internal/rules"
	"stcheck/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.st",
	Short: "Parse a structured text source file",
	Long:  `Parse builds the unit tree for one source file and prints a structural summary, for debugging the parser`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

// unitSummary is the printable shape of one parsed unit.
type unitSummary struct {
	Kind       string   `json:"kind"`
	Name       string   `json:"name"`
	Extends    []string `json:"extends,omitempty"`
	Implements []string `json:"implements,omitempty"`
	DeclBlocks int      `json:"declBlocks"`
	Decls      int      `json:"decls"`
	Methods    []string `json:"methods,omitempty"`
	Properties []string `json:"properties,omitempty"`
	BodyStmts  int      `json:"bodyStatements"`
}

func runParse(cmd *cobra.Command, args []string) error {
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
	tree, bag := checker.ParseFile(file)

	if bag.Len() > 0 {
		opts := diagfmt.PrettyOptions{Color: useColor(cmd, os.Stderr), ShowSource: true}
		if err := diagfmt.Pretty(os.Stderr, fileSet, bag.Items(), opts); err != nil {
			return err
		}
	}

	summaries := make([]unitSummary, 0, len(tree.Units))
	for _, u := range tree.Units {
		summaries = append(summaries, summarize(u))
	}

	switch format {
	case "pretty":
		for _, s := range summaries {
			fmt.Fprintf(os.Stdout, "%s %s", s.Kind, s.Name)
			if len(s.Extends) > 0 {
				fmt.Fprintf(os.Stdout, " EXTENDS %v", s.Extends)
			}
			if len(s.Implements) > 0 {
				fmt.Fprintf(os.Stdout, " IMPLEMENTS %v", s.Implements)
			}
			fmt.Fprintf(os.Stdout, "\n  %d declaration blocks, %d declarations, %d body statements\n",
				s.DeclBlocks, s.Decls, s.BodyStmts)
			for _, m := range s.Methods {
				fmt.Fprintf(os.Stdout, "  METHOD %s\n", m)
			}
			for _, p := range s.Properties {
				fmt.Fprintf(os.Stdout, "  PROPERTY %s\n", p)
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func summarize(u *ast.Unit) unitSummary {
	s := unitSummary{
		Kind:       u.Kind.String(),
		Name:       u.Name.Text,
		DeclBlocks: len(u.DeclBlocks),
		BodyStmts:  len(u.Body),
	}
	for _, n := range u.BaseTypes {
		s.Extends = append(s.Extends, n.Text)
	}
	for _, n := range u.Implements {
		s.Implements = append(s.Implements, n.Text)
	}
	for _, blk := range u.DeclBlocks {
		s.Decls += len(blk.Decls)
	}
	for _, m := range u.Methods {
		s.Methods = append(s.Methods, m.Name.Text)
	}
	for _, p := range u.Properties {
		s.Properties = append(s.Properties, p.Name.Text)
	}
	return s
}
