package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rulesmith-hq/forge/pkg/forge"
	"rulesmith-hq/forge/pkg/forge/table"
)

var showFlags struct {
	condition int
	width     int
}

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Render a rule document as a decision table",
	Long: `Render a rule document as a fixed-width decision table.

Columns are the request fields followed by the response fields; each row
is one condition. Cells a condition does not constrain show "-".

Examples:
  forge show pricing-Generated.rbx
  forge show pricing-Generated.rbx --condition 2`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().IntVar(&showFlags.condition, "condition", 0, "render only the Nth condition (1-based)")
	showCmd.Flags().IntVar(&showFlags.width, "width", 0, "column width cap (0 = default)")
}

func runShow(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	r, err := forge.LoadFile(args[0])
	if err != nil {
		return err
	}

	rd := table.NewRenderer()
	if showFlags.width > 0 {
		rd.MaxColWidth = showFlags.width
	}

	var out string
	if showFlags.condition > 0 {
		out, err = rd.RenderCondition(r, showFlags.condition-1)
	} else {
		out, err = rd.Render(r)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", r.Name, r.Slug)
	if r.Description != "" {
		fmt.Println(r.Description)
	}
	fmt.Print(out)
	return nil
}
