package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rulesmith-hq/forge/pkg/forge"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate rule document files",
	Long: `Check rule document files against the document invariants.

Every violation is reported, not just the first, with suggestions for
likely typos in field keys, type tags, and operator tags.

Examples:
  forge validate pricing-Generated.rbx
  forge validate rules/*.rbx`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	failed := 0
	for _, path := range args {
		r, err := forge.LoadFile(path)
		if err != nil {
			failed++
			fmt.Printf("FAIL  %s\n%v\n\n", path, err)
			continue
		}
		fmt.Printf("OK    %s  (%s, %d condition(s))\n", path, r.Name, len(r.Conditions()))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed validation", failed, len(args))
	}
	return nil
}
