package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"rulesmith-hq/forge/pkg/forge/export"
	"rulesmith-hq/forge/pkg/forge/store"
)

var exportFlags struct {
	dir string
}

var exportCmd = &cobra.Command{
	Use:   "export <slug>",
	Short: "Export a stored rule to a .rbx file",
	Long: `Load a rule from the store by slug and write it as a portable
.rbx file. Existing exports are never overwritten; a numeric counter is
appended instead.

Examples:
  forge export h7k2m9x4p1
  forge export h7k2m9x4p1 --dir ./exports`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFlags.dir, "dir", "", "output directory (default: config export.dir)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s, err := store.Open(&store.Config{
		Path:        cfg.Store.Path,
		WALMode:     !cfg.Store.DisableWAL,
		BusyTimeout: cfg.BusyTimeout(),
	}, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	r, err := s.GetBySlug(context.Background(), args[0])
	if err != nil {
		return err
	}

	dir := exportFlags.dir
	if dir == "" {
		dir = cfg.Export.Dir
	}

	path, err := export.WriteFile(r, dir)
	if err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", r.Name, path)
	return nil
}
