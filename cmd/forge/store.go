package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"rulesmith-hq/forge/pkg/config"
	"rulesmith-hq/forge/pkg/forge"
	"rulesmith-hq/forge/pkg/forge/store"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the rule store",
	Long:  `Import, list, and delete rules in the local SQLite rule store.`,
}

var storeImportCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import rule document files into the store",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStoreImport,
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored rules",
	Args:  cobra.NoArgs,
	RunE:  runStoreList,
}

var storeDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored rule by ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreDelete,
}

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.AddCommand(storeImportCmd)
	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeDeleteCmd)
}

func openStore(cfg *config.Config) (*store.SQLiteStore, error) {
	return store.Open(&store.Config{
		Path:        cfg.Store.Path,
		WALMode:     !cfg.Store.DisableWAL,
		BusyTimeout: cfg.BusyTimeout(),
	}, nil)
}

func runStoreImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	for _, path := range args {
		r, err := forge.LoadFile(path)
		if err != nil {
			return fmt.Errorf("importing %s: %w", path, err)
		}
		if err := s.Save(ctx, r); err != nil {
			return fmt.Errorf("importing %s: %w", path, err)
		}
		fmt.Printf("imported %s  (%s, slug %s)\n", path, r.Name, r.Slug)
	}
	return nil
}

func runStoreList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	summaries, err := s.List(context.Background())
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Println("no rules stored")
		return nil
	}

	fmt.Printf("%-36s  %-12s  %-24s  %s\n", "ID", "SLUG", "UPDATED", "NAME")
	for _, sum := range summaries {
		fmt.Printf("%-36s  %-12s  %-24s  %s\n", sum.ID, sum.Slug, sum.UpdatedAt, sum.Name)
	}
	return nil
}

func runStoreDelete(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	deleted, err := s.Delete(context.Background(), args[0])
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("no rule with ID %s", args[0])
	}
	fmt.Printf("deleted %s\n", args[0])
	return nil
}
