package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/lore-oracle/internal/infrastructure/config"
)

func newWorldsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worlds",
		Short: "Manage worlds",
		RunE:  runWorldsList,
	}

	cmd.AddCommand(
		newWorldsListCmd(),
		newWorldsCreateCmd(),
		newWorldsDeleteCmd(),
	)

	return cmd
}

func newWorldsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all worlds",
		RunE:  runWorldsList,
	}
}

func runWorldsList(cmd *cobra.Command, _ []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	worlds, err := config.LoadWorlds(cwd)
	if err != nil {
		return fmt.Errorf("loading worlds: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(worlds.Worlds) == 0 {
		fmt.Fprintln(out, "No worlds configured.")
		fmt.Fprintln(out, "Use 'lore worlds create NAME' to create a world.")
		return nil
	}

	fmt.Fprintf(out, "%-20s %s\n", "NAME", "DESCRIPTION")
	fmt.Fprintf(out, "%-20s %s\n", "----", "-----------")
	for _, name := range worlds.Names() {
		fmt.Fprintf(out, "%-20s %s\n", name, worlds.Worlds[name].Description)
	}

	return nil
}

func newWorldsCreateCmd() *cobra.Command {
	var entry config.WorldEntry

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new world",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorldsCreate(cmd, args[0], entry)
		},
	}

	cmd.Flags().StringVarP(&entry.Description, "description", "d", "", "World description")
	cmd.Flags().StringVar(&entry.Lexicon, "lexicon", "", "Intent lexicon file for this world")

	return cmd
}

func runWorldsCreate(cmd *cobra.Command, name string, entry config.WorldEntry) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	if config.SanitizeWorldName(name) == "" {
		return fmt.Errorf("invalid world name %q", name)
	}

	// Check if config exists, if not initialize
	if !config.Exists(cwd) {
		if err := config.WriteDefault(cwd); err != nil {
			return fmt.Errorf("initializing config: %w", err)
		}
		fmt.Fprintf(out, "Initialized lore in %s\n", config.ConfigDir(cwd))
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	worlds, err := config.LoadWorlds(cwd)
	if err != nil {
		return fmt.Errorf("loading worlds: %w", err)
	}

	if worlds.Exists(name) {
		return fmt.Errorf("world %q already exists", name)
	}

	// Fail before registering if the lexicon is unusable.
	if _, err := resolveLexicon(cwd, cfg, &entry); err != nil {
		return err
	}

	repo, err := openWorldDB(ctx, cwd, cfg, name)
	if err != nil {
		return err
	}
	path := repo.Path()
	repo.Close()

	worlds.Add(name, entry)
	if err := worlds.Save(cwd); err != nil {
		return fmt.Errorf("saving worlds: %w", err)
	}

	fmt.Fprintf(out, "Created world %q (database %s)\n", name, path)

	return nil
}

func newWorldsDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a world",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorldsDelete(cmd, args[0], force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete even if world contains events")

	return cmd
}

func runWorldsDelete(cmd *cobra.Command, name string, force bool) error {
	ctx := cmd.Context()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	worlds, err := config.LoadWorlds(cwd)
	if err != nil {
		return fmt.Errorf("loading worlds: %w", err)
	}

	if !worlds.Exists(name) {
		return fmt.Errorf("world %q not found", name)
	}

	if !force {
		repo, err := openWorldDB(ctx, cwd, cfg, name)
		if err != nil {
			return err
		}
		summaries, err := repo.ListSummaries(ctx)
		repo.Close()
		if err != nil {
			return fmt.Errorf("counting events: %w", err)
		}
		if len(summaries) > 0 {
			return fmt.Errorf("world %q contains %d events, use --force to delete", name, len(summaries))
		}
	}

	if err := os.RemoveAll(config.WorldDir(cwd, name)); err != nil {
		return fmt.Errorf("removing world directory: %w", err)
	}

	worlds.Remove(name)
	if err := worlds.Save(cwd); err != nil {
		return fmt.Errorf("saving worlds: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted world %q\n", name)

	return nil
}
