package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/lore-oracle/internal/infrastructure/config"
)

func newIntentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "intents",
		Short: "List the intent lexicon",
		Long:  "Prints every intent and the phrases that signal it. Uses the world's lexicon when --world is set.",
		Args:  cobra.NoArgs,
		RunE:  runIntents,
	}
}

func runIntents(cmd *cobra.Command, _ []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg := config.Default()
	if config.Exists(cwd) {
		if cfg, err = config.Load(cwd); err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	var world *config.WorldEntry
	if globalWorld != "" {
		worlds, err := config.LoadWorlds(cwd)
		if err != nil {
			return fmt.Errorf("loading worlds: %w", err)
		}
		if world, err = worlds.Get(globalWorld); err != nil {
			return err
		}
	}

	lexicon, err := resolveLexicon(cwd, cfg, world)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-12s %s\n", "INTENT", "PHRASES")
	fmt.Fprintf(out, "%-12s %s\n", "------", "-------")
	for _, g := range lexicon.Intents {
		fmt.Fprintf(out, "%-12s %s\n", g.Key, strings.Join(g.Phrases, ", "))
	}
	return nil
}
