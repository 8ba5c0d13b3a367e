package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/lore-oracle/internal/domain/entities"
)

func newSearchCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Search names and descriptions",
		Long:  "Finds characters, places, objects, generations and events whose name contains the text, ignoring case and accents.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, strings.Join(args, " "), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")

	return cmd
}

func runSearch(cmd *cobra.Command, text string, asJSON bool) error {
	return withDeps(cmd.Context(), func(d *Deps) error {
		result, err := d.SearchHandler.Handle(cmd.Context(), text)
		if err != nil {
			return fmt.Errorf("searching: %w", err)
		}

		out := cmd.OutOrStdout()
		if asJSON {
			return printJSON(out, result)
		}

		if result.Total() == 0 {
			fmt.Fprintln(out, "Nothing found.")
			return nil
		}

		printNames(out, "Characters", result.Characters, entityName)
		printNames(out, "Places", result.Places, entityName)
		printNames(out, "Objects", result.Objects, entityName)
		printNames(out, "Generations", result.Generations, func(g entities.Generation) string { return g.Name })
		printNames(out, "Events", result.Events, func(e entities.EventSummary) string { return e.Name })

		return nil
	})
}

func printNames[T any](out io.Writer, title string, items []T, name func(T) string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(out, "%s (%d):\n", title, len(items))
	for _, item := range items {
		fmt.Fprintf(out, "  %s\n", name(item))
	}
}

func entityName(e entities.Entity) string { return e.Name }
