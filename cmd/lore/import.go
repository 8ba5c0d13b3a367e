package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/lore-oracle/internal/application/handlers"
)

type importFlags struct {
	format string
	dryRun bool
}

func newImportCmd() *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a dataset from JSON, YAML or CSV",
		Long: "Imports characters, places, objects, generations, events and chapters from a structured file. " +
			"Events reference entities by id or name. CSV files hold entity rows only.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "auto", "File format (json, yaml, csv, auto)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Validate without saving")

	return cmd
}

func runImport(cmd *cobra.Command, filePath string, flags importFlags) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	return withDeps(ctx, func(d *Deps) error {
		opts := handlers.ImportOptions{
			Format: flags.format,
			DryRun: flags.dryRun,
		}

		fmt.Fprintf(out, "Importing %s...\n", filePath)

		result, err := d.ImportHandler.Handle(ctx, filePath, opts)
		if err != nil {
			return fmt.Errorf("importing file: %w", err)
		}

		// Display errors
		if len(result.Errors) > 0 {
			fmt.Fprintf(out, "\nValidation errors (%d):\n", len(result.Errors))
			for _, e := range result.Errors {
				fmt.Fprintf(out, "  %s\n", e.Error())
			}
		}

		// Display summary
		fmt.Fprintln(out)
		if flags.dryRun {
			fmt.Fprintf(out, "Dry run: %d records would be imported", result.Imported)
		} else {
			fmt.Fprintf(out, "Imported: %d records", result.Imported)
		}

		if result.Skipped > 0 {
			fmt.Fprintf(out, ", %d skipped", result.Skipped)
		}

		fmt.Fprintln(out)

		return nil
	})
}
