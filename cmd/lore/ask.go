package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/lore-oracle/internal/application/handlers"
	"github.com/ersonp/lore-oracle/internal/domain/entities"
)

func newAskCmd() *cobra.Command {
	var (
		asJSON  bool
		explain bool
	)

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a question with matching events",
		Long: "Finds the events a free-text question refers to: an explicit chapter, " +
			"the characters, places and actions it mentions, or the most similar event.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, strings.Join(args, " "), asJSON, explain)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the API response body")
	cmd.Flags().BoolVar(&explain, "explain", false, "Show what was detected in the question")

	return cmd
}

func runAsk(cmd *cobra.Command, question string, asJSON, explain bool) error {
	return withDeps(cmd.Context(), func(d *Deps) error {
		result, err := d.QuestionHandler.Handle(cmd.Context(), question)
		if err != nil {
			return fmt.Errorf("answering question: %w", err)
		}

		out := cmd.OutOrStdout()
		if asJSON {
			return printJSON(out, map[string]any{
				"chapterLabel": result.Label,
				"results":      result.Results,
			})
		}

		if explain {
			printAnalysis(out, result.Analysis)
		}
		printAnswer(out, result)
		return nil
	})
}

func printAnalysis(out io.Writer, a *entities.QuestionAnalysis) {
	fmt.Fprintf(out, "Normalized: %s\n", a.Normalized)
	if a.ChapterNumber != nil {
		fmt.Fprintf(out, "Chapter:    %d\n", *a.ChapterNumber)
	}
	if len(a.MatchedCharacterNames) > 0 {
		fmt.Fprintf(out, "Characters: %s\n", strings.Join(a.MatchedCharacterNames, ", "))
	}
	if len(a.MatchedPlaceNames) > 0 {
		fmt.Fprintf(out, "Places:     %s\n", strings.Join(a.MatchedPlaceNames, ", "))
	}
	if len(a.MatchedObjectNames) > 0 {
		fmt.Fprintf(out, "Objects:    %s\n", strings.Join(a.MatchedObjectNames, ", "))
	}
	for _, m := range a.MatchedIntents {
		fmt.Fprintf(out, "Intent:     %s (%q)\n", m.Intent, m.Phrase)
	}
	if a.FuzzyEvent != nil {
		fmt.Fprintf(out, "Similar:    %s (score %.2f)\n", a.FuzzyEvent.Name, a.FuzzyScore)
	}
	fmt.Fprintln(out)
}

func printAnswer(out io.Writer, result *handlers.QuestionResult) {
	switch label := result.Label.String(); label {
	case entities.LabelSimilar:
		fmt.Fprintln(out, "Closest event:")
	case entities.LabelAll:
		fmt.Fprintln(out, "Across all chapters:")
	default:
		fmt.Fprintf(out, "Chapter %s:\n", label)
	}

	if len(result.Results) == 0 {
		fmt.Fprintln(out, "No events found.")
		return
	}

	for i, e := range result.Results {
		fmt.Fprintf(out, "%d. %s\n", i+1, e.Name)
		if e.Description != "" {
			fmt.Fprintf(out, "   %s\n", e.Description)
		}
		if len(e.Characters) > 0 {
			names := make([]string, len(e.Characters))
			for j, c := range e.Characters {
				names[j] = c.Name
			}
			fmt.Fprintf(out, "   Characters: %s\n", strings.Join(names, ", "))
		}
		if e.Place != nil {
			fmt.Fprintf(out, "   Place: %s\n", e.Place.Name)
		}
		if e.Generation != nil {
			fmt.Fprintf(out, "   Generation: %s\n", e.Generation.Name)
		}
	}
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
