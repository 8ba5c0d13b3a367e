package main

import (
	"github.com/spf13/cobra"

	"github.com/ersonp/lore-oracle/internal/infrastructure/httpapi"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the question API over HTTP",
		Long:  "Starts the HTTP API (GET /api/questions?q=...) for the selected world until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")

	return cmd
}

func runServe(cmd *cobra.Command, addr string) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		if addr == "" {
			addr = d.Config.Server.Addr
		}

		server := httpapi.NewServer(httpapi.Handlers{
			Questions: d.QuestionHandler,
			Search:    d.SearchHandler,
			Catalog:   d.CatalogHandler,
			Lexicon:   d.Lexicon,
		}, d.Config.Server.RequestTimeout, d.Logger)

		return server.ListenAndServe(ctx, addr)
	})
}
