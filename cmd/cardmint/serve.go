// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/qudoro/cardmint/internal/tool"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the cardmint tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server := mcp.NewServer(&mcp.Implementation{Name: "cardmint", Version: version}, nil)
			tool.Register(server, tool.NewHandlers(a.pipeline(), a.cfg.Builder()))
			a.log.Info("mcp server starting", "transport", "stdio")
			if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
				a.log.Error("mcp server stopped", "error", err)
				return err
			}
			return nil
		},
	}
}
