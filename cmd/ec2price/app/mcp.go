package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	log "github.com/sirupsen/logrus"

	"github.com/pixelfederation/ec2-price-compare/mcptool"
	"github.com/pixelfederation/ec2-price-compare/pkg/options"
)

func newMCPCommand(ctx context.Context, opts *options.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Context Protocol server on stdin/stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout carries the protocol, logs must stay off it
			log.SetOutput(os.Stderr)

			engine, converter := buildEngine(opts)
			log.Info("Starting MCP server on stdio")
			return mcptool.New(engine, converter).ServeStdio()
		},
	}
}
