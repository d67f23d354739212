package app

import (
	"context"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pixelfederation/ec2-price-compare/pkg/options"
)

func newInstancesCommand(ctx context.Context, opts *options.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "instances",
		Short: "List the instance types available for comparison",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _ := buildEngine(opts)
			types, err := engine.ListInstanceTypes(ctx)
			if err != nil {
				return errors.Wrap(err, "failed to list instance types")
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Instance Type", "Family", "Description"})
			for _, it := range types {
				t.AppendRow(table.Row{it.InstanceType, it.Family, it.Description})
			}
			t.SetStyle(table.StyleLight)
			t.Render()
			return nil
		},
	}
}
