// Package app wires the commands of the ec2price binary.
package app

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	log "github.com/sirupsen/logrus"

	"github.com/pixelfederation/ec2-price-compare/compare"
	"github.com/pixelfederation/ec2-price-compare/compare/aws"
	"github.com/pixelfederation/ec2-price-compare/currency"
	"github.com/pixelfederation/ec2-price-compare/pkg/options"
)

// NewRootCommand builds the ec2price command tree.
func NewRootCommand(ctx context.Context) *cobra.Command {
	opts := options.NewOptions()

	cmd := &cobra.Command{
		Use:          "ec2price",
		Long:         "Compare EC2 instance prices across AWS regions, China regions included.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			parsedLevel, err := log.ParseLevel(opts.LogLevel)
			if err != nil {
				log.WithError(err).Warnf("Couldn't parse log level, using default: %s", log.GetLevel())
				return
			}
			log.SetLevel(parsedLevel)
			log.Debugf("Set log level to %s", parsedLevel)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "log level")
	opts.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(newServeCommand(ctx, opts))
	cmd.AddCommand(newMCPCommand(ctx, opts))
	cmd.AddCommand(newCompareCommand(ctx, opts))
	cmd.AddCommand(newInstancesCommand(ctx, opts))
	return cmd
}

// buildEngine assembles the engine and converter shared by all commands.
// Lookup metrics land in the default prometheus registry, which the serve
// command exposes on /metrics.
func buildEngine(opts *options.Options) (*compare.Engine, *currency.Converter) {
	metrics := compare.NewMetrics()
	metrics.MustRegister(prometheus.DefaultRegisterer)

	factory := aws.NewSDKClientFactory(opts.AWSConfig())
	engine := compare.NewEngine(factory, metrics)
	converter := currency.NewConverter(opts.CNYToUSDRate)
	return engine, converter
}
