package app

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pixelfederation/ec2-price-compare/compare"
	"github.com/pixelfederation/ec2-price-compare/compare/aws"
	"github.com/pixelfederation/ec2-price-compare/currency"
	"github.com/pixelfederation/ec2-price-compare/pkg/options"
)

const (
	regionColumn     = "Region"
	regionNameColumn = "Region Name"
	priceColumn      = "Price/Hour"
	usdColumn        = "USD/Hour"
	onDemandColumn   = "On-Demand/Hour"
	savingsColumn    = "Savings"
)

func newCompareCommand(ctx context.Context, opts *options.Options) *cobra.Command {
	var (
		regions   []string
		priceType string
	)
	cmd := &cobra.Command{
		Use:   "compare INSTANCE_TYPE",
		Short: "Compare prices of an instance type across regions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(ctx, opts, args[0], regions, priceType)
		},
	}
	cmd.Flags().StringSliceVarP(&regions, "regions", "r", nil, "regions to compare, defaults to all supported regions")
	cmd.Flags().StringVar(&priceType, "price-type", "onDemand", "pricing plan: onDemand, reserved1y or reserved3y")
	return cmd
}

func runCompare(ctx context.Context, opts *options.Options, instanceType string, regions []string, priceType string) error {
	plan, err := compare.ParsePlan(priceType)
	if err != nil {
		return errors.Wrap(err, "invalid price type")
	}
	if len(regions) == 0 {
		regions = aws.SupportedRegions()
	}

	engine, converter := buildEngine(opts)
	prices := engine.ResolveAll(ctx, instanceType, regions, plan)
	printPricesTable(prices, converter, plan)
	return nil
}

func printPricesTable(prices []compare.RegionPrice, converter *currency.Converter, plan compare.Plan) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{regionColumn, regionNameColumn, priceColumn, usdColumn, onDemandColumn, savingsColumn})

	for _, p := range prices {
		t.AppendRow(table.Row{
			p.Region,
			aws.RegionName(p.Region),
			formatPrice(p.Price, p.Currency),
			formatUSD(p.Price, p.Currency, converter),
			formatPrice(p.OnDemandPrice, p.OnDemandCurrency),
			formatSavings(p, converter, plan),
		})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: priceColumn, Align: text.AlignRight},
		{Name: usdColumn, Align: text.AlignRight},
		{Name: onDemandColumn, Align: text.AlignRight},
		{Name: savingsColumn, Align: text.AlignRight},
	})
	t.SetStyle(table.StyleLight)
	t.SortBy([]table.SortBy{{Name: usdColumn, Mode: table.Asc}})
	t.Render()
}

func formatPrice(price *float64, cur *string) string {
	if price == nil || cur == nil {
		return "n/a"
	}
	return currency.Format(*price, *cur)
}

// formatUSD normalizes a price to USD so rows in different currencies sort
// and compare sensibly.
func formatUSD(price *float64, cur *string, converter *currency.Converter) string {
	usd, ok := priceInUSD(price, cur, converter)
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", usd)
}

// formatSavings derives the discount of the requested plan against the
// on-demand baseline, converting both sides to USD first.
func formatSavings(p compare.RegionPrice, converter *currency.Converter, plan compare.Plan) string {
	if plan == compare.PlanOnDemand {
		return "-"
	}
	target, ok := priceInUSD(p.Price, p.Currency, converter)
	if !ok {
		return "n/a"
	}
	baseline, ok := priceInUSD(p.OnDemandPrice, p.OnDemandCurrency, converter)
	if !ok || baseline == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", (1-target/baseline)*100)
}

func priceInUSD(price *float64, cur *string, converter *currency.Converter) (float64, bool) {
	if price == nil || cur == nil {
		return 0, false
	}
	if *cur == aws.CurrencyCNY {
		return converter.ToUSD(*price), true
	}
	return *price, true
}
