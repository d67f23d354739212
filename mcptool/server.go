// Package mcptool exposes the price comparison lookups as Model Context
// Protocol tools and resources over stdio, so LLM clients can call them
// instead of guessing prices from web search.
package mcptool

import (
	"context"
	"sort"

	"github.com/bytedance/sonic"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pixelfederation/ec2-price-compare/compare"
	"github.com/pixelfederation/ec2-price-compare/compare/aws"
	"github.com/pixelfederation/ec2-price-compare/currency"
)

// Server is the MCP facade over the engine.
type Server struct {
	engine    *compare.Engine
	converter *currency.Converter
	mcp       *server.MCPServer
}

// New builds the MCP server with all tools, resources and prompts
// registered.
func New(engine *compare.Engine, converter *currency.Converter) *Server {
	s := &Server{
		engine:    engine,
		converter: converter,
		mcp: server.NewMCPServer(
			"ec2-price-comparison",
			"1.0.0",
			server.WithResourceCapabilities(true, false),
			server.WithPromptCapabilities(false),
			server.WithToolCapabilities(false),
		),
	}
	s.registerTools()
	s.registerResources()
	s.registerPrompts()
	return s
}

// ServeStdio blocks serving the MCP protocol on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("getInstancePrices",
		mcp.WithDescription("Get EC2 instance prices for a set of AWS regions, including China regions. Prices for China regions are in CNY."),
		mcp.WithString("instanceType", mcp.Required(), mcp.Description("EC2 instance type, e.g. t3.xlarge")),
		mcp.WithArray("regions", mcp.Description("Region codes to look up, e.g. [\"us-east-1\",\"cn-north-1\"]")),
		mcp.WithString("priceType", mcp.Enum("onDemand", "reserved1y", "reserved3y"), mcp.Description("Pricing plan, defaults to onDemand")),
	), s.getInstancePrices)

	s.mcp.AddTool(mcp.NewTool("getInstanceSpecs",
		mcp.WithDescription("Get hardware specifications (vCPU, memory, storage, network) for an EC2 instance type."),
		mcp.WithString("instanceType", mcp.Required(), mcp.Description("EC2 instance type, e.g. t3.xlarge")),
		mcp.WithString("region", mcp.Description("Region to read the catalog from, defaults to us-east-1")),
	), s.getInstanceSpecs)

	s.mcp.AddTool(mcp.NewTool("findCheapestRegion",
		mcp.WithDescription("Find the cheapest AWS region for an instance type across all supported regions including China, with CNY prices converted to USD."),
		mcp.WithString("instanceType", mcp.Required(), mcp.Description("EC2 instance type, e.g. t3.xlarge")),
		mcp.WithString("priceType", mcp.Enum("onDemand", "reserved1y", "reserved3y"), mcp.Description("Pricing plan, defaults to onDemand")),
	), s.findCheapestRegion)

	s.mcp.AddTool(mcp.NewTool("getSavingsPlanRates",
		mcp.WithDescription("Get EC2 savings-plans offering rates for a region (standard partition only)."),
		mcp.WithString("region", mcp.Required(), mcp.Description("Region code, e.g. us-east-1")),
		mcp.WithString("instanceType", mcp.Description("Optional instance type filter")),
	), s.getSavingsPlanRates)
}

func (s *Server) getInstancePrices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instanceType, err := request.RequireString("instanceType")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	plan, err := compare.ParsePlan(request.GetString("priceType", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	regions := stringSliceArg(request.GetArguments(), "regions")

	prices := s.engine.ResolveAll(ctx, instanceType, regions, plan)
	return jsonResult(prices)
}

func (s *Server) getInstanceSpecs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instanceType, err := request.RequireString("instanceType")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	region := request.GetString("region", "us-east-1")

	prices := s.engine.ResolveAll(ctx, instanceType, []string{region}, compare.PlanOnDemand)
	var specs *compare.InstanceSpecification
	if len(prices) > 0 {
		specs = prices[0].Specifications
	}
	return jsonResult(specs)
}

// cheapestEntry is one row of the findCheapestRegion answer; all prices are
// normalized to USD before comparison.
type cheapestEntry struct {
	Region           string   `json:"region"`
	RegionName       string   `json:"regionName"`
	PriceInUSD       float64  `json:"priceInUsd"`
	OriginalPrice    *float64 `json:"originalPrice"`
	OriginalCurrency *string  `json:"originalCurrency"`
}

func (s *Server) findCheapestRegion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instanceType, err := request.RequireString("instanceType")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	plan, err := compare.ParsePlan(request.GetString("priceType", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	regions := aws.SupportedRegions()
	prices := s.engine.ResolveAll(ctx, instanceType, regions, plan)

	entries := make([]cheapestEntry, 0, len(prices))
	for _, p := range prices {
		if p.Price == nil {
			continue
		}
		inUSD := *p.Price
		if p.Currency != nil && *p.Currency == aws.CurrencyCNY {
			inUSD = s.converter.ToUSD(inUSD)
		}
		entries = append(entries, cheapestEntry{
			Region:           p.Region,
			RegionName:       aws.RegionName(p.Region),
			PriceInUSD:       inUSD,
			OriginalPrice:    p.Price,
			OriginalCurrency: p.Currency,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].PriceInUSD < entries[j].PriceInUSD })

	result := map[string]any{
		"instanceType":        instanceType,
		"priceType":           plan,
		"allRegions":          entries,
		"exchangeRate":        map[string]float64{"cnyToUsd": s.converter.Rate()},
		"queriedRegionsCount": len(regions),
		"resultRegionsCount":  len(entries),
		"note":                "All prices converted to USD for accurate comparison, including China regions",
	}
	if len(entries) > 0 {
		result["cheapestRegion"] = entries[0]
	} else {
		result["cheapestRegion"] = nil
	}
	return jsonResult(result)
}

func (s *Server) getSavingsPlanRates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	region, err := request.RequireString("region")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	instanceType := request.GetString("instanceType", "")

	rates, err := s.engine.ListSavingsPlanRates(ctx, region, instanceType, nil)
	if err != nil {
		return mcp.NewToolResultError("Failed to fetch savings plan rates: " + err.Error()), nil
	}
	return jsonResult(rates)
}

func (s *Server) registerResources() {
	s.mcp.AddResource(mcp.NewResource("ec2://instance-types", "instance-types",
		mcp.WithResourceDescription("Available EC2 instance types (xlarge sizes)"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		types, err := s.engine.ListInstanceTypes(ctx)
		if err != nil {
			return nil, err
		}
		return textResource("ec2://instance-types", types)
	})

	s.mcp.AddResource(mcp.NewResource("ec2://exchange-rate", "exchange-rate",
		mcp.WithResourceDescription("Configured CNY to USD exchange rate"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return textResource("ec2://exchange-rate", map[string]float64{"cnyToUsd": s.converter.Rate()})
	})

	s.mcp.AddResource(mcp.NewResource("ec2://supported-regions", "supported-regions",
		mcp.WithResourceDescription("All supported AWS regions, including China regions"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		regions := make([]map[string]string, 0)
		for _, code := range aws.SupportedRegions() {
			regions = append(regions, map[string]string{"code": code, "name": aws.RegionName(code)})
		}
		return textResource("ec2://supported-regions", map[string]any{
			"description":     "All AWS regions supported by EC2 Price Compare, including China regions",
			"regions":         regions,
			"chinaSupport":    true,
			"currencySupport": []string{aws.CurrencyUSD, aws.CurrencyCNY},
		})
	})
}

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("compare-prices",
		mcp.WithPromptDescription("Compare EC2 instance prices across AWS regions including China regions"),
	), func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return mcp.NewGetPromptResult("EC2 price comparison", []mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(
				"Compare EC2 instance prices for me across AWS regions including China. "+
					"Do not search the web: use the getInstancePrices tool for pricing data, the "+
					"ec2://supported-regions resource for the region list and the ec2://exchange-rate "+
					"resource to convert CNY prices to USD. Return a markdown table with all prices "+
					"in USD and highlight the cheapest region.")),
		}), nil
	})

	s.mcp.AddPrompt(mcp.NewPrompt("find-cheapest-region",
		mcp.WithPromptDescription("Find the cheapest AWS region for an EC2 instance type with automatic USD conversion"),
	), func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return mcp.NewGetPromptResult("Cheapest region lookup", []mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(
				"Find the cheapest region for a specific EC2 instance type across all regions "+
					"including China, using the findCheapestRegion tool. Always report prices in USD.")),
		}), nil
	})

	s.mcp.AddPrompt(mcp.NewPrompt("instance-specs",
		mcp.WithPromptDescription("Get detailed specifications for an EC2 instance type"),
	), func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return mcp.NewGetPromptResult("Instance specifications", []mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(
				"Use the getInstanceSpecs tool to retrieve EC2 instance hardware details and "+
					"return a formatted markdown description.")),
		}), nil
	})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	body, err := sonic.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError("failed to encode result: " + err.Error()), nil
	}
	return mcp.NewToolResultText(string(body)), nil
}

func textResource(uri string, v any) ([]mcp.ResourceContents, error) {
	body, err := sonic.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: uri, MIMEType: "application/json", Text: string(body)},
	}, nil
}

// stringSliceArg coerces an optional array argument to []string; MCP
// arguments arrive as []any.
func stringSliceArg(args map[string]any, key string) []string {
	raw, ok := args[key]
	if !ok {
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
