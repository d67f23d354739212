// Package options holds the command line and environment configuration for
// the price comparison commands.
package options

import (
	"os"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/pixelfederation/ec2-price-compare/compare/aws"
	"github.com/pixelfederation/ec2-price-compare/currency"
)

const (
	defaultPort                 = 3001
	defaultChinaPricingEndpoint = "https://api.pricing.cn-northwest-1.amazonaws.com.cn"
	defaultChinaEC2Endpoint     = "https://ec2.cn-northwest-1.amazonaws.com.cn"
)

// Options configures the engine, the AWS client pair and the serving
// surfaces. Defaults come from the environment so container deployments work
// without flags.
type Options struct {
	Port     int
	LogLevel string

	StandardRegion       string
	ChinaRegion          string
	ChinaPricingEndpoint string
	ChinaEC2Endpoint     string
	ChinaAccessKeyID     string
	ChinaSecretAccessKey string

	CNYToUSDRate float64
}

func NewOptions() *Options {
	return &Options{
		Port:                 envIntOr("PORT", defaultPort),
		LogLevel:             envOr("LOG_LEVEL", "info"),
		StandardRegion:       envOr("AWS_REGION", "us-east-1"),
		ChinaRegion:          envOr("AWS_CN_REGION", "cn-northwest-1"),
		ChinaPricingEndpoint: envOr("AWS_CN_PRICING_ENDPOINT", defaultChinaPricingEndpoint),
		ChinaEC2Endpoint:     envOr("AWS_CN_EC2_ENDPOINT", defaultChinaEC2Endpoint),
		ChinaAccessKeyID:     os.Getenv("AWS_CN_ACCESS_KEY_ID"),
		ChinaSecretAccessKey: os.Getenv("AWS_CN_SECRET_ACCESS_KEY"),
		CNYToUSDRate:         envFloatOr("CNY_TO_USD_RATE", currency.DefaultCNYToUSDRate),
	}
}

func (o *Options) AddFlags(flags *pflag.FlagSet) {
	flags.IntVarP(&o.Port, "port", "p", o.Port, "HTTP listen port")
	flags.StringVar(&o.StandardRegion, "aws-region", o.StandardRegion, "region for the standard partition clients")
	flags.StringVar(&o.ChinaRegion, "aws-cn-region", o.ChinaRegion, "region for the China partition clients")
	flags.StringVar(&o.ChinaPricingEndpoint, "aws-cn-pricing-endpoint", o.ChinaPricingEndpoint, "pricing API endpoint for the China partition")
	flags.StringVar(&o.ChinaEC2Endpoint, "aws-cn-ec2-endpoint", o.ChinaEC2Endpoint, "EC2 API endpoint for the China partition")
	flags.Float64Var(&o.CNYToUSDRate, "cny-to-usd-rate", o.CNYToUSDRate, "CNY to USD exchange rate used for comparisons")
}

// AWSConfig maps the options to the client factory configuration. China
// credentials stay environment-only, they never appear as flags.
func (o *Options) AWSConfig() aws.Config {
	return aws.Config{
		StandardRegion:       o.StandardRegion,
		ChinaRegion:          o.ChinaRegion,
		ChinaPricingEndpoint: o.ChinaPricingEndpoint,
		ChinaEC2Endpoint:     o.ChinaEC2Endpoint,
		ChinaAccessKeyID:     o.ChinaAccessKeyID,
		ChinaSecretAccessKey: o.ChinaSecretAccessKey,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
