package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/savingsplans"
)

// Config holds the endpoint and credential settings for both zones. The
// Pricing API lives in a single region per partition, so the region fields
// name the API home region, not the region being priced.
type Config struct {
	// StandardRegion is the Pricing/SavingsPlans API home region of the
	// standard partition, normally us-east-1.
	StandardRegion string

	// ChinaRegion is the API home region of the China partition, normally
	// cn-northwest-1.
	ChinaRegion string

	// China partition endpoints. The SDK cannot derive these from the
	// region code alone.
	ChinaPricingEndpoint string
	ChinaEC2Endpoint     string

	// China partition credentials. Accounts in the China partition are
	// separate from global accounts, so the key pair is configured
	// explicitly instead of coming from the default chain.
	ChinaAccessKeyID     string
	ChinaSecretAccessKey string
}

// SDKClientFactory creates real AWS SDK clients. Implements ClientFactory.
type SDKClientFactory struct {
	cfg Config
}

// NewSDKClientFactory returns a factory producing clients for both zones
// from the given configuration.
func NewSDKClientFactory(cfg Config) *SDKClientFactory {
	if cfg.StandardRegion == "" {
		cfg.StandardRegion = "us-east-1"
	}
	if cfg.ChinaRegion == "" {
		cfg.ChinaRegion = "cn-northwest-1"
	}
	return &SDKClientFactory{cfg: cfg}
}

func (f *SDKClientFactory) NewPricingClient(zone Zone) (PricingAPI, error) {
	if zone == ZoneChina {
		cfg, err := f.loadChinaConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config for Pricing API [zone=%s]: %w", zone, err)
		}
		return pricing.NewFromConfig(cfg, func(o *pricing.Options) {
			if f.cfg.ChinaPricingEndpoint != "" {
				o.BaseEndpoint = aws.String(f.cfg.ChinaPricingEndpoint)
			}
		}), nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(f.cfg.StandardRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for Pricing API [zone=%s]: %w", zone, err)
	}
	return pricing.NewFromConfig(cfg), nil
}

func (f *SDKClientFactory) NewEC2Client(zone Zone) (EC2InstanceTypesAPI, error) {
	if zone == ZoneChina {
		cfg, err := f.loadChinaConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config for EC2 [zone=%s]: %w", zone, err)
		}
		return ec2.NewFromConfig(cfg, func(o *ec2.Options) {
			if f.cfg.ChinaEC2Endpoint != "" {
				o.BaseEndpoint = aws.String(f.cfg.ChinaEC2Endpoint)
			}
		}), nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(f.cfg.StandardRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for EC2 [zone=%s]: %w", zone, err)
	}
	return ec2.NewFromConfig(cfg), nil
}

func (f *SDKClientFactory) NewSavingsPlansClient() (SavingsPlansAPI, error) {
	// The savingsplans API has no China partition endpoint; standard only.
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(f.cfg.StandardRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for SavingsPlans API: %w", err)
	}
	return savingsplans.NewFromConfig(cfg), nil
}

func (f *SDKClientFactory) loadChinaConfig() (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(f.cfg.ChinaRegion),
	}
	if f.cfg.ChinaAccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(f.cfg.ChinaAccessKeyID, f.cfg.ChinaSecretAccessKey, ""),
		))
	}
	return config.LoadDefaultConfig(context.TODO(), opts...)
}
