package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/savingsplans"
)

// SavingsPlansAPI wraps the DescribeSavingsPlansOfferingRates call (no SDK
// paginator interface exists).
type SavingsPlansAPI interface {
	DescribeSavingsPlansOfferingRates(ctx context.Context, params *savingsplans.DescribeSavingsPlansOfferingRatesInput, optFns ...func(*savingsplans.Options)) (*savingsplans.DescribeSavingsPlansOfferingRatesOutput, error)
}

// PricingAPI is the slice of the Pricing API the lookup path needs.
type PricingAPI = pricing.GetProductsAPIClient

// EC2InstanceTypesAPI is the slice of the EC2 API the inventory listing needs.
type EC2InstanceTypesAPI = ec2.DescribeInstanceTypesAPIClient

// ClientFactory creates AWS service clients for a zone, enabling dependency
// injection for testing. The pricing and EC2 clients of the two zones differ
// in endpoint and credentials, never in interface.
type ClientFactory interface {
	NewPricingClient(zone Zone) (PricingAPI, error)
	NewEC2Client(zone Zone) (EC2InstanceTypesAPI, error)
	NewSavingsPlansClient() (SavingsPlansAPI, error)
}
