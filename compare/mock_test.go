package compare

import (
	"context"
	"encoding/json"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/savingsplans"

	"github.com/pixelfederation/ec2-price-compare/compare/aws"
)

// mockPricingClient implements aws.PricingAPI for testing.
type mockPricingClient struct {
	GetProductsFn func(ctx context.Context, params *pricing.GetProductsInput, optFns ...func(*pricing.Options)) (*pricing.GetProductsOutput, error)
}

func (m *mockPricingClient) GetProducts(ctx context.Context, params *pricing.GetProductsInput, optFns ...func(*pricing.Options)) (*pricing.GetProductsOutput, error) {
	return m.GetProductsFn(ctx, params, optFns...)
}

// mockEC2Client implements aws.EC2InstanceTypesAPI for testing.
type mockEC2Client struct {
	DescribeInstanceTypesFn func(ctx context.Context, params *ec2.DescribeInstanceTypesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstanceTypesOutput, error)
}

func (m *mockEC2Client) DescribeInstanceTypes(ctx context.Context, params *ec2.DescribeInstanceTypesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstanceTypesOutput, error) {
	return m.DescribeInstanceTypesFn(ctx, params, optFns...)
}

// mockSavingsPlansClient implements aws.SavingsPlansAPI for testing.
type mockSavingsPlansClient struct {
	DescribeSavingsPlansOfferingRatesFn func(ctx context.Context, params *savingsplans.DescribeSavingsPlansOfferingRatesInput, optFns ...func(*savingsplans.Options)) (*savingsplans.DescribeSavingsPlansOfferingRatesOutput, error)
}

func (m *mockSavingsPlansClient) DescribeSavingsPlansOfferingRates(ctx context.Context, params *savingsplans.DescribeSavingsPlansOfferingRatesInput, optFns ...func(*savingsplans.Options)) (*savingsplans.DescribeSavingsPlansOfferingRatesOutput, error) {
	return m.DescribeSavingsPlansOfferingRatesFn(ctx, params, optFns...)
}

// mockClientFactory implements aws.ClientFactory for testing. A nil
// chinaPricingClient falls through to pricingClient so single-zone tests
// stay short.
type mockClientFactory struct {
	pricingClient      aws.PricingAPI
	chinaPricingClient aws.PricingAPI
	pricingErr         error
	ec2Client          aws.EC2InstanceTypesAPI
	ec2Err             error
	spClient           aws.SavingsPlansAPI
	spErr              error
}

func (f *mockClientFactory) NewPricingClient(zone aws.Zone) (aws.PricingAPI, error) {
	if zone == aws.ZoneChina && f.chinaPricingClient != nil {
		return f.chinaPricingClient, f.pricingErr
	}
	return f.pricingClient, f.pricingErr
}

func (f *mockClientFactory) NewEC2Client(zone aws.Zone) (aws.EC2InstanceTypesAPI, error) {
	return f.ec2Client, f.ec2Err
}

func (f *mockClientFactory) NewSavingsPlansClient() (aws.SavingsPlansAPI, error) {
	return f.spClient, f.spErr
}

// filterValue extracts one filter value from a GetProducts request.
func filterValue(params *pricing.GetProductsInput, field string) string {
	for _, f := range params.Filters {
		if awssdk.ToString(f.Field) == field {
			return awssdk.ToString(f.Value)
		}
	}
	return ""
}

func testAttributes(instanceType string) map[string]string {
	return map[string]string{
		"instanceType":       instanceType,
		"vcpu":               "4",
		"memory":             "16 GiB",
		"storage":            "EBS only",
		"networkPerformance": "Up to 5 Gigabit",
		"instanceFamily":     "General purpose",
	}
}

// makeOnDemandDoc builds a catalog document priced with a single on-demand
// term, mirroring the upstream response shape (terms nested one container
// level deep).
func makeOnDemandDoc(instanceType, currency, price string) string {
	doc := map[string]any{
		"product": map[string]any{
			"productFamily": "Compute Instance",
			"sku":           "TESTSKU",
			"attributes":    testAttributes(instanceType),
		},
		"terms": map[string]any{
			"OnDemand": map[string]any{
				"TESTSKU.JRTCKXETXF": map[string]any{
					"termAttributes": map[string]string{},
					"priceDimensions": map[string]any{
						"TESTSKU.JRTCKXETXF.6YS6EN2CT7": map[string]any{
							"unit":         "Hrs",
							"pricePerUnit": map[string]string{currency: price},
						},
					},
				},
			},
		},
	}
	b, _ := json.Marshal(doc)
	return string(b)
}

// makeReservedDoc builds a catalog document carrying several reserved terms:
// an All Upfront decoy first in key order and the No Upfront convertible term
// the resolution must select.
func makeReservedDoc(instanceType, lease, currency, price string) string {
	doc := map[string]any{
		"product": map[string]any{
			"productFamily": "Compute Instance",
			"sku":           "TESTSKU",
			"attributes":    testAttributes(instanceType),
		},
		"terms": map[string]any{
			"Reserved": map[string]any{
				"TESTSKU.AAAA": map[string]any{
					"termAttributes": map[string]string{
						"LeaseContractLength": lease,
						"OfferingClass":       "convertible",
						"PurchaseOption":      "All Upfront",
					},
					"priceDimensions": map[string]any{
						"TESTSKU.AAAA.RATE": map[string]any{
							"unit":         "Hrs",
							"pricePerUnit": map[string]string{currency: "0"},
						},
					},
				},
				"TESTSKU.BBBB": map[string]any{
					"termAttributes": map[string]string{
						"LeaseContractLength": lease,
						"OfferingClass":       "convertible",
						"PurchaseOption":      "No Upfront",
					},
					"priceDimensions": map[string]any{
						"TESTSKU.BBBB.RATE": map[string]any{
							"unit":         "Hrs",
							"pricePerUnit": map[string]string{currency: price},
						},
					},
				},
			},
		},
	}
	b, _ := json.Marshal(doc)
	return string(b)
}

// pricingByTermType dispatches GetProducts on the termType filter, which is
// how ResolveAll's baseline and target passes are told apart in tests.
func pricingByTermType(onDemand func(*pricing.GetProductsInput) (*pricing.GetProductsOutput, error), reserved func(*pricing.GetProductsInput) (*pricing.GetProductsOutput, error)) *mockPricingClient {
	return &mockPricingClient{
		GetProductsFn: func(ctx context.Context, params *pricing.GetProductsInput, optFns ...func(*pricing.Options)) (*pricing.GetProductsOutput, error) {
			if filterValue(params, "termType") == "Reserved" {
				if reserved == nil {
					return nil, fmt.Errorf("unexpected reserved lookup")
				}
				return reserved(params)
			}
			return onDemand(params)
		},
	}
}
