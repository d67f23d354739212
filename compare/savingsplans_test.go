package compare

import (
	"context"
	"fmt"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/savingsplans"
	savingsplansTypes "github.com/aws/aws-sdk-go-v2/service/savingsplans/types"
)

func makeOfferingRate(instanceType, rate string, durationSeconds int64) savingsplansTypes.SavingsPlanOfferingRate {
	return savingsplansTypes.SavingsPlanOfferingRate{
		Rate: awssdk.String(rate),
		SavingsPlanOffering: &savingsplansTypes.ParentSavingsPlanOffering{
			PaymentOption:   savingsplansTypes.SavingsPlanPaymentOptionNoUpfront,
			DurationSeconds: durationSeconds,
			PlanType:        savingsplansTypes.SavingsPlanTypeCompute,
		},
		Properties: []savingsplansTypes.SavingsPlanOfferingRateProperty{
			{
				Name:  awssdk.String(string(savingsplansTypes.SavingsPlanRatePropertyKeyInstanceType)),
				Value: awssdk.String(instanceType),
			},
			{
				Name:  awssdk.String(string(savingsplansTypes.SavingsPlanRatePropertyKeyRegion)),
				Value: awssdk.String("us-east-1"),
			},
			{
				Name:  awssdk.String(string(savingsplansTypes.SavingsPlanRatePropertyKeyProductDescription)),
				Value: awssdk.String("Linux/UNIX"),
			},
		},
	}
}

func TestListSavingsPlanRates_Paginated(t *testing.T) {
	calls := 0
	client := &mockSavingsPlansClient{
		DescribeSavingsPlansOfferingRatesFn: func(ctx context.Context, params *savingsplans.DescribeSavingsPlansOfferingRatesInput, optFns ...func(*savingsplans.Options)) (*savingsplans.DescribeSavingsPlansOfferingRatesOutput, error) {
			calls++
			if calls == 1 {
				if params.NextToken != nil {
					t.Errorf("expected no token on the first page, got %v", *params.NextToken)
				}
				return &savingsplans.DescribeSavingsPlansOfferingRatesOutput{
					SearchResults: []savingsplansTypes.SavingsPlanOfferingRate{
						makeOfferingRate("m5.xlarge", "0.12", 31536000),
					},
					NextToken: awssdk.String("page2"),
				}, nil
			}
			return &savingsplans.DescribeSavingsPlansOfferingRatesOutput{
				SearchResults: []savingsplansTypes.SavingsPlanOfferingRate{
					makeOfferingRate("m5.xlarge", "0.08", 94608000),
				},
			}, nil
		},
	}

	e := NewEngine(&mockClientFactory{spClient: client}, nil)
	rates, err := e.ListSavingsPlanRates(context.Background(), "us-east-1", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 2 {
		t.Errorf("expected 2 pages fetched, got %d", calls)
	}
	if len(rates) != 2 {
		t.Fatalf("expected 2 rates, got %d", len(rates))
	}
	// sorted by duration within one instance type
	if rates[0].DurationYears != 1 || rates[1].DurationYears != 3 {
		t.Errorf("expected 1yr before 3yr, got %d, %d", rates[0].DurationYears, rates[1].DurationYears)
	}
	if rates[0].Rate != 0.12 || rates[0].Currency != "USD" {
		t.Errorf("unexpected first rate: %+v", rates[0])
	}
	if rates[0].Region != "us-east-1" || rates[0].InstanceType != "m5.xlarge" {
		t.Errorf("unexpected rate identity: %+v", rates[0])
	}
	if rates[0].PlanType != "Compute" || rates[0].PaymentOption != "No Upfront" {
		t.Errorf("unexpected plan attributes: %+v", rates[0])
	}
}

func TestListSavingsPlanRates_InstanceTypeFilter(t *testing.T) {
	client := &mockSavingsPlansClient{
		DescribeSavingsPlansOfferingRatesFn: func(ctx context.Context, params *savingsplans.DescribeSavingsPlansOfferingRatesInput, optFns ...func(*savingsplans.Options)) (*savingsplans.DescribeSavingsPlansOfferingRatesOutput, error) {
			return &savingsplans.DescribeSavingsPlansOfferingRatesOutput{
				SearchResults: []savingsplansTypes.SavingsPlanOfferingRate{
					makeOfferingRate("m5.xlarge", "0.12", 31536000),
					makeOfferingRate("c5.xlarge", "0.10", 31536000),
				},
			}, nil
		},
	}

	e := NewEngine(&mockClientFactory{spClient: client}, nil)
	rates, err := e.ListSavingsPlanRates(context.Background(), "us-east-1", "c5.xlarge", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rates) != 1 || rates[0].InstanceType != "c5.xlarge" {
		t.Fatalf("expected only c5.xlarge rates, got %+v", rates)
	}
}

func TestListSavingsPlanRates_SkipsBadEntries(t *testing.T) {
	bad := makeOfferingRate("m5.xlarge", "not-a-number", 31536000)
	odd := makeOfferingRate("m5.xlarge", "0.12", 60) // not a whole-year term
	good := makeOfferingRate("m5.xlarge", "0.12", 31536000)

	client := &mockSavingsPlansClient{
		DescribeSavingsPlansOfferingRatesFn: func(ctx context.Context, params *savingsplans.DescribeSavingsPlansOfferingRatesInput, optFns ...func(*savingsplans.Options)) (*savingsplans.DescribeSavingsPlansOfferingRatesOutput, error) {
			return &savingsplans.DescribeSavingsPlansOfferingRatesOutput{
				SearchResults: []savingsplansTypes.SavingsPlanOfferingRate{bad, odd, good},
			}, nil
		},
	}

	e := NewEngine(&mockClientFactory{spClient: client}, nil)
	rates, err := e.ListSavingsPlanRates(context.Background(), "us-east-1", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rates) != 1 {
		t.Fatalf("expected bad entries skipped, got %d rates", len(rates))
	}
}

func TestListSavingsPlanRates_APIError(t *testing.T) {
	client := &mockSavingsPlansClient{
		DescribeSavingsPlansOfferingRatesFn: func(ctx context.Context, params *savingsplans.DescribeSavingsPlansOfferingRatesInput, optFns ...func(*savingsplans.Options)) (*savingsplans.DescribeSavingsPlansOfferingRatesOutput, error) {
			return nil, fmt.Errorf("access denied")
		},
	}

	e := NewEngine(&mockClientFactory{spClient: client}, nil)
	if _, err := e.ListSavingsPlanRates(context.Background(), "us-east-1", "", nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestSecondsToYears(t *testing.T) {
	if years, err := secondsToYears(31536000); err != nil || years != 1 {
		t.Errorf("expected 1 year, got %d, %v", years, err)
	}
	if years, err := secondsToYears(94608000); err != nil || years != 3 {
		t.Errorf("expected 3 years, got %d, %v", years, err)
	}
	if _, err := secondsToYears(60); err == nil {
		t.Error("expected error for sub-year duration")
	}
}
