package compare

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/savingsplans"
	savingsplansTypes "github.com/aws/aws-sdk-go-v2/service/savingsplans/types"
	log "github.com/sirupsen/logrus"

	"github.com/pixelfederation/ec2-price-compare/compare/aws"
)

// SavingsPlanRate is one hourly savings-plans offering rate for an instance
// type. Rates come from the standard partition only; the savingsplans API
// has no China endpoint.
type SavingsPlanRate struct {
	Region        string  `json:"region"`
	InstanceType  string  `json:"instanceType"`
	Rate          float64 `json:"rate"`
	Currency      string  `json:"currency"`
	PlanType      string  `json:"planType"`
	DurationYears int     `json:"durationYears"`
	PaymentOption string  `json:"paymentOption"`
}

type savingsPlanProperties struct {
	Region             string
	InstanceType       string
	InstanceFamily     string
	ProductDescription string
	Tenancy            string
}

// ListSavingsPlanRates returns the EC2 savings-plans offering rates for a
// region, optionally narrowed to an instance type. Pagination is exhausted;
// an empty result means no offerings, not an error.
func (e *Engine) ListSavingsPlanRates(ctx context.Context, region, instanceType string, planTypes []string) ([]SavingsPlanRate, error) {
	client, err := e.factory.NewSavingsPlansClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create SavingsPlans client: %w", err)
	}

	if len(planTypes) == 0 {
		planTypes = []string{"Compute", "EC2Instance"}
	}

	params := &savingsplans.DescribeSavingsPlansOfferingRatesInput{
		MaxResults:       aws.MaxResultsPerPage,
		SavingsPlanTypes: convertSavingsPlanTypes(planTypes),
		ServiceCodes:     []savingsplansTypes.SavingsPlanRateServiceCode{"AmazonEC2"},
		Filters: []savingsplansTypes.SavingsPlanOfferingRateFilterElement{
			{
				Name:   savingsplansTypes.SavingsPlanRateFilterAttributeRegion,
				Values: []string{region},
			},
			{
				Name:   savingsplansTypes.SavingsPlanRateFilterAttributeTenancy,
				Values: []string{"shared"},
			},
			{
				Name:   savingsplansTypes.SavingsPlanRateFilterAttributeProductDescription,
				Values: []string{"Linux/UNIX"},
			},
		},
	}

	var offerings []savingsplansTypes.SavingsPlanOfferingRate
	for {
		resp, err := client.DescribeSavingsPlansOfferingRates(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("error while fetching savings plan rates [region=%s]: %w", region, err)
		}
		offerings = append(offerings, resp.SearchResults...)
		if resp.NextToken == nil || *resp.NextToken == "" {
			break
		}
		params.NextToken = resp.NextToken
	}

	rates := make([]SavingsPlanRate, 0, len(offerings))
	for _, offering := range offerings {
		props := convertPropertiesToStruct(offering.Properties)
		if instanceType != "" && props.InstanceType != instanceType {
			continue
		}

		value, err := strconv.ParseFloat(awssdk.ToString(offering.Rate), 64)
		if err != nil {
			log.WithError(err).Errorf("error while parsing savings plan rate [region=%s, type=%s]", region, props.InstanceType)
			continue
		}
		years, err := secondsToYears(offering.SavingsPlanOffering.DurationSeconds)
		if err != nil {
			log.WithError(err).Errorf("error converting duration [region=%s, type=%s]", region, props.InstanceType)
			continue
		}

		rates = append(rates, SavingsPlanRate{
			Region:        props.Region,
			InstanceType:  props.InstanceType,
			Rate:          value,
			Currency:      aws.CurrencyUSD,
			PlanType:      string(offering.SavingsPlanOffering.PlanType),
			DurationYears: years,
			PaymentOption: string(offering.SavingsPlanOffering.PaymentOption),
		})
	}

	sort.Slice(rates, func(i, j int) bool {
		if rates[i].InstanceType != rates[j].InstanceType {
			return rates[i].InstanceType < rates[j].InstanceType
		}
		if rates[i].DurationYears != rates[j].DurationYears {
			return rates[i].DurationYears < rates[j].DurationYears
		}
		return rates[i].Rate < rates[j].Rate
	})
	return rates, nil
}

func convertSavingsPlanTypes(spt []string) []savingsplansTypes.SavingsPlanType {
	result := make([]savingsplansTypes.SavingsPlanType, 0, len(spt))
	for _, v := range spt {
		result = append(result, savingsplansTypes.SavingsPlanType(v))
	}
	return result
}

func convertPropertiesToStruct(properties []savingsplansTypes.SavingsPlanOfferingRateProperty) savingsPlanProperties {
	result := savingsPlanProperties{}
	for _, property := range properties {
		if property.Name == nil || property.Value == nil {
			continue
		}
		switch *property.Name {
		case string(savingsplansTypes.SavingsPlanRatePropertyKeyRegion):
			result.Region = *property.Value
		case string(savingsplansTypes.SavingsPlanRatePropertyKeyInstanceType):
			result.InstanceType = *property.Value
		case string(savingsplansTypes.SavingsPlanRatePropertyKeyInstanceFamily):
			result.InstanceFamily = *property.Value
		case string(savingsplansTypes.SavingsPlanRatePropertyKeyProductDescription):
			result.ProductDescription = *property.Value
		case string(savingsplansTypes.SavingsPlanRatePropertyKeyTenancy):
			result.Tenancy = *property.Value
		}
	}
	return result
}

// secondsToYears converts an offering duration to years; savings plans come
// in one and three year terms only.
func secondsToYears(seconds int64) (int, error) {
	const secondsPerYear = 31536000

	years := seconds / secondsPerYear
	if years != 1 && years != 3 {
		return 0, fmt.Errorf("unexpected savings plan duration: %d seconds (%d years), expected 1 or 3 years", seconds, years)
	}
	return int(years), nil
}
