package compare

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	pricingtypes "github.com/aws/aws-sdk-go-v2/service/pricing/types"

	"github.com/pixelfederation/ec2-price-compare/compare/aws"
)

// regionLookup is the outcome of one catalog query for one region. Err is
// set only for transport, client construction and decode failures; every
// other outcome (missing term, empty dimensions, plan not offered) is
// expressed through Price/Currency so the sentinel policy lives in exactly
// one place.
type regionLookup struct {
	Price    *float64
	Currency string // empty when no settlement currency could be determined
	Doc      *aws.PriceDocument
	Err      error
}

// lookupRegion runs one catalog query for one region and resolves it to a
// price. A single page is fetched; the Pricing API returns the matching
// product first and the pricing lookups never need to paginate.
func (e *Engine) lookupRegion(ctx context.Context, region, instanceType string, plan Plan) regionLookup {
	start := time.Now()
	if e.metrics != nil {
		e.metrics.Lookups.Inc()
		defer func() {
			e.metrics.LookupDuration.Observe(time.Since(start).Seconds())
		}()
	}

	zone := aws.ClassifyRegion(region)
	client, err := e.factory.NewPricingClient(zone)
	if err != nil {
		return regionLookup{Err: err}
	}

	out, err := client.GetProducts(ctx, &pricing.GetProductsInput{
		ServiceCode: awssdk.String(aws.ServiceCodeEC2),
		MaxResults:  awssdk.Int32(aws.MaxResultsPerPage),
		Filters:     buildFilters(instanceType, region, plan),
	})
	if err != nil {
		return regionLookup{Err: err}
	}

	if len(out.PriceList) == 0 {
		if plan.Reserved() {
			// The commitment term is not offered in this region. Note a
			// wrong filter value (for example a mistyped region code)
			// collapses into the same zero sentinel.
			return regionLookup{Price: awssdk.Float64(0), Currency: aws.CurrencyUSD}
		}
		// On-demand pricing exists everywhere, so an empty response is an
		// anomaly rather than an expected absence.
		return regionLookup{}
	}

	var doc aws.PriceDocument
	if err := json.Unmarshal([]byte(out.PriceList[0]), &doc); err != nil {
		return regionLookup{Err: err}
	}

	dim := ResolveTerm(&doc, plan)
	if dim == nil {
		return regionLookup{Doc: &doc}
	}

	price, currency, ok := dimensionPrice(dim)
	if !ok {
		return regionLookup{Doc: &doc}
	}
	return regionLookup{Price: awssdk.Float64(price), Currency: currency, Doc: &doc}
}

// dimensionPrice picks the populated settlement currency of a dimension,
// preferring USD over CNY.
func dimensionPrice(dim *aws.PriceDimension) (float64, string, bool) {
	for _, currency := range []string{aws.CurrencyUSD, aws.CurrencyCNY} {
		raw, ok := dim.PricePerUnit[currency]
		if !ok || raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		return value, currency, true
	}
	return 0, "", false
}

// buildFilters assembles the exact-match filter set for one pricing lookup.
// Operating system, tenancy, capacity status and pre-installed software are
// pinned; reserved plans additionally constrain the contract attributes.
func buildFilters(instanceType, region string, plan Plan) []pricingtypes.Filter {
	termType := "OnDemand"
	if plan.Reserved() {
		termType = "Reserved"
	}

	filters := []pricingtypes.Filter{
		termMatch("instanceType", instanceType),
		termMatch("regionCode", region),
		termMatch("operatingSystem", defaultOperatingSystem),
		termMatch("tenancy", "Shared"),
		termMatch("capacitystatus", "Used"),
		termMatch("preInstalledSw", "NA"),
		termMatch("termType", termType),
	}
	if plan.Reserved() {
		filters = append(filters,
			termMatch("PurchaseOption", purchaseOptionNoUpfront),
			termMatch("leaseContractLength", plan.LeaseContractLength()),
			termMatch("offeringClass", offeringClassConvertible),
		)
	}
	return filters
}

func termMatch(field, value string) pricingtypes.Filter {
	return pricingtypes.Filter{
		Type:  pricingtypes.FilterTypeTermMatch,
		Field: awssdk.String(field),
		Value: awssdk.String(value),
	}
}
