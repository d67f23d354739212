package compare

import (
	"context"
	"sync"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	log "github.com/sirupsen/logrus"

	"github.com/pixelfederation/ec2-price-compare/compare/aws"
)

// defaultOperatingSystem is the only OS the comparison covers.
const defaultOperatingSystem = "Linux"

// RegionPrice is the comparison record for one region. Price semantics:
// nil means the lookup failed or the catalog returned nothing parseable;
// a zero value means the requested reserved plan is not offered in the
// region. Consumers must not collapse the two. Currency is nil exactly when
// Price is nil. SavingsPercentage is always nil here: the two prices may be
// in different currencies and conversion belongs to the consumer.
type RegionPrice struct {
	Region            string                 `json:"region"`
	InstanceType      string                 `json:"instanceType"`
	OperatingSystem   string                 `json:"operatingSystem"`
	Price             *float64               `json:"price"`
	Currency          *string                `json:"currency"`
	OnDemandPrice     *float64               `json:"onDemandPrice"`
	OnDemandCurrency  *string                `json:"onDemandCurrency"`
	SavingsPercentage *float64               `json:"savingsPercentage"`
	Specifications    *InstanceSpecification `json:"specifications,omitempty"`
}

// Engine resolves instance prices per region against the pricing catalog.
// It holds no mutable state between calls; every lookup is a point-in-time
// query.
type Engine struct {
	factory aws.ClientFactory
	metrics *Metrics
}

// NewEngine returns an engine using the given client factory. metrics may be
// nil.
func NewEngine(factory aws.ClientFactory, metrics *Metrics) *Engine {
	return &Engine{factory: factory, metrics: metrics}
}

// ResolveAll resolves the price of instanceType under plan for every region
// in regions, paired with the on-demand baseline the savings comparison
// needs. The output has one record per requested region, in request order,
// regardless of individual failures; per-region errors are logged and
// recovered into the record's nil price. An empty region list yields an
// empty result without any catalog call.
func (e *Engine) ResolveAll(ctx context.Context, instanceType string, regions []string, plan Plan) []RegionPrice {
	if len(regions) == 0 {
		log.Debug("no regions requested, skipping price lookup")
		return []RegionPrice{}
	}

	// Baseline pass always runs: reserved comparisons need the on-demand
	// reference, and for on-demand requests it doubles as the target pass.
	baseline := e.lookupAll(ctx, instanceType, regions, PlanOnDemand)
	target := baseline
	if plan != PlanOnDemand {
		target = e.lookupAll(ctx, instanceType, regions, plan)
	}

	// Hardware specs are assumed region-invariant for a named type, so the
	// first region (in request order) with a usable document describes all
	// of them.
	var specs *InstanceSpecification
	for _, lr := range target {
		if lr.Doc == nil {
			continue
		}
		if s := ExtractSpecifications(lr.Doc); s != nil {
			specs = s
			break
		}
	}

	records := make([]RegionPrice, 0, len(regions))
	for i, region := range regions {
		rec := RegionPrice{
			Region:          region,
			InstanceType:    instanceType,
			OperatingSystem: defaultOperatingSystem,
			Specifications:  specs,
		}
		rec.Price, rec.Currency = e.recordPrice(target[i], region, plan)
		rec.OnDemandPrice, rec.OnDemandCurrency = e.recordPrice(baseline[i], region, PlanOnDemand)
		records = append(records, rec)
	}

	log.Debugf("price retrieval complete [type=%s, plan=%s, regions=%d]", instanceType, plan, len(records))
	return records
}

// recordPrice maps one lookup outcome to the record's price/currency pair,
// applying the nil-vs-zero sentinel policy in one place.
func (e *Engine) recordPrice(lr regionLookup, region string, plan Plan) (*float64, *string) {
	if lr.Err != nil {
		log.WithError(lr.Err).Errorf("error getting price [region=%s, plan=%s]", region, plan)
		if e.metrics != nil {
			e.metrics.LookupErrors.Inc()
		}
		return nil, nil
	}
	if lr.Price == nil {
		return nil, nil
	}
	return lr.Price, awssdk.String(lr.Currency)
}

// lookupAll queries every region concurrently. Results are addressed by the
// region's position in the request so output order never depends on
// completion order.
func (e *Engine) lookupAll(ctx context.Context, instanceType string, regions []string, plan Plan) []regionLookup {
	results := make([]regionLookup, len(regions))

	var wg sync.WaitGroup
	for i, region := range regions {
		log.Debugf("querying price [region=%s, type=%s, plan=%s]", region, instanceType, plan)
		wg.Add(1)
		go func(i int, region string) {
			defer wg.Done()
			results[i] = e.lookupRegion(ctx, region, instanceType, plan)
		}(i, region)
	}
	wg.Wait()

	return results
}
