package compare

import (
	"sort"

	"github.com/pixelfederation/ec2-price-compare/compare/aws"
)

// ResolveTerm locates the one pricing term of doc matching the requested
// plan and returns its first price dimension, or nil when the document
// carries no usable term.
//
// On-demand documents are expected to contain exactly one term shape, so the
// first term wins, descending one container level when the entry is nested.
// For reserved plans every term and sub-term is scanned for the contract
// attributes (lease length, convertible offering class, No Upfront) and the
// first match wins; there is no ambiguity scoring. Term keys are walked in
// sorted order so the choice is deterministic across runs.
func ResolveTerm(doc *aws.PriceDocument, plan Plan) *aws.PriceDimension {
	if doc == nil || len(doc.Terms) == 0 {
		return nil
	}

	for _, key := range sortedEntryKeys(doc.Terms) {
		entry := doc.Terms[key]

		if plan == PlanOnDemand {
			if entry.Leaf != nil {
				return firstDimension(entry.Leaf)
			}
			for _, subKey := range sortedTermKeys(entry.Container) {
				sub := entry.Container[subKey]
				return firstDimension(&sub)
			}
			continue
		}

		if entry.Leaf != nil {
			if matchesPlan(entry.Leaf.TermAttributes, plan) {
				return firstDimension(entry.Leaf)
			}
			continue
		}
		for _, subKey := range sortedTermKeys(entry.Container) {
			sub := entry.Container[subKey]
			if matchesPlan(sub.TermAttributes, plan) {
				return firstDimension(&sub)
			}
		}
	}

	return nil
}

func matchesPlan(attrs aws.TermAttributes, plan Plan) bool {
	return attrs.LeaseContractLength == plan.LeaseContractLength() &&
		attrs.OfferingClass == offeringClassConvertible &&
		attrs.PurchaseOption == purchaseOptionNoUpfront
}

func firstDimension(term *aws.Term) *aws.PriceDimension {
	if term == nil || len(term.PriceDimensions) == 0 {
		return nil
	}
	keys := make([]string, 0, len(term.PriceDimensions))
	for k := range term.PriceDimensions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	dim := term.PriceDimensions[keys[0]]
	return &dim
}

func sortedEntryKeys(m map[string]aws.TermEntry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedTermKeys(m map[string]aws.Term) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
