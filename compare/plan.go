// Package compare resolves and compares EC2 instance prices across regions,
// including the China partition, against the AWS Pricing catalog.
package compare

import "fmt"

// Plan is the pricing plan a lookup targets.
type Plan string

const (
	PlanOnDemand      Plan = "OnDemand"
	PlanReserved1Year Plan = "Reserved1Year"
	PlanReserved3Year Plan = "Reserved3Year"
)

// Reserved contract attributes shared by both reserved plans.
const (
	offeringClassConvertible = "convertible"
	purchaseOptionNoUpfront  = "No Upfront"
)

// Reserved reports whether the plan is a reserved commitment term.
func (p Plan) Reserved() bool {
	return p == PlanReserved1Year || p == PlanReserved3Year
}

// LeaseContractLength returns the catalog's lease length value for a
// reserved plan, and the empty string for on-demand.
func (p Plan) LeaseContractLength() string {
	switch p {
	case PlanReserved1Year:
		return "1yr"
	case PlanReserved3Year:
		return "3yr"
	}
	return ""
}

// ParsePlan accepts both the API spelling (OnDemand, Reserved1Year,
// Reserved3Year) and the short tool spelling (onDemand, reserved1y,
// reserved3y). The empty string means on-demand.
func ParsePlan(s string) (Plan, error) {
	switch s {
	case "", "OnDemand", "onDemand":
		return PlanOnDemand, nil
	case "Reserved1Year", "reserved1y":
		return PlanReserved1Year, nil
	case "Reserved3Year", "reserved3y":
		return PlanReserved3Year, nil
	}
	return "", fmt.Errorf("unknown price type %q", s)
}
