package compare

import (
	"strconv"

	"github.com/pixelfederation/ec2-price-compare/compare/aws"
)

// InstanceSpecification is the flattened hardware description of an instance
// type, taken verbatim from the catalog's product attributes. Memory,
// storage and network values stay descriptive strings ("16 GiB", "EBS only");
// formatting is a display concern.
type InstanceSpecification struct {
	VCPU                        int    `json:"vcpu,omitempty"`
	Memory                      string `json:"memory,omitempty"`
	Storage                     string `json:"storage,omitempty"`
	NetworkPerformance          string `json:"networkPerformance,omitempty"`
	InstanceFamily              string `json:"instanceFamily,omitempty"`
	CurrentGeneration           string `json:"currentGeneration,omitempty"`
	PhysicalProcessor           string `json:"physicalProcessor,omitempty"`
	ClockSpeed                  string `json:"clockSpeed,omitempty"`
	DedicatedEBSThroughput      string `json:"dedicatedEbsThroughput,omitempty"`
	ProcessorArchitecture       string `json:"processorArchitecture,omitempty"`
	ProcessorFeatures           string `json:"processorFeatures,omitempty"`
	EnhancedNetworkingSupported string `json:"enhancedNetworkingSupported,omitempty"`
}

// ExtractSpecifications maps a catalog document's product attributes to an
// InstanceSpecification. Returns nil when the document carries no attributes.
func ExtractSpecifications(doc *aws.PriceDocument) *InstanceSpecification {
	if doc == nil || len(doc.Product.Attributes) == 0 {
		return nil
	}

	attrs := doc.Product.Attributes
	spec := &InstanceSpecification{
		Memory:                      attrs["memory"],
		Storage:                     attrs["storage"],
		NetworkPerformance:          attrs["networkPerformance"],
		InstanceFamily:              attrs["instanceFamily"],
		CurrentGeneration:           attrs["currentGeneration"],
		PhysicalProcessor:           attrs["physicalProcessor"],
		ClockSpeed:                  attrs["clockSpeed"],
		DedicatedEBSThroughput:      attrs["dedicatedEbsThroughput"],
		ProcessorArchitecture:       attrs["processorArchitecture"],
		ProcessorFeatures:           attrs["processorFeatures"],
		EnhancedNetworkingSupported: attrs["enhancedNetworkingSupported"],
	}
	if v, err := strconv.Atoi(attrs["vcpu"]); err == nil {
		spec.VCPU = v
	}
	return spec
}
