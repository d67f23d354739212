package compare

import (
	"testing"

	"github.com/pixelfederation/ec2-price-compare/compare/aws"
)

func TestExtractSpecifications(t *testing.T) {
	doc := &aws.PriceDocument{
		Product: aws.Product{
			Attributes: map[string]string{
				"vcpu":               "4",
				"memory":             "16 GiB",
				"storage":            "EBS only",
				"networkPerformance": "Up to 5 Gigabit",
				"instanceFamily":     "General purpose",
				"physicalProcessor":  "Intel Skylake E5 2686 v5",
				"clockSpeed":         "2.5 GHz",
			},
		},
	}

	spec := ExtractSpecifications(doc)
	if spec == nil {
		t.Fatal("expected specifications")
	}
	if spec.VCPU != 4 {
		t.Errorf("expected 4 vCPUs, got %d", spec.VCPU)
	}
	if spec.Memory != "16 GiB" || spec.Storage != "EBS only" {
		t.Errorf("unexpected memory/storage: %q, %q", spec.Memory, spec.Storage)
	}
	if spec.PhysicalProcessor != "Intel Skylake E5 2686 v5" {
		t.Errorf("unexpected processor: %q", spec.PhysicalProcessor)
	}
}

func TestExtractSpecifications_UnparseableVCPU(t *testing.T) {
	doc := &aws.PriceDocument{
		Product: aws.Product{
			Attributes: map[string]string{"vcpu": "four", "memory": "16 GiB"},
		},
	}

	spec := ExtractSpecifications(doc)
	if spec == nil {
		t.Fatal("expected specifications")
	}
	if spec.VCPU != 0 {
		t.Errorf("expected zero vCPU for unparseable value, got %d", spec.VCPU)
	}
}

func TestExtractSpecifications_NoAttributes(t *testing.T) {
	if spec := ExtractSpecifications(nil); spec != nil {
		t.Error("expected nil for nil document")
	}
	if spec := ExtractSpecifications(&aws.PriceDocument{}); spec != nil {
		t.Error("expected nil for document without attributes")
	}
}
