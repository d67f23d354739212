package compare

import (
	"context"
	"fmt"
	"sort"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	log "github.com/sirupsen/logrus"

	"github.com/pixelfederation/ec2-price-compare/compare/aws"
)

// instanceTypePattern narrows the inventory to one size per family; the
// comparison UI offers xlarge types only.
const instanceTypePattern = "*.xlarge"

// InstanceType is one entry of the instance inventory.
type InstanceType struct {
	InstanceType string `json:"instanceType"`
	Family       string `json:"family"`
	Description  string `json:"description"`
}

// ListInstanceTypes returns the available xlarge instance types, sorted by
// family and then by type. The inventory is read from the China partition's
// EC2 endpoint so every listed type is available in both zones.
func (e *Engine) ListInstanceTypes(ctx context.Context) ([]InstanceType, error) {
	client, err := e.factory.NewEC2Client(aws.ZoneChina)
	if err != nil {
		return nil, fmt.Errorf("failed to create EC2 client for instance listing: %w", err)
	}

	seen := make(map[string]InstanceType)
	pag := ec2.NewDescribeInstanceTypesPaginator(client, &ec2.DescribeInstanceTypesInput{
		Filters: []ec2types.Filter{
			{
				Name:   awssdk.String("instance-type"),
				Values: []string{instanceTypePattern},
			},
		},
		MaxResults: awssdk.Int32(aws.MaxResultsPerPage),
	})
	for pag.HasMorePages() {
		page, err := pag.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error fetching available instance types: %w", err)
		}
		for _, item := range page.InstanceTypes {
			name := string(item.InstanceType)
			if name == "" {
				continue
			}
			family := strings.SplitN(name, ".", 2)[0]
			seen[name] = InstanceType{
				InstanceType: name,
				Family:       family,
				Description:  describeInstance(name, family, item),
			}
		}
	}

	out := make([]InstanceType, 0, len(seen))
	for _, it := range seen {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Family != out[j].Family {
			return out[i].Family < out[j].Family
		}
		return out[i].InstanceType < out[j].InstanceType
	})

	log.Infof("loaded %d instance types", len(out))
	return out, nil
}

func describeInstance(name, family string, item ec2types.InstanceTypeInfo) string {
	desc := fmt.Sprintf("%s series - %s", family, name)
	if item.VCpuInfo == nil || item.VCpuInfo.DefaultVCpus == nil {
		return desc
	}
	desc += fmt.Sprintf(" (%d vCPUs", awssdk.ToInt32(item.VCpuInfo.DefaultVCpus))
	if item.MemoryInfo != nil && item.MemoryInfo.SizeInMiB != nil {
		memoryGB := (awssdk.ToInt64(item.MemoryInfo.SizeInMiB) + 512) / 1024
		desc += fmt.Sprintf(", %d GB RAM", memoryGB)
	}
	return desc + ")"
}
