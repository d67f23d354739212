package aws

import (
	"sort"
	"strings"
)

// Zone identifies which AWS partition a region settles in. The China
// partition has its own endpoints, credentials and settlement currency, so
// the classification decides both the client pair and which currency can
// appear in a document.
type Zone int

const (
	ZoneStandard Zone = iota
	ZoneChina
)

// chinaRegionPrefix marks regions of the China partition.
const chinaRegionPrefix = "cn-"

// ClassifyRegion maps a region code to its zone. This is the only place the
// prefix is inspected; everything else dispatches on the Zone value.
func ClassifyRegion(region string) Zone {
	if strings.HasPrefix(region, chinaRegionPrefix) {
		return ZoneChina
	}
	return ZoneStandard
}

func (z Zone) String() string {
	if z == ZoneChina {
		return "china"
	}
	return "standard"
}

var regionNames = map[string]string{
	"us-east-1":      "US East (N. Virginia)",
	"us-east-2":      "US East (Ohio)",
	"us-west-1":      "US West (N. California)",
	"us-west-2":      "US West (Oregon)",
	"af-south-1":     "Africa (Cape Town)",
	"ap-east-1":      "Asia Pacific (Hong Kong)",
	"ap-south-1":     "Asia Pacific (Mumbai)",
	"ap-south-2":     "Asia Pacific (Hyderabad)",
	"ap-northeast-1": "Asia Pacific (Tokyo)",
	"ap-northeast-2": "Asia Pacific (Seoul)",
	"ap-northeast-3": "Asia Pacific (Osaka)",
	"ap-southeast-1": "Asia Pacific (Singapore)",
	"ap-southeast-2": "Asia Pacific (Sydney)",
	"ap-southeast-3": "Asia Pacific (Jakarta)",
	"ap-southeast-4": "Asia Pacific (Melbourne)",
	"ca-central-1":   "Canada (Central)",
	"eu-central-1":   "Europe (Frankfurt)",
	"eu-central-2":   "Europe (Zurich)",
	"eu-west-1":      "Europe (Ireland)",
	"eu-west-2":      "Europe (London)",
	"eu-west-3":      "Europe (Paris)",
	"eu-north-1":     "Europe (Stockholm)",
	"eu-south-1":     "Europe (Milan)",
	"eu-south-2":     "Europe (Spain)",
	"me-south-1":     "Middle East (Bahrain)",
	"me-central-1":   "Middle East (UAE)",
	"il-central-1":   "Israel (Tel Aviv)",
	"sa-east-1":      "South America (São Paulo)",
	"cn-north-1":     "China (Beijing)",
	"cn-northwest-1": "China (Ningxia)",
}

// SupportedRegions returns every region code of the comparison catalog,
// sorted, China regions included.
func SupportedRegions() []string {
	out := make([]string, 0, len(regionNames))
	for code := range regionNames {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// RegionName returns the human readable name for a region code, or the code
// itself when unknown.
func RegionName(code string) string {
	if name, ok := regionNames[code]; ok {
		return name
	}
	return code
}
