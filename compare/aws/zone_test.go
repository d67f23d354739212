package aws

import "testing"

func TestClassifyRegion(t *testing.T) {
	cases := []struct {
		region string
		want   Zone
	}{
		{"us-east-1", ZoneStandard},
		{"eu-west-1", ZoneStandard},
		{"ca-central-1", ZoneStandard},
		{"cn-north-1", ZoneChina},
		{"cn-northwest-1", ZoneChina},
		{"", ZoneStandard},
	}
	for _, c := range cases {
		if got := ClassifyRegion(c.region); got != c.want {
			t.Errorf("ClassifyRegion(%q) = %v, want %v", c.region, got, c.want)
		}
	}
}

func TestZoneString(t *testing.T) {
	if ZoneStandard.String() != "standard" || ZoneChina.String() != "china" {
		t.Errorf("unexpected zone names: %s, %s", ZoneStandard, ZoneChina)
	}
}

func TestRegionName(t *testing.T) {
	if got := RegionName("cn-north-1"); got != "China (Beijing)" {
		t.Errorf("expected China (Beijing), got %q", got)
	}
	// unknown codes fall back to the code itself
	if got := RegionName("xx-test-9"); got != "xx-test-9" {
		t.Errorf("expected passthrough, got %q", got)
	}
}

func TestSupportedRegions(t *testing.T) {
	regions := SupportedRegions()
	if len(regions) == 0 {
		t.Fatal("expected regions")
	}
	for i := 1; i < len(regions); i++ {
		if regions[i-1] >= regions[i] {
			t.Fatalf("expected sorted unique regions, got %q before %q", regions[i-1], regions[i])
		}
	}
	var china bool
	for _, r := range regions {
		if ClassifyRegion(r) == ZoneChina {
			china = true
		}
	}
	if !china {
		t.Error("expected China regions in the catalog")
	}
}
