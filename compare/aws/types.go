package aws

import "encoding/json"

const (
	// MaxResultsPerPage is the page size requested from the Pricing API.
	MaxResultsPerPage int32 = 100

	// ServiceCodeEC2 is the Pricing API service code for EC2 products.
	ServiceCodeEC2 = "AmazonEC2"
)

// Supported settlement currencies. The Pricing API prices global regions in
// USD and China partition regions in CNY; no document carries both.
const (
	CurrencyUSD = "USD"
	CurrencyCNY = "CNY"
)

// PriceDocument is one decoded item of a GetProducts PriceList response.
type PriceDocument struct {
	Product Product              `json:"product"`
	Terms   map[string]TermEntry `json:"terms"`
}

// Product describes the instance the document prices.
type Product struct {
	ProductFamily string            `json:"productFamily"`
	Attributes    map[string]string `json:"attributes"`
	Sku           string            `json:"sku"`
}

// TermAttributes carries the contract attributes of a reserved term.
// On-demand terms leave all three empty.
type TermAttributes struct {
	LeaseContractLength string `json:"LeaseContractLength"`
	OfferingClass       string `json:"OfferingClass"`
	PurchaseOption      string `json:"PurchaseOption"`
}

// Term is a single priced offering variant.
type Term struct {
	TermAttributes  TermAttributes            `json:"termAttributes"`
	PriceDimensions map[string]PriceDimension `json:"priceDimensions"`
}

// PriceDimension is one rate within a term. PricePerUnit maps currency code
// to a decimal string; at most one supported currency is populated.
type PriceDimension struct {
	Unit         string            `json:"unit"`
	Description  string            `json:"description"`
	RateCode     string            `json:"rateCode"`
	BeginRange   string            `json:"beginRange"`
	EndRange     string            `json:"endRange"`
	PricePerUnit map[string]string `json:"pricePerUnit"`
}

// TermEntry is a value of the document's terms map. The Pricing API nests
// reserved variants one container level deeper than on-demand terms, so a
// value is either a Term or a map of sub-term id to Term. The shape is
// resolved once here; exactly one of Leaf and Container is non-nil after a
// successful decode.
type TermEntry struct {
	Leaf      *Term
	Container map[string]Term
}

// UnmarshalJSON resolves the leaf-vs-container polymorphism. A value with a
// termAttributes key is a Term; anything else is a container of Terms, which
// matches how the upstream response distinguishes the two.
func (t *TermEntry) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	if _, ok := probe["termAttributes"]; ok {
		var leaf Term
		if err := json.Unmarshal(data, &leaf); err != nil {
			return err
		}
		t.Leaf = &leaf
		t.Container = nil
		return nil
	}

	var container map[string]Term
	if err := json.Unmarshal(data, &container); err != nil {
		return err
	}
	t.Container = container
	t.Leaf = nil
	return nil
}
