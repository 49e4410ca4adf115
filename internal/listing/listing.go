package listing

// PriceStability describes the recent price trend reported for an offer.
type PriceStability string

const (
	StabilityIncreasing PriceStability = "Increasing"
	StabilityStable     PriceStability = "Stable"
	StabilityDecreasing PriceStability = "Decreasing"
)

// Listing is one fully reconciled candidate offer. Score fields are always
// integers in [0,100] after reconciliation, and URL always carries an
// http(s) scheme.
type Listing struct {
	ID               string         `json:"id"`
	Merchant         string         `json:"merchant"`
	SellerName       string         `json:"sellerName"`
	Price            float64        `json:"price"`
	OriginalPrice    float64        `json:"originalPrice"`
	Rating           float64        `json:"rating,omitempty"`
	ReviewsCount     int            `json:"reviewsCount,omitempty"`
	SentimentScore   int            `json:"sentimentScore"`
	SellerTrustScore int            `json:"sellerTrustScore"`
	PopularityIndex  int            `json:"popularityIndex"`
	BuyScore         int            `json:"buyScore"`
	PriceStability   PriceStability `json:"priceStability,omitempty"`
	DeliveryTime     string         `json:"deliveryTime,omitempty"`
	URL              string         `json:"url"`
	IsWinner         bool           `json:"isWinner,omitempty"`
	IsOfficial       bool           `json:"isOfficial,omitempty"`
}

// Summary is the per-query analysis narrative. It is created once per
// successful search and replaced wholesale by the next one.
type Summary struct {
	ProductName           string `json:"productName"`
	BestFeature           string `json:"bestFeature"`
	TotalListingsAnalyzed int    `json:"totalListingsAnalyzed"`
	AIVerdict             string `json:"aiVerdict"`
}

// Result bundles the ranked listings with their summary. Each caller owns its
// own copy; nothing in the pipeline retains a reference after returning.
type Result struct {
	Listings []Listing `json:"listings"`
	Summary  Summary   `json:"summary"`
}
