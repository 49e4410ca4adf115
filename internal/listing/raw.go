package listing

// Raw is one candidate record as the provider returns it, before
// reconciliation. Score fields are pointers so that omitted values can be
// told apart from explicit ones; a zero score is treated as unreported too,
// since models routinely emit 0 for fields they did not assess.
type Raw struct {
	ID               string   `json:"id"`
	Merchant         string   `json:"merchant"`
	SellerName       string   `json:"sellerName"`
	Price            float64  `json:"price"`
	OriginalPrice    float64  `json:"originalPrice"`
	Rating           *float64 `json:"rating"`
	ReviewsCount     int      `json:"reviewsCount"`
	SentimentScore   *float64 `json:"sentimentScore"`
	SellerTrustScore *float64 `json:"sellerTrustScore"`
	PopularityIndex  *float64 `json:"popularityIndex"`
	BuyScore         *float64 `json:"buyScore"`
	PriceStability   string   `json:"priceStability"`
	DeliveryTime     string   `json:"deliveryTime"`
	URL              string   `json:"url"`
	IsOfficial       bool     `json:"isOfficial"`
}
