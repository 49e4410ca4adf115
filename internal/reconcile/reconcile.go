// Package reconcile turns raw provider records into fully populated listings:
// stable ids, canonical 0-100 scores with documented defaults, and a
// guaranteed-clickable URL per merchant.
package reconcile

import (
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/buywise/buywise/internal/listing"
	"github.com/buywise/buywise/internal/score"
)

// Optimistic defaults applied when the provider omits a score. Non-zero on
// purpose: an unreported field means "unverified", not "bad". The exact
// values are a product decision; keep them stable.
const (
	defaultSentiment  = 80
	defaultBuyScore   = 75
	defaultTrustScore = 70
	defaultPopularity = 50
)

// Listings reconciles one batch. Output length always equals input length;
// filtering happens before this step. Ids are unique within the batch, and
// applying Listings to its own output changes nothing.
func Listings(query string, in []listing.Raw) []listing.Listing {
	// One token per batch; uniqueness within the batch comes from the index.
	token := time.Now().UnixMilli()

	out := make([]listing.Listing, 0, len(in))
	for i, r := range in {
		id := r.ID
		if id == "" {
			id = fmt.Sprintf("listing-%d-%d", i, token)
		}

		sentiment := defaultSentiment
		if reported(r.SentimentScore) {
			sentiment = score.Normalize(*r.SentimentScore)
		} else if reported(r.Rating) {
			sentiment = score.Normalize(*r.Rating * 20)
		}

		u := r.URL
		if !strings.HasPrefix(u, "http") {
			u = FallbackURL(query, r.Merchant)
		}

		out = append(out, listing.Listing{
			ID:               id,
			Merchant:         r.Merchant,
			SellerName:       r.SellerName,
			Price:            r.Price,
			OriginalPrice:    r.OriginalPrice,
			Rating:           deref(r.Rating),
			ReviewsCount:     r.ReviewsCount,
			SentimentScore:   sentiment,
			SellerTrustScore: scoreOr(r.SellerTrustScore, defaultTrustScore),
			PopularityIndex:  scoreOr(r.PopularityIndex, defaultPopularity),
			BuyScore:         scoreOr(r.BuyScore, defaultBuyScore),
			PriceStability:   listing.PriceStability(r.PriceStability),
			DeliveryTime:     r.DeliveryTime,
			URL:              u,
			IsOfficial:       r.IsOfficial,
		})
	}
	return out
}

// reported treats nil, zero and NaN as "not reported"; a zero score falls
// through to the default chain the same way a missing one does.
func reported(v *float64) bool {
	return v != nil && *v != 0 && !math.IsNaN(*v)
}

func scoreOr(v *float64, def int) int {
	if reported(v) {
		return score.Normalize(*v)
	}
	return def
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// FallbackURL builds a merchant search URL for a listing whose own URL is
// missing or not http(s). Merchants are matched by case-insensitive substring
// in a fixed order; keep that order stable, it is the tie-break policy for
// ambiguous names. Unknown merchants get a generic shopping search.
func FallbackURL(query, merchant string) string {
	m := strings.ToLower(merchant)
	q := url.QueryEscape(query)
	switch {
	case strings.Contains(m, "amazon"):
		return "https://www.amazon.in/s?k=" + q
	case strings.Contains(m, "flipkart"):
		return "https://www.flipkart.com/search?q=" + q
	case strings.Contains(m, "reliance"):
		return "https://www.reliancedigital.in/search?q=" + q + ":relevance"
	case strings.Contains(m, "croma"):
		return "https://www.croma.com/searchB?q=" + q + ":relevance"
	case strings.Contains(m, "cliq"):
		return "https://www.tatacliq.com/search/?searchCategory=all&text=" + q
	default:
		return "https://www.google.com/search?q=" + url.QueryEscape(strings.TrimSpace(query+" "+merchant)) + "&tbm=shop"
	}
}

// UniversalSearchURL is the merchant-agnostic escape hatch offered when the
// curated results are not enough.
func UniversalSearchURL(query string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(query) + "+price+in+india&tbm=shop"
}
