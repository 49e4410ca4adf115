// Package rank orders reconciled listings by desirability and flags the
// single top recommendation.
package rank

import (
	"sort"

	"github.com/buywise/buywise/internal/listing"
)

// Composite is the desirability metric: the unweighted sum of two bounded
// [0,100] fields, so the range is [0,200].
func Composite(l listing.Listing) int {
	return l.SentimentScore + l.PopularityIndex
}

// Order sorts descending by composite score and marks the first entry as the
// winner. Ties keep input order; stability is the contract, there is no
// secondary key. The input slice is left untouched.
func Order(in []listing.Listing) []listing.Listing {
	out := make([]listing.Listing, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		return Composite(out[i]) > Composite(out[j])
	})
	for i := range out {
		out[i].IsWinner = i == 0
	}
	return out
}
