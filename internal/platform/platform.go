// Package platform holds the marketplace catalogue and the merchant filter
// applied when the user pins the search to a single store.
package platform

import (
	"strings"

	"github.com/buywise/buywise/internal/listing"
)

// All is the sentinel meaning "no platform restriction".
const All = "All"

// Catalogue is the fixed set of selectable platforms, in display order.
var Catalogue = []string{All, "Amazon", "Flipkart", "Reliance Digital", "Croma", "Tata CLiQ"}

// IsSpecific reports whether a particular store was requested, as opposed to
// the unrestricted sentinel or an empty selection.
func IsSpecific(requested string) bool {
	requested = strings.TrimSpace(requested)
	return requested != "" && requested != All
}

// Filter retains the candidates whose merchant name contains the requested
// platform as a case-insensitive substring, preserving input order. With no
// specific platform requested the input passes through untouched. A missing
// merchant name never matches.
func Filter(in []listing.Raw, requested string) []listing.Raw {
	if !IsSpecific(requested) {
		return in
	}
	want := strings.ToLower(strings.TrimSpace(requested))
	out := make([]listing.Raw, 0, len(in))
	for _, r := range in {
		if strings.Contains(strings.ToLower(r.Merchant), want) {
			out = append(out, r)
		}
	}
	return out
}
