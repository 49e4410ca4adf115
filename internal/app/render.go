package app

import (
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/buywise/buywise/internal/listing"
	"github.com/buywise/buywise/internal/rank"
	"github.com/buywise/buywise/internal/reconcile"
)

// inr formats amounts with Indian digit grouping (1,09,999).
var inr = message.NewPrinter(language.MustParse("en-IN"))

func formatINR(v float64) string {
	return inr.Sprintf("₹%.0f", v)
}

func renderResult(w io.Writer, res listing.Result) {
	fmt.Fprintf(w, "\nResults for %q — %s\n", res.Summary.ProductName, res.Summary.BestFeature)
	fmt.Fprintf(w, "%s\n\n", res.Summary.AIVerdict)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, " \tMERCHANT\tSELLER\tPRICE\tSCORE\tTRUST\tDELIVERY\tURL")
	for _, l := range res.Listings {
		marker := " "
		if l.IsWinner {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			marker, l.Merchant, l.SellerName, formatINR(l.Price),
			rank.Composite(l), l.SellerTrustScore, l.DeliveryTime, l.URL)
	}
	tw.Flush()

	fmt.Fprintf(w, "\nAnalyzed %d listings. Wider search: %s\n",
		res.Summary.TotalListingsAnalyzed,
		reconcile.UniversalSearchURL(res.Summary.ProductName))
}
