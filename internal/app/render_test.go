package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/buywise/buywise/internal/listing"
)

func demoResult() listing.Result {
	return listing.Result{
		Listings: []listing.Listing{
			{ID: "a", Merchant: "Flipkart", SellerName: "RetailNet", Price: 109999, OriginalPrice: 119999,
				SentimentScore: 95, PopularityIndex: 95, SellerTrustScore: 80, DeliveryTime: "2 days",
				URL: "https://www.flipkart.com/p/a", IsWinner: true},
			{ID: "b", Merchant: "Amazon", SellerName: "Appario", Price: 112490, OriginalPrice: 115000,
				SentimentScore: 80, PopularityIndex: 70, SellerTrustScore: 85, DeliveryTime: "Tomorrow",
				URL: "https://www.amazon.in/dp/b"},
		},
		Summary: listing.Summary{
			ProductName:           "laptop",
			BestFeature:           "Display",
			TotalListingsAnalyzed: 2,
			AIVerdict:             "Flipkart wins on price.",
		},
	}
}

func TestRenderResult(t *testing.T) {
	var sb strings.Builder
	renderResult(&sb, demoResult())
	out := sb.String()

	for _, want := range []string{`"laptop"`, "Flipkart wins on price.", "RetailNet", "flipkart.com"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	// Indian digit grouping on the price column.
	if !strings.Contains(out, "1,09,999") {
		t.Fatalf("expected en-IN grouped price in output:\n%s", out)
	}
	// The winner row carries the marker.
	winnerLine := ""
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "RetailNet") {
			winnerLine = line
		}
	}
	if !strings.HasPrefix(winnerLine, "*") {
		t.Fatalf("winner marker missing on %q", winnerLine)
	}
}

func TestWriteReportPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	if err := writeReportPDF(demoResult(), path); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Fatalf("expected non-empty pdf, err=%v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil || !strings.HasPrefix(string(b), "%PDF") {
		t.Fatalf("not a pdf file (err=%v)", err)
	}
}
