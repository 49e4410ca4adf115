package app

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/buywise/buywise/internal/listing"
	"github.com/buywise/buywise/internal/rank"
)

// pdfINR avoids the rupee sign, which the built-in cp1252 fonts cannot encode.
func pdfINR(v float64) string {
	return inr.Sprintf("Rs %.0f", v)
}

// writeReportPDF renders the comparison as a minimal PDF: summary header,
// then one block per listing with a clickable offer link. Layout is
// intentionally simple.
func writeReportPDF(res listing.Result, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Best deals for %s", res.Summary.ProductName), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 5, res.Summary.AIVerdict, "", "L", false)
	pdf.MultiCell(0, 5, fmt.Sprintf("Best feature: %s. Listings analyzed: %d.",
		res.Summary.BestFeature, res.Summary.TotalListingsAnalyzed), "", "L", false)
	pdf.Ln(4)

	for i, l := range res.Listings {
		title := fmt.Sprintf("%d. %s - %s", i+1, l.Merchant, l.SellerName)
		if l.IsWinner {
			title += "  (top pick)"
		}
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 7, title, "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 5, fmt.Sprintf("Price %s (was %s). Score %d/200, trust %d/100. Delivery: %s",
			pdfINR(l.Price), pdfINR(l.OriginalPrice),
			rank.Composite(l), l.SellerTrustScore, l.DeliveryTime), "", "L", false)
		pdf.WriteLinkString(5, "View offer", l.URL)
		pdf.Ln(8)
	}

	return pdf.OutputFileAndClose(outPath)
}
