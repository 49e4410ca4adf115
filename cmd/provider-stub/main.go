// provider-stub is a standalone OpenAI-compatible stub that answers the
// analyst prompt with deterministic canned listings, for manual runs and
// end-to-end tests without a real model.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"regexp"
	"strings"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

var (
	queryRe    = regexp.MustCompile(`listings for "([^"]+)" in India`)
	platformRe = regexp.MustCompile(`ONLY return listings from ([^.]+)\.`)
)

func main() {
	model := os.Getenv("MODEL_ID")
	if strings.TrimSpace(model) == "" {
		model = "stub-model"
	}
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8081"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"id": model, "object": "model"}},
		})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		user := ""
		if len(req.Messages) >= 2 {
			user = req.Messages[1].Content
		}
		query := "product"
		if m := queryRe.FindStringSubmatch(user); m != nil {
			query = m[1]
		}
		only := ""
		if m := platformRe.FindStringSubmatch(user); m != nil {
			only = strings.TrimSpace(m[1])
		}

		content, _ := json.Marshal(cannedPayload(query, only))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "stub",
			"object":  "chat.completion",
			"model":   model,
			"choices": []map[string]any{{"index": 0, "finish_reason": "stop", "message": map[string]any{"role": "assistant", "content": string(content)}}},
		})
	})

	log.Printf("provider-stub listening on %s (model %s)", addr, model)
	log.Fatal(http.ListenAndServe(addr, mux))
}

func cannedPayload(query, onlyMerchant string) map[string]any {
	type stubListing struct {
		merchant, seller, delivery string
		price, original, rating    float64
		sentiment, popularity      int
	}
	all := []stubListing{
		{"Amazon", "Appario Retail", "Tomorrow", 999, 1299, 4.4, 88, 81},
		{"Flipkart", "RetailNet", "2 days", 949, 1399, 4.3, 92, 90},
		{"Reliance Digital", "Reliance Retail", "3 days", 1049, 1199, 4.1, 77, 62},
		{"Croma", "Croma Retail", "2 days", 1099, 1349, 4.2, 74, 58},
		{"Tata CLiQ", "Tata UniStore", "4 days", 1020, 1250, 4.0, 70, 55},
	}

	listings := make([]map[string]any, 0, len(all))
	for i, l := range all {
		if onlyMerchant != "" && !strings.Contains(strings.ToLower(l.merchant), strings.ToLower(onlyMerchant)) {
			continue
		}
		listings = append(listings, map[string]any{
			"id":               "",
			"merchant":         l.merchant,
			"sellerName":       l.seller,
			"price":            l.price,
			"originalPrice":    l.original,
			"rating":           l.rating,
			"reviewsCount":     1200 + 37*i,
			"sentimentScore":   l.sentiment,
			"popularityIndex":  l.popularity,
			"sellerTrustScore": 70 + i,
			"buyScore":         75 + i,
			"priceStability":   "Stable",
			"deliveryTime":     l.delivery,
			"url":              "",
			"isOfficial":       i%2 == 0,
		})
	}

	return map[string]any{
		"summary": map[string]any{
			"productName":           query,
			"bestFeature":           "Price to performance",
			"totalListingsAnalyzed": len(listings),
			"aiVerdict":             "Stubbed verdict: Flipkart offers the best value for " + query + ".",
		},
		"listings": listings,
	}
}
