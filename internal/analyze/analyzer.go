// Package analyze is the query orchestrator: it asks the generative provider
// for candidate listings, then drives filtering, reconciliation and ranking
// into a single ranked result.
package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	openai "github.com/sashabaranov/go-openai"

	"github.com/buywise/buywise/internal/listing"
	"github.com/buywise/buywise/internal/llm"
	"github.com/buywise/buywise/internal/platform"
	"github.com/buywise/buywise/internal/rank"
	"github.com/buywise/buywise/internal/reconcile"
	"github.com/rs/zerolog/log"
)

// MinQueryLen is the minimum trimmed query length, in runes, accepted by
// Search.
const MinQueryLen = 2

const systemMessage = "You are a shopping comparison analyst for the Indian market. Respond with strict JSON only, no narration. The JSON schema is {\"summary\": {\"productName\": string, \"bestFeature\": string, \"totalListingsAnalyzed\": number, \"aiVerdict\": string}, \"listings\": [{\"id\": string, \"merchant\": string, \"sellerName\": string, \"price\": number, \"originalPrice\": number, \"rating\": number, \"reviewsCount\": number, \"sentimentScore\": number, \"sellerTrustScore\": number, \"popularityIndex\": number, \"priceStability\": string, \"deliveryTime\": string, \"url\": string, \"buyScore\": number, \"isOfficial\": boolean}]}. The merchant field must be the store name, e.g. 'Amazon', 'Flipkart', 'Reliance Digital', 'Croma' or 'Tata CLiQ'. sentimentScore and popularityIndex are 0-100 integers representing real market data. price and originalPrice are realistic INR amounts. priceStability is one of 'Increasing', 'Stable', 'Decreasing'."

// Analyzer calls the provider and composes the processing pipeline. It is
// stateless and safe for concurrent use; each Search owns its own lifecycle.
type Analyzer struct {
	Client  llm.Client
	Model   string
	Verbose bool
}

// Search runs one query end to end. Exactly one provider call is made, never
// retried; every failure comes back as *Error with a user-safe message.
func (a *Analyzer) Search(ctx context.Context, query, requestedPlatform string) (listing.Result, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryLen {
		return listing.Result{}, failf(KindInvalidQuery, nil,
			"Please enter a product name to find the best deals.")
	}

	user := buildUserPrompt(query, requestedPlatform)
	if a.Verbose {
		// Log prompt sizes only, never prompt bodies.
		log.Debug().Str("stage", "analyze").Str("model", a.Model).
			Int("system_len", len(systemMessage)).Int("user_len", len(user)).
			Msg("provider prompt")
	}

	resp, err := a.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.1,
		N:           1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return listing.Result{}, failf(KindProviderFailure, fmt.Errorf("provider call: %w", err),
			"We couldn't analyze the deals right now. Try a different search.")
	}
	if len(resp.Choices) == 0 {
		return listing.Result{}, failf(KindMalformedResponse, nil,
			"Failed to parse market listings.")
	}

	raw, summary, err := parsePayload(resp.Choices[0].Message.Content)
	if err != nil {
		return listing.Result{}, failf(KindMalformedResponse, err,
			"Failed to parse market listings.")
	}

	filtered := platform.Filter(raw, requestedPlatform)
	processed := reconcile.Listings(query, filtered)

	if len(processed) == 0 && platform.IsSpecific(requestedPlatform) {
		return listing.Result{}, failf(KindNoMatchingListings, nil, fmt.Sprintf(
			"We couldn't find specific listings for %q on %s. Try \"All\" stores for a wider search.",
			query, strings.TrimSpace(requestedPlatform)))
	}

	ranked := rank.Order(processed)
	return listing.Result{
		Listings: ranked,
		Summary:  fillSummary(summary, query, len(ranked)),
	}, nil
}

func buildUserPrompt(query, requestedPlatform string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Find the 6 best seller listings for %q in India.\n", query)
	if platform.IsSpecific(requestedPlatform) {
		fmt.Fprintf(&sb, "Context: CRITICAL: ONLY return listings from %s. DO NOT include any other merchants.\n",
			strings.TrimSpace(requestedPlatform))
		sb.WriteString("Prefer direct product URLs if known, otherwise use search result URLs.\n")
	} else {
		sb.WriteString("Context: Find the most relevant and best value deals across Amazon.in, Flipkart, Reliance Digital, Croma, and Tata CLiQ. Provide a diverse mix of retailers.\n")
	}
	sb.WriteString("Output JSON only matching the schema.")
	return sb.String()
}

type summaryPayload struct {
	ProductName           string `json:"productName"`
	BestFeature           string `json:"bestFeature"`
	TotalListingsAnalyzed int    `json:"totalListingsAnalyzed"`
	AIVerdict             string `json:"aiVerdict"`
}

var fenceRe = regexp.MustCompile("(?i)```json|```")

// parsePayload decodes the provider output, tolerating code-fence wrappers
// around the JSON. A payload without a listings array is malformed; an empty
// array is not.
func parsePayload(text string) ([]listing.Raw, *summaryPayload, error) {
	var p struct {
		Summary  *summaryPayload `json:"summary"`
		Listings json.RawMessage `json:"listings"`
	}
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		cleaned := strings.TrimSpace(fenceRe.ReplaceAllString(text, ""))
		if err2 := json.Unmarshal([]byte(cleaned), &p); err2 != nil {
			return nil, nil, fmt.Errorf("parse provider json: %w", err2)
		}
	}
	if len(p.Listings) == 0 || string(p.Listings) == "null" {
		return nil, nil, fmt.Errorf("payload has no listings array")
	}
	var raw []listing.Raw
	if err := json.Unmarshal(p.Listings, &raw); err != nil {
		return nil, nil, fmt.Errorf("parse listings: %w", err)
	}
	return raw, p.Summary, nil
}

func fillSummary(s *summaryPayload, query string, count int) listing.Summary {
	out := listing.Summary{
		ProductName:           query,
		BestFeature:           "Market Availability",
		TotalListingsAnalyzed: count,
		AIVerdict:             fmt.Sprintf("Showing top %d deals from across the Indian market.", count),
	}
	if s == nil {
		return out
	}
	if s.ProductName != "" {
		out.ProductName = s.ProductName
	}
	if s.BestFeature != "" {
		out.BestFeature = s.BestFeature
	}
	if s.TotalListingsAnalyzed > 0 {
		out.TotalListingsAnalyzed = s.TotalListingsAnalyzed
	}
	if s.AIVerdict != "" {
		out.AIVerdict = s.AIVerdict
	}
	return out
}
