package analyze

import (
	"context"
	"errors"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

// fakeClient returns a canned completion and records the last request.
type fakeClient struct {
	content string
	err     error
	lastReq openai.ChatCompletionRequest
}

func (f *fakeClient) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: f.content}},
		},
	}, nil
}

const threeListings = `{
  "summary": {"bestFeature": "Sensor accuracy", "totalListingsAnalyzed": 3, "aiVerdict": "Flipkart leads on value."},
  "listings": [
    {"id": "l1", "merchant": "Amazon", "sellerName": "Appario", "price": 999, "url": "https://www.amazon.in/dp/a", "sentimentScore": 80, "popularityIndex": 70},
    {"id": "l2", "merchant": "Flipkart", "sellerName": "RetailNet", "price": 949, "url": "https://www.flipkart.com/p/b", "sentimentScore": 95, "popularityIndex": 95},
    {"id": "l3", "merchant": "Croma", "sellerName": "Croma Retail", "price": 1099, "url": "https://www.croma.com/p/c", "sentimentScore": 60, "popularityIndex": 60}
  ]
}`

func TestSearch_EndToEnd(t *testing.T) {
	fake := &fakeClient{content: threeListings}
	a := &Analyzer{Client: fake, Model: "test-model"}

	res, err := a.Search(context.Background(), "wireless mouse", "All")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(res.Listings) != 3 {
		t.Fatalf("expected 3 listings, got %d", len(res.Listings))
	}
	winners := 0
	for _, l := range res.Listings {
		if l.IsWinner {
			winners++
		}
	}
	if winners != 1 || res.Listings[0].ID != "l2" {
		t.Fatalf("expected l2 as the single winner, got %+v", res.Listings)
	}
	// Provider omitted productName, so it defaults to the query.
	if res.Summary.ProductName != "wireless mouse" {
		t.Fatalf("productName = %q, want query default", res.Summary.ProductName)
	}
	if res.Summary.BestFeature != "Sensor accuracy" {
		t.Fatalf("provided summary fields must survive, got %q", res.Summary.BestFeature)
	}
}

func TestSearch_PlatformWithNoListings(t *testing.T) {
	fake := &fakeClient{content: threeListings}
	a := &Analyzer{Client: fake, Model: "test-model"}

	_, err := a.Search(context.Background(), "wireless mouse", "Tata CLiQ")
	if KindOf(err) != KindNoMatchingListings {
		t.Fatalf("expected NoMatchingListings, got %v", err)
	}
	if !strings.Contains(err.Error(), `"All"`) {
		t.Fatalf("message must suggest the All selection, got %q", err.Error())
	}
}

func TestSearch_PlatformFilterApplies(t *testing.T) {
	fake := &fakeClient{content: threeListings}
	a := &Analyzer{Client: fake, Model: "test-model"}

	res, err := a.Search(context.Background(), "wireless mouse", "Flipkart")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(res.Listings) != 1 || res.Listings[0].Merchant != "Flipkart" {
		t.Fatalf("expected only the Flipkart listing, got %+v", res.Listings)
	}
	if !res.Listings[0].IsWinner {
		t.Fatal("a single surviving listing must still be the winner")
	}
}

func TestSearch_InvalidQuery(t *testing.T) {
	a := &Analyzer{Client: &fakeClient{content: threeListings}, Model: "test-model"}
	// "日" is one character in several bytes; it must still be too short.
	for _, q := range []string{"", " ", "x", " a ", "日"} {
		_, err := a.Search(context.Background(), q, "All")
		if KindOf(err) != KindInvalidQuery {
			t.Fatalf("query %q: expected InvalidQuery, got %v", q, err)
		}
	}
}

func TestSearch_TwoRuneQueryAccepted(t *testing.T) {
	a := &Analyzer{Client: &fakeClient{content: threeListings}, Model: "test-model"}
	if _, err := a.Search(context.Background(), "日本", "All"); err != nil {
		t.Fatalf("two-rune query rejected: %v", err)
	}
}

func TestSearch_ProviderFailure(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	a := &Analyzer{Client: &fakeClient{err: cause}, Model: "test-model"}

	_, err := a.Search(context.Background(), "wireless mouse", "All")
	if KindOf(err) != KindProviderFailure {
		t.Fatalf("expected ProviderFailure, got %v", err)
	}
	// The user-facing message must not leak transport internals.
	if strings.Contains(err.Error(), "dial tcp") {
		t.Fatalf("provider internals leaked: %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause must stay reachable for logging")
	}
}

func TestSearch_MalformedResponse(t *testing.T) {
	cases := map[string]string{
		"not json":          "here are your deals!",
		"missing listings":  `{"summary": {"productName": "mouse"}}`,
		"null listings":     `{"listings": null}`,
		"listings not list": `{"listings": {"merchant": "Amazon"}}`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			a := &Analyzer{Client: &fakeClient{content: content}, Model: "test-model"}
			_, err := a.Search(context.Background(), "wireless mouse", "All")
			if KindOf(err) != KindMalformedResponse {
				t.Fatalf("expected MalformedResponse, got %v", err)
			}
		})
	}
}

func TestSearch_FenceWrappedJSON(t *testing.T) {
	wrapped := "```json\n" + threeListings + "\n```"
	a := &Analyzer{Client: &fakeClient{content: wrapped}, Model: "test-model"}
	res, err := a.Search(context.Background(), "wireless mouse", "All")
	if err != nil {
		t.Fatalf("fence-wrapped payload must parse, got %v", err)
	}
	if len(res.Listings) != 3 {
		t.Fatalf("expected 3 listings, got %d", len(res.Listings))
	}
}

func TestSearch_EmptyListingsWithAllSucceeds(t *testing.T) {
	a := &Analyzer{Client: &fakeClient{content: `{"listings": []}`}, Model: "test-model"}
	res, err := a.Search(context.Background(), "wireless mouse", "All")
	if err != nil {
		t.Fatalf("empty set without a platform pin is not an error: %v", err)
	}
	if len(res.Listings) != 0 || res.Summary.ProductName != "wireless mouse" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestSearch_PromptCarriesPlatformConstraint(t *testing.T) {
	fake := &fakeClient{content: threeListings}
	a := &Analyzer{Client: fake, Model: "test-model"}

	if _, err := a.Search(context.Background(), "wireless mouse", "Croma"); err != nil {
		t.Fatalf("search: %v", err)
	}
	user := fake.lastReq.Messages[1].Content
	if !strings.Contains(user, "ONLY return listings from Croma") {
		t.Fatalf("strict platform constraint missing from prompt:\n%s", user)
	}

	if _, err := a.Search(context.Background(), "wireless mouse", "All"); err != nil {
		t.Fatalf("search: %v", err)
	}
	user = fake.lastReq.Messages[1].Content
	if !strings.Contains(user, "diverse mix of retailers") {
		t.Fatalf("diversity instruction missing from prompt:\n%s", user)
	}
	if fake.lastReq.ResponseFormat == nil || fake.lastReq.ResponseFormat.Type != openai.ChatCompletionResponseFormatTypeJSONObject {
		t.Fatal("expected JSON response format on the request")
	}
}
