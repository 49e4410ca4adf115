package app

// Config holds runtime configuration for the application.
type Config struct {
	// Platform is the marketplace restriction, "All" for no restriction.
	Platform string

	// LLM
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	// Session cache directory; empty keeps the cache in memory only.
	SessionDir string

	// OutputPDFPath, when set, writes the comparison report as a PDF.
	OutputPDFPath string

	// Server
	ListenAddr string

	Verbose bool
}
