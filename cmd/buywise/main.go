package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/buywise/buywise/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// .env is optional; environment variables win over file values.
	_ = godotenv.Load()

	var (
		platformName string
		llmBaseURL   string
		llmModel     string
		llmKey       string
		sessionDir   string
		outPDF       string
		configPath   string
		verbose      bool
	)

	flag.StringVar(&platformName, "platform", "All", "Restrict results to one store (Amazon, Flipkart, Reliance Digital, Croma, Tata CLiQ) or All")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("LLM_API_KEY"), "API key for OpenAI-compatible server")
	flag.StringVar(&sessionDir, "session.dir", os.Getenv("BUYWISE_SESSION_DIR"), "Directory for the last-result session cache (empty: in-memory)")
	flag.StringVar(&outPDF, "out.pdf", "", "Optional path to write the comparison report as PDF")
	flag.StringVar(&configPath, "config", os.Getenv("BUYWISE_CONFIG"), "Optional YAML/JSON config file")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		Platform:      platformName,
		LLMBaseURL:    llmBaseURL,
		LLMModel:      llmModel,
		LLMAPIKey:     llmKey,
		SessionDir:    sessionDir,
		OutputPDFPath: outPDF,
		Verbose:       verbose,
	}
	if strings.TrimSpace(configPath) != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", configPath).Msg("load config file")
		}
		app.ApplyFileConfig(&cfg, fc)
	}

	// The remaining args form the query; empty replays the cached session.
	query := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if query != "" {
		if err := app.ValidateConfig(cfg); err != nil {
			log.Fatal().Err(err).Msg("invalid configuration")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init app")
	}
	if err := a.Run(ctx, query); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}
