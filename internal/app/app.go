package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/buywise/buywise/internal/analyze"
	"github.com/buywise/buywise/internal/llm"
	"github.com/buywise/buywise/internal/session"
)

// App wires the provider client, the orchestrator and the session cache.
type App struct {
	cfg      Config
	analyzer *analyze.Analyzer
	store    session.Store
}

func New(ctx context.Context, cfg Config) (*App, error) {
	transportCfg := openai.DefaultConfig(cfg.LLMAPIKey)
	if cfg.LLMBaseURL != "" {
		transportCfg.BaseURL = cfg.LLMBaseURL
	}
	client := &llm.OpenAIProvider{Inner: openai.NewClientWithConfig(transportCfg)}

	a := &App{
		cfg:      cfg,
		analyzer: &analyze.Analyzer{Client: client, Model: cfg.LLMModel, Verbose: cfg.Verbose},
	}
	if cfg.SessionDir != "" {
		a.store = &session.FileStore{Dir: cfg.SessionDir}
	} else {
		a.store = session.NewMemStore()
	}

	// Quick connectivity check by listing models. Best-effort: do not fail
	// hard here, search surfaces errors on its own.
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if models, err := client.ListModels(probeCtx); err != nil {
		log.Warn().Err(err).Msg("provider model list failed; continuing")
	} else if len(models.Models) == 0 {
		log.Warn().Msg("provider returned zero models")
	} else {
		log.Info().Int("count", len(models.Models)).Msg("provider models available")
	}

	return a, nil
}

// Analyzer exposes the orchestrator for alternate surfaces (the HTTP server).
func (a *App) Analyzer() *analyze.Analyzer { return a.analyzer }

// Store exposes the session cache.
func (a *App) Store() session.Store { return a.store }

// Run executes one CLI search. An empty query replays the cached last result
// instead of querying the provider.
func (a *App) Run(ctx context.Context, query string) error {
	if query == "" {
		res, ok := session.Load(a.store)
		if !ok {
			return fmt.Errorf("no query given and no cached result to show")
		}
		log.Info().Int("listings", len(res.Listings)).Msg("showing cached result")
		renderResult(os.Stdout, res)
		return nil
	}

	started := time.Now()
	res, err := a.analyzer.Search(ctx, query, a.cfg.Platform)
	if err != nil {
		return err
	}
	log.Info().
		Int("listings", len(res.Listings)).
		Dur("took", time.Since(started)).
		Str("platform", a.cfg.Platform).
		Msg("analysis complete")

	renderResult(os.Stdout, res)

	if err := session.Save(a.store, res); err != nil {
		// Advisory cache: log and move on.
		log.Warn().Err(err).Msg("session save failed")
	}

	if a.cfg.OutputPDFPath != "" {
		if err := writeReportPDF(res, a.cfg.OutputPDFPath); err != nil {
			return fmt.Errorf("write pdf report: %w", err)
		}
		log.Info().Str("path", a.cfg.OutputPDFPath).Msg("pdf report written")
	}
	return nil
}
