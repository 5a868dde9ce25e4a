package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/procurea/scdra/agent"
	"github.com/procurea/scdra/internal/config"
	"github.com/procurea/scdra/providers/ai"
	"github.com/procurea/scdra/providers/ai/groq"
	"github.com/procurea/scdra/providers/ai/middleware"
	"github.com/procurea/scdra/providers/tool"
	"github.com/procurea/scdra/providers/tool/supplychain"
	"github.com/procurea/scdra/providers/vectorstore"
)

func newRunCmd(flags *rootFlags) *cobra.Command {
	var (
		budget  int
		offline bool
	)

	cmd := &cobra.Command{
		Use:   "run [disruption report]",
		Short: "Investigate a disruption report and draft a response plan",
		Long: `Run the agent loop against a disruption report. The report is taken from
the command line arguments, or from stdin-free default demo text when omitted.

With --offline the run replays a scripted model instead of calling Groq, so
no API key or network access is needed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return err
			}
			if budget > 0 {
				cfg.IterationBudget = budget
			}

			report := strings.Join(args, " ")
			if report == "" {
				report = defaultReport
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runAgent(ctx, cfg, report, offline)
		},
	}

	cmd.Flags().IntVar(&budget, "budget", 0, "override the iteration budget")
	cmd.Flags().BoolVar(&offline, "offline", false, "replay a scripted model instead of calling the API")
	return cmd
}

// defaultReport is the demo scenario investigated when no report is given.
const defaultReport = "URGENT: TechParts Asia (TPA-001) reports a production halt at their " +
	"Shenzhen facility due to a supplier failure upstream. All open orders may slip. " +
	"Assess our exposure and draft a response plan."

func runAgent(ctx context.Context, cfg config.Config, report string, offline bool) error {
	store, err := openSeededStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	toolset := supplychain.New(supplychain.Config{Docs: store})
	catalog := tool.NewCatalog(toolset.All()...)

	provider, err := buildProvider(cfg, offline)
	if err != nil {
		return err
	}

	step := agent.NewStep(provider, catalog, agent.WithModel(cfg.Model))
	executor := agent.NewExecutor(catalog)
	runner := agent.NewRunner(step, executor, agent.WithIterationBudget(cfg.IterationBudget))

	fmt.Println(renderReport(report))

	result, runErr := runner.Run(ctx, report)
	if result != nil {
		fmt.Println(renderTranscript(result))
	}

	if runErr != nil {
		var cancelled *agent.CancelledError
		if errors.As(runErr, &cancelled) {
			fmt.Println(renderNotice("Run cancelled; partial transcript shown above."))
		}
		return runErr
	}
	return nil
}

func buildProvider(cfg config.Config, offline bool) (ai.Provider, error) {
	if offline {
		return newDemoProvider(), nil
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("no API key configured: set GROQ_API_KEY or pass --offline")
	}

	groqProvider := groq.NewProvider().WithModel(cfg.Model)
	var provider ai.Provider = groqProvider.WithAPIKey(cfg.APIKey)
	if cfg.BaseURL != "" {
		provider = provider.WithBaseURL(cfg.BaseURL)
	}

	middlewares := []middleware.Middleware{
		middleware.NewTimeoutMiddleware(cfg.RequestTimeout()),
	}
	if cfg.RetryEnabled {
		middlewares = append(middlewares, middleware.NewRetryMiddleware(middleware.RetryConfig{}))
	}
	middlewares = append(middlewares, middleware.NewLoggingMiddleware(slog.Default(), middleware.LogLevelStandard))

	return middleware.Wrap(provider, middlewares...), nil
}

// openSeededStore opens the vector store and seeds the supplier corpus when
// the store is empty.
func openSeededStore(ctx context.Context, cfg config.Config) (*vectorstore.Store, error) {
	store, err := vectorstore.Open(cfg.VectorStorePath, vectorstore.HashingEmbedder{})
	if err != nil {
		return nil, err
	}

	count, err := store.Count(ctx)
	if err != nil {
		store.Close()
		return nil, err
	}
	if count == 0 {
		if err := store.Seed(ctx, vectorstore.SupplierDocuments()); err != nil {
			store.Close()
			return nil, err
		}
	}
	return store, nil
}
