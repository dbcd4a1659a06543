// Command worker-ui runs the Temporal workers for generation workflows.
//
// Usage:
//
//	worker-ui -queues generate,llm
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.temporal.io/sdk/worker"
	"golang.org/x/sync/errgroup"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/agent"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/config"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/observability"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/ratelimit"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/temporal/activities"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/temporal/querier"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/temporal/queues"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/temporal/versioning"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/temporal/workflows"
)

func main() {
	queueFlag := flag.String("queues", "", "comma-separated task queues to serve (default: all)")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := observability.InitLogger(cfg.LogLevel)
	ctx := context.Background()

	shutdown, err := observability.MaybeInitTracer(ctx, cfg.OTelEnabled, "ngui-worker")
	if err != nil {
		logger.Error("otel init failed", "error", err)
	} else {
		defer shutdown(ctx)
	}

	names, err := queues.ParseQueues(*queueFlag)
	if err != nil {
		log.Fatalf("queues: %v", err)
	}

	a, err := agent.FromConfig(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("agent: %v", err)
	}

	var budget *ratelimit.SessionBudget
	if cfg.SessionBudget > 0 {
		budget = ratelimit.NewSessionBudget(cfg.SessionBudget, time.Hour)
	}
	acts := &activities.Activities{Agent: a, Budget: budget}

	c, err := querier.Dial(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer c.Close()

	configs := queues.DefaultConfigs()
	var g errgroup.Group
	for _, name := range names {
		w := worker.New(c, name, configs[name].Options)
		if name == versioning.QueueGenerate {
			w.RegisterWorkflow(workflows.GenerateUIWorkflow)
		}
		w.RegisterActivity(acts)

		logger.Info("starting worker", "queue", name, "component_system", a.ComponentSystem())
		g.Go(func() error {
			return w.Run(worker.InterruptCh())
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("worker failed: %v", err)
	}
}
