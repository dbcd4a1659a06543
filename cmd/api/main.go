// Command api runs the HTTP API server for the generative UI pipeline.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/agent"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/api"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/config"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/observability"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/temporal/querier"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}

	logger := observability.InitLogger(cfg.LogLevel)
	ctx := context.Background()

	shutdown, err := observability.MaybeInitTracer(ctx, cfg.OTelEnabled, "ngui-api")
	if err != nil {
		logger.Error("otel init failed", "error", err)
	} else {
		defer shutdown(ctx)
	}

	a, err := agent.FromConfig(ctx, cfg, logger)
	if err != nil {
		logger.Error("agent init failed", "error", err)
		os.Exit(1)
	}

	var q querier.WorkflowQuerier
	c, err := querier.Dial(cfg, logger)
	if err != nil {
		logger.Warn("temporal unavailable, workflow endpoints disabled", "error", err)
	} else {
		defer c.Close()
		q = querier.New(c)
	}

	var handler http.Handler = api.New(a, q, cfg.CORSOrigins)
	if cfg.OTelEnabled {
		handler = otelhttp.NewHandler(handler, "ngui-api")
	}

	addr := ":" + cfg.APIPort
	logger.Info("starting API server", "addr", addr, "component_system", a.ComponentSystem(), "workflows", q != nil)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
