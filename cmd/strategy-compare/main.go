// strategy-compare selects a component for the same data with the one-call
// and the two-call strategy and prints a JSON diff report. With --left and
// --right it compares two saved selections instead of calling the model.
// Exit code 0 = selections match. Exit code 1 = divergence detected. Exit code 2 = error.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/config"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/llm"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/observability"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/ratelimit"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/shadow"
)

func main() {
	dataFile := flag.String("data", "", "path to the data payload (required)")
	prompt := flag.String("prompt", "", "user prompt (required)")
	dataType := flag.String("type", "", "data type identifier")
	leftFile := flag.String("left", "", "saved selection JSON to compare against --right")
	rightFile := flag.String("right", "", "saved selection JSON to compare against --left")
	flag.Parse()

	if *leftFile != "" || *rightFile != "" {
		os.Exit(compareSaved(*leftFile, *rightFile))
	}

	if *dataFile == "" || *prompt == "" {
		fmt.Fprintln(os.Stderr, "error: --data and --prompt are required")
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := observability.InitStderrLogger(cfg.LogLevel)

	data, err := os.ReadFile(*dataFile)
	if err != nil {
		logger.Error("read data failed", "error", err)
		os.Exit(2)
	}
	agentCfg, err := config.LoadAgentConfig(cfg.AgentConfigPath)
	if err != nil {
		logger.Error("agent config failed", "error", err)
		os.Exit(2)
	}
	model, err := llm.New(ctx, cfg, ratelimit.NewModelLimiter(cfg.LLMRPS, cfg.LLMBurst), nil, logger)
	if err != nil {
		logger.Error("model init failed", "error", err)
		os.Exit(2)
	}

	runner, err := shadow.NewRunner(agentCfg, model, logger)
	if err != nil {
		logger.Error("runner init failed", "error", err)
		os.Exit(2)
	}

	in := domain.NewInputData(string(data), *dataType)
	result, err := runner.Run(ctx, *prompt, in)
	if err != nil {
		logger.Error("comparison failed", "error", err)
		os.Exit(2)
	}

	if err := printResult(result); err != nil {
		logger.Error("marshal result failed", "error", err)
		os.Exit(2)
	}
	if !result.AllMatch {
		logger.Warn("divergence detected", "summary", result.Summary)
		os.Exit(1)
	}
}

func compareSaved(leftFile, rightFile string) int {
	if leftFile == "" || rightFile == "" {
		fmt.Fprintln(os.Stderr, "error: --left and --right must be given together")
		return 2
	}
	left, err := os.ReadFile(leftFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	right, err := os.ReadFile(rightFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	result, err := shadow.CompareJSON(left, right)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if err := printResult(result); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if !result.AllMatch {
		return 1
	}
	return 0
}

func printResult(result *shadow.ComparisonResult) error {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
