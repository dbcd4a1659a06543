// Command ngui runs the generative UI pipeline locally or through the
// durable generation workflow.
//
// Usage:
//
//	ngui generate --prompt P --data FILE [--data FILE ...] [--type T]
//	ngui start    --prompt P --data FILE [--data FILE ...] [--type T] [--session S]
//	ngui status   --workflow-id WID
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/agent"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/config"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/observability"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/temporal/querier"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/temporal/workflows"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "generate":
		cmdGenerate(os.Args[2:])
	case "start":
		cmdStart(os.Args[2:])
	case "status":
		cmdStatus(os.Args[2:])
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: ngui <generate|start|status> [flags]")
	os.Exit(1)
}

// files collects repeated --data flags.
type files []string

func (f *files) String() string     { return strings.Join(*f, ",") }
func (f *files) Set(v string) error { *f = append(*f, v); return nil }

func loadConfig() (config.Config, *slog.Logger) {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("%v", err)
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("%v", err)
	}
	return cfg, observability.InitStderrLogger(cfg.LogLevel)
}

func readInputs(paths []string, dataType string) []domain.InputData {
	inputs := make([]domain.InputData, len(paths))
	for i, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			log.Fatalf("read %s: %v", p, err)
		}
		inputs[i] = domain.NewInputData(string(data), dataType)
	}
	return inputs
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("failed to marshal output: %v", err)
	}
	fmt.Println(string(data))
}

func cmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	prompt := fs.String("prompt", "", "user prompt (required)")
	dataType := fs.String("type", "", "data type identifier")
	var data files
	fs.Var(&data, "data", "data payload file (required, repeatable)")
	_ = fs.Parse(args)

	if *prompt == "" || len(data) == 0 {
		fs.Usage()
		os.Exit(1)
	}

	cfg, logger := loadConfig()
	ctx := context.Background()
	a, err := agent.FromConfig(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("agent: %v", err)
	}

	results := a.GenerateAll(ctx, *prompt, readInputs(data, *dataType))
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintln(os.Stderr, r.Describe())
		}
	}
	printJSON(results)
	if failed == len(results) {
		os.Exit(1)
	}
}

func cmdStart(args []string) {
	fs := flag.NewFlagSet("start", flag.ExitOnError)
	prompt := fs.String("prompt", "", "user prompt (required)")
	dataType := fs.String("type", "", "data type identifier")
	session := fs.String("session", "", "session id for budget accounting")
	var data files
	fs.Var(&data, "data", "data payload file (required, repeatable)")
	_ = fs.Parse(args)

	if *prompt == "" || len(data) == 0 {
		fs.Usage()
		os.Exit(1)
	}

	cfg, logger := loadConfig()
	c, err := querier.Dial(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer c.Close()

	summary, err := querier.New(c).StartGeneration(context.Background(), workflows.GenerateInput{
		SessionID: *session,
		Prompt:    *prompt,
		Inputs:    readInputs(data, *dataType),
	})
	if err != nil {
		log.Fatalf("failed to start workflow: %v", err)
	}
	fmt.Printf("started workflow %s (run=%s)\n", summary.WorkflowID, summary.RunID)
}

func cmdStatus(args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	wfID := fs.String("workflow-id", "", "workflow ID (required)")
	_ = fs.Parse(args)

	if *wfID == "" {
		fs.Usage()
		os.Exit(1)
	}

	cfg, logger := loadConfig()
	c, err := querier.Dial(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer c.Close()

	state, err := querier.New(c).GetGenerationState(context.Background(), *wfID)
	if err != nil {
		log.Fatalf("failed to query workflow: %v", err)
	}
	printJSON(state)
}
