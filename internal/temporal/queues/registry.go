// Package queues defines per-queue worker configuration for task-queue partitioning.
package queues

import (
	"fmt"
	"strings"

	"go.temporal.io/sdk/worker"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/temporal/versioning"
)

// QueueConfig holds worker options for a single task queue.
type QueueConfig struct {
	Name    string
	Options worker.Options
}

// DefaultConfigs returns the standard per-queue worker options.
//
//   - QueueGenerate: workflows and CPU-only block building
//   - QueueLLM: model calls, bounded by provider rate limits
func DefaultConfigs() map[string]QueueConfig {
	return map[string]QueueConfig{
		versioning.QueueGenerate: {
			Name: versioning.QueueGenerate,
			Options: worker.Options{
				MaxConcurrentActivityExecutionSize:     20,
				MaxConcurrentWorkflowTaskExecutionSize: 10,
			},
		},
		versioning.QueueLLM: {
			Name: versioning.QueueLLM,
			Options: worker.Options{
				MaxConcurrentActivityExecutionSize:     4,
				MaxConcurrentWorkflowTaskExecutionSize: 1,
			},
		},
	}
}

// ParseQueues parses a comma-separated queue list (e.g. "generate,llm").
// Accepts both short names ("llm") and full names ("ngui-llm").
func ParseQueues(raw string) ([]string, error) {
	all := []string{versioning.QueueGenerate, versioning.QueueLLM}
	if strings.TrimSpace(raw) == "" {
		return all, nil
	}

	shortNames := map[string]string{
		"generate": versioning.QueueGenerate,
		"llm":      versioning.QueueLLM,
	}
	seen := make(map[string]bool)
	var result []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if full, ok := shortNames[name]; ok {
			name = full
		}
		if name != versioning.QueueGenerate && name != versioning.QueueLLM {
			return nil, fmt.Errorf("unknown queue %q", name)
		}
		if !seen[name] {
			seen[name] = true
			result = append(result, name)
		}
	}
	if len(result) == 0 {
		return all, nil
	}
	return result, nil
}
