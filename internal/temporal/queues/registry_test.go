package queues

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/temporal/versioning"
)

func TestDefaultConfigs(t *testing.T) {
	configs := DefaultConfigs()
	assert.Len(t, configs, 2)
	assert.Contains(t, configs, versioning.QueueGenerate)
	assert.Contains(t, configs, versioning.QueueLLM)

	llm := configs[versioning.QueueLLM]
	gen := configs[versioning.QueueGenerate]
	assert.Less(t, llm.Options.MaxConcurrentActivityExecutionSize, gen.Options.MaxConcurrentActivityExecutionSize)
}

func TestParseQueues(t *testing.T) {
	both := []string{versioning.QueueGenerate, versioning.QueueLLM}
	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr string
	}{
		{"empty means all", "", both, ""},
		{"short name", "llm", []string{versioning.QueueLLM}, ""},
		{"full name", "ngui-generate", []string{versioning.QueueGenerate}, ""},
		{"order kept", "llm,generate", []string{versioning.QueueLLM, versioning.QueueGenerate}, ""},
		{"deduplicate", "llm,ngui-llm", []string{versioning.QueueLLM}, ""},
		{"spaces trimmed", " generate , llm ", both, ""},
		{"only commas", ",,", both, ""},
		{"unknown queue", "bogus", nil, `unknown queue "bogus"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQueues(tt.raw)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
