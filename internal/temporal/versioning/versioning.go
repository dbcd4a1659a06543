// Package versioning defines workflow versions and task queue names.
package versioning

const (
	// GenerateUIV1 tracks determinism of the generation workflow.
	GenerateUIV1 = "generate-ui-v1"

	// QueueGenerate runs workflows and the block-building activity.
	QueueGenerate = "ngui-generate"
	// QueueLLM runs the model-bound selection activity with tight concurrency.
	QueueLLM = "ngui-llm"
)
