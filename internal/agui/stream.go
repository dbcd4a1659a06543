package agui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/temporal/querier"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/temporal/workflows"
)

// StreamConfig controls SSE stream behavior.
type StreamConfig struct {
	PollInterval time.Duration
	MaxDuration  time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() StreamConfig {
	return StreamConfig{
		PollInterval: time.Second,
		MaxDuration:  10 * time.Minute,
	}
}

// StreamHandler serves SSE events for a generation workflow: a snapshot of
// every item, one CUSTOM event per finished item, then RUN_FINISHED.
func StreamHandler(q querier.WorkflowQuerier, cfg StreamConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wfID := r.PathValue("id")
		if wfID == "" {
			http.Error(w, "workflow id required", http.StatusBadRequest)
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming not supported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		ctx, cancel := context.WithTimeout(r.Context(), cfg.MaxDuration)
		defer cancel()

		s := &stream{w: w, flusher: flusher, wfID: wfID, sent: make(map[string]bool)}
		s.emit(EventRunStarted, nil)

		state, err := q.GetGenerationState(ctx, wfID)
		if err != nil {
			s.emit(EventRunError, ErrorData{Message: err.Error()})
			return
		}
		s.emit(EventStateSnapshot, state)
		if s.update(state) {
			return
		}

		ticker := time.NewTicker(cfg.PollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				state, err = q.GetGenerationState(ctx, wfID)
				if err != nil {
					s.emit(EventRunError, ErrorData{Message: err.Error()})
					return
				}
				if s.update(state) {
					return
				}
			}
		}
	}
}

type stream struct {
	w       http.ResponseWriter
	flusher http.Flusher
	wfID    string
	// sent tracks items already reported.
	sent map[string]bool
}

// update emits events for newly finished items and reports whether the run is over.
func (s *stream) update(state *workflows.GenerationState) bool {
	for _, it := range state.Items {
		if s.sent[it.InputID] {
			continue
		}
		switch {
		case it.Block != nil:
			s.emit(EventCustom, CustomData{Name: CustomUIBlock, Value: it.Block})
		case it.Phase.Failed():
			s.emit(EventCustom, CustomData{Name: CustomUIBlockError, Value: BlockError{
				InputID: it.InputID,
				Phase:   string(it.Phase),
				Message: itemMessage(it),
			}})
		default:
			continue
		}
		s.sent[it.InputID] = true
	}
	if !state.Done {
		return false
	}
	s.emit(EventRunFinished, FinishedData{Blocks: len(state.Blocks()), Failed: state.Failed()})
	return true
}

func itemMessage(it workflows.ItemState) string {
	if it.Error != "" {
		return it.Error
	}
	msgs := make([]string, len(it.Errors))
	for i, e := range it.Errors {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

func (s *stream) emit(t EventType, data any) {
	payload, err := json.Marshal(Event{Type: t, Timestamp: time.Now().UTC(), WorkflowID: s.wfID, Data: data})
	if err != nil {
		return
	}
	fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", t, payload)
	s.flusher.Flush()
}
