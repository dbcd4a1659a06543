// Package testutil provides a scripted model and data fixtures for tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// Call is one recorded model invocation.
type Call struct {
	System string
	User   string
}

// ScriptedLLM satisfies llm.Inference by replaying canned responses in order
// and recording every call.
type ScriptedLLM struct {
	mu        sync.Mutex
	responses []string
	errs      map[int]error
	calls     []Call
	// Respond, when set, computes the answer instead of the script.
	Respond func(system, user string) (string, error)
}

// NewScriptedLLM returns a model that answers with responses in order.
func NewScriptedLLM(responses ...string) *ScriptedLLM {
	return &ScriptedLLM{responses: responses, errs: make(map[int]error)}
}

// FailOn makes the n-th call (0-based) return err.
func (s *ScriptedLLM) FailOn(n int, err error) *ScriptedLLM {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[n] = err
	return s
}

func (s *ScriptedLLM) CallModel(ctx context.Context, system, user string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	n := len(s.calls)
	s.calls = append(s.calls, Call{System: system, User: user})
	respond := s.Respond
	err := s.errs[n]
	var resp string
	if n < len(s.responses) {
		resp = s.responses[n]
	}
	s.mu.Unlock()

	if err != nil {
		return "", err
	}
	if respond != nil {
		return respond(system, user)
	}
	if n >= len(s.responses) {
		return "", fmt.Errorf("scripted llm: unexpected call %d", n+1)
	}
	return resp, nil
}

// Calls returns a copy of the recorded calls.
func (s *ScriptedLLM) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallCount returns how many times the model was called.
func (s *ScriptedLLM) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// FixturesDir returns the absolute path to the shared testdata directory.
func FixturesDir() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "testdata")
}

// Fixture returns the contents of a file in FixturesDir.
func Fixture(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(FixturesDir(), name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
