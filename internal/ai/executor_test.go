package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type scriptedGenerator struct {
	replies []reply
	prompts []string
}

type reply struct {
	text string
	err  error
}

func (s *scriptedGenerator) GenerateContent(_ context.Context, prompt string, _ float32) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.replies) == 0 {
		return "", errors.New("no scripted reply")
	}
	next := s.replies[0]
	s.replies = s.replies[1:]
	return next.text, next.err
}

func recordWaits(t *testing.T) *[]time.Duration {
	t.Helper()

	var waits []time.Duration
	original := wait
	wait = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}
	t.Cleanup(func() { wait = original })

	return &waits
}

func TestExecuteStructuredRetriesMalformedReplies(t *testing.T) {
	waits := recordWaits(t)

	gen := &scriptedGenerator{replies: []reply{
		{text: "sorry, here is your answer in prose"},
		{text: "```json\n{\"summary\": \"ok\"}\n```"},
	}}

	exec := NewExecutor(gen, DefaultPolicy(), nil)

	resp, err := exec.Execute(context.Background(), Request{Prompt: "analyze", Mode: Structured})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(resp.Payload) != `{"summary": "ok"}` {
		t.Fatalf("unexpected payload: %s", resp.Payload)
	}

	if len(*waits) != 1 || (*waits)[0] != 2*time.Second {
		t.Fatalf("expected single 2s wait, got %v", *waits)
	}
}

func TestExecuteBackoffDelaySequence(t *testing.T) {
	waits := recordWaits(t)

	transient := errors.New("overloaded")
	gen := &scriptedGenerator{replies: []reply{
		{err: transient},
		{err: transient},
		{text: "recovered"},
	}}

	exec := NewExecutor(gen, Policy{Attempts: 3, BaseDelay: 2 * time.Second, Multiplier: 2}, nil)

	resp, err := exec.Execute(context.Background(), Request{Prompt: "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "recovered" {
		t.Fatalf("unexpected text: %q", resp.Text)
	}

	expected := []time.Duration{2 * time.Second, 4 * time.Second}
	if len(*waits) != len(expected) {
		t.Fatalf("expected %d waits, got %v", len(expected), *waits)
	}
	for i, d := range expected {
		if (*waits)[i] != d {
			t.Fatalf("wait %d: expected %v, got %v", i, d, (*waits)[i])
		}
	}
}

func TestExecuteExhaustsRetries(t *testing.T) {
	waits := recordWaits(t)

	transient := errors.New("connection reset")
	gen := &scriptedGenerator{replies: []reply{
		{err: transient},
		{err: transient},
		{err: transient},
	}}

	exec := NewExecutor(gen, DefaultPolicy(), nil)

	_, err := exec.Execute(context.Background(), Request{Prompt: "hello"})

	var exhausted *ExhaustedRetriesError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected ExhaustedRetriesError, got %v", err)
	}
	if exhausted.Attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", exhausted.Attempts)
	}
	if !errors.Is(err, transient) {
		t.Fatalf("expected last error to unwrap to the transient cause")
	}

	// Two waits only: there is no delay after the final attempt.
	if len(*waits) != 2 {
		t.Fatalf("expected 2 waits, got %v", *waits)
	}
}

func TestExecuteMalformedErrorStaysDistinguishable(t *testing.T) {
	recordWaits(t)

	gen := &scriptedGenerator{replies: []reply{
		{text: "not json"},
		{text: "still not json"},
		{text: "nope"},
	}}

	exec := NewExecutor(gen, DefaultPolicy(), nil)

	_, err := exec.Execute(context.Background(), Request{Prompt: "analyze", Mode: Structured})

	var exhausted *ExhaustedRetriesError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected ExhaustedRetriesError, got %v", err)
	}

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected malformed cause, got %v", exhausted.Last)
	}
	if malformed.Raw != "nope" {
		t.Fatalf("unexpected raw reply: %q", malformed.Raw)
	}
}

func TestExecuteAppendsJSONInstructionForStructured(t *testing.T) {
	recordWaits(t)

	gen := &scriptedGenerator{replies: []reply{{text: `{"ok": true}`}}}
	exec := NewExecutor(gen, DefaultPolicy(), nil)

	if _, err := exec.Execute(context.Background(), Request{Prompt: "analyze", Mode: Structured}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(gen.prompts) != 1 {
		t.Fatalf("expected one prompt, got %d", len(gen.prompts))
	}
	prompt := gen.prompts[0]
	if prompt == "analyze" {
		t.Fatalf("expected JSON instruction to be appended")
	}
	if want := "valid JSON format only"; !strings.Contains(prompt, want) {
		t.Fatalf("prompt missing instruction %q: %s", want, prompt)
	}
}

func TestExecuteRejectsEmptyPrompt(t *testing.T) {
	gen := &scriptedGenerator{}
	exec := NewExecutor(gen, DefaultPolicy(), nil)

	if _, err := exec.Execute(context.Background(), Request{Prompt: "   "}); err == nil {
		t.Fatal("expected error for empty prompt")
	}

	if len(gen.prompts) != 0 {
		t.Fatalf("expected no generator calls, got %d", len(gen.prompts))
	}
}
