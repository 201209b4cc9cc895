package ai

import (
	"context"
	"encoding/json"
)

// Mode selects how a reply from the text generator is treated.
type Mode int

const (
	// Freeform passes the reply through as opaque prose.
	Freeform Mode = iota
	// Structured expects the reply to contain a single JSON value, which is
	// extracted and validated before the request is considered successful.
	Structured
)

// DefaultTemperature matches the dependency call contract.
const DefaultTemperature float32 = 0.7

// Request describes one logical request to the text generator. It is not
// modified once handed to an Executor.
type Request struct {
	Prompt      string
	Mode        Mode
	Temperature float32
}

// Response is the outcome of a successful request. Text is always set;
// Payload is set only for Structured requests.
type Response struct {
	Text    string
	Payload json.RawMessage
}

// Generator is the text-generation dependency: prompt and parameters in,
// raw text out, or a failure. Implementations live under ai/gemini and
// ai/openai.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string, temperature float32) (string, error)
}
