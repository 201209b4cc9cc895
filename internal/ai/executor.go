package ai

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/technokami/adept/internal/utils"
	"go.uber.org/zap"
)

const (
	defaultAttempts   = 3
	defaultBaseDelay  = 2 * time.Second
	defaultMultiplier = 2

	defaultMaxLogLength = 200

	// jsonOnlyInstruction is appended to every Structured prompt. Field-shape
	// correctness is a contract with the prompt; the extractor only checks
	// that the reply parses.
	jsonOnlyInstruction = "IMPORTANT: Please provide the response in a valid JSON format only, with no other text or explanations."
)

// wait is a seam for tests.
var wait = utils.WaitFor

// Policy governs retry timing: number of attempts, delay before the second
// attempt, and the factor applied to the delay after each failure. There is
// no jitter and no cap beyond the attempt count. Malformed structured replies
// share the same budget as transient service failures.
type Policy struct {
	Attempts   int
	BaseDelay  time.Duration
	Multiplier int
}

// DefaultPolicy returns the standard 3-attempt policy with a 2s doubling
// delay (waits of 2s and 4s before the second and third attempts).
func DefaultPolicy() Policy {
	return Policy{
		Attempts:   defaultAttempts,
		BaseDelay:  defaultBaseDelay,
		Multiplier: defaultMultiplier,
	}
}

func (p Policy) normalized() Policy {
	if p.Attempts <= 0 {
		p.Attempts = defaultAttempts
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = defaultBaseDelay
	}
	if p.Multiplier <= 1 {
		p.Multiplier = defaultMultiplier
	}
	return p
}

// Executor issues one logical request to the text generator with bounded
// retries and exponential delay. Each attempt consumes one unit of whatever
// rate limit the dependency imposes; retry budgets are independent per call.
type Executor struct {
	generator Generator
	policy    Policy
	logger    *zap.Logger
	maxLogLen int
}

func NewExecutor(generator Generator, policy Policy, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Executor{
		generator: generator,
		policy:    policy.normalized(),
		logger:    logger,
		maxLogLen: defaultMaxLogLength,
	}
}

// Execute runs the request through the generator, retrying per the policy.
// For Structured requests a reply that fails extraction is retried exactly
// like a transient failure. Exhausting every attempt yields
// *ExhaustedRetriesError; no partial result is ever returned.
func (e *Executor) Execute(ctx context.Context, req Request) (*Response, error) {
	if e == nil || e.generator == nil {
		return nil, errors.New("executor is not initialized")
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, errors.New("prompt must not be empty")
	}

	if req.Mode == Structured {
		prompt = prompt + "\n\n" + jsonOnlyInstruction
	}

	temperature := req.Temperature
	if temperature <= 0 {
		temperature = DefaultTemperature
	}

	e.logger.Debug("issuing generation request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, e.maxLogLen)),
		zap.Bool("structured", req.Mode == Structured),
	)

	delay := e.policy.BaseDelay

	var last error
	for attempt := 1; ; attempt++ {
		resp, err := e.attempt(ctx, prompt, temperature, req.Mode)
		if err == nil {
			e.logger.Debug("generation request succeeded",
				zap.Int("attempt", attempt),
				zap.String("response_preview", utils.TruncateForLog(resp.Text, e.maxLogLen)),
			)
			return resp, nil
		}

		last = err
		e.logger.Warn("generation attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", e.policy.Attempts),
			zap.Error(err),
		)

		if attempt >= e.policy.Attempts {
			break
		}

		if werr := wait(ctx, delay); werr != nil {
			return nil, werr
		}
		delay *= time.Duration(e.policy.Multiplier)
	}

	return nil, &ExhaustedRetriesError{Attempts: e.policy.Attempts, Last: last}
}

func (e *Executor) attempt(ctx context.Context, prompt string, temperature float32, mode Mode) (*Response, error) {
	raw, err := e.generator.GenerateContent(ctx, prompt, temperature)
	if err != nil {
		return nil, &TransientError{Err: err}
	}

	if mode != Structured {
		return &Response{Text: raw}, nil
	}

	payload, err := Extract(raw)
	if err != nil {
		return nil, &MalformedResponseError{Err: err, Raw: raw}
	}

	return &Response{Text: raw, Payload: payload}, nil
}
