package interview

import (
	"context"
	"fmt"
	"strings"

	_ "embed"

	"github.com/google/uuid"
	"github.com/technokami/adept/internal/ai"
	"go.uber.org/zap"
)

//go:embed prompts/system_instruction.md
var systemInstructionTemplate string

//go:embed prompts/feedback.md
var feedbackTemplate string

type executor interface {
	Execute(ctx context.Context, req ai.Request) (*ai.Response, error)
}

// Engine drives mock-interview sessions against the text generator. All
// requests are freeform; the full transcript is resent every turn, accepting
// the growing prompt size as the memory model. One operation at a time per
// session; callers must not overlap calls on the same session.
type Engine struct {
	exec   executor
	logger *zap.Logger
}

func NewEngine(exec executor, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{exec: exec, logger: logger}
}

// Start creates a session for the given job role, primes the interviewer and
// obtains the opening question. On failure no session is returned; nothing
// partial persists.
func (e *Engine) Start(ctx context.Context, jobRole string) (*Session, error) {
	jobRole = strings.TrimSpace(jobRole)
	if jobRole == "" {
		return nil, &ai.InputError{Reason: "job role is required to start an interview"}
	}

	session := &Session{
		ID:      uuid.NewString(),
		JobRole: jobRole,
		State:   StatePriming,
	}

	instruction := strings.ReplaceAll(systemInstructionTemplate, "{{JOB_ROLE}}", jobRole)
	instruction = strings.TrimSpace(instruction)
	session.Transcript = append(session.Transcript, Turn{Role: RoleSystem, Content: instruction})

	resp, err := e.exec.Execute(ctx, ai.Request{Prompt: instruction})
	if err != nil {
		return nil, err
	}

	session.Transcript = append(session.Transcript, Turn{Role: RoleAssistant, Content: resp.Text})
	session.State = StateActive

	e.logger.Debug("interview started",
		zap.String("session_id", session.ID),
		zap.String("job_role", jobRole),
	)

	return session, nil
}

// SubmitAnswer appends the user's answer, resends the whole transcript and
// appends the interviewer's next question. On failure the User turn remains
// appended and the session stays Active: the answer is recorded, the
// response is pending. The caller may call SubmitAnswer again or retry.
func (e *Engine) SubmitAnswer(ctx context.Context, session *Session, answer string) error {
	if session == nil || session.State != StateActive {
		return fmt.Errorf("interview session is not active")
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return &ai.InputError{Reason: "answer must not be empty"}
	}

	session.Transcript = append(session.Transcript, Turn{Role: RoleUser, Content: answer})

	resp, err := e.exec.Execute(ctx, ai.Request{Prompt: serializeTranscript(session.Transcript)})
	if err != nil {
		return err
	}

	session.Transcript = append(session.Transcript, Turn{Role: RoleAssistant, Content: resp.Text})

	e.logger.Debug("interview turn completed",
		zap.String("session_id", session.ID),
		zap.Int("transcript_length", len(session.Transcript)),
	)

	return nil
}

// End closes the session and synthesizes feedback from the transcript. A
// session with no answers still produces feedback, not an error. Calling End
// on a session that already holds feedback returns without a new dependency
// call; a Closed session whose feedback synthesis previously failed gets one
// more synthesis attempt per call.
func (e *Engine) End(ctx context.Context, session *Session) error {
	if session == nil {
		return fmt.Errorf("interview session is required")
	}

	switch session.State {
	case StateClosed:
		if session.Feedback != "" {
			return nil
		}
	case StateActive:
		session.State = StateClosed
	default:
		return fmt.Errorf("interview session is not active")
	}

	prompt := strings.ReplaceAll(feedbackTemplate, "{{JOB_ROLE}}", session.JobRole)
	prompt = strings.ReplaceAll(prompt, "{{TRANSCRIPT}}", serializeForFeedback(session.Transcript))

	resp, err := e.exec.Execute(ctx, ai.Request{Prompt: prompt})
	if err != nil {
		return err
	}

	session.Feedback = resp.Text

	e.logger.Debug("interview feedback generated",
		zap.String("session_id", session.ID),
		zap.Int("answers", session.Answers()),
	)

	return nil
}

// serializeTranscript renders every turn, the System framing included, as
// Human/AI labeled lines for the next-question prompt.
func serializeTranscript(transcript []Turn) string {
	lines := make([]string, 0, len(transcript))
	for _, turn := range transcript {
		label := "AI"
		if turn.Role == RoleUser {
			label = "Human"
		}
		lines = append(lines, label+": "+turn.Content)
	}
	return strings.Join(lines, "\n")
}

// serializeForFeedback renders the transcript without the System turn, using
// the User/Interviewer labels the feedback prompt refers to.
func serializeForFeedback(transcript []Turn) string {
	lines := make([]string, 0, len(transcript))
	for _, turn := range transcript {
		if turn.Role == RoleSystem {
			continue
		}
		label := "Interviewer"
		if turn.Role == RoleUser {
			label = "User"
		}
		lines = append(lines, label+": "+turn.Content)
	}
	return strings.Join(lines, "\n")
}
