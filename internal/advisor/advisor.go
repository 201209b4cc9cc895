package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/technokami/adept/internal/ai"
	"github.com/technokami/adept/internal/interview"
	"go.uber.org/zap"
)

type executor interface {
	Execute(ctx context.Context, req ai.Request) (*ai.Response, error)
}

// Advisor is the public surface of the career guidance core: profile
// analysis, market pulse, resume critique and cover letter drafting. It owns
// a per-session response cache. One operation at a time; callers must not
// invoke overlapping operations on the same Advisor.
type Advisor struct {
	exec       executor
	cache      *Cache
	interviews *interview.Engine
	logger     *zap.Logger
}

func New(exec executor, logger *zap.Logger) *Advisor {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Advisor{
		exec:       exec,
		cache:      NewCache(),
		interviews: interview.NewEngine(exec, logger),
		logger:     logger,
	}
}

// AnalyzeProfile produces a skill gap analysis, learning pathway and
// alternative career suggestions for the profile's target role. Results are
// memoized on the role plus the skill set, insensitive to skill order.
func (a *Advisor) AnalyzeProfile(ctx context.Context, p Profile) (*AnalysisResult, error) {
	if strings.TrimSpace(p.TargetRole) == "" {
		return nil, &ai.InputError{Reason: "target role is required"}
	}
	if len(p.Skills) == 0 && strings.TrimSpace(p.ResumeText) == "" {
		return nil, &ai.InputError{Reason: "at least some skills or a resume are required"}
	}

	key := AnalysisKey(p.TargetRole, p.Skills)

	resp, ok := a.cache.Get(DomainAnalysis, key)
	if ok {
		a.logger.Debug("profile analysis served from cache", zap.String("cache_key", key))
	} else {
		var err error
		resp, err = a.exec.Execute(ctx, ai.Request{
			Prompt: buildAnalysisPrompt(p),
			Mode:   ai.Structured,
		})
		if err != nil {
			return nil, err
		}
		a.cache.Put(DomainAnalysis, key, resp)
	}

	var result AnalysisResult
	if err := decodePayload(resp.Payload, &result); err != nil {
		return nil, fmt.Errorf("decode analysis payload: %w", err)
	}

	return &result, nil
}

// AnalyzeMarket produces a market overview for the given job title. Titles
// are cached byte-for-byte: differently-cased titles are separate entries.
func (a *Advisor) AnalyzeMarket(ctx context.Context, jobTitle string) (*MarketPulse, error) {
	if strings.TrimSpace(jobTitle) == "" {
		return nil, &ai.InputError{Reason: "job title is required"}
	}

	key := MarketKey(jobTitle)

	resp, ok := a.cache.Get(DomainMarketPulse, key)
	if ok {
		a.logger.Debug("market analysis served from cache", zap.String("cache_key", key))
	} else {
		var err error
		resp, err = a.exec.Execute(ctx, ai.Request{
			Prompt: buildMarketPulsePrompt(jobTitle),
			Mode:   ai.Structured,
		})
		if err != nil {
			return nil, err
		}
		a.cache.Put(DomainMarketPulse, key, resp)
	}

	var result MarketPulse
	if err := decodePayload(resp.Payload, &result); err != nil {
		return nil, fmt.Errorf("decode market pulse payload: %w", err)
	}

	return &result, nil
}

// CritiqueResume reviews the resume against a job description and returns a
// prose critique. Never cached: both inputs are free text.
func (a *Advisor) CritiqueResume(ctx context.Context, jobDescription, resumeText string) (string, error) {
	if strings.TrimSpace(jobDescription) == "" || strings.TrimSpace(resumeText) == "" {
		return "", &ai.InputError{Reason: "both the job description and the resume content are required"}
	}

	resp, err := a.exec.Execute(ctx, ai.Request{
		Prompt: buildResumeCritiquePrompt(jobDescription, resumeText),
	})
	if err != nil {
		return "", err
	}

	return resp.Text, nil
}

// DraftCoverLetter writes a cover letter draft tailored to the job
// description from the resume content.
func (a *Advisor) DraftCoverLetter(ctx context.Context, jobDescription, resumeText string) (string, error) {
	if strings.TrimSpace(jobDescription) == "" || strings.TrimSpace(resumeText) == "" {
		return "", &ai.InputError{Reason: "both the job description and the resume content are required"}
	}

	resp, err := a.exec.Execute(ctx, ai.Request{
		Prompt: buildCoverLetterPrompt(jobDescription, resumeText),
	})
	if err != nil {
		return "", err
	}

	return resp.Text, nil
}

// StartInterview opens a mock-interview session for the job role and returns
// it primed with the opening question.
func (a *Advisor) StartInterview(ctx context.Context, jobRole string) (*interview.Session, error) {
	return a.interviews.Start(ctx, jobRole)
}

// SubmitAnswer records the user's answer on the session and obtains the next
// question. Interview sessions keep their own transcript; they never touch
// the response cache.
func (a *Advisor) SubmitAnswer(ctx context.Context, session *interview.Session, answer string) error {
	return a.interviews.SubmitAnswer(ctx, session, answer)
}

// EndInterview closes the session and synthesizes feedback.
func (a *Advisor) EndInterview(ctx context.Context, session *interview.Session) error {
	return a.interviews.End(ctx, session)
}

// ClearAnalyses drops cached profile analyses. Callers invoke it whenever the
// underlying profile attributes change; the cache has no automatic
// invalidation.
func (a *Advisor) ClearAnalyses() {
	a.cache.Clear(DomainAnalysis)
}

// decodePayload maps an extracted JSON value onto a typed result. Weak typing
// tolerates the model returning, say, numbers where strings are expected;
// fields the model omits simply stay zero.
func decodePayload(payload json.RawMessage, result any) error {
	var data map[string]any
	if err := json.Unmarshal(payload, &data); err != nil {
		return err
	}

	cfg := &mapstructure.DecoderConfig{
		Result:           result,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}

	return decoder.Decode(data)
}
