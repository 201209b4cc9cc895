package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/technokami/adept/internal/advisor"
	"github.com/technokami/adept/internal/ai"
	"github.com/technokami/adept/internal/ai/gemini"
	"github.com/technokami/adept/internal/ai/openai"
	"github.com/technokami/adept/internal/logger"
	"github.com/technokami/adept/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PageProfileBuilder = "Profile Builder"
	PageCareerAdvisor  = "Career Advisor"
	PageMarketPulse    = "Market Pulse"
	PageMockInterview  = "Mock Interview"
	PageResumeCopilot  = "Resume Co-pilot"
	PageExit           = "Exit"

	CopilotCritique    = "Critique My Resume"
	CopilotCoverLetter = "Draft a Cover Letter"

	endInterviewCommand = "/end"
)

var errExit = errors.New("exit requested")

var pagePrompt = promptui.Select{
	Label: "Where to?",
	Items: []string{PageProfileBuilder, PageCareerAdvisor, PageMarketPulse, PageMockInterview, PageResumeCopilot, PageExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive career advisor",
	Run: func(_ *cobra.Command, _ []string) {
		run()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// run is the main command for the cli.
func run() {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting adept", zap.String("version", version))

	generator, err := newGenerator(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building the text generator", zap.Error(err))
	}

	exec := ai.NewExecutor(generator, backoffPolicy(config.AI), logger)

	adv := advisor.New(exec, logger)
	profile := profileFromConfig(config.Profile, logger)

	for {
		_, page, err := pagePrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handlePage(ctx, page, adv, profile, logger); err != nil {
			if errors.Is(err, errExit) {
				logger.Info("exiting", zap.String("reason", "goodbye"))
				return
			}
			logger.Warn("page failed", zap.String("page", page), zap.Error(err))
		}
	}
}

func handlePage(ctx context.Context, page string, adv *advisor.Advisor, profile *advisor.Profile, logger *zap.Logger) error {
	switch page {
	case PageProfileBuilder:
		return buildProfile(profile, adv)
	case PageCareerAdvisor:
		return careerAdvisor(ctx, adv, profile)
	case PageMarketPulse:
		return marketPulse(ctx, adv)
	case PageMockInterview:
		return mockInterview(ctx, adv, profile, logger)
	case PageResumeCopilot:
		return resumeCopilot(ctx, adv, profile)
	case PageExit:
		return errExit
	default:
		return fmt.Errorf("invalid page: %s", page)
	}
}

// buildProfile collects the user's career snapshot. Any change invalidates
// the cached profile analyses.
func buildProfile(profile *advisor.Profile, adv *advisor.Advisor) error {
	role, err := askText("Target job role (e.g. Software Engineer, Product Manager)", profile.TargetRole)
	if err != nil {
		return err
	}

	skills, err := askText("Your skills, separated by commas (e.g. Python, Data Analysis, React)", strings.Join(profile.Skills, ", "))
	if err != nil {
		return err
	}

	interests, err := askText("Your professional interests and passions", profile.Interests)
	if err != nil {
		return err
	}

	resumeFile, err := askText("Path to a plain-text resume file (optional)", "")
	if err != nil {
		return err
	}
	if resumeFile = strings.TrimSpace(resumeFile); resumeFile != "" {
		data, err := os.ReadFile(resumeFile)
		if err != nil {
			return fmt.Errorf("reading resume file: %w", err)
		}
		profile.ResumeText = string(data)
	}

	profile.TargetRole = strings.TrimSpace(role)
	profile.Skills = advisor.ParseSkills(skills)
	profile.Interests = strings.TrimSpace(interests)

	adv.ClearAnalyses()

	fmt.Println("Profile saved.")
	return nil
}

func careerAdvisor(ctx context.Context, adv *advisor.Advisor, profile *advisor.Profile) error {
	result, err := adv.AnalyzeProfile(ctx, *profile)
	if err != nil {
		return err
	}

	fmt.Printf("\nAnalysis for: %s\n\n", profile.TargetRole)
	fmt.Printf("Summary: %s\n\n", result.Summary)

	fmt.Println("Skills you have:")
	for _, skill := range result.SkillGapAnalysis.UserHasSkills {
		fmt.Printf("  + %s\n", skill)
	}
	fmt.Println("Skills to develop:")
	for _, skill := range result.SkillGapAnalysis.MissingSkills {
		fmt.Printf("  - %s\n", skill)
	}

	fmt.Println("\nLearning pathway:")
	for _, step := range result.LearningPathway {
		fmt.Printf("  %s: %s\n", step.SkillToLearn, step.Recommendation)
		for _, resource := range step.Resources {
			fmt.Printf("    * %s\n", resource)
		}
	}

	fmt.Println("\nAlternative careers:")
	for _, career := range result.AlternativeCareers {
		fmt.Printf("  %s: %s\n", career.CareerTitle, career.MatchReason)
	}
	fmt.Println()

	return nil
}

func marketPulse(ctx context.Context, adv *advisor.Advisor) error {
	jobTitle, err := askText("Job title to analyze (e.g. Data Scientist, UX Designer)", "")
	if err != nil {
		return err
	}

	pulse, err := adv.AnalyzeMarket(ctx, jobTitle)
	if err != nil {
		return err
	}

	fmt.Printf("\nInsights for: %s\n\n", jobTitle)
	fmt.Printf("Market summary: %s\n", pulse.MarketSummary)
	fmt.Printf("Market sentiment: %s\n", pulse.MarketSentiment)
	fmt.Printf("Estimated salary range: %s\n", pulse.SalaryRange)
	fmt.Printf("Trending skills: %s\n", strings.Join(pulse.TrendingSkills, ", "))
	fmt.Printf("Top hiring industries: %s\n\n", strings.Join(pulse.TopIndustries, ", "))

	return nil
}

func mockInterview(ctx context.Context, adv *advisor.Advisor, profile *advisor.Profile, logger *zap.Logger) error {
	jobRole, err := askText("Job role to practice for", profile.TargetRole)
	if err != nil {
		return err
	}

	session, err := adv.StartInterview(ctx, jobRole)
	if err != nil {
		return err
	}

	fmt.Printf("\nInterviewer: %s\n", session.LastQuestion())
	fmt.Printf("(type %s to finish and get feedback)\n\n", endInterviewCommand)

	for {
		answer, err := askText("Your answer", "")
		if err != nil {
			return err
		}

		if strings.TrimSpace(answer) == endInterviewCommand {
			break
		}

		if err := adv.SubmitAnswer(ctx, session, answer); err != nil {
			// The answer stays on the transcript; the session is still live.
			logger.Warn("interviewer did not respond", zap.Error(err))
			continue
		}

		fmt.Printf("\nInterviewer: %s\n\n", session.LastQuestion())
	}

	if err := adv.EndInterview(ctx, session); err != nil {
		return err
	}

	fmt.Printf("\nInterview feedback:\n%s\n\n", session.Feedback)
	return nil
}

func resumeCopilot(ctx context.Context, adv *advisor.Advisor, profile *advisor.Profile) error {
	copilotPrompt := promptui.Select{
		Label: "What would you like to generate?",
		Items: []string{CopilotCritique, CopilotCoverLetter},
	}

	_, choice, err := copilotPrompt.Run()
	if err != nil {
		return err
	}

	jobDescription, err := askText("Paste the job description", "")
	if err != nil {
		return err
	}

	resumeText, err := askText("Paste your resume content", profile.ResumeText)
	if err != nil {
		return err
	}

	var output string
	switch choice {
	case CopilotCritique:
		output, err = adv.CritiqueResume(ctx, jobDescription, resumeText)
	case CopilotCoverLetter:
		output, err = adv.DraftCoverLetter(ctx, jobDescription, resumeText)
	default:
		return fmt.Errorf("invalid choice: %s", choice)
	}
	if err != nil {
		return err
	}

	fmt.Printf("\n%s\n\n", output)
	return nil
}

func askText(label, defaultValue string) (string, error) {
	prompt := promptui.Prompt{
		Label:   label,
		Default: defaultValue,
	}
	return prompt.Run()
}

func newGenerator(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Generator, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))

	switch provider {
	case "", "gemini":
		if cfg.Gemini == nil {
			cfg.Gemini = &GeminiConfig{}
		}
		apiKey, err := secrets.Load(secrets.Source{
			Name: "gemini api key",
			File: cfg.Gemini.APIKeyFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
		}
		return gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, logger)
	case "openai":
		if cfg.OpenAI == nil {
			cfg.OpenAI = &OpenAIConfig{}
		}
		apiKey, err := secrets.Load(secrets.Source{
			Name: "openai api key",
			File: cfg.OpenAI.APIKeyFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.openai.api-key-file or OPENAI_API_KEY_FILE)", err)
		}
		return openai.NewGenerator(apiKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, logger)
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}

func backoffPolicy(cfg *AIConfig) ai.Policy {
	policy := ai.DefaultPolicy()
	if cfg.MaxRetries > 0 {
		policy.Attempts = cfg.MaxRetries
	}
	if cfg.BackoffBaseSeconds > 0 {
		policy.BaseDelay = time.Duration(cfg.BackoffBaseSeconds) * time.Second
	}
	return policy
}

func profileFromConfig(cfg *ProfileConfig, logger *zap.Logger) *advisor.Profile {
	profile := &advisor.Profile{
		TargetRole: cfg.TargetRole,
		Skills:     cfg.Skills,
		Interests:  cfg.Interests,
	}

	if file := strings.TrimSpace(cfg.ResumeFile); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			logger.Warn("skipping configured resume file", zap.Error(err))
		} else {
			profile.ResumeText = string(data)
		}
	}

	return profile
}
