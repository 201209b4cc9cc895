package advisor

import (
	"strings"

	_ "embed"
)

//go:embed prompts/analysis.md
var analysisTemplate string

//go:embed prompts/market_pulse.md
var marketPulseTemplate string

//go:embed prompts/resume_critique.md
var resumeCritiqueTemplate string

//go:embed prompts/cover_letter.md
var coverLetterTemplate string

func buildAnalysisPrompt(p Profile) string {
	prompt := strings.ReplaceAll(analysisTemplate, "{{TARGET_ROLE}}", p.TargetRole)
	prompt = strings.ReplaceAll(prompt, "{{SKILLS}}", strings.Join(p.Skills, ", "))
	prompt = strings.ReplaceAll(prompt, "{{RESUME}}", p.ResumeText)
	prompt = strings.ReplaceAll(prompt, "{{INTERESTS}}", p.Interests)
	return prompt
}

func buildMarketPulsePrompt(jobTitle string) string {
	return strings.ReplaceAll(marketPulseTemplate, "{{JOB_TITLE}}", jobTitle)
}

func buildResumeCritiquePrompt(jobDescription, resumeText string) string {
	prompt := strings.ReplaceAll(resumeCritiqueTemplate, "{{JOB_DESCRIPTION}}", jobDescription)
	return strings.ReplaceAll(prompt, "{{RESUME}}", resumeText)
}

func buildCoverLetterPrompt(jobDescription, resumeText string) string {
	prompt := strings.ReplaceAll(coverLetterTemplate, "{{JOB_DESCRIPTION}}", jobDescription)
	return strings.ReplaceAll(prompt, "{{RESUME}}", resumeText)
}
