package advisor

import "strings"

// Profile is the user-supplied career snapshot the advisor operates on.
type Profile struct {
	TargetRole string
	Skills     []string
	ResumeText string
	Interests  string
}

// ParseSkills splits a comma-separated skill list, trimming whitespace and
// dropping empty items.
func ParseSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

// SkillGap compares the skills a role requires against the user's.
type SkillGap struct {
	RequiredSkills []string `json:"required_skills"`
	UserHasSkills  []string `json:"user_has_skills"`
	MissingSkills  []string `json:"missing_skills"`
}

// LearningStep is one entry of the personalized learning pathway.
type LearningStep struct {
	SkillToLearn   string   `json:"skill_to_learn"`
	Recommendation string   `json:"recommendation"`
	Resources      []string `json:"resources"`
}

// CareerMatch suggests an alternative career and why it fits.
type CareerMatch struct {
	CareerTitle string `json:"career_title"`
	MatchReason string `json:"match_reason"`
}

// AnalysisResult is the structured outcome of a profile analysis.
type AnalysisResult struct {
	SkillGapAnalysis   SkillGap       `json:"skill_gap_analysis"`
	LearningPathway    []LearningStep `json:"learning_pathway"`
	AlternativeCareers []CareerMatch  `json:"alternative_careers"`
	Summary            string         `json:"summary"`
}

// MarketPulse is the structured outcome of a job-market analysis.
type MarketPulse struct {
	MarketSummary   string   `json:"market_summary"`
	TrendingSkills  []string `json:"trending_skills"`
	SalaryRange     string   `json:"salary_range"`
	TopIndustries   []string `json:"top_industries"`
	MarketSentiment string   `json:"market_sentiment"`
}
