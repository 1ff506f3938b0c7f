package usecase

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"portfolio-api/internal/domain"
	"portfolio-api/pkg/llm"
)

const (
	MaxJobTextChars  = 35000
	truncationNotice = "\n\n[Note: JD truncated for length]"
	scoreTemperature = 0.2
)

func systemPrompt(p domain.CandidateProfileDescription) string {
	return fmt.Sprintf(`You are a precise role-fit evaluator for %s. Analyze a job description and rate fit for the target roles.
Be frank but constructive. Prefer evidence from the JD; when uncertain, state assumptions explicitly.
Return only well-formed JSON per the rubric.`, p.Name)
}

const rubricInstructions = `Return a JSON object with:
- score: 0-100 (integer)
- verdict: "yes" | "borderline" | "no"
- rationale: 1-2 sentences explaining the score
- strengths: array of 3-6 concise bullets grounded in the JD and candidate profile
- gaps: array of 3-6 concise bullets with risky mismatches or missing requirements
- resume_bullets: array of 3-6 impact bullets tailored to this JD (include metrics from the profile when relevant)
- cover_letter_opener: 2-3 sentences tailored to this JD
- tags: array of 3-10 keywords (role, stage, stack, industry)

Scoring weights:
- Role/title alignment (25)
- Seniority & scope (15)
- Company stage & size (10)
- Industry/domain (10)
- Tech stack & architecture (10)
- Leadership & cross-functional impact (10)
- Location/onsite expectations (10)
- Bonus: AI/LLM, governance, multi-tenant, growth (10)

Be specific; avoid generic phrasing. Keep bullets short and scan-friendly.`

// clipJobText caps text at MaxJobTextChars characters and appends a notice when it cuts.
func clipJobText(text string) string {
	if utf8.RuneCountInString(text) <= MaxJobTextChars {
		return text
	}
	return string([]rune(text)[:MaxJobTextChars]) + truncationNotice
}

func userPrompt(p domain.CandidateProfileDescription, jobText string) string {
	var b strings.Builder
	b.WriteString("CANDIDATE PROFILE\n")
	fmt.Fprintf(&b, "- Target titles: %s\n", strings.Join(p.TargetTitles, ", "))
	fmt.Fprintf(&b, "- Preferred locations: %s\n", strings.Join(p.Locations, ", "))
	fmt.Fprintf(&b, "- Industries: %s\n", strings.Join(p.Industries, ", "))
	fmt.Fprintf(&b, "- Preferred stage/size: %s\n", strings.Join(p.StagePreferences, ", "))
	b.WriteString("- Signature strengths:\n")
	fmt.Fprintf(&b, "  - %s\n", strings.Join(p.Strengths, "\n  - "))
	b.WriteString("\nJOB DESCRIPTION (raw text):\n")
	b.WriteString(clipJobText(jobText))
	return strings.TrimSpace(b.String())
}

// buildScoreRequest orders the messages as system role, user profile plus JD, system rubric.
func buildScoreRequest(p domain.CandidateProfileDescription, jobText string) llm.Request {
	return llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: systemPrompt(p)},
			{Role: llm.RoleUser, Content: userPrompt(p, jobText)},
			{Role: llm.RoleSystem, Content: rubricInstructions},
		},
		Temperature: scoreTemperature,
		JSON:        true,
	}
}
