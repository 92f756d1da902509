package ai

import (
	"context"
	"fmt"
	"strings"
)

// Client is the interface for AI providers.
type Client interface {
	// ParseResume extracts structured profile data from raw resume text and
	// returns it as a JSON object string.
	ParseResume(ctx context.Context, resumeText string) (string, error)

	// GenerateEmail writes a personalized outreach email for one company.
	GenerateEmail(ctx context.Context, in GenerateEmailInput) (*EmailDraft, error)

	// ReviseEmail rewrites an existing draft following an instruction and
	// returns the updated subject and body.
	ReviseEmail(ctx context.Context, subject, body, instruction string) (*EmailDraft, error)

	// Chat answers a free-form question about a draft without rewriting it.
	Chat(ctx context.Context, in ChatInput) (string, error)
}

type GenerateEmailInput struct {
	CompanyName     string
	CompanyWebsite  string
	CompanyLocation string
	PositionTitle   string
	JobType         string
	SalaryRange     string
	Keywords        []string
	CustomPrompt    string
	Purpose         string
	TargetRoles     []string
	PitchTone       string
	ResumeJSON      string
}

type EmailDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type ChatTurn struct {
	Role    string
	Content string
}

type ChatInput struct {
	Subject string
	Body    string
	History []ChatTurn
	Message string
}

func buildParsePrompt(resumeText string) string {
	return fmt.Sprintf(`You are an expert resume parser. Analyze the following resume and extract structured information.

Resume Text:
%s

Extract and return the following information in JSON format:
{
    "name": "<full name or empty string>",
    "links": {"LinkedIn": "<url>", "GitHub": "<url>"},
    "skills": ["skill1", "skill2"],
    "experience_years": "<number or empty string>",
    "education": ["degree1", "degree2"],
    "job_titles": ["title1", "title2"],
    "achievements": ["achievement1", "achievement2"]
}

Rules:
- Extract all technical and soft skills mentioned
- Calculate total years of experience if possible
- List all degrees and certifications
- List all job titles held
- Extract key achievements and accomplishments
- Return only valid JSON`, resumeText)
}

func buildGeneratePrompt(in GenerateEmailInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a personalized outreach email.\n\n")
	fmt.Fprintf(&b, "Company: %s\n", in.CompanyName)
	if in.CompanyWebsite != "" {
		fmt.Fprintf(&b, "Website: %s\n", in.CompanyWebsite)
	}
	if in.CompanyLocation != "" {
		fmt.Fprintf(&b, "Location: %s\n", in.CompanyLocation)
	}
	if in.PositionTitle != "" {
		fmt.Fprintf(&b, "Position: %s\n", in.PositionTitle)
	}
	if in.JobType != "" {
		fmt.Fprintf(&b, "Job Type: %s\n", in.JobType)
	}
	if in.SalaryRange != "" {
		fmt.Fprintf(&b, "Salary Range: %s\n", in.SalaryRange)
	}
	if len(in.Keywords) > 0 {
		fmt.Fprintf(&b, "Keywords to emphasize: %s\n", strings.Join(in.Keywords, ", "))
	}

	fmt.Fprintf(&b, "\nCandidate Profile:\n")
	if in.Purpose != "" {
		fmt.Fprintf(&b, "- Purpose: %s\n", in.Purpose)
	}
	if len(in.TargetRoles) > 0 {
		fmt.Fprintf(&b, "- Target Roles: %s\n", strings.Join(in.TargetRoles, ", "))
	}
	if in.ResumeJSON != "" {
		fmt.Fprintf(&b, "- Resume Data (JSON): %s\n", in.ResumeJSON)
	}

	tone := in.PitchTone
	if tone == "" {
		tone = "professional"
	}
	fmt.Fprintf(&b, "\nTone: %s\n", tone)
	if in.CustomPrompt != "" {
		fmt.Fprintf(&b, "\nAdditional instructions: %s\n", in.CustomPrompt)
	}

	b.WriteString(`
Write a compelling email with:
1. Engaging subject line
2. Personalized body showing research about the company
3. Clear value proposition
4. Professional but friendly tone

Return as JSON: {"subject": "...", "body": "..."}`)
	return b.String()
}

func buildRevisePrompt(subject, body, instruction string) string {
	return fmt.Sprintf(`%s

Current Subject: %s
Current Body:
%s

Return the updated email in JSON format:
{
    "subject": "updated subject (only if significantly changed)",
    "body": "updated body text"
}`, instruction, subject, body)
}

func buildChatSystemPrompt(subject, body string) string {
	return fmt.Sprintf(`You are an assistant helping a user review and improve an outreach email draft.

Current Subject: %s
Current Body:
%s

Answer the user's questions about the draft. Be concise and concrete. Do not return JSON; reply in plain text.`, subject, body)
}
