package domain

import (
	"context"
	"time"
)

// ============================================================================
// Context Profile
// ============================================================================

// PitchTone adjusts the voice the generator writes in.
type PitchTone string

const (
	ToneProfessional PitchTone = "professional"
	ToneFriendly     PitchTone = "friendly"
	ToneEnthusiastic PitchTone = "enthusiastic"
	ToneFormal       PitchTone = "formal"
)

func (t PitchTone) IsValid() bool {
	switch t {
	case ToneProfessional, ToneFriendly, ToneEnthusiastic, ToneFormal:
		return true
	}
	return false
}

// ContextProfile captures what the user is reaching out for and who they want
// to reach. The multi-valued fields are ordered and duplicate-free.
type ContextProfile struct {
	ID                  string      `json:"id"`
	UserID              string      `json:"user_id"`
	Purpose             string      `json:"purpose"`
	TargetRoles         []string    `json:"target_roles"`
	PreferredIndustries []string    `json:"preferred_industries"`
	PitchTone           PitchTone   `json:"pitch_tone"`
	Keywords            []string    `json:"keywords"`
	CustomMessage       string      `json:"custom_message,omitempty"`
	Geography           []string    `json:"geography"`
	ResumeExtractedText string      `json:"resume_extracted_text,omitempty"`
	ResumeParsedData    ProfileData `json:"resume_parsed_data,omitempty"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

type ContextBuildRequest struct {
	Purpose             string      `json:"purpose" validate:"required"`
	TargetRoles         []string    `json:"target_roles"`
	PreferredIndustries []string    `json:"preferred_industries"`
	PitchTone           PitchTone   `json:"pitch_tone"`
	Keywords            []string    `json:"keywords"`
	CustomMessage       string      `json:"custom_message"`
	Geography           []string    `json:"geography"`
	ResumeExtractedText string      `json:"resume_extracted_text"`
	ResumeParsedData    ProfileData `json:"resume_parsed_data"`
}

// PredefinedTagsResponse lists the static tag catalog offered during context
// setup. No AI call is involved.
type PredefinedTagsResponse struct {
	Purposes   []string `json:"purposes"`
	Roles      []string `json:"roles"`
	Industries []string `json:"industries"`
	Keywords   []string `json:"keywords"`
	Locations  []string `json:"locations"`
}

// ============================================================================
// Predefined Tag Catalog
// ============================================================================

var PurposeOptions = []string{
	"Jobs",
	"Sponsorship",
	"Freelancing",
	"Business Growth",
	"Networking",
	"Customer Acquisition",
	"Partnership",
	"Internship",
}

var CommonTechRoles = []string{
	"Software Engineer",
	"Frontend Developer",
	"Backend Developer",
	"Full Stack Developer",
	"DevOps Engineer",
	"Data Scientist",
	"Machine Learning Engineer",
	"Product Manager",
	"UI/UX Designer",
	"QA Engineer",
	"Mobile Developer",
	"Cloud Architect",
	"Security Engineer",
	"Data Engineer",
	"Site Reliability Engineer",
}

var CommonTechIndustries = []string{
	"Software Development",
	"FinTech",
	"E-commerce",
	"Healthcare Tech",
	"EdTech",
	"Cloud Computing",
	"Artificial Intelligence",
	"Cybersecurity",
	"Gaming",
	"SaaS",
	"Enterprise Software",
	"Mobile Apps",
	"Blockchain",
	"IoT",
	"Data Analytics",
}

var CommonTechKeywords = []string{
	"Python",
	"JavaScript",
	"TypeScript",
	"React",
	"Node.js",
	"Java",
	"C++",
	"Go",
	"Rust",
	"Docker",
	"Kubernetes",
	"AWS",
	"Azure",
	"GCP",
	"PostgreSQL",
	"MongoDB",
	"Redis",
	"FastAPI",
	"Django",
	"Spring Boot",
	"Microservices",
	"REST API",
	"GraphQL",
	"CI/CD",
	"Git",
	"Agile",
	"Machine Learning",
	"Deep Learning",
	"TensorFlow",
	"PyTorch",
}

var CommonLocations = []string{
	"Remote",
	"United States",
	"United Kingdom",
	"Canada",
	"Germany",
	"Netherlands",
	"Singapore",
	"India",
	"Australia",
	"San Francisco Bay Area",
	"New York",
	"London",
	"Berlin",
	"Toronto",
	"Bangalore",
	"Europe",
	"North America",
	"Asia Pacific",
}

// ============================================================================
// Repository Interface
// ============================================================================

// ContextRepository stores one profile per user. Get returns (nil, nil) when
// the profile has not been created yet.
type ContextRepository interface {
	Upsert(ctx context.Context, profile *ContextProfile) (*ContextProfile, error)
	Get(ctx context.Context, userID string) (*ContextProfile, error)
	Delete(ctx context.Context, userID string) error
	UpdateResumeData(ctx context.Context, userID, extractedText string, parsed ProfileData) error
}

// ============================================================================
// Usecase Interface
// ============================================================================

type ContextUsecase interface {
	Save(ctx context.Context, userID string, req *ContextBuildRequest) (*ContextProfile, error)
	Get(ctx context.Context, userID string) (*ContextProfile, error)
	Delete(ctx context.Context, userID string) error
	PredefinedTags() *PredefinedTagsResponse
}
