package domain_test

import (
	"testing"

	"go-outreach-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestProgressDerive(t *testing.T) {
	cases := []struct {
		name     string
		progress domain.OnboardingProgress
		step     int
		complete bool
	}{
		{"nothing done", domain.OnboardingProgress{}, 1, false},
		{"uploaded only", domain.OnboardingProgress{ResumeUploaded: true}, 2, false},
		{"uploaded and parsed", domain.OnboardingProgress{ResumeUploaded: true, ResumeParsed: true}, 3, false},
		{"context done", domain.OnboardingProgress{ResumeUploaded: true, ResumeParsed: true, ContextDone: true}, 4, true},
		{"smtp does not gate completion", domain.OnboardingProgress{ResumeUploaded: true, ResumeParsed: true, ContextDone: true, SMTPDone: false}, 4, true},
		// Inconsistent reads still resolve top to bottom.
		{"parsed without upload", domain.OnboardingProgress{ResumeParsed: true, ContextDone: true}, 1, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.progress
			p.Derive()
			assert.Equal(t, tc.step, p.CurrentStep)
			assert.Equal(t, tc.complete, p.SetupComplete)
		})
	}
}
