package usecase_test

import (
	"context"
	"testing"

	"go-outreach-backend/internal/domain"
	"go-outreach-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newEditorFixture(parsed domain.ProfileData) (*MockResumeRepo, *MockContextRepo, domain.ProfileEditorUsecase) {
	resumeRepo := new(MockResumeRepo)
	contextRepo := new(MockContextRepo)
	resumeRepo.On("GetByID", mock.Anything, "user-1", "res-1").
		Return(&domain.ResumeRecord{ID: "res-1", UserID: "user-1", ParsedData: parsed}, nil)
	return resumeRepo, contextRepo, usecase.NewProfileEditorUsecase(resumeRepo, contextRepo, noopActivity{})
}

func TestProfileEditorSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Should open with the stored mapping rendered as text", func(t *testing.T) {
		_, _, uc := newEditorFixture(domain.ProfileData{"name": domain.StringValue("Ada")})

		view, err := uc.Open(ctx, "user-1", "res-1")
		assert.NoError(t, err)
		assert.True(t, view.Valid)
		assert.False(t, view.Dirty)
		assert.Contains(t, view.RawText, "Ada")
	})

	t.Run("Should reject a resume that does not exist", func(t *testing.T) {
		resumeRepo := new(MockResumeRepo)
		resumeRepo.On("GetByID", mock.Anything, "user-1", "missing").Return(nil, nil)
		uc := usecase.NewProfileEditorUsecase(resumeRepo, new(MockContextRepo), noopActivity{})

		_, err := uc.Open(ctx, "user-1", "missing")
		assert.Error(t, err)
	})

	t.Run("Should keep the last valid mapping across invalid text", func(t *testing.T) {
		_, _, uc := newEditorFixture(domain.ProfileData{"name": domain.StringValue("Ada")})

		_, err := uc.Open(ctx, "user-1", "res-1")
		assert.NoError(t, err)

		view, err := uc.SetRawText(ctx, "user-1", "res-1", `{"name": "Gra`)
		assert.NoError(t, err)
		assert.False(t, view.Valid)
		assert.Equal(t, `{"name": "Gra`, view.RawText)
		assert.Equal(t, domain.StringValue("Ada"), view.Data["name"])
	})

	t.Run("Should normalize field names and ignore duplicates", func(t *testing.T) {
		_, _, uc := newEditorFixture(domain.ProfileData{})

		view, err := uc.AddField(ctx, "user-1", "res-1", "  Phone   Number ")
		assert.NoError(t, err)
		assert.Contains(t, view.Data, "phone_number")
		assert.True(t, view.Dirty)

		view, err = uc.AddField(ctx, "user-1", "res-1", "phone_number")
		assert.NoError(t, err)
		assert.Len(t, view.Data, 1)
	})

	t.Run("Should coerce a scalar into an array on item add", func(t *testing.T) {
		_, _, uc := newEditorFixture(domain.ProfileData{"skills": domain.StringValue("Go")})

		view, err := uc.AddArrayItem(ctx, "user-1", "res-1", "skills", "SQL")
		assert.NoError(t, err)
		assert.Equal(t, domain.ListValue("SQL"), view.Data["skills"])
	})

	t.Run("Should persist the last valid mapping on save", func(t *testing.T) {
		resumeRepo, contextRepo, uc := newEditorFixture(domain.ProfileData{"name": domain.StringValue("Ada")})

		_, err := uc.SetRawText(ctx, "user-1", "res-1", `{"name": "Grace"}`)
		assert.NoError(t, err)
		_, err = uc.SetRawText(ctx, "user-1", "res-1", `{"name": broken`)
		assert.NoError(t, err)

		resumeRepo.On("SaveParsedData", mock.Anything, "user-1", "res-1",
			mock.MatchedBy(func(d domain.ProfileData) bool {
				return d["name"].Kind == domain.FieldString && d["name"].Str == "Grace"
			})).Return(nil)
		contextRepo.On("UpdateResumeData", mock.Anything, "user-1", "", mock.Anything).Return(nil)

		view, err := uc.Save(ctx, "user-1", "res-1")
		assert.NoError(t, err)
		assert.False(t, view.Dirty)
		resumeRepo.AssertExpectations(t)
	})
}
