package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"edunity/internal/models"
	"edunity/internal/session"
)

func testSession() *session.Session {
	return session.New(models.User{ID: "u1", Name: "Amina"}, "token")
}

func TestProgressFormDefaults(t *testing.T) {
	f := NewProgressForm()

	assert.Equal(t, models.TemplateGeneral, f.Template().ID)
	assert.Equal(t, models.StatusNotStarted, f.Status())
}

func TestTemplateFieldSets(t *testing.T) {
	tests := []struct {
		id           string
		wantFields   []string
		wantRequired []string
	}{
		{
			id:           models.TemplateGeneral,
			wantFields:   []string{FieldTitle, FieldDescription, FieldSkillsLearned},
			wantRequired: []string{FieldTitle, FieldDescription},
		},
		{
			id:           models.TemplateTutorial,
			wantFields:   []string{FieldTitle, FieldTutorialName, FieldSkillsLearned, FieldChallenges},
			wantRequired: []string{FieldTitle, FieldTutorialName},
		},
		{
			id:           models.TemplateProject,
			wantFields:   []string{FieldTitle, FieldProjectName, FieldDescription, FieldSkillsLearned, FieldNextSteps},
			wantRequired: []string{FieldTitle, FieldProjectName, FieldDescription},
		},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			tmpl, ok := TemplateByID(tt.id)
			assert.True(t, ok)
			assert.Equal(t, tt.wantFields, tmpl.Fields)
			assert.Equal(t, tt.wantRequired, tmpl.RequiredFields())
		})
	}
}

func TestSetTemplateResetsValues(t *testing.T) {
	f := NewProgressForm()
	assert.NoError(t, f.Set(FieldTitle, "Learning Go"))
	assert.NoError(t, f.Set(FieldDescription, "Week one"))

	assert.NoError(t, f.SetTemplate(models.TemplateTutorial))

	assert.Equal(t, "", f.Get(FieldTitle))
	assert.Equal(t, "", f.Get(FieldDescription))
}

func TestSetTemplateUnknownRejected(t *testing.T) {
	f := NewProgressForm()
	assert.NoError(t, f.Set(FieldTitle, "kept"))

	err := f.SetTemplate("weekly")
	assert.Error(t, err)
	assert.Equal(t, "kept", f.Get(FieldTitle), "a rejected switch must not reset values")
}

func TestProgressFormValidate(t *testing.T) {
	f := NewProgressForm()
	assert.NoError(t, f.SetTemplate(models.TemplateTutorial))
	assert.NoError(t, f.Set(FieldTitle, "Finished the tour"))

	// tutorialName is still missing.
	err := f.Validate()
	assert.Error(t, err)
	fieldErr, ok := err.(*FieldError)
	assert.True(t, ok)
	assert.Equal(t, FieldTutorialName, fieldErr.Field)

	// Whitespace does not satisfy a required field.
	assert.NoError(t, f.Set(FieldTutorialName, "   "))
	assert.Error(t, f.Validate())

	assert.NoError(t, f.Set(FieldTutorialName, "A Tour of Go"))
	assert.NoError(t, f.Validate())
}

func TestProgressFormBuildRequest(t *testing.T) {
	f := NewProgressForm()
	assert.NoError(t, f.SetTemplate(models.TemplateTutorial))
	assert.NoError(t, f.SetStatus(models.StatusCompleted))
	assert.NoError(t, f.Set(FieldTitle, "Finished the tour"))
	assert.NoError(t, f.Set(FieldTutorialName, "A Tour of Go"))
	assert.NoError(t, f.Set(FieldSkillsLearned, "goroutines, channels"))

	req, err := f.BuildRequest(testSession())
	assert.NoError(t, err)
	assert.Equal(t, "u1", req.UserID)
	assert.Equal(t, models.TemplateTutorial, req.TemplateType)
	assert.Equal(t, models.StatusCompleted, req.Status)
	assert.Equal(t, "Finished the tour", req.Title)
	assert.Equal(t, "A Tour of Go", req.TutorialName)
	assert.Equal(t, "goroutines, channels", req.SkillsLearned)

	// Fields the tutorial template never declares still travel, empty.
	assert.Equal(t, "", req.Description)
	assert.Equal(t, "", req.ProjectName)
	assert.Equal(t, "", req.NextSteps)
}

func TestProgressFormBuildRequestRequiresLogin(t *testing.T) {
	f := NewProgressForm()
	assert.NoError(t, f.Set(FieldTitle, "t"))
	assert.NoError(t, f.Set(FieldDescription, "d"))

	_, err := f.BuildRequest(session.Anonymous())
	assert.Error(t, err)
}

func TestSetStatusRejectsUnknown(t *testing.T) {
	f := NewProgressForm()
	assert.Error(t, f.SetStatus("paused"))
	assert.Equal(t, models.StatusNotStarted, f.Status())
}

func TestProgressFormReset(t *testing.T) {
	f := NewProgressForm()
	assert.NoError(t, f.SetTemplate(models.TemplateProject))
	assert.NoError(t, f.SetStatus(models.StatusInProgress))
	assert.NoError(t, f.Set(FieldTitle, "x"))

	f.Reset()

	assert.Equal(t, models.TemplateGeneral, f.Template().ID)
	assert.Equal(t, models.StatusNotStarted, f.Status())
	assert.Equal(t, "", f.Get(FieldTitle))
}
