package forms

import (
	"strings"

	"edunity/internal/api"
	"edunity/internal/models"
	"edunity/internal/session"
)

// Progress form field names.
const (
	FieldTitle         = "title"
	FieldDescription   = "description"
	FieldTutorialName  = "tutorialName"
	FieldProjectName   = "projectName"
	FieldSkillsLearned = "skillsLearned"
	FieldChallenges    = "challenges"
	FieldNextSteps     = "nextSteps"
)

// Template declares which fields a progress entry type shows. Required
// fields are the intersection of the declared set with alwaysRequired.
type Template struct {
	ID     string
	Name   string
	Fields []string
}

// Templates is the fixed set of progress entry templates.
var Templates = []Template{
	{
		ID:     models.TemplateGeneral,
		Name:   "General Progress",
		Fields: []string{FieldTitle, FieldDescription, FieldSkillsLearned},
	},
	{
		ID:     models.TemplateTutorial,
		Name:   "Tutorial Completion",
		Fields: []string{FieldTitle, FieldTutorialName, FieldSkillsLearned, FieldChallenges},
	},
	{
		ID:     models.TemplateProject,
		Name:   "Project Milestone",
		Fields: []string{FieldTitle, FieldProjectName, FieldDescription, FieldSkillsLearned, FieldNextSteps},
	},
}

// alwaysRequired marks fields that become mandatory whenever the active
// template declares them.
var alwaysRequired = map[string]bool{
	FieldTitle:        true,
	FieldDescription:  true,
	FieldTutorialName: true,
	FieldProjectName:  true,
}

var allFields = []string{
	FieldTitle, FieldDescription, FieldTutorialName, FieldProjectName,
	FieldSkillsLearned, FieldChallenges, FieldNextSteps,
}

// TemplateByID looks up a template.
func TemplateByID(id string) (*Template, bool) {
	for i := range Templates {
		if Templates[i].ID == id {
			return &Templates[i], true
		}
	}
	return nil, false
}

// Declares reports whether the template shows the given field.
func (t *Template) Declares(field string) bool {
	for _, f := range t.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// RequiredFields returns the template's mandatory fields.
func (t *Template) RequiredFields() []string {
	var out []string
	for _, f := range t.Fields {
		if alwaysRequired[f] {
			out = append(out, f)
		}
	}
	return out
}

// ProgressForm is the template-driven progress entry form. Switching
// template resets every field value.
type ProgressForm struct {
	template string
	status   string
	values   map[string]string
}

// NewProgressForm creates a form with the default template and status.
func NewProgressForm() *ProgressForm {
	return &ProgressForm{
		template: Templates[0].ID,
		status:   models.StatusNotStarted,
		values:   emptyValues(),
	}
}

func emptyValues() map[string]string {
	m := make(map[string]string, len(allFields))
	for _, f := range allFields {
		m[f] = ""
	}
	return m
}

// Template returns the active template.
func (f *ProgressForm) Template() *Template {
	t, _ := TemplateByID(f.template)
	return t
}

// Status returns the active status.
func (f *ProgressForm) Status() string { return f.status }

// SetTemplate switches the active template, resetting all field values.
func (f *ProgressForm) SetTemplate(id string) error {
	if _, ok := TemplateByID(id); !ok {
		return NewFieldError("templateType", "unknown template: "+id)
	}
	f.template = id
	f.values = emptyValues()
	return nil
}

// SetStatus switches the active status.
func (f *ProgressForm) SetStatus(status string) error {
	if !models.ValidStatus(status) {
		return NewFieldError("status", "unknown status: "+status)
	}
	f.status = status
	return nil
}

// Set assigns one field value.
func (f *ProgressForm) Set(field, value string) error {
	if _, ok := f.values[field]; !ok {
		return NewFieldError(field, "unknown field")
	}
	f.values[field] = value
	return nil
}

// Get returns one field value.
func (f *ProgressForm) Get(field string) string { return f.values[field] }

// Validate blocks submission unless every required field of the active
// template is non-empty after trimming.
func (f *ProgressForm) Validate() error {
	t := f.Template()
	for _, field := range t.RequiredFields() {
		if strings.TrimSpace(f.values[field]) == "" {
			return NewFieldError(field, "please fill in all required fields")
		}
	}
	return nil
}

// BuildRequest assembles the creation payload: session identity, the active
// template and status, and all registered field values (absent fields as
// empty strings).
func (f *ProgressForm) BuildRequest(sess *session.Session) (*api.CreateProgressRequest, error) {
	if !sess.LoggedIn() {
		return nil, NewFieldError("session", "you must be logged in to share progress")
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	req := &api.CreateProgressRequest{
		UserID:           sess.User.ID,
		UserName:         sess.User.Name,
		UserProfileImage: sess.User.ProfileImage,
		TemplateType:     f.template,
		Status:           f.status,
		Title:            f.values[FieldTitle],
		Description:      f.values[FieldDescription],
		TutorialName:     f.values[FieldTutorialName],
		ProjectName:      f.values[FieldProjectName],
		SkillsLearned:    f.values[FieldSkillsLearned],
		Challenges:       f.values[FieldChallenges],
		NextSteps:        f.values[FieldNextSteps],
	}
	if err := ValidateStruct(req); err != nil {
		return nil, err
	}
	return req, nil
}

// Reset restores the form to its initial state.
func (f *ProgressForm) Reset() {
	f.template = Templates[0].ID
	f.status = models.StatusNotStarted
	f.values = emptyValues()
}
