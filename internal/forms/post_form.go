package forms

import (
	"strings"

	"edunity/internal/media"
)

// PostForm collects the skill-post creation inputs. A post needs a
// description or at least one media file.
type PostForm struct {
	Description string
	Files       []media.File
}

// Validate checks the form before any network call.
func (f *PostForm) Validate() error {
	if strings.TrimSpace(f.Description) == "" && len(f.Files) == 0 {
		return NewFieldError("description", "please add a description or media")
	}
	return nil
}

// Attachments validates and converts the selected files under the creation
// rules.
func (f *PostForm) Attachments() ([]media.Attachment, error) {
	return media.ProcessCreate(f.Files)
}
