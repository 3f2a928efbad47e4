// Package media validates and encodes post attachments. One rejected file
// aborts the whole selection, leaving previously accepted state untouched.
package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"edunity/internal/models"
)

// Attachment limits.
const (
	// MaxFilesPerPost caps a single selection.
	MaxFilesPerPost = 3
	// MaxVideoBytes is the video size cap applied on post creation.
	MaxVideoBytes = 30 * 1024 * 1024
	// MaxVideoDuration is the video length cap applied on post edit, where
	// duration is known from the metadata probe.
	MaxVideoDuration = 30 * time.Second
)

// Selection errors.
var (
	ErrTooManyFiles    = errors.New("you can upload a maximum of 3 files")
	ErrUnsupportedType = errors.New("only images and videos are allowed")
	ErrMixedMedia      = errors.New("you can only upload either images or videos, not both")
	ErrVideoTooLarge   = fmt.Errorf("video size should be less than %dMB", MaxVideoBytes/(1024*1024))
	ErrVideoTooLong    = fmt.Errorf("video must be %d seconds or less", int(MaxVideoDuration.Seconds()))
)

// File is one picked file plus the metadata the caller probed from it.
// Duration is zero for images and for videos whose metadata was not probed.
type File struct {
	Name        string
	ContentType string
	Data        []byte
	Duration    time.Duration
}

// Attachment is an accepted file ready for upload.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
	Kind        string
}

// IsVideo reports whether the file is video content.
func (f *File) IsVideo() bool {
	return strings.HasPrefix(f.ContentType, "video/")
}

// IsImage reports whether the file is image content.
func (f *File) IsImage() bool {
	return strings.HasPrefix(f.ContentType, "image/")
}

// ProcessCreate validates a selection for post creation. Images and videos
// may be mixed; videos are capped by size. Any violation rejects the entire
// selection.
func ProcessCreate(files []File) ([]Attachment, error) {
	if len(files) > MaxFilesPerPost {
		return nil, ErrTooManyFiles
	}

	out := make([]Attachment, 0, len(files))
	for _, f := range files {
		switch {
		case f.IsVideo():
			if len(f.Data) > MaxVideoBytes {
				return nil, ErrVideoTooLarge
			}
			out = append(out, Attachment{Name: f.Name, ContentType: f.ContentType, Data: f.Data, Kind: models.MediaVideo})
		case f.IsImage():
			out = append(out, Attachment{Name: f.Name, ContentType: f.ContentType, Data: f.Data, Kind: models.MediaImage})
		default:
			return nil, ErrUnsupportedType
		}
	}
	return out, nil
}

// ProcessEdit validates a replacement selection for post editing and encodes
// it to canonical envelope refs. Edits reject mixed image/video selections
// and cap videos by duration rather than size.
func ProcessEdit(files []File) ([]models.MediaRef, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > MaxFilesPerPost {
		return nil, ErrTooManyFiles
	}

	var hasImages, hasVideos bool
	for _, f := range files {
		switch {
		case f.IsVideo():
			hasVideos = true
		case f.IsImage():
			hasImages = true
		default:
			return nil, ErrUnsupportedType
		}
	}
	if hasImages && hasVideos {
		return nil, ErrMixedMedia
	}
	if hasVideos {
		for _, f := range files {
			if f.Duration > MaxVideoDuration {
				return nil, ErrVideoTooLong
			}
		}
	}

	refs := make([]models.MediaRef, 0, len(files))
	for _, f := range files {
		kind := models.MediaImage
		if f.IsVideo() {
			kind = models.MediaVideo
		}
		refs = append(refs, models.NewMediaEnvelope(DataURL(f), kind, f.ContentType))
	}
	return refs, nil
}

// DataURL encodes a file as an inline base64 data URL.
func DataURL(f File) string {
	return "data:" + f.ContentType + ";base64," + base64.StdEncoding.EncodeToString(f.Data)
}
