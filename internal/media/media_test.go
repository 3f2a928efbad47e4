package media

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"edunity/internal/models"
)

func image(name string) File {
	return File{Name: name, ContentType: "image/jpeg", Data: []byte("jpg")}
}

func video(name string, size int, duration time.Duration) File {
	return File{Name: name, ContentType: "video/mp4", Data: bytes.Repeat([]byte{0xAB}, size), Duration: duration}
}

func TestProcessCreate(t *testing.T) {
	tests := []struct {
		name    string
		files   []File
		wantErr error
		wantLen int
	}{
		{
			name:    "images and videos may mix",
			files:   []File{image("a.jpg"), video("b.mp4", 10, 5*time.Second)},
			wantLen: 2,
		},
		{
			name:    "four files rejected",
			files:   []File{image("1"), image("2"), image("3"), image("4")},
			wantErr: ErrTooManyFiles,
		},
		{
			name:    "oversized video rejected",
			files:   []File{video("big.mp4", MaxVideoBytes+1, 5*time.Second)},
			wantErr: ErrVideoTooLarge,
		},
		{
			name:    "unsupported type rejects whole batch",
			files:   []File{image("a.jpg"), {Name: "doc.pdf", ContentType: "application/pdf"}},
			wantErr: ErrUnsupportedType,
		},
		{
			name:    "empty selection ok",
			files:   nil,
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ProcessCreate(tt.files)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, out, "a rejected selection must yield no attachments")
				return
			}
			assert.NoError(t, err)
			assert.Len(t, out, tt.wantLen)
		})
	}
}

func TestProcessCreateAssignsKinds(t *testing.T) {
	out, err := ProcessCreate([]File{image("a.jpg"), video("b.mp4", 8, 0)})
	assert.NoError(t, err)
	assert.Equal(t, models.MediaImage, out[0].Kind)
	assert.Equal(t, models.MediaVideo, out[1].Kind)
}

func TestProcessEdit(t *testing.T) {
	tests := []struct {
		name    string
		files   []File
		wantErr error
		wantLen int
	}{
		{
			name:    "images only ok",
			files:   []File{image("a.jpg"), image("b.jpg")},
			wantLen: 2,
		},
		{
			name:    "mixed media rejected on edit",
			files:   []File{image("a.jpg"), video("b.mp4", 8, 5*time.Second)},
			wantErr: ErrMixedMedia,
		},
		{
			name:    "video over duration cap rejected",
			files:   []File{video("long.mp4", 8, 31*time.Second)},
			wantErr: ErrVideoTooLong,
		},
		{
			name:    "video at duration cap ok",
			files:   []File{video("ok.mp4", 8, 30*time.Second)},
			wantLen: 1,
		},
		{
			name:    "too many files",
			files:   []File{image("1"), image("2"), image("3"), image("4")},
			wantErr: ErrTooManyFiles,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refs, err := ProcessEdit(tt.files)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, refs)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, refs, tt.wantLen)
			for _, r := range refs {
				assert.True(t, r.Structured(), "edit output must be canonical envelopes")
			}
		})
	}
}

func TestDataURL(t *testing.T) {
	f := File{ContentType: "image/png", Data: []byte{1, 2, 3}}
	assert.Equal(t, "data:image/png;base64,AQID", DataURL(f))
}
