package models

import (
	"encoding/json"
	"strings"
)

// Media kinds carried by the structured envelope.
const (
	MediaImage = "image"
	MediaVideo = "video"
)

// mediaEnvelope is the structured wire form of a media reference: a data URL
// plus explicit type metadata so renderers never have to sniff the URL.
type mediaEnvelope struct {
	DataURL  string `json:"dataUrl"`
	Type     string `json:"type"`
	FileType string `json:"fileType,omitempty"`
}

// MediaRef is one entry of a post's mediaUrls list. Two encodings coexist in
// stored data: a plain URL string and a JSON-encoded envelope. Reads accept
// both; writes always emit the envelope, which is the canonical form.
type MediaRef struct {
	// URL is the raw or data URL of the media content.
	URL string
	// Kind is MediaImage or MediaVideo.
	Kind string
	// FileType is the MIME type when known (envelope form only).
	FileType string
	// structured marks refs decoded from (or destined for) the envelope form.
	structured bool
}

// NewPlainMediaRef builds a ref from a bare URL string, inferring the kind the
// same way legacy renderers did: by substring sniffing.
func NewPlainMediaRef(url string) MediaRef {
	return MediaRef{URL: url, Kind: sniffKind(url)}
}

// NewMediaEnvelope builds a canonical structured ref.
func NewMediaEnvelope(dataURL, kind, fileType string) MediaRef {
	return MediaRef{URL: dataURL, Kind: kind, FileType: fileType, structured: true}
}

// IsVideo reports whether the ref points at video content.
func (m MediaRef) IsVideo() bool { return m.Kind == MediaVideo }

// Structured reports whether the ref was decoded from the envelope form.
func (m MediaRef) Structured() bool { return m.structured }

// UnmarshalJSON decodes one mediaUrls entry. The entry is always a JSON
// string; its content is attempted as an envelope first and falls back to a
// plain URL with sniffed type.
func (m *MediaRef) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var env mediaEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err == nil && env.DataURL != "" {
		m.URL = env.DataURL
		m.Kind = env.Type
		if m.Kind != MediaVideo {
			m.Kind = MediaImage
		}
		m.FileType = env.FileType
		m.structured = true
		return nil
	}

	m.URL = raw
	m.Kind = sniffKind(raw)
	m.FileType = ""
	m.structured = false
	return nil
}

// MarshalJSON always writes the structured envelope, standardizing legacy
// plain-string refs on the way out.
func (m MediaRef) MarshalJSON() ([]byte, error) {
	env := mediaEnvelope{DataURL: m.URL, Type: m.Kind, FileType: m.FileType}
	if env.Type == "" {
		env.Type = sniffKind(m.URL)
	}
	inner, err := json.Marshal(env)
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(inner))
}

func sniffKind(url string) string {
	if strings.Contains(url, "data:video/") || strings.Contains(url, "video") {
		return MediaVideo
	}
	return MediaImage
}
