package valueobjects

import "fmt"

// MediaType represents the kind of media a memory holds
type MediaType string

const (
	MediaText  MediaType = "text"
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
	MediaAudio MediaType = "audio"
)

// ParseMediaType validates and converts a raw string into a MediaType
func ParseMediaType(s string) (MediaType, error) {
	mt := MediaType(s)
	if !mt.IsValid() {
		return "", fmt.Errorf("invalid media type %q", s)
	}
	return mt, nil
}

// IsValid reports whether the media type is one of the four known kinds
func (m MediaType) IsValid() bool {
	switch m {
	case MediaText, MediaImage, MediaVideo, MediaAudio:
		return true
	}
	return false
}

// UsesMediaURL reports whether memories of this type carry a media data URI.
// Text memories carry free-form content instead.
func (m MediaType) UsesMediaURL() bool {
	return m != MediaText
}

// String returns the string representation of the media type
func (m MediaType) String() string {
	return string(m)
}
