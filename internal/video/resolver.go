package video

import (
	"fmt"
	"net/url"
	"strings"
)

// InvalidReferenceError is returned when a string cannot be parsed as a
// YouTube video reference.
type InvalidReferenceError struct {
	URL string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid YouTube URL format: %q", e.URL)
}

// ResolveVideoID extracts the video ID from the supported YouTube URL
// shapes: youtu.be/<id>, youtube.com/watch?v=<id> and
// youtube.com/embed/<id>. Trailing query parameters and fragments are
// stripped.
func ResolveVideoID(raw string) (string, error) {
	switch {
	case strings.Contains(raw, "youtu.be/"):
		id := after(raw, "youtu.be/")
		if id = trimNoise(id); id != "" {
			return id, nil
		}
	case strings.Contains(raw, "youtube.com/watch"):
		parsed, err := url.Parse(raw)
		if err == nil {
			if id := parsed.Query().Get("v"); id != "" {
				return id, nil
			}
		}
	case strings.Contains(raw, "youtube.com/embed/"):
		id := after(raw, "youtube.com/embed/")
		if id = trimNoise(id); id != "" {
			return id, nil
		}
	}
	return "", &InvalidReferenceError{URL: raw}
}

func after(s, marker string) string {
	idx := strings.Index(s, marker)
	return s[idx+len(marker):]
}

// trimNoise cuts the ID at the first query, fragment or path separator.
func trimNoise(id string) string {
	for _, sep := range []string{"?", "&", "#", "/"} {
		if idx := strings.Index(id, sep); idx >= 0 {
			id = id[:idx]
		}
	}
	return id
}
