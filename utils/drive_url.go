package utils

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var driveFilePathRegex = regexp.MustCompile(`^/file/d/([A-Za-z0-9_-]+)`)

// DriveImageURL builds the public URL stored for a Drive file
func DriveImageURL(fileID string) string {
	return fmt.Sprintf("https://drive.google.com/uc?id=%s", fileID)
}

// DriveFileIDFromURL extracts the Drive file id from an image URI.
// Supported forms:
//
//	https://drive.google.com/uc?id=FILE_ID
//	https://drive.google.com/open?id=FILE_ID
//	https://drive.google.com/file/d/FILE_ID/view
//
// ok is false for any other URI.
func DriveFileIDFromURL(raw string) (fileID string, ok bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	if !strings.EqualFold(u.Host, "drive.google.com") {
		return "", false
	}

	if id := u.Query().Get("id"); id != "" {
		return id, true
	}

	matches := driveFilePathRegex.FindStringSubmatch(u.Path)
	if len(matches) == 2 {
		return matches[1], true
	}
	return "", false
}
