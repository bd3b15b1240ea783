package base64

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const dataURLMarker = ";base64,"

var ErrNotDataURL = errors.New("value is not a base64 data url")

// GetContentType returns the media type of a data URL, or empty when the value is not one.
func GetContentType(file string) string {
	start := len("data:")
	end := strings.Index(file, dataURLMarker)

	if end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

// Decode splits a data URL into its media type and payload bytes.
func Decode(file string) (contentType string, data []byte, err error) {
	contentType = GetContentType(file)
	if contentType == "" {
		return "", nil, ErrNotDataURL
	}

	payload := file[strings.Index(file, dataURLMarker)+len(dataURLMarker):]

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode base64 payload: %w", err)
	}

	return contentType, data, nil
}
