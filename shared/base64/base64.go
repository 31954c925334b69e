// Package base64 inspects data URIs ("data:image/png;base64,...") submitted
// in JSON bodies in place of multipart files.
package base64

import (
	stdbase64 "encoding/base64"
	"strings"
)

const (
	scheme = "data:"
	marker = ";base64"
)

func split(dataURI string) (header, payload string, ok bool) {
	rest, ok := strings.CutPrefix(dataURI, scheme)
	if !ok {
		return "", "", false
	}

	header, payload, ok = strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(header, marker) {
		return "", "", false
	}

	return strings.TrimSuffix(header, marker), payload, true
}

// GetContentType returns the lowercased media type without parameters, or ""
// when dataURI is not a base64 data URI.
func GetContentType(dataURI string) string {
	header, _, ok := split(dataURI)
	if !ok {
		return ""
	}

	mediaType, _, _ := strings.Cut(header, ";")

	return strings.ToLower(strings.TrimSpace(mediaType))
}

// DecodedSize is the byte size of the payload once decoded, or -1 when dataURI
// is not a base64 data URI.
func DecodedSize(dataURI string) int {
	_, payload, ok := split(dataURI)
	if !ok {
		return -1
	}

	padding := len(payload) - len(strings.TrimRight(payload, "="))

	return stdbase64.StdEncoding.DecodedLen(len(payload)) - padding
}
