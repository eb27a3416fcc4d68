package platform

import (
	"strings"

	"github.com/ytget/yt-autofix/internal/model"
)

// Accepted scheme prefix; https is covered by it
const HTTPSchemePrefix = "http"

// CleanURL trims whitespace and stray leading slashes left by copy-paste
func CleanURL(raw string) string {
	return strings.TrimLeft(strings.TrimSpace(raw), "/")
}

// ValidateURL cleans raw and returns it, or an InputError when it does not
// start with an http scheme. It never touches the network.
func ValidateURL(raw string) (string, error) {
	cleaned := CleanURL(raw)
	if cleaned == "" {
		return "", &model.InputError{Input: raw, Reason: "empty URL"}
	}
	if !strings.HasPrefix(cleaned, HTTPSchemePrefix) {
		return "", &model.InputError{Input: raw, Reason: "URL must start with http:// or https://"}
	}
	return cleaned, nil
}
