package onboarding

import (
	"net/url"
	"regexp"
	"strings"
)

var bareTokenPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ExtractToken pulls the invite token out of whatever the user pasted.
// Full links are resolved to the path segment right after "invite",
// anything else is accepted as a bare token when it looks like one.
func ExtractToken(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", false
	}
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Path != "" {
		segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
		for i, segment := range segments {
			if segment == "invite" && i+1 < len(segments) {
				candidate := segments[i+1]
				if bareTokenPattern.MatchString(candidate) {
					return candidate, true
				}
				return "", false
			}
		}
	}
	if bareTokenPattern.MatchString(trimmed) {
		return trimmed, true
	}
	return "", false
}
