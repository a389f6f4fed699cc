package plan

import (
	"regexp"
	"strings"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_\-]`)

// SafeFilename converts a meal title to a filesystem-safe token: spaces
// become underscores and everything outside ASCII letters, digits,
// underscore, and hyphen is removed. Distinct titles can collapse to the
// same token; the primary assets avoid that by being keyed on the
// canonical slot instead.
func SafeFilename(title string) string {
	name := strings.TrimSpace(title)
	name = strings.ReplaceAll(name, " ", "_")
	return unsafeFilenameChars.ReplaceAllString(name, "")
}
