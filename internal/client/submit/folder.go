package submit

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxNameLen caps the sanitized applicant name inside the folder path.
const maxNameLen = 50

// BuildFolderPath computes the deterministic destination folder for an
// applicant's finalized files:
//
//	{category}/Period-{year}/{studentId}-{sanitizedName}
//
// The same applicant always maps to the same path, so repeated submit
// attempts land files in one place.
func BuildFolderPath(category string, year int, studentID, name string) string {
	segments := []string{
		category,
		fmt.Sprintf("Period-%d", year),
		studentID + "-" + SanitizeName(name),
	}
	return strings.Join(segments, "/")
}

// SanitizeName strips non-alphanumeric characters, collapses whitespace runs
// into single hyphens, and truncates to a fixed length, yielding a
// filesystem- and human-friendly segment.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	s := strings.Join(strings.Fields(b.String()), "-")
	if utf8.RuneCountInString(s) > maxNameLen {
		// Truncate on runes so a multi-byte letter is never split.
		s = string([]rune(s)[:maxNameLen])
	}
	return s
}
