package registration

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// The national formats live behind named patterns so they can be swapped
// without touching any call site.
var (
	// NationalIDPattern: 1 or 2 uppercase letters followed by 6 to 8 digits,
	// nothing else. Matched against the uppercased input.
	NationalIDPattern = regexp.MustCompile(`^[A-Z]{1,2}[0-9]{6,8}$`)

	// PhonePattern: optional country prefix then exactly 8 digits. Matched
	// after stripping all whitespace; dashes and dots are not accepted.
	PhonePattern = regexp.MustCompile(`^(\+226|00226)?[0-9]{8}$`)
)

const (
	MinAge = 16
	MaxAge = 80
)

// ValidName reports whether s is a plausible person name: after removing
// spaces and hyphens, at least 2 characters remain and every one of them is a
// letter. Unicode letters are accepted so accented names pass; any digit
// anywhere rejects.
func ValidName(s string) bool {
	stripped := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, s)
	if utf8.RuneCountInString(stripped) < 2 {
		return false
	}
	for _, r := range stripped {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// ValidNationalID reports whether id matches the national ID format,
// case-insensitively.
func ValidNationalID(id string) bool {
	return NationalIDPattern.MatchString(strings.ToUpper(strings.TrimSpace(id)))
}

// ValidPhone reports whether phone matches the national numbering scheme.
// Internal whitespace is stripped before matching, so "+226 70123456" passes.
func ValidPhone(phone string) bool {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, phone)
	return PhonePattern.MatchString(stripped)
}

// ValidAge reports whether age falls in the accepted inclusive range.
func ValidAge(age int) bool {
	return age >= MinAge && age <= MaxAge
}

// Validate runs every field check and returns the complete list of
// human-readable messages. An empty result means the registrant may be
// submitted to the store; no partial submission is ever accepted.
func Validate(r Registrant) []string {
	var msgs []string

	if !ValidName(r.LastName) {
		msgs = append(msgs, "last name must contain only letters (minimum 2 characters)")
	}
	if !ValidName(r.FirstName) {
		msgs = append(msgs, "first name must contain only letters (minimum 2 characters)")
	}
	if !ValidNationalID(r.NationalID) {
		msgs = append(msgs, "invalid national ID format (e.g. B1234567)")
	}
	if !ValidPhone(r.Phone) {
		msgs = append(msgs, "invalid phone format (e.g. +226 70123456 or 70123456)")
	}
	if strings.TrimSpace(r.Organization) == "" {
		msgs = append(msgs, "organization is required")
	}
	if strings.TrimSpace(r.PreferredPeriod) == "" {
		msgs = append(msgs, "preferred period is required")
	}
	switch r.Sex {
	case SexMale, SexFemale:
	default:
		msgs = append(msgs, "sex must be one of Male, Female")
	}
	if !ValidAge(r.Age) {
		msgs = append(msgs, "age must be between 16 and 80")
	}
	switch r.Level {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
	default:
		msgs = append(msgs, "level must be one of Beginner, Intermediate, Advanced")
	}
	switch r.AttendanceMode {
	case AttendanceOnSite, AttendanceOnline, AttendanceHybrid:
	default:
		msgs = append(msgs, "attendance mode must be one of On-site, Online, Hybrid")
	}

	return msgs
}
