package vehicle

import (
	"regexp"
	"strings"
)

var (
	// Old format: three letters and four digits (ABC1234).
	oldPlatePattern = regexp.MustCompile(`^[A-Z]{3}[0-9]{4}$`)
	// Mercosul format: three letters, digit, letter, two digits (ABC1D23).
	mercosulPlatePattern = regexp.MustCompile(`^[A-Z]{3}[0-9][A-Z][0-9]{2}$`)
)

// NormalizePlate strips separators and upper-cases the plate.
func NormalizePlate(plate string) string {
	r := strings.NewReplacer("-", "", " ", "")
	return strings.ToUpper(r.Replace(strings.TrimSpace(plate)))
}

// ValidatePlateFormat reports whether plate is in the old or the Mercosul format,
// optionally hyphenated.
func ValidatePlateFormat(plate string) bool {
	clean := NormalizePlate(plate)
	return oldPlatePattern.MatchString(clean) || mercosulPlatePattern.MatchString(clean)
}

// IsPlateComplete reports whether enough characters were typed to attempt a lookup.
func IsPlateComplete(plate string) bool {
	return len(NormalizePlate(plate)) == 7
}
