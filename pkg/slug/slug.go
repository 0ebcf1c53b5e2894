package slug

import (
	"regexp"
	"strings"
)

var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from the given name.
// Supports Romanian diacritics by transliterating them to ASCII equivalents.
//
// Examples:
//   - "Pizza Delicioasă" → "pizza-delicioasa"
//   - "Mămăligă și Brânză" → "mamaliga-si-branza"
//   - "Hello   World!" → "hello-world"
func Generate(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))

	// Transliterate Romanian diacritics to ASCII. Both the comma-below and
	// legacy cedilla forms of s/t occur in the wild.
	replacer := strings.NewReplacer(
		"ă", "a", "â", "a", "î", "i",
		"ș", "s", "ş", "s",
		"ț", "t", "ţ", "t",
	)
	slug = replacer.Replace(slug)

	// Replace any non-alphanumeric characters with hyphens
	slug = slugRegexp.ReplaceAllString(slug, "-")

	// Trim leading and trailing hyphens
	slug = strings.Trim(slug, "-")

	// Collapse consecutive hyphens into single hyphens
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}

	return slug
}
