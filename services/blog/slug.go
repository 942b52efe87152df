package blog

import (
	"regexp"
	"strings"
)

var (
	slugInvalid  = regexp.MustCompile(`[^a-z0-9가-힣]+`)
	slugTrimDash = regexp.MustCompile(`^-+|-+$`)
)

// Slugify derives a URL slug from a post title. Korean characters are kept;
// everything else outside [a-z0-9] collapses into single dashes.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugInvalid.ReplaceAllString(slug, "-")
	slug = slugTrimDash.ReplaceAllString(slug, "")
	if runes := []rune(slug); len(runes) > 80 {
		slug = strings.Trim(string(runes[:80]), "-")
	}
	return slug
}
