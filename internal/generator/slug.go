package generator

import "strings"

var slugReplacer = strings.NewReplacer(" ", "-", "/", "-", "&", "and")

// Slugify lowercases name, turns spaces and slashes into hyphens, spells out
// ampersands and appends "-"+suffix. The result is not guaranteed unique.
func Slugify(name, suffix string) string {
	return slugReplacer.Replace(strings.ToLower(name)) + "-" + suffix
}
