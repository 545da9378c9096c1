package blogservice

import "regexp"

// (?s) so the body match crosses newlines, multiline script bodies included.
var scriptTagPattern = regexp.MustCompile(`(?is)<\s*script[^>]*>(.*?)<\s*/\s*script\s*>`)

// sanitizeContent strips script tags from the stored rich-text content.
func sanitizeContent(content string) string {
	return scriptTagPattern.ReplaceAllString(content, "")
}
