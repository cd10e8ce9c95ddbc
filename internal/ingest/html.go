package ingest

import (
	"html"
	"regexp"
	"strings"
)

// Pre-compiled regular expressions for HTML stripping performance.
var (
	htmlComments   = regexp.MustCompile(`(?s)<!--.*?-->`)
	openBlockTags  = regexp.MustCompile(`(?i)<(p|div|h[1-6]|li|tr|blockquote|pre|table|aside)[^>]*>`)
	closeBlockTags = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|tr|blockquote|pre|table|aside)>`)
	brTags         = regexp.MustCompile(`(?i)<br\s*/?>`)
	hrTags         = regexp.MustCompile(`(?i)<hr\s*/?>`)
	allTags        = regexp.MustCompile(`<[^>]+>`)
	multiSpaces    = regexp.MustCompile(`[ \t]+`)
)

// stripHTML converts a Discourse cooked-content fragment into plain text.
// Cooked content is rendered HTML; stored documents must be plain text so
// markup never leaks into keyword matching or prompt excerpts.
func stripHTML(content string) string {
	content = htmlComments.ReplaceAllString(content, "")

	// Block boundaries become line breaks so paragraphs stay separated.
	content = openBlockTags.ReplaceAllString(content, "\n")
	content = closeBlockTags.ReplaceAllString(content, "\n")
	content = brTags.ReplaceAllString(content, "\n")
	content = hrTags.ReplaceAllString(content, "\n")

	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)
	content = multiSpaces.ReplaceAllString(content, " ")

	// Trim each line and drop the empty ones left by tag removal.
	lines := strings.Split(content, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
