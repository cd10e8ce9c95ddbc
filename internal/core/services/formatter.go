package services

import (
	"strings"

	"github.com/opencourse-labs/virta/internal/core/domain"
)

// fallbackText is returned when the upstream model call fails. Students
// always get a valid answer payload, never a transport error.
const fallbackText = "Sorry, I am unable to answer right now. " +
	"Please try again in a few minutes, or post your question on the course forum."

// BuildAnswer combines the raw model output with the matches that were
// packed into the prompt. Citation links come from those matches - in the
// same rank order, de-duplicated by URL - never from the model text, so
// every link is guaranteed to point at a real knowledge store document.
func BuildAnswer(raw string, used []domain.Match) domain.Answer {
	links := make([]domain.Link, 0, len(used))
	seen := make(map[string]struct{}, len(used))

	for i := range used {
		doc := &used[i].Document
		if doc.URL == "" {
			continue
		}
		if _, ok := seen[doc.URL]; ok {
			continue
		}
		seen[doc.URL] = struct{}{}
		links = append(links, domain.Link{URL: doc.URL, Text: linkText(doc)})
	}

	return domain.Answer{
		Text:  strings.TrimSpace(raw),
		Links: links,
	}
}

// FallbackAnswer returns the degraded answer used when the upstream model
// is unreachable: static apology text and no links.
func FallbackAnswer() domain.Answer {
	return domain.Answer{
		Text:     fallbackText,
		Links:    []domain.Link{},
		Degraded: true,
	}
}

// linkText picks a short label for a citation: the document title, or the
// first sentence of the content when the title is empty.
func linkText(doc *domain.Document) string {
	if title := strings.TrimSpace(doc.Title); title != "" {
		return title
	}
	return firstSentence(doc.Content)
}

// firstSentence returns the leading sentence of content, bounded to keep
// labels readable.
func firstSentence(content string) string {
	content = strings.TrimSpace(content)
	for i, r := range content {
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			content = content[:i]
			break
		}
	}
	return Excerpt(content, 120)
}
