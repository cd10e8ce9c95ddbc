package domain

// Query is a single student question, optionally with an attached image.
// Queries are transient: one per request, never persisted.
type Query struct {
	// Question is the free-text question.
	Question string

	// Image is optional raw image data (screenshot of an error, etc.).
	Image []byte
}

// Match pairs a document with its relevance score for one query.
// Matches are ephemeral, produced and consumed within a single request.
type Match struct {
	// Document is the matched document.
	Document Document

	// Score is the keyword relevance score, higher is more relevant.
	Score int
}

// Link is a citation pointing back at a knowledge store document.
type Link struct {
	// URL is the document URL.
	URL string `json:"url"`

	// Text is a short human-readable label for the link.
	Text string `json:"text"`
}

// Answer is the final payload returned to the student.
type Answer struct {
	// Text is the generated answer, or a fallback message when the
	// upstream model call failed.
	Text string

	// Links cite the documents used as context, de-duplicated by URL
	// and ordered by descending relevance score.
	Links []Link

	// Degraded marks answers produced without the upstream model
	// (store unreadable is not degraded; only an upstream failure is).
	Degraded bool
}
