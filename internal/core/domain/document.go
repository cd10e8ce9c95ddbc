package domain

import "time"

// Collection identifies the provenance of a stored document.
type Collection string

const (
	// CollectionForum holds scraped Discourse forum posts.
	CollectionForum Collection = "forum"

	// CollectionCourse holds course website sections.
	CollectionCourse Collection = "course"
)

// Valid reports whether the collection is a known value.
func (c Collection) Valid() bool {
	return c == CollectionForum || c == CollectionCourse
}

// Document is a single entry in the knowledge store: a forum post or a
// course content section. Documents are written by the ingest pipeline
// and are read-only during question answering.
type Document struct {
	// ID is the unique identifier within its collection.
	ID string

	// Collection distinguishes forum posts from course content.
	Collection Collection

	// Title is the human-readable title (topic title or section heading).
	Title string

	// Content is the full plain-text body.
	Content string

	// URL points back at the original forum topic or course page.
	URL string

	// Section is the category slug or course section path.
	Section string

	// CreatedAt is when the source material was posted or last updated.
	CreatedAt time.Time
}
