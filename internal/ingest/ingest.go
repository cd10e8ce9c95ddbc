// Package ingest parses scraper export files into knowledge base
// documents. Two export shapes are supported: forum exports (one JSON
// object per post, keyed by topic_id) and course content exports (one
// JSON object per page).
package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/opencourse-labs/virta/internal/core/domain"
)

// ForumPost mirrors one entry of a forum scraper export.
type ForumPost struct {
	TopicID       int    `json:"topic_id"`
	TopicTitle    string `json:"topic_title"`
	TopicURL      string `json:"topic_url"`
	PostID        int    `json:"post_id"`
	PostNumber    int    `json:"post_number"`
	Username      string `json:"username"`
	CreatedAt     string `json:"created_at"`
	RawContent    string `json:"raw_content"`
	CookedContent string `json:"cooked_content"`
}

// CoursePage mirrors one entry of a course content export.
type CoursePage struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Section   string `json:"section"`
	Content   string `json:"content"`
	ScrapedAt string `json:"scraped_at"`
}

// ParseForumExport reads a forum export and converts each post into a
// document in the forum collection. Posts with no usable content are
// skipped rather than rejected; a single empty post should not abort
// an ingest run.
func ParseForumExport(r io.Reader) ([]domain.Document, error) {
	var posts []ForumPost
	if err := json.NewDecoder(r).Decode(&posts); err != nil {
		return nil, fmt.Errorf("%w: parsing forum export: %v", domain.ErrInvalidInput, err)
	}

	docs := make([]domain.Document, 0, len(posts))
	for _, p := range posts {
		// Standard topic JSON omits the raw markdown, so the cooked
		// (rendered HTML) body is the common case and must be
		// flattened to plain text before storing.
		content := strings.TrimSpace(p.RawContent)
		if content == "" {
			content = stripHTML(p.CookedContent)
		}
		if content == "" {
			continue
		}

		docs = append(docs, domain.Document{
			ID:         forumPostID(p),
			Collection: domain.CollectionForum,
			Title:      p.TopicTitle,
			Content:    content,
			URL:        p.TopicURL,
			CreatedAt:  parseTimestamp(p.CreatedAt),
		})
	}
	return docs, nil
}

// ParseCourseExport reads a course content export and converts each
// page into a document in the course collection.
func ParseCourseExport(r io.Reader) ([]domain.Document, error) {
	var pages []CoursePage
	if err := json.NewDecoder(r).Decode(&pages); err != nil {
		return nil, fmt.Errorf("%w: parsing course export: %v", domain.ErrInvalidInput, err)
	}

	docs := make([]domain.Document, 0, len(pages))
	for _, p := range pages {
		content := strings.TrimSpace(p.Content)
		if content == "" {
			continue
		}

		docs = append(docs, domain.Document{
			ID:         coursePageID(p),
			Collection: domain.CollectionCourse,
			Title:      p.Title,
			Content:    content,
			URL:        p.URL,
			Section:    p.Section,
			CreatedAt:  parseTimestamp(p.ScrapedAt),
		})
	}
	return docs, nil
}

// LoadFile parses an export file, detecting its shape from the first
// entry: objects with a topic_id are forum posts, everything else is
// treated as course content.
func LoadFile(path string) ([]domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var probe []map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", domain.ErrInvalidInput, path, err)
	}

	if len(probe) > 0 {
		if _, ok := probe[0]["topic_id"]; ok {
			return ParseForumExport(strings.NewReader(string(data)))
		}
	}
	return ParseCourseExport(strings.NewReader(string(data)))
}

// forumPostID builds a stable ID from the topic and post numbers so
// re-ingesting the same export upserts instead of duplicating.
func forumPostID(p ForumPost) string {
	if p.TopicID != 0 && p.PostID != 0 {
		return fmt.Sprintf("%d-%d", p.TopicID, p.PostID)
	}
	return uuid.NewString()
}

// coursePageID prefers the page URL as a stable identity and falls
// back to a random one for pages scraped without a URL.
func coursePageID(p CoursePage) string {
	if p.URL != "" {
		return p.URL
	}
	return uuid.NewString()
}

// parseTimestamp handles the RFC 3339 timestamps the scrapers emit.
// Unparseable or missing timestamps resolve to the zero time, which
// ranks last among equal scores.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
