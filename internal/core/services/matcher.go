package services

import (
	"sort"
	"strings"

	"github.com/opencourse-labs/virta/internal/core/domain"
)

// Scoring weights for keyword relevance. A query term found in the title
// counts for more than one found in the body. The exact values are
// tunables, not a behavioural contract.
const (
	// TitleWeight is the score for each distinct query term found in
	// the document title.
	TitleWeight = 3

	// ContentWeight is the score for each distinct query term found in
	// the document content.
	ContentWeight = 1

	// DefaultMatchLimit is the number of matches returned when the
	// caller does not specify one.
	DefaultMatchLimit = 5
)

// stopwords are query terms too common to carry relevance signal.
// Kept deliberately small; domain terms like "docker" or "ga4" must
// never appear here.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "is": {}, "are": {}, "was": {},
	"be": {}, "to": {}, "of": {}, "in": {}, "on": {}, "for": {},
	"and": {}, "or": {}, "not": {}, "do": {}, "does": {}, "can": {},
	"i": {}, "you": {}, "we": {}, "it": {}, "my": {}, "me": {},
	"this": {}, "that": {}, "with": {}, "what": {}, "which": {},
	"how": {}, "should": {}, "use": {},
}

// Tokenize splits a question into lowercase search terms. Hyphens and
// dots survive inside tokens so versioned names like "gpt-3.5-turbo"
// stay intact. Stopwords and single-character tokens are dropped.
func Tokenize(question string) []string {
	fields := strings.FieldsFunc(strings.ToLower(question), func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z':
			return false
		case r >= '0' && r <= '9':
			return false
		case r == '-' || r == '.':
			return false
		}
		return true
	})

	terms := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "-.")
		if len(f) < 2 {
			continue
		}
		if _, ok := stopwords[f]; ok {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		terms = append(terms, f)
	}

	return terms
}

// Rank scores documents against a question and returns the top matches,
// highest score first. It is a pure function with no I/O so rankings are
// deterministic for an unchanged document set.
//
// Each distinct query term found in the title adds TitleWeight, each found
// in the content adds ContentWeight. Documents scoring zero are excluded.
// Ties break by most recent CreatedAt, then by lexicographic ID.
func Rank(question string, docs []domain.Document, limit int) []domain.Match {
	if limit <= 0 {
		limit = DefaultMatchLimit
	}

	terms := Tokenize(question)
	if len(terms) == 0 {
		return []domain.Match{}
	}

	matches := make([]domain.Match, 0, len(docs))
	for i := range docs {
		score := scoreDocument(terms, &docs[i])
		if score == 0 {
			continue
		}
		matches = append(matches, domain.Match{Document: docs[i], Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		if !matches[i].Document.CreatedAt.Equal(matches[j].Document.CreatedAt) {
			return matches[i].Document.CreatedAt.After(matches[j].Document.CreatedAt)
		}
		return matches[i].Document.ID < matches[j].Document.ID
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	return matches
}

// scoreDocument counts weighted query term hits in title and content.
// Matching is simple substring containment, not word-boundary aware.
func scoreDocument(terms []string, doc *domain.Document) int {
	title := strings.ToLower(doc.Title)
	content := strings.ToLower(doc.Content)

	score := 0
	for _, term := range terms {
		if strings.Contains(title, term) {
			score += TitleWeight
		}
		if strings.Contains(content, term) {
			score += ContentWeight
		}
	}

	return score
}
