package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/opencourse-labs/virta/internal/core/domain"
	"github.com/opencourse-labs/virta/internal/logger"
)

// Default prompt assembly bounds, in characters. Tunables, not contracts.
const (
	// DefaultContextBudget bounds the assembled reference text.
	DefaultContextBudget = 4000

	// DefaultExcerptLength bounds each document excerpt.
	DefaultExcerptLength = 500
)

// systemInstruction directs the model to stay grounded in the supplied
// context. It is prepended to every prompt.
const systemInstruction = `You are a teaching assistant for an online course.
Answer the student's question using ONLY the course context provided below.
If the context does not contain the answer, say so plainly instead of guessing.
Keep the answer short and practical. Do not invent links or sources.`

// noContextNote replaces the context block when no stored document fits.
const noContextNote = "No course context was found for this question."

// PromptBuilder assembles the final model prompt from ranked matches.
// The zero value is not usable; call NewPromptBuilder.
type PromptBuilder struct {
	// budget is the maximum size of the assembled context block.
	budget int

	// excerptLen is the maximum size of each document excerpt.
	excerptLen int
}

// NewPromptBuilder creates a builder with the given context budget and
// per-document excerpt length. Non-positive values fall back to defaults.
func NewPromptBuilder(budget, excerptLen int) *PromptBuilder {
	if budget <= 0 {
		budget = DefaultContextBudget
	}
	if excerptLen <= 0 {
		excerptLen = DefaultExcerptLength
	}
	return &PromptBuilder{budget: budget, excerptLen: excerptLen}
}

// Build assembles the prompt for a question, optional image-derived text,
// and ranked matches. It returns the prompt and the matches that were
// actually packed into it, in rank order - those are the documents the
// answer may cite.
//
// Matches are packed greedily in rank order. A match whose block would
// push the context past the budget is dropped whole and packing stops;
// a partial excerpt is never emitted.
func (b *PromptBuilder) Build(question, imageText string, matches []domain.Match) (string, []domain.Match) {
	var context strings.Builder
	used := make([]domain.Match, 0, len(matches))

	for i := range matches {
		block := b.formatBlock(&matches[i].Document)
		if context.Len()+len(block) > b.budget {
			logger.Debug("Context budget reached after %d of %d matches", len(used), len(matches))
			break
		}
		context.WriteString(block)
		used = append(used, matches[i])
	}

	var prompt strings.Builder
	prompt.WriteString(systemInstruction)
	prompt.WriteString("\n\n")

	if context.Len() == 0 {
		prompt.WriteString(noContextNote)
		prompt.WriteString("\n")
	} else {
		prompt.WriteString("Course context:\n\n")
		prompt.WriteString(context.String())
	}

	prompt.WriteString("\nStudent question:\n")
	prompt.WriteString(strings.TrimSpace(question))
	if imageText = strings.TrimSpace(imageText); imageText != "" {
		prompt.WriteString("\n\nText extracted from the attached image:\n")
		prompt.WriteString(imageText)
	}
	prompt.WriteString("\n")

	return prompt.String(), used
}

// formatBlock renders one document as a context block.
func (b *PromptBuilder) formatBlock(doc *domain.Document) string {
	return fmt.Sprintf("### %s\n%s\nSource: %s\n\n", doc.Title, Excerpt(doc.Content, b.excerptLen), doc.URL)
}

// Excerpt returns the leading part of content, cut at a word boundary
// when it exceeds maxLen. The cut is always clean: either the full
// content or a bounded prefix ending in an ellipsis.
func Excerpt(content string, maxLen int) string {
	content = strings.TrimSpace(content)
	if len(content) <= maxLen {
		return content
	}

	cut := content[:maxLen]
	if idx := strings.LastIndexAny(cut, " \t\n"); idx > 0 {
		cut = cut[:idx]
	} else {
		// No whitespace in the prefix. The byte cut may have split a
		// multibyte rune, so back up to the last complete one.
		for len(cut) > 0 {
			r, size := utf8.DecodeLastRuneInString(cut)
			if r != utf8.RuneError || size != 1 {
				break
			}
			cut = cut[:len(cut)-1]
		}
	}
	return strings.TrimSpace(cut) + "..."
}
