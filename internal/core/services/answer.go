package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/opencourse-labs/virta/internal/core/domain"
	"github.com/opencourse-labs/virta/internal/core/ports/driven"
	"github.com/opencourse-labs/virta/internal/core/ports/driving"
	"github.com/opencourse-labs/virta/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// AnswerService runs the question-answering pipeline: retrieval from the
// knowledge store, prompt assembly, the upstream model call, and answer
// formatting. All pipeline failures degrade into a still-valid Answer.
type AnswerService struct {
	store      driven.KnowledgeStore
	completion driven.CompletionService
	ocr        driven.OCRService

	// Tunables are guarded so Configure can swap them while requests
	// are in flight (config live reload).
	mu         sync.RWMutex
	builder    *PromptBuilder
	matchLimit int
	maxTokens  int
}

// defaultMaxTokens bounds the model completion when not configured.
const defaultMaxTokens = 500

// AnswerOptions configures the answer pipeline.
type AnswerOptions struct {
	// MatchLimit is the top-K cutoff for retrieval (default 5).
	MatchLimit int

	// ContextBudget bounds the assembled reference text in characters.
	ContextBudget int

	// ExcerptLength bounds each document excerpt in characters.
	ExcerptLength int

	// MaxTokens bounds the model completion length (default 500).
	MaxTokens int
}

// NewAnswerService creates the answer pipeline. The completion and ocr
// services are optional (can be nil): without completion every answer is
// the degraded fallback, without ocr image attachments are ignored.
func NewAnswerService(
	store driven.KnowledgeStore,
	completion driven.CompletionService,
	ocr driven.OCRService,
	opts AnswerOptions,
) *AnswerService {
	s := &AnswerService{
		store:      store,
		completion: completion,
		ocr:        ocr,
	}
	s.Configure(opts)
	return s
}

// Configure replaces the pipeline tunables. Safe to call concurrently
// with Ask; the serve command calls it whenever the config file changes
// so new limits apply without a restart.
func (s *AnswerService) Configure(opts AnswerOptions) {
	if opts.MatchLimit <= 0 {
		opts.MatchLimit = DefaultMatchLimit
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaultMaxTokens
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.builder = NewPromptBuilder(opts.ContextBudget, opts.ExcerptLength)
	s.matchLimit = opts.MatchLimit
	s.maxTokens = opts.MaxTokens
}

// tunables returns a consistent snapshot of the configured limits.
func (s *AnswerService) tunables() (builder *PromptBuilder, matchLimit, maxTokens int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.builder, s.matchLimit, s.maxTokens
}

// Ask answers a student question. It returns an error only for invalid
// input (empty question and no image); every other failure is absorbed
// into a degraded or contextless Answer.
func (s *AnswerService) Ask(ctx context.Context, query domain.Query) (domain.Answer, error) {
	logger.Section("Answer Pipeline")

	question := strings.TrimSpace(query.Question)
	if question == "" && len(query.Image) == 0 {
		return domain.Answer{}, domain.ErrInvalidInput
	}

	imageText := s.extractImageText(ctx, query.Image)

	// Image text influences retrieval as well as the prompt.
	retrievalQuery := question
	if imageText != "" {
		retrievalQuery = question + " " + imageText
	}

	builder, matchLimit, maxTokens := s.tunables()

	matches := s.retrieve(ctx, retrievalQuery, matchLimit)
	prompt, used := builder.Build(question, imageText, matches)
	logger.Debug("Prompt assembled: %d chars, %d of %d matches packed", len(prompt), len(used), len(matches))

	if s.completion == nil {
		logger.Warn("No completion service configured, returning fallback answer")
		return FallbackAnswer(), nil
	}

	raw, err := s.completion.Complete(ctx, prompt, driven.CompleteOptions{
		MaxTokens:   maxTokens,
		Temperature: 0.2,
	})
	if err != nil {
		logger.Error("Upstream completion failed: %v", err)
		return FallbackAnswer(), nil
	}

	logger.Info("Answer generated: %d chars, %d links", len(raw), len(used))
	return BuildAnswer(raw, used), nil
}

// Match returns the ranked documents a question would retrieve, without
// calling the upstream model. Unlike Ask, a store failure is an error
// here: this path exists for search tooling, not for students.
func (s *AnswerService) Match(ctx context.Context, question string, limit int) ([]domain.Match, error) {
	docs, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return Rank(question, docs, limit), nil
}

// retrieve ranks the knowledge store against the query. An unreadable
// store degrades to zero matches so answering can continue contextless.
func (s *AnswerService) retrieve(ctx context.Context, query string, limit int) []domain.Match {
	docs, err := s.store.ListAll(ctx)
	if err != nil {
		logger.Warn("Knowledge store unreadable, answering without context: %v", err)
		return nil
	}

	matches := Rank(query, docs, limit)
	logger.Debug("Retrieval: %d documents scanned, %d matches", len(docs), len(matches))
	return matches
}

// extractImageText runs OCR on the attachment. Any failure is absorbed:
// the pipeline proceeds with an empty string.
func (s *AnswerService) extractImageText(ctx context.Context, image []byte) string {
	if len(image) == 0 || s.ocr == nil {
		return ""
	}

	text, err := s.ocr.ExtractText(ctx, image)
	if err != nil {
		logger.Warn("OCR failed, ignoring image: %v", err)
		return ""
	}

	logger.Debug("OCR extracted %d chars from image", len(text))
	return text
}

// Ensure KnowledgeService implements the interface.
var _ driving.KnowledgeService = (*KnowledgeService)(nil)

// KnowledgeService exposes store statistics for status surfaces.
type KnowledgeService struct {
	store driven.KnowledgeStore
}

// NewKnowledgeService creates a new knowledge service.
func NewKnowledgeService(store driven.KnowledgeStore) *KnowledgeService {
	return &KnowledgeService{store: store}
}

// Stats returns per-collection counts and the last ingest time.
func (s *KnowledgeService) Stats(ctx context.Context) (driven.StoreStats, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return driven.StoreStats{}, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return stats, nil
}
