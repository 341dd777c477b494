// Package search implements the QuickNote relevance search engine.
//
// The engine is stateless: each query re-scans the current document snapshot
// obtained from the storage engine, scores every document against the query
// terms, and returns ranked results with a highlighted snippet. No persistent
// index is maintained.
package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/happy-code-vector/QuickNote/internal/models"
)

// Weights are the per-term scoring contributions. The values are product
// tuning constants carried over unchanged; behaviour compatibility matters
// more than retuning them.
type Weights struct {
	TitleExact     int // query term equals the whole title
	TitlePartial   int // query term is a substring of the title
	NoteOccurrence int // per occurrence of the term in the note body
	FlashcardField int // term appears in a flashcard question or answer
	QuizQuestion   int // term appears in a quiz question
}

// DefaultWeights returns the stock scoring weights.
func DefaultWeights() Weights {
	return Weights{
		TitleExact:     100,
		TitlePartial:   50,
		NoteOccurrence: 5,
		FlashcardField: 3,
		QuizQuestion:   2,
	}
}

// SnippetConfig controls snippet extraction around the earliest term match.
type SnippetConfig struct {
	Before    int // characters of context before the match
	After     int // characters of context after the match end
	MaxLength int // hard cap on the final snippet
}

// DefaultSnippetConfig returns the stock snippet window.
func DefaultSnippetConfig() SnippetConfig {
	return SnippetConfig{Before: 50, After: 100, MaxLength: 150}
}

// DocumentSource supplies the documents to scan. The storage engine's
// listing operation satisfies it.
type DocumentSource interface {
	ListDocuments(folderID string) ([]models.Document, error)
}

// Engine scores and ranks documents against free-text queries.
type Engine struct {
	docs    DocumentSource
	weights Weights
	snippet SnippetConfig
}

// Option configures an Engine.
type Option func(*Engine)

// WithWeights overrides the scoring weights.
func WithWeights(w Weights) Option {
	return func(e *Engine) { e.weights = w }
}

// WithSnippetConfig overrides the snippet window.
func WithSnippetConfig(c SnippetConfig) Option {
	return func(e *Engine) { e.snippet = c }
}

// New creates an Engine reading documents from docs.
func New(docs DocumentSource, opts ...Option) *Engine {
	e := &Engine{
		docs:    docs,
		weights: DefaultWeights(),
		snippet: DefaultSnippetConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Search scores every stored document against the query and returns hits
// ordered by relevance, recency, then id. An empty or whitespace-only query
// returns no results.
func (e *Engine) Search(query string) ([]models.SearchResult, error) {
	terms := tokenize(query)
	if len(terms) == 0 {
		return nil, nil
	}

	documents, err := e.docs.ListDocuments("")
	if err != nil {
		return nil, err
	}

	var results []models.SearchResult
	for _, doc := range documents {
		score := e.score(doc, terms)
		if score == 0 {
			continue
		}
		results = append(results, models.SearchResult{
			DocumentID:     doc.ID,
			Title:          doc.Title,
			SourceKind:     doc.SourceKind,
			Snippet:        e.extractSnippet(doc.NoteBody, terms),
			CreatedAt:      doc.CreatedAt,
			RelevanceScore: score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.RelevanceScore != b.RelevanceScore {
			return a.RelevanceScore > b.RelevanceScore
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.DocumentID < b.DocumentID
	})

	return results, nil
}

// tokenize lower-cases the query and splits it on whitespace.
func tokenize(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// score sums the per-term contributions across title, note body, flashcards,
// and quiz questions.
func (e *Engine) score(doc models.Document, terms []string) int {
	title := strings.ToLower(doc.Title)
	note := strings.ToLower(doc.NoteBody)

	score := 0
	for _, term := range terms {
		switch {
		case title == term:
			score += e.weights.TitleExact
		case strings.Contains(title, term):
			score += e.weights.TitlePartial
		}
		score += strings.Count(note, term) * e.weights.NoteOccurrence
	}

	for _, card := range doc.Flashcards {
		question := strings.ToLower(card.Question)
		answer := strings.ToLower(card.Answer)
		for _, term := range terms {
			if strings.Contains(question, term) {
				score += e.weights.FlashcardField
			}
			if strings.Contains(answer, term) {
				score += e.weights.FlashcardField
			}
		}
	}

	for _, item := range doc.QuizItems {
		question := strings.ToLower(item.Question)
		for _, term := range terms {
			if strings.Contains(question, term) {
				score += e.weights.QuizQuestion
			}
		}
	}

	return score
}

// extractSnippet returns a window of the note body around the earliest
// occurrence of any query term, with ellipsis affixes. When no term occurs
// in the body (the score came from title, cards, or quiz), it falls back to
// the leading MaxLength characters. The window and cap count runes, never
// bytes, so multibyte bodies are not cut mid-character.
func (e *Engine) extractSnippet(body string, terms []string) string {
	lower := strings.ToLower(body)

	best := -1
	bestLen := 0
	for _, term := range terms {
		idx := strings.Index(lower, term)
		if idx >= 0 && (best == -1 || idx < best) {
			best = idx
			bestLen = utf8.RuneCountInString(term)
		}
	}

	runes := []rune(body)
	if best == -1 {
		if len(runes) > e.snippet.MaxLength {
			return strings.TrimSpace(string(runes[:e.snippet.MaxLength])) + "..."
		}
		return strings.TrimSpace(body)
	}

	match := utf8.RuneCountInString(lower[:best])
	if match > len(runes) {
		match = len(runes)
	}

	start := match - e.snippet.Before
	if start < 0 {
		start = 0
	}
	end := match + bestLen + e.snippet.After
	if end > len(runes) {
		end = len(runes)
	}

	snippet := strings.TrimSpace(string(runes[start:end]))
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(runes) {
		snippet = snippet + "..."
	}
	if sr := []rune(snippet); len(sr) > e.snippet.MaxLength {
		snippet = string(sr[:e.snippet.MaxLength]) + "..."
	}
	return snippet
}
