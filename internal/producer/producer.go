// Package producer calls the external generative-content service that turns
// raw study input into a note payload, flashcards, and quiz items.
//
// The service speaks the OpenAI chat-completions protocol; pointing BaseURL
// at any compatible endpoint works. The core only requires that returned
// shapes satisfy the Document invariants; content quality is not validated
// here.
package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/happy-code-vector/QuickNote/internal/apperr"
	"github.com/happy-code-vector/QuickNote/internal/models"
)

// NotePayload is the note-shaped response from the producer.
type NotePayload struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"keyPoints"`
}

// Body flattens the payload into the note body stored on a Document.
func (n NotePayload) Body() string {
	if len(n.KeyPoints) == 0 {
		return n.Summary
	}
	var b strings.Builder
	b.WriteString(n.Summary)
	b.WriteString("\n\nKey Points:\n")
	for _, kp := range n.KeyPoints {
		b.WriteString("- ")
		b.WriteString(kp)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Result bundles everything the producer generates for one document.
type Result struct {
	Note       NotePayload
	Flashcards []models.Flashcard
	QuizItems  []models.QuizItem
}

// Config configures the producer client.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Client is the producer client.
type Client struct {
	api   *openai.Client
	model string
}

// New creates a producer client from cfg.
func New(cfg Config) *Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(apiCfg),
		model: cfg.Model,
	}
}

// complete sends a single-turn prompt and returns the raw completion text.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("producer: completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("producer: empty completion: %w", apperr.ErrMalformedProducerOutput)
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateNote produces the summary/key-points payload for content.
func (c *Client) GenerateNote(ctx context.Context, content string) (NotePayload, error) {
	raw, err := c.complete(ctx, fmt.Sprintf(notePrompt, content))
	if err != nil {
		return NotePayload{}, err
	}
	var note NotePayload
	if err := json.Unmarshal([]byte(stripFences(raw)), &note); err != nil {
		return NotePayload{}, fmt.Errorf("producer: decode note: %w", apperr.ErrMalformedProducerOutput)
	}
	if note.Summary == "" {
		return NotePayload{}, fmt.Errorf("producer: note has no summary: %w", apperr.ErrMalformedProducerOutput)
	}
	return note, nil
}

// GenerateFlashcards produces question/answer study pairs for content.
func (c *Client) GenerateFlashcards(ctx context.Context, content string) ([]models.Flashcard, error) {
	raw, err := c.complete(ctx, fmt.Sprintf(flashcardPrompt, content))
	if err != nil {
		return nil, err
	}
	var cards []models.Flashcard
	if err := json.Unmarshal([]byte(stripFences(raw)), &cards); err != nil {
		return nil, fmt.Errorf("producer: decode flashcards: %w", apperr.ErrMalformedProducerOutput)
	}
	return cards, nil
}

// GenerateQuiz produces multiple-choice quiz items for content. Every item
// must satisfy the quiz invariants (four distinct options, member answer);
// a violating item marks the whole batch malformed.
func (c *Client) GenerateQuiz(ctx context.Context, content string) ([]models.QuizItem, error) {
	raw, err := c.complete(ctx, fmt.Sprintf(quizPrompt, content))
	if err != nil {
		return nil, err
	}
	var items []models.QuizItem
	if err := json.Unmarshal([]byte(stripFences(raw)), &items); err != nil {
		return nil, fmt.Errorf("producer: decode quiz: %w", apperr.ErrMalformedProducerOutput)
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("producer: quiz item %d: %v: %w", i, err, apperr.ErrMalformedProducerOutput)
		}
	}
	return items, nil
}

// Generate produces the full bundle for one document: note, flashcards, quiz.
func (c *Client) Generate(ctx context.Context, content string) (*Result, error) {
	note, err := c.GenerateNote(ctx, content)
	if err != nil {
		return nil, err
	}
	cards, err := c.GenerateFlashcards(ctx, content)
	if err != nil {
		return nil, err
	}
	items, err := c.GenerateQuiz(ctx, content)
	if err != nil {
		return nil, err
	}
	return &Result{Note: note, Flashcards: cards, QuizItems: items}, nil
}

// stripFences removes a surrounding markdown code fence, if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
