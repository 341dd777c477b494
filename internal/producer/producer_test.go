package producer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/happy-code-vector/QuickNote/internal/apperr"
)

// fakeCompletionServer returns an httptest server speaking just enough of the
// chat-completions protocol. reply picks the completion text per request.
func fakeCompletionServer(t *testing.T, reply func(prompt string) string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Messages) == 0 {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		resp := map[string]any{
			"id":     "cmpl-test",
			"object": "chat.completion",
			"choices": []map[string]any{
				{
					"index":         0,
					"message":       map[string]string{"role": "assistant", "content": reply(req.Messages[0].Content)},
					"finish_reason": "stop",
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func testClient(t *testing.T, reply func(prompt string) string) *Client {
	t.Helper()
	srv := fakeCompletionServer(t, reply)
	t.Cleanup(srv.Close)
	return New(Config{APIKey: "test-key", Model: "test-model", BaseURL: srv.URL + "/v1"})
}

func TestStripFences(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n[1,2]\n```", `[1,2]`},
		{"  ```json\n{}\n```  ", `{}`},
	}
	for _, c := range cases {
		if got := stripFences(c.in); got != c.want {
			t.Errorf("stripFences(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestGenerateNote(t *testing.T) {
	c := testClient(t, func(string) string {
		return "```json\n{\"summary\":\"Mitosis is nuclear division.\",\"keyPoints\":[\"Prophase\",\"Metaphase\"]}\n```"
	})

	note, err := c.GenerateNote(context.Background(), "some content")
	if err != nil {
		t.Fatalf("GenerateNote: %v", err)
	}
	if note.Summary != "Mitosis is nuclear division." {
		t.Errorf("summary = %q", note.Summary)
	}
	body := note.Body()
	if !strings.Contains(body, "Key Points:") || !strings.Contains(body, "- Prophase") {
		t.Errorf("body = %q", body)
	}
}

func TestGenerateNote_Malformed(t *testing.T) {
	c := testClient(t, func(string) string { return "sorry, I cannot do that" })

	_, err := c.GenerateNote(context.Background(), "content")
	if !errors.Is(err, apperr.ErrMalformedProducerOutput) {
		t.Errorf("err = %v, want ErrMalformedProducerOutput", err)
	}
}

func TestGenerateNote_MissingSummary(t *testing.T) {
	c := testClient(t, func(string) string { return `{"keyPoints":["only points"]}` })

	_, err := c.GenerateNote(context.Background(), "content")
	if !errors.Is(err, apperr.ErrMalformedProducerOutput) {
		t.Errorf("err = %v, want ErrMalformedProducerOutput", err)
	}
}

func TestGenerateFlashcards(t *testing.T) {
	c := testClient(t, func(string) string {
		return `[{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"}]`
	})

	cards, err := c.GenerateFlashcards(context.Background(), "content")
	if err != nil {
		t.Fatalf("GenerateFlashcards: %v", err)
	}
	if len(cards) != 2 || cards[1].Answer != "A2" {
		t.Errorf("cards = %+v", cards)
	}
}

func TestGenerateQuiz_ValidatesInvariants(t *testing.T) {
	cases := []struct {
		name  string
		reply string
	}{
		{
			name:  "answer not among options",
			reply: `[{"question":"Q","options":["a","b","c","d"],"correctAnswer":"z"}]`,
		},
		{
			name:  "three options",
			reply: `[{"question":"Q","options":["a","b","c"],"correctAnswer":"a"}]`,
		},
		{
			name:  "duplicate options",
			reply: `[{"question":"Q","options":["a","a","c","d"],"correctAnswer":"a"}]`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := testClient(t, func(string) string { return tc.reply })
			_, err := c.GenerateQuiz(context.Background(), "content")
			if !errors.Is(err, apperr.ErrMalformedProducerOutput) {
				t.Errorf("err = %v, want ErrMalformedProducerOutput", err)
			}
		})
	}
}

func TestGenerate_Bundle(t *testing.T) {
	c := testClient(t, func(prompt string) string {
		switch {
		case strings.Contains(prompt, "flashcards"):
			return `[{"question":"Q","answer":"A"}]`
		case strings.Contains(prompt, "multiple choice"):
			return `[{"question":"Q","options":["a","b","c","d"],"correctAnswer":"a"}]`
		default:
			return `{"summary":"S","keyPoints":[]}`
		}
	})

	res, err := c.Generate(context.Background(), "content")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Note.Summary != "S" || len(res.Flashcards) != 1 || len(res.QuizItems) != 1 {
		t.Errorf("result = %+v", res)
	}
}
