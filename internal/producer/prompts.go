package producer

// Prompts sent to the content producer. Responses must be JSON only; the
// client strips markdown fences before decoding to tolerate models that wrap
// their output anyway.

const notePrompt = `Analyze the following content and provide:
1. A concise summary
2. Key points (3-5 bullet points)

Content: %s

Format your response as JSON with this structure:
{
  "summary": "...",
  "keyPoints": ["...", "..."]
}`

const flashcardPrompt = `Create 5 flashcards from this content. Each flashcard should have a question and answer.

Content: %s

Format as JSON array:
[
  {"question": "...", "answer": "..."},
  ...
]`

const quizPrompt = `Create 5 multiple choice quiz questions from this content.
Each question must have exactly 4 distinct options, and correctAnswer must exactly match one option.

Content: %s

Format as JSON array:
[
  {
    "question": "...",
    "options": ["A", "B", "C", "D"],
    "correctAnswer": "A"
  },
  ...
]`
