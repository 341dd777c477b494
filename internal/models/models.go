// Package models defines the domain types for QuickNote.
package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ProfileType distinguishes adult and child learner profiles.
type ProfileType string

// Profile types.
const (
	ProfileAdult ProfileType = "adult"
	ProfileChild ProfileType = "child"
)

// SourceKind identifies the kind of raw input a document was derived from.
type SourceKind string

// Source kinds.
const (
	SourceText    SourceKind = "text"
	SourceVideo   SourceKind = "video"
	SourceImage   SourceKind = "image"
	SourceWebsite SourceKind = "website"
)

// Profile represents a learner identity. Profiles own folders, which in turn
// own documents; deleting a profile cascades through the whole subtree.
type Profile struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Avatar           string      `json:"avatar"`
	AvatarBackground string      `json:"avatarBg"`
	Age              int         `json:"age"`
	EducationStatus  string      `json:"educationStatus"`
	FavoriteTopic    string      `json:"favouriteTopic"`
	ProfileType      ProfileType `json:"profileType"`
}

// Validate checks the profile is well-formed before it is persisted.
func (p Profile) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Name, validation.Required),
		// Threshold rules skip zero values, so Required must catch Age == 0.
		validation.Field(&p.Age, validation.Required, validation.Min(1)),
		validation.Field(&p.ProfileType, validation.Required, validation.In(ProfileAdult, ProfileChild)),
	)
}

// Folder is a named grouping of documents scoped to one profile.
type Folder struct {
	ID         string    `json:"id"`
	ProfileID  string    `json:"profileId"`
	Name       string    `json:"folderName"`
	CreatedAt  time.Time `json:"createdAt"`
	CoverImage string    `json:"folderImage,omitempty"`
}

// Validate checks the folder is well-formed before it is persisted.
// Referential integrity of ProfileID is the store's concern, not this one.
func (f Folder) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.ID, validation.Required),
		validation.Field(&f.ProfileID, validation.Required),
		validation.Field(&f.Name, validation.Required),
	)
}

// Flashcard is a single question/answer study pair.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QuizItem is a multiple-choice question with exactly four distinct options,
// one of which is the correct answer.
type QuizItem struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Validate enforces the quiz invariants: four distinct options and a correct
// answer that is one of them.
func (q QuizItem) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Question, validation.Required),
		validation.Field(&q.Options, validation.Required, validation.Length(4, 4), validation.By(distinctStrings)),
		validation.Field(&q.CorrectAnswer, validation.Required, validation.By(q.answerAmongOptions)),
	)
}

func distinctStrings(value interface{}) error {
	opts, _ := value.([]string)
	seen := make(map[string]struct{}, len(opts))
	for _, o := range opts {
		if _, dup := seen[o]; dup {
			return validation.NewError("validation_options_distinct", "options must be distinct")
		}
		seen[o] = struct{}{}
	}
	return nil
}

func (q QuizItem) answerAmongOptions(value interface{}) error {
	answer, _ := value.(string)
	for _, o := range q.Options {
		if o == answer {
			return nil
		}
	}
	return validation.NewError("validation_answer_in_options", "correct answer must be one of the options")
}

// Document is a unit of study material: a generated note body plus optional
// flashcards, quiz items, and a chat transcript about the material.
type Document struct {
	ID             string      `json:"id"`
	FolderID       string      `json:"folderId"`
	Title          string      `json:"title"`
	SourceKind     SourceKind  `json:"contentType"`
	SourcePath     string      `json:"contentPath"`
	NoteBody       string      `json:"note"`
	Flashcards     []Flashcard `json:"flashcards"`
	QuizItems      []QuizItem  `json:"quizzes"`
	ChatTranscript string      `json:"chat"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// Validate checks the document is well-formed before it is persisted.
// Quiz content quality is the producer's contract; the store only requires
// the identifying fields and a closed source kind.
func (d Document) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.ID, validation.Required),
		validation.Field(&d.FolderID, validation.Required),
		validation.Field(&d.Title, validation.Required),
		validation.Field(&d.SourceKind, validation.Required,
			validation.In(SourceText, SourceVideo, SourceImage, SourceWebsite)),
	)
}

// SearchResult is one ranked hit returned by the search engine.
type SearchResult struct {
	DocumentID     string     `json:"id"`
	Title          string     `json:"title"`
	SourceKind     SourceKind `json:"contentType"`
	Snippet        string     `json:"snippet"`
	CreatedAt      time.Time  `json:"createdAt"`
	RelevanceScore int        `json:"relevanceScore"`
}
