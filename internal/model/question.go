package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionType string

const (
	QuestionMCQ   QuestionType = "MCQ"
	QuestionTF    QuestionType = "TF"
	QuestionShort QuestionType = "SHORT"
	QuestionLong  QuestionType = "LONG"
)

// ChoiceBased reports whether the question carries an options list.
func (t QuestionType) ChoiceBased() bool {
	return t == QuestionMCQ || t == QuestionTF
}

// Question belongs to a Test. QuestionIndex is the 0-based display order, unique
// per test; density within a test is an application convention, not a constraint.
type Question struct {
	ID            string         `gorm:"primaryKey;size:36" json:"id"`
	TestID        string         `gorm:"size:36;not null;uniqueIndex:idx_questions_test_order" json:"test_id"`
	QuestionIndex int            `gorm:"not null;uniqueIndex:idx_questions_test_order" json:"question_index"`
	Type          QuestionType   `gorm:"not null" json:"type"`
	Prompt        string         `gorm:"type:text;not null" json:"prompt"`
	Options       datatypes.JSON `gorm:"type:jsonb" json:"options,omitempty"`
	CorrectAnswer datatypes.JSON `gorm:"type:jsonb" json:"correct_answer,omitempty"`
	Points        int            `gorm:"not null" json:"points"`
	Rubric        datatypes.JSON `gorm:"type:jsonb" json:"rubric,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
