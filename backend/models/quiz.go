package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

type Subject struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Slug        string    `gorm:"size:120;index" json:"slug"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Chapters    []Chapter `gorm:"constraint:OnDelete:CASCADE;" json:"chapters,omitempty"`
}

type Chapter struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SubjectID   uint      `gorm:"not null;index" json:"subject_id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Quizzes     []Quiz    `gorm:"constraint:OnDelete:CASCADE;" json:"quizzes,omitempty"`
}

type Quiz struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	ChapterID       uint            `gorm:"not null;index" json:"chapter_id"`
	Name            string          `gorm:"size:100;not null" json:"name"`
	Description     string          `gorm:"size:255" json:"description"`
	DifficultyLevel string          `gorm:"size:50" json:"difficulty_level"` // Easy, Medium, Hard
	TimeLimit       *int            `json:"time_limit"`                      // in minutes
	TotalMarks      *int            `json:"total_marks"`
	Date            *datatypes.Date `json:"date"`
	Duration        *datatypes.Time `json:"duration"`
	CreatedAt       time.Time       `json:"created_at"`
	Questions       []Question      `gorm:"constraint:OnDelete:CASCADE;" json:"questions,omitempty"`
}

// CalculateTotalMarks sums the marks of the loaded questions.
func (q *Quiz) CalculateTotalMarks() int {
	total := 0
	for _, question := range q.Questions {
		total += question.Marks
	}
	return total
}

// EffectiveTotalMarks prefers the stored total and falls back to the sum of
// question marks.
func (q *Quiz) EffectiveTotalMarks() int {
	if q.TotalMarks != nil {
		return *q.TotalMarks
	}
	return q.CalculateTotalMarks()
}

type Question struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	QuizID        uint      `gorm:"not null;index" json:"quiz_id"`
	QuestionText  string    `gorm:"size:255;not null" json:"question_text"`
	Option1       string    `gorm:"size:100;not null" json:"option1"`
	Option2       string    `gorm:"size:100;not null" json:"option2"`
	Option3       string    `gorm:"size:100;not null" json:"option3"`
	Option4       string    `gorm:"size:100;not null" json:"option4"`
	CorrectOption string    `gorm:"size:10;not null" json:"correct_option"` // A, B, C or D
	Explanation   string    `gorm:"type:text" json:"explanation"`
	Marks         int       `gorm:"not null" json:"marks"`
	CreatedAt     time.Time `json:"created_at"`
}

func (q *Question) Options() []string {
	return []string{q.Option1, q.Option2, q.Option3, q.Option4}
}

type Score struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	QuizID             uint      `gorm:"not null;index" json:"quiz_id"`
	Quiz               *Quiz     `json:"-"`
	UserID             uint      `gorm:"not null;index" json:"user_id"`
	User               *User     `json:"-"`
	TimeStampOfAttempt time.Time `json:"time_stamp_of_attempt"`
	TotalScored        int       `json:"total_scored"`
	TotalTimeTaken     int       `json:"total_time_taken"` // in minutes
}

// Percentage returns TotalScored as a share of totalMarks, or 0 when the quiz
// has no marks configured.
func (s *Score) Percentage(totalMarks *int) float64 {
	if totalMarks == nil || *totalMarks == 0 {
		return 0
	}
	return float64(s.TotalScored) / float64(*totalMarks) * 100
}
