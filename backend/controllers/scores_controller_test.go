package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"quizmaster/backend/models"
)

func TestScoreViewPercentage(t *testing.T) {
	stored := 10

	tests := []struct {
		name string
		quiz *models.Quiz
		want float64
	}{
		{
			name: "stored total",
			quiz: &models.Quiz{Name: "Stored", TotalMarks: &stored},
			want: 20,
		},
		{
			name: "summed question marks",
			quiz: &models.Quiz{Name: "Summed", Questions: []models.Question{{Marks: 2}, {Marks: 2}}},
			want: 50,
		},
		{
			name: "no marks",
			quiz: &models.Quiz{Name: "Empty"},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := scoreView(&models.Score{TotalScored: 2, Quiz: tt.quiz})
			assert.InDelta(t, tt.want, view["percentage"], 0.001)
			assert.Equal(t, tt.quiz.Name, view["quiz_name"])
		})
	}
}

func TestScoreViewWithoutQuiz(t *testing.T) {
	view := scoreView(&models.Score{TotalScored: 3})
	assert.Equal(t, 0.0, view["percentage"])
	assert.NotContains(t, view, "quiz_name")
}
