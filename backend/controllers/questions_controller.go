package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizmaster/backend/models"
	"quizmaster/backend/repository"
	"quizmaster/backend/utils"
)

type QuestionsController struct {
	DB *gorm.DB
}

func NewQuestionsController(db *gorm.DB) *QuestionsController {
	return &QuestionsController{DB: db}
}

// Question text is accepted as "question_text" or the shorter "text".
type createQuestionRequest struct {
	QuizID        uint   `json:"quiz_id" validate:"required"`
	QuestionText  string `json:"question_text" validate:"max=255"`
	Text          string `json:"text" validate:"max=255"`
	Option1       string `json:"option1" validate:"required,max=100"`
	Option2       string `json:"option2" validate:"required,max=100"`
	Option3       string `json:"option3" validate:"required,max=100"`
	Option4       string `json:"option4" validate:"required,max=100"`
	CorrectOption string `json:"correct_option" validate:"required,oneof=A B C D"`
	Explanation   string `json:"explanation"`
	Marks         *int   `json:"marks" validate:"omitempty,gte=0"`
}

type updateQuestionRequest struct {
	QuestionText  *string `json:"question_text" validate:"omitempty,max=255"`
	Text          *string `json:"text" validate:"omitempty,max=255"`
	Option1       *string `json:"option1" validate:"omitempty,max=100"`
	Option2       *string `json:"option2" validate:"omitempty,max=100"`
	Option3       *string `json:"option3" validate:"omitempty,max=100"`
	Option4       *string `json:"option4" validate:"omitempty,max=100"`
	CorrectOption *string `json:"correct_option" validate:"omitempty,oneof=A B C D"`
	Explanation   *string `json:"explanation"`
	Marks         *int    `json:"marks" validate:"omitempty,gte=0"`
}

func questionView(q *models.Question) fiber.Map {
	return fiber.Map{
		"id":             q.ID,
		"quiz_id":        q.QuizID,
		"text":           q.QuestionText,
		"options":        q.Options(),
		"correct_option": q.CorrectOption,
		"explanation":    q.Explanation,
		"marks":          q.Marks,
	}
}

func questionList(questions []models.Question) []fiber.Map {
	result := make([]fiber.Map, 0, len(questions))
	for i := range questions {
		result = append(result, questionView(&questions[i]))
	}
	return result
}

// GetQuestions lists questions, filtered by ?quiz_id= when given.
func (qc *QuestionsController) GetQuestions(c *fiber.Ctx) error {
	quizID, err := queryID(c, "quiz_id")
	if err != nil {
		return err
	}
	return qc.listQuestions(c, quizID)
}

func (qc *QuestionsController) GetQuestionsByQuiz(c *fiber.Ctx) error {
	quizID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	return qc.listQuestions(c, quizID)
}

func (qc *QuestionsController) listQuestions(c *fiber.Ctx, quizID uint) error {
	questions, err := repository.ListQuestions(qc.DB.WithContext(c.UserContext()), quizID)
	if err != nil {
		return err
	}
	if quizID != 0 && len(questions) == 0 {
		return fiber.NewError(fiber.StatusNotFound, "No questions found for this quiz")
	}
	return c.JSON(questionList(questions))
}

func (qc *QuestionsController) GetQuestion(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	question, err := repository.GetQuestion(qc.DB.WithContext(c.UserContext()), id)
	if err != nil {
		return httpError(err, "Question")
	}
	return c.JSON(questionView(question))
}

func (qc *QuestionsController) CreateQuestion(c *fiber.Ctx) error {
	var req createQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot parse JSON")
	}
	req.CorrectOption = strings.ToUpper(strings.TrimSpace(req.CorrectOption))
	if err := utils.ValidateStruct(&req); err != nil {
		return err
	}

	text := strings.TrimSpace(req.QuestionText)
	if text == "" {
		text = strings.TrimSpace(req.Text)
	}
	if text == "" {
		return utils.FieldErrors{"question_text": "is required"}
	}

	question := models.Question{
		QuizID:        req.QuizID,
		QuestionText:  text,
		Option1:       req.Option1,
		Option2:       req.Option2,
		Option3:       req.Option3,
		Option4:       req.Option4,
		CorrectOption: req.CorrectOption,
		Explanation:   req.Explanation,
		Marks:         1,
	}
	if req.Marks != nil {
		question.Marks = *req.Marks
	}

	err := qc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if _, err := repository.GetQuiz(tx, req.QuizID); err != nil {
			return httpError(err, "Quiz")
		}
		return repository.CreateQuestion(tx, &question)
	})
	if err != nil {
		return httpError(err, "Question")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Question added successfully",
		"question": questionView(&question),
	})
}

func (qc *QuestionsController) UpdateQuestion(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req updateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if req.CorrectOption != nil {
		normalized := strings.ToUpper(strings.TrimSpace(*req.CorrectOption))
		req.CorrectOption = &normalized
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return err
	}

	var question *models.Question
	err = qc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		question, err = repository.GetQuestion(tx, id)
		if err != nil {
			return err
		}

		text := req.QuestionText
		if text == nil {
			text = req.Text
		}
		if text != nil {
			trimmed := strings.TrimSpace(*text)
			if trimmed == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Question text must not be empty")
			}
			question.QuestionText = trimmed
		}

		options := []struct {
			value *string
			field *string
		}{
			{req.Option1, &question.Option1},
			{req.Option2, &question.Option2},
			{req.Option3, &question.Option3},
			{req.Option4, &question.Option4},
		}
		for _, o := range options {
			if o.value == nil {
				continue
			}
			if *o.value == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Options must not be empty")
			}
			*o.field = *o.value
		}

		if req.CorrectOption != nil && *req.CorrectOption != "" {
			question.CorrectOption = *req.CorrectOption
		}
		if req.Explanation != nil {
			question.Explanation = *req.Explanation
		}
		if req.Marks != nil {
			question.Marks = *req.Marks
		}

		return repository.UpdateQuestion(tx, question)
	})
	if err != nil {
		return httpError(err, "Question")
	}

	return c.JSON(fiber.Map{
		"message":  "Question updated successfully",
		"question": questionView(question),
	})
}

func (qc *QuestionsController) DeleteQuestion(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := repository.DeleteQuestion(qc.DB.WithContext(c.UserContext()), id); err != nil {
		return httpError(err, "Question")
	}
	return c.JSON(fiber.Map{"message": "Question deleted successfully"})
}
