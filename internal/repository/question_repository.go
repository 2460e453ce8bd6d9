package repository

import (
	"gorm.io/gorm"

	"github.com/quickgrade/quickgrade/internal/model"
)

type QuestionRepository interface {
	FindByTestID(testID string) ([]model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) FindByTestID(testID string) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Where("test_id = ?", testID).Order("question_index ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}
