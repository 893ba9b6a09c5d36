package repo

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
)

type CommentRepo struct {
	DB *gorm.DB
}

func (r *CommentRepo) ByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.DB.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrCommentNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &comment, nil
}

func (r *CommentRepo) Create(comment *models.Comment) error {
	if err := r.DB.Create(comment).Error; err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *CommentRepo) Save(comment *models.Comment) error {
	if err := r.DB.Save(comment).Error; err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *CommentRepo) Delete(comment *models.Comment) error {
	if err := r.DB.Delete(comment).Error; err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *CommentRepo) ByPost(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.DB.Where("post_id = ?", postID).Order("id ASC").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return comments, nil
}
