package repo

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
)

type PostRepo struct {
	DB *gorm.DB
}

func (r *PostRepo) ByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.DB.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrPostNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &post, nil
}

func (r *PostRepo) Create(post *models.Post) error {
	if err := r.DB.Create(post).Error; err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostRepo) Save(post *models.Post) error {
	if err := r.DB.Save(post).Error; err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostRepo) Delete(post *models.Post) error {
	if err := r.DB.Delete(post).Error; err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostRepo) Page(offset, limit int) (int64, []models.Post, error) {
	var total int64
	if err := r.DB.Model(&models.Post{}).Count(&total).Error; err != nil {
		return 0, nil, fmt.Errorf("db error: %w", err)
	}

	var posts []models.Post
	if err := r.DB.Order("id ASC").Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return 0, nil, fmt.Errorf("db error: %w", err)
	}
	return total, posts, nil
}

// ByUser returns the user's own posts, optionally filtered by status.
func (r *PostRepo) ByUser(userID uint, status models.Status) ([]models.Post, error) {
	q := r.DB.Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var posts []models.Post
	if err := q.Order("id ASC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return posts, nil
}
