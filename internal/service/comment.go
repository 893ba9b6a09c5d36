package service

import (
	"context"
	"fmt"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"blogapi/internal/events"
	"blogapi/internal/guard"
	"blogapi/internal/models"
	"blogapi/internal/repo"
)

type CommentService struct {
	Comments  *repo.CommentRepo
	Posts     *repo.PostRepo
	Producer  *events.Producer
	sanitizer *bluemonday.Policy
}

func NewCommentService(comments *repo.CommentRepo, posts *repo.PostRepo, producer *events.Producer) *CommentService {
	return &CommentService{
		Comments:  comments,
		Posts:     posts,
		Producer:  producer,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

func (s *CommentService) Create(ctx context.Context, actor *models.User, postID uint, body string) (*models.Comment, error) {
	post, err := s.Posts.ByID(postID)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		Body:      s.sanitizer.Sanitize(body),
		CreatedAt: time.Now(),
		UserID:    actor.ID,
		PostID:    post.ID,
	}
	if err := s.Comments.Create(&comment); err != nil {
		return nil, err
	}

	publish(ctx, s.Producer, events.TopicPostEvents, fmt.Sprint(post.ID), map[string]interface{}{
		"type":      "comment_created",
		"commentID": comment.ID,
		"postID":    post.ID,
		"userID":    actor.ID,
	})

	return &comment, nil
}

func (s *CommentService) Edit(ctx context.Context, actor *models.User, id uint, body string) (*models.Comment, error) {
	comment, err := s.Comments.ByID(id)
	if err != nil {
		return nil, err
	}
	if err := guard.OwnedBy(comment.UserID, actor); err != nil {
		return nil, err
	}

	comment.Body = s.sanitizer.Sanitize(body)
	if err := s.Comments.Save(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, actor *models.User, id uint) error {
	comment, err := s.Comments.ByID(id)
	if err != nil {
		return err
	}
	if err := guard.OwnedBy(comment.UserID, actor); err != nil {
		return err
	}

	if err := s.Comments.Delete(comment); err != nil {
		return err
	}

	publish(ctx, s.Producer, events.TopicPostEvents, fmt.Sprint(comment.PostID), map[string]interface{}{
		"type":      "comment_deleted",
		"commentID": id,
		"postID":    comment.PostID,
		"userID":    actor.ID,
	})

	return nil
}

func (s *CommentService) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	if _, err := s.Posts.ByID(postID); err != nil {
		return nil, err
	}
	return s.Comments.ByPost(postID)
}
