package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/microcosm-cc/bluemonday"

	"blogapi/internal/events"
	"blogapi/internal/guard"
	"blogapi/internal/logging"
	"blogapi/internal/models"
	"blogapi/internal/repo"
	"blogapi/internal/search"
)

type PostService struct {
	Posts     *repo.PostRepo
	ES        *elasticsearch.Client
	ESIndex   string
	Producer  *events.Producer
	sanitizer *bluemonday.Policy
}

func NewPostService(posts *repo.PostRepo, es *elasticsearch.Client, index string, producer *events.Producer) *PostService {
	return &PostService{
		Posts:     posts,
		ES:        es,
		ESIndex:   index,
		Producer:  producer,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

type PostInput struct {
	Title  string
	Body   string
	Status models.Status
}

func (s *PostService) Create(ctx context.Context, actor *models.User, in PostInput) (*models.Post, error) {
	post := models.Post{
		Title:  in.Title,
		Body:   s.sanitizer.Sanitize(in.Body),
		Status: in.Status,
		UserID: actor.ID,
	}
	if err := s.Posts.Create(&post); err != nil {
		return nil, err
	}

	s.index(ctx, &post)
	publish(ctx, s.Producer, events.TopicPostEvents, fmt.Sprint(post.ID), map[string]interface{}{
		"type":   "post_created",
		"postID": post.ID,
		"userID": actor.ID,
	})

	return &post, nil
}

func (s *PostService) List(ctx context.Context, offset, limit int) (int64, []models.Post, error) {
	return s.Posts.Page(offset, limit)
}

// ListByUser only ever returns the caller's own posts; there is no way to
// list another account's drafts.
func (s *PostService) ListByUser(ctx context.Context, actor *models.User, status models.Status) ([]models.Post, error) {
	return s.Posts.ByUser(actor.ID, status)
}

func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	return s.Posts.ByID(id)
}

func (s *PostService) Update(ctx context.Context, actor *models.User, id uint, in PostInput) (*models.Post, error) {
	post, err := s.Posts.ByID(id)
	if err != nil {
		return nil, err
	}
	if err := guard.OwnedBy(post.UserID, actor); err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Body = s.sanitizer.Sanitize(in.Body)
	post.Status = in.Status
	if err := s.Posts.Save(post); err != nil {
		return nil, err
	}

	s.index(ctx, post)
	publish(ctx, s.Producer, events.TopicPostEvents, fmt.Sprint(post.ID), map[string]interface{}{
		"type":   "post_updated",
		"postID": post.ID,
		"userID": actor.ID,
	})

	return post, nil
}

func (s *PostService) Delete(ctx context.Context, actor *models.User, id uint) error {
	post, err := s.Posts.ByID(id)
	if err != nil {
		return err
	}
	if err := guard.OwnedBy(post.UserID, actor); err != nil {
		return err
	}

	if err := s.Posts.Delete(post); err != nil {
		return err
	}

	if s.ES != nil {
		if err := search.Delete(ctx, s.ES, s.ESIndex, id); err != nil {
			logging.FromContext(ctx).Error("search delete error", "postID", id, "error", err)
		}
	}
	publish(ctx, s.Producer, events.TopicPostEvents, fmt.Sprint(id), map[string]interface{}{
		"type":   "post_deleted",
		"postID": id,
		"userID": actor.ID,
	})

	return nil
}

// AttachImage stores an image for the post and records its URL. The file is
// only written once the existence and ownership gates have cleared, so a
// denied request leaves nothing on disk. Saving the file and saving the row
// are still not one transaction; a failed row write can leave an orphaned
// file behind.
func (s *PostService) AttachImage(ctx context.Context, actor *models.User, id uint, save func() (string, error)) (*models.Post, error) {
	post, err := s.Posts.ByID(id)
	if err != nil {
		return nil, err
	}
	if err := guard.OwnedBy(post.UserID, actor); err != nil {
		return nil, err
	}

	url, err := save()
	if err != nil {
		return nil, err
	}

	post.ImageURL = url
	if err := s.Posts.Save(post); err != nil {
		return nil, err
	}

	s.index(ctx, post)
	return post, nil
}

func (s *PostService) Search(ctx context.Context, query string, from, size int) (int64, []models.Post, error) {
	if s.ES == nil {
		return 0, nil, errors.New("search is not configured")
	}
	return search.Search(ctx, s.ES, s.ESIndex, query, from, size)
}

// index mirrors the post into Elasticsearch. Search staleness is preferred
// over failing the write, so errors are only logged.
func (s *PostService) index(ctx context.Context, post *models.Post) {
	if s.ES == nil {
		return
	}
	if err := search.Index(ctx, s.ES, s.ESIndex, post); err != nil {
		logging.FromContext(ctx).Error("search index error", "postID", post.ID, "error", err)
	}
}
