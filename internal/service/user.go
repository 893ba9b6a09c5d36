package service

import (
	"context"

	"blogapi/internal/apperr"
	"blogapi/internal/logging"
	"blogapi/internal/models"
	"blogapi/internal/repo"
)

type UserService struct {
	Users *repo.UserRepo
}

type ProfileInput struct {
	Name  *string
	Email *string
}

// UpdateProfile changes the caller's own name and/or email. Nil fields are
// left untouched.
func (s *UserService) UpdateProfile(ctx context.Context, actor *models.User, in ProfileInput) (*PublicUser, error) {
	l := logging.FromContext(ctx).With("svc", "user.update_profile", "userID", actor.ID)

	if in.Name != nil {
		actor.Name = *in.Name
	}
	if in.Email != nil && *in.Email != actor.Email {
		exists, err := s.Users.EmailExists(*in.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperr.ErrDuplicateEmail
		}
		actor.Email = *in.Email
	}

	if err := s.Users.Save(actor); err != nil {
		l.Error("profile update failed", "error", err)
		return nil, err
	}

	return publicUser(actor), nil
}
